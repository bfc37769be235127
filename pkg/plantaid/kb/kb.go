package kb

import (
	"fmt"
	"sort"
	"strings"
)

// Base is the immutable knowledge base: the stratified rule set, the
// static extensional facts, and the configuration tables (confidence
// mapping, display names, plant synonyms). Construction validates rule
// safety and stratifiability; a Base that constructed successfully is
// safe to share across concurrent sessions.
type Base struct {
	rules      []Rule
	strata     [][]Rule
	stratumOf  map[Relation]int
	maxStratum int
	edb        []Atom

	symptomsOf   map[Sym][]Sym
	confidence   map[Sym]float64
	severityRank map[Sym]int
	displayName  map[Sym]string
	canonical    map[string]Sym
	synonyms     []Sym
}

// New constructs the knowledge base from the built-in domain rules and
// facts. It fails only on structural violations (unsafe rule, negation
// cycle), which for the fixed domain rule set would be a programming
// error caught by the test suite.
func New() (*Base, error) {
	return NewFromRules(domainRules(), domainFacts())
}

// NewFromRules constructs a knowledge base from an explicit rule set and
// extensional fact list. Exposed so the validation paths are testable
// with deliberately broken rule sets.
func NewFromRules(rules []Rule, facts []Atom) (*Base, error) {
	for _, r := range rules {
		if err := checkSafe(r); err != nil {
			return nil, err
		}
	}
	for _, f := range facts {
		if f.Rel.IsIDB() {
			return nil, fmt.Errorf("extensional fact %s uses derived relation", f)
		}
	}

	strata, max, err := stratify(rules)
	if err != nil {
		return nil, err
	}

	b := &Base{
		rules:        rules,
		strata:       make([][]Rule, max+1),
		stratumOf:    strata,
		maxStratum:   max,
		edb:          facts,
		symptomsOf:   map[Sym][]Sym{},
		confidence:   confidenceTable(),
		severityRank: severityRankTable(),
		displayName:  displayNameTable(),
		canonical:    map[string]Sym{},
		synonyms:     plantSynonyms(),
	}
	for _, r := range rules {
		s := strata[r.Head.Rel]
		b.strata[s] = append(b.strata[s], r)
	}
	for _, f := range facts {
		if f.Rel == SymptomOf {
			d := f.Args[0]
			b.symptomsOf[d] = append(b.symptomsOf[d], f.Args[1])
		}
	}
	for sym, name := range b.displayName {
		b.canonical[name] = sym
	}
	return b, nil
}

// EDB returns the static extensional facts.
func (b *Base) EDB() []Atom { return b.edb }

// Strata returns the rules grouped by head stratum, in evaluation order.
func (b *Base) Strata() [][]Rule { return b.strata }

// StratumOf returns the stratum assigned to an IDB relation. Relations
// without defining rules (and all EDB relations) are stratum 0.
func (b *Base) StratumOf(rel Relation) int { return b.stratumOf[rel] }

// MaxStratum returns the highest stratum in the rule set.
func (b *Base) MaxStratum() int { return b.maxStratum }

// AssociatedSymptoms returns the symptoms linked to a disease by the
// static association table, in declaration order.
func (b *Base) AssociatedSymptoms(disease Sym) []Sym {
	return b.symptomsOf[disease]
}

// Confidence maps an ordinal confidence token to its numeric value.
// Unknown tokens map to 0.5, matching the original system's default.
func (b *Base) Confidence(token Sym) float64 {
	if v, ok := b.confidence[token]; ok {
		return v
	}
	return 0.5
}

// SeverityRank returns the ordinal position of a severity level
// (bassa < media < alta < critica). Unknown levels rank lowest.
func (b *Base) SeverityRank(level Sym) int { return b.severityRank[level] }

// DisplayName bridges a canonical token to its human-readable name.
// Tokens outside the table are title-cased with underscores expanded.
func (b *Base) DisplayName(sym Sym) string {
	if name, ok := b.displayName[sym]; ok {
		return name
	}
	words := strings.Split(string(sym), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Canonical maps a display name back to its canonical token; falls back
// to snake-casing the input.
func (b *Base) Canonical(display string) Sym {
	if sym, ok := b.canonical[display]; ok {
		return sym
	}
	return Sym(strings.ReplaceAll(strings.ToLower(display), " ", "_"))
}

// NormalizePlant maps a raw plant name onto the canonical namespace:
// case-fold, then substring match against the known plant synonyms, then
// fall back to the token before the first separator. It never fails:
// unrecognized names come back verbatim in normalized form and simply
// match no rules.
func (b *Base) NormalizePlant(raw string) Sym {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range b.synonyms {
		if strings.Contains(lower, string(p)) {
			return p
		}
	}
	sep := strings.IndexAny(lower, "_ -")
	if sep > 0 {
		lower = lower[:sep]
	}
	return Sym(lower)
}

// Diseases returns the full disease domain in canonical order.
func (b *Base) Diseases() []Sym {
	out := make([]Sym, len(diseaseOrder))
	copy(out, diseaseOrder)
	return out
}

// SortedConfidenceTokens returns the confidence tokens from weakest to
// strongest. Mostly useful for presentation.
func (b *Base) SortedConfidenceTokens() []Sym {
	toks := make([]Sym, 0, len(b.confidence))
	for t := range b.confidence {
		toks = append(toks, t)
	}
	sort.Slice(toks, func(i, j int) bool {
		return b.confidence[toks[i]] < b.confidence[toks[j]]
	})
	return toks
}
