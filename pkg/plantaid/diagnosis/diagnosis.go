// Package diagnosis projects the evaluated model onto typed diagnostic
// hypotheses: ranked confidence, matched symptoms, severity, treatments
// and the fired-rule trace.
package diagnosis

import (
	"sort"

	"github.com/plantaid/plantaid/pkg/plantaid/eval"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
	"github.com/plantaid/plantaid/pkg/plantaid/session"
)

// Trace labels for the rule categories that contributed to a hypothesis.
const (
	TraceBase         = "base rule"
	TracePotentiation = "environmental potentiation"
	TraceCorrelation  = "correlation strengthening"
)

// Hypothesis is one diagnostic outcome: a disease on a plant with an
// ordinal confidence mapped to a numeric value, the session symptoms
// associated with the disease, and the categories of rules that fired.
type Hypothesis struct {
	Disease         kb.Sym
	Plant           kb.Sym
	ConfidenceToken kb.Sym
	Confidence      float64
	Symptoms        []kb.Sym
	Trace           []string
}

// EnvironmentSummary reports the session's environmental context next to
// the hypotheses.
type EnvironmentSummary struct {
	Conditions []kb.Sym
	Season     kb.Sym
	HasSeason  bool
}

// Result is the full projection of one evaluation: final hypotheses,
// raw (pre-merge) hypotheses, and the environment summary. An empty
// hypothesis list is a valid outcome, not an error. Model retains the
// evaluated model so callers can run further extractions without
// re-evaluating.
type Result struct {
	Final       []Hypothesis
	Raw         []Hypothesis
	Environment EnvironmentSummary
	Model       *eval.Model
}

// Extractor converts models into hypotheses. Stateless; safe to share.
type Extractor struct {
	base *kb.Base
}

// NewExtractor creates an extractor bound to the knowledge base that
// produced the models it will read.
func NewExtractor(base *kb.Base) *Extractor {
	return &Extractor{base: base}
}

// Final projects the final-diagnosis relation: the merged view including
// environmental potentiation and correlation strengthening.
func (x *Extractor) Final(m *eval.Model, snap session.Snapshot) []Hypothesis {
	return x.project(m, kb.Final, snap)
}

// Raw projects the valid-diagnosis relation, ignoring the merge rules.
func (x *Extractor) Raw(m *eval.Model, snap session.Snapshot) []Hypothesis {
	return x.project(m, kb.Valid, snap)
}

// project converts one output relation into ranked hypotheses. The sort
// is stable and descending by numeric confidence: ties keep their
// derivation order, which is deterministic for a fixed snapshot.
func (x *Extractor) project(m *eval.Model, rel kb.Relation, snap session.Snapshot) []Hypothesis {
	atoms := m.Facts(rel)
	out := make([]Hypothesis, 0, len(atoms))
	for _, a := range atoms {
		disease, plant, token := a.Args[0], a.Args[1], a.Args[2]
		out = append(out, Hypothesis{
			Disease:         disease,
			Plant:           plant,
			ConfidenceToken: token,
			Confidence:      x.base.Confidence(token),
			Symptoms:        x.matchedSymptoms(disease, snap),
			Trace:           x.trace(m, disease, plant),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// matchedSymptoms returns the asserted symptoms that the static
// association table links to the disease, in assertion order.
func (x *Extractor) matchedSymptoms(disease kb.Sym, snap session.Snapshot) []kb.Sym {
	assoc := map[kb.Sym]bool{}
	for _, s := range x.base.AssociatedSymptoms(disease) {
		assoc[s] = true
	}
	var out []kb.Sym
	for _, s := range snap.Symptoms {
		if assoc[s] {
			out = append(out, s)
		}
	}
	return out
}

// trace lists the rule categories that fired for a disease/plant pair.
func (x *Extractor) trace(m *eval.Model, disease, plant kb.Sym) []string {
	out := []string{TraceBase}
	for _, a := range m.Facts(kb.Potentiated) {
		if a.Args[0] == disease && a.Args[1] == plant {
			out = append(out, TracePotentiation)
			break
		}
	}
	for _, a := range m.Facts(kb.CompleteDiagnosis) {
		if a.Args[0] == disease && a.Args[1] == plant {
			out = append(out, TraceCorrelation)
			break
		}
	}
	return out
}

// Severity returns the highest severity level derived for a disease,
// falling back to the caller-supplied default when no severity rule
// fired.
func (x *Extractor) Severity(m *eval.Model, disease, fallback kb.Sym) kb.Sym {
	best := fallback
	bestRank := x.base.SeverityRank(fallback)
	for _, a := range m.Facts(kb.DiseaseSeverity) {
		if a.Args[0] != disease {
			continue
		}
		if r := x.base.SeverityRank(a.Args[1]); r > bestRank {
			best, bestRank = a.Args[1], r
		}
	}
	return best
}

// Treatments returns the deduplicated treatments resolved for a disease,
// in derivation order.
func (x *Extractor) Treatments(m *eval.Model, disease kb.Sym) []kb.Sym {
	seen := map[kb.Sym]bool{}
	var out []kb.Sym
	for _, a := range m.Facts(kb.FinalTreatment) {
		if a.Args[1] != disease || seen[a.Args[0]] {
			continue
		}
		seen[a.Args[0]] = true
		out = append(out, a.Args[0])
	}
	return out
}

// Preventions returns the disease-specific prevention measures.
func (x *Extractor) Preventions(m *eval.Model, disease kb.Sym) []kb.Sym {
	var out []kb.Sym
	for _, a := range m.Facts(kb.PreventionSpecific) {
		if a.Args[0] == disease {
			out = append(out, a.Args[1])
		}
	}
	return out
}

// Evaluate runs the stratified evaluator on a snapshot and extracts both
// projections plus the environment summary. This is the entry point the
// fusion layer consumes.
func Evaluate(base *kb.Base, snap session.Snapshot) (Result, error) {
	model, err := eval.New(base).Run(snap.Atoms)
	if err != nil {
		return Result{}, err
	}
	x := NewExtractor(base)
	return Result{
		Final: x.Final(model, snap),
		Raw:   x.Raw(model, snap),
		Environment: EnvironmentSummary{
			Conditions: snap.Conditions,
			Season:     snap.Season,
			HasSeason:  snap.HasSeason,
		},
		Model: model,
	}, nil
}
