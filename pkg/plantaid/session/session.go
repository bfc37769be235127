// Package session holds the mutable fact store for one diagnostic
// session: observed symptoms, plant type, environmental conditions and
// season. A Session is not safe for concurrent use; give each session its
// own instance and snapshot it before evaluation.
package session

import "github.com/plantaid/plantaid/pkg/plantaid/kb"

// slot is a singleton fact: empty until set, replaced on every
// subsequent set.
type slot struct {
	value kb.Sym
	set   bool
}

func (s *slot) replace(v kb.Sym) {
	s.value = v
	s.set = true
}

func (s *slot) clear() {
	s.value = ""
	s.set = false
}

// Session is the per-diagnosis fact store. Mutations never trigger
// evaluation; callers pull a Snapshot when they want one.
type Session struct {
	base       *kb.Base
	symptoms   []kb.Sym
	conditions []kb.Sym
	symptomSet map[kb.Sym]bool
	condSet    map[kb.Sym]bool
	plant      slot
	season     slot
}

// New creates an empty session bound to a knowledge base (used only for
// plant-name normalization; the session never mutates it).
func New(base *kb.Base) *Session {
	return &Session{
		base:       base,
		symptomSet: map[kb.Sym]bool{},
		condSet:    map[kb.Sym]bool{},
	}
}

// AssertSymptom records an observed symptom. Duplicate asserts are
// no-ops, not errors. Unknown symptom tokens are accepted; they simply
// unify with no rule.
func (s *Session) AssertSymptom(id kb.Sym) {
	if s.symptomSet[id] {
		return
	}
	s.symptomSet[id] = true
	s.symptoms = append(s.symptoms, id)
}

// RetractSymptom removes a previously asserted symptom, if present.
func (s *Session) RetractSymptom(id kb.Sym) {
	if !s.symptomSet[id] {
		return
	}
	delete(s.symptomSet, id)
	for i, sym := range s.symptoms {
		if sym == id {
			s.symptoms = append(s.symptoms[:i], s.symptoms[i+1:]...)
			break
		}
	}
}

// SetPlantType normalizes the raw plant name and installs it, replacing
// any previous plant type. Never fails: an unrecognized name is kept in
// normalized form and matches no diagnostic rule. That permissiveness is
// deliberate; rejecting input is the caller's concern, not the fact
// store's.
func (s *Session) SetPlantType(raw string) {
	s.plant.replace(s.base.NormalizePlant(raw))
}

// SetSeason installs the current season, replacing any previous one.
func (s *Session) SetSeason(id kb.Sym) {
	s.season.replace(id)
}

// AssertCondition records an environmental condition. Deduplicated, like
// symptoms.
func (s *Session) AssertCondition(id kb.Sym) {
	if s.condSet[id] {
		return
	}
	s.condSet[id] = true
	s.conditions = append(s.conditions, id)
}

// Reset clears every session fact unconditionally.
func (s *Session) Reset() {
	s.symptoms = nil
	s.conditions = nil
	s.symptomSet = map[kb.Sym]bool{}
	s.condSet = map[kb.Sym]bool{}
	s.plant.clear()
	s.season.clear()
}

// Snapshot is an immutable copy of the session facts, safe to hand to an
// evaluator while the session keeps mutating.
type Snapshot struct {
	Atoms      []kb.Atom
	Symptoms   []kb.Sym
	Conditions []kb.Sym
	Plant      kb.Sym
	HasPlant   bool
	Season     kb.Sym
	HasSeason  bool
}

// Snapshot captures the current session state as ground atoms plus the
// typed views the extractor and fusion layer want.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Symptoms:   append([]kb.Sym(nil), s.symptoms...),
		Conditions: append([]kb.Sym(nil), s.conditions...),
		Plant:      s.plant.value,
		HasPlant:   s.plant.set,
		Season:     s.season.value,
		HasSeason:  s.season.set,
	}
	for _, sym := range snap.Symptoms {
		snap.Atoms = append(snap.Atoms, kb.Fact(kb.SymptomPresent, sym))
	}
	if snap.HasPlant {
		snap.Atoms = append(snap.Atoms, kb.Fact(kb.PlantType, snap.Plant))
	}
	for _, c := range snap.Conditions {
		snap.Atoms = append(snap.Atoms, kb.Fact(kb.ConditionPresent, c))
	}
	if snap.HasSeason {
		snap.Atoms = append(snap.Atoms, kb.Fact(kb.CurrentSeason, snap.Season))
	}
	return snap
}
