// Package eval computes the unique minimal model of the knowledge base
// combined with a session snapshot, by naive fixpoint iteration over the
// rule strata. Evaluation is a pure function of its inputs: no I/O, no
// shared state, deterministic output order.
package eval

import (
	"fmt"

	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
)

// Model is the computed extension of every relation: the extensional
// facts plus all derived atoms. Per-relation storage keeps insertion
// order, which makes repeated evaluations byte-identical.
type Model struct {
	index map[kb.Atom]struct{}
	byRel [][]kb.Atom
}

func newModel() *Model {
	return &Model{
		index: map[kb.Atom]struct{}{},
		byRel: make([][]kb.Atom, kb.NumRelations()),
	}
}

// Has reports whether a ground atom is true in the model.
func (m *Model) Has(a kb.Atom) bool {
	_, ok := m.index[a]
	return ok
}

// Facts returns the atoms of one relation in derivation order.
func (m *Model) Facts(rel kb.Relation) []kb.Atom {
	return m.byRel[rel]
}

// Size returns the total number of atoms in the model.
func (m *Model) Size() int { return len(m.index) }

func (m *Model) add(a kb.Atom) bool {
	if _, ok := m.index[a]; ok {
		return false
	}
	m.index[a] = struct{}{}
	m.byRel[a.Rel] = append(m.byRel[a.Rel], a)
	return true
}

// Evaluator runs the stratified fixpoint for one knowledge base. It is
// stateless between runs and safe to share.
type Evaluator struct {
	base *kb.Base
}

// New creates an evaluator over a validated knowledge base.
func New(base *kb.Base) *Evaluator {
	return &Evaluator{base: base}
}

// Run computes the minimal model of the knowledge base plus the given
// session atoms. The returned error is only ever an internal invariant
// violation (a negated or aggregate subgoal on a relation of the current
// stratum), which the load-time stratification check makes unreachable
// for a valid rule set.
func (e *Evaluator) Run(sessionAtoms []kb.Atom) (*Model, error) {
	m := newModel()
	for _, a := range e.base.EDB() {
		m.add(a)
	}
	for _, a := range sessionAtoms {
		m.add(a)
	}

	for stratum, rules := range e.base.Strata() {
		for changed := true; changed; {
			changed = false
			for _, rule := range rules {
				added, err := e.applyRule(m, rule, stratum)
				if err != nil {
					return nil, err
				}
				if added {
					changed = true
				}
			}
		}
	}
	return m, nil
}

// applyRule derives every head instance of one rule against the current
// model and returns whether anything new was added.
func (e *Evaluator) applyRule(m *Model, rule kb.Rule, stratum int) (bool, error) {
	bindings := make([]kb.Sym, rule.MaxVar()+1)
	bound := make([]bool, rule.MaxVar()+1)
	added := false

	var join func(i int) error
	join = func(i int) error {
		if i == len(rule.Body) {
			if rule.Agg != nil {
				ok, err := e.countSatisfied(m, rule, stratum, bindings, bound)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			head, err := instantiate(rule.Head, bindings, bound)
			if err != nil {
				return err
			}
			if m.add(head) {
				added = true
			}
			return nil
		}

		lit := rule.Body[i]
		if lit.Negated {
			if err := e.checkFixed(lit.Rel, stratum, rule.Name); err != nil {
				return err
			}
			if !matchesAny(m, lit, bindings, bound) {
				return join(i + 1)
			}
			return nil
		}

		for _, cand := range m.Facts(lit.Rel) {
			undo, ok := unify(lit, cand, bindings, bound)
			if !ok {
				continue
			}
			if err := join(i + 1); err != nil {
				return err
			}
			for _, v := range undo {
				bound[v] = false
			}
		}
		return nil
	}

	if err := join(0); err != nil {
		return false, err
	}
	return added, nil
}

// countSatisfied evaluates the rule's count aggregate under the current
// bindings: the distinct values of the counted variable for which all
// aggregate subgoals hold must reach the threshold.
func (e *Evaluator) countSatisfied(m *Model, rule kb.Rule, stratum int, bindings []kb.Sym, bound []bool) (bool, error) {
	agg := rule.Agg
	for _, lit := range agg.Body {
		if err := e.checkFixed(lit.Rel, stratum, rule.Name); err != nil {
			return false, err
		}
	}

	seen := map[kb.Sym]bool{}
	var walk func(i int)
	walk = func(i int) {
		if i == len(agg.Body) {
			if bound[agg.Over] {
				seen[bindings[agg.Over]] = true
			}
			return
		}
		lit := agg.Body[i]
		for _, cand := range m.Facts(lit.Rel) {
			undo, ok := unify(lit, cand, bindings, bound)
			if !ok {
				continue
			}
			walk(i + 1)
			for _, v := range undo {
				bound[v] = false
			}
		}
	}
	walk(0)
	return len(seen) >= agg.Min, nil
}

// checkFixed asserts that a relation referenced under negation or inside
// an aggregate is already finalized: extensional, or in a strictly lower
// stratum. Stratification guarantees this; tripping it means the
// knowledge base validation is broken, so it surfaces as an internal
// invariant error rather than a user-facing condition.
func (e *Evaluator) checkFixed(rel kb.Relation, stratum int, ruleName string) error {
	if !rel.IsIDB() {
		return nil
	}
	if e.base.StratumOf(rel) >= stratum {
		return fmt.Errorf("rule %q references unfixed relation %s in stratum %d: %w",
			ruleName, rel, stratum, internalerr.ErrEvalInvariant)
	}
	return nil
}

// unify matches a literal pattern against a ground atom, extending the
// bindings. It returns the variables newly bound (for backtracking) and
// whether the match succeeded.
func unify(lit kb.Literal, atom kb.Atom, bindings []kb.Sym, bound []bool) ([]kb.Var, bool) {
	var newly []kb.Var
	n := lit.Rel.Arity()
	for i := 0; i < n; i++ {
		t := lit.Args[i]
		arg := atom.Args[i]
		if t.IsAny() {
			continue
		}
		if c, ok := t.IsConst(); ok {
			if c != arg {
				for _, v := range newly {
					bound[v] = false
				}
				return nil, false
			}
			continue
		}
		v, _ := t.IsVar()
		if bound[v] {
			if bindings[v] != arg {
				for _, u := range newly {
					bound[u] = false
				}
				return nil, false
			}
			continue
		}
		bindings[v] = arg
		bound[v] = true
		newly = append(newly, v)
	}
	return newly, true
}

// matchesAny reports whether any atom in the model matches the (fully
// bound or wildcarded) pattern of a negated literal.
func matchesAny(m *Model, lit kb.Literal, bindings []kb.Sym, bound []bool) bool {
	n := lit.Rel.Arity()
	for _, cand := range m.Facts(lit.Rel) {
		match := true
		for i := 0; i < n; i++ {
			t := lit.Args[i]
			if t.IsAny() {
				continue
			}
			if c, ok := t.IsConst(); ok {
				if c != cand.Args[i] {
					match = false
					break
				}
				continue
			}
			v, _ := t.IsVar()
			if !bound[v] || bindings[v] != cand.Args[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// instantiate grounds a head pattern. Safety validation guarantees every
// head variable is bound when the body has matched.
func instantiate(head kb.Literal, bindings []kb.Sym, bound []bool) (kb.Atom, error) {
	a := kb.Atom{Rel: head.Rel}
	n := head.Rel.Arity()
	for i := 0; i < n; i++ {
		t := head.Args[i]
		if c, ok := t.IsConst(); ok {
			a.Args[i] = c
			continue
		}
		v, isVar := t.IsVar()
		if !isVar || !bound[v] {
			return kb.Atom{}, fmt.Errorf("unbound head argument %d of %s: %w",
				i, head.Rel, internalerr.ErrEvalInvariant)
		}
		a.Args[i] = bindings[v]
	}
	return a, nil
}
