package kb

import (
	"fmt"

	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
)

// Var is a rule variable. Variables are numbered from 1 within a rule;
// the zero value means "not a variable".
type Var int

type termKind uint8

const (
	constTerm termKind = iota
	varTerm
	anyTerm
)

// Term is one argument of a rule literal: a constant symbol, a variable,
// or the anonymous wildcard.
type Term struct {
	kind termKind
	sym  Sym
	v    Var
}

// C builds a constant term.
func C(s Sym) Term { return Term{kind: constTerm, sym: s} }

// V builds a variable term.
func V(v Var) Term { return Term{kind: varTerm, v: v} }

// Any is the anonymous wildcard: it matches every symbol and binds nothing.
// In a negated literal it quantifies existentially ("no matching atom exists").
var Any = Term{kind: anyTerm}

// IsConst reports whether the term is a constant, returning its symbol.
func (t Term) IsConst() (Sym, bool) { return t.sym, t.kind == constTerm }

// IsVar reports whether the term is a variable, returning it.
func (t Term) IsVar() (Var, bool) { return t.v, t.kind == varTerm }

// IsAny reports whether the term is the wildcard.
func (t Term) IsAny() bool { return t.kind == anyTerm }

// Literal is a subgoal pattern: a relation applied to terms, possibly
// negated (negation-as-failure against strictly lower strata).
type Literal struct {
	Rel     Relation
	Args    [MaxArity]Term
	Negated bool
}

// Pos builds a positive literal.
func Pos(rel Relation, args ...Term) Literal { return literal(rel, false, args) }

// Neg builds a negated literal.
func Neg(rel Relation, args ...Term) Literal { return literal(rel, true, args) }

func literal(rel Relation, negated bool, args []Term) Literal {
	if len(args) != rel.Arity() {
		panic(fmt.Sprintf("kb: %s expects %d arguments, got %d", rel, rel.Arity(), len(args)))
	}
	l := Literal{Rel: rel, Negated: negated}
	copy(l.Args[:], args)
	return l
}

// CountAggregate counts the distinct bindings of Over for which all Body
// literals (positive only) hold under the enclosing rule's bindings, and
// requires the count to reach Min. The rule set uses it for "at least N
// correlated symptoms are present".
type CountAggregate struct {
	Over Var
	Body []Literal
	Min  int
}

// Rule is a Horn-like clause: one head pattern, positive and negated body
// subgoals, and at most one count aggregate.
type Rule struct {
	Name string
	Head Literal
	Body []Literal
	Agg  *CountAggregate
}

// R is shorthand for building a rule.
func R(name string, head Literal, body ...Literal) Rule {
	return Rule{Name: name, Head: head, Body: body}
}

// WithCount attaches a count aggregate to the rule.
func (r Rule) WithCount(over Var, min int, body ...Literal) Rule {
	r.Agg = &CountAggregate{Over: over, Body: body, Min: min}
	return r
}

// MaxVar returns the highest variable number used anywhere in the rule.
func (r Rule) MaxVar() Var {
	max := Var(0)
	scan := func(ts [MaxArity]Term) {
		for _, t := range ts {
			if v, ok := t.IsVar(); ok && v > max {
				max = v
			}
		}
	}
	scan(r.Head.Args)
	for _, l := range r.Body {
		scan(l.Args)
	}
	if r.Agg != nil {
		if r.Agg.Over > max {
			max = r.Agg.Over
		}
		for _, l := range r.Agg.Body {
			scan(l.Args)
		}
	}
	return max
}

// checkSafe verifies rule safety: every variable occurring in the head or
// in a negated subgoal must also occur in a positive body subgoal, and the
// aggregate's counted variable must occur in the aggregate body. Aggregate
// body variables other than the counted one must be bound by the outer
// positive body.
func checkSafe(r Rule) error {
	positive := map[Var]bool{}
	for _, l := range r.Body {
		if l.Negated {
			continue
		}
		for _, t := range l.Args {
			if v, ok := t.IsVar(); ok {
				positive[v] = true
			}
		}
	}

	require := func(v Var, where string) error {
		if !positive[v] {
			return fmt.Errorf("rule %q: variable %d in %s has no positive binding: %w",
				r.Name, v, where, internalerr.ErrUnsafeRule)
		}
		return nil
	}

	for _, t := range r.Head.Args {
		if v, ok := t.IsVar(); ok {
			if err := require(v, "head"); err != nil {
				return err
			}
		}
	}
	for _, l := range r.Body {
		if !l.Negated {
			continue
		}
		for _, t := range l.Args {
			if v, ok := t.IsVar(); ok {
				if err := require(v, "negated subgoal"); err != nil {
					return err
				}
			}
		}
	}
	if r.Agg != nil {
		counted := false
		for _, l := range r.Agg.Body {
			if l.Negated {
				return fmt.Errorf("rule %q: negated literal inside aggregate: %w",
					r.Name, internalerr.ErrUnsafeRule)
			}
			for _, t := range l.Args {
				v, ok := t.IsVar()
				if !ok {
					continue
				}
				if v == r.Agg.Over {
					counted = true
					continue
				}
				if err := require(v, "aggregate subgoal"); err != nil {
					return err
				}
			}
		}
		if !counted {
			return fmt.Errorf("rule %q: counted variable %d absent from aggregate body: %w",
				r.Name, r.Agg.Over, internalerr.ErrUnsafeRule)
		}
	}
	if r.Head.Negated {
		return fmt.Errorf("rule %q: negated head: %w", r.Name, internalerr.ErrUnsafeRule)
	}
	if !r.Head.Rel.IsIDB() {
		return fmt.Errorf("rule %q: head relation %s is extensional: %w",
			r.Name, r.Head.Rel, internalerr.ErrUnsafeRule)
	}
	return nil
}
