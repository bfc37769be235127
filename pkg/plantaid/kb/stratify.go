package kb

import (
	"fmt"

	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
)

// stratify assigns a stratum to every IDB relation so that positive
// dependencies never decrease the stratum and negated/aggregate
// dependencies strictly increase it. It fails when the dependency graph
// has a cycle through a negative or aggregate edge, which is exactly the
// condition under which no unique minimal model exists.
//
// The computation is the usual relaxation: raise head strata along edges
// until a fixpoint; if a stratum ever exceeds the number of IDB relations
// a negative cycle must be present.
func stratify(rules []Rule) (map[Relation]int, int, error) {
	type edge struct {
		from, to Relation
		strict   bool
	}

	idb := 0
	for r := Relation(0); r < numRelations; r++ {
		if r.IsIDB() {
			idb++
		}
	}

	var edges []edge
	for _, rule := range rules {
		head := rule.Head.Rel
		for _, l := range rule.Body {
			if !l.Rel.IsIDB() {
				continue
			}
			edges = append(edges, edge{from: l.Rel, to: head, strict: l.Negated})
		}
		if rule.Agg != nil {
			for _, l := range rule.Agg.Body {
				if !l.Rel.IsIDB() {
					continue
				}
				edges = append(edges, edge{from: l.Rel, to: head, strict: true})
			}
		}
	}

	strata := make(map[Relation]int)
	for _, rule := range rules {
		strata[rule.Head.Rel] = 0
	}

	for changed := true; changed; {
		changed = false
		for _, e := range edges {
			from, ok := strata[e.from]
			if !ok {
				// IDB relation with no defining rule: empty, stratum 0.
				strata[e.from] = 0
			}
			want := from
			if e.strict {
				want = from + 1
			}
			if strata[e.to] < want {
				if want > idb {
					return nil, 0, fmt.Errorf(
						"negation/aggregate cycle through %s: %w", e.to, internalerr.ErrNotStratified)
				}
				strata[e.to] = want
				changed = true
			}
		}
	}

	max := 0
	for _, s := range strata {
		if s > max {
			max = s
		}
	}
	return strata, max, nil
}
