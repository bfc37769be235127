// Package bayes implements the probabilistic inference module: a naive
// Bayesian network with one disease node and conditionally independent
// symptom nodes. Inference returns a distribution over the full disease
// domain that sums to one.
package bayes

import (
	"fmt"

	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
)

// Network holds the disease priors and the per-disease symptom
// conditional probability tables. Immutable after construction.
type Network struct {
	diseases []kb.Sym
	prior    map[kb.Sym]float64
	cpt      map[kb.Sym]map[kb.Sym]float64 // disease -> symptom -> P(present | disease)
}

// Probabilities P(symptom present | disease) for associated and
// unassociated symptoms in the default network.
const (
	pAssociated   = 0.8
	pUnassociated = 0.05
)

// NewDefault builds the network from the knowledge base's association
// table: associated symptoms are likely under their disease, everything
// else is background noise. Priors are uniform.
func NewDefault(base *kb.Base) *Network {
	diseases := base.Diseases()
	n := &Network{
		diseases: diseases,
		prior:    map[kb.Sym]float64{},
		cpt:      map[kb.Sym]map[kb.Sym]float64{},
	}
	for _, d := range diseases {
		n.prior[d] = 1.0 / float64(len(diseases))
		row := map[kb.Sym]float64{}
		for _, s := range base.AssociatedSymptoms(d) {
			row[s] = pAssociated
		}
		n.cpt[d] = row
	}
	return n
}

// New builds a network from explicit priors and CPTs, e.g. loaded from
// configuration. Priors must be positive and cover every disease listed.
func New(priors map[kb.Sym]float64, cpt map[kb.Sym]map[kb.Sym]float64, order []kb.Sym) (*Network, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("bayes: empty disease domain: %w", internalerr.ErrInvalidConfig)
	}
	for _, d := range order {
		if priors[d] <= 0 {
			return nil, fmt.Errorf("bayes: missing or non-positive prior for %s: %w", d, internalerr.ErrInvalidConfig)
		}
	}
	return &Network{diseases: order, prior: priors, cpt: cpt}, nil
}

// Infer computes the posterior over diseases given the observed
// symptoms. Unknown symptom tokens contribute nothing. With no usable
// evidence the result is the (normalized) prior, so the distribution
// always sums to one.
func (n *Network) Infer(symptoms []kb.Sym) map[kb.Sym]float64 {
	post := make(map[kb.Sym]float64, len(n.diseases))
	total := 0.0
	for _, d := range n.diseases {
		p := n.prior[d]
		for _, s := range symptoms {
			row := n.cpt[d]
			like, ok := row[s]
			if !ok {
				like = pUnassociated
			}
			p *= like
		}
		post[d] = p
		total += p
	}
	if total == 0 {
		uniform := 1.0 / float64(len(n.diseases))
		for _, d := range n.diseases {
			post[d] = uniform
		}
		return post
	}
	for d := range post {
		post[d] /= total
	}
	return post
}

// Diseases returns the network's disease domain in canonical order.
func (n *Network) Diseases() []kb.Sym {
	out := make([]kb.Sym, len(n.diseases))
	copy(out, n.diseases)
	return out
}
