package config

import (
	"fmt"

	"github.com/plantaid/plantaid/pkg/plantaid/bayes"
	"github.com/plantaid/plantaid/pkg/plantaid/classify"
	"github.com/plantaid/plantaid/pkg/plantaid/fusion"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
)

// Loader loads all configuration files and constructs components.
// Empty paths fall back to defaults derived from the knowledge base.
type Loader struct {
	FusionPath     string
	BayesPath      string
	ClassifierPath string
}

// Components holds all loaded configuration components
type Components struct {
	Weights    fusion.Weights
	Network    *bayes.Network
	Classifier classify.Classifier
}

// Load reads the configuration files and returns initialized components
func (l *Loader) Load(base *kb.Base) (*Components, error) {
	comp := &Components{}

	if l.FusionPath != "" {
		fw, err := LoadFusionWeights(l.FusionPath)
		if err != nil {
			return nil, fmt.Errorf("load fusion weights: %w", err)
		}
		comp.Weights = fusion.Weights{Bayes: fw.Bayes, Rules: fw.Rules, Classifier: fw.Classifier}
		if err := comp.Weights.Validate(); err != nil {
			return nil, err
		}
	} else {
		comp.Weights = fusion.DefaultWeights()
	}

	if l.BayesPath != "" {
		bc, err := LoadBayes(l.BayesPath)
		if err != nil {
			return nil, fmt.Errorf("load bayes parameters: %w", err)
		}
		priors := make(map[kb.Sym]float64, len(bc.Priors))
		for d, p := range bc.Priors {
			priors[kb.Sym(d)] = p
		}
		cpt := make(map[kb.Sym]map[kb.Sym]float64, len(bc.CPT))
		for d, row := range bc.CPT {
			r := make(map[kb.Sym]float64, len(row))
			for s, p := range row {
				r[kb.Sym(s)] = p
			}
			cpt[kb.Sym(d)] = r
		}
		net, err := bayes.New(priors, cpt, base.Diseases())
		if err != nil {
			return nil, err
		}
		comp.Network = net
	} else {
		comp.Network = bayes.NewDefault(base)
	}

	if l.ClassifierPath != "" {
		cc, err := LoadClassifier(l.ClassifierPath)
		if err != nil {
			return nil, fmt.Errorf("load classifier weights: %w", err)
		}
		weights := make(map[kb.Sym]map[string]float64, len(cc.Weights))
		for d, row := range cc.Weights {
			weights[kb.Sym(d)] = row
		}
		bias := make(map[kb.Sym]float64, len(cc.Bias))
		for d, b := range cc.Bias {
			bias[kb.Sym(d)] = b
		}
		clf, err := classify.NewLinear(base.Diseases(), weights, bias)
		if err != nil {
			return nil, err
		}
		comp.Classifier = clf
	} else {
		comp.Classifier = classify.NewDefault(base)
	}

	return comp, nil
}
