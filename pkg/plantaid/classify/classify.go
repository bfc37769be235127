// Package classify implements the statistical classifier contract: a
// feature vector in, a single top disease prediction with a confidence
// out. The shipped implementation is a linear model whose weights come
// from configuration; training lives outside this repository.
package classify

import (
	"fmt"
	"math"

	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
)

// FeatureVector maps feature names to values. The feature space is the
// nine symptom flags, the plant one-hot flags ("pianta_olivo", ...) and
// the four environmental flags.
type FeatureVector map[string]float64

// Prediction is the classifier's single top result.
type Prediction struct {
	Disease    kb.Sym
	Confidence float64
}

// Classifier returns one top prediction for a feature vector.
type Classifier interface {
	Classify(fv FeatureVector) (Prediction, error)
}

// PlantFeature returns the one-hot feature name for a plant token.
func PlantFeature(plant kb.Sym) string {
	return "pianta_" + string(plant)
}

// Linear is a per-class linear scorer with a softmax over the class
// scores. Immutable after construction.
type Linear struct {
	order   []kb.Sym
	weights map[kb.Sym]map[string]float64
	bias    map[kb.Sym]float64
}

// NewLinear builds a classifier from explicit per-disease weights.
func NewLinear(order []kb.Sym, weights map[kb.Sym]map[string]float64, bias map[kb.Sym]float64) (*Linear, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("classify: empty class list: %w", internalerr.ErrInvalidConfig)
	}
	for _, d := range order {
		if _, ok := weights[d]; !ok {
			return nil, fmt.Errorf("classify: no weights for class %s: %w", d, internalerr.ErrInvalidConfig)
		}
	}
	if bias == nil {
		bias = map[kb.Sym]float64{}
	}
	return &Linear{order: order, weights: weights, bias: bias}, nil
}

// NewDefault derives weights from the knowledge base: each associated
// symptom contributes a unit of evidence for its disease, the matching
// plant flag half a unit. Good enough as a stand-in for a trained model
// and fully deterministic.
func NewDefault(base *kb.Base) *Linear {
	order := base.Diseases()
	weights := make(map[kb.Sym]map[string]float64, len(order))
	plantOf := map[kb.Sym]kb.Sym{
		kb.OcchioPavone:        kb.Olivo,
		kb.RognaOlivo:          kb.Olivo,
		kb.LebbraOlivo:         kb.Olivo,
		kb.TicchiolaturaRosa:   kb.Rosa,
		kb.OidioRosa:           kb.Rosa,
		kb.PeronosporaRosa:     kb.Rosa,
		kb.PeronosporaBasilico: kb.Basilico,
		kb.FusariumBasilico:    kb.Basilico,
	}
	for _, d := range order {
		row := map[string]float64{}
		for _, s := range base.AssociatedSymptoms(d) {
			row[string(s)] = 1.0
		}
		row[PlantFeature(plantOf[d])] = 0.5
		weights[d] = row
	}
	l, _ := NewLinear(order, weights, nil)
	return l
}

// Classify scores every class and returns the softmax winner. A nil
// vector is invalid input; an empty one yields the first class at the
// uniform confidence, which callers treat as "no signal".
func (l *Linear) Classify(fv FeatureVector) (Prediction, error) {
	if fv == nil {
		return Prediction{}, fmt.Errorf("classify: nil feature vector: %w", internalerr.ErrInvalidInput)
	}

	scores := make([]float64, len(l.order))
	for i, d := range l.order {
		s := l.bias[d]
		for name, w := range l.weights[d] {
			s += w * fv[name]
		}
		scores[i] = s
	}

	// Softmax with max subtraction for numeric stability.
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	total := 0.0
	for i := range scores {
		scores[i] = math.Exp(scores[i] - max)
		total += scores[i]
	}

	best := 0
	for i := range scores {
		scores[i] /= total
		if scores[i] > scores[best] {
			best = i
		}
	}
	return Prediction{Disease: l.order[best], Confidence: scores[best]}, nil
}
