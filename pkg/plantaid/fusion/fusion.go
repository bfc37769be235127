// Package fusion combines the three diagnostic modules into one ranked
// report: the Bayesian posterior, the rule engine's confidence and the
// statistical classifier, blended by a weighted sum over the full
// disease domain.
package fusion

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"

	"github.com/oklog/ulid/v2"

	"github.com/plantaid/plantaid/pkg/plantaid/classify"
	"github.com/plantaid/plantaid/pkg/plantaid/diagnosis"
	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
	"github.com/plantaid/plantaid/pkg/plantaid/ontology"
	"github.com/plantaid/plantaid/pkg/plantaid/session"
)

// Weights are the blend coefficients for the three modules. They should
// sum to one; Validate enforces it within a small tolerance.
type Weights struct {
	Bayes      float64 `yaml:"bayes"`
	Rules      float64 `yaml:"rules"`
	Classifier float64 `yaml:"classifier"`
}

// DefaultWeights favors the probabilistic module, with the rule engine
// second and the classifier as a tiebreaker.
func DefaultWeights() Weights {
	return Weights{Bayes: 0.5, Rules: 0.3, Classifier: 0.2}
}

// Validate checks the weights are non-negative and sum to one.
func (w Weights) Validate() error {
	if w.Bayes < 0 || w.Rules < 0 || w.Classifier < 0 {
		return fmt.Errorf("fusion: negative weight: %w", internalerr.ErrInvalidConfig)
	}
	sum := w.Bayes + w.Rules + w.Classifier
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("fusion: weights sum to %.3f, want 1: %w", sum, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Probabilistic is the inference contract the Bayesian module satisfies.
type Probabilistic interface {
	Infer(symptoms []kb.Sym) map[kb.Sym]float64
	Diseases() []kb.Sym
}

// ModuleScores is the per-module breakdown behind one fused score.
type ModuleScores struct {
	Bayes      float64
	Rules      float64
	Classifier float64
}

// Candidate is one disease ranked by the fused score.
type Candidate struct {
	Disease kb.Sym
	Score   float64
	Scores  ModuleScores
}

// Report is the result of one fused diagnosis. Detail is the ontology
// record for the top candidate when a store is configured and the
// disease is catalogued, nil otherwise.
type Report struct {
	ID          string
	Candidates  []Candidate
	Rules       diagnosis.Result
	Severity    kb.Sym
	Treatments  []kb.Sym
	Preventions []kb.Sym
	Detail      *ontology.DiseaseInfo
}

// Fuser blends the three modules. Construct with New; safe for
// sequential reuse across snapshots.
type Fuser struct {
	base    *kb.Base
	net     Probabilistic
	clf     classify.Classifier
	store   ontology.Store
	weights Weights
	entropy *ulid.MonotonicEntropy
}

// Option configures a Fuser.
type Option func(*Fuser)

// WithWeights overrides the default blend coefficients.
func WithWeights(w Weights) Option {
	return func(f *Fuser) { f.weights = w }
}

// WithStore attaches an ontology store used to enrich the top candidate.
func WithStore(st ontology.Store) Option {
	return func(f *Fuser) { f.store = st }
}

// New builds a fuser over the knowledge base, the Bayesian network and
// the classifier.
func New(base *kb.Base, net Probabilistic, clf classify.Classifier, opts ...Option) (*Fuser, error) {
	f := &Fuser{
		base:    base,
		net:     net,
		clf:     clf,
		weights: DefaultWeights(),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.weights.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Diagnose runs all three modules on a session snapshot and fuses their
// outputs. The rule engine's failure is fatal; a missing ontology record
// for the winner is not.
func (f *Fuser) Diagnose(ctx context.Context, snap session.Snapshot) (Report, error) {
	ruleResult, err := diagnosis.Evaluate(f.base, snap)
	if err != nil {
		return Report{}, err
	}

	posterior := f.net.Infer(snap.Symptoms)
	ruleConf := ruleConfidence(ruleResult)
	pred, err := f.clf.Classify(featureVector(snap))
	if err != nil {
		return Report{}, err
	}

	candidates := make([]Candidate, 0, len(f.net.Diseases()))
	for _, d := range f.net.Diseases() {
		scores := ModuleScores{
			Bayes: posterior[d],
			Rules: ruleConf[d],
		}
		if d == pred.Disease {
			scores.Classifier = pred.Confidence
		}
		fused := f.weights.Bayes*scores.Bayes +
			f.weights.Rules*scores.Rules +
			f.weights.Classifier*scores.Classifier
		candidates = append(candidates, Candidate{Disease: d, Score: fused, Scores: scores})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	report := Report{
		ID:         ulid.MustNew(ulid.Now(), f.entropy).String(),
		Candidates: candidates,
		Rules:      ruleResult,
	}
	if len(candidates) > 0 {
		top := candidates[0].Disease
		x := diagnosis.NewExtractor(f.base)
		report.Severity = x.Severity(ruleResult.Model, top, kb.ConfMedia)
		report.Treatments = x.Treatments(ruleResult.Model, top)
		report.Preventions = x.Preventions(ruleResult.Model, top)
		if f.store != nil {
			info, found, err := f.store.DiseaseInfo(ctx, string(top))
			if err != nil {
				return Report{}, fmt.Errorf("fusion: ontology lookup: %w", err)
			}
			if found {
				report.Detail = &info
			}
		}
	}
	return report, nil
}

// ruleConfidence maps each disease to its best rule-engine confidence.
// Final hypotheses take precedence; the raw projection backs them up so
// a disease excluded from the merge still carries its pre-merge signal.
func ruleConfidence(res diagnosis.Result) map[kb.Sym]float64 {
	conf := map[kb.Sym]float64{}
	for _, h := range res.Raw {
		if h.Confidence > conf[h.Disease] {
			conf[h.Disease] = h.Confidence
		}
	}
	for _, h := range res.Final {
		if h.Confidence > conf[h.Disease] {
			conf[h.Disease] = h.Confidence
		}
	}
	return conf
}

// featureVector encodes a snapshot for the classifier: unit flags for
// asserted symptoms and conditions plus the plant one-hot.
func featureVector(snap session.Snapshot) classify.FeatureVector {
	fv := classify.FeatureVector{}
	for _, s := range snap.Symptoms {
		fv[string(s)] = 1.0
	}
	for _, c := range snap.Conditions {
		fv[string(c)] = 1.0
	}
	if snap.HasPlant {
		fv[classify.PlantFeature(snap.Plant)] = 1.0
	}
	return fv
}
