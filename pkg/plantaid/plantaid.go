// Package plantaid is the diagnostic engine facade: a stratified rule
// engine, a Bayesian network and a linear classifier fused into one
// ranked diagnosis over a fixed botanical domain.
package plantaid

import (
	"context"

	"github.com/plantaid/plantaid/pkg/plantaid/bayes"
	"github.com/plantaid/plantaid/pkg/plantaid/classify"
	"github.com/plantaid/plantaid/pkg/plantaid/diagnosis"
	"github.com/plantaid/plantaid/pkg/plantaid/fusion"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
	"github.com/plantaid/plantaid/pkg/plantaid/ontology"
	"github.com/plantaid/plantaid/pkg/plantaid/session"
)

// System is the main diagnostic facade
type System struct {
	base  *kb.Base
	fuser *fusion.Fuser
	store ontology.Store
}

// Options configures a System instance
type Options struct {
	// Network overrides the default Bayesian network built from the
	// knowledge base.
	Network *bayes.Network

	// Classifier overrides the default knowledge-base-derived linear
	// classifier.
	Classifier classify.Classifier

	// Weights overrides the default fusion blend. Zero value means
	// defaults.
	Weights fusion.Weights

	// Store is an optional ontology store for report enrichment.
	Store ontology.Store
}

// New creates a System with the given dependencies
func New(opts Options) (*System, error) {
	base, err := kb.New()
	if err != nil {
		return nil, err
	}

	net := opts.Network
	if net == nil {
		net = bayes.NewDefault(base)
	}
	clf := opts.Classifier
	if clf == nil {
		clf = classify.NewDefault(base)
	}
	weights := opts.Weights
	if weights == (fusion.Weights{}) {
		weights = fusion.DefaultWeights()
	}

	fuserOpts := []fusion.Option{fusion.WithWeights(weights)}
	if opts.Store != nil {
		fuserOpts = append(fuserOpts, fusion.WithStore(opts.Store))
	}
	fuser, err := fusion.New(base, net, clf, fuserOpts...)
	if err != nil {
		return nil, err
	}

	return &System{base: base, fuser: fuser, store: opts.Store}, nil
}

// Close cleanly shuts down the System instance
func (s *System) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Base exposes the knowledge base for session construction and
// vocabulary queries.
func (s *System) Base() *kb.Base { return s.base }

// NewSession starts an empty diagnostic session bound to the knowledge
// base.
func (s *System) NewSession() *session.Session {
	return session.New(s.base)
}

// Diagnose runs the rule engine alone on a session snapshot.
func (s *System) Diagnose(snap session.Snapshot) (diagnosis.Result, error) {
	return diagnosis.Evaluate(s.base, snap)
}

// DiagnoseFused runs all three modules and fuses their outputs into a
// ranked report.
func (s *System) DiagnoseFused(ctx context.Context, snap session.Snapshot) (fusion.Report, error) {
	return s.fuser.Diagnose(ctx, snap)
}
