package bayes

import (
	"errors"
	"math"
	"testing"

	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
)

func newNetwork(t *testing.T) (*Network, *kb.Base) {
	t.Helper()
	base, err := kb.New()
	if err != nil {
		t.Fatal(err)
	}
	return NewDefault(base), base
}

func sumsToOne(t *testing.T, post map[kb.Sym]float64) {
	t.Helper()
	total := 0.0
	for _, p := range post {
		total += p
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("posterior sums to %f, want 1", total)
	}
}

func TestInferAssociatedSymptomWins(t *testing.T) {
	n, _ := newNetwork(t)

	post := n.Infer([]kb.Sym{kb.TumoriRami})
	sumsToOne(t, post)

	for d, p := range post {
		if d == kb.RognaOlivo {
			continue
		}
		if post[kb.RognaOlivo] <= p {
			t.Errorf("rogna_olivo (%f) should beat %s (%f)", post[kb.RognaOlivo], d, p)
		}
	}
}

func TestInferMultipleSymptoms(t *testing.T) {
	n, _ := newNetwork(t)

	post := n.Infer([]kb.Sym{
		kb.MacchieCircolariGrigie, kb.IngiallimentoFoglie, kb.CadutaFoglie,
	})
	sumsToOne(t, post)

	best := kb.Sym("")
	for d, p := range post {
		if best == "" || p > post[best] {
			best = d
		}
	}
	if best != kb.OcchioPavone {
		t.Errorf("top posterior: got %s, want occhio_pavone", best)
	}
}

func TestInferNoEvidenceReturnsPrior(t *testing.T) {
	n, base := newNetwork(t)

	post := n.Infer(nil)
	sumsToOne(t, post)

	uniform := 1.0 / float64(len(base.Diseases()))
	for d, p := range post {
		if math.Abs(p-uniform) > 1e-9 {
			t.Errorf("%s: got %f, want uniform %f", d, p, uniform)
		}
	}
}

func TestInferUnknownSymptomNeutral(t *testing.T) {
	n, _ := newNetwork(t)

	// An unknown token hits the background likelihood for every disease,
	// so it cancels out in the normalization.
	post := n.Infer([]kb.Sym{"sintomo_misterioso"})
	sumsToOne(t, post)

	var first float64
	i := 0
	for _, p := range post {
		if i == 0 {
			first = p
		} else if math.Abs(p-first) > 1e-9 {
			t.Errorf("unknown symptom should leave the prior untouched: %v", post)
			break
		}
		i++
	}
}

func TestNewValidation(t *testing.T) {
	base, err := kb.New()
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(nil, nil, nil)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("empty domain: got %v", err)
	}

	priors := map[kb.Sym]float64{}
	for _, d := range base.Diseases() {
		priors[d] = 0.125
	}
	priors[kb.OidioRosa] = 0
	_, err = New(priors, nil, base.Diseases())
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("zero prior: got %v", err)
	}
}

func TestDiseasesCopy(t *testing.T) {
	n, base := newNetwork(t)

	ds := n.Diseases()
	ds[0] = "manomesso"
	if n.Diseases()[0] != base.Diseases()[0] {
		t.Error("Diseases must return a copy")
	}
}
