package fusion

import (
	"context"
	"testing"

	"github.com/plantaid/plantaid/pkg/plantaid/bayes"
	"github.com/plantaid/plantaid/pkg/plantaid/classify"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
	"github.com/plantaid/plantaid/pkg/plantaid/ontology"
	"github.com/plantaid/plantaid/pkg/plantaid/session"
)

func newFuser(t *testing.T, opts ...Option) (*Fuser, *kb.Base) {
	t.Helper()
	base, err := kb.New()
	if err != nil {
		t.Fatal(err)
	}
	f, err := New(base, bayes.NewDefault(base), classify.NewDefault(base), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return f, base
}

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{"default", DefaultWeights(), false},
		{"uniform", Weights{Bayes: 0.34, Rules: 0.33, Classifier: 0.33}, false},
		{"sum too high", Weights{Bayes: 0.9, Rules: 0.9, Classifier: 0.9}, true},
		{"negative", Weights{Bayes: 1.5, Rules: -0.3, Classifier: -0.2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestDiagnoseRanksAgreement checks that a disease supported by all
// three modules outranks the rest of the domain.
func TestDiagnoseRanksAgreement(t *testing.T) {
	f, base := newFuser(t)

	sess := session.New(base)
	sess.SetPlantType("olivo")
	sess.AssertSymptom(kb.MacchieCircolariGrigie)
	sess.AssertSymptom(kb.IngiallimentoFoglie)
	sess.AssertSymptom(kb.CadutaFoglie)

	report, err := f.Diagnose(context.Background(), sess.Snapshot())
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if report.ID == "" {
		t.Error("report should carry an ID")
	}
	if len(report.Candidates) != len(base.Diseases()) {
		t.Fatalf("expected %d candidates, got %d", len(base.Diseases()), len(report.Candidates))
	}
	top := report.Candidates[0]
	if top.Disease != kb.OcchioPavone {
		t.Fatalf("top candidate: got %s, want occhio_pavone", top.Disease)
	}
	if top.Scores.Bayes == 0 || top.Scores.Rules == 0 || top.Scores.Classifier == 0 {
		t.Errorf("all three modules should contribute: %+v", top.Scores)
	}
	for i := 1; i < len(report.Candidates); i++ {
		if report.Candidates[i].Score > report.Candidates[i-1].Score {
			t.Errorf("candidates not sorted at %d", i)
		}
	}
	if len(report.Treatments) == 0 || report.Treatments[0] != kb.Rame {
		t.Errorf("expected copper treatment for occhio_pavone, got %v", report.Treatments)
	}
}

// TestDiagnoseRuleFallback: with no rule-level diagnosis (single
// unrelated symptom), the fused ranking still covers the full domain
// and rule scores stay zero.
func TestDiagnoseRuleFallback(t *testing.T) {
	f, base := newFuser(t)

	sess := session.New(base)
	sess.AssertSymptom(kb.TumoriRami)

	report, err := f.Diagnose(context.Background(), sess.Snapshot())
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	// No plant type asserted: base rules need one, so the rule engine
	// stays silent and only the probabilistic modules vote.
	for _, c := range report.Candidates {
		if c.Scores.Rules != 0 {
			t.Errorf("rule score for %s should be 0, got %f", c.Disease, c.Scores.Rules)
		}
	}
	if report.Candidates[0].Disease != kb.RognaOlivo {
		t.Errorf("top candidate: got %s, want rogna_olivo", report.Candidates[0].Disease)
	}
}

type stubStore struct {
	info ontology.DiseaseInfo
}

func (s *stubStore) DiseaseInfo(ctx context.Context, disease string) (ontology.DiseaseInfo, bool, error) {
	if disease == s.info.Name {
		return s.info, true, nil
	}
	return ontology.DiseaseInfo{}, false, nil
}

func (s *stubStore) DiseasesForPlant(ctx context.Context, plant string) ([]string, error) {
	return nil, nil
}

func (s *stubStore) SymptomsFor(ctx context.Context, disease string) ([]ontology.SymptomInfo, error) {
	return nil, nil
}

func (s *stubStore) TreatmentsFor(ctx context.Context, disease string) ([]ontology.TreatmentInfo, error) {
	return nil, nil
}

func (s *stubStore) DiagnoseBySymptoms(ctx context.Context, symptoms []string) ([]ontology.Match, error) {
	return nil, nil
}

func (s *stubStore) Close() error { return nil }

// TestDiagnoseEnrichment attaches a store and checks the top candidate
// gets its ontology record; unknown winners leave Detail nil.
func TestDiagnoseEnrichment(t *testing.T) {
	store := &stubStore{info: ontology.DiseaseInfo{
		Name:           "occhio_pavone",
		ScientificName: "Spilocaea oleagina",
		Severity:       4,
	}}
	f, base := newFuser(t, WithStore(store))

	sess := session.New(base)
	sess.SetPlantType("olivo")
	sess.AssertSymptom(kb.MacchieCircolariGrigie)
	sess.AssertSymptom(kb.IngiallimentoFoglie)
	sess.AssertSymptom(kb.CadutaFoglie)

	report, err := f.Diagnose(context.Background(), sess.Snapshot())
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if report.Detail == nil {
		t.Fatal("expected ontology detail for top candidate")
	}
	if report.Detail.ScientificName != "Spilocaea oleagina" {
		t.Errorf("detail: got %q", report.Detail.ScientificName)
	}
}

func TestDiagnoseUniqueIDs(t *testing.T) {
	f, base := newFuser(t)

	sess := session.New(base)
	sess.SetPlantType("rosa")
	sess.AssertSymptom(kb.MuffaBiancastra)
	snap := sess.Snapshot()

	a, err := f.Diagnose(context.Background(), snap)
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Diagnose(context.Background(), snap)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Error("report IDs should be unique")
	}
}
