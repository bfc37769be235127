package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

// TestSeededLookups verifies the seeded catalogue end to end.
func TestSeededLookups(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ontology.db")

	st, err := OpenSeeded(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSeeded: %v", err)
	}
	defer st.Close()

	info, found, err := st.DiseaseInfo(ctx, "occhio_pavone")
	if err != nil {
		t.Fatalf("DiseaseInfo: %v", err)
	}
	if !found {
		t.Fatal("occhio_pavone should be found")
	}
	if info.ScientificName != "Spilocaea oleagina" {
		t.Errorf("scientific name: got %q", info.ScientificName)
	}
	if info.Severity != 4 {
		t.Errorf("severity: got %d, want 4", info.Severity)
	}
	if info.ActivePeriod != "Primavera-Autunno" {
		t.Errorf("active period: got %q", info.ActivePeriod)
	}
	if len(info.Symptoms) != 3 {
		t.Errorf("expected 3 symptoms, got %d", len(info.Symptoms))
	}
	if len(info.Treatments) != 1 || info.Treatments[0].Name != "trattamento_rame" {
		t.Errorf("treatments: got %+v", info.Treatments)
	}
	if info.Treatments[0].Dosage != "200g per 100 litri di acqua" {
		t.Errorf("dosage: got %q", info.Treatments[0].Dosage)
	}
}

// TestUnknownDiseaseNotFound checks the found=false contract for unknown
// identifiers.
func TestUnknownDiseaseNotFound(t *testing.T) {
	ctx := context.Background()

	st, err := OpenSeeded(ctx, filepath.Join(t.TempDir(), "ontology.db"))
	if err != nil {
		t.Fatalf("OpenSeeded: %v", err)
	}
	defer st.Close()

	_, found, err := st.DiseaseInfo(ctx, "malattia_inventata")
	if err != nil {
		t.Fatalf("DiseaseInfo: %v", err)
	}
	if found {
		t.Error("unknown disease should report found=false")
	}

	symptoms, err := st.SymptomsFor(ctx, "malattia_inventata")
	if err != nil {
		t.Fatalf("SymptomsFor: %v", err)
	}
	if len(symptoms) != 0 {
		t.Errorf("expected no symptoms, got %d", len(symptoms))
	}
}

func TestDiseasesForPlant(t *testing.T) {
	ctx := context.Background()

	st, err := OpenSeeded(ctx, filepath.Join(t.TempDir(), "ontology.db"))
	if err != nil {
		t.Fatalf("OpenSeeded: %v", err)
	}
	defer st.Close()

	tests := []struct {
		plant string
		want  int
	}{
		{"olivo", 3},
		{"rosa", 3},
		{"basilico", 2},
		{"quercia", 0},
	}
	for _, tt := range tests {
		got, err := st.DiseasesForPlant(ctx, tt.plant)
		if err != nil {
			t.Fatalf("DiseasesForPlant(%s): %v", tt.plant, err)
		}
		if len(got) != tt.want {
			t.Errorf("DiseasesForPlant(%s): got %d diseases, want %d", tt.plant, len(got), tt.want)
		}
	}
}

// TestDiagnoseBySymptoms exercises the overlap ranking: a full symptom
// match should outrank partial matches, and an empty store of evidence
// yields no matches.
func TestDiagnoseBySymptoms(t *testing.T) {
	ctx := context.Background()

	st, err := OpenSeeded(ctx, filepath.Join(t.TempDir(), "ontology.db"))
	if err != nil {
		t.Fatalf("OpenSeeded: %v", err)
	}
	defer st.Close()

	matches, err := st.DiagnoseBySymptoms(ctx, []string{
		"macchie_circolari_grigie", "ingiallimento_foglie", "caduta_foglie",
	})
	if err != nil {
		t.Fatalf("DiagnoseBySymptoms: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}
	if matches[0].Disease != "occhio_pavone" {
		t.Errorf("top match: got %s, want occhio_pavone", matches[0].Disease)
	}
	if matches[0].Confidence != 1.0 {
		t.Errorf("top confidence: got %f, want 1.0", matches[0].Confidence)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Confidence > matches[i-1].Confidence {
			t.Errorf("matches not sorted at %d", i)
		}
	}

	none, err := st.DiagnoseBySymptoms(ctx, []string{"sintomo_sconosciuto"})
	if err != nil {
		t.Fatalf("DiagnoseBySymptoms: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

// TestSeedIdempotent runs the seed twice against the same database.
func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ontology.db")

	st, err := OpenSeeded(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSeeded: %v", err)
	}
	st.Close()

	st, err = OpenSeeded(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	diseases, err := st.DiseasesForPlant(ctx, "olivo")
	if err != nil {
		t.Fatalf("DiseasesForPlant: %v", err)
	}
	if len(diseases) != 3 {
		t.Errorf("expected 3 olivo diseases after reseed, got %d", len(diseases))
	}
}
