package kb

import (
	"errors"
	"testing"

	"github.com/plantaid/plantaid/pkg/plantaid/internalerr"
)

func TestNewBuildsDomain(t *testing.T) {
	base, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if base.MaxStratum() != 3 {
		t.Errorf("MaxStratum: got %d, want 3", base.MaxStratum())
	}

	strata := []struct {
		rel  Relation
		want int
	}{
		{Probable, 0},
		{Potentiated, 0},
		{Excluded, 0},
		{KeySymptomMissing, 0},
		{DiseaseSeverity, 0},
		{StrongDiagnosis, 1},
		{CompleteDiagnosis, 1},
		{Valid, 1},
		{Reduced, 1},
		{Final, 2},
		{FinalTreatment, 3},
	}
	for _, tt := range strata {
		if got := base.StratumOf(tt.rel); got != tt.want {
			t.Errorf("StratumOf(%s): got %d, want %d", tt.rel, got, tt.want)
		}
	}

	if len(base.Diseases()) != 8 {
		t.Errorf("Diseases: got %d, want 8", len(base.Diseases()))
	}
}

func TestUnsafeRuleRejected(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{
			"head variable unbound",
			R("bad/head",
				Pos(Probable, V(1), C(Olivo), C(ConfAlta)),
				Pos(SymptomPresent, C(TumoriRami))),
		},
		{
			"negated variable unbound",
			R("bad/negation",
				Pos(Excluded, C(OidioRosa)),
				Neg(SymptomPresent, V(1))),
		},
		{
			"extensional head",
			R("bad/edb-head",
				Pos(SymptomPresent, C(TumoriRami))),
		},
		{
			"negation inside aggregate",
			R("bad/agg-negation",
				Pos(CompleteDiagnosis, C(OidioRosa), C(Rosa), C(ConfCritica))).
				WithCount(1, 3,
					Pos(SymptomPresent, V(1)),
					Neg(SymptomOf, C(OidioRosa), V(1))),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromRules([]Rule{tt.rule}, nil)
			if !errors.Is(err, internalerr.ErrUnsafeRule) {
				t.Errorf("expected ErrUnsafeRule, got %v", err)
			}
		})
	}
}

func TestNegationCycleRejected(t *testing.T) {
	rules := []Rule{
		R("cycle/a",
			Pos(Valid, C(OidioRosa), C(Rosa), C(ConfAlta)),
			Neg(Final, C(OidioRosa), C(Rosa), C(ConfAlta))),
		R("cycle/b",
			Pos(Final, C(OidioRosa), C(Rosa), C(ConfAlta)),
			Pos(Valid, C(OidioRosa), C(Rosa), C(ConfAlta))),
	}
	_, err := NewFromRules(rules, nil)
	if !errors.Is(err, internalerr.ErrNotStratified) {
		t.Errorf("expected ErrNotStratified, got %v", err)
	}
}

func TestDerivedFactRejected(t *testing.T) {
	facts := []Atom{Fact(Final, OidioRosa, Rosa, ConfAlta)}
	if _, err := NewFromRules(nil, facts); err == nil {
		t.Error("expected error for extensional fact with derived relation")
	}
}

func TestNormalizePlant(t *testing.T) {
	base, err := New()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		raw  string
		want Sym
	}{
		{"olivo", Olivo},
		{"Olivo secolare", Olivo},
		{"ROSA", Rosa},
		{"basilico greco", Basilico},
		{"rosa rampicante", Rosa},
		{"quercia rossa", "quercia"},
		{"  Quercia_Rossa ", "quercia"},
	}
	for _, tt := range tests {
		if got := base.NormalizePlant(tt.raw); got != tt.want {
			t.Errorf("NormalizePlant(%q): got %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestConfidence(t *testing.T) {
	base, err := New()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		token Sym
		want  float64
	}{
		{ConfBassa, 0.3},
		{ConfMedia, 0.5},
		{ConfAlta, 0.7},
		{ConfMoltoAlta, 0.9},
		{ConfCritica, 1.0},
		{"sconosciuta", 0.5},
	}
	for _, tt := range tests {
		if got := base.Confidence(tt.token); got != tt.want {
			t.Errorf("Confidence(%s): got %f, want %f", tt.token, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	base, err := New()
	if err != nil {
		t.Fatal(err)
	}

	if got := base.DisplayName(OcchioPavone); got != "Occhio di Pavone" {
		t.Errorf("DisplayName: got %q", got)
	}
	if got := base.DisplayName("macchie_nere_foglie"); got != "Macchie Nere Foglie" {
		t.Errorf("DisplayName fallback: got %q", got)
	}
	if got := base.Canonical("Occhio di Pavone"); got != OcchioPavone {
		t.Errorf("Canonical: got %s", got)
	}
}

func TestAssociatedSymptoms(t *testing.T) {
	base, err := New()
	if err != nil {
		t.Fatal(err)
	}

	got := base.AssociatedSymptoms(OcchioPavone)
	want := []Sym{MacchieCircolariGrigie, IngiallimentoFoglie, CadutaFoglie}
	if len(got) != len(want) {
		t.Fatalf("AssociatedSymptoms: got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AssociatedSymptoms[%d]: got %s, want %s", i, got[i], want[i])
		}
	}

	if got := base.AssociatedSymptoms("malattia_inventata"); len(got) != 0 {
		t.Errorf("unknown disease should have no symptoms, got %v", got)
	}
}

func TestFactArityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Fact with wrong arity should panic")
		}
	}()
	Fact(SymptomOf, OcchioPavone)
}

func TestSortedConfidenceTokens(t *testing.T) {
	base, err := New()
	if err != nil {
		t.Fatal(err)
	}

	toks := base.SortedConfidenceTokens()
	if len(toks) != 5 {
		t.Fatalf("got %d tokens", len(toks))
	}
	if toks[0] != ConfBassa || toks[4] != ConfCritica {
		t.Errorf("unexpected order: %v", toks)
	}
}
