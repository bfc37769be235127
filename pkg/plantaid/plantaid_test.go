package plantaid

import (
	"context"
	"testing"

	"github.com/plantaid/plantaid/pkg/plantaid/kb"
)

func TestSystemEndToEnd(t *testing.T) {
	sys, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer sys.Close()

	sess := sys.NewSession()
	sess.SetPlantType("olivo")
	sess.AssertSymptom(kb.MacchieCircolariGrigie)
	sess.AssertSymptom(kb.IngiallimentoFoglie)
	sess.AssertSymptom(kb.CadutaFoglie)
	sess.AssertCondition(kb.UmiditaAlta)

	res, err := sys.Diagnose(sess.Snapshot())
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if len(res.Final) == 0 || res.Final[0].Disease != kb.OcchioPavone {
		t.Fatalf("rule diagnosis: got %+v", res.Final)
	}

	report, err := sys.DiagnoseFused(context.Background(), sess.Snapshot())
	if err != nil {
		t.Fatalf("DiagnoseFused: %v", err)
	}
	if report.Candidates[0].Disease != kb.OcchioPavone {
		t.Errorf("fused top: got %s", report.Candidates[0].Disease)
	}
	if report.ID == "" {
		t.Error("fused report should carry an ID")
	}
}

func TestSystemEmptySession(t *testing.T) {
	sys, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer sys.Close()

	res, err := sys.Diagnose(sys.NewSession().Snapshot())
	if err != nil {
		t.Fatalf("Diagnose on empty session: %v", err)
	}
	if len(res.Final) != 0 {
		t.Errorf("expected no hypotheses, got %d", len(res.Final))
	}
}
