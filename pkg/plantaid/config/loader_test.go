package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plantaid/plantaid/pkg/plantaid/fusion"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
)

func TestLoaderDefaults(t *testing.T) {
	base, err := kb.New()
	if err != nil {
		t.Fatal(err)
	}

	loader := &Loader{}
	comp, err := loader.Load(base)
	if err != nil {
		t.Fatalf("Load with empty paths: %v", err)
	}

	if comp.Weights != fusion.DefaultWeights() {
		t.Errorf("Expected default weights, got %+v", comp.Weights)
	}
	if comp.Network == nil {
		t.Error("Expected default network")
	}
	if comp.Classifier == nil {
		t.Error("Expected default classifier")
	}
}

func TestLoaderInvalidFusionWeights(t *testing.T) {
	base, err := kb.New()
	if err != nil {
		t.Fatal(err)
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "fusion.yaml")
	content := `bayes: 0.9
rules: 0.9
classifier: 0.9
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := &Loader{FusionPath: path}
	if _, err := loader.Load(base); err == nil {
		t.Error("Expected error for weights that do not sum to 1")
	}
}

func TestLoaderExplicitBayes(t *testing.T) {
	base, err := kb.New()
	if err != nil {
		t.Fatal(err)
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bayes.yaml")

	var content string
	content = "priors:\n"
	for _, d := range base.Diseases() {
		content += "  " + string(d) + ": 0.125\n"
	}
	content += "cpt:\n  oidio_rosa:\n    muffa_biancastra: 0.9\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := &Loader{BayesPath: path}
	comp, err := loader.Load(base)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	post := comp.Network.Infer([]kb.Sym{kb.MuffaBiancastra})
	best := kb.Sym("")
	for d, p := range post {
		if best == "" || p > post[best] {
			best = d
		}
	}
	if best != kb.OidioRosa {
		t.Errorf("Expected oidio_rosa as top posterior, got %s", best)
	}
}
