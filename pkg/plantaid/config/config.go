// Package config loads the tunable parts of the diagnostic stack from
// YAML files: fusion weights, Bayesian priors and CPTs, and classifier
// weights. Every file is optional; the loader falls back to the
// knowledge-base defaults.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FusionWeights is the blend-coefficient configuration.
type FusionWeights struct {
	Bayes      float64 `yaml:"bayes"`
	Rules      float64 `yaml:"rules"`
	Classifier float64 `yaml:"classifier"`
}

// LoadFusionWeights loads fusion weights from a YAML file
func LoadFusionWeights(path string) (*FusionWeights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fw FusionWeights
	if err := yaml.Unmarshal(data, &fw); err != nil {
		return nil, err
	}

	return &fw, nil
}

// BayesConfig is the Bayesian network configuration: disease priors and
// per-disease symptom likelihoods.
type BayesConfig struct {
	Priors map[string]float64            `yaml:"priors"`
	CPT    map[string]map[string]float64 `yaml:"cpt"`
}

// LoadBayes loads the Bayesian network parameters from a YAML file
func LoadBayes(path string) (*BayesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bc BayesConfig
	if err := yaml.Unmarshal(data, &bc); err != nil {
		return nil, err
	}

	return &bc, nil
}

// ClassifierConfig is the linear classifier configuration: per-disease
// feature weights and biases.
type ClassifierConfig struct {
	Weights map[string]map[string]float64 `yaml:"weights"`
	Bias    map[string]float64            `yaml:"bias"`
}

// LoadClassifier loads classifier weights from a YAML file
func LoadClassifier(path string) (*ClassifierConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cc ClassifierConfig
	if err := yaml.Unmarshal(data, &cc); err != nil {
		return nil, err
	}

	return &cc, nil
}
