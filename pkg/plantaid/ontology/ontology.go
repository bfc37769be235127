// Package ontology defines the knowledge-store contract for descriptive
// botanical metadata: scientific names, descriptions, severity scales,
// active periods, symptoms and treatments keyed by disease identity.
package ontology

import "context"

// TreatmentInfo describes one treatment, with an optional dosage.
type TreatmentInfo struct {
	Name        string
	Description string
	Dosage      string
}

// SymptomInfo describes one observable symptom.
type SymptomInfo struct {
	Name        string
	Description string
}

// DiseaseInfo is the full descriptive record for a disease.
type DiseaseInfo struct {
	Name           string
	ScientificName string
	Description    string
	Severity       int // 1..5
	ActivePeriod   string
	Plant          string
	Symptoms       []SymptomInfo
	Treatments     []TreatmentInfo
}

// Match is one result of a symptom-overlap diagnosis: confidence is the
// fraction of the disease's associated symptoms that were observed.
type Match struct {
	Disease    string
	Plant      string
	Confidence float64
}

// Store is the ontology knowledge store. Lookups for unknown identifiers
// report found=false (or empty slices) and never fail; errors are
// reserved for the storage layer itself.
type Store interface {
	DiseaseInfo(ctx context.Context, disease string) (DiseaseInfo, bool, error)
	DiseasesForPlant(ctx context.Context, plant string) ([]string, error)
	SymptomsFor(ctx context.Context, disease string) ([]SymptomInfo, error)
	TreatmentsFor(ctx context.Context, disease string) ([]TreatmentInfo, error)
	DiagnoseBySymptoms(ctx context.Context, symptoms []string) ([]Match, error)
	Close() error
}
