// Package sqlite implements the ontology store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/plantaid/plantaid/pkg/plantaid/ontology"
)

// sqliteStore implements ontology.Store backed by a SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (or creates) the ontology database with WAL mode enabled
// and the schema initialized. Use ":memory:" for an ephemeral store.
func Open(ctx context.Context, path string) (ontology.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS diseases (
	id TEXT PRIMARY KEY,
	scientific_name TEXT NOT NULL,
	description TEXT NOT NULL,
	severity INTEGER NOT NULL,
	active_period TEXT NOT NULL,
	plant TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS symptoms (
	id TEXT PRIMARY KEY,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS treatments (
	id TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	dosage TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS disease_symptoms (
	disease TEXT NOT NULL,
	symptom TEXT NOT NULL,
	PRIMARY KEY(disease, symptom),
	FOREIGN KEY(disease) REFERENCES diseases(id) ON DELETE CASCADE,
	FOREIGN KEY(symptom) REFERENCES symptoms(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS disease_treatments (
	disease TEXT NOT NULL,
	treatment TEXT NOT NULL,
	PRIMARY KEY(disease, treatment),
	FOREIGN KEY(disease) REFERENCES diseases(id) ON DELETE CASCADE,
	FOREIGN KEY(treatment) REFERENCES treatments(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// DiseaseInfo returns the full record for a disease. Unknown identifiers
// report found=false, never an error.
func (s *sqliteStore) DiseaseInfo(ctx context.Context, disease string) (ontology.DiseaseInfo, bool, error) {
	var info ontology.DiseaseInfo
	err := s.db.QueryRowContext(ctx, `
SELECT id, scientific_name, description, severity, active_period, plant
FROM diseases WHERE id=?`, disease).Scan(
		&info.Name, &info.ScientificName, &info.Description,
		&info.Severity, &info.ActivePeriod, &info.Plant,
	)
	if err == sql.ErrNoRows {
		return ontology.DiseaseInfo{}, false, nil
	}
	if err != nil {
		return ontology.DiseaseInfo{}, false, err
	}

	symptoms, err := s.SymptomsFor(ctx, disease)
	if err != nil {
		return ontology.DiseaseInfo{}, false, err
	}
	info.Symptoms = symptoms

	treatments, err := s.TreatmentsFor(ctx, disease)
	if err != nil {
		return ontology.DiseaseInfo{}, false, err
	}
	info.Treatments = treatments

	return info, true, nil
}

// DiseasesForPlant returns the diseases affecting a plant, ordered by id.
func (s *sqliteStore) DiseasesForPlant(ctx context.Context, plant string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM diseases WHERE plant=? ORDER BY id`, plant)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// SymptomsFor returns the symptoms associated with a disease.
func (s *sqliteStore) SymptomsFor(ctx context.Context, disease string) ([]ontology.SymptomInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT sy.id, sy.description
FROM disease_symptoms ds JOIN symptoms sy ON sy.id = ds.symptom
WHERE ds.disease=? ORDER BY sy.id`, disease)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ontology.SymptomInfo
	for rows.Next() {
		var si ontology.SymptomInfo
		if err := rows.Scan(&si.Name, &si.Description); err != nil {
			return nil, err
		}
		out = append(out, si)
	}
	return out, rows.Err()
}

// TreatmentsFor returns the treatments catalogued for a disease.
func (s *sqliteStore) TreatmentsFor(ctx context.Context, disease string) ([]ontology.TreatmentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT t.id, t.description, t.dosage
FROM disease_treatments dt JOIN treatments t ON t.id = dt.treatment
WHERE dt.disease=? ORDER BY t.id`, disease)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ontology.TreatmentInfo
	for rows.Next() {
		var ti ontology.TreatmentInfo
		if err := rows.Scan(&ti.Name, &ti.Description, &ti.Dosage); err != nil {
			return nil, err
		}
		out = append(out, ti)
	}
	return out, rows.Err()
}

// DiagnoseBySymptoms ranks diseases by the fraction of their associated
// symptoms present in the observed set, highest overlap first.
func (s *sqliteStore) DiagnoseBySymptoms(ctx context.Context, symptoms []string) ([]ontology.Match, error) {
	observed := make(map[string]bool, len(symptoms))
	for _, sy := range symptoms {
		observed[sy] = true
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT d.id, d.plant, ds.symptom
FROM diseases d JOIN disease_symptoms ds ON ds.disease = d.id
ORDER BY d.id, ds.symptom`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type tally struct {
		plant   string
		total   int
		matched int
	}
	tallies := map[string]*tally{}
	var order []string
	for rows.Next() {
		var disease, plant, symptom string
		if err := rows.Scan(&disease, &plant, &symptom); err != nil {
			return nil, err
		}
		t, ok := tallies[disease]
		if !ok {
			t = &tally{plant: plant}
			tallies[disease] = t
			order = append(order, disease)
		}
		t.total++
		if observed[symptom] {
			t.matched++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []ontology.Match
	for _, disease := range order {
		t := tallies[disease]
		if t.matched == 0 {
			continue
		}
		out = append(out, ontology.Match{
			Disease:    disease,
			Plant:      t.plant,
			Confidence: float64(t.matched) / float64(t.total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out, nil
}
