package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/plantaid/plantaid/pkg/plantaid/ontology"
)

type diseaseRow struct {
	id         string
	scientific string
	desc       string
	severity   int
	period     string
	plant      string
	symptoms   []string
	treatments []string
}

type symptomRow struct {
	id   string
	desc string
}

type treatmentRow struct {
	id     string
	desc   string
	dosage string
}

var seedSymptoms = []symptomRow{
	{"macchie_circolari_grigie", "Macchie rotonde grigie con alone giallo"},
	{"macchie_nere_foglie", "Macchie nere circolari su foglie"},
	{"ingiallimento_foglie", "Foglie che diventano gialle"},
	{"caduta_foglie", "Defogliazione prematura"},
	{"muffa_biancastra", "Patina bianca polverosa su foglie e germogli"},
	{"tumori_rami", "Escrescenze tumorali su rami e tronco"},
	{"annerimento_gambo", "Gambo che diventa nero dalla base"},
	{"macchie_bruno_nerastre_frutti", "Tacche bruno-nerastre su frutti"},
	{"avvizzimento_pianta", "Pianta che appassisce completamente"},
}

var seedTreatments = []treatmentRow{
	{"trattamento_rame", "Prodotti rameici (idrossido di rame, poltiglia bordolese)", "200g per 100 litri di acqua"},
	{"trattamento_zolfo", "Zolfo in polvere bagnabile", "2g per litro di acqua"},
	{"trattamento_bicarbonato_potassio", "Bicarbonato di potassio in soluzione acquosa", "5g per litro di acqua"},
	{"potatura_parti_infette", "Asportazione meccanica delle parti malate", ""},
}

var seedDiseases = []diseaseRow{
	{
		id:         "occhio_pavone",
		scientific: "Spilocaea oleagina",
		desc:       "Malattia fungina con macchie circolari grigie e alone giallo sulle foglie",
		severity:   4,
		period:     "Primavera-Autunno",
		plant:      "olivo",
		symptoms:   []string{"macchie_circolari_grigie", "ingiallimento_foglie", "caduta_foglie"},
		treatments: []string{"trattamento_rame"},
	},
	{
		id:         "rogna_olivo",
		scientific: "Pseudomonas savastanoi",
		desc:       "Malattia batterica con formazione di tumori su rami e tronco",
		severity:   5,
		period:     "Tutto_anno",
		plant:      "olivo",
		symptoms:   []string{"tumori_rami"},
		treatments: []string{"potatura_parti_infette", "trattamento_rame"},
	},
	{
		id:         "lebbra_olivo",
		scientific: "Gloeosporium olivarum",
		desc:       "Malattia fungina che colpisce i frutti causando macchie bruno-nerastre",
		severity:   4,
		period:     "Autunno",
		plant:      "olivo",
		symptoms:   []string{"macchie_bruno_nerastre_frutti", "ingiallimento_foglie", "caduta_foglie"},
		treatments: []string{"trattamento_rame"},
	},
	{
		id:         "ticchiolatura_rosa",
		scientific: "Diplocarpon rosae",
		desc:       "Malattia fungina con macchie nere circolari sulle foglie",
		severity:   4,
		period:     "Primavera-Autunno",
		plant:      "rosa",
		symptoms:   []string{"macchie_nere_foglie", "ingiallimento_foglie", "caduta_foglie"},
		treatments: []string{"trattamento_rame"},
	},
	{
		id:         "oidio_rosa",
		scientific: "Sphaeroteca pannosa",
		desc:       "Mal bianco, muffa biancastra su foglie e germogli",
		severity:   3,
		period:     "Primavera-Estate",
		plant:      "rosa",
		symptoms:   []string{"muffa_biancastra"},
		treatments: []string{"trattamento_zolfo"},
	},
	{
		id:         "peronospora_rosa",
		scientific: "Peronospora sparsa",
		desc:       "Malattia fungina con macchie clorotiche e feltro miceliare grigio",
		severity:   4,
		period:     "Primavera",
		plant:      "rosa",
		symptoms:   []string{"ingiallimento_foglie", "caduta_foglie"},
		treatments: []string{"trattamento_rame"},
	},
	{
		id:         "peronospora_basilico",
		scientific: "Peronospora belbahrii",
		desc:       "Malattia fungina con macchie giallastre e muffa grigio-violacea",
		severity:   4,
		period:     "Primavera-Estate",
		plant:      "basilico",
		symptoms:   []string{"ingiallimento_foglie", "caduta_foglie"},
		treatments: []string{"trattamento_bicarbonato_potassio"},
	},
	{
		id:         "fusarium_basilico",
		scientific: "Fusarium oxysporum",
		desc:       "Annerimento del gambo con avvizzimento della pianta",
		severity:   5,
		period:     "Primavera-Estate",
		plant:      "basilico",
		symptoms:   []string{"annerimento_gambo", "avvizzimento_pianta"},
		treatments: []string{"potatura_parti_infette"},
	},
}

// OpenSeeded opens the store and loads the built-in botanical catalogue.
// Seeding is idempotent: rows are upserted by identifier.
func OpenSeeded(ctx context.Context, path string) (ontology.Store, error) {
	st, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	s := st.(*sqliteStore)
	if err := s.seed(ctx); err != nil {
		s.Close()
		return nil, fmt.Errorf("ontology/sqlite: seed: %w", err)
	}
	return s, nil
}

func (s *sqliteStore) seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, sy := range seedSymptoms {
		if err := upsert(ctx, tx,
			`INSERT INTO symptoms(id, description) VALUES(?, ?)
			 ON CONFLICT(id) DO UPDATE SET description=excluded.description`,
			sy.id, sy.desc); err != nil {
			return err
		}
	}
	for _, t := range seedTreatments {
		if err := upsert(ctx, tx,
			`INSERT INTO treatments(id, description, dosage) VALUES(?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET description=excluded.description, dosage=excluded.dosage`,
			t.id, t.desc, t.dosage); err != nil {
			return err
		}
	}
	for _, d := range seedDiseases {
		if err := upsert(ctx, tx,
			`INSERT INTO diseases(id, scientific_name, description, severity, active_period, plant)
			 VALUES(?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			   scientific_name=excluded.scientific_name,
			   description=excluded.description,
			   severity=excluded.severity,
			   active_period=excluded.active_period,
			   plant=excluded.plant`,
			d.id, d.scientific, d.desc, d.severity, d.period, d.plant); err != nil {
			return err
		}
		for _, sy := range d.symptoms {
			if err := upsert(ctx, tx,
				`INSERT OR IGNORE INTO disease_symptoms(disease, symptom) VALUES(?, ?)`,
				d.id, sy); err != nil {
				return err
			}
		}
		for _, t := range d.treatments {
			if err := upsert(ctx, tx,
				`INSERT OR IGNORE INTO disease_treatments(disease, treatment) VALUES(?, ?)`,
				d.id, t); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func upsert(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}
