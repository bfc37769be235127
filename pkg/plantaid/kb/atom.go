package kb

import (
	"fmt"
	"strings"
)

// Sym is an identifier in the canonical snake_case namespace shared by the
// rule engine, the Bayesian module and the statistical classifier
// (e.g. "occhio_pavone", "umidita_alta").
type Sym string

// Relation names a fixed-arity set of atoms. The enumeration is closed:
// relations are resolved at knowledge-base construction time, never by
// runtime string matching.
type Relation int

const (
	// Session EDB: asserted per diagnostic session, never derived.
	SymptomPresent Relation = iota // (symptom)
	PlantType                      // (plant), singleton
	ConditionPresent               // (condition)
	CurrentSeason                  // (season), singleton

	// Static EDB: fixed domain data, never derived.
	PlantKind           // (plant)
	SymptomOf           // (disease, symptom)
	ActiveIn            // (disease, season)
	NeedsHighHumidity   // (disease)
	RainFavored         // (disease)
	WaterloggingFavored // (disease)
	KeySymptom          // (disease, symptom)
	Treatment           // (disease, treatment)
	PreventionGeneric   // (disease class, measure)
	FungalDisease       // (disease)
	BacterialDisease    // (disease)
	ExcludedBy          // (disease, symptom)

	// IDB: defined only by rule heads.
	Probable           // (disease, plant, confidence)
	Potentiated        // (disease, plant, confidence)
	RiskRaised         // (disease)
	SeasonFavorable    // (disease)
	Reduced            // (disease, plant, confidence)
	KeySymptomMissing  // (disease)
	StrongDiagnosis    // (disease, plant)
	CompleteDiagnosis  // (disease, plant, confidence)
	Excluded           // (disease)
	Valid              // (disease, plant, confidence)
	Final              // (disease, plant, confidence)
	DiseaseSeverity    // (disease, level)
	FinalTreatment     // (treatment, disease)
	PreventionSpecific // (disease, measure)
	HighFungalRisk     // ()

	numRelations
)

// MaxArity is the largest arity any relation carries.
const MaxArity = 3

var relInfo = [numRelations]struct {
	name  string
	arity int
	idb   bool
}{
	SymptomPresent:      {"symptom_present", 1, false},
	PlantType:           {"plant_type", 1, false},
	ConditionPresent:    {"condition_present", 1, false},
	CurrentSeason:       {"current_season", 1, false},
	PlantKind:           {"plant_kind", 1, false},
	SymptomOf:           {"symptom_of", 2, false},
	ActiveIn:            {"active_in", 2, false},
	NeedsHighHumidity:   {"needs_high_humidity", 1, false},
	RainFavored:         {"rain_favored", 1, false},
	WaterloggingFavored: {"waterlogging_favored", 1, false},
	KeySymptom:          {"key_symptom", 2, false},
	Treatment:           {"treatment", 2, false},
	PreventionGeneric:   {"prevention_generic", 2, false},
	FungalDisease:       {"fungal_disease", 1, false},
	BacterialDisease:    {"bacterial_disease", 1, false},
	ExcludedBy:          {"excluded_by", 2, false},
	Probable:            {"probable", 3, true},
	Potentiated:         {"potentiated", 3, true},
	RiskRaised:          {"risk_raised", 1, true},
	SeasonFavorable:     {"season_favorable", 1, true},
	Reduced:             {"reduced", 3, true},
	KeySymptomMissing:   {"key_symptom_missing", 1, true},
	StrongDiagnosis:     {"strong_diagnosis", 2, true},
	CompleteDiagnosis:   {"complete_diagnosis", 3, true},
	Excluded:            {"excluded", 1, true},
	Valid:               {"valid", 3, true},
	Final:               {"final", 3, true},
	DiseaseSeverity:     {"disease_severity", 2, true},
	FinalTreatment:      {"final_treatment", 2, true},
	PreventionSpecific:  {"prevention_specific", 2, true},
	HighFungalRisk:      {"high_fungal_risk", 0, true},
}

// String returns the relation name.
func (r Relation) String() string {
	if r < 0 || r >= numRelations {
		return fmt.Sprintf("relation(%d)", int(r))
	}
	return relInfo[r].name
}

// Arity returns the fixed argument count of the relation.
func (r Relation) Arity() int { return relInfo[r].arity }

// IsIDB reports whether the relation is derived (intensional).
func (r Relation) IsIDB() bool { return relInfo[r].idb }

// NumRelations is the size of the closed relation enumeration.
func NumRelations() int { return int(numRelations) }

// Atom is a ground fact: a relation plus its argument tuple. Atoms are
// immutable value objects; equality is structural, so Atom is usable as a
// map key directly.
type Atom struct {
	Rel  Relation
	Args [MaxArity]Sym
}

// Fact builds a ground atom. The number of arguments must match the
// relation arity; Fact panics otherwise since all call sites are static
// domain data or rule heads fixed at build time.
func Fact(rel Relation, args ...Sym) Atom {
	if len(args) != rel.Arity() {
		panic(fmt.Sprintf("kb: %s expects %d arguments, got %d", rel, rel.Arity(), len(args)))
	}
	a := Atom{Rel: rel}
	copy(a.Args[:], args)
	return a
}

// String renders the atom in predicate notation, e.g. "probable(occhio_pavone, olivo, alta)".
func (a Atom) String() string {
	n := a.Rel.Arity()
	if n == 0 {
		return a.Rel.String()
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = string(a.Args[i])
	}
	return fmt.Sprintf("%s(%s)", a.Rel, strings.Join(parts, ", "))
}
