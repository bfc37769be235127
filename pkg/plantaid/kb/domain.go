package kb

// Canonical domain vocabulary. The snake_case Italian tokens are the shared
// namespace across the rule engine, the Bayesian module, the classifier and
// the ontology store.

// Plants.
const (
	Olivo    Sym = "olivo"
	Rosa     Sym = "rosa"
	Basilico Sym = "basilico"
)

// Diseases.
const (
	OcchioPavone        Sym = "occhio_pavone"
	RognaOlivo          Sym = "rogna_olivo"
	LebbraOlivo         Sym = "lebbra_olivo"
	TicchiolaturaRosa   Sym = "ticchiolatura_rosa"
	OidioRosa           Sym = "oidio_rosa"
	PeronosporaRosa     Sym = "peronospora_rosa"
	PeronosporaBasilico Sym = "peronospora_basilico"
	FusariumBasilico    Sym = "fusarium_basilico"
)

// Symptoms.
const (
	MacchieCircolariGrigie     Sym = "macchie_circolari_grigie"
	IngiallimentoFoglie        Sym = "ingiallimento_foglie"
	CadutaFoglie               Sym = "caduta_foglie"
	TumoriRami                 Sym = "tumori_rami"
	MacchieBrunoNerastreFrutti Sym = "macchie_bruno_nerastre_frutti"
	MacchieNereFoglie          Sym = "macchie_nere_foglie"
	MuffaBiancastra            Sym = "muffa_biancastra"
	AnnerimentoGambo           Sym = "annerimento_gambo"
	AvvizzimentoPianta         Sym = "avvizzimento_pianta"
)

// Environmental conditions.
const (
	UmiditaAlta     Sym = "umidita_alta"
	TemperaturaMite Sym = "temperatura_mite"
	PioggeRecenti   Sym = "piogge_recenti"
	RistagnoIdrico  Sym = "ristagno_idrico"
)

// Seasons.
const (
	Primavera   Sym = "primavera"
	Estate      Sym = "estate"
	Autunno     Sym = "autunno"
	InvernoMite Sym = "inverno_mite"
	FineEstate  Sym = "fine_estate"
	TuttoAnno   Sym = "tutto_anno"
)

// Confidence tokens, weakest to strongest.
const (
	ConfBassa     Sym = "bassa"
	ConfMedia     Sym = "media"
	ConfAlta      Sym = "alta"
	ConfMoltoAlta Sym = "molto_alta"
	ConfCritica   Sym = "critica"
)

// Treatments and preventions.
const (
	Rame                 Sym = "rame"
	Zolfo                Sym = "zolfo"
	BicarbonatoPotassio  Sym = "bicarbonato_potassio"
	PotaturaPartiInfette Sym = "potatura_parti_infette"

	MalattieFungine            Sym = "malattie_fungine"
	EvitareRistagniAcqua       Sym = "evitare_ristagni_acqua"
	PotaturaAerazione          Sym = "potatura_aerazione"
	TrattamentiPreventiviRame  Sym = "trattamenti_preventivi_rame"
	EvitareIrrigazioneFogliare Sym = "evitare_irrigazione_fogliare"
	DrenaggioTerreno           Sym = "drenaggio_terreno"
)

var diseaseOrder = []Sym{
	OcchioPavone,
	RognaOlivo,
	LebbraOlivo,
	TicchiolaturaRosa,
	OidioRosa,
	PeronosporaRosa,
	PeronosporaBasilico,
	FusariumBasilico,
}

func confidenceTable() map[Sym]float64 {
	return map[Sym]float64{
		ConfBassa:     0.3,
		ConfMedia:     0.5,
		ConfAlta:      0.7,
		ConfMoltoAlta: 0.9,
		ConfCritica:   1.0,
	}
}

func severityRankTable() map[Sym]int {
	return map[Sym]int{
		ConfBassa:   1,
		ConfMedia:   2,
		ConfAlta:    3,
		ConfCritica: 4,
	}
}

func displayNameTable() map[Sym]string {
	return map[Sym]string{
		OcchioPavone:        "Occhio di Pavone",
		RognaOlivo:          "Rogna dell'Olivo",
		LebbraOlivo:         "Lebbra dell'Olivo",
		TicchiolaturaRosa:   "Ticchiolatura della Rosa",
		OidioRosa:           "Oidio della Rosa",
		PeronosporaRosa:     "Peronospora della Rosa",
		PeronosporaBasilico: "Peronospora del Basilico",
		FusariumBasilico:    "Fusarium del Basilico",
	}
}

func plantSynonyms() []Sym {
	return []Sym{Olivo, Rosa, Basilico}
}

// domainFacts returns the static extensional database: symptom
// associations, seasonal activity, environmental requirements, weather
// favorability, key discriminating symptoms, treatment and prevention
// catalogs, exclusion conditions, and pathogen class.
func domainFacts() []Atom {
	return []Atom{
		Fact(PlantKind, Olivo),
		Fact(PlantKind, Rosa),
		Fact(PlantKind, Basilico),

		// Symptom-disease associations.
		Fact(SymptomOf, OcchioPavone, MacchieCircolariGrigie),
		Fact(SymptomOf, OcchioPavone, IngiallimentoFoglie),
		Fact(SymptomOf, OcchioPavone, CadutaFoglie),
		Fact(SymptomOf, RognaOlivo, TumoriRami),
		Fact(SymptomOf, LebbraOlivo, MacchieBrunoNerastreFrutti),
		Fact(SymptomOf, LebbraOlivo, IngiallimentoFoglie),
		Fact(SymptomOf, LebbraOlivo, CadutaFoglie),
		Fact(SymptomOf, TicchiolaturaRosa, MacchieNereFoglie),
		Fact(SymptomOf, TicchiolaturaRosa, IngiallimentoFoglie),
		Fact(SymptomOf, TicchiolaturaRosa, CadutaFoglie),
		Fact(SymptomOf, OidioRosa, MuffaBiancastra),
		Fact(SymptomOf, PeronosporaRosa, IngiallimentoFoglie),
		Fact(SymptomOf, PeronosporaRosa, CadutaFoglie),
		Fact(SymptomOf, PeronosporaBasilico, IngiallimentoFoglie),
		Fact(SymptomOf, PeronosporaBasilico, CadutaFoglie),
		Fact(SymptomOf, FusariumBasilico, AnnerimentoGambo),
		Fact(SymptomOf, FusariumBasilico, AvvizzimentoPianta),

		// High humidity requirement.
		Fact(NeedsHighHumidity, OcchioPavone),
		Fact(NeedsHighHumidity, LebbraOlivo),
		Fact(NeedsHighHumidity, TicchiolaturaRosa),
		Fact(NeedsHighHumidity, OidioRosa),
		Fact(NeedsHighHumidity, PeronosporaRosa),
		Fact(NeedsHighHumidity, PeronosporaBasilico),
		Fact(NeedsHighHumidity, FusariumBasilico),
		Fact(NeedsHighHumidity, RognaOlivo),

		// Seasonal activity.
		Fact(ActiveIn, OcchioPavone, Primavera),
		Fact(ActiveIn, OcchioPavone, Autunno),
		Fact(ActiveIn, OcchioPavone, InvernoMite),
		Fact(ActiveIn, RognaOlivo, TuttoAnno),
		Fact(ActiveIn, LebbraOlivo, Autunno),
		Fact(ActiveIn, TicchiolaturaRosa, Primavera),
		Fact(ActiveIn, TicchiolaturaRosa, FineEstate),
		Fact(ActiveIn, OidioRosa, Primavera),
		Fact(ActiveIn, OidioRosa, Estate),
		Fact(ActiveIn, PeronosporaRosa, Primavera),
		Fact(ActiveIn, PeronosporaBasilico, Primavera),
		Fact(ActiveIn, PeronosporaBasilico, Estate),
		Fact(ActiveIn, FusariumBasilico, Primavera),
		Fact(ActiveIn, FusariumBasilico, Estate),

		// Weather favorability.
		Fact(RainFavored, OcchioPavone),
		Fact(RainFavored, LebbraOlivo),
		Fact(RainFavored, TicchiolaturaRosa),
		Fact(RainFavored, PeronosporaRosa),
		Fact(RainFavored, PeronosporaBasilico),
		Fact(WaterloggingFavored, FusariumBasilico),
		Fact(WaterloggingFavored, PeronosporaBasilico),

		// Key discriminating symptoms.
		Fact(KeySymptom, OcchioPavone, MacchieCircolariGrigie),
		Fact(KeySymptom, TicchiolaturaRosa, MacchieNereFoglie),
		Fact(KeySymptom, OidioRosa, MuffaBiancastra),
		Fact(KeySymptom, FusariumBasilico, AnnerimentoGambo),
		Fact(KeySymptom, RognaOlivo, TumoriRami),
		Fact(KeySymptom, LebbraOlivo, MacchieBrunoNerastreFrutti),

		// Exclusion conditions: presence of the symptom disqualifies the disease.
		Fact(ExcludedBy, TicchiolaturaRosa, MuffaBiancastra),
		Fact(ExcludedBy, PeronosporaBasilico, AnnerimentoGambo),
		Fact(ExcludedBy, FusariumBasilico, MacchieNereFoglie),

		// Treatment catalog.
		Fact(Treatment, OcchioPavone, Rame),
		Fact(Treatment, LebbraOlivo, Rame),
		Fact(Treatment, RognaOlivo, PotaturaPartiInfette),
		Fact(Treatment, RognaOlivo, Rame),
		Fact(Treatment, TicchiolaturaRosa, Rame),
		Fact(Treatment, OidioRosa, Zolfo),
		Fact(Treatment, PeronosporaRosa, Rame),
		Fact(Treatment, PeronosporaBasilico, BicarbonatoPotassio),
		Fact(Treatment, FusariumBasilico, PotaturaPartiInfette),

		// Generic prevention for fungal diseases.
		Fact(PreventionGeneric, MalattieFungine, EvitareRistagniAcqua),
		Fact(PreventionGeneric, MalattieFungine, PotaturaAerazione),
		Fact(PreventionGeneric, MalattieFungine, TrattamentiPreventiviRame),

		// Pathogen class.
		Fact(FungalDisease, OcchioPavone),
		Fact(FungalDisease, LebbraOlivo),
		Fact(FungalDisease, TicchiolaturaRosa),
		Fact(FungalDisease, OidioRosa),
		Fact(FungalDisease, PeronosporaRosa),
		Fact(FungalDisease, PeronosporaBasilico),
		Fact(FungalDisease, FusariumBasilico),
		Fact(BacterialDisease, RognaOlivo),
	}
}

// Rule variables. Each rule reads them locally; the numbers only need to
// be unique within one rule.
const (
	vM Var = iota + 1 // disease
	vP                // plant
	vC                // confidence
	vS                // symptom
	vT                // treatment / season
)

// domainRules returns the diagnostic rule set: base rules per plant,
// environmental potentiation, correlation strengthening, differential
// exclusion, final merge, severity, treatment resolution and prevention.
func domainRules() []Rule {
	sym := func(s Sym) Literal { return Pos(SymptomPresent, C(s)) }
	noSym := func(s Sym) Literal { return Neg(SymptomPresent, C(s)) }
	plant := func(p Sym) Literal { return Pos(PlantType, C(p)) }
	cond := func(c Sym) Literal { return Pos(ConditionPresent, C(c)) }
	return []Rule{
		// --- Base diagnostic rules: olive ---
		R("occhio_pavone/alta",
			Pos(Probable, C(OcchioPavone), C(Olivo), C(ConfAlta)),
			sym(MacchieCircolariGrigie), sym(IngiallimentoFoglie), plant(Olivo)),
		R("occhio_pavone/media",
			Pos(Probable, C(OcchioPavone), C(Olivo), C(ConfMedia)),
			sym(MacchieCircolariGrigie), plant(Olivo), noSym(IngiallimentoFoglie)),
		R("rogna_olivo/alta",
			Pos(Probable, C(RognaOlivo), C(Olivo), C(ConfAlta)),
			sym(TumoriRami), plant(Olivo)),
		R("lebbra_olivo/alta",
			Pos(Probable, C(LebbraOlivo), C(Olivo), C(ConfAlta)),
			sym(MacchieBrunoNerastreFrutti), plant(Olivo)),
		R("lebbra_olivo/molto_alta",
			Pos(Probable, C(LebbraOlivo), C(Olivo), C(ConfMoltoAlta)),
			sym(MacchieBrunoNerastreFrutti), sym(IngiallimentoFoglie), sym(CadutaFoglie), plant(Olivo)),

		// --- Base diagnostic rules: rose ---
		R("ticchiolatura_rosa/alta",
			Pos(Probable, C(TicchiolaturaRosa), C(Rosa), C(ConfAlta)),
			sym(MacchieNereFoglie), plant(Rosa)),
		R("ticchiolatura_rosa/molto_alta",
			Pos(Probable, C(TicchiolaturaRosa), C(Rosa), C(ConfMoltoAlta)),
			sym(MacchieNereFoglie), sym(IngiallimentoFoglie), sym(CadutaFoglie), plant(Rosa)),
		R("oidio_rosa/alta",
			Pos(Probable, C(OidioRosa), C(Rosa), C(ConfAlta)),
			sym(MuffaBiancastra), plant(Rosa)),
		R("peronospora_rosa/alta",
			Pos(Probable, C(PeronosporaRosa), C(Rosa), C(ConfAlta)),
			sym(IngiallimentoFoglie), sym(CadutaFoglie), plant(Rosa),
			noSym(MacchieNereFoglie), noSym(MuffaBiancastra)),

		// --- Base diagnostic rules: basil ---
		R("peronospora_basilico/alta",
			Pos(Probable, C(PeronosporaBasilico), C(Basilico), C(ConfAlta)),
			sym(IngiallimentoFoglie), plant(Basilico), noSym(AnnerimentoGambo)),
		R("peronospora_basilico/molto_alta",
			Pos(Probable, C(PeronosporaBasilico), C(Basilico), C(ConfMoltoAlta)),
			sym(IngiallimentoFoglie), sym(CadutaFoglie), plant(Basilico), noSym(AnnerimentoGambo)),
		R("fusarium_basilico/molto_alta",
			Pos(Probable, C(FusariumBasilico), C(Basilico), C(ConfMoltoAlta)),
			sym(AnnerimentoGambo), plant(Basilico)),
		R("fusarium_basilico/critica",
			Pos(Probable, C(FusariumBasilico), C(Basilico), C(ConfCritica)),
			sym(AnnerimentoGambo), sym(AvvizzimentoPianta), plant(Basilico)),

		// --- Environmental potentiation. Escalation, never addition:
		// alta -> molto_alta under high humidity, molto_alta -> critica
		// when mild temperature holds as well.
		R("potentiation/humidity",
			Pos(Potentiated, V(vM), V(vP), C(ConfMoltoAlta)),
			Pos(Probable, V(vM), V(vP), C(ConfAlta)),
			cond(UmiditaAlta),
			Pos(NeedsHighHumidity, V(vM))),
		R("potentiation/humidity+temperature",
			Pos(Potentiated, V(vM), V(vP), C(ConfCritica)),
			Pos(Probable, V(vM), V(vP), C(ConfMoltoAlta)),
			cond(UmiditaAlta), cond(TemperaturaMite),
			Pos(NeedsHighHumidity, V(vM))),
		R("risk/rain",
			Pos(RiskRaised, V(vM)),
			Pos(RainFavored, V(vM)), cond(PioggeRecenti)),
		R("risk/waterlogging",
			Pos(RiskRaised, V(vM)),
			Pos(WaterloggingFavored, V(vM)), cond(RistagnoIdrico)),
		R("season/favorable",
			Pos(SeasonFavorable, V(vM)),
			Pos(ActiveIn, V(vM), V(vT)), Pos(CurrentSeason, V(vT))),
		R("season/reduced",
			Pos(Reduced, V(vM), V(vP), C(ConfMedia)),
			Pos(Probable, V(vM), V(vP), C(ConfAlta)),
			Neg(SeasonFavorable, V(vM))),

		// --- Correlation strengthening ---
		R("key_symptom/missing",
			Pos(KeySymptomMissing, V(vM)),
			Pos(KeySymptom, V(vM), V(vS)), Neg(SymptomPresent, V(vS))),
		R("diagnosis/strong",
			Pos(StrongDiagnosis, V(vM), V(vP)),
			Pos(Probable, V(vM), V(vP), Any),
			Neg(KeySymptomMissing, V(vM))),
		R("diagnosis/complete",
			Pos(CompleteDiagnosis, V(vM), V(vP), C(ConfCritica)),
			Pos(Probable, V(vM), V(vP), Any),
			Pos(StrongDiagnosis, V(vM), V(vP))).
			WithCount(vS, 3,
				Pos(SymptomPresent, V(vS)),
				Pos(SymptomOf, V(vM), V(vS))),

		// --- Differential exclusion. Exclusion always wins: no confidence
		// level overrides it.
		R("exclusion",
			Pos(Excluded, V(vM)),
			Pos(ExcludedBy, V(vM), V(vS)), Pos(SymptomPresent, V(vS))),

		// --- Final merge. Potentiated confidence first, then the
		// correlation critica, plain valid only when neither derives.
		R("valid",
			Pos(Valid, V(vM), V(vP), V(vC)),
			Pos(Probable, V(vM), V(vP), V(vC)), Neg(Excluded, V(vM))),
		R("final/potentiated",
			Pos(Final, V(vM), V(vP), V(vC)),
			Pos(Potentiated, V(vM), V(vP), V(vC)), Neg(Excluded, V(vM))),
		R("final/complete",
			Pos(Final, V(vM), V(vP), C(ConfCritica)),
			Pos(CompleteDiagnosis, V(vM), V(vP), C(ConfCritica)), Neg(Excluded, V(vM))),
		R("final/plain",
			Pos(Final, V(vM), V(vP), V(vC)),
			Pos(Valid, V(vM), V(vP), V(vC)),
			Neg(Potentiated, V(vM), V(vP), Any),
			Neg(CompleteDiagnosis, V(vM), V(vP), Any)),

		// --- Severity ---
		R("severity/withering",
			Pos(DiseaseSeverity, V(vM), C(ConfCritica)),
			Pos(Probable, V(vM), Any, Any), sym(AvvizzimentoPianta)),
		R("severity/stem_blackening",
			Pos(DiseaseSeverity, V(vM), C(ConfCritica)),
			Pos(Probable, V(vM), Any, Any), sym(AnnerimentoGambo)),
		R("severity/leaf_drop",
			Pos(DiseaseSeverity, V(vM), C(ConfAlta)),
			Pos(Probable, V(vM), Any, Any), sym(CadutaFoglie)).
			WithCount(vS, 2,
				Pos(SymptomPresent, V(vS)),
				Pos(SymptomOf, V(vM), V(vS))),

		// --- Treatment resolution: final diagnosis first, valid as fallback.
		R("treatment/final",
			Pos(FinalTreatment, V(vT), V(vM)),
			Pos(Final, V(vM), Any, Any), Pos(Treatment, V(vM), V(vT))),
		R("treatment/valid",
			Pos(FinalTreatment, V(vT), V(vM)),
			Pos(Valid, V(vM), Any, Any), Pos(Treatment, V(vM), V(vT)),
			Neg(Final, V(vM), Any, Any)),

		// --- Prevention ---
		R("prevention/foliar_irrigation",
			Pos(PreventionSpecific, V(vM), C(EvitareIrrigazioneFogliare)),
			Pos(NeedsHighHumidity, V(vM))),
		R("prevention/fusarium_drainage",
			Pos(PreventionSpecific, C(FusariumBasilico), C(DrenaggioTerreno))),
		R("prevention/peronospora_drainage",
			Pos(PreventionSpecific, C(PeronosporaBasilico), C(DrenaggioTerreno))),

		// --- Support ---
		R("fungal_risk/high",
			Pos(HighFungalRisk),
			cond(UmiditaAlta), cond(TemperaturaMite)),
	}
}
