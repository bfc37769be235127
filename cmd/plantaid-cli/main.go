package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/plantaid/plantaid/pkg/plantaid"
	"github.com/plantaid/plantaid/pkg/plantaid/config"
	"github.com/plantaid/plantaid/pkg/plantaid/fusion"
	"github.com/plantaid/plantaid/pkg/plantaid/kb"
	"github.com/plantaid/plantaid/pkg/plantaid/ontology/sqlite"
)

func main() {
	var (
		dbPath         = flag.String("db", "", "Ontology database path (optional)")
		fusionPath     = flag.String("fusion", "", "Fusion weights YAML (optional)")
		bayesPath      = flag.String("bayes", "", "Bayesian parameters YAML (optional)")
		classifierPath = flag.String("classifier", "", "Classifier weights YAML (optional)")
		plant          = flag.String("plant", "", "Plant type (one-shot mode)")
		symptoms       = flag.String("symptoms", "", "Comma-separated symptoms (one-shot mode)")
		conditions     = flag.String("conditions", "", "Comma-separated environmental conditions")
		seasonFlag     = flag.String("season", "", "Current season")
	)
	flag.Parse()

	ctx := context.Background()

	sys, err := buildSystem(ctx, *dbPath, *fusionPath, *bayesPath, *classifierPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sys.Close()

	// One-shot mode
	if *plant != "" || *symptoms != "" {
		sess := sys.NewSession()
		if *plant != "" {
			sess.SetPlantType(*plant)
		}
		for _, s := range splitList(*symptoms) {
			sess.AssertSymptom(kb.Sym(s))
		}
		for _, c := range splitList(*conditions) {
			sess.AssertCondition(kb.Sym(c))
		}
		if *seasonFlag != "" {
			sess.SetSeason(kb.Sym(*seasonFlag))
		}
		report, err := sys.DiagnoseFused(ctx, sess.Snapshot())
		if err != nil {
			log.Fatal(err)
		}
		printReport(sys, report)
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Println("  PlantAid - Diagnosi Malattie delle Piante")
	fmt.Println("===========================================")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	sess := sys.NewSession()

	plantName := pickOne(scanner, "Pianta", []kb.Sym{kb.Olivo, kb.Rosa, kb.Basilico})
	if plantName != "" {
		sess.SetPlantType(string(plantName))
	}

	fmt.Println()
	fmt.Println("Sintomi osservati (numeri separati da virgola, invio per nessuno):")
	allSymptoms := []kb.Sym{
		kb.MacchieCircolariGrigie,
		kb.MacchieNereFoglie,
		kb.IngiallimentoFoglie,
		kb.CadutaFoglie,
		kb.MuffaBiancastra,
		kb.TumoriRami,
		kb.AnnerimentoGambo,
		kb.MacchieBrunoNerastreFrutti,
		kb.AvvizzimentoPianta,
	}
	for _, s := range pickMany(scanner, allSymptoms, sys.Base()) {
		sess.AssertSymptom(s)
	}

	fmt.Println()
	fmt.Println("Condizioni ambientali (numeri separati da virgola, invio per nessuna):")
	allConditions := []kb.Sym{
		kb.UmiditaAlta,
		kb.TemperaturaMite,
		kb.PioggeRecenti,
		kb.RistagnoIdrico,
	}
	for _, c := range pickMany(scanner, allConditions, sys.Base()) {
		sess.AssertCondition(c)
	}

	fmt.Println()
	seasonSym := pickOne(scanner, "Stagione", []kb.Sym{kb.Primavera, kb.Estate, kb.Autunno, kb.InvernoMite})
	if seasonSym != "" {
		sess.SetSeason(seasonSym)
	}

	report, err := sys.DiagnoseFused(ctx, sess.Snapshot())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	printReport(sys, report)
}

func buildSystem(ctx context.Context, dbPath, fusionPath, bayesPath, classifierPath string) (*plantaid.System, error) {
	base, err := kb.New()
	if err != nil {
		return nil, err
	}

	loader := &config.Loader{
		FusionPath:     fusionPath,
		BayesPath:      bayesPath,
		ClassifierPath: classifierPath,
	}
	comp, err := loader.Load(base)
	if err != nil {
		return nil, err
	}

	opts := plantaid.Options{
		Network:    comp.Network,
		Classifier: comp.Classifier,
		Weights:    comp.Weights,
	}
	if dbPath != "" {
		store, err := sqlite.Open(ctx, dbPath)
		if err != nil {
			return nil, fmt.Errorf("open ontology db: %w", err)
		}
		opts.Store = store
	}

	return plantaid.New(opts)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func pickOne(scanner *bufio.Scanner, label string, options []kb.Sym) kb.Sym {
	fmt.Printf("%s:\n", label)
	for i, o := range options {
		fmt.Printf("  %d. %s\n", i+1, o)
	}
	fmt.Print("> ")
	if !scanner.Scan() {
		return ""
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 1 || n > len(options) {
		return ""
	}
	return options[n-1]
}

func pickMany(scanner *bufio.Scanner, options []kb.Sym, base *kb.Base) []kb.Sym {
	for i, o := range options {
		fmt.Printf("  %d. %s\n", i+1, base.DisplayName(o))
	}
	fmt.Print("> ")
	if !scanner.Scan() {
		return nil
	}
	var out []kb.Sym
	for _, tok := range strings.Split(scanner.Text(), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n < 1 || n > len(options) {
			continue
		}
		out = append(out, options[n-1])
	}
	return out
}

func printReport(sys *plantaid.System, report fusion.Report) {
	base := sys.Base()

	fmt.Printf("Report %s\n", report.ID)
	fmt.Println(strings.Repeat("-", 43))

	if len(report.Rules.Final) == 0 {
		fmt.Println("Nessuna diagnosi dal motore a regole.")
	} else {
		fmt.Println("Diagnosi (motore a regole):")
		for _, h := range report.Rules.Final {
			fmt.Printf("  %-28s %s (%.2f)\n", base.DisplayName(h.Disease), h.ConfidenceToken, h.Confidence)
			if len(h.Symptoms) > 0 {
				names := make([]string, len(h.Symptoms))
				for i, s := range h.Symptoms {
					names[i] = base.DisplayName(s)
				}
				fmt.Printf("    sintomi: %s\n", strings.Join(names, ", "))
			}
		}
	}

	fmt.Println()
	fmt.Println("Classifica combinata:")
	for i, c := range report.Candidates {
		if i >= 3 {
			break
		}
		fmt.Printf("  %d. %-28s %.3f (bayes %.3f, regole %.3f, classificatore %.3f)\n",
			i+1, base.DisplayName(c.Disease), c.Score,
			c.Scores.Bayes, c.Scores.Rules, c.Scores.Classifier)
	}

	if len(report.Treatments) > 0 {
		fmt.Println()
		fmt.Println("Trattamenti:")
		for _, tr := range report.Treatments {
			fmt.Printf("  - %s\n", base.DisplayName(tr))
		}
	}
	if len(report.Preventions) > 0 {
		fmt.Println("Prevenzione:")
		for _, p := range report.Preventions {
			fmt.Printf("  - %s\n", base.DisplayName(p))
		}
	}
	fmt.Printf("Gravita stimata: %s\n", report.Severity)

	if report.Detail != nil {
		fmt.Println()
		fmt.Printf("Scheda: %s (%s)\n", base.DisplayName(kb.Sym(report.Detail.Name)), report.Detail.ScientificName)
		fmt.Printf("  %s\n", report.Detail.Description)
		fmt.Printf("  Gravita %d/5, periodo attivo: %s\n", report.Detail.Severity, report.Detail.ActivePeriod)
		for _, tr := range report.Detail.Treatments {
			if tr.Dosage != "" {
				fmt.Printf("  Trattamento %s: %s (%s)\n", tr.Name, tr.Description, tr.Dosage)
			} else {
				fmt.Printf("  Trattamento %s: %s\n", tr.Name, tr.Description)
			}
		}
	}
}
