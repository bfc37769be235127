package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/plantaid/plantaid/pkg/plantaid/ontology/sqlite"
)

// Creates the ontology database and loads the built-in botanical
// catalogue. Safe to re-run: seeding upserts by identifier.
func main() {
	var (
		dbPath = flag.String("db", "", "Ontology database path (required)")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}

	ctx := context.Background()

	store, err := sqlite.OpenSeeded(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	plants := []string{"olivo", "rosa", "basilico"}
	total := 0
	for _, p := range plants {
		diseases, err := store.DiseasesForPlant(ctx, p)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-10s %d malattie\n", p, len(diseases))
		total += len(diseases)
	}
	fmt.Printf("Ontologia pronta: %d malattie in %s\n", total, *dbPath)
}
