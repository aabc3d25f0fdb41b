package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"gopkg.in/yaml.v3"
)

// CardImport represents a card record from the CSV export.
// Columns: name, kind, starting, always_triggers, effect (inline YAML).
type CardImport struct {
	Name           string    `yaml:"name"`
	Kind           string    `yaml:"kind"`
	Starting       bool      `yaml:"starting,omitempty"`
	AlwaysTriggers bool      `yaml:"always_triggers,omitempty"`
	Effect         yaml.Node `yaml:"effect,omitempty"`
}

func main() {
	// Get CSV file path from args or use default
	csvPath := "data/cards_export.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := "config/cards.yaml"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	absPath, err := filepath.Abs(csvPath)
	if err != nil {
		log.Fatalf("Failed to get absolute path: %v", err)
	}
	fmt.Printf("CSV file: %s\n", absPath)

	file, err := os.Open(absPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("CSV file is empty or has no data rows")
	}
	fmt.Printf("Found %d cards in CSV\n", len(records)-1)

	startTime := time.Now()
	cards := make([]*CardImport, 0, len(records)-1)
	failed := 0
	for i, record := range records[1:] { // Skip header
		card, err := parseRecord(record)
		if err != nil {
			log.Printf("Warning: Skipping row %d - %v", i+2, err)
			failed++
			continue
		}
		cards = append(cards, card)
	}

	out, err := yaml.Marshal(struct {
		Cards []*CardImport `yaml:"cards"`
	}{cards})
	if err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}

	// The written file must load the same way the server loads it.
	cat, err := catalog.Parse(out)
	if err != nil {
		log.Fatalf("Generated catalog does not load: %v", err)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	fmt.Println("\n=== Import Complete ===")
	fmt.Printf("✓ Imported: %d cards (%d distinct effects)\n", cat.Len(), cat.DistinctEffects())
	if failed > 0 {
		fmt.Printf("✗ Skipped: %d rows\n", failed)
	}
	fmt.Printf("Time taken: %s\n", time.Since(startTime))
	fmt.Printf("Catalog written to %s\n", outPath)
}

func parseRecord(record []string) (*CardImport, error) {
	if len(record) < 2 {
		return nil, fmt.Errorf("insufficient columns")
	}
	card := &CardImport{
		Name: strings.TrimSpace(record[0]),
		Kind: strings.ToLower(strings.TrimSpace(record[1])),
	}
	if len(record) > 2 {
		card.Starting = parseBool(record[2])
	}
	if len(record) > 3 {
		card.AlwaysTriggers = parseBool(record[3])
	}
	if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
		if err := yaml.Unmarshal([]byte(record[4]), &card.Effect); err != nil {
			return nil, fmt.Errorf("card %q: effect: %w", card.Name, err)
		}
		// Unmarshal wraps the value in a document node.
		if card.Effect.Kind == yaml.DocumentNode && len(card.Effect.Content) == 1 {
			card.Effect = *card.Effect.Content[0]
		}
		if _, err := catalog.DecodeEffect(&card.Effect); err != nil {
			return nil, fmt.Errorf("card %q: %w", card.Name, err)
		}
	}
	return card, nil
}

func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	return strings.ToLower(s) == "true" || s == "1"
}
