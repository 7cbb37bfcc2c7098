package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"splitup-be/internal/catalog"

	"gopkg.in/yaml.v3"
)

// Writes the default plan catalog to config/plans.yaml so it can be
// edited without touching code.
func main() {
	path := "config/plans.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	plans := catalog.DefaultPlans()

	data, err := yaml.Marshal(struct {
		Plans []catalog.Plan `yaml:"plans"`
	}{Plans: plans})
	if err != nil {
		log.Fatal("Failed to marshal plans:", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal("Failed to create config directory:", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatal("Failed to write catalog:", err)
	}

	fmt.Printf("Wrote %d plans to %s\n", len(plans), path)
}
