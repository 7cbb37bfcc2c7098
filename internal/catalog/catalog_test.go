package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRejectsInvalidPlans(t *testing.T) {
	tests := []struct {
		name  string
		plans []Plan
	}{
		{"empty id", []Plan{{ID: "", ServiceName: "X", SplitBetween: 4, PerPersonShare: 100}}},
		{"split too small", []Plan{{ID: "x", ServiceName: "X", SplitBetween: 1, PerPersonShare: 100}}},
		{"zero share", []Plan{{ID: "x", ServiceName: "X", SplitBetween: 4, PerPersonShare: 0}}},
		{"duplicate id", []Plan{
			{ID: "x", ServiceName: "X", SplitBetween: 4, PerPersonShare: 100},
			{ID: "x", ServiceName: "Y", SplitBetween: 4, PerPersonShare: 100},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.plans); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDefaultPlansAreValid(t *testing.T) {
	cat, err := New(DefaultPlans())
	if err != nil {
		t.Fatalf("New(DefaultPlans()) failed: %v", err)
	}
	if len(cat.Plans()) == 0 {
		t.Fatal("default catalog is empty")
	}

	plan, ok := cat.Get("netflix-premium")
	if !ok {
		t.Fatal("netflix-premium not found in default catalog")
	}
	if plan.PerPersonShare != 139 || plan.SplitBetween != 5 {
		t.Errorf("unexpected netflix-premium pricing: share=%d split=%d", plan.PerPersonShare, plan.SplitBetween)
	}
}

func TestLoadFallsBackWhenFileMissing(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cat.Plans()) != len(DefaultPlans()) {
		t.Errorf("expected default catalog, got %d plans", len(cat.Plans()))
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	content := `plans:
  - id: netflix-premium
    service_name: Netflix
    plan_name: Premium
    total_price: 649
    split_between: 5
    per_person_share: 139
    active: true
  - id: spotify-family
    service_name: Spotify
    plan_name: Family
    total_price: 199
    split_between: 6
    per_person_share: 34
    active: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cat.Plans()) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(cat.Plans()))
	}

	spotify, ok := cat.Get("spotify-family")
	if !ok {
		t.Fatal("spotify-family not found")
	}
	if spotify.Active {
		t.Error("spotify-family should be inactive")
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	if err := os.WriteFile(path, []byte("plans: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for empty catalog")
	}
}
