package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Registry) != 6 {
		t.Fatalf("expected 6 registry ministries, got %d", len(cfg.Registry))
	}
	if cfg.Registry["Dança"] != "Marcela" {
		t.Fatalf("expected Marcela leading Dança, got %q", cfg.Registry["Dança"])
	}
	if cfg.Aliases["Midaf"] != "Dança" || cfg.Aliases["Milaf"] != "Louvor" {
		t.Fatalf("unexpected alias table: %+v", cfg.Aliases)
	}
	if !cfg.Overrides.Empty() {
		t.Fatalf("defaults must carry no overrides, got %+v", cfg.Overrides)
	}
	if cfg.Input != defaultInputPath {
		t.Fatalf("expected default input %q, got %q", defaultInputPath, cfg.Input)
	}
}

func TestLoadConfigFileLayersOverDefaults(t *testing.T) {
	yamlData := `input: custom.csv
overrides:
  most_active_leader:
    leader: Marcela
    records: 4
  counts:
    Dança: 4
    Técnica: 0
  missing_exemptions:
    - ministry: Louvor
      month: Abril
      year: 2025
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Input != "custom.csv" {
		t.Fatalf("expected input from file, got %q", cfg.Input)
	}
	if len(cfg.Registry) != 6 {
		t.Fatalf("registry defaults lost: %+v", cfg.Registry)
	}
	if cfg.Overrides.MostActiveLeader == nil || cfg.Overrides.MostActiveLeader.Leader != "Marcela" {
		t.Fatalf("most-active override not loaded: %+v", cfg.Overrides.MostActiveLeader)
	}
	if cfg.Overrides.Counts["Dança"] != 4 {
		t.Fatalf("count override not loaded: %+v", cfg.Overrides.Counts)
	}
	if len(cfg.Overrides.MissingExemptions) != 1 {
		t.Fatalf("exemption not loaded: %+v", cfg.Overrides.MissingExemptions)
	}
	ex := cfg.Overrides.MissingExemptions[0]
	if ex.Ministry != "Louvor" || ex.Month != "Abril" || ex.Year != 2025 {
		t.Fatalf("unexpected exemption: %+v", ex)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	yamlData := "input: from-file.csv\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MINISTRY_DASHBOARD_INPUT", "from-env.csv")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Input != "from-env.csv" {
		t.Fatalf("expected env to win, got %q", cfg.Input)
	}
}
