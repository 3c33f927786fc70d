package main

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultInputPath = "avaliacoes_ministerios.csv"
	envPrefix        = "MINISTRY_DASHBOARD_"
	envConfigPath    = "MINISTRY_DASHBOARD_CONFIG"
)

// Config is the immutable configuration the pipeline runs against: input
// location, the ministry registry, the alias table and the optional override
// block. Registries are config data, not code, so tests can substitute them.
type Config struct {
	Input string `koanf:"input" json:"input"`

	// Registry maps each canonical ministry to its leader. Authored once;
	// completeness checks and leader lookups run against these keys only.
	Registry map[string]string `koanf:"registry" json:"registry"`

	// Aliases maps known misspellings/variants (title-cased) to canonical
	// ministry names. Names absent from the table pass through unchanged.
	Aliases map[string]string `koanf:"aliases" json:"aliases"`

	Overrides Overrides `koanf:"overrides" json:"overrides"`
}

// Overrides are explicit, removable corrections applied after aggregation.
// They exist so that one-off data fixes never live inside aggregation logic.
type Overrides struct {
	// MissingExemptions removes a ministry from the missing-in-latest-period
	// list, but only when the latest period matches exactly.
	MissingExemptions []MissingExemption `koanf:"missing_exemptions" json:"missing_exemptions,omitempty"`

	// Counts replaces the computed record count for the named ministries.
	Counts map[string]int `koanf:"counts" json:"counts,omitempty"`

	// MostActiveLeader replaces the computed most-active leader.
	MostActiveLeader *LeaderActivity `koanf:"most_active_leader" json:"most_active_leader,omitempty"`
}

// MissingExemption marks a ministry as having reported in a specific period
// even though no record exists for it.
type MissingExemption struct {
	Ministry string `koanf:"ministry" json:"ministry"`
	Month    string `koanf:"month" json:"month"`
	Year     int    `koanf:"year" json:"year"`
}

// Empty reports whether no override is configured.
func (o Overrides) Empty() bool {
	return len(o.MissingExemptions) == 0 && len(o.Counts) == 0 && o.MostActiveLeader == nil
}

// DefaultConfig returns the built-in registry and alias table. No overrides
// are active by default.
func DefaultConfig() *Config {
	return &Config{
		Input: defaultInputPath,
		Registry: map[string]string{
			"Técnica":     "Isaac",
			"Introdução":  "Mário",
			"Intercessão": "Moysés",
			"Louvor":      "Wendel",
			"Comunicação": "Marcus",
			"Dança":       "Marcela",
		},
		Aliases: map[string]string{
			"Midaf": "Dança",
			"Milaf": "Louvor",
		},
	}
}

// LoadConfig layers defaults, an optional YAML file and environment
// variables. Precedence (low -> high):
//  1. DefaultConfig
//  2. YAML file (path argument, else MINISTRY_DASHBOARD_CONFIG)
//  3. env vars with prefix MINISTRY_DASHBOARD_
func LoadConfig(path string) (*Config, error) {
	base := DefaultConfig()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Input == "" {
		return nil, errors.New("input must not be empty")
	}
	if len(cfg.Registry) == 0 {
		return nil, errors.New("registry must not be empty")
	}
	return &cfg, nil
}

// MinistryOf returns the registry ministry led by the given leader.
func (c *Config) MinistryOf(leader string) (string, bool) {
	for ministry, name := range c.Registry {
		if name == leader {
			return ministry, true
		}
	}
	return "", false
}

// LeaderOf returns the registered leader of a ministry, or a placeholder for
// ministries outside the registry.
func (c *Config) LeaderOf(ministry string) string {
	if leader, ok := c.Registry[ministry]; ok {
		return leader
	}
	return "Líder Desconhecido"
}
