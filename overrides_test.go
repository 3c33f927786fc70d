package main

import (
	"reflect"
	"testing"
)

func baseAggregates(cfg *Config) Aggregates {
	evals := []Evaluation{
		evalWith("Marcela", "Dança", 2025, 4, set(5), set(5), set(5), set(5)),
		evalWith("Wendel", "Louvor", 2025, 3, set(4), set(4), set(4), set(4)),
	}
	return compute(evals, cfg)
}

func TestApplyOverridesEmptyIsIdentity(t *testing.T) {
	cfg := DefaultConfig()
	agg := baseAggregates(cfg)

	got := applyOverrides(agg, Overrides{}, cfg)
	if !reflect.DeepEqual(agg, got) {
		t.Fatalf("empty overrides changed the aggregates:\n%+v\n%+v", agg, got)
	}
}

func TestMissingExemptionAppliesOnlyAtMatchingPeriod(t *testing.T) {
	cfg := DefaultConfig()
	agg := baseAggregates(cfg)

	// Louvor is missing in the latest period (Abril/2025).
	hasLouvor := func(statuses []MinistryStatus) bool {
		for _, status := range statuses {
			if status.Ministry == "Louvor" {
				return true
			}
		}
		return false
	}
	if !hasLouvor(agg.MissingInLatest) {
		t.Fatalf("precondition failed: Louvor should be missing, got %+v", agg.MissingInLatest)
	}

	wrongPeriod := Overrides{MissingExemptions: []MissingExemption{
		{Ministry: "Louvor", Month: "Março", Year: 2025},
	}}
	got := applyOverrides(agg, wrongPeriod, cfg)
	if !hasLouvor(got.MissingInLatest) {
		t.Fatalf("exemption for a different period was applied: %+v", got.MissingInLatest)
	}
	if len(got.Adjustments) != 0 {
		t.Fatalf("no adjustment note expected, got %v", got.Adjustments)
	}

	matching := Overrides{MissingExemptions: []MissingExemption{
		{Ministry: "Louvor", Month: "Abril", Year: 2025},
	}}
	got = applyOverrides(agg, matching, cfg)
	if hasLouvor(got.MissingInLatest) {
		t.Fatalf("matching exemption not applied: %+v", got.MissingInLatest)
	}
	if len(got.Adjustments) != 1 {
		t.Fatalf("expected one adjustment note, got %v", got.Adjustments)
	}
	// The original slice is untouched.
	if !hasLouvor(agg.MissingInLatest) {
		t.Fatalf("override mutated the computed aggregates")
	}
}

func TestCountOverridesReplaceAndSort(t *testing.T) {
	cfg := DefaultConfig()
	agg := baseAggregates(cfg)

	ov := Overrides{Counts: map[string]int{
		"Dança":   4,
		"Técnica": 0,
	}}
	got := applyOverrides(agg, ov, cfg)

	counts := map[string]int{}
	for _, count := range got.Counts {
		counts[count.Ministry] = count.Records
	}
	if counts["Dança"] != 4 {
		t.Fatalf("expected overridden count 4 for Dança, got %d", counts["Dança"])
	}
	if counts["Louvor"] != 1 {
		t.Fatalf("non-overridden count changed: %+v", got.Counts)
	}
	for i := 1; i < len(got.Counts); i++ {
		if got.Counts[i-1].Ministry > got.Counts[i].Ministry {
			t.Fatalf("counts not sorted after override: %+v", got.Counts)
		}
	}
}

func TestMostActiveOverrideFillsMinistry(t *testing.T) {
	cfg := DefaultConfig()
	agg := baseAggregates(cfg)

	ov := Overrides{MostActiveLeader: &LeaderActivity{Leader: "Marcela", Records: 4}}
	got := applyOverrides(agg, ov, cfg)

	if got.MostActive == nil || got.MostActive.Leader != "Marcela" || got.MostActive.Records != 4 {
		t.Fatalf("expected overridden most-active leader, got %+v", got.MostActive)
	}
	if got.MostActive.Ministry != "Dança" {
		t.Fatalf("expected ministry filled from registry, got %q", got.MostActive.Ministry)
	}
}
