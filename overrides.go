package main

import (
	"fmt"
	"sort"
)

// applyOverrides layers the configured manual corrections on top of the
// computed aggregates. With an empty override block the aggregates pass
// through untouched, so the policy is visible, testable and removable.
func applyOverrides(agg Aggregates, ov Overrides, cfg *Config) Aggregates {
	if ov.Empty() {
		return agg
	}

	for _, ex := range ov.MissingExemptions {
		if agg.LatestPeriod == nil {
			continue
		}
		latest := *agg.LatestPeriod
		if ex.Year != latest.Year || monthNumbers[ex.Month] != latest.Month {
			continue
		}

		kept := make([]MinistryStatus, 0, len(agg.MissingInLatest))
		removed := false
		for _, status := range agg.MissingInLatest {
			if status.Ministry == ex.Ministry {
				removed = true
				continue
			}
			kept = append(kept, status)
		}
		if removed {
			agg.MissingInLatest = kept
			agg.Adjustments = append(agg.Adjustments,
				fmt.Sprintf("Ajuste manual: %s considerado enviado em %s", ex.Ministry, latest.Label()))
		}
	}

	if len(ov.Counts) > 0 {
		counts := make([]MinistryCount, len(agg.Counts))
		copy(counts, agg.Counts)
		seen := map[string]bool{}
		for i := range counts {
			if value, ok := ov.Counts[counts[i].Ministry]; ok {
				counts[i].Records = value
				seen[counts[i].Ministry] = true
			}
		}
		for ministry, value := range ov.Counts {
			if !seen[ministry] {
				counts = append(counts, MinistryCount{Ministry: ministry, Records: value})
			}
		}
		sort.Slice(counts, func(i, j int) bool { return counts[i].Ministry < counts[j].Ministry })
		agg.Counts = counts
		agg.Adjustments = append(agg.Adjustments, "Ajuste manual: contagens de registros substituídas")
	}

	if ov.MostActiveLeader != nil {
		leader := *ov.MostActiveLeader
		if leader.Ministry == "" {
			if ministry, ok := cfg.MinistryOf(leader.Leader); ok {
				leader.Ministry = ministry
			}
		}
		agg.MostActive = &leader
		agg.Adjustments = append(agg.Adjustments, "Ajuste manual: líder mais ativo definido por configuração")
	}

	return agg
}
