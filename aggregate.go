package main

import (
	"sort"
	"strconv"
)

// MinistryStatus names a registry ministry together with its leader, for the
// participation lists.
type MinistryStatus struct {
	Ministry string `json:"ministry"`
	Leader   string `json:"leader"`
}

// MinistryCount is one row of the submissions-per-ministry table.
type MinistryCount struct {
	Ministry string `json:"ministry"`
	Records  int    `json:"records"`
}

// WeakestPoint is one row of the weakest-indicator table: the lowest score a
// ministry received anywhere, and every indicator that hit it.
type WeakestPoint struct {
	Ministry   string   `json:"ministry"`
	Value      float64  `json:"value"`
	Display    string   `json:"display"`
	Indicators []string `json:"indicators"`
}

// NewMemberDetail is one qualifying submission (count > 0); repeated
// ministries across periods stay separate rows.
type NewMemberDetail struct {
	Ministry string `json:"ministry"`
	Count    int    `json:"count"`
	Names    string `json:"names"`
}

// NewMembersSummary is the new-member tally for the whole snapshot.
type NewMembersSummary struct {
	Total  int               `json:"total"`
	Detail []NewMemberDetail `json:"detail"`
}

// LeaderActivity identifies the most active leader. Also usable as an
// override value in the config file.
type LeaderActivity struct {
	Leader   string `koanf:"leader" json:"leader"`
	Ministry string `koanf:"ministry" json:"ministry"`
	Records  int    `koanf:"records" json:"records"`
}

// Aggregates holds the five display-ready views plus the latest-period label
// data. All views are derived from the same immutable snapshot and are
// independent of each other.
type Aggregates struct {
	LatestPeriod    *Period           `json:"latest_period,omitempty"`
	NeverSubmitted  []MinistryStatus  `json:"never_submitted"`
	MissingInLatest []MinistryStatus  `json:"missing_in_latest"`
	Counts          []MinistryCount   `json:"counts"`
	Weakest         []WeakestPoint    `json:"weakest"`
	NewMembers      NewMembersSummary `json:"new_members"`
	MostActive      *LeaderActivity   `json:"most_active,omitempty"`

	// Adjustments lists overrides that were applied, for the rendered caption.
	Adjustments []string `json:"adjustments,omitempty"`
}

// compute derives every aggregate from the normalized snapshot. Pure. An
// empty snapshot yields empty views across the board; the renderer shows a
// dashboard-level fallback in that case.
func compute(evals []Evaluation, cfg *Config) Aggregates {
	agg := Aggregates{
		NeverSubmitted:  []MinistryStatus{},
		MissingInLatest: []MinistryStatus{},
		Counts:          []MinistryCount{},
		Weakest:         []WeakestPoint{},
		NewMembers:      NewMembersSummary{Detail: []NewMemberDetail{}},
	}
	if len(evals) == 0 {
		return agg
	}

	agg.NeverSubmitted = neverSubmitted(evals, cfg)
	agg.Counts = countsByMinistry(evals, cfg)
	agg.Weakest = weakestPerMinistry(evals)
	agg.NewMembers = newMembers(evals)
	agg.MostActive = mostActiveLeader(evals, cfg)

	if latest, ok := latestPeriod(evals); ok {
		agg.LatestPeriod = &latest
		agg.MissingInLatest = missingInPeriod(evals, latest, cfg)
	}
	return agg
}

// neverSubmitted lists registry ministries with zero rows in the whole
// snapshot. Registry-driven: ministries in the data but not in the registry
// are invisible here.
func neverSubmitted(evals []Evaluation, cfg *Config) []MinistryStatus {
	present := map[string]bool{}
	for _, eval := range evals {
		present[eval.Ministry] = true
	}

	missing := make([]MinistryStatus, 0)
	for ministry := range cfg.Registry {
		if !present[ministry] {
			missing = append(missing, MinistryStatus{Ministry: ministry, Leader: cfg.LeaderOf(ministry)})
		}
	}
	sortStatuses(missing)
	return missing
}

// latestPeriod finds the maximal (year, month) over the snapshot.
func latestPeriod(evals []Evaluation) (Period, bool) {
	if len(evals) == 0 {
		return Period{}, false
	}
	latest := evals[0].PeriodKey()
	for _, eval := range evals[1:] {
		if p := eval.PeriodKey(); p.After(latest) {
			latest = p
		}
	}
	return latest, true
}

// missingInPeriod lists registry ministries with no row at the given period.
func missingInPeriod(evals []Evaluation, period Period, cfg *Config) []MinistryStatus {
	present := map[string]bool{}
	for _, eval := range evals {
		if eval.PeriodKey() == period {
			present[eval.Ministry] = true
		}
	}

	missing := make([]MinistryStatus, 0)
	for ministry := range cfg.Registry {
		if !present[ministry] {
			missing = append(missing, MinistryStatus{Ministry: ministry, Leader: cfg.LeaderOf(ministry)})
		}
	}
	sortStatuses(missing)
	return missing
}

// countsByMinistry counts rows per ministry. Every registry ministry is
// reported even at zero; unregistered ministries appearing in the data are
// included as well.
func countsByMinistry(evals []Evaluation, cfg *Config) []MinistryCount {
	counts := map[string]int{}
	for ministry := range cfg.Registry {
		counts[ministry] = 0
	}
	for _, eval := range evals {
		counts[eval.Ministry]++
	}

	result := make([]MinistryCount, 0, len(counts))
	for ministry, n := range counts {
		result = append(result, MinistryCount{Ministry: ministry, Records: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Ministry < result[j].Ministry })
	return result
}

// weakestPerMinistry computes, per ministry, the minimum set indicator value
// across all rows and the union of indicators achieving it. Ministries with
// no set indicator anywhere are omitted.
func weakestPerMinistry(evals []Evaluation) []WeakestPoint {
	mins := map[string]float64{}
	for _, eval := range evals {
		value, ok := eval.rowMin()
		if !ok {
			continue
		}
		current, seen := mins[eval.Ministry]
		if !seen || value < current {
			mins[eval.Ministry] = value
		}
	}

	result := make([]WeakestPoint, 0, len(mins))
	for ministry, lowest := range mins {
		hit := map[string]bool{}
		for _, eval := range evals {
			if eval.Ministry != ministry {
				continue
			}
			for _, col := range indicatorColumns {
				score, present := eval.Indicators[col]
				if present && score.Valid && score.Value == lowest {
					hit[col] = true
				}
			}
		}

		names := make([]string, 0, len(hit))
		for col := range hit {
			names = append(names, indicatorDisplayNames[col])
		}
		sort.Strings(names)

		result = append(result, WeakestPoint{
			Ministry:   ministry,
			Value:      lowest,
			Display:    formatScore(lowest),
			Indicators: names,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Ministry < result[j].Ministry })
	return result
}

// newMembers totals new members over every row and lists each qualifying
// submission separately.
func newMembers(evals []Evaluation) NewMembersSummary {
	summary := NewMembersSummary{Detail: []NewMemberDetail{}}
	for _, eval := range evals {
		summary.Total += eval.NewMembers
		if eval.NewMembers > 0 {
			summary.Detail = append(summary.Detail, NewMemberDetail{
				Ministry: eval.Ministry,
				Count:    eval.NewMembers,
				Names:    eval.NewMemberLst,
			})
		}
	}
	return summary
}

// mostActiveLeader picks the leader with the most rows, ties broken by name
// ascending. Nil on an empty snapshot.
func mostActiveLeader(evals []Evaluation, cfg *Config) *LeaderActivity {
	counts := map[string]int{}
	for _, eval := range evals {
		if eval.LeaderName == "" {
			continue
		}
		counts[eval.LeaderName]++
	}
	if len(counts) == 0 {
		return nil
	}

	best := ""
	for leader, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && leader < best) {
			best = leader
		}
	}

	activity := &LeaderActivity{Leader: best, Records: counts[best]}
	if ministry, ok := cfg.MinistryOf(best); ok {
		activity.Ministry = ministry
	}
	return activity
}

// formatScore renders integral minimums without a decimal point and
// fractional ones as-is.
func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func sortStatuses(statuses []MinistryStatus) {
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Ministry < statuses[j].Ministry })
}
