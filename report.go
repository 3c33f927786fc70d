package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Report is the full render-ready envelope: the five aggregate views plus
// load diagnostics and run metadata.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`

	Records     int      `json:"records"`
	DroppedRows int      `json:"dropped_rows"`
	Notices     []string `json:"notices,omitempty"`

	// NewMembersUnavailable is set when the new-member columns are absent
	// from the source, so the section reports itself unavailable instead of
	// showing a misleading zero.
	NewMembersUnavailable bool `json:"new_members_unavailable,omitempty"`
	// IndicatorsUnavailable is set when no indicator column is present.
	IndicatorsUnavailable bool `json:"indicators_unavailable,omitempty"`

	Aggregates Aggregates `json:"aggregates"`
}

// buildReport runs the whole pipeline for one render: load, compute, apply
// overrides, wrap with metadata.
func buildReport(path string, cfg *Config, logger *zap.Logger) (Report, error) {
	loaded, err := loadEvaluations(path, cfg, logger)
	if err != nil {
		return Report{}, err
	}

	agg := compute(loaded.Evaluations, cfg)
	agg = applyOverrides(agg, cfg.Overrides, cfg)

	indicatorsMissing := true
	for _, col := range indicatorColumns {
		if !loaded.MissingColumns[col] {
			indicatorsMissing = false
		}
	}

	report := Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Source:      path,
		Records:     len(loaded.Evaluations),
		DroppedRows: loaded.DroppedRows,
		Notices:     loaded.Notices,
		NewMembersUnavailable: loaded.MissingColumns[colNewMembers] ||
			loaded.MissingColumns[colNewMemberNames],
		IndicatorsUnavailable: indicatorsMissing,
		Aggregates:            agg,
	}
	return report, nil
}

// writeJSON saves the report artifact.
func writeJSON(report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
