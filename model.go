package main

import (
	"math"
	"strconv"
	"strings"
)

// scoreSentinel is the legacy "no data" marker used by upstream exports.
// Indicator values at or above it are never real scores.
const scoreSentinel = 999

// Indicator column names as they appear in the CSV header.
const (
	indPunctuality           = "pontualidade"
	indCelebrationAttendance = "assiduidade_celebracoes"
	indMeetingAttendance     = "assiduidade_reunioes"
	indTeamwork              = "trabalho_equipe"
)

// indicatorColumns fixes the order indicators are parsed and reported in.
var indicatorColumns = []string{
	indPunctuality,
	indCelebrationAttendance,
	indMeetingAttendance,
	indTeamwork,
}

// indicatorDisplayNames maps indicator columns to the labels shown on the
// dashboard.
var indicatorDisplayNames = map[string]string{
	indPunctuality:           "Pontualidade",
	indCelebrationAttendance: "Assiduidade nas Celebrações",
	indMeetingAttendance:     "Assiduidade nas Reuniões",
	indTeamwork:              "Trabalho em Equipe",
}

// monthNumbers maps canonical (title-cased) Portuguese month names to 1-12.
var monthNumbers = map[string]int{
	"Janeiro":   1,
	"Fevereiro": 2,
	"Março":     3,
	"Abril":     4,
	"Maio":      5,
	"Junho":     6,
	"Julho":     7,
	"Agosto":    8,
	"Setembro":  9,
	"Outubro":   10,
	"Novembro":  11,
	"Dezembro":  12,
}

// monthNames is the reverse of monthNumbers, for period labels.
var monthNames = func() map[int]string {
	names := make(map[int]string, len(monthNumbers))
	for name, num := range monthNumbers {
		names[num] = name
	}
	return names
}()

// Score is an indicator value that may be absent. Absent scores are excluded
// from every min/aggregate computation.
type Score struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// parseScore coerces a raw indicator cell. Empty cells, non-numeric cells,
// NaN and values at or above the legacy sentinel all come back unset. A set
// score is always an ordinary comparable number.
func parseScore(raw string) Score {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Score{}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || value >= scoreSentinel {
		return Score{}
	}
	return Score{Value: value, Valid: true}
}

// Period is a (year, month) reporting key, ordered by year then month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// After reports whether p is a later period than other.
func (p Period) After(other Period) bool {
	if p.Year != other.Year {
		return p.Year > other.Year
	}
	return p.Month > other.Month
}

// Label renders the period as "MonthName/Year" for display.
func (p Period) Label() string {
	name, ok := monthNames[p.Month]
	if !ok {
		name = "Mês Desconhecido"
	}
	return name + "/" + strconv.Itoa(p.Year)
}

// Evaluation is one normalized self-evaluation submission for a
// (leader, ministry, period).
type Evaluation struct {
	LeaderName   string `json:"leader_name"`
	Ministry     string `json:"ministry"`
	Year         int    `json:"year"`
	Month        string `json:"month"`
	MonthNum     int    `json:"month_num"`
	NewMembers   int    `json:"new_members"`
	NewMemberLst string `json:"new_member_names"`

	Comments         string `json:"comments"`
	Strategies       string `json:"strategies"`
	Trainings        string `json:"trainings"`
	QualifiedMembers string `json:"qualified_member_names"`

	Indicators map[string]Score `json:"indicators"`
}

// PeriodKey returns the evaluation's reporting period.
func (e Evaluation) PeriodKey() Period {
	return Period{Year: e.Year, Month: e.MonthNum}
}

// rowMin is the smallest set indicator value on the row. ok is false when
// every indicator is unset.
func (e Evaluation) rowMin() (float64, bool) {
	lowest := 0.0
	found := false
	for _, col := range indicatorColumns {
		score, present := e.Indicators[col]
		if !present || !score.Valid {
			continue
		}
		if !found || score.Value < lowest {
			lowest = score.Value
			found = true
		}
	}
	return lowest, found
}
