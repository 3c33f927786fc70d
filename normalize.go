package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	errSourceNotFound  = errors.New("evaluation source not found")
	errSourceMalformed = errors.New("evaluation source malformed")
)

// Required CSV columns. Losing either period column makes every aggregate
// meaningless, so their absence fails the whole load.
const (
	colLeader   = "nome"
	colMinistry = "ministerio"
	colYear     = "ano_referencia"
	colMonth    = "mes_referencia"

	colNewMembers       = "novos_membros"
	colNewMemberNames   = "nomes_novos_membros"
	colComments         = "comentarios"
	colStrategies       = "estrategias"
	colTrainings        = "treinamentos"
	colQualifiedMembers = "nomes_membros_qualificacao"
)

// loadResult is the normalized snapshot every aggregation reads. It is built
// in full on each load and never mutated afterwards.
type loadResult struct {
	Evaluations []Evaluation
	// Notices are user-visible degradation messages (e.g. a missing optional
	// column disabling a dashboard section).
	Notices []string
	// MissingColumns records optional columns absent from the header.
	MissingColumns map[string]bool
	// DroppedRows counts rows discarded for an unusable reference period.
	DroppedRows int
}

// loadEvaluations reads and normalizes the evaluations CSV. File-level
// problems abort with errSourceNotFound/errSourceMalformed; cell-level
// problems are recovered locally (documented defaults) or, for the period
// columns, drop the row.
func loadEvaluations(path string, cfg *Config, logger *zap.Logger) (loadResult, error) {
	result := loadResult{MissingColumns: map[string]bool{}}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("%w: %s", errSourceNotFound, path)
		}
		return result, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("%w: unable to read header: %v", errSourceMalformed, err)
	}

	colMap := normalizeHeaders(headers)
	required := map[string]int{}
	for _, name := range []string{colLeader, colMinistry, colYear, colMonth} {
		idx, ok := findColumn(colMap, name)
		if !ok {
			return result, fmt.Errorf("%w: missing required column %q", errSourceMalformed, name)
		}
		required[name] = idx
	}

	optional := map[string]int{}
	for _, name := range append(append([]string{}, indicatorColumns...),
		colNewMembers, colNewMemberNames, colComments, colStrategies, colTrainings, colQualifiedMembers) {
		idx, ok := findColumn(colMap, name)
		if !ok {
			result.MissingColumns[name] = true
			optional[name] = -1
			continue
		}
		optional[name] = idx
	}
	for _, name := range indicatorColumns {
		if result.MissingColumns[name] {
			result.Notices = append(result.Notices,
				fmt.Sprintf("Coluna de indicador '%s' não encontrada. Será ignorada.", name))
		}
	}
	if result.MissingColumns[colNewMembers] || result.MissingColumns[colNewMemberNames] {
		result.Notices = append(result.Notices,
			fmt.Sprintf("Colunas '%s' ou '%s' não encontradas.", colNewMembers, colNewMemberNames))
	}

	titler := cases.Title(language.BrazilianPortuguese)

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result, fmt.Errorf("%w: unable to read CSV: %v", errSourceMalformed, err)
		}
		if len(record) == 0 {
			continue
		}

		leader := titler.String(getValue(record, required[colLeader]))
		ministry := titler.String(getValue(record, required[colMinistry]))
		if canonical, ok := cfg.Aliases[ministry]; ok {
			ministry = canonical
		}

		year, yearOK := parseYear(getValue(record, required[colYear]))
		month := titler.String(getValue(record, required[colMonth]))
		monthNum, monthOK := monthNumbers[month]
		if !yearOK || !monthOK {
			result.DroppedRows++
			logger.Debug("dropping row with unusable reference period",
				zap.String("ministry", ministry),
				zap.String("year", getValue(record, required[colYear])),
				zap.String("month", getValue(record, required[colMonth])))
			continue
		}

		eval := Evaluation{
			LeaderName:       leader,
			Ministry:         ministry,
			Year:             year,
			Month:            month,
			MonthNum:         monthNum,
			NewMemberLst:     optionalValue(record, optional[colNewMemberNames]),
			Comments:         optionalValue(record, optional[colComments]),
			Strategies:       optionalValue(record, optional[colStrategies]),
			Trainings:        optionalValue(record, optional[colTrainings]),
			QualifiedMembers: optionalValue(record, optional[colQualifiedMembers]),
			Indicators:       make(map[string]Score, len(indicatorColumns)),
		}

		for _, col := range indicatorColumns {
			idx := optional[col]
			if idx < 0 {
				continue
			}
			eval.Indicators[col] = parseScore(getValue(record, idx))
		}

		if idx := optional[colNewMembers]; idx >= 0 {
			eval.NewMembers = parseCount(getValue(record, idx))
		}

		result.Evaluations = append(result.Evaluations, eval)
	}

	return result, nil
}

// parseYear coerces the reference year. Exports sometimes carry it as a
// float ("2025.0"), so integers are accepted through a float parse.
func parseYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return int(value), true
}

// parseCount coerces a non-negative count cell, defaulting to 0.
func parseCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(value)
}

func optionalValue(record []string, idx int) string {
	if idx < 0 {
		return ""
	}
	return getValue(record, idx)
}

func normalizeHeaders(headers []string) map[string]int {
	result := make(map[string]int, len(headers))
	for idx, header := range headers {
		normalized := normalizeHeader(header)
		if _, exists := result[normalized]; !exists {
			result[normalized] = idx
		}
	}
	return result
}

func normalizeHeader(value string) string {
	value = strings.TrimPrefix(value, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(value))
}

func findColumn(headers map[string]int, name string) (int, bool) {
	idx, ok := headers[normalizeHeader(name)]
	if !ok {
		return -1, false
	}
	return idx, true
}

func getValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
