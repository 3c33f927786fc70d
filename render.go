package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles groups the lipgloss styles of the rendered page.
type styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Alert   lipgloss.Style
	Warn    lipgloss.Style
	OK      lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Cell    lipgloss.Style
}

func newStyles(color bool) styles {
	s := styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Section: lipgloss.NewStyle().Bold(true),
		Alert:   lipgloss.NewStyle(),
		Warn:    lipgloss.NewStyle(),
		OK:      lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle().Bold(true),
		Cell:    lipgloss.NewStyle().Padding(0, 1),
	}
	if color {
		s.Title = s.Title.Foreground(lipgloss.Color("#FFA500"))
		s.Section = s.Section.Foreground(lipgloss.Color("#FFA500"))
		s.Alert = s.Alert.Foreground(lipgloss.Color("#e53935"))
		s.Warn = s.Warn.Foreground(lipgloss.Color("#FFC107"))
		s.OK = s.OK.Foreground(lipgloss.Color("#8BC34A"))
		s.Muted = s.Muted.Foreground(lipgloss.Color("#808080"))
	}
	return s
}

// renderDashboard produces the single-page summary. Every section degrades
// to an explicit no-data note rather than disappearing.
func renderDashboard(report Report, color bool) string {
	s := newStyles(color)
	agg := report.Aggregates

	var b strings.Builder
	line := strings.Repeat("=", 44)
	b.WriteString(s.Title.Render("Resumo da Avaliação dos Ministérios") + "\n")
	b.WriteString(line + "\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("Fonte: %s | Registros: %d", report.Source, report.Records)) + "\n")
	if report.DroppedRows > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("Linhas descartadas (período inválido): %d", report.DroppedRows)) + "\n")
	}
	for _, notice := range report.Notices {
		b.WriteString(s.Warn.Render("Aviso: "+notice) + "\n")
	}
	b.WriteString("\n")

	if report.Records == 0 {
		b.WriteString(s.Warn.Render("Não foi possível carregar ou processar os dados. O dashboard não pode ser exibido.") + "\n")
		return b.String()
	}

	renderParticipation(&b, report, s)
	renderMostActive(&b, agg, s)
	renderCounts(&b, agg, s)
	renderWeakest(&b, report, s)
	renderNewMembers(&b, report, s)

	if len(agg.Adjustments) > 0 {
		for _, note := range agg.Adjustments {
			b.WriteString(s.Muted.Render(note) + "\n")
		}
	}
	return b.String()
}

func renderParticipation(b *strings.Builder, report Report, s styles) {
	agg := report.Aggregates
	b.WriteString(s.Section.Render("Participação dos Líderes") + "\n")

	if len(agg.NeverSubmitted) > 0 {
		b.WriteString(s.Alert.Render("Ministérios SEM NENHUM REGISTRO:") + "\n")
		for _, status := range agg.NeverSubmitted {
			b.WriteString(fmt.Sprintf("  - %s (Líder: %s)\n", status.Ministry, status.Leader))
		}
	} else {
		b.WriteString(s.OK.Render("Todos os ministérios possuem registros.") + "\n")
	}

	switch {
	case agg.LatestPeriod == nil:
		b.WriteString(s.Warn.Render("Sem dados de período para avaliar envios recentes.") + "\n")
	case len(agg.MissingInLatest) > 0:
		b.WriteString(s.Warn.Render(fmt.Sprintf("NÃO ENVIARAM em %s:", agg.LatestPeriod.Label())) + "\n")
		for _, status := range agg.MissingInLatest {
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", status.Ministry, status.Leader))
		}
	default:
		b.WriteString(s.OK.Render(fmt.Sprintf("Todos enviaram em %s.", agg.LatestPeriod.Label())) + "\n")
	}
	b.WriteString("\n")
}

func renderMostActive(b *strings.Builder, agg Aggregates, s styles) {
	b.WriteString(s.Section.Render("Líder Mais Ativo") + "\n")
	if agg.MostActive == nil {
		b.WriteString(s.Muted.Render("Sem registros para determinar o líder mais ativo.") + "\n\n")
		return
	}
	leader := agg.MostActive
	label := leader.Leader
	if leader.Ministry != "" {
		label += " (" + leader.Ministry + ")"
	}
	b.WriteString(s.Bold.Render(label) + "\n")
	b.WriteString(fmt.Sprintf("Relatórios Enviados: %d\n\n", leader.Records))
}

func renderCounts(b *strings.Builder, agg Aggregates, s styles) {
	b.WriteString(s.Section.Render("Preenchimentos por Ministério") + "\n")
	if len(agg.Counts) == 0 {
		b.WriteString(s.Muted.Render("Sem dados de preenchimento.") + "\n\n")
		return
	}
	rows := make([][]string, 0, len(agg.Counts))
	for _, count := range agg.Counts {
		rows = append(rows, []string{count.Ministry, strconv.Itoa(count.Records)})
	}
	b.WriteString(renderTable([]string{"Ministério", "Registros"}, rows, s))
	b.WriteString("\n")
}

func renderWeakest(b *strings.Builder, report Report, s styles) {
	agg := report.Aggregates
	b.WriteString(s.Section.Render("Ponto Mais Fraco por Ministério (Menor Nota)") + "\n")
	switch {
	case report.IndicatorsUnavailable:
		b.WriteString(s.Warn.Render("Nenhuma coluna de indicador válida encontrada.") + "\n\n")
	case len(agg.Weakest) == 0:
		b.WriteString(s.Muted.Render("Não há dados numéricos válidos nos indicadores.") + "\n\n")
	default:
		rows := make([][]string, 0, len(agg.Weakest))
		for _, weak := range agg.Weakest {
			rows = append(rows, []string{weak.Ministry, weak.Display, strings.Join(weak.Indicators, ", ")})
		}
		b.WriteString(renderTable([]string{"Ministério", "Menor Nota", "Indicador(es)"}, rows, s))
		b.WriteString("\n")
	}
}

func renderNewMembers(b *strings.Builder, report Report, s styles) {
	agg := report.Aggregates
	b.WriteString(s.Section.Render("Novos Membros") + "\n")
	if report.NewMembersUnavailable {
		b.WriteString(s.Warn.Render("Dados de novos membros indisponíveis na fonte.") + "\n\n")
		return
	}
	b.WriteString(fmt.Sprintf("Total de Novos Membros Registrados: %d\n", agg.NewMembers.Total))
	if len(agg.NewMembers.Detail) == 0 {
		b.WriteString(s.Muted.Render("Nenhum ministério registrou novos membros.") + "\n\n")
		return
	}
	rows := make([][]string, 0, len(agg.NewMembers.Detail))
	for _, detail := range agg.NewMembers.Detail {
		rows = append(rows, []string{detail.Ministry, strconv.Itoa(detail.Count), detail.Names})
	}
	b.WriteString(renderTable([]string{"Ministério", "Qtd.", "Nomes"}, rows, s))
	b.WriteString("\n")
}

// renderTable lays out a small left-aligned table, sizing each column to its
// widest cell.
func renderTable(headers []string, rows [][]string, s styles) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	headerCells := make([]string, len(headers))
	for i, header := range headers {
		headerCells[i] = s.Cell.Bold(true).Width(widths[i] + 2).Render(header)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headerCells...) + "\n")

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	b.WriteString(s.Muted.Render(strings.Repeat("-", total)) + "\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			width := lipgloss.Width(cell) + 2
			if i < len(widths) {
				width = widths[i] + 2
			}
			cells[i] = s.Cell.Width(width).Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return b.String()
}
