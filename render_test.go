package main

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestRenderDashboardEmptySnapshot(t *testing.T) {
	path := writeTempCSV(t, csvHeader+"\n")
	cfg := DefaultConfig()
	report, err := buildReport(path, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	page := renderDashboard(report, false)
	if !strings.Contains(page, "Resumo da Avaliação dos Ministérios") {
		t.Fatalf("page missing title:\n%s", page)
	}
	// Zero usable rows replace the whole dashboard with the fallback; no
	// section may alarm on data that is not there.
	if !strings.Contains(page, "O dashboard não pode ser exibido") {
		t.Fatalf("empty-snapshot page missing the no-data fallback:\n%s", page)
	}
	for _, banned := range []string{
		"SEM NENHUM REGISTRO",
		"NÃO ENVIARAM",
		"Preenchimentos por Ministério",
	} {
		if strings.Contains(page, banned) {
			t.Fatalf("empty-snapshot page rendered %q:\n%s", banned, page)
		}
	}
}

func TestRenderDashboardSectionFallbacks(t *testing.T) {
	// One surviving row, but no usable indicator and no new members: the
	// sections degrade individually while the page still renders.
	csvData := csvHeader + "\n" +
		"marcela,Dança,2025,Abril,,abc,999,,0,,,,,\n"
	path := writeTempCSV(t, csvData)
	cfg := DefaultConfig()
	report, err := buildReport(path, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	page := renderDashboard(report, false)
	for _, want := range []string{
		"Não há dados numéricos válidos",
		"Nenhum ministério registrou novos membros",
		"Preenchimentos por Ministério",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
}

func TestRenderDashboardSections(t *testing.T) {
	csvData := csvHeader + "\n" +
		"marcela,Dança,2025,Abril,5,4,3,4,2,Ana; Bia,,,,\n"
	path := writeTempCSV(t, csvData)
	cfg := DefaultConfig()
	report, err := buildReport(path, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	page := renderDashboard(report, false)
	for _, want := range []string{
		"NÃO ENVIARAM em Abril/2025",
		"Marcela (Dança)",
		"Relatórios Enviados: 1",
		"Assiduidade nas Reuniões",
		"Total de Novos Membros Registrados: 2",
		"Técnica",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
}

func TestRenderDashboardSuccessAfterExemption(t *testing.T) {
	csvData := csvHeader + "\n" +
		"marcela,Dança,2025,Abril,5,4,3,4,0,,,,,\n" +
		"mário,Introdução,2025,Abril,5,4,3,4,0,,,,,\n" +
		"moysés,Intercessão,2025,Abril,5,4,3,4,0,,,,,\n" +
		"marcus,Comunicação,2025,Abril,5,4,3,4,0,,,,,\n" +
		"isaac,Técnica,2025,Abril,5,4,3,4,0,,,,,\n"
	path := writeTempCSV(t, csvData)

	cfg := DefaultConfig()
	cfg.Overrides.MissingExemptions = []MissingExemption{
		{Ministry: "Louvor", Month: "Abril", Year: 2025},
	}

	report, err := buildReport(path, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	page := renderDashboard(report, false)
	if !strings.Contains(page, "Todos enviaram em Abril/2025") {
		t.Fatalf("expected success line after exemption:\n%s", page)
	}
	if !strings.Contains(page, "Ajuste manual") {
		t.Fatalf("expected the manual-adjustment caption:\n%s", page)
	}
}
