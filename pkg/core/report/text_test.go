package report

import (
	"fmt"
	"strings"
	"testing"
)

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{6.18, "6.18"},
		{2350000, "2350000"},
		{0, "0"},
		{-2, "-2"},
		{0.1699, "0.1699"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBusinessReview(t *testing.T) {
	out := FormatBusinessReview(sampleReview())

	for _, want := range []string{
		"BUSINESS REVIEW rev-123 (2026-03-14T10:30:00Z)",
		"FINANCIAL METRICS",
		"CFO REPORT",
		"MARKETING METRICS",
		"CMO REPORT",
		"CEO DIRECTIVE",
		"Liquidity",
		"DuPont Breakdown",
		"Unit Economics",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// Metric rows are label-padded two-column lines.
	for _, row := range [][2]string{
		{"Current", "6.18"},
		{"TIE", "22.5"},
		{"EV", "2350000"},
		{"Churn Rate", "5.0%"},
		{"LTV:CAC Ratio", "7.8"},
		{"Status", "Healthy"},
	} {
		line := fmt.Sprintf("  %-28s %s\n", row[0], row[1])
		if !strings.Contains(out, line) {
			t.Errorf("output missing row %q", line)
		}
	}

	// Narratives land verbatim, markdown and all.
	rev := sampleReview()
	for _, narrative := range []string{rev.FinancialNarrative, rev.MarketingNarrative, rev.CEONarrative} {
		if !strings.Contains(out, narrative) {
			t.Errorf("output missing narrative %q", narrative)
		}
	}

	// Reading order: financials before marketing before the directive.
	idxCFO := strings.Index(out, "CFO REPORT")
	idxCMO := strings.Index(out, "CMO REPORT")
	idxCEO := strings.Index(out, "CEO DIRECTIVE")
	if !(idxCFO < idxCMO && idxCMO < idxCEO) {
		t.Errorf("sections out of order: cfo=%d cmo=%d ceo=%d", idxCFO, idxCMO, idxCEO)
	}
}

func TestFormatStandaloneReports(t *testing.T) {
	rev := sampleReview()

	fin := FormatFinancialReport(rev.FinancialMetrics)
	if !strings.Contains(fin, "FINANCIAL METRICS") || strings.Contains(fin, "CFO REPORT") {
		t.Errorf("financial report sections wrong:\n%s", fin)
	}
	if !strings.Contains(fin, fmt.Sprintf("  %-28s %s\n", "Calculated ROE", "0.3397")) {
		t.Error("financial report missing DuPont row")
	}

	mkt := FormatMarketingReport(rev.MarketingMetrics)
	if !strings.Contains(mkt, "MARKETING METRICS") || strings.Contains(mkt, "CMO REPORT") {
		t.Errorf("marketing report sections wrong:\n%s", mkt)
	}
	if !strings.Contains(mkt, fmt.Sprintf("  %-28s %s\n", "CAC", "250")) {
		t.Error("marketing report missing CAC row")
	}
}
