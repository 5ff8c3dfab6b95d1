// Package report renders advisory sessions for the console and the
// browser. Rendering reads the review structs and never alters the
// stored narrative strings.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"business_consultant/pkg/core/calc"
	"business_consultant/pkg/core/consult"
)

type metricSection struct {
	Title string
	Rows  [][2]string
}

// num renders a metric with the shortest exact decimal form, so 6.18
// stays "6.18" and 2350000 stays "2350000".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func financialSections(rep calc.FinancialReport) []metricSection {
	return []metricSection{
		{"Liquidity", [][2]string{
			{"Current", num(rep.Liquidity.Current)},
			{"Quick", num(rep.Liquidity.Quick)},
			{"Cash", num(rep.Liquidity.Cash)},
			{"Interval", num(rep.Liquidity.Interval)},
		}},
		{"Solvency", [][2]string{
			{"Debt Ratio", num(rep.Solvency.DebtRatio)},
			{"Multiplier", num(rep.Solvency.Multiplier)},
			{"LTD", num(rep.Solvency.LTD)},
			{"TIE", num(rep.Solvency.TIE)},
			{"Cash Coverage", num(rep.Solvency.CashCoverage)},
		}},
		{"Turnover", [][2]string{
			{"Total Asset", num(rep.Turnover.TotalAsset)},
			{"NWC", num(rep.Turnover.NWC)},
			{"Fixed Asset", num(rep.Turnover.FixedAsset)},
		}},
		{"Profitability", [][2]string{
			{"Gross Margin", num(rep.Profitability.GrossMargin)},
			{"Profit Margin", num(rep.Profitability.ProfitMargin)},
			{"ROA", num(rep.Profitability.ROA)},
			{"ROE", num(rep.Profitability.ROE)},
		}},
		{"DuPont Breakdown", [][2]string{
			{"Profitability Lever", num(rep.DuPont.ProfitabilityLever)},
			{"Efficiency Lever", num(rep.DuPont.EfficiencyLever)},
			{"Leverage Lever", num(rep.DuPont.LeverageLever)},
			{"Calculated ROE", num(rep.DuPont.CalculatedROE)},
		}},
		{"Market", [][2]string{
			{"P/E", num(rep.Market.PE)},
			{"Market/Book", num(rep.Market.MarketBook)},
			{"Price/Sales", num(rep.Market.PriceSales)},
			{"EV", num(rep.Market.EV)},
			{"EV/EBITDA", num(rep.Market.EVEBITDA)},
		}},
		{"Operational", [][2]string{
			{"Inv Turnover", num(rep.Operational.InvTurnover)},
			{"DSI", num(rep.Operational.DSI)},
			{"Rec Turnover", num(rep.Operational.RecTurnover)},
			{"DSO", num(rep.Operational.DSO)},
		}},
	}
}

func marketingSections(rep calc.MarketingReport) []metricSection {
	return []metricSection{
		{"Acquisition", [][2]string{
			{"CAC", num(rep.Acquisition.CAC)},
			{"Marketing Spend Pct", rep.Acquisition.MarketingSpendPct},
			{"Marketing Efficiency Ratio", num(rep.Acquisition.MarketingEfficiencyRatio)},
		}},
		{"Retention and Value", [][2]string{
			{"Retention Rate", rep.RetentionAndValue.RetentionRate},
			{"Churn Rate", rep.RetentionAndValue.ChurnRate},
			{"Net Revenue Retention", rep.RetentionAndValue.NetRevenueRetention},
			{"LTV", num(rep.RetentionAndValue.LTV)},
		}},
		{"Unit Economics", [][2]string{
			{"LTV:CAC Ratio", num(rep.UnitEconomics.LTVCACRatio)},
			{"Payback Period (months)", num(rep.UnitEconomics.PaybackPeriodMonths)},
			{"Status", rep.UnitEconomics.Status},
		}},
	}
}

func writeSections(b *strings.Builder, sections []metricSection) {
	for _, sec := range sections {
		fmt.Fprintf(b, "%s\n", sec.Title)
		for _, row := range sec.Rows {
			fmt.Fprintf(b, "  %-28s %s\n", row[0], row[1])
		}
		b.WriteString("\n")
	}
}

func writeBanner(b *strings.Builder, title string) {
	b.WriteString(strings.Repeat("=", 64) + "\n")
	fmt.Fprintf(b, " %s\n", title)
	b.WriteString(strings.Repeat("=", 64) + "\n\n")
}

// FormatFinancialReport renders the ratio report alone.
func FormatFinancialReport(rep calc.FinancialReport) string {
	var b strings.Builder
	writeBanner(&b, "FINANCIAL METRICS")
	writeSections(&b, financialSections(rep))
	return b.String()
}

// FormatMarketingReport renders the unit economics report alone.
func FormatMarketingReport(rep calc.MarketingReport) string {
	var b strings.Builder
	writeBanner(&b, "MARKETING METRICS")
	writeSections(&b, marketingSections(rep))
	return b.String()
}

// FormatFinancialReview renders metrics plus the CFO narrative.
func FormatFinancialReview(rev *consult.FinancialReview) string {
	var b strings.Builder
	writeBanner(&b, "FINANCIAL METRICS")
	writeSections(&b, financialSections(rev.Metrics))
	writeBanner(&b, "CFO REPORT")
	b.WriteString(rev.Narrative + "\n")
	return b.String()
}

// FormatMarketingReview renders metrics plus the CMO narrative.
func FormatMarketingReview(rev *consult.MarketingReview) string {
	var b strings.Builder
	writeBanner(&b, "MARKETING METRICS")
	writeSections(&b, marketingSections(rev.Metrics))
	writeBanner(&b, "CMO REPORT")
	b.WriteString(rev.Narrative + "\n")
	return b.String()
}

// FormatBusinessReview renders the full board session in reading order.
func FormatBusinessReview(rev *consult.BusinessReview) string {
	var b strings.Builder
	writeBanner(&b, fmt.Sprintf("BUSINESS REVIEW %s (%s)", rev.ID, rev.GeneratedAt.Format(time.RFC3339)))
	writeBanner(&b, "FINANCIAL METRICS")
	writeSections(&b, financialSections(rev.FinancialMetrics))
	writeBanner(&b, "CFO REPORT")
	b.WriteString(rev.FinancialNarrative + "\n\n")
	writeBanner(&b, "MARKETING METRICS")
	writeSections(&b, marketingSections(rev.MarketingMetrics))
	writeBanner(&b, "CMO REPORT")
	b.WriteString(rev.MarketingNarrative + "\n\n")
	writeBanner(&b, "CEO DIRECTIVE")
	b.WriteString(rev.CEONarrative + "\n")
	return b.String()
}
