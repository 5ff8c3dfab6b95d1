package calc

import "fmt"

// =============================================================================
// MARKETING UNIT-ECONOMICS ENGINE
// =============================================================================

// AnalyzeMarketing computes customer-acquisition and retention unit economics
// from one period of cohort data. Marketing guards test strictly positive
// denominators (a negative customer count yields 0, not a negative ratio),
// unlike the financial ratios which only guard exact zero. Churn and retention
// are intentionally unclamped: retention above 100% or below 0% signals
// untracked cohort movement and is reported as computed.
func AnalyzeMarketing(in MarketingInputs) MarketingReport {
	cac := divPos(in.MarketingSpend, in.NewCustomersAcquired)

	// Lost customers may be negative when the end-period count exceeds
	// start + acquired (net growth beyond tracked acquisition). Not clamped.
	lostCustomers := (in.TotalCustomersStartPeriod + in.NewCustomersAcquired) - in.TotalCustomersEndPeriod
	churnRate := divPos(lostCustomers, in.TotalCustomersStartPeriod)
	retentionRate := 1 - churnRate

	startingRev := in.TotalCustomersStartPeriod * in.AvgRevenuePerUserMonthly
	nrr := divPos(startingRev+in.ExpansionRevenue-(lostCustomers*in.AvgRevenuePerUserMonthly), startingRev)

	// Zero churn would mean infinite lifetime value; collapsed to 0 by the
	// same fallback policy as the financial ratios.
	ltv := divPos(in.AvgRevenuePerUserMonthly*in.GrossMarginPct, churnRate)

	ltvCACRatio := divPos(ltv, cac)
	paybackPeriod := 0.0
	if in.AvgRevenuePerUserMonthly > 0 && in.GrossMarginPct > 0 {
		paybackPeriod = cac / (in.AvgRevenuePerUserMonthly * in.GrossMarginPct)
	}

	marketingEfficiencyRatio := divPos(in.Revenue, in.MarketingSpend)
	marketingSpendPct := divPos(in.MarketingSpend, in.Revenue)

	status := StatusNeedsOptimization
	if ltvCACRatio >= 3 {
		status = StatusHealthy
	}

	return MarketingReport{
		Acquisition: AcquisitionMetrics{
			CAC:                      round2(cac),
			MarketingSpendPct:        formatPct(marketingSpendPct),
			MarketingEfficiencyRatio: round2(marketingEfficiencyRatio),
		},
		RetentionAndValue: RetentionValueMetrics{
			RetentionRate:       formatPct(retentionRate),
			ChurnRate:           formatPct(churnRate),
			NetRevenueRetention: formatPct(nrr),
			LTV:                 round2(ltv),
		},
		UnitEconomics: UnitEconomicsMetrics{
			LTVCACRatio:         round2(ltvCACRatio),
			PaybackPeriodMonths: round1(paybackPeriod),
			Status:              status,
		},
	}
}

// divPos divides only when the denominator is strictly positive.
func divPos(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

// formatPct renders a fraction as a one-decimal percent string: 0.05 -> "5.0%".
func formatPct(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}
