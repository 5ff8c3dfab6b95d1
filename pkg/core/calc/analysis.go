package calc

import "math"

// =============================================================================
// FINANCIAL ANALYSIS ENGINE
// =============================================================================

// AnalyzeFinancials computes the full financial-ratio report from one period
// of raw inputs. Deterministic and total: a zero denominator yields a 0 ratio
// (a deliberate fallback inherited from the original tool, not an error), so
// the result is finite for any finite inputs.
func AnalyzeFinancials(in FinancialInputs) FinancialReport {
	// Intermediate aggregates
	currentAssets := in.CashEquivalents + in.AccountsReceivable + in.Inventory
	totalAssets := currentAssets + in.FixedAssetsPPE + in.IntangibleAssets
	currentLiab := in.AccountsPayable + in.AccruedExpenses
	nwc := currentAssets - currentLiab

	// Liquidity
	currentRatio := safeDiv(currentAssets, currentLiab)
	quickRatio := safeDiv(currentAssets-in.Inventory, currentLiab)
	cashRatio := safeDiv(in.CashEquivalents, currentLiab)
	intervalMeasure := 0.0
	if in.COGS != 0 {
		intervalMeasure = currentAssets / (in.COGS / 365)
	}

	// Solvency
	totalDebtRatio := safeDiv(totalAssets-in.ShareholdersEquity, totalAssets)
	equityMultiplier := safeDiv(totalAssets, in.ShareholdersEquity)
	ltdRatio := safeDiv(in.LongTermDebt, in.LongTermDebt+in.ShareholdersEquity)
	tie := safeDiv(in.EBIT, in.InterestExpense)
	cashCoverage := safeDiv(in.EBITDA, in.InterestExpense)

	// Turnover
	totalAssetTurnover := safeDiv(in.Revenue, totalAssets)
	nwcTurnover := safeDiv(in.Revenue, nwc)
	fixedAssetTurnover := safeDiv(in.Revenue, in.FixedAssetsPPE)

	// Profitability
	grossMargin := safeDiv(in.GrossProfit, in.Revenue)
	profitMargin := safeDiv(in.NetIncome, in.Revenue)
	roa := safeDiv(in.NetIncome, totalAssets)
	roe := safeDiv(in.NetIncome, in.ShareholdersEquity)

	// DuPont: product of the unrounded levers
	dupontROE := profitMargin * totalAssetTurnover * equityMultiplier

	// Market
	marketCap := in.StockPrice * in.SharesOutstanding
	peRatio := 0.0
	if in.NetIncome != 0 && in.SharesOutstanding != 0 {
		peRatio = in.StockPrice / (in.NetIncome / in.SharesOutstanding)
	}
	marketToBook := safeDiv(marketCap, in.ShareholdersEquity)
	priceSales := safeDiv(marketCap, in.Revenue)
	enterpriseValue := marketCap + in.LongTermDebt - in.CashEquivalents
	evEBITDA := safeDiv(enterpriseValue, in.EBITDA)

	// Operational
	invTurnover := safeDiv(in.COGS, in.Inventory)
	daysSalesInv := safeDiv(365, invTurnover)
	recTurnover := safeDiv(in.Revenue, in.AccountsReceivable)
	daysSalesRec := safeDiv(365, recTurnover)

	return FinancialReport{
		Liquidity: LiquidityRatios{
			Current:  round2(currentRatio),
			Quick:    round2(quickRatio),
			Cash:     round2(cashRatio),
			Interval: round2(intervalMeasure),
		},
		Solvency: SolvencyRatios{
			DebtRatio:    round2(totalDebtRatio),
			Multiplier:   round2(equityMultiplier),
			LTD:          round2(ltdRatio),
			TIE:          round2(tie),
			CashCoverage: round2(cashCoverage),
		},
		Turnover: TurnoverRatios{
			TotalAsset: round2(totalAssetTurnover),
			NWC:        round2(nwcTurnover),
			FixedAsset: round2(fixedAssetTurnover),
		},
		Profitability: ProfitabilityRatios{
			GrossMargin:  round4(grossMargin),
			ProfitMargin: round4(profitMargin),
			ROA:          round4(roa),
			ROE:          round4(roe),
		},
		DuPont: DuPontBreakdown{
			ProfitabilityLever: round4(profitMargin),
			EfficiencyLever:    round2(totalAssetTurnover),
			LeverageLever:      round2(equityMultiplier),
			CalculatedROE:      round4(dupontROE),
		},
		Market: MarketRatios{
			PE:         round2(peRatio),
			MarketBook: round2(marketToBook),
			PriceSales: round4(priceSales),
			EV:         round2(enterpriseValue),
			EVEBITDA:   round2(evEBITDA),
		},
		Operational: OperationalRatios{
			InvTurnover: round2(invTurnover),
			DSI:         round2(daysSalesInv),
			RecTurnover: round2(recTurnover),
			DSO:         round2(daysSalesRec),
		},
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// safeDiv implements the fallback-to-zero division policy. The guard is on
// exact zero only: negative denominators compute normally.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
