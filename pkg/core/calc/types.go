// Package calc provides the deterministic metrics engine: pure functions
// mapping raw financial-statement and customer-cohort inputs to nested
// ratio reports. No I/O, no side effects; every division is zero-guarded.
package calc

import (
	"fmt"
	"math"
)

// =============================================================================
// INPUT RECORDS
// =============================================================================

// FinancialInputs is one period of income-statement and balance-sheet line
// items plus optional market data. Zero is a valid value for every field.
// StockPrice defaults to 0 and SharesOutstanding to 1; decode boundaries
// pre-seed SharesOutstanding so an absent key keeps the default while an
// explicit 0 overrides it (see scenario.DefaultFinancialInputs).
type FinancialInputs struct {
	Revenue                     float64 `json:"revenue"`
	COGS                        float64 `json:"cogs"`
	GrossProfit                 float64 `json:"gross_profit"`
	SalesAndMarketing           float64 `json:"sales_and_marketing"`
	ResearchAndDevelopment      float64 `json:"research_and_development"`
	GeneralAndAdministrative    float64 `json:"general_and_administrative"`
	EBITDA                      float64 `json:"ebitda"`
	DepreciationAndAmortization float64 `json:"depreciation_and_amortization"`
	EBIT                        float64 `json:"ebit"`
	InterestExpense             float64 `json:"interest_expense"`
	NetIncome                   float64 `json:"net_income"`
	CashEquivalents             float64 `json:"cash_equivalents"`
	AccountsReceivable          float64 `json:"accounts_receivable"`
	Inventory                   float64 `json:"inventory"`
	FixedAssetsPPE              float64 `json:"fixed_assets_ppe"`
	IntangibleAssets            float64 `json:"intangible_assets"`
	AccountsPayable             float64 `json:"accounts_payable"`
	AccruedExpenses             float64 `json:"accrued_expenses"`
	LongTermDebt                float64 `json:"long_term_debt"`
	ShareholdersEquity          float64 `json:"shareholders_equity"`
	StockPrice                  float64 `json:"stock_price"`
	SharesOutstanding           float64 `json:"shares_outstanding"`
}

// MarketingInputs is one period of customer-cohort and spend data.
// GrossMarginPct is a fraction (0.65 = 65%), not a percentage.
type MarketingInputs struct {
	Revenue                   float64 `json:"revenue"`
	MarketingSpend            float64 `json:"marketing_spend"`
	NewCustomersAcquired      float64 `json:"new_customers_acquired"`
	TotalCustomersStartPeriod float64 `json:"total_customers_start_period"`
	TotalCustomersEndPeriod   float64 `json:"total_customers_end_period"`
	AvgRevenuePerUserMonthly  float64 `json:"avg_revenue_per_user_monthly"`
	GrossMarginPct            float64 `json:"gross_margin_pct"`
	ExpansionRevenue          float64 `json:"expansion_revenue"`
}

// Validate rejects non-finite fields before any ratio math runs.
// Callers at the orchestration/API boundary invoke this; the analysis
// functions themselves assume finite inputs.
func (in FinancialInputs) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"revenue", in.Revenue},
		{"cogs", in.COGS},
		{"gross_profit", in.GrossProfit},
		{"sales_and_marketing", in.SalesAndMarketing},
		{"research_and_development", in.ResearchAndDevelopment},
		{"general_and_administrative", in.GeneralAndAdministrative},
		{"ebitda", in.EBITDA},
		{"depreciation_and_amortization", in.DepreciationAndAmortization},
		{"ebit", in.EBIT},
		{"interest_expense", in.InterestExpense},
		{"net_income", in.NetIncome},
		{"cash_equivalents", in.CashEquivalents},
		{"accounts_receivable", in.AccountsReceivable},
		{"inventory", in.Inventory},
		{"fixed_assets_ppe", in.FixedAssetsPPE},
		{"intangible_assets", in.IntangibleAssets},
		{"accounts_payable", in.AccountsPayable},
		{"accrued_expenses", in.AccruedExpenses},
		{"long_term_debt", in.LongTermDebt},
		{"shareholders_equity", in.ShareholdersEquity},
		{"stock_price", in.StockPrice},
		{"shares_outstanding", in.SharesOutstanding},
	}
	return checkFinite("financial", fields)
}

// Validate rejects non-finite fields before any ratio math runs.
func (in MarketingInputs) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"revenue", in.Revenue},
		{"marketing_spend", in.MarketingSpend},
		{"new_customers_acquired", in.NewCustomersAcquired},
		{"total_customers_start_period", in.TotalCustomersStartPeriod},
		{"total_customers_end_period", in.TotalCustomersEndPeriod},
		{"avg_revenue_per_user_monthly", in.AvgRevenuePerUserMonthly},
		{"gross_margin_pct", in.GrossMarginPct},
		{"expansion_revenue", in.ExpansionRevenue},
	}
	return checkFinite("marketing", fields)
}

func checkFinite(kind string, fields []struct {
	name string
	val  float64
}) error {
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("INVALID_INPUT: %s field %q must be a finite number, got %v", kind, f.name, f.val)
		}
	}
	return nil
}

// =============================================================================
// REPORT STRUCTURES
// Field order is serialization order; json tags are the published key names
// and must not change (downstream prompts embed this exact shape).
// =============================================================================

// FinancialReport is the nested financial-ratio report.
type FinancialReport struct {
	Liquidity     LiquidityRatios     `json:"Liquidity"`
	Solvency      SolvencyRatios      `json:"Solvency"`
	Turnover      TurnoverRatios      `json:"Turnover"`
	Profitability ProfitabilityRatios `json:"Profitability"`
	DuPont        DuPontBreakdown     `json:"DuPont_Breakdown"`
	Market        MarketRatios        `json:"Market"`
	Operational   OperationalRatios   `json:"Operational"`
}

type LiquidityRatios struct {
	Current  float64 `json:"Current"`
	Quick    float64 `json:"Quick"`
	Cash     float64 `json:"Cash"`
	Interval float64 `json:"Interval"` // days of operation covered by current assets
}

type SolvencyRatios struct {
	DebtRatio    float64 `json:"Debt Ratio"`
	Multiplier   float64 `json:"Multiplier"`
	LTD          float64 `json:"LTD"`
	TIE          float64 `json:"TIE"`
	CashCoverage float64 `json:"Cash Coverage"`
}

type TurnoverRatios struct {
	TotalAsset float64 `json:"Total Asset"`
	NWC        float64 `json:"NWC"`
	FixedAsset float64 `json:"Fixed Asset"`
}

type ProfitabilityRatios struct {
	GrossMargin  float64 `json:"Gross Margin"`
	ProfitMargin float64 `json:"Profit Margin"`
	ROA          float64 `json:"ROA"`
	ROE          float64 `json:"ROE"`
}

// DuPontBreakdown decomposes ROE into its three multiplicative levers.
// CalculatedROE is the product of the unrounded levers, rounded once.
type DuPontBreakdown struct {
	ProfitabilityLever float64 `json:"Profitability_Lever"`
	EfficiencyLever    float64 `json:"Efficiency_Lever"`
	LeverageLever      float64 `json:"Leverage_Lever"`
	CalculatedROE      float64 `json:"Calculated_ROE"`
}

type MarketRatios struct {
	PE         float64 `json:"P/E"`
	MarketBook float64 `json:"Market/Book"`
	PriceSales float64 `json:"Price/Sales"`
	EV         float64 `json:"EV"`
	EVEBITDA   float64 `json:"EV_EBITDA"`
}

type OperationalRatios struct {
	InvTurnover float64 `json:"Inv_Turnover"`
	DSI         float64 `json:"DSI"`
	RecTurnover float64 `json:"Rec_Turnover"`
	DSO         float64 `json:"DSO"`
}

// MarketingReport is the nested marketing unit-economics report.
// Percent fields are pre-formatted one-decimal strings ("5.0%").
type MarketingReport struct {
	Acquisition       AcquisitionMetrics    `json:"Acquisition"`
	RetentionAndValue RetentionValueMetrics `json:"Retention_and_Value"`
	UnitEconomics     UnitEconomicsMetrics  `json:"Unit_Economics"`
}

type AcquisitionMetrics struct {
	CAC                      float64 `json:"CAC"`
	MarketingSpendPct        string  `json:"Marketing_Spend_Pct"`
	MarketingEfficiencyRatio float64 `json:"Marketing_Efficiency_Ratio"`
}

type RetentionValueMetrics struct {
	RetentionRate       string  `json:"Retention_Rate"`
	ChurnRate           string  `json:"Churn_Rate"`
	NetRevenueRetention string  `json:"Net_Revenue_Retention"`
	LTV                 float64 `json:"LTV"`
}

type UnitEconomicsMetrics struct {
	LTVCACRatio         float64 `json:"LTV_CAC_Ratio"`
	PaybackPeriodMonths float64 `json:"Payback_Period_Months"`
	Status              string  `json:"Status"`
}

// Status labels for UnitEconomicsMetrics.Status. The threshold is an
// unrounded LTV:CAC of 3, inclusive.
const (
	StatusHealthy           = "Healthy"
	StatusNeedsOptimization = "Needs Optimization"
)
