// Package scenario loads and ships the company records an advisory
// session runs on.
package scenario

import (
	"fmt"
	"os"

	"business_consultant/pkg/core/calc"
	"business_consultant/pkg/core/utils"
)

// Scenario bundles one company's financial and marketing inputs.
type Scenario struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Financial   calc.FinancialInputs `json:"financial"`
	Marketing   calc.MarketingInputs `json:"marketing"`
}

// DefaultFinancialInputs returns zeroed inputs carrying the intake
// defaults: one share outstanding, so per-share math stays meaningful
// when market data is omitted. An explicit zero in a scenario file still
// wins over the default.
func DefaultFinancialInputs() calc.FinancialInputs {
	return calc.FinancialInputs{SharesOutstanding: 1}
}

// Load reads a scenario file. Plain JSON, damaged JSON, and Hjson with
// comments all parse; fields absent from the file keep their defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario file: %w", err)
	}

	s := &Scenario{Financial: DefaultFinancialInputs()}
	if err := utils.ParseLenient(data, s); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Sample returns the demo company shipped with the tool.
func Sample() *Scenario {
	return &Scenario{
		Name:        "SaaS Baseline",
		Description: "Profitable mid-market SaaS with a healthy growth engine.",
		Financial: calc.FinancialInputs{
			Revenue:                     1200000,
			COGS:                        420000,
			GrossProfit:                 780000,
			SalesAndMarketing:           200000,
			ResearchAndDevelopment:      120000,
			GeneralAndAdministrative:    150000,
			EBITDA:                      310000,
			DepreciationAndAmortization: 40000,
			EBIT:                        270000,
			InterestExpense:             12000,
			NetIncome:                   203820,
			CashEquivalents:             250000,
			AccountsReceivable:          95000,
			Inventory:                   180000,
			FixedAssetsPPE:              400000,
			IntangibleAssets:            100000,
			AccountsPayable:             60000,
			AccruedExpenses:             25000,
			LongTermDebt:                350000,
			ShareholdersEquity:          600000,
			StockPrice:                  45.0,
			SharesOutstanding:           50000,
		},
		Marketing: calc.MarketingInputs{
			Revenue:                   1200000,
			MarketingSpend:            75000,
			NewCustomersAcquired:      300,
			TotalCustomersStartPeriod: 2000,
			TotalCustomersEndPeriod:   2200,
			AvgRevenuePerUserMonthly:  150.0,
			GrossMarginPct:            0.65,
			ExpansionRevenue:          12000,
		},
	}
}
