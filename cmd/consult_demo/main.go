package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"business_consultant/pkg/core/consult"
	"business_consultant/pkg/core/report"
	"business_consultant/pkg/core/scenario"
)

// Logger helper
func logStep(step string, details string) {
	fmt.Printf("\n[STEP] %s\n", step)
	fmt.Println("---------------------------------------------------------")
	fmt.Println(details)
	fmt.Println("---------------------------------------------------------")
}

const cannedCFO = `## Financial Health Assessment

**The Hard Truth:** The balance sheet is strong, but it is working harder than the income statement.

1. Liquidity is not the problem. A current ratio of 6.18 means cash is sitting idle instead of funding growth.
2. The DuPont breakdown shows returns are driven by margin, not leverage. There is untapped, low-risk debt capacity.
3. Opportunity: redeploy roughly a third of the idle current assets into growth without touching the risk profile.`

const cannedCMO = `## Growth Engine Diagnosis

**Grade: B+.** The funnel is efficient but under-fueled.

- An LTV:CAC of 7.8 means every acquisition dollar returns nearly eight. That is a green light to spend more.
- Payback of 2.6 months is elite. The bottleneck is budget, not efficiency.
- First experiment: double the spend on the best-performing channel for one quarter and watch CAC for degradation.`

const cannedCEO = `## Strategic Directive

**The One Thing:** Move idle balance-sheet cash into the acquisition engine.

My CFO tells me we are over-liquid; my CMO tells me the growth engine returns 7.8x on every dollar it is fed.
The biggest risk this quarter is not spending too much on growth. It is continuing to spend too little.

**This Quarter:** Shift $150k from cash reserves into the proven channel, hold payback under 4 months, review in 90 days.`

// cannedBoard answers each advisor from a script, so the demo runs
// without any API key or local model.
type cannedBoard struct{}

func (cannedBoard) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	switch {
	case strings.Contains(prompt, "Fractional CFO"):
		return cannedCFO, nil
	case strings.Contains(prompt, "Chief Marketing Officer"):
		return cannedCMO, nil
	default:
		return cannedCEO, nil
	}
}

func main() {
	logStep("0. Initialization", "Starting Advisory Board Demo (scripted advisors, no backend needed)...")

	sc := scenario.Sample()
	logStep("1. Scenario", fmt.Sprintf("%s: %s", sc.Name, sc.Description))

	orch := consult.NewOrchestrator(cannedBoard{})

	logStep("2. Board Session", "Running CFO review, CMO review, and CEO synthesis...")
	rev, err := orch.AnalyzeBusiness(context.Background(), sc.Financial, sc.Marketing)
	if err != nil {
		fmt.Printf("Error running board session: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Print(report.FormatBusinessReview(rev))

	// Also drop the browser version next to the binary.
	page, err := report.RenderHTML(rev)
	if err != nil {
		fmt.Printf("Warning: HTML render failed: %v\n", err)
		return
	}
	if err := os.WriteFile("review.html", page, 0644); err != nil {
		fmt.Printf("Warning: could not write review.html: %v\n", err)
		return
	}
	fmt.Println("\n[Done] Full report above; browser version in review.html")
}
