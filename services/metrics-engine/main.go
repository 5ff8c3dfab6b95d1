package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"business_consultant/pkg/core/calc"
	"business_consultant/pkg/core/scenario"
	"business_consultant/pkg/core/utils"
)

func main() {
	mode := flag.String("mode", "financial", "Mode: financial, marketing, or check")
	dataStr := flag.String("data", "", "JSON data payload")
	filePath := flag.String("file", "", "Read the payload from a file instead (JSON or Hjson)")
	flag.Parse()

	payload := []byte(*dataStr)
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			os.Exit(1)
		}
		payload = data
	}
	if len(payload) == 0 {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	switch *mode {
	case "financial":
		runFinancial(payload)
	case "marketing":
		runMarketing(payload)
	case "check":
		runChecks(payload)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func decodeFinancial(payload []byte) calc.FinancialInputs {
	in := scenario.DefaultFinancialInputs()
	if err := utils.ParseLenient(payload, &in); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}
	if err := in.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return in
}

func runFinancial(payload []byte) {
	rep := calc.AnalyzeFinancials(decodeFinancial(payload))
	printJSON(rep)
}

func runMarketing(payload []byte) {
	var in calc.MarketingInputs
	if err := utils.ParseLenient(payload, &in); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}
	if err := in.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	printJSON(calc.AnalyzeMarketing(in))
}

// runChecks verifies the statement identities before any ratio math is
// trusted.
func runChecks(payload []byte) {
	in := decodeFinancial(payload)
	failed := false

	if diff := in.GrossProfit - (in.Revenue - in.COGS); diff != 0 {
		fmt.Printf("Error: Gross Profit Imbalance (Diff: %f)\n", diff)
		failed = true
	} else {
		fmt.Println("Success: Gross Profit = Revenue - COGS")
	}

	if diff := in.EBIT - (in.EBITDA - in.DepreciationAndAmortization); diff != 0 {
		fmt.Printf("Error: EBIT Imbalance (Diff: %f)\n", diff)
		failed = true
	} else {
		fmt.Println("Success: EBIT = EBITDA - D&A")
	}

	if failed {
		os.Exit(1)
	}
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
