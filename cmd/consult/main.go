package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"business_consultant/pkg/core/advisor"
	"business_consultant/pkg/core/agent"
	"business_consultant/pkg/core/calc"
	"business_consultant/pkg/core/consult"
	"business_consultant/pkg/core/report"
	"business_consultant/pkg/core/scenario"
)

func loadAgentConfig() agent.Config {
	var cfg agent.Config
	if data, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(data, &cfg)
	}
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		cfg.ActiveProvider = p
	}
	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = "gemini"
	}
	return cfg
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "sample" {
		return scenario.Sample(), nil
	}
	return scenario.Load(path)
}

func main() {
	scenarioPath := flag.String("scenario", "config/scenarios/saas_baseline.hjson", "Scenario file (JSON or Hjson), or 'sample' for the built-in demo company")
	mode := flag.String("mode", "full", "Mode: full, financial, marketing, or metrics")
	provider := flag.String("provider", "", "Backend override: gemini, openai, deepseek, or ollama")
	model := flag.String("model", "", "Default model override for the active backend")
	format := flag.String("format", "text", "Output format: text, json, or html (html needs -mode full)")
	out := flag.String("out", "", "Write the report to a file instead of stdout")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	sc, err := loadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	// Metrics mode is pure local math, no backend needed.
	if *mode == "metrics" {
		runMetrics(sc, *format, *out)
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Error: logger init failed: %v", err)
	}
	defer logger.Sync()

	cfg := loadAgentConfig()
	if *provider != "" {
		cfg.ActiveProvider = *provider
	}
	if *model != "" {
		if cfg.Models == nil {
			cfg.Models = make(map[string]string)
		}
		cfg.Models[cfg.ActiveProvider] = *model
	}
	mgr := agent.NewManager(cfg)

	opts := []consult.Option{consult.WithLogger(logger)}
	for _, role := range advisor.Roles() {
		opts = append(opts, consult.WithRoleGenerator(role, mgr.GeneratorFor(string(role))))
	}
	orch := consult.NewOrchestrator(mgr.GeneratorFor(""), opts...)

	ctx := context.Background()
	var output []byte

	switch *mode {
	case "full":
		rev, err := orch.AnalyzeBusiness(ctx, sc.Financial, sc.Marketing)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		output = renderFull(rev, *format)
	case "financial":
		rev, err := orch.ReviewFinancials(ctx, sc.Financial)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		output = render(*format, report.FormatFinancialReview(rev), rev)
	case "marketing":
		rev, err := orch.ReviewMarketing(ctx, sc.Marketing)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		output = render(*format, report.FormatMarketingReview(rev), rev)
	default:
		log.Fatalf("Error: unknown mode %q", *mode)
	}

	writeOutput(output, *out)
}

func runMetrics(sc *scenario.Scenario, format, out string) {
	finRep, err := consult.FinancialMetrics(sc.Financial)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	mktRep, err := consult.MarketingMetrics(sc.Marketing)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	var output []byte
	switch format {
	case "text":
		output = []byte(report.FormatFinancialReport(*finRep) + report.FormatMarketingReport(*mktRep))
	case "json":
		output = marshalIndent(struct {
			Financial *calc.FinancialReport `json:"financial_metrics"`
			Marketing *calc.MarketingReport `json:"marketing_metrics"`
		}{finRep, mktRep})
	default:
		log.Fatalf("Error: format %q not supported in metrics mode", format)
	}
	writeOutput(output, out)
}

func renderFull(rev *consult.BusinessReview, format string) []byte {
	switch format {
	case "text":
		return []byte(report.FormatBusinessReview(rev))
	case "json":
		return marshalIndent(rev)
	case "html":
		page, err := report.RenderHTML(rev)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		return page
	}
	log.Fatalf("Error: unknown format %q", format)
	return nil
}

func render(format, text string, v interface{}) []byte {
	switch format {
	case "text":
		return []byte(text)
	case "json":
		return marshalIndent(v)
	}
	log.Fatalf("Error: format %q needs -mode full", format)
	return nil
}

func marshalIndent(v interface{}) []byte {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return append(data, '\n')
}

func writeOutput(data []byte, out string) {
	if out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("Report written to %s\n", out)
}
