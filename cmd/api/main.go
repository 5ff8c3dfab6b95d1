package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	apiconfig "business_consultant/pkg/api/config"
	apiconsult "business_consultant/pkg/api/consult"
	"business_consultant/pkg/core/agent"
)

func loadAgentConfig(logger *zap.Logger) agent.Config {
	var cfg agent.Config

	data, err := os.ReadFile("config/models.yaml")
	if err != nil {
		logger.Warn("models.yaml not found, using defaults", zap.Error(err))
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warn("models.yaml unreadable, using defaults", zap.Error(err))
	}

	// Environment wins over file config
	if p := os.Getenv("LLM_PROVIDER"); p != "" {
		cfg.ActiveProvider = p
	}
	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = "gemini"
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("[FATAL] Logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize manager from config
	agentMgr := agent.NewManager(loadAgentConfig(logger))
	logger.Info("agent manager ready", zap.String("active_provider", agentMgr.ActiveProvider()))

	// Config endpoints
	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Advisory session endpoints
	consultHandler := apiconsult.NewHandler(agentMgr, logger)
	http.HandleFunc("/api/consult/business", consultHandler.HandleBusiness)
	http.HandleFunc("/api/consult/financial", consultHandler.HandleFinancial)
	http.HandleFunc("/api/consult/marketing", consultHandler.HandleMarketing)

	// Metrics-only endpoints (no backend calls)
	http.HandleFunc("/api/metrics/financial", consultHandler.HandleFinancialMetrics)
	http.HandleFunc("/api/metrics/marketing", consultHandler.HandleMarketingMetrics)

	// Demo scenario for frontend prefill
	http.HandleFunc("/api/scenario/sample", consultHandler.HandleSampleScenario)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/consult/business")
	fmt.Println("  - POST /api/consult/financial")
	fmt.Println("  - POST /api/consult/marketing")
	fmt.Println("  - POST /api/metrics/financial")
	fmt.Println("  - POST /api/metrics/marketing")
	fmt.Println("  - GET  /api/scenario/sample")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
