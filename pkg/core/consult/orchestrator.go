// Package consult runs the advisory sessions. Metrics are computed
// locally first; the narratives then come from the configured text
// generation backends, one advisor at a time in board order.
package consult

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"business_consultant/pkg/core/advisor"
	"business_consultant/pkg/core/calc"
)

// TextGenerator is the one capability the orchestrator needs from a
// backend. The pkg/core/llm providers satisfy it as-is.
type TextGenerator interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Orchestrator drives the three advisors against one generator, with
// optional per-role overrides.
type Orchestrator struct {
	base   TextGenerator
	byRole map[advisor.Role]TextGenerator
	logger *zap.Logger
}

type Option func(*Orchestrator)

// WithLogger attaches a logger. Without it the orchestrator stays silent.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithRoleGenerator routes one advisor to its own backend.
func WithRoleGenerator(role advisor.Role, gen TextGenerator) Option {
	return func(o *Orchestrator) { o.byRole[role] = gen }
}

func NewOrchestrator(gen TextGenerator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		base:   gen,
		byRole: make(map[advisor.Role]TextGenerator),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) generatorFor(role advisor.Role) TextGenerator {
	if g, ok := o.byRole[role]; ok {
		return g
	}
	return o.base
}

// FinancialReview pairs the computed ratios with the CFO narrative.
type FinancialReview struct {
	Metrics   calc.FinancialReport `json:"financial_metrics"`
	Narrative string               `json:"financial_report"`
}

// MarketingReview pairs the unit economics with the CMO narrative.
type MarketingReview struct {
	Metrics   calc.MarketingReport `json:"marketing_metrics"`
	Narrative string               `json:"marketing_report"`
}

// BusinessReview is the full board session output. The narrative strings
// are stored exactly as the backends returned them.
type BusinessReview struct {
	ID                 string               `json:"id"`
	FinancialMetrics   calc.FinancialReport `json:"financial_metrics"`
	FinancialNarrative string               `json:"financial_report"`
	MarketingMetrics   calc.MarketingReport `json:"marketing_metrics"`
	MarketingNarrative string               `json:"marketing_report"`
	CEONarrative       string               `json:"ceo_report"`
	GeneratedAt        time.Time            `json:"generated_at"`
}

// FinancialMetrics validates the inputs and computes the ratio report
// without consulting any advisor.
func FinancialMetrics(in calc.FinancialInputs) (*calc.FinancialReport, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rep := calc.AnalyzeFinancials(in)
	return &rep, nil
}

// MarketingMetrics validates the inputs and computes the unit economics
// report without consulting any advisor.
func MarketingMetrics(in calc.MarketingInputs) (*calc.MarketingReport, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rep := calc.AnalyzeMarketing(in)
	return &rep, nil
}

// ReviewFinancials computes the ratio report and asks the CFO advisor
// for its reading.
func (o *Orchestrator) ReviewFinancials(ctx context.Context, in calc.FinancialInputs) (*FinancialReview, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	metrics := calc.AnalyzeFinancials(in)
	o.logger.Info("consulting advisor", zap.String("role", string(advisor.RoleCFO)))

	narrative, err := o.generatorFor(advisor.RoleCFO).GenerateResponse(ctx, advisor.BuildFinancialPrompt(metrics), "", nil)
	if err != nil {
		return nil, fmt.Errorf("cfo review: %w", err)
	}

	return &FinancialReview{Metrics: metrics, Narrative: narrative}, nil
}

// ReviewMarketing computes the unit economics and asks the CMO advisor
// for its reading.
func (o *Orchestrator) ReviewMarketing(ctx context.Context, in calc.MarketingInputs) (*MarketingReview, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	metrics := calc.AnalyzeMarketing(in)
	o.logger.Info("consulting advisor", zap.String("role", string(advisor.RoleCMO)))

	narrative, err := o.generatorFor(advisor.RoleCMO).GenerateResponse(ctx, advisor.BuildMarketingPrompt(metrics), "", nil)
	if err != nil {
		return nil, fmt.Errorf("cmo review: %w", err)
	}

	return &MarketingReview{Metrics: metrics, Narrative: narrative}, nil
}

// AnalyzeBusiness runs the full board session: CFO, then CMO, then the
// CEO synthesis over the two written narratives. Both input sets are
// validated before any advisor is consulted. The first failed generation
// aborts the session; later advisors are never called and no partial
// review is returned.
func (o *Orchestrator) AnalyzeBusiness(ctx context.Context, fin calc.FinancialInputs, mkt calc.MarketingInputs) (*BusinessReview, error) {
	if err := fin.Validate(); err != nil {
		return nil, err
	}
	if err := mkt.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := o.logger.With(zap.String("review_id", id))
	start := time.Now()

	finReview, err := o.ReviewFinancials(ctx, fin)
	if err != nil {
		return nil, err
	}

	mktReview, err := o.ReviewMarketing(ctx, mkt)
	if err != nil {
		return nil, err
	}

	log.Info("consulting advisor", zap.String("role", string(advisor.RoleCEO)))
	ceoNarrative, err := o.generatorFor(advisor.RoleCEO).GenerateResponse(ctx, advisor.BuildCEOPrompt(finReview.Narrative, mktReview.Narrative), "", nil)
	if err != nil {
		return nil, fmt.Errorf("ceo synthesis: %w", err)
	}

	log.Info("board session complete", zap.Duration("elapsed", time.Since(start)))

	return &BusinessReview{
		ID:                 id,
		FinancialMetrics:   finReview.Metrics,
		FinancialNarrative: finReview.Narrative,
		MarketingMetrics:   mktReview.Metrics,
		MarketingNarrative: mktReview.Narrative,
		CEONarrative:       ceoNarrative,
		GeneratedAt:        time.Now().UTC(),
	}, nil
}
