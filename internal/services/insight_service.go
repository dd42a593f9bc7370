package services

import (
	"bizdash-backend/internal/llm"
	"bizdash-backend/internal/projection"
	"bizdash-backend/internal/retry"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// InsightFallbackMessage is shown instead of an insight whenever generation fails.
const InsightFallbackMessage = "We couldn't generate AI insights for this scenario right now. Please try again in a moment."

// InsightState is the lifecycle of an insight request.
type InsightState string

const (
	InsightIdle       InsightState = "idle"
	InsightRequesting InsightState = "requesting"
	InsightSucceeded  InsightState = "succeeded"
	InsightFailed     InsightState = "failed"
)

// InsightResult is the terminal state of one Generate call. Text holds
// either the generated narrative or InsightFallbackMessage.
type InsightResult struct {
	State    InsightState
	Text     string
	Attempts int
}

// InsightServiceConfig bounds the retries against the text provider.
type InsightServiceConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// InsightService turns a projection summary into a short narrative with
// recommendations.
type InsightService struct {
	generator llm.TextGenerator
	policy    retry.Policy
	logger    *slog.Logger
}

// NewInsightService creates an InsightService. Rate-limited attempts are
// retried with linear backoff; every other failure ends the call at once.
func NewInsightService(generator llm.TextGenerator, cfg InsightServiceConfig, logger *slog.Logger) *InsightService {
	logger = logger.With("component", "insight_service")
	return &InsightService{
		generator: generator,
		logger:    logger,
		policy: retry.Policy{
			MaxAttempts: cfg.MaxAttempts,
			Backoff:     retry.Linear(cfg.BaseDelay),
			Classify:    classifyInsightError,
			OnRetry: func(attempt int, delay time.Duration, err error) {
				logger.Warn("insight provider rate limited, retrying",
					"attempt", attempt, "delay", delay, "error", err)
			},
		},
	}
}

func classifyInsightError(err error) retry.Decision {
	if llm.StatusCode(err) == http.StatusTooManyRequests {
		return retry.Retry
	}
	return retry.Abort
}

// Generate never returns a provider error: failures are logged and replaced
// by InsightFallbackMessage. Calls are independent of each other.
func (s *InsightService) Generate(ctx context.Context, summary projection.Summary) InsightResult {
	if s.generator == nil {
		s.logger.Error("insight generation requested without a configured provider")
		return InsightResult{State: InsightFailed, Text: InsightFallbackMessage}
	}

	prompt := BuildInsightPrompt(summary)
	s.logger.Debug("generating insight", "state", InsightRequesting, "provider", s.generator.Name())
	attempts := 0
	var text string
	err := s.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		attempts = attempt
		out, err := s.generator.GenerateText(ctx, prompt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(out) == "" {
			return fmt.Errorf("%w: empty text", llm.ErrMalformedResponse)
		}
		text = out
		return nil
	})
	if err != nil {
		s.logFailure(err, attempts)
		return InsightResult{State: InsightFailed, Text: InsightFallbackMessage, Attempts: attempts}
	}
	return InsightResult{State: InsightSucceeded, Text: strings.TrimSpace(text), Attempts: attempts}
}

func (s *InsightService) logFailure(err error, attempts int) {
	attrs := []any{"provider", s.generator.Name(), "attempts", attempts, "error", err}
	switch code := llm.StatusCode(err); {
	case code == http.StatusForbidden:
		s.logger.Error("insight provider rejected credentials", attrs...)
	case code == http.StatusTooManyRequests:
		s.logger.Error("insight provider still rate limited after retries", attrs...)
	case errors.Is(err, llm.ErrMalformedResponse):
		s.logger.Error("insight provider returned a malformed response", attrs...)
	default:
		s.logger.Error("insight generation failed", attrs...)
	}
}

// BuildInsightPrompt describes the scenario and asks for a short analysis.
func BuildInsightPrompt(summary projection.Summary) string {
	var b strings.Builder
	b.WriteString("You are a financial analyst reviewing a 12-month business projection.\n\n")
	b.WriteString("Scenario: ")
	b.WriteString(summary.Describe())
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Annual revenue growth: %g%%\n", summary.RevenueGrowthPct)
	fmt.Fprintf(&b, "- Annual operational cost increase: %g%%\n", summary.CostIncreasePct)
	if summary.ProfitChange.Defined {
		fmt.Fprintf(&b, "- Projected year-end profit change: %.1f%%\n", summary.ProfitChange.Pct)
	} else {
		b.WriteString("- Projected year-end profit change: undefined (current profit is zero)\n")
	}
	b.WriteString("\nIn two or three sentences explain what this outcome means for the business, ")
	b.WriteString("then give two or three concrete recommendations as a short bulleted list.")
	return b.String()
}
