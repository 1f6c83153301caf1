package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
	"github.com/qaforge-labs/qaforge-cli/internal/core/ports/driven"
	"github.com/qaforge-labs/qaforge-cli/internal/logger"
)

// minUsableChars is the response length below which an attempt counts
// as failed. Shorter bodies cannot hold even one marker pair and are
// retried like transport errors.
const minUsableChars = 20

// Generator wraps the LLM backend with the per-chunk retry policy.
// Backends are single-attempt; the attempt budget, the fixed pause
// between attempts and the optional request throttle all live here.
type Generator struct {
	llm        driven.LLMService
	maxRetries int
	retryDelay time.Duration
	opts       driven.GenerateOptions
	limiter    *rate.Limiter
}

// NewGenerator creates a generator applying the configured retry and
// sampling behaviour to every call.
func NewGenerator(llm driven.LLMService, cfg domain.LLMSettings) *Generator {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1)
	}

	return &Generator{
		llm:        llm,
		maxRetries: maxRetries,
		retryDelay: cfg.RetryDelay(),
		opts: driven.GenerateOptions{
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
		},
		limiter: limiter,
	}
}

// Generate produces raw text for a prompt, retrying failed attempts up
// to the configured budget with a fixed pause in between. An attempt
// fails on a transport error or a response too short to be usable.
// Returns domain.ErrNoUsableOutput once the budget is exhausted.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(g.retryDelay):
			}
		}

		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		result, err := g.llm.Generate(ctx, prompt, g.opts)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			logger.Warn("Generation attempt %d/%d failed: %v", attempt, g.maxRetries, err)
			continue
		}

		result = strings.TrimSpace(result)
		if len(result) < minUsableChars {
			lastErr = fmt.Errorf("response too short (%d chars)", len(result))
			logger.Warn("Generation attempt %d/%d returned nothing usable", attempt, g.maxRetries)
			continue
		}

		return result, nil
	}

	return "", fmt.Errorf("%w after %d attempts: %w", domain.ErrNoUsableOutput, g.maxRetries, lastErr)
}

// ModelName returns the backend's configured model identifier.
func (g *Generator) ModelName() string {
	return g.llm.ModelName()
}

// Ping checks the backend is reachable.
func (g *Generator) Ping(ctx context.Context) error {
	return g.llm.Ping(ctx)
}
