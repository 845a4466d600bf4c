// Package gemini implements the behavioral scoring oracle on the Gemini
// generateContent API. The client only ever ships structured JSON datasets,
// never raw document text.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/asingla/credscope/internal/core/domain"
)

type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New builds a client. requestsPerMinute bounds outbound calls to stay
// inside the API quota; zero disables the limiter.
func New(baseURL, model, apiKey string, requestsPerMinute int) *Client {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
	}
}

func (c *Client) ScoreVerified(ctx context.Context, ds *domain.VerifiedDataset) (*domain.BehaviorScore, error) {
	prompt, err := buildVerifiedPrompt(ds)
	if err != nil {
		return nil, err
	}
	return c.score(ctx, prompt)
}

func (c *Client) ScoreSelfReported(ctx context.Context, answers domain.SurveyAnswers) (*domain.BehaviorScore, error) {
	prompt, err := buildSelfReportedPrompt(answers)
	if err != nil {
		return nil, err
	}
	return c.score(ctx, prompt)
}

func (c *Client) score(ctx context.Context, prompt string) (*domain.BehaviorScore, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	raw, err := c.generateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}
	score, err := parseBehaviorScore(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scoring response: %w", err)
	}
	return score, nil
}
