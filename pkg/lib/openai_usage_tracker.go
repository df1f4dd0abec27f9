package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// UsageMetrics represents the token usage and cost of one API response.
type UsageMetrics struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	// ReasoningTokens are part of completion tokens
	ReasoningTokens int       `json:"reasoningTokens"`
	TotalTokens     int       `json:"totalTokens"`
	PromptCost      float64   `json:"promptCost"`
	CompletionCost  float64   `json:"completionCost"`
	TotalCost       float64   `json:"totalCost"`
	Model           string    `json:"model"`
	Timestamp       time.Time `json:"timestamp"`
}

// UsageTracker accumulates usage reported by OpenAI-compatible APIs.
type UsageTracker struct {
	logger  *zerolog.Logger
	metrics []UsageMetrics
	mu      sync.RWMutex
	pricing map[string]ModelPricing
}

// ModelPricing defines the cost per token for different models
type ModelPricing struct {
	InputCostPer1MTokens  float64
	OutputCostPer1MTokens float64
}

func NewUsageTracker(logger *zerolog.Logger) *UsageTracker {
	return &UsageTracker{
		logger:  logger,
		metrics: make([]UsageMetrics, 0),
		pricing: getDefaultPricing(),
	}
}

// response docs: https://platform.openai.com/docs/api-reference/chat/object#chat/object-usage
type response struct {
	Usage struct {
		PromptTokens            int `json:"prompt_tokens"`
		CompletionTokens        int `json:"completion_tokens"`
		TotalTokens             int `json:"total_tokens"`
		CompletionTokensDetails struct {
			ReasoningTokens int `json:"reasoning_tokens"`
		} `json:"completion_tokens_details"`
	} `json:"usage"`
	Model string `json:"model"`
}

// TrackUsage extracts usage from resp. The body is restored afterwards so the
// caller can still read it. Models without known pricing are recorded at zero cost.
func (ut *UsageTracker) TrackUsage(resp *http.Response) (*UsageMetrics, error) {
	if resp == nil || resp.Body == nil {
		return nil, fmt.Errorf("response or response body is nil")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	var apiResponse response
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, fmt.Errorf("parse usage: %w", err)
	}

	pricing, exists := ut.lookupPricing(apiResponse.Model)
	if !exists {
		ut.logger.Debug().
			Str("model", apiResponse.Model).
			Msg("Unknown model pricing, recording usage without cost")
	}

	metrics := ut.calculateCosts(apiResponse, pricing)

	ut.mu.Lock()
	ut.metrics = append(ut.metrics, metrics)
	ut.mu.Unlock()

	ut.logUsage(metrics)

	return &metrics, nil
}

// lookupPricing matches dated model snapshots (gpt-4o-mini-2024-07-18) to their base entry.
func (ut *UsageTracker) lookupPricing(model string) (ModelPricing, bool) {
	if p, ok := ut.pricing[model]; ok {
		return p, true
	}

	best := ""
	for name := range ut.pricing {
		if strings.HasPrefix(model, name+"-") && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return ModelPricing{}, false
	}

	return ut.pricing[best], true
}

// TotalUsage returns aggregated usage statistics
func (ut *UsageTracker) TotalUsage() UsageMetrics {
	ut.mu.RLock()
	defer ut.mu.RUnlock()

	var total UsageMetrics
	for _, metric := range ut.metrics {
		total = addUsage(total, metric)
	}

	return total
}

// UsageByModel returns usage statistics grouped by model
func (ut *UsageTracker) UsageByModel() map[string]UsageMetrics {
	ut.mu.RLock()
	defer ut.mu.RUnlock()

	modelUsage := make(map[string]UsageMetrics)
	for _, metric := range ut.metrics {
		existing, exists := modelUsage[metric.Model]
		if !exists {
			modelUsage[metric.Model] = metric
			continue
		}
		modelUsage[metric.Model] = addUsage(existing, metric)
	}

	return modelUsage
}

// ClearUsage clears all stored usage metrics
func (ut *UsageTracker) ClearUsage() {
	ut.mu.Lock()
	defer ut.mu.Unlock()
	ut.metrics = make([]UsageMetrics, 0)
}

func addUsage(a, b UsageMetrics) UsageMetrics {
	a.PromptTokens += b.PromptTokens
	a.CompletionTokens += b.CompletionTokens
	a.ReasoningTokens += b.ReasoningTokens
	a.TotalTokens += b.TotalTokens
	a.PromptCost += b.PromptCost
	a.CompletionCost += b.CompletionCost
	a.TotalCost += b.TotalCost
	return a
}

func (ut *UsageTracker) calculateCosts(res response, pricing ModelPricing) UsageMetrics {
	promptCost := float64(res.Usage.PromptTokens) * pricing.InputCostPer1MTokens / 1000000
	// Reasoning tokens are already counted in completion tokens.
	completionCost := float64(res.Usage.CompletionTokens) * pricing.OutputCostPer1MTokens / 1000000

	return UsageMetrics{
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
		ReasoningTokens:  res.Usage.CompletionTokensDetails.ReasoningTokens,
		TotalTokens:      res.Usage.TotalTokens,
		PromptCost:       promptCost,
		CompletionCost:   completionCost,
		TotalCost:        promptCost + completionCost,
		Model:            res.Model,
		Timestamp:        time.Now(),
	}
}

func (ut *UsageTracker) logUsage(metrics UsageMetrics) {
	ut.logger.Debug().
		Str("model", metrics.Model).
		Int("prompt_tokens", metrics.PromptTokens).
		Int("reasoning_tokens", metrics.ReasoningTokens).
		Int("completion_tokens", metrics.CompletionTokens).
		Int("total_tokens", metrics.TotalTokens).
		Float64("prompt_cost", metrics.PromptCost).
		Float64("completion_cost", metrics.CompletionCost).
		Float64("total_cost", metrics.TotalCost).
		Msg("LLM API usage tracked")
}

func getDefaultPricing() map[string]ModelPricing {
	// Docs: https://openai.com/api/pricing
	return map[string]ModelPricing{
		"gpt-4o": {
			InputCostPer1MTokens:  2.5,
			OutputCostPer1MTokens: 10,
		},
		"gpt-4o-mini": {
			InputCostPer1MTokens:  0.15,
			OutputCostPer1MTokens: 0.6,
		},
		"gpt-4.1-mini": {
			InputCostPer1MTokens:  0.4,
			OutputCostPer1MTokens: 1.6,
		},
		"gpt-5-nano": {
			InputCostPer1MTokens:  0.05,
			OutputCostPer1MTokens: 0.4,
		},
		"text-embedding-3-small": {
			InputCostPer1MTokens:  0.02,
			OutputCostPer1MTokens: 0.0, // No output tokens for embeddings
		},
		"text-embedding-3-large": {
			InputCostPer1MTokens:  0.13,
			OutputCostPer1MTokens: 0.0,
		},
		"text-embedding-ada-002": {
			InputCostPer1MTokens:  0.1,
			OutputCostPer1MTokens: 0.0,
		},
	}
}
