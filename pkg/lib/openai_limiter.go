package lib

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultLimiterTimeout = 60 * time.Second
	limiterMaxRetries     = 5
)

// OpenAILimiter retries rate limited requests against OpenAI-compatible APIs
// (OpenAI and Azure OpenAI). It implements an openaiclient.Doer.
type OpenAILimiter struct {
	client  *http.Client
	logger  *zerolog.Logger
	tracker *UsageTracker
}

func NewOpenAILimiter(logger *zerolog.Logger) *OpenAILimiter {
	return NewOpenAILimiterWithTracker(logger, nil, DefaultLimiterTimeout)
}

// NewOpenAILimiterWithTracker returns a limiter that reports the usage of every
// successful response to tracker. A nil tracker disables usage tracking.
func NewOpenAILimiterWithTracker(logger *zerolog.Logger, tracker *UsageTracker, timeout time.Duration) *OpenAILimiter {
	if timeout <= 0 {
		timeout = DefaultLimiterTimeout
	}
	return &OpenAILimiter{
		client: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		tracker: tracker,
	}
}

func (r *OpenAILimiter) Do(req *http.Request) (*http.Response, error) {
	body, err := readRequestBody(req)
	if err != nil {
		return nil, err
	}

	for attempt := range limiterMaxRetries {
		if attempt > 0 {
			req = cloneRequest(req, body)
		}

		resp, err := r.client.Do(req)

		errBody := ""
		errStatusCode := 0
		if resp != nil && resp.StatusCode != http.StatusOK {
			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("read response body: %w", err)
			}
			errBody = string(b)
			errStatusCode = resp.StatusCode
			resp.Body = io.NopCloser(bytes.NewReader(b))
		}

		if err != nil {
			r.logger.Error().
				Err(err).
				Int("status_code", errStatusCode).
				Str("body", errBody).
				Msg("LLM API returned error")
			return nil, err
		}

		rateLimitHeaders := parseRateLimitHeaders(resp)
		attemptEvent := r.attemptEvent(rateLimitHeaders, errBody, resp.StatusCode, attempt)

		// See: https://platform.openai.com/docs/guides/error-codes#api-errors
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			resp.Body.Close()

			delay := backoffWithJitter(rateLimitHeaders)
			attemptEvent.
				Dur("delay", delay).
				Msg("LLM API rate limited or overloaded, retrying with backoff")

			if err := sleepContext(req, delay); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			// API sometimes returns 400 response, log the body for debugging.
			attemptEvent.
				Msg("LLM API returned non-ok response")

			return resp, nil
		}

		attemptEvent.
			Msg("LLM API request successful")

		if r.tracker != nil {
			if _, err := r.tracker.TrackUsage(resp); err != nil {
				r.logger.Debug().Err(err).Msg("track usage")
			}
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded for rate limited request")
}

func sleepContext(req *http.Request, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-req.Context().Done():
		return req.Context().Err()
	case <-timer.C:
		return nil
	}
}

func backoffWithJitter(headers *rateLimitHeaders) time.Duration {
	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	if headers.RemainingRequests >= 0 && headers.RemainingRequests <= 1 && headers.ResetRequests > 0 {
		return headers.ResetRequests + jitter
	}
	if headers.RemainingTokens >= 0 && headers.RemainingTokens <= 1 && headers.ResetTokens > 0 {
		return headers.ResetTokens + jitter
	}

	return jitter
}

// readRequestBody drains the request body once so every retry can replay it.
func readRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(b))

	return b, nil
}

func cloneRequest(req *http.Request, body []byte) *http.Request {
	clonedReq := req.Clone(req.Context())
	if body != nil {
		clonedReq.Body = io.NopCloser(bytes.NewReader(body))
	}
	return clonedReq
}

type rateLimitHeaders struct {
	RemainingRequests int
	// The time until the request rate limit resets to its initial state.
	ResetRequests   time.Duration
	RemainingTokens int
	// The time until the token rate limit resets to its initial state.
	ResetTokens time.Duration
}

func parseRateLimitHeaders(resp *http.Response) *rateLimitHeaders {
	// See: https://platform.openai.com/docs/guides/error-codes#api-errors
	return &rateLimitHeaders{
		RemainingRequests: parseInt(resp.Header.Get("x-ratelimit-remaining-requests")),
		ResetRequests:     parseReset(resp.Header.Get("x-ratelimit-reset-requests")),
		RemainingTokens:   parseInt(resp.Header.Get("x-ratelimit-remaining-tokens")),
		ResetTokens:       parseReset(resp.Header.Get("x-ratelimit-reset-tokens")),
	}
}

func (r *OpenAILimiter) attemptEvent(headers *rateLimitHeaders, errBody string, statusCode int, attempt int) *zerolog.Event {
	return r.logger.Debug().
		Int("remaining_requests", headers.RemainingRequests).
		Dur("reset_requests", headers.ResetRequests).
		Int("remaining_tokens", headers.RemainingTokens).
		Dur("reset_tokens", headers.ResetTokens).
		Int("status_code", statusCode).
		Str("body", errBody).
		Int("attempt", attempt)
}

// parseInt converts a numeric header string to int; returns -1 on failure.
func parseInt(s string) int {
	if s == "" {
		return -1
	}

	if i, err := strconv.Atoi(s); err == nil {
		return i
	}

	return -1
}

// parseReset parses the time until the rate limit resets to its initial state.
// See: https://platform.openai.com/docs/guides/rate-limits#rate-limits-in-headers
func parseReset(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(f * float64(time.Second))
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	return 0
}
