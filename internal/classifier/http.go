package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/Napageneral/cae/internal/model"
	"github.com/Napageneral/cae/internal/ratelimit"
)

const (
	maxRetries          = 5
	initialBackoff      = 500 * time.Millisecond
	maxBackoff          = 5 * time.Second
	defaultHTTPTimeout  = 10 * time.Second
	maxIdleConns        = 100
	maxConnsPerHost     = 100
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
)

// HTTPClassifier is a reference Classifier backed by a JSON HTTP
// endpoint. It is the one concrete implementation this module ships;
// hosts are free to supply any other Classifier instead.
type HTTPClassifier struct {
	HTTPClient *http.Client
	Endpoint   string
	APIKey     string
	limiter    *ratelimit.LeakyBucket
}

// NewHTTPClassifier creates a classifier client with pooled HTTP/2
// transport and bounded retries. rpm <= 0 disables rate limiting.
func NewHTTPClassifier(endpoint, apiKey string, rpm int) *HTTPClassifier {
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxConnsPerHost,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}
	c := &HTTPClassifier{
		HTTPClient: &http.Client{Transport: transport, Timeout: defaultHTTPTimeout},
		Endpoint:   endpoint,
		APIKey:     apiKey,
	}
	if rpm > 0 {
		c.limiter = ratelimit.NewLeakyBucketFromRPM(rpm)
	}
	return c
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	Emotions   map[string]float64 `json:"emotions,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Classify sends text to the configured endpoint, retrying transient
// failures with exponential backoff and jitter, and honors ctx
// cancellation throughout (including while rate-limit waiting).
func (c *HTTPClassifier) Classify(ctx context.Context, text string) (Result, error) {
	if c == nil || c.Endpoint == "" {
		return Result{}, ErrUnavailable
	}

	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("classifier: marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return Result{}, err
			}
		}
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Result{}, ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
		if err != nil {
			return Result{}, fmt.Errorf("classifier: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.APIKey)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("classifier: request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("classifier: read response: %w", err)
			continue
		}

		if isRetryableStatus(resp.StatusCode) {
			lastErr = fmt.Errorf("classifier: retryable status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return Result{}, fmt.Errorf("classifier: status %d: %s", resp.StatusCode, string(respBody))
		}

		var parsed classifyResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return Result{}, fmt.Errorf("classifier: unmarshal response: %w", err)
		}
		if parsed.Error != "" {
			return Result{}, fmt.Errorf("classifier: %s", parsed.Error)
		}

		return Result{
			Label:      model.SentimentLabel(parsed.Label),
			Confidence: parsed.Confidence,
			Emotions:   parsed.Emotions,
		}, nil
	}

	return Result{}, fmt.Errorf("classifier: max retries exceeded: %w", lastErr)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func backoff(attempt int) time.Duration {
	d := float64(initialBackoff) * math.Pow(2, float64(attempt-1))
	if d > float64(maxBackoff) {
		d = float64(maxBackoff)
	}
	jitter := d * 0.25 * (rand.Float64()*2 - 1)
	return time.Duration(d + jitter)
}
