package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"
)

// Result is the outcome of classifying a piece of text.
type Result struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// sentinel is returned whenever the upstream classifier fails or produces
// garbage. Callers never need to distinguish the two cases.
var sentinel = Result{Label: LabelUnknown, Score: 0}

// Classifier produces a mood for a piece of text. Implementations must never
// fail outward: journal writes cannot depend on classifier uptime.
type Classifier interface {
	Classify(ctx context.Context, text string) Result
}

// Client calls the remote sentiment analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a classifier client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type analyzeRequest struct {
	Content string `json:"content"`
}

type analyzeResponse struct {
	Label any `json:"label"`
	Score any `json:"score"`
}

// Classify sends text to the remote service and returns a normalized result.
// Transport failures, timeouts, non-2xx statuses and malformed bodies all
// degrade to the unknown sentinel; the error is logged, never returned.
func (c *Client) Classify(ctx context.Context, text string) Result {
	payload, err := json.Marshal(analyzeRequest{Content: text})
	if err != nil {
		c.logger.Warn("mood: encode analyze request", slog.Any("error", err))
		return sentinel
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/analyze", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("mood: build analyze request", slog.Any("error", err))
		return sentinel
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("mood: analyze call failed", slog.Any("error", err))
		return sentinel
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("mood: analyze returned non-2xx", slog.Int("status", resp.StatusCode))
		return sentinel
	}

	var body analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("mood: decode analyze response", slog.Any("error", err))
		return sentinel
	}

	label, ok := body.Label.(string)
	if !ok {
		c.logger.Warn("mood: analyze response missing string label")
		return sentinel
	}

	score, ok := coerceScore(body.Score)
	if !ok {
		c.logger.Warn("mood: analyze response score not numeric", slog.Any("score", body.Score))
		return sentinel
	}

	return Result{Label: Normalize(label), Score: clampScore(score)}
}

// coerceScore accepts the two shapes the upstream has been observed to emit:
// a JSON number or a numeric string.
func coerceScore(v any) (float64, bool) {
	switch s := v.(type) {
	case float64:
		if math.IsNaN(s) {
			return 0, false
		}
		return s, true
	case string:
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// clampScore keeps the persisted score inside [0,1].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

var _ Classifier = (*Client)(nil)
