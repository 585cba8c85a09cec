package aiscore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/farmtofork-backend/pkg/config"
	"github.com/angelmondragon/farmtofork-backend/pkg/logger"
	"github.com/angelmondragon/farmtofork-backend/pkg/metrics"
)

const (
	defaultServiceURL           = "http://localhost:5001/score"
	defaultConnectTimeout       = 5 * time.Second
	defaultReadTimeout          = 15 * time.Second
	errorBodyReadLimit    int64 = 1024
)

// Result is the scorer's response. Every field is optional.
type Result struct {
	AIScore          *float64 `json:"ai_score"`
	PredictedClass   *string  `json:"predicted_class"`
	QualityLabel     *string  `json:"quality_label"`
	Confidence       *float64 `json:"confidence"`
	FreshPercentage  *float64 `json:"fresh_percentage"`
	RottenPercentage *float64 `json:"rotten_percentage"`
}

type scoreRequest struct {
	Image string `json:"image"`
}

// Client calls the external image quality scorer. Failures never reach the caller;
// they are logged at warn level and reported as "no score".
type Client struct {
	httpClient *http.Client
	serviceURL string
	enabled    bool
	logg       *logger.Logger
	metrics    *metrics.AIScoreMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches the logger used for degraded-call warnings.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics attaches outcome counters.
func WithMetrics(m *metrics.AIScoreMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a scorer client from configuration.
func NewClient(cfg config.AIScoreConfig, opts ...Option) *Client {
	serviceURL := strings.TrimSpace(cfg.ServiceURL)
	if serviceURL == "" {
		serviceURL = defaultServiceURL
	}

	client := &Client{
		serviceURL: serviceURL,
		enabled:    cfg.Enabled,
		httpClient: newHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// newHTTPClient bounds the dial with connectTimeout and the wait for response headers
// with readTimeout; the overall deadline covers both plus body transfer.
func newHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   connectTimeout + readTimeout,
	}
}

// Enabled reports whether scoring calls are attempted at all.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// ScoreImage sends the image payload (data URL or base64) to the scorer. The boolean is
// false when scoring is disabled, the image is empty, or the call failed for any reason.
func (c *Client) ScoreImage(ctx context.Context, image string) (*Result, bool) {
	if !c.Enabled() {
		c.metrics.IncOutcome(metrics.AIScoreOutcomeDisabled)
		return nil, false
	}
	if strings.TrimSpace(image) == "" {
		c.metrics.IncOutcome(metrics.AIScoreOutcomeSkipped)
		return nil, false
	}

	start := time.Now()
	result, err := c.post(ctx, image)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		c.metrics.IncOutcome(metrics.AIScoreOutcomeFailed)
		if c.logg != nil {
			logCtx := c.logg.WithFields(ctx, map[string]any{
				"service_url": c.serviceURL,
				"elapsed_ms":  time.Since(start).Milliseconds(),
			})
			c.logg.WarnErr(logCtx, "aiscore.request_failed", err)
		}
		return nil, false
	}

	c.metrics.IncOutcome(metrics.AIScoreOutcomeScored)
	return result, true
}

func (c *Client) post(ctx context.Context, image string) (*Result, error) {
	payload, err := json.Marshal(scoreRequest{Image: image})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call scorer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, fmt.Errorf("scorer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result *Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("scorer returned an empty body")
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result == nil {
		return nil, errors.New("scorer returned a null body")
	}
	return result, nil
}
