package iris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/drakos74/free-iris/internal/metrics"
	"github.com/drakos74/free-iris/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	HealthPath    = "/health"
	PredictPath   = "/predict/iris"
	BenchmarkPath = "/benchmark/results"
)

// Client calls the iris prediction service over http.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new client for the service at the given base url.
// The client applies no timeout of its own unless one is configured.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// Timeout sets a timeout for every request, zero disables it.
func (c *Client) Timeout(timeout time.Duration) *Client {
	c.HTTPClient.Timeout = timeout
	return c
}

// WithHTTPClient replaces the http client, e.g. to share a transport.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.HTTPClient = httpClient
	return c
}

// Health probes the liveness of the service.
// The body of the response is ignored.
func (c *Client) Health(ctx context.Context) model.Health {
	start := time.Now()
	resp, err := c.do(ctx, http.MethodGet, HealthPath, nil)
	if err != nil {
		metrics.Observer.Observe(HealthPath, metrics.Transport, time.Since(start))
		log.Warn().Err(err).Str("url", c.BaseURL).Msg("health check failed")
		return model.Offline
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if !success(resp.StatusCode) {
		metrics.Observer.Observe(HealthPath, metrics.HTTPError, time.Since(start))
		log.Warn().Int("status", resp.StatusCode).Str("url", c.BaseURL).Msg("service unhealthy")
		return model.Unhealthy
	}
	metrics.Observer.Observe(HealthPath, metrics.OK, time.Since(start))
	return model.Healthy
}

// Predict classifies the given measurement.
func (c *Client) Predict(ctx context.Context, m model.Measurement) (*model.Prediction, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("could not encode measurement: %w", err)
	}
	var prediction model.Prediction
	if err := c.call(ctx, http.MethodPost, PredictPath, body, &prediction); err != nil {
		return nil, err
	}
	if err := prediction.Validate(); err != nil {
		metrics.Observer.Observe(PredictPath, metrics.Decode, 0)
		return nil, fmt.Errorf("invalid prediction: %w", err)
	}
	if !prediction.Consistent(1e-3) {
		log.Warn().
			Int("class", prediction.PredictedClass()).
			Int("most-likely", prediction.MostLikely()).
			Msg("probabilities disagree with predicted class")
	}
	return &prediction, nil
}

// Benchmark fetches the latest sequential vs parallel benchmark report.
func (c *Client) Benchmark(ctx context.Context) (*model.BenchmarkReport, error) {
	var report model.BenchmarkReport
	if err := c.call(ctx, http.MethodGet, BenchmarkPath, nil, &report); err != nil {
		return nil, err
	}
	if err := report.Validate(); err != nil {
		metrics.Observer.Observe(BenchmarkPath, metrics.Decode, 0)
		return nil, fmt.Errorf("invalid benchmark report: %w", err)
	}
	return &report, nil
}

func (c *Client) call(ctx context.Context, method, path string, body []byte, v interface{}) error {
	start := time.Now()
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		metrics.Observer.Observe(path, metrics.Transport, time.Since(start))
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Observer.Observe(path, metrics.Transport, time.Since(start))
		return &TransportError{Endpoint: path, Err: err}
	}

	if !success(resp.StatusCode) {
		metrics.Observer.Observe(path, metrics.HTTPError, time.Since(start))
		log.Error().
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("service returned error")
		return &StatusError{Endpoint: path, Code: resp.StatusCode}
	}

	if err := json.Unmarshal(respBody, v); err != nil {
		metrics.Observer.Observe(path, metrics.Decode, time.Since(start))
		return fmt.Errorf("could not decode response of %s: %w", path, err)
	}
	metrics.Observer.Observe(path, metrics.OK, time.Since(start))
	log.Debug().
		Str("path", path).
		Float64("duration", time.Since(start).Seconds()).
		Msg("service call completed")
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	return resp, nil
}

// success accepts any 2xx status.
func success(code int) bool {
	return code >= 200 && code <= 299
}
