// Package climate implements domain.IndicatorSource against an external
// climate-hazard REST API.
package climate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/observability"
)

// Client fetches hazard indices for coordinates from the configured provider.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a climate provider client. The timeout bounds the single
// outbound attempt; there is no retry here.
func NewClient(baseURL, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchIndicators requests the hazard indices at (lat, lon) and normalizes
// them. Network and HTTP-level failures surface as provider_unavailable;
// out-of-range indices as data_validation.
func (c *Client) FetchIndicators(ctx context.Context, lat, lon float64) (domain.Indicators, error) {
	params := url.Values{
		"lat": {fmt.Sprintf("%.6f", lat)},
		"lon": {fmt.Sprintf("%.6f", lon)},
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	fullURL := c.baseURL + "/v1/hazards?" + params.Encode()

	start := time.Now()
	indices, err := c.doRequest(ctx, fullURL)
	c.metrics.ProviderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues("error").Inc()
		return domain.Indicators{}, err
	}

	ind, err := domain.IndicatorsFromIndices(indices)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues("invalid_data").Inc()
		c.logger.Warn("provider returned invalid hazard data", "lat", lat, "lon", lon, "error", err)
		return domain.Indicators{}, err
	}

	c.metrics.ProviderRequests.WithLabelValues("success").Inc()
	return ind, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, domain.WrapError(domain.KindProviderUnavailable, err, "create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.KindProviderUnavailable, err, "hazard request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.Errorf(domain.KindProviderUnavailable,
			"provider API error: status %d: %s", resp.StatusCode, body)
	}

	var hazardResp response
	if err := json.NewDecoder(resp.Body).Decode(&hazardResp); err != nil {
		return nil, domain.WrapError(domain.KindProviderUnavailable, err, "decode response")
	}
	return hazardResp.Indices, nil
}

// Provider API response types.

type response struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
	Indices map[string]float64 `json:"indices"` // hazard name → 0–100 index
}
