// Package geofusion is a client for the GeoFusion geolocation and
// demographics API (geocoder, income, intra-urban segmentation, places
// enricher and x-ray endpoint families).
package geofusion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/escale/cep-enricher/internal/resilience"
)

const defaultBaseURL = "https://api.geofusion.com.br"

// Client calls the GeoFusion API endpoint families used for CEP enrichment.
type Client interface {
	// Position resolves a CEP to a coordinate.
	Position(ctx context.Context, cep string) (*Position, error)

	// ConsumerIncome returns the likely household income at a coordinate.
	ConsumerIncome(ctx context.Context, lat, lng float64) (float64, error)

	// SegmentationProbs returns intra-urban cluster membership probabilities.
	SegmentationProbs(ctx context.Context, lat, lng float64) (map[string]float64, error)

	// SegmentationMax returns the most likely intra-urban cluster, which may
	// be empty when the API reports none.
	SegmentationMax(ctx context.Context, lat, lng float64) (string, error)

	// PlacesSummary returns point-of-interest category counts around a
	// coordinate.
	PlacesSummary(ctx context.Context, lat, lng float64, params PlacesParams) (*PlacesSummary, error)

	// ConsumptionPotential returns per-category consumption potential
	// breakdowns within the given radius.
	ConsumptionPotential(ctx context.Context, lat, lng, radius float64, categories []string) (map[string]any, error)

	// Sociodemography returns the demographic breakdown within the given
	// radius.
	Sociodemography(ctx context.Context, lat, lng, radius float64) (map[string]any, error)
}

// Position is the geocoder response for a CEP.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Error carries the API-reported geocoding failure (e.g. an
	// unresolvable CEP). Empty on success.
	Error string `json:"error"`
}

// PlacesParams controls the geometry used by the places enricher.
type PlacesParams struct {
	DispatchType string  // TIME, DISTANCE or RADIUS
	Locomotion   string  // WALK or CAR
	Direction    string  // IN or OUT; ignored when Locomotion is WALK
	Value        float64 // minutes, meters or radius depending on DispatchType
}

// PlacesSummary is the places enricher response.
type PlacesSummary struct {
	Total   float64        `json:"total"`
	Summary map[string]any `json:"summary"`
}

// APIError reports a non-2xx response from GeoFusion. The body is retained
// so callers can attach it to diagnostics.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("geofusion: status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit for API calls. Rates
// below 1 still get a burst of 1 so requests trickle through instead of
// blocking forever; non-positive rates keep the default limiter.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps <= 0 {
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRetryConfig overrides the retry policy for connection failures.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) {
		c.retry = cfg
	}
}

type httpClient struct {
	token   string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewClient creates a GeoFusion client. The token is normalized into a bearer
// header; a bare API token and a pre-formatted "Bearer ..." value are both
// accepted.
func NewClient(token string, opts ...Option) Client {
	if !strings.Contains(token, "Bearer") {
		token = "Bearer " + token
	}
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(20, 20),
		retry:   resilience.DefaultRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// getJSON issues one authenticated GET, retrying connection-level failures up
// to the configured bound. Non-2xx responses come back as *APIError without
// retry. Latency is logged after every successful call.
func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geofusion: rate limit")
	}

	reqURL := c.endpointURL(path, query)

	retry := c.retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger("geofusion", path)
	}

	return resilience.DoVal(ctx, retry, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "geofusion: build request")
		}
		req.Header.Set("Authorization", c.token)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "geofusion: get %s", reqURL)
		}
		defer resp.Body.Close() //nolint:errcheck

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "geofusion: read body")
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode, URL: reqURL, Body: string(body)}
		}

		zap.L().Debug("geofusion request complete",
			zap.String("url", reqURL),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return body, nil
	})
}

// endpointURL renders the full request URL for a path and query, also used
// to attach the failing URL to diagnostics.
func (c *httpClient) endpointURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func coordQuery(lat, lng float64) url.Values {
	return url.Values{
		"latitude":  {formatFloat(lat)},
		"longitude": {formatFloat(lng)},
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
