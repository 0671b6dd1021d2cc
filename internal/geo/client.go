package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultTimeout bounds each distance service call so a slow collaborator
// cannot stall a match computation.
const DefaultTimeout = 300 * time.Millisecond

// Error represents a distance service failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("geo error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("geo error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client calls an external distance/routing HTTP service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// ClientConfig holds configuration for the distance client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a distance client. A zero timeout uses DefaultTimeout.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// distanceResponse is the service's wire shape.
type distanceResponse struct {
	DistanceKm        float64 `json:"distance_km"`
	TravelTimeMinutes float64 `json:"travel_time_minutes"`
}

// Distance queries the routing service. The call is bounded by the client
// timeout on top of any caller deadline.
func (c *Client) Distance(ctx context.Context, a, b Point, mode Mode) (Result, error) {
	if c.baseURL == "" {
		return Result{}, &Error{Message: "distance service not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("origin", formatPoint(a))
	query.Set("destination", formatPoint(b))
	query.Set("mode", string(mode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/distance?"+query.Encode(), nil)
	if err != nil {
		return Result{}, &Error{Message: "failed to build request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &Error{Message: "distance request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, &Error{Message: fmt.Sprintf("distance service returned status %d", resp.StatusCode)}
	}

	var body distanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, &Error{Message: "failed to decode distance response", Cause: err}
	}
	return Result{DistanceKm: body.DistanceKm, TravelTimeMinutes: body.TravelTimeMinutes}, nil
}

func formatPoint(p Point) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}
