// Package fixtures talks to the external fixtures feed and imports upcoming
// matches into the store.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Sentinel errors for feed client failures.
var (
	ErrFeedUnreachable = errors.New("fixtures feed unreachable")
	ErrFeedError       = errors.New("fixtures feed error")
	ErrFeedTimeout     = errors.New("fixtures feed timeout")
)

// Fixture is one upcoming match as the feed reports it.
type Fixture struct {
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	League    string    `json:"league"`
	KickoffAt time.Time `json:"kickoff_at"`
}

// Client is the interface for querying the fixtures feed.
type Client interface {
	Upcoming(ctx context.Context, days int) ([]Fixture, error)
}

// HTTPClient implements Client against the feed's HTTP API.
type HTTPClient struct {
	baseURL  string
	apiToken string
	client   *http.Client
}

// NewHTTPClient creates a new feed HTTP client.
func NewHTTPClient(baseURL, apiToken string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		apiToken: apiToken,
		client:   &http.Client{Timeout: timeout},
	}
}

// Upcoming fetches fixtures kicking off within the next days days.
func (c *HTTPClient) Upcoming(ctx context.Context, days int) ([]Fixture, error) {
	params := url.Values{}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}

	u := fmt.Sprintf("%s/v1/fixtures/upcoming?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.apiToken != "" {
		httpReq.Header.Set("X-Auth-Token", c.apiToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFeedError, resp.StatusCode)
	}

	var feedResp feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feedResp); err != nil {
		return nil, fmt.Errorf("decoding feed response: %w", err)
	}

	if feedResp.Fixtures == nil {
		return []Fixture{}, nil
	}
	return feedResp.Fixtures, nil
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrFeedTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrFeedTimeout, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrFeedUnreachable, err)
}

type feedResponse struct {
	Fixtures []Fixture `json:"fixtures"`
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
