package coc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"cwl_stats/internal/app"
	"cwl_stats/internal/config"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// APIError is returned for any non-2xx response from the API
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Reason == "" && e.Message == "" {
		return fmt.Sprintf("API request to %s failed with status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("API request to %s failed with status %d: %s (%s)", e.Endpoint, e.StatusCode, e.Message, e.Reason)
}

type Client struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	limiter      *rate.Limiter
	apiCallCount int64
	apiCallMutex sync.Mutex
}

// NewClient creates a client for the API rooted at baseURL. Requests are
// spaced by pacing.Delay; a zero delay disables pacing.
func NewClient(apiKey, baseURL string, pacing config.PacingConfig) *Client {
	limit := rate.Inf
	if pacing.Delay > 0 {
		limit = rate.Every(pacing.Delay)
	}
	burst := pacing.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: pacing.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// endpointURL joins the base URL with a path whose tag segments are already escaped
func (c *Client) endpointURL(path string) string {
	return c.baseURL + path
}

// makeAPIRequest waits for the rate limiter, then executes an authenticated GET
func (c *Client) makeAPIRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", endpoint).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.IncrementAPICall()
	return resp, nil
}

// handleAPIResponse processes the HTTP response and returns the body bytes
func (c *Client) handleAPIResponse(resp *http.Response, endpoint string) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
		var errBody app.APIErrorBody
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Reason = errBody.Reason
			apiErr.Message = errBody.Message
		}
		return nil, apiErr
	}

	return body, nil
}

// getJSON fetches path and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	endpoint := c.endpointURL(path)

	resp, err := c.makeAPIRequest(ctx, endpoint)
	if err != nil {
		return err
	}

	body, err := c.handleAPIResponse(resp, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// GetLeagueGroup fetches the current CWL league group of a clan
func (c *Client) GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error) {
	path := fmt.Sprintf("clans/%s/currentwar/leaguegroup", url.PathEscape(clanTag))

	log.Debug().Str("clan_tag", clanTag).Msg("Fetching league group")

	var group app.LeagueGroup
	if err := c.getJSON(ctx, path, &group); err != nil {
		return nil, err
	}

	log.Debug().
		Str("season", group.Season).
		Str("state", group.State).
		Int("rounds", len(group.Rounds)).
		Int("clans", len(group.Clans)).
		Msg("Successfully fetched league group")

	return &group, nil
}

// GetLeagueWar fetches a single CWL war by its war tag
func (c *Client) GetLeagueWar(ctx context.Context, warTag string) (*app.War, error) {
	path := fmt.Sprintf("clanwarleagues/wars/%s", url.PathEscape(warTag))

	log.Debug().Str("war_tag", warTag).Msg("Fetching league war")

	var war app.War
	if err := c.getJSON(ctx, path, &war); err != nil {
		return nil, err
	}

	log.Debug().
		Str("war_tag", warTag).
		Str("state", war.State).
		Str("clan", war.Clan.Tag).
		Str("opponent", war.Opponent.Tag).
		Msg("Successfully fetched league war")

	return &war, nil
}
