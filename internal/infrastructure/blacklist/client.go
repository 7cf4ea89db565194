// Package blacklist implements identity screening against an external
// karma-style blacklist API.
package blacklist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const cacheTTL = 15 * time.Minute

// LookupCache memoizes blacklist verdicts keyed by identity.
type LookupCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Client queries the karma blacklist API. A nil base URL disables
// lookups entirely and every identity is treated as clean.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      LookupCache
	logger     zerolog.Logger
}

// NewClient creates a new blacklist Client. cache may be nil, in which
// case every lookup goes to the upstream API.
func NewClient(baseURL, token string, timeout time.Duration, cache LookupCache, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
	}
}

type karmaResponse struct {
	Status string `json:"status"`
	Data   struct {
		KarmaIdentity string `json:"karma_identity"`
		ReportedAt    string `json:"reported_at"`
	} `json:"data"`
}

// IsBlacklisted reports whether the identity appears on the blacklist.
// Errors are returned to the caller, which decides whether to fail
// open or closed.
func (c *Client) IsBlacklisted(ctx context.Context, identity string) (bool, error) {
	if c.baseURL == "" {
		return false, nil
	}

	if c.cache != nil {
		if verdict, err := c.cache.Get(ctx, "blacklist:"+identity); err == nil {
			return verdict == "blacklisted", nil
		}
	}

	blacklisted, err := c.lookup(ctx, identity)
	if err != nil {
		return false, err
	}

	if c.cache != nil {
		verdict := "clean"
		if blacklisted {
			verdict = "blacklisted"
		}
		if err := c.cache.Set(ctx, "blacklist:"+identity, verdict, cacheTTL); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache blacklist verdict")
		}
	}

	return blacklisted, nil
}

func (c *Client) lookup(ctx context.Context, identity string) (bool, error) {
	endpoint := fmt.Sprintf("%s/verification/karma/%s", c.baseURL, url.PathEscape(identity))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build blacklist request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("blacklist lookup failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// 200 means the identity has a karma record.
		var body karmaResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false, fmt.Errorf("failed to decode blacklist response: %w", err)
		}
		return body.Data.KarmaIdentity != "", nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("blacklist lookup returned status %d", resp.StatusCode)
	}
}
