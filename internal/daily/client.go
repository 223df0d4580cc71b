package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the score API. All methods are safe to call with an
// unreachable server; callers decide whether to fall back or queue.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client. The timeout is deliberately short: the
// game never waits on the network.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

// FetchParams asks the server for today's challenge, falling back to the
// local generator when the server is unreachable or answers garbage.
// The fallback is silent: both sides derive the same values from the date.
func (c *Client) FetchParams(ctx context.Context, now time.Time) Params {
	local := FromDate(now)
	if c == nil || c.baseURL == "" {
		return local
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/daily", nil)
	if err != nil {
		return local
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return local
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return local
	}

	var p Params
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil || p.Seed == 0 {
		return local
	}
	return p
}

// Register asks the server for a player ID.
func (c *Client) Register(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/register", nil)
	if err != nil {
		return "", fmt.Errorf("daily: cannot build register request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("daily: register failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("daily: register returned status %d", resp.StatusCode)
	}

	var body struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("daily: cannot decode register response: %w", err)
	}
	if body.PlayerID == "" {
		return "", fmt.Errorf("daily: register returned an empty player ID")
	}
	return body.PlayerID, nil
}

// PostScore submits one score. The caller handles queueing on failure.
func (c *Client) PostScore(ctx context.Context, playerID string, score int, modeName string) error {
	payload, err := json.Marshal(map[string]any{
		"playerId": playerID,
		"score":    score,
		"modeName": modeName,
	})
	if err != nil {
		return fmt.Errorf("daily: cannot encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/score", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("daily: cannot build score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daily: score submission failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daily: score submission returned status %d", resp.StatusCode)
	}
	return nil
}
