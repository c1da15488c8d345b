package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) Franchises(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/franchises", "", nil, &out)
	return out, err
}

func (c *Client) CreateSession(ctx context.Context, teamID, difficulty string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions", "", map[string]any{
		"team_id":    teamID,
		"difficulty": difficulty,
	}, &out)
	return out, err
}

func (c *Client) Session(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/session", token, nil, &out)
	return out, err
}

func (c *Client) EvaluateTrade(ctx context.Context, token string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/trades/evaluate", token, body, &out)
	return out, err
}

func (c *Client) ProposeTrade(ctx context.Context, token string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/trades", token, body, &out)
	return out, err
}

func (c *Client) FreeAgents(ctx context.Context, token string) ([]map[string]any, error) {
	var out []map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/freeagents", token, nil, &out)
	return out, err
}

func (c *Client) OfferFreeAgent(ctx context.Context, token, playerID string, salary float64, years int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/freeagents/"+url.PathEscape(playerID)+"/offer", token, map[string]any{
		"salary": salary,
		"years":  years,
	}, &out)
	return out, err
}

func (c *Client) Prospects(ctx context.Context, token string) ([]map[string]any, error) {
	var out []map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/draft/prospects", token, nil, &out)
	return out, err
}

func (c *Client) DraftPick(ctx context.Context, token, prospectID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/draft/pick", token, map[string]any{
		"prospect_id": prospectID,
	}, &out)
	return out, err
}

func (c *Client) AdvanceDraft(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/draft/advance", token, map[string]any{}, &out)
	return out, err
}

func (c *Client) SimulateSeason(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/season/simulate", token, map[string]any{}, &out)
	return out, err
}

func (c *Client) StartSeason(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/season/start", token, map[string]any{}, &out)
	return out, err
}

func (c *Client) SetStrategy(ctx context.Context, token, strategy string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/strategy", token, map[string]any{
		"strategy": strategy,
	}, &out)
	return out, err
}

func (c *Client) Finances(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/finances", token, nil, &out)
	return out, err
}

func (c *Client) RationalCheck(ctx context.Context, token string, cost float64) (map[string]any, error) {
	var out map[string]any
	path := fmt.Sprintf("/v1/finances/rational?cost=%.2f", cost)
	err := c.jsonRequest(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}

func (c *Client) Evaluation(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/evaluation", token, nil, &out)
	return out, err
}

func (c *Client) Leaderboard(ctx context.Context, limit int) ([]map[string]any, error) {
	var out []map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/leaderboard?limit=%d", limit), "", nil, &out)
	return out, err
}

// Do replays an arbitrary queued command.
func (c *Client) Do(ctx context.Context, method, path, token string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	var in any
	if body != nil {
		in = body
	}
	err := c.jsonRequest(ctx, method, path, token, in, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, token string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
