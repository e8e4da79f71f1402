package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sessionsURL = "https://api.openai.com/v1/realtime/sessions"

// ErrNotConfigured means the API key is missing; issuing tokens is disabled.
var ErrNotConfigured = errors.New("realtime API key not configured")

// Client issues short-lived client secrets for browser voice sessions.
// The booking core never sees this exchange; the session's tools simply
// call back into the public API.
type Client struct {
	apiKey     string
	model      string
	voice      string
	httpClient *http.Client
}

func NewClient(apiKey, model, voice string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		voice:  voice,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateEphemeralToken creates a realtime session upstream and returns its
// client_secret payload verbatim.
func (c *Client) CreateEphemeralToken(ctx context.Context) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(c.sessionPayload())
	if err != nil {
		return nil, fmt.Errorf("marshal session payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sessionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create realtime session: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read session response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("realtime session upstream returned %d: %s", resp.StatusCode, respBody)
	}

	var session struct {
		ClientSecret json.RawMessage `json:"client_secret"`
	}
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	return session.ClientSecret, nil
}

func (c *Client) sessionPayload() map[string]any {
	return map[string]any{
		"model":      c.model,
		"voice":      c.voice,
		"modalities": []string{"text", "audio"},
		"instructions": "You are a medical appointment agent. Call " +
			"`list_hospitals`, `create_visit` and `diagnose` as needed to " +
			"suggest candidates, confirm a reservation and judge urgency.",
		"tools": []map[string]any{
			{
				"type":        "function",
				"name":        "list_hospitals",
				"description": "Fetch nearby hospital candidates and their open slots",
				"parameters": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"lat":         map[string]any{"type": "number"},
						"lon":         map[string]any{"type": "number"},
						"distance_km": map[string]any{"type": "number", "default": 5},
					},
					"required": []string{"lat", "lon"},
				},
			},
			{
				"type":        "function",
				"name":        "create_visit",
				"description": "Create a reservation for a hospital and time",
				"parameters": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"hospital_id": map[string]any{"type": "string"},
						"slot":        map[string]any{"type": "string", "description": "ISO8601 timestamp"},
						"name":        map[string]any{"type": "string"},
					},
					"required": []string{"hospital_id", "slot"},
				},
			},
			{
				"type":        "function",
				"name":        "diagnose",
				"description": "Estimate urgency from free-text symptoms",
				"parameters": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"symptoms": map[string]any{"type": "string"},
					},
					"required": []string{"symptoms"},
				},
			},
		},
	}
}
