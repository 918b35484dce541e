// Package client is the HTTP transport for the terminal TUI.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"portfolio-terminal/pkg/terminal"
)

// rateLimitedFallback is shown when a 429 arrives without a displayable body.
const rateLimitedFallback = "Too many requests right now. Give it a moment and try again."

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		// Chat replies wait on an LLM; keep the timeout generous.
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// HealthResponse mirrors GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type commandRequest struct {
	Command string `json:"command"`
}

type chatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
}

func (c *Client) Health() (*HealthResponse, error) {
	resp, err := c.get("/health")
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &health, nil
}

// Command dispatches one command line. Every handled outcome comes back as a
// 200 with a kind-tagged body; any other status is a transport error.
func (c *Client) Command(command string) (*terminal.Response, error) {
	resp, err := c.postJSON("/command", commandRequest{Command: command})
	if err != nil {
		return nil, fmt.Errorf("command: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}
	var result terminal.Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	return &result, nil
}

// Chat sends one chat message. Pass sessionID as "" on the first message of
// a session. A 429 still yields a renderable response: the server-supplied
// message when the body carries one, a canned fallback otherwise.
func (c *Client) Chat(message, sessionID string) (*terminal.Response, error) {
	payload := chatRequest{Message: message}
	if sessionID != "" {
		payload.SessionID = &sessionID
	}
	resp, err := c.postJSON("/chat", payload)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var result terminal.Response
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode chat: %w", err)
		}
		return &result, nil
	case http.StatusTooManyRequests:
		var result terminal.Response
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Output == "" {
			return &terminal.Response{Kind: terminal.KindError, Output: rateLimitedFallback}, nil
		}
		if result.Kind == "" {
			result.Kind = terminal.KindError
		}
		return &result, nil
	default:
		return nil, c.parseError(resp)
	}
}

// AbsoluteURL resolves a server-relative path (like a download URL) against
// the base URL. Already-absolute URLs pass through unchanged.
func (c *Client) AbsoluteURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

func (c *Client) get(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.HTTPClient.Do(req)
}

func (c *Client) postJSON(path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.HTTPClient.Do(req)
}

func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("server returned %d", resp.StatusCode)
}
