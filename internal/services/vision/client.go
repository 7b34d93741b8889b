package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"
)

// ErrTransport marks network or service-level failures of the inference
// call. The service's own error body, if any, is carried in the message.
var ErrTransport = errors.New("inference service call failed")

// Client performs synchronous calls against the inference service. It is
// constructed once at startup and injected into the pipeline.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Client for the given API endpoint. The caller's
// context bounds each call, so the underlying http.Client carries no
// timeout of its own.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Response is the raw inference service response.
type Response struct {
	ID         string          `json:"id"`
	Model      string          `json:"model"`
	StopReason string          `json:"stop_reason"`
	Content    []ResponseBlock `json:"content"`
}

// ResponseBlock is one content block of a response. Blocks of type
// "tool_use" carry the structured invocation payload in Input.
type ResponseBlock struct {
	Type  string          `json:"type"`
	Name  string          `json:"name,omitempty"`
	Text  string          `json:"text,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// Analyze performs one round trip to the inference service: no retries,
// no streaming. Network and non-2xx failures are returned wrapped in
// ErrTransport without interpreting the error body.
func (c *Client) Analyze(ctx context.Context, request *Request) (*Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: %s", ErrTransport, resp.Status, string(data))
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}
	return &out, nil
}
