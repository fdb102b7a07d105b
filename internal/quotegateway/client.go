package quotegateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apexitsupply/apex-backend/internal/quoteform"
)

const responseBodyReadLimit int64 = 64 * 1024

var errBaseURLRequired = errors.New("gateway base url is required")

// ConnectivityError means the request never produced an HTTP response. The
// user may retry manually; the gateway itself never retries.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("could not reach the quote service: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ApplicationError is a non-2xx response. Message carries the server's own
// message when the body had one.
type ApplicationError struct {
	StatusCode int
	Message    string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("quote service returned status %d", e.StatusCode)
}

// FormatError is a 2xx response whose body did not carry the expected fields.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string {
	return "unexpected response format from quote service"
}

// Receipt is the acknowledgement for an accepted quote submission.
type Receipt struct {
	QuoteID int64
	Message string
}

// Client talks to the quote service's public endpoints. Every call is a
// single attempt with a context deadline; resubmission is a user decision.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a gateway client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Submit posts the draft and interprets the acknowledgement.
func (c *Client) Submit(ctx context.Context, draft *quoteform.Draft) (*Receipt, error) {
	if draft == nil {
		return nil, errors.New("draft is required")
	}

	body, err := c.post(ctx, "/quote-request", draft)
	if err != nil {
		return nil, err
	}

	receipt, ok := decodeReceipt(body)
	if !ok {
		return nil, &FormatError{Detail: "missing message or quote_id"}
	}
	return receipt, nil
}

// SubscribeNewsletter posts a signup and returns the server's message.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) (string, error) {
	payload := struct {
		Email string `json:"email"`
	}{Email: strings.TrimSpace(email)}

	body, err := c.post(ctx, "/newsletter", payload)
	if err != nil {
		return "", err
	}

	message, ok := decodeMessage(body)
	if !ok {
		return "", &FormatError{Detail: "missing message"}
	}
	return message, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ApplicationError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(body),
		}
	}
	return body, nil
}

// decodeReceipt accepts the flat {message, quote_id} shape and the enveloped
// {success, data:{message, quote_id}} shape.
func decodeReceipt(body []byte) (*Receipt, bool) {
	var parsed struct {
		Message string `json:"message"`
		QuoteID int64  `json:"quote_id"`
		Data    *struct {
			Message string `json:"message"`
			QuoteID int64  `json:"quote_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false
	}
	if parsed.QuoteID > 0 && parsed.Message != "" {
		return &Receipt{QuoteID: parsed.QuoteID, Message: parsed.Message}, true
	}
	if parsed.Data != nil && parsed.Data.QuoteID > 0 && parsed.Data.Message != "" {
		return &Receipt{QuoteID: parsed.Data.QuoteID, Message: parsed.Data.Message}, true
	}
	return nil, false
}

func decodeMessage(body []byte) (string, bool) {
	var parsed struct {
		Message string `json:"message"`
		Data    *struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false
	}
	if parsed.Message != "" {
		return parsed.Message, true
	}
	if parsed.Data != nil && parsed.Data.Message != "" {
		return parsed.Data.Message, true
	}
	return "", false
}

// extractErrorMessage digs the human-readable message out of an error body.
func extractErrorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if parsed.Message != "" {
		return parsed.Message
	}
	if parsed.Error != nil {
		return parsed.Error.Message
	}
	return ""
}
