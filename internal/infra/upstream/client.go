package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/obs"
)

const (
	CodeNetworkError  = "NETWORK_ERROR"
	CodeUpstreamError = "UPSTREAM_ERROR"
	CodeDecodeError   = "DECODE_ERROR"
)

// APIError is every failure returned by Client. Status mirrors the provider's HTTP status,
// or 500 when the call never produced a usable response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream %d %s: %s", e.Status, e.Code, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the hotel inventory API. It never retries.
type Client struct {
	http           *http.Client
	dataBaseURL    string
	bookingBaseURL string
	apiKey         string
	metrics        *obs.Metrics
}

func NewClient(cfg config.UpstreamConfig, m *obs.Metrics) *Client {
	return &Client{
		http:           &http.Client{Timeout: cfg.Timeout},
		dataBaseURL:    strings.TrimRight(cfg.DataBaseURL, "/"),
		bookingBaseURL: strings.TrimRight(cfg.BookingBaseURL, "/"),
		apiKey:         cfg.APIKey,
		metrics:        m,
	}
}

// Request sends body as JSON to endpoint and decodes a 2xx response into out.
// Relative endpoints resolve against the data API.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, out any) error {
	url := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		url = c.dataBaseURL + endpoint
	}
	return c.do(ctx, endpoint, method, url, body, out)
}

func (c *Client) dataURL(path string) string    { return c.dataBaseURL + path }
func (c *Client) bookingURL(path string) string { return c.bookingBaseURL + path }

func (c *Client) do(ctx context.Context, op, method, url string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(op, time.Since(start).Seconds())
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.metrics.IncUpstreamError(op, strconv.Itoa(apiErr.Status))
		}
	}()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Status: http.StatusInternalServerError, Code: CodeDecodeError, Message: err.Error()}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &APIError{Status: http.StatusInternalServerError, Code: CodeNetworkError, Message: err.Error()}
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "upstream request failed", "op", op, "error", err)
		return &APIError{Status: http.StatusInternalServerError, Code: CodeNetworkError, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: http.StatusInternalServerError, Code: CodeNetworkError, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorBody(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Status: http.StatusBadGateway, Code: CodeDecodeError, Message: err.Error()}
	}
	return nil
}

type errorDetail struct {
	Code    json.RawMessage `json:"code"`
	Message string          `json:"message"`
}

type errorBody struct {
	Error json.RawMessage `json:"error"`
	errorDetail
}

// parseErrorBody accepts {"error":{"code","message"}}, {"error":"msg"}, {"code","message"} and
// {"message"}, falling back to the status text.
func parseErrorBody(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Code: CodeUpstreamError, Message: http.StatusText(status)}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	detail := body.errorDetail
	if len(body.Error) > 0 && string(body.Error) != "null" {
		var nested errorDetail
		var msg string
		switch {
		case json.Unmarshal(body.Error, &nested) == nil:
			detail = nested
		case json.Unmarshal(body.Error, &msg) == nil:
			detail.Message = msg
		}
	}

	if detail.Message != "" {
		apiErr.Message = detail.Message
	}
	if code := rawCode(detail.Code); code != "" {
		apiErr.Code = code
	}
	return apiErr
}

// rawCode renders a code that may arrive as a JSON string or number.
func rawCode(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
