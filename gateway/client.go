// Package gateway is the typed client for the hedge-fund analysis backend.
//
// The backend exposes two endpoints: a liveness probe (GET /api/health) and
// a batched analysis call (POST /api/analyze). Each client operation issues
// exactly one network round-trip and never retries; recovery is a caller
// decision. Failures of every flavor are reported as *Error so the
// orchestrator has a single envelope to classify.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8000"

	healthPath  = "/api/health"
	analyzePath = "/api/analyze"

	probeTimeout = 5 * time.Second
)

// Client talks to one analysis backend instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the backend at baseURL, defaulting to the
// local development address when empty.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme and host required", baseURL)
	}

	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    parsed.Scheme + "://" + parsed.Host,
	}, nil
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Probe issues the liveness check. Any non-2xx status or transport failure
// is reported as a KindLiveness error telling the user to start the
// backend; the analysis call must not be attempted after a failed probe.
func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return livenessError(err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return livenessError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return livenessError(fmt.Sprintf("health check returned status %d", resp.StatusCode))
	}
	return nil
}

func livenessError(trace string) *Error {
	return &Error{
		Kind:    KindLiveness,
		Title:   "API Server Not Running",
		Message: "The API server is not responding",
		Detail:  "Please make sure the analysis server is running:\nrun `uvicorn src.backend.api:app --reload --port 8000`",
		Trace:   trace,
	}
}

// Analyze issues the batched analysis request for a non-empty ticker set
// and returns the raw payload unvalidated; shape validation is the
// decomposer's job. A non-success response becomes a *Error carrying the
// service's structured detail verbatim; a transport failure becomes a
// generic *Error wrapping the underlying error text.
func (c *Client) Analyze(ctx context.Context, tickers []string) (*AnalysisPayload, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("analyze called with no tickers")
	}

	body, err := json.Marshal(map[string][]string{"tickers": tickers})
	if err != nil {
		return nil, fmt.Errorf("encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    KindUnknown,
			Title:   "Stock Analysis Failed",
			Message: "Failed to reach the analysis server",
			Detail:  err.Error(),
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Kind:    KindUnknown,
			Title:   "Stock Analysis Failed",
			Message: "Failed to read the analysis response",
			Detail:  err.Error(),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, analysisError(resp.StatusCode, raw)
	}

	var payload AnalysisPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &Error{
			Kind:    KindUnknown,
			Title:   "Stock Analysis Failed",
			Message: "The analysis server returned a malformed response",
			Detail:  err.Error(),
		}
	}
	return &payload, nil
}

// analysisError converts a non-success analyze response into a *Error,
// forwarding the service's own message and detail when present.
func analysisError(status int, raw []byte) *Error {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	_ = json.Unmarshal(raw, &body)

	gerr := &Error{
		Kind:    KindAnalysis,
		Title:   "Stock Analysis Failed",
		Message: fmt.Sprintf("The analysis server returned status %d", status),
	}

	if len(body.Detail) > 0 {
		var structured serviceDetail
		if err := json.Unmarshal(body.Detail, &structured); err == nil && (structured.Message != "" || structured.Error != "") {
			if structured.Message != "" {
				gerr.Message = structured.Message
			}
			gerr.Detail = structured.Error
			gerr.Trace = structured.Traceback
		} else {
			var plain string
			if err := json.Unmarshal(body.Detail, &plain); err == nil {
				gerr.Detail = plain
			} else {
				gerr.Detail = string(body.Detail)
			}
		}
	} else if len(raw) > 0 {
		gerr.Detail = string(raw)
	}

	if looksLikeAuthFailure(status, gerr.Message+" "+gerr.Detail) {
		gerr.Kind = KindAuthRequired
		gerr.Title = "Authentication Required"
	}
	return gerr
}
