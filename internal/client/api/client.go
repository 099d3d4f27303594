package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cjliu2003/writersroom-sub009/pkg/api"
)

// defaultRetryAfter is used when a 429 arrives without a usable
// Retry-After header.
const defaultRetryAfter = 60 * time.Second

// Client is the HTTP transport adapter for the writersroom server.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the Authorization header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates and returns a token pair.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", "", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// CreateDocument creates a new document owned by the caller.
func (c *Client) CreateDocument(ctx context.Context, accessToken string, req api.CreateDocumentRequest) (*api.Document, error) {
	var resp api.Document
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/documents", accessToken, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("create document request failed: %w", err)
	}
	return &resp, nil
}

// GetDocument fetches the server's current copy of a document.
func (c *Client) GetDocument(ctx context.Context, accessToken, docID string) (*api.Document, error) {
	var resp api.Document
	path := "/api/v1/documents/" + docID
	if err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get document request failed: %w", err)
	}
	return &resp, nil
}

// Health probes the server health endpoint. A nil error means the server is
// reachable and answered 200.
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/api/v1/health", "", nil, nil, nil)
}

// SaveDocument issues one versioned save and classifies the outcome per the
// Transport contract. The Idempotency-Key header mirrors req.OpID.
func (c *Client) SaveDocument(ctx context.Context, accessToken, docID string, req api.SaveRequest) (*api.SaveResponse, error) {
	headers := map[string]string{"Idempotency-Key": req.OpID}
	var resp api.SaveResponse
	path := "/api/v1/documents/" + docID
	if err := c.doRequest(ctx, http.MethodPut, path, accessToken, headers, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// doRequest performs one HTTP call and maps the outcome onto the failure
// taxonomy: transport-level failures become *NetworkError, 409 becomes
// *ConflictError, 429 becomes *RateLimitError, any other non-2xx becomes
// *APIError.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, headers map[string]string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No response received at all: the only class the durable
		// queue is allowed to absorb.
		return &NetworkError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if result != nil {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil
	}

	return classifyStatus(resp, respBody)
}

// classifyStatus converts an error-status response into a typed error.
func classifyStatus(resp *http.Response, body []byte) error {
	switch resp.StatusCode {
	case http.StatusConflict:
		var cr api.ConflictResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			return &APIError{Status: resp.StatusCode, Detail: "malformed conflict response"}
		}
		ce := &ConflictError{}
		ce.Info.LatestVersion = cr.Latest.Version
		ce.Info.LatestContent = cr.Latest.Content
		ce.Info.LatestUpdatedAt = cr.Latest.UpdatedAt
		ce.Info.YourBaseVersion = cr.YourBaseVersion
		return ce

	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}

	default:
		var er api.ErrorResponse
		detail := ""
		if err := json.Unmarshal(body, &er); err == nil {
			detail = er.Detail
		}
		return &APIError{Status: resp.StatusCode, Detail: detail}
	}
}

// parseRetryAfter interprets a Retry-After header given in seconds.
// HTTP-date form is not expected from this server and falls back to the
// default.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}
