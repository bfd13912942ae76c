package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/domain"
)

const submissionsPath = "/api/submissions"

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// ServiceError is a non-2xx answer of the directory API.
type ServiceError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("directory %s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("directory %s: status %d", e.Op, e.Status)
}

// UserMessage returns the message the service wants shown to the user.
func (e *ServiceError) UserMessage() string {
	return e.Message
}

// Client talks to the status and submission endpoints of the directory API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client for baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CheckStatus fetches the existing submissions and eligibility of the token owner.
func (c *Client) CheckStatus(ctx context.Context, token string) (*domain.StatusReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+submissionsPath, nil)
	if err != nil {
		return nil, err
	}

	var report domain.StatusReport
	if err := c.do(req, "status", token, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Submit posts the payload and returns the created business.
func (c *Client) Submit(ctx context.Context, token string, payload domain.SubmissionPayload) (*domain.SubmitResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submissionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result domain.SubmitResult
	if err := c.do(req, "submit", token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks that the directory API answers its liveness endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health/live", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory liveness: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) do(req *http.Request, op, token string, out any) error {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("directory %s: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("directory call",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("directory %s: %w", op, domain.ErrNoSession)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("directory %s: decode response: %w", op, err)
	}
	return nil
}

func decodeError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		body.Error = ""
	}
	return &ServiceError{Op: op, Status: resp.StatusCode, Message: body.Error}
}
