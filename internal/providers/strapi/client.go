// Package strapi is the HTTP client for the content backend. It implements
// the backend interfaces of the identity, catalog and billing domains.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cremaciondirecta/checkout/internal/config"
	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BackendURL, "/"),
		apiKey:     cfg.BackendAPIKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log.Named("providers.strapi"),
	}
}

// apiError is the backend's error envelope.
type apiError struct {
	Status  int
	Name    string
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("backend error %d %s: %s", e.Status, e.Name, e.Message)
}

type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs a request against the backend's /api prefix. token overrides
// the service API key when set (user-scoped endpoints). The response body is
// decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/"+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	bearer := token
	if bearer == "" {
		bearer = c.apiKey
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apiError{Status: resp.StatusCode}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error.Status != 0 {
			apiErr.Status = envelope.Error.Status
			apiErr.Name = envelope.Error.Name
			apiErr.Message = envelope.Error.Message
		}
		c.log.Warn("backend request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func isStatus(err error, statuses ...int) bool {
	apiErr, ok := err.(*apiError)
	if !ok {
		return false
	}
	for _, status := range statuses {
		if apiErr.Status == status {
			return true
		}
	}
	return false
}

func isTransport(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*apiError)
	return !ok
}
