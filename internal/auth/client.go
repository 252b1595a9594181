// Package auth talks to the hosted backend's auth API.
package auth

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

	"github.com/tidwall/gjson"
)

var ErrNotConfigured = errors.New("auth backend URL or API key is not set")

// SignUpRequest creates a login. Metadata is stored on the auth user.
type SignUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Metadata map[string]any `json:"data,omitempty"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// APIError is a non-2xx answer of the auth API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// SignUp registers a user. The API answers either the user itself or a
// session wrapping it, depending on whether e-mail confirmation is enabled.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/signup", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("apikey", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("auth api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("auth api: read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}

	user := gjson.GetBytes(raw, "user")
	if !user.Exists() {
		user = gjson.ParseBytes(raw)
	}
	u := &User{ID: user.Get("id").String(), Email: user.Get("email").String()}
	if u.ID == "" {
		return nil, errors.New("auth api: response carries no user id")
	}
	return u, nil
}

func errorMessage(raw []byte, fallback string) string {
	for _, path := range []string{"msg", "error_description", "message", "error"} {
		if v := gjson.GetBytes(raw, path); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return fallback
}
