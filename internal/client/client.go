// Package client talks to the storefront API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/session"
)

const csrfHeader = "X-CSRF-Token"

// ErrUnauthenticated is matched by every 401 and 403 response.
var ErrUnauthenticated = errors.New("not authenticated")

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error returns the server's message unchanged so it can be shown to the user verbatim.
func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthenticated
	}
	return nil
}

// MessageOf returns the server-provided message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// CredentialSource supplies the credential attached to each request.
type CredentialSource interface {
	Credentials() session.Credentials
}

// Client handles communication with the storefront API.
type Client struct {
	// Base URL of the API server
	BaseURL string

	creds  CredentialSource
	client *http.Client
}

// New builds a client. creds may be nil for anonymous use.
func New(baseURL string, creds CredentialSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/api/register", req, &out)
	return out, err
}

// Login exchanges credentials for a bearer token and its anti-forgery token.
func (c *Client) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", dto.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

// Me resolves the identity behind the current credential.
func (c *Client) Me(ctx context.Context) (dto.UserProfile, error) {
	var out dto.UserProfile
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &out)
	return out, err
}

func (c *Client) Subscribe(ctx context.Context, req dto.SubscribeRequest) (dto.SubscribeResponse, error) {
	var out dto.SubscribeResponse
	err := c.do(ctx, http.MethodPost, "/api/subscribe", req, &out)
	return out, err
}

// ListSubscriptions returns the caller's subscriptions, newest first.
func (c *Client) ListSubscriptions(ctx context.Context) ([]dto.Subscription, error) {
	var out []dto.Subscription
	err := c.do(ctx, http.MethodGet, "/api/subscriptions", nil, &out)
	return out, err
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, status string) (dto.StatusUpdateResponse, error) {
	var out dto.StatusUpdateResponse
	err := c.do(ctx, http.MethodPut, subscriptionPath(id, "status"), dto.StatusUpdateRequest{Status: status}, &out)
	return out, err
}

// CreatePayment obtains a single-use checkout token for a pending subscription.
func (c *Client) CreatePayment(ctx context.Context, id int64) (dto.PaymentResponse, error) {
	var out dto.PaymentResponse
	err := c.do(ctx, http.MethodPost, subscriptionPath(id, "create-payment"), nil, &out)
	return out, err
}

func (c *Client) Recommend(ctx context.Context, id int64) ([]dto.Recommendation, error) {
	var out []dto.Recommendation
	err := c.do(ctx, http.MethodPost, subscriptionPath(id, "ai-recommendation"), nil, &out)
	return out, err
}

func (c *Client) ListTestimonials(ctx context.Context) ([]dto.Testimonial, error) {
	var out []dto.Testimonial
	err := c.do(ctx, http.MethodGet, "/api/testimonials", nil, &out)
	return out, err
}

func (c *Client) CreateTestimonial(ctx context.Context, req dto.TestimonialRequest) (dto.Testimonial, error) {
	var out dto.Testimonial
	err := c.do(ctx, http.MethodPost, "/api/testimonials", req, &out)
	return out, err
}

// DashboardStats fetches the admin metrics. from and to are optional
// YYYY-MM-DD bounds on the new-subscription and reactivation counts.
func (c *Client) DashboardStats(ctx context.Context, from, to string) (dto.DashboardStats, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	path := "/api/admin/dashboard-stats"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out dto.DashboardStats
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func subscriptionPath(id int64, action string) string {
	return "/api/subscriptions/" + strconv.FormatInt(id, 10) + "/" + action
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		creds := c.creds.Credentials()
		if creds.Token != "" {
			req.Header.Set("Authorization", "Bearer "+creds.Token)
		}
		if creds.CSRF != "" && method != http.MethodGet {
			req.Header.Set(csrfHeader, creds.CSRF)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	apiErr := &APIError{Status: status}
	var envelope dto.ErrorBody
	if err := json.Unmarshal(data, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
