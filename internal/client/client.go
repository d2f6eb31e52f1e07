// Package client is a typed client for the storefront JSON API.
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
	"strings"
	"time"

	"github.com/Fashion-Store/Aradaa/internal/catalog"
	"github.com/Fashion-Store/Aradaa/internal/orders"
	"github.com/Fashion-Store/Aradaa/internal/session"
)

var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrOrderNotPlaced is returned when the API accepts an order request
	// without confirming it, e.g. while an earlier attempt with the same
	// idempotency key is still in progress.
	ErrOrderNotPlaced = errors.New("order not placed")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string            // "error" field of the body
	Message string            // "message" or "msg" field of the body
	Fields  map[string]string // validation failures, if any
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api: %d", e.Status)
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// Client talks to one API base URL.
type Client struct {
	base string
	http *http.Client
}

// New returns a client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ProductList is the body of GET /api/products.
type ProductList struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
}

func (c *Client) ListProducts(ctx context.Context, p catalog.Params) (ProductList, error) {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}

	var out ProductList
	err := c.do(ctx, http.MethodGet, "/api/products", q, nil, nil, &out)
	return out, err
}

// GetProduct fetches one product by id or slug. Unknown products yield ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, idOrSlug string) (catalog.Product, error) {
	var out catalog.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(idOrSlug), nil, nil, nil, &out)
	return out, err
}

type sessionResponse struct {
	Success bool         `json:"success"`
	User    session.User `json:"user"`
	Token   string       `json:"token"`
}

// Login implements session.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/login", body)
}

// Register implements session.Authenticator.
func (c *Client) Register(ctx context.Context, name, email, password string) (session.User, string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/register", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (session.User, string, error) {
	var out sessionResponse
	if err := c.do(ctx, http.MethodPost, path, nil, nil, body, &out); err != nil {
		return session.User{}, "", err
	}
	if !out.Success {
		return session.User{}, "", errors.New("authentication rejected")
	}
	return out.User, out.Token, nil
}

// PlaceOrder submits an order. A non-empty idempotencyKey makes retries safe
// when the server tracks keys. A reply without success is ErrOrderNotPlaced.
func (c *Client) PlaceOrder(ctx context.Context, o orders.Order, idempotencyKey string) (orders.Confirmation, error) {
	var hdr http.Header
	if idempotencyKey != "" {
		hdr = http.Header{"Idempotency-Key": []string{idempotencyKey}}
	}
	var out orders.Confirmation
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, hdr, o, &out); err != nil {
		return out, err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "no confirmation"
		}
		return out, fmt.Errorf("%w: %s", ErrOrderNotPlaced, msg)
	}
	return out, nil
}

// Orders fetches the order history. latestID is shown as the newest order.
func (c *Client) Orders(ctx context.Context, latestID string) ([]orders.Summary, error) {
	var q url.Values
	if latestID != "" {
		q = url.Values{"latest": []string{latestID}}
	}
	var out struct {
		Orders []orders.Summary `json:"orders"`
	}
	err := c.do(ctx, http.MethodGet, "/api/orders", q, nil, nil, &out)
	return out.Orders, err
}

// ContactMessage is the body of POST /api/contact.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SendContact posts a contact form message and returns the server's reply text.
func (c *Client) SendContact(ctx context.Context, m ContactMessage) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/contact", nil, nil, m, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Health is the body of GET /api/health.
type Health struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, hdr http.Header, in, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	e := &APIError{Status: status}
	var body struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Msg     string            `json:"msg"`
		Fields  map[string]string `json:"fields"`
	}
	if json.Unmarshal(data, &body) == nil {
		e.Code = body.Error
		e.Message = body.Message
		if e.Message == "" {
			e.Message = body.Msg
		}
		e.Fields = body.Fields
	}
	return e
}
