package jobtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-errors"
)

// DefaultLoginPath is where the navigator is sent after a 401
const DefaultLoginPath = "/login"

// maxDrainBody caps how much of a rejected response is read before the
// connection is released
const maxDrainBody = 4 << 10

// FetchOption customizes a single Fetch call
type FetchOption func(*fetchRequest) error

type fetchRequest struct {
	method  string
	headers map[string]string
	body    io.Reader
	editors []func(*http.Request) error
}

// WithMethod sets the HTTP method, GET by default
func WithMethod(method string) FetchOption {
	return func(r *fetchRequest) error {
		r.method = strings.ToUpper(method)
		return nil
	}
}

// WithHeader sets a single header. Caller headers override the defaults,
// including Content-Type and Authorization.
func WithHeader(name, value string) FetchOption {
	return func(r *fetchRequest) error {
		r.headers[name] = value
		return nil
	}
}

// WithHeaders merges headers into the request
func WithHeaders(headers map[string]string) FetchOption {
	return func(r *fetchRequest) error {
		for k, v := range headers {
			r.headers[k] = v
		}
		return nil
	}
}

// WithBody sets the raw request body
func WithBody(body io.Reader) FetchOption {
	return func(r *fetchRequest) error {
		r.body = body
		return nil
	}
}

// WithJSONBody encodes payload as the JSON request body
func WithJSONBody(payload any) FetchOption {
	return func(r *fetchRequest) error {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "unable to encode request body")
		}
		r.body = bytes.NewReader(data)
		return nil
	}
}

// WithRequestEditor gives access to the outgoing *http.Request for any
// option not covered by the helpers above. Editors run after headers
// have been merged.
func WithRequestEditor(fn func(*http.Request) error) FetchOption {
	return func(r *fetchRequest) error {
		if fn != nil {
			r.editors = append(r.editors, fn)
		}
		return nil
	}
}

// Client sends requests authorized with the stored bearer token
type Client struct {
	tokens     TokenStore
	httpClient *http.Client
	navigator  Navigator
	baseURL    *url.URL
	loginPath  string
	logger     Logger
}

// NewClient returns a Client reading its token from tokens
func NewClient(tokens TokenStore) *Client {
	return &Client{
		tokens:     tokens,
		httpClient: http.DefaultClient,
		navigator:  NavigatorFunc(func(context.Context, string) error { return nil }),
		loginPath:  DefaultLoginPath,
		logger:     defLogger{},
	}
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	if client != nil {
		c.httpClient = client
	}
	return c
}

func (c *Client) WithNavigator(navigator Navigator) *Client {
	if navigator != nil {
		c.navigator = navigator
	}
	return c
}

// WithBaseURL sets the URL relative request targets are resolved against
func (c *Client) WithBaseURL(base string) (*Client, error) {
	if base == "" {
		c.baseURL = nil
		return c, nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return c, errors.Wrap(err, ErrInvalidURL.Category, ErrInvalidURL.Message).
			WithTextCode(ErrInvalidURL.TextCode)
	}
	c.baseURL = u
	return c, nil
}

func (c *Client) WithLoginPath(path string) *Client {
	if path != "" {
		c.loginPath = path
	}
	return c
}

func (c *Client) WithLogger(logger Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// LoginPath returns the navigation target used on 401
func (c *Client) LoginPath() string {
	return c.loginPath
}

// Tokens returns the token store backing the client
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

// Fetch issues the request and returns the raw response for any status
// other than 401. A 401 clears the stored token, sends the navigator to the
// login path and yields ErrAuthExpired. Transport failures yield ErrNetwork.
func (c *Client) Fetch(ctx context.Context, target string, opts ...FetchOption) (*http.Response, error) {
	req, err := c.NewRequest(ctx, target, opts...)
	if err != nil {
		return nil, err
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("fetch %s %s failed: %s", req.Method, req.URL.Redacted(), err)
		return nil, errors.Wrap(err, ErrNetwork.Category, ErrNetwork.Message).
			WithTextCode(ErrNetwork.TextCode).
			WithMetadata(map[string]any{
				"method": req.Method,
				"url":    req.URL.Redacted(),
			})
	}

	if res.StatusCode == http.StatusUnauthorized {
		io.Copy(io.Discard, io.LimitReader(res.Body, maxDrainBody))
		res.Body.Close()
		return nil, c.expireSession(ctx, req)
	}

	return res, nil
}

// NewRequest builds the outgoing request with merged headers
func (c *Client) NewRequest(ctx context.Context, target string, opts ...FetchOption) (*http.Request, error) {
	fr := &fetchRequest{
		method:  http.MethodGet,
		headers: map[string]string{},
	}
	for _, opt := range opts {
		if err := opt(fr); err != nil {
			return nil, err
		}
	}

	u, err := c.resolve(target)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, fr.method, u.String(), fr.body)
	if err != nil {
		return nil, errors.Wrap(err, ErrInvalidURL.Category, ErrInvalidURL.Message).
			WithTextCode(ErrInvalidURL.TextCode)
	}

	for name, value := range c.headers(ctx, fr.headers) {
		req.Header.Set(name, value)
	}

	for _, edit := range fr.editors {
		if err := edit(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func (c *Client) headers(ctx context.Context, overrides map[string]string) map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	if token, ok := c.tokens.Get(ctx); ok {
		headers["Authorization"] = "Bearer " + token
	}

	for name, value := range overrides {
		// drop any default spelled with a different case
		for existing := range headers {
			if existing != name && strings.EqualFold(existing, name) {
				delete(headers, existing)
			}
		}
		headers[name] = value
	}

	return headers
}

func (c *Client) resolve(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, errors.Wrap(err, ErrInvalidURL.Category, ErrInvalidURL.Message).
			WithTextCode(ErrInvalidURL.TextCode).
			WithMetadata(map[string]any{"url": target})
	}

	if u.IsAbs() {
		return u, nil
	}

	if c.baseURL == nil {
		return nil, ErrInvalidURL.Clone().WithMetadata(map[string]any{
			"url":    target,
			"reason": "relative url without base url",
		})
	}

	return c.baseURL.ResolveReference(u), nil
}

func (c *Client) expireSession(ctx context.Context, req *http.Request) error {
	c.logger.Info("session rejected by %s, redirecting to %s", req.URL.Redacted(), c.loginPath)

	if err := c.tokens.Remove(ctx); err != nil {
		c.logger.Error("unable to remove token: %s", err)
	}

	if err := c.navigator.Navigate(ctx, c.loginPath); err != nil {
		c.logger.Error("unable to navigate to %s: %s", c.loginPath, err)
	}

	return ErrAuthExpired.Clone().WithMetadata(map[string]any{
		"method": req.Method,
		"url":    req.URL.Redacted(),
	})
}

// HTTPClient returns the underlying *http.Client
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}
