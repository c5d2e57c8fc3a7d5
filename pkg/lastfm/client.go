package lastfm

import (
	"context"
	"strconv"
)

// Client binds a Caller to one application's credentials and exposes the
// method namespaces on top of it. A Client is safe for concurrent use.
type Client struct {
	caller *Caller
	apiKey string
	secret string

	User *UserService
	Auth *AuthService
}

// NewClient returns a Client issuing calls through caller. secret may be
// empty when only unsigned methods are used.
func NewClient(caller *Caller, apiKey, secret string) *Client {
	c := &Client{caller: caller, apiKey: apiKey, secret: secret}
	c.User = &UserService{client: c}
	c.Auth = &AuthService{client: c}
	return c
}

// Caller returns the underlying Caller for methods without a typed binding.
func (c *Client) Caller() *Caller {
	return c.caller
}

// APIKey returns the application key.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Session returns a session credential for a key obtained earlier, for
// example one restored from storage.
func (c *Client) Session(key, username string) *Session {
	return &Session{APIKey: c.apiKey, Secret: c.secret, Key: key, Username: username}
}

func (c *Client) key() Auth {
	return APIKey(c.apiKey)
}

// params is the parameter set of one call.
type params map[string]string

// setInt adds an optional integer; -1 means unset and is left out.
func (p params) setInt(name string, v int) {
	if v != -1 {
		p[name] = strconv.Itoa(v)
	}
}

// setString adds an optional string; "" is left out.
func (p params) setString(name, v string) {
	if v != "" {
		p[name] = v
	}
}

// setFlag adds a boolean as "1" when set.
func (p params) setFlag(name string, v bool) {
	if v {
		p[name] = "1"
	}
}

func callItem[T any](ctx context.Context, c *Caller, method string, auth Auth, p params, kind Kind[T]) (T, error) {
	res, err := c.Call(ctx, method, auth, p)
	if err != nil {
		var zero T
		return zero, err
	}
	return BuildResultItem(res, kind)
}

func callCollection[T any](ctx context.Context, c *Caller, method string, auth Auth, p params, kind Kind[T]) ([]T, error) {
	res, err := c.Call(ctx, method, auth, p)
	if err != nil {
		return []T{}, err
	}
	return BuildCollection(res, kind)
}

// callPage returns the failed-shape page together with the remote error so
// callers can inspect both.
func callPage[T any](ctx context.Context, c *Caller, method string, auth Auth, p params, kind Kind[T]) (PaginatedResult[T], error) {
	res, err := c.Call(ctx, method, auth, p)
	if res == nil {
		return PaginatedResult[T]{Items: []T{}}, err
	}
	page, berr := BuildPaginatedResult(res, kind)
	if err != nil {
		return page, err
	}
	return page, berr
}

func callChart[T any](ctx context.Context, c *Caller, method string, auth Auth, p params, kind Kind[T]) (Chart[T], error) {
	res, err := c.Call(ctx, method, auth, p)
	if res == nil {
		return Chart[T]{PaginatedResult: PaginatedResult[T]{Items: []T{}}}, err
	}
	chart, berr := BuildChart(res, kind)
	if err != nil {
		return chart, err
	}
	return chart, berr
}
