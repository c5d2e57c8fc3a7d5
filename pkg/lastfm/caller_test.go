package lastfm

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const userNotFound = `<?xml version="1.0" encoding="utf-8"?>
<lfm status="failed">
  <error code="6">User not found</error>
</lfm>`

const okUser = `<lfm status="ok"><user><name>RJ</name></user></lfm>`

func TestSignatureKnownValue(t *testing.T) {
	v := url.Values{}
	v.Set("method", "auth.getSession")
	v.Set("token", "TOK")
	v.Set("api_key", "KEY")
	assert.Equal(t, "0bf279e021f3a81b4553dd7e76cf72ad", Signature(v, "SECRET"))
}

func TestSignatureIgnoresOrderAndUnsignedParams(t *testing.T) {
	a := url.Values{}
	a.Set("b", "2")
	a.Set("a", "1")
	b := url.Values{}
	b.Set("a", "1")
	b.Set("b", "2")
	b.Set("format", "json")
	b.Set("callback", "cb")
	b.Set("api_sig", "stale")
	assert.Equal(t, Signature(a, "s"), Signature(b, "s"))

	c := url.Values{}
	c.Set("a", "1")
	c.Set("b", "3")
	assert.NotEqual(t, Signature(a, "s"), Signature(c, "s"))
	assert.NotEqual(t, Signature(a, "s"), Signature(a, "other"))
}

func TestCallUnsignedUsesGet(t *testing.T) {
	transport := &rt{status: http.StatusOK, body: okUser}
	c := newTestCaller(transport)

	res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), map[string]string{"user": "RJ"})
	require.NoError(t, err)
	assert.True(t, res.Successful())
	assert.Equal(t, http.StatusOK, res.HTTPStatus())

	method, v := transport.last()
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, "user.getInfo", v.Get("method"))
	assert.Equal(t, "KEY", v.Get("api_key"))
	assert.Equal(t, "RJ", v.Get("user"))
	assert.NotContains(t, v, "api_sig")
	assert.NotContains(t, v, "sk")
	assert.Equal(t, DefaultUserAgent, transport.agents[0])
}

func TestCallSignedPostsForm(t *testing.T) {
	transport := &rt{status: http.StatusOK, body: okUser}
	c := newTestCaller(transport)
	s := &Session{APIKey: "KEY", Secret: "SECRET", Key: "SK", Username: "RJ"}

	_, err := c.Call(context.Background(), "user.shout", s, map[string]string{"user": "RJ", "message": "hi"})
	require.NoError(t, err)

	method, v := transport.last()
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "SK", v.Get("sk"))
	require.Len(t, v["api_sig"], 1)

	sig := v.Get("api_sig")
	v.Del("api_sig")
	assert.Equal(t, Signature(v, "SECRET"), sig)
}

func TestCallRejectsBadInput(t *testing.T) {
	transport := &rt{status: http.StatusOK, body: okUser}
	c := newTestCaller(transport)
	ctx := context.Background()

	_, err := c.Call(ctx, "", APIKey("KEY"), nil)
	assert.ErrorIs(t, err, ErrEmptyMethod)

	for _, k := range []string{"api_key", "sk", "api_sig", "method"} {
		_, err = c.Call(ctx, "user.getInfo", APIKey("KEY"), map[string]string{k: "x"})
		assert.ErrorIs(t, err, ErrReservedParameter, k)
	}

	_, err = c.Call(ctx, "user.getInfo", APIKey(""), nil)
	assert.ErrorIs(t, err, ErrNoCredentials)
	_, err = c.Call(ctx, "user.getInfo", &Session{APIKey: "KEY"}, nil)
	assert.ErrorIs(t, err, ErrNoCredentials)
	_, err = c.Call(ctx, "user.getInfo", nil, nil)
	assert.ErrorIs(t, err, ErrNoCredentials)

	assert.Zero(t, transport.calls())
}

func TestCallRemoteError(t *testing.T) {
	c := newTestCaller(&rt{status: http.StatusOK, body: userNotFound})

	res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), map[string]string{"user": "nobody"})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Successful())
	assert.Equal(t, StatusFailed, res.Status())
	assert.Equal(t, CodeInvalidParameters, res.ErrorCode())
	assert.Equal(t, "User not found", res.ErrorMessage())
	assert.Nil(t, res.Content())

	var remote *Error
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, 6, remote.Code)
	assert.Equal(t, "User not found", remote.Message)
	assert.True(t, IsCode(err, CodeInvalidParameters))
	assert.False(t, remote.Temporary())
}

func TestCallRemoteErrorWithHTTPStatus(t *testing.T) {
	c := newTestCaller(&rt{status: http.StatusForbidden, body: `<lfm status="failed"><error code="26">Suspended</error></lfm>`})

	res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), nil)
	assert.True(t, IsCode(err, CodeSuspendedAPIKey))
	assert.Equal(t, http.StatusForbidden, res.HTTPStatus())
}

func TestCallUnknownCodePreserved(t *testing.T) {
	c := newTestCaller(&rt{status: http.StatusOK, body: `<lfm status="failed"><error code="99">Odd</error></lfm>`})

	res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), nil)
	assert.True(t, IsCode(err, 99))
	assert.Equal(t, 99, res.ErrorCode())
	assert.Contains(t, err.Error(), "unknown")
}

func TestCallMalformed(t *testing.T) {
	for name, body := range map[string]string{
		"truncated": `<lfm status="ok"><user>`,
		"empty":     ``,
		"bad code":  `<lfm status="failed"><error code="x">?</error></lfm>`,
		"not xml":   `{"error": 6}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestCaller(&rt{status: http.StatusOK, body: body})
			res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), nil)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Nil(t, res)
		})
	}
}

func TestCallStatusError(t *testing.T) {
	c := newTestCaller(&rt{status: http.StatusServiceUnavailable, body: "Service Unavailable"})

	res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), nil)
	assert.Nil(t, res)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
	assert.Equal(t, "user.getInfo", se.Method)
	assert.Equal(t, "Service Unavailable", se.Body)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}

func TestCallTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	c := newTestCaller(&rt{err: boom})

	res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}

func TestCallHonoursCancelledContext(t *testing.T) {
	c := NewCaller(Config{Logger: quietLogger(), BaseURL: "http://127.0.0.1:1/"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Call(ctx, "user.getInfo", APIKey("KEY"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	transport := &rt{status: http.StatusOK, body: okUser}
	c := newTestCaller(transport)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Call(context.Background(), "user.getInfo", APIKey("KEY"), map[string]string{"user": "RJ"})
			if err == nil && !res.Successful() {
				err = errors.New("unexpected failure")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 32, transport.calls())
}

func TestNewCallerDefaults(t *testing.T) {
	c := NewCaller(Config{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.Equal(t, DefaultTimeout, c.http.Timeout)
}

func TestMaskCredentials(t *testing.T) {
	v := url.Values{}
	v.Set("api_key", "0123456789")
	v.Set("user", "RJ")
	m := maskCredentials(v)
	assert.Equal(t, "0123…", m["api_key"])
	assert.Equal(t, "RJ", m["user"])
}
