// Package lastfm is a client for the Last.fm 2.0 web service. A Caller
// performs individual method calls and classifies the XML envelope that comes
// back; the Build functions turn a successful Result into typed entities using
// one factory per entity Kind. Client bundles a Caller with the application
// credentials and exposes the user.* and auth.* namespaces on top of both.
//
// Calls are synchronous and carry no per-call state on the Caller, so a
// single Caller may be shared by any number of goroutines. Nothing is retried
// or cached; callers that want either wrap the Client themselves.
package lastfm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"LastFM-Go/pkg/logging"
	"LastFM-Go/pkg/xmldoc"
)

const (
	// DefaultBaseURL is the public web service endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"
	// DefaultUserAgent identifies this library when no agent is configured.
	DefaultUserAgent = "LastFM-Go/1.0"
	// DefaultTimeout bounds a single round trip when no HTTP client is given.
	DefaultTimeout = 10 * time.Second
)

// reserved parameter names are managed by the Caller itself.
var reserved = []string{"method", "api_key", "sk", "api_sig"}

// Config holds the transport settings of a Caller. It is read once by
// NewCaller and not consulted afterwards.
type Config struct {
	BaseURL   string
	UserAgent string
	// Debug logs every request's parameters (credentials masked) and the
	// raw response size.
	Debug bool
	// HTTP may be nil in which case a client with DefaultTimeout is used.
	HTTP *http.Client
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Caller sends method calls to the web service.
type Caller struct {
	base      string
	userAgent string
	debug     bool
	http      *http.Client
	log       logrus.FieldLogger
}

// NewCaller returns a Caller for cfg. Zero fields fall back to the package
// defaults.
func NewCaller(cfg Config) *Caller {
	c := &Caller{
		base:      cfg.BaseURL,
		userAgent: cfg.UserAgent,
		debug:     cfg.Debug,
		http:      cfg.HTTP,
		log:       cfg.Logger,
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: DefaultTimeout}
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// BaseURL returns the endpoint calls are sent to.
func (c *Caller) BaseURL() string {
	return c.base
}

// Call invokes method with the given parameters. Unsigned calls are sent as GET
// with a query string; calls authenticated with a Session or Credentials are
// signed and sent as a POST form.
//
// A failure declared by the service yields both a failed Result and an *Error
// carrying the same code and message. Transport failures and unreadable
// payloads return a nil Result.
func (c *Caller) Call(ctx context.Context, method string, auth Auth, params map[string]string) (*Result, error) {
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if auth == nil {
		return nil, ErrNoCredentials
	}
	for _, k := range reserved {
		if _, ok := params[k]; ok {
			return nil, fmt.Errorf("%w: %q", ErrReservedParameter, k)
		}
	}

	values := make(url.Values, len(params)+4)
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("method", method)
	secret, err := auth.authenticate(values)
	if err != nil {
		return nil, err
	}
	signed := secret != ""
	if signed {
		values.Set("api_sig", Signature(values, secret))
	}

	reqID := logging.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"request_id": reqID,
	})
	if c.debug {
		log.WithField("params", maskCredentials(values)).Debug("lastfm call")
	}

	start := time.Now()
	res, err := c.roundTrip(ctx, method, values, signed, log)
	elapsed := time.Since(start)

	entry := log.WithField("duration", elapsed)
	switch {
	case errors.Is(err, ErrMalformedResponse):
		observeCall(method, outcomeMalformed, 0, elapsed)
		entry.WithError(err).WithField("outcome", outcomeMalformed).Warn("lastfm call returned malformed payload")
		return nil, err
	case err != nil:
		observeCall(method, outcomeTransport, 0, elapsed)
		entry.WithError(err).WithField("outcome", outcomeTransport).Warn("lastfm call failed")
		return nil, err
	case !res.Successful():
		observeCall(method, outcomeFailed, res.ErrorCode(), elapsed)
		entry.WithFields(logrus.Fields{
			"outcome": outcomeFailed,
			"code":    res.ErrorCode(),
			"message": res.ErrorMessage(),
		}).Info("lastfm call declared failure")
		return res, res.Err()
	default:
		observeCall(method, outcomeOK, 0, elapsed)
		entry.WithField("outcome", outcomeOK).Debug("lastfm call ok")
		return res, nil
	}
}

func (c *Caller) roundTrip(ctx context.Context, method string, values url.Values, signed bool, log logrus.FieldLogger) (*Result, error) {
	var req *http.Request
	var err error
	if signed {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.base, strings.NewReader(values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+values.Encode(), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("lastfm: %s: build request: %w", method, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm: %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, xmldoc.MaxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("lastfm: %s: read body: %w", method, err)
	}
	if c.debug {
		log.WithFields(logrus.Fields{"status": resp.StatusCode, "bytes": len(body)}).Debug("lastfm response")
	}

	doc, perr := xmldoc.Parse(bytes.NewReader(body))
	if perr != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Method: method, Status: resp.StatusCode, Body: snippet(body), Err: perr}
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, method, perr)
	}
	res, cerr := classify(doc, resp.StatusCode)
	if cerr != nil {
		return nil, fmt.Errorf("%w: %s: unreadable error envelope", ErrMalformedResponse, method)
	}
	return res, nil
}

// maskCredentials returns the parameters with secrets shortened for logging.
func maskCredentials(v url.Values) map[string]string {
	out := make(map[string]string, len(v))
	for k := range v {
		val := v.Get(k)
		switch k {
		case "api_key", "sk", "api_sig":
			if len(val) > 4 {
				val = val[:4] + "…"
			}
		}
		out[k] = val
	}
	return out
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		s = s[:max]
	}
	return s
}
