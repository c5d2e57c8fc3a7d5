package lastfm

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"LastFM-Go/pkg/xmldoc"
)

// rt is a fake transport answering every request with the same status and
// body. It records the parameters of each request it sees.
type rt struct {
	status int
	body   string
	err    error

	mu      sync.Mutex
	methods []string
	params  []url.Values
	agents  []string
}

func (r *rt) RoundTrip(req *http.Request) (*http.Response, error) {
	v := req.URL.Query()
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		req.Body.Close()
		if len(b) > 0 {
			v, _ = url.ParseQuery(string(b))
		}
	}
	r.mu.Lock()
	r.methods = append(r.methods, req.Method)
	r.params = append(r.params, v)
	r.agents = append(r.agents, req.Header.Get("User-Agent"))
	r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	rec := httptest.NewRecorder()
	rec.WriteHeader(r.status)
	rec.WriteString(r.body)
	return rec.Result(), nil
}

func (r *rt) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.params)
}

func (r *rt) last() (string, url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.params) - 1
	return r.methods[n], r.params[n]
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestCaller(transport *rt) *Caller {
	return NewCaller(Config{
		BaseURL: "http://lastfm.test/2.0/",
		HTTP:    &http.Client{Transport: transport},
		Logger:  quietLogger(),
	})
}

func newTestClient(status int, body string) (*Client, *rt) {
	transport := &rt{status: status, body: body}
	return NewClient(newTestCaller(transport), "KEY", "SECRET"), transport
}

func mustResult(t *testing.T, doc string) *Result {
	t.Helper()
	el, err := xmldoc.ParseString(doc)
	require.NoError(t, err)
	res, err := NewResult(el)
	require.NoError(t, err)
	return res
}
