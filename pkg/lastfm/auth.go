package lastfm

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"LastFM-Go/pkg/xmldoc"
)

// Auth is the credential a call is made with. The set of implementations is
// closed: APIKey for plain calls, *Session for calls on behalf of a user and
// Credentials for signed calls made before a session exists.
type Auth interface {
	// authenticate adds the credential parameters to v and returns the
	// secret the call must be signed with, or "" for unsigned calls.
	authenticate(v url.Values) (secret string, err error)
}

// APIKey authenticates a plain, unsigned call.
type APIKey string

func (k APIKey) authenticate(v url.Values) (string, error) {
	if k == "" {
		return "", ErrNoCredentials
	}
	v.Set("api_key", string(k))
	return "", nil
}

// Credentials sign a call with the application secret without a session key.
// The auth.* methods that create sessions are called this way.
type Credentials struct {
	APIKey string
	Secret string
}

func (c Credentials) authenticate(v url.Values) (string, error) {
	if c.APIKey == "" || c.Secret == "" {
		return "", ErrNoCredentials
	}
	v.Set("api_key", c.APIKey)
	return c.Secret, nil
}

// Session is an authenticated credential for one user, obtained through the
// web or mobile login flow. Calls made with a Session are signed.
type Session struct {
	APIKey     string
	Secret     string
	Key        string
	Username   string
	Subscriber bool
}

func (s *Session) authenticate(v url.Values) (string, error) {
	if s == nil || s.Key == "" || s.APIKey == "" || s.Secret == "" {
		return "", ErrNoCredentials
	}
	v.Set("api_key", s.APIKey)
	v.Set("sk", s.Key)
	return s.Secret, nil
}

// unsignedParams are left out of the signature, matching the service.
var unsignedParams = map[string]bool{
	"api_sig":  true,
	"format":   true,
	"callback": true,
}

// Signature computes the api_sig value for a parameter set: every parameter
// except api_sig, format and callback, ordered by key, concatenated as
// key+value, followed by the secret, hashed with MD5 and hex encoded.
func Signature(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if !unsignedParams[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(params.Get(k))
	}
	b.WriteString(secret)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// buildSession reads an auth.getSession response. APIKey and Secret are not
// part of the payload; AuthService fills them in.
func buildSession(el *xmldoc.Element) (Session, error) {
	key, err := requireText(el, "session", "key")
	if err != nil {
		return Session{}, err
	}
	return Session{
		Key:        key,
		Username:   el.ChildText("name"),
		Subscriber: flag(el.ChildText("subscriber")),
	}, nil
}
