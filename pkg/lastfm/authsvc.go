package lastfm

import (
	"context"
	"fmt"
	"net/url"
)

// AuthURLBase is the page a user grants an application access on.
const AuthURLBase = "https://www.last.fm/api/auth/"

// AuthService binds the auth.* methods of the desktop login flow: fetch a
// token, send the user to AuthURL, then exchange the token for a Session.
type AuthService struct {
	client *Client
}

func (s *AuthService) credentials() Credentials {
	return Credentials{APIKey: s.client.apiKey, Secret: s.client.secret}
}

// Token requests an unauthorized request token.
func (s *AuthService) Token(ctx context.Context) (string, error) {
	res, err := s.client.caller.Call(ctx, "auth.getToken", s.credentials(), nil)
	if err != nil {
		return "", err
	}
	token := res.Content().Text()
	if token == "" {
		return "", fmt.Errorf("%w: auth.getToken: empty token", ErrMalformedResponse)
	}
	return token, nil
}

// AuthURL returns the page the user has to visit to authorize token.
func (s *AuthService) AuthURL(token string) string {
	v := url.Values{}
	v.Set("api_key", s.client.apiKey)
	if token != "" {
		v.Set("token", token)
	}
	return AuthURLBase + "?" + v.Encode()
}

// Session exchanges an authorized token for a session. The returned Session
// carries the client's key and secret and can be used for signed calls.
func (s *AuthService) Session(ctx context.Context, token string) (*Session, error) {
	res, err := s.client.caller.Call(ctx, "auth.getSession", s.credentials(), map[string]string{"token": token})
	if err != nil {
		return nil, err
	}
	sess, err := BuildResultItem(res, SessionKind)
	if err != nil {
		return nil, err
	}
	sess.APIKey = s.client.apiKey
	sess.Secret = s.client.secret
	return &sess, nil
}
