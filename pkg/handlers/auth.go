package handlers

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"LastFM-Go/pkg/db"
	"LastFM-Go/pkg/lastfm"
)

const (
	userCookie = "lastfm_user"
	csrfCookie = "csrf_token"
	csrfHeader = "X-CSRF-Token"
)

// signValue computes an HMAC signature for value and appends it using the
// format value|signature. The signature is base64 URL encoded so it can be
// stored in cookies.
func signValue(value string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	sig := mac.Sum(nil)
	return value + "|" + base64.RawURLEncoding.EncodeToString(sig)
}

// verifyValue checks the HMAC signature appended to signed. It returns the
// original value and true when the signature matches key.
func verifyValue(signed string, key []byte) (string, bool) {
	i := strings.LastIndexByte(signed, '|')
	if i < 0 {
		return "", false
	}
	value, encoded := signed[:i], signed[i+1:]
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	expected := mac.Sum(nil)
	sig, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || !hmac.Equal(expected, sig) {
		return "", false
	}
	return value, true
}

// setCSRFToken generates a random token and stores it in a cookie readable by
// client scripts, which must echo it in the X-CSRF-Token header.
func setCSRFToken(w http.ResponseWriter, secure bool) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    token,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// verifyCSRF compares the X-CSRF-Token header with the csrf_token cookie in
// constant time.
func verifyCSRF(r *http.Request) bool {
	c, err := r.Cookie(csrfCookie)
	if err != nil {
		return false
	}
	header := r.Header.Get(csrfHeader)
	if header == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(header)) == 1
}

// userFromCookie returns the verified Last.fm username from the request
// cookie.
func (app *Application) userFromCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(userCookie)
	if err != nil {
		return "", err
	}
	if v, ok := verifyValue(c.Value, app.SignKey); ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("invalid signature")
}

// requireUser enforces authentication. It writes a 401 response on failure,
// or 403 when a state-changing request lacks a valid CSRF token.
func (app *Application) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := app.userFromCookie(r)
	if err != nil {
		respondJSONError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead && !verifyCSRF(r) {
		respondJSONError(w, http.StatusForbidden, "invalid csrf token")
		return "", false
	}
	return name, true
}

// requireSession resolves the stored Last.fm session of the signed-in user.
func (app *Application) requireSession(w http.ResponseWriter, r *http.Request) (*lastfm.Session, bool) {
	name, ok := app.requireUser(w, r)
	if !ok {
		return nil, false
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "session store not configured")
		return nil, false
	}
	s, err := app.DB.GetSession(r.Context(), name)
	if errors.Is(err, sql.ErrNoRows) {
		respondJSONError(w, http.StatusUnauthorized, "no session stored for user")
		return nil, false
	}
	if err != nil {
		app.logger().WithError(err).WithField("user", name).Error("load session")
		respondJSONError(w, http.StatusInternalServerError, "failed to load session")
		return nil, false
	}
	return app.Client.Session(s.Key, s.Username), true
}

// AuthTokenJSON fetches a fresh request token and returns it with the URL the
// user must visit to authorize it.
func (app *Application) AuthTokenJSON(w http.ResponseWriter, r *http.Request) {
	token, err := app.Client.Auth.Token(r.Context())
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"url":   app.Client.Auth.AuthURL(token),
	})
}

type sessionRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	Username   string `json:"username"`
	Subscriber bool   `json:"subscriber"`
	CSRFToken  string `json:"csrf_token"`
}

// CreateSession exchanges an authorized request token for a session key,
// stores it and signs the user in.
func (app *Application) CreateSession(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "session store not configured")
		return
	}
	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		respondJSONError(w, http.StatusBadRequest, "invalid request")
		return
	}
	s, err := app.Client.Auth.Session(r.Context(), req.Token)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	err = app.DB.SaveSession(r.Context(), db.Session{Username: s.Username, Key: s.Key, Subscriber: s.Subscriber})
	if err != nil {
		app.logger().WithError(err).WithField("user", s.Username).Error("save session")
		respondJSONError(w, http.StatusInternalServerError, "failed to save session")
		return
	}
	secure := r.TLS != nil
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    signValue(s.Username, app.SignKey),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	csrf, err := setCSRFToken(w, secure)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "csrf token")
		return
	}
	respondJSON(w, http.StatusCreated, sessionResponse{Username: s.Username, Subscriber: s.Subscriber, CSRFToken: csrf})
}

// DeleteSession forgets the stored session key and expires the cookies.
func (app *Application) DeleteSession(w http.ResponseWriter, r *http.Request) {
	name, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB != nil {
		if err := app.DB.DeleteSession(r.Context(), name); err != nil && !errors.Is(err, sql.ErrNoRows) {
			app.logger().WithError(err).WithField("user", name).Error("delete session")
			respondJSONError(w, http.StatusInternalServerError, "failed to delete session")
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{Name: csrfCookie, Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// MeJSON returns the profile of the signed-in user through a signed call.
func (app *Application) MeJSON(w http.ResponseWriter, r *http.Request) {
	s, ok := app.requireSession(w, r)
	if !ok {
		return
	}
	u, err := app.Client.User.SessionInfo(r.Context(), s)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// RecommendedArtistsJSON lists the artists Last.fm recommends to the
// signed-in user.
func (app *Application) RecommendedArtistsJSON(w http.ResponseWriter, r *http.Request) {
	s, ok := app.requireSession(w, r)
	if !ok {
		return
	}
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	res, err := app.Client.User.RecommendedArtists(r.Context(), s, page)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newPage(res))
}

type shoutRequest struct {
	Message string `json:"message"`
}

// ShoutJSON posts a message on the shoutbox of {user} as the signed-in user.
func (app *Application) ShoutJSON(w http.ResponseWriter, r *http.Request) {
	s, ok := app.requireSession(w, r)
	if !ok {
		return
	}
	var req shoutRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Message) == "" {
		respondJSONError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if _, err := app.Client.User.Shout(r.Context(), s, pathUser(r), req.Message); err != nil {
		app.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
