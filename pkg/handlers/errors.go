package handlers

import (
	"context"
	"errors"
	"net/http"

	"LastFM-Go/pkg/lastfm"
)

// statusForCode maps a Last.fm error code to the HTTP status reported to
// API clients.
func statusForCode(code int) int {
	switch code {
	case lastfm.CodeInvalidParameters:
		return http.StatusBadRequest
	case lastfm.CodeInvalidResource:
		return http.StatusNotFound
	case lastfm.CodeAuthenticationFailed, lastfm.CodeInvalidSessionKey, lastfm.CodeInvalidAPIKey, lastfm.CodeSuspendedAPIKey:
		return http.StatusForbidden
	case lastfm.CodeServiceOffline, lastfm.CodeTemporaryError:
		return http.StatusServiceUnavailable
	case lastfm.CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}

// respondError writes err as JSON with a status derived from its class.
func (app *Application) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		remote *lastfm.Error
		body   = errorResponse{Error: err.Error()}
		status = http.StatusBadGateway
	)
	switch {
	case errors.As(err, &remote):
		status = statusForCode(remote.Code)
		body = errorResponse{Error: remote.Message, Code: remote.Code}
	case errors.Is(err, lastfm.ErrNoCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads the answer.
		return
	}
	app.logger().WithError(err).WithFields(map[string]any{
		"path":   r.URL.Path,
		"status": status,
	}).Warn("request failed")
	respondJSON(w, status, body)
}
