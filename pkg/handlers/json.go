package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"LastFM-Go/pkg/lastfm"
)

// decodeJSON reads the request body into v. The body is limited to 1MB and
// unknown fields are rejected.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1MB
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New("empty body")
		}
		return err
	}
	if dec.More() {
		return errors.New("extra data in request body")
	}
	return nil
}

// errorResponse is the body of every non-2xx answer. Code carries the
// Last.fm error code when the failure came from the web service.
type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondJSONError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// pageResponse is the JSON form of a lastfm.PaginatedResult.
type pageResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	PerPage    int `json:"per_page,omitempty"`
	Total      int `json:"total,omitempty"`
}

func newPage[T any](p lastfm.PaginatedResult[T]) pageResponse[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return pageResponse[T]{Items: items, Page: p.Page, TotalPages: p.TotalPages, PerPage: p.PerPage, Total: p.Total}
}

// chartResponse is the JSON form of a lastfm.Chart.
type chartResponse[T any] struct {
	pageResponse[T]
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

func newChart[T any](c lastfm.Chart[T]) chartResponse[T] {
	out := chartResponse[T]{pageResponse: newPage(c.PaginatedResult)}
	if !c.From.IsZero() {
		out.From = c.From.Unix()
	}
	if !c.To.IsZero() {
		out.To = c.To.Unix()
	}
	return out
}
