package handlers

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"LastFM-Go/pkg/db"
	"LastFM-Go/pkg/lastfm"
)

const insightsTopLimit = 10

type insightsResponse struct {
	User         lastfm.User                `json:"user"`
	TopArtists   []lastfm.Artist            `json:"top_artists"`
	RecentTracks pageResponse[lastfm.Track] `json:"recent_tracks"`
}

// InsightsJSON combines the profile, the top artists of the last week and
// the latest plays of {user}. The three calls run concurrently; the first
// failure cancels the others and decides the response.
func (app *Application) InsightsJSON(w http.ResponseWriter, r *http.Request) {
	user := pathUser(r)
	var out insightsResponse

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		u, err := app.Client.User.Info(ctx, user)
		out.User = u
		return err
	})
	g.Go(func() error {
		artists, err := app.Client.User.TopArtists(ctx, user, lastfm.PeriodSevenDays, insightsTopLimit)
		out.TopArtists = artists
		return err
	})
	g.Go(func() error {
		recent, err := app.Client.User.RecentTracks(ctx, user, 1, insightsTopLimit, false)
		out.RecentTracks = newPage(recent)
		return err
	})
	if err := g.Wait(); err != nil {
		app.respondError(w, r, err)
		return
	}
	if out.TopArtists == nil {
		out.TopArtists = []lastfm.Artist{}
	}
	respondJSON(w, http.StatusOK, out)
}

type historyResponse struct {
	Since   int64            `json:"since"`
	Artists []db.ArtistCount `json:"artists"`
	Tracks  []db.TrackCount  `json:"tracks"`
	Months  []db.MonthCount  `json:"months"`
}

// HistoryJSON summarizes the plays of {user} recorded locally over the last
// 'days' days (default 30).
func (app *Application) HistoryJSON(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "history not configured")
		return
	}
	days := 30
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondJSONError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = n
	}
	user := pathUser(r)
	since := time.Now().AddDate(0, 0, -days)

	var (
		out = historyResponse{Since: since.Unix()}
		err error
	)
	if out.Artists, err = app.DB.TopArtistsSince(r.Context(), user, since); err == nil {
		if out.Tracks, err = app.DB.TopTracksSince(r.Context(), user, since); err == nil {
			out.Months, err = app.DB.MonthlyPlayCountsSince(r.Context(), user, since)
		}
	}
	if err != nil {
		app.logger().WithError(err).WithField("user", user).Error("load history")
		respondJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if out.Artists == nil {
		out.Artists = []db.ArtistCount{}
	}
	if out.Tracks == nil {
		out.Tracks = []db.TrackCount{}
	}
	if out.Months == nil {
		out.Months = []db.MonthCount{}
	}
	respondJSON(w, http.StatusOK, out)
}
