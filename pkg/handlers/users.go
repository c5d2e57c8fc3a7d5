package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"LastFM-Go/pkg/db"
	"LastFM-Go/pkg/lastfm"
)

func pathUser(r *http.Request) string {
	return chi.URLParam(r, "user")
}

// queryInt reads an optional positive integer query parameter. Absent
// parameters yield -1 so the entry point omits them. Invalid values are
// answered with 400.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return -1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		respondJSONError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

// UserJSON returns the profile of {user}.
func (app *Application) UserJSON(w http.ResponseWriter, r *http.Request) {
	u, err := app.Client.User.Info(r.Context(), pathUser(r))
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// RecentTracksJSON returns one page of the tracks {user} listened to. The
// plays are also recorded in the local history when a database is
// configured.
func (app *Application) RecentTracksJSON(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	user := pathUser(r)
	res, err := app.Client.User.RecentTracks(r.Context(), user, page, limit, false)
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	app.recordPlays(r, user, res.Items)
	respondJSON(w, http.StatusOK, newPage(res))
}

func (app *Application) recordPlays(r *http.Request, user string, tracks []lastfm.Track) {
	if app.DB == nil || len(tracks) == 0 {
		return
	}
	plays := make([]db.Scrobble, 0, len(tracks))
	for _, t := range tracks {
		plays = append(plays, db.Scrobble{Artist: t.Artist, Track: t.Name, Album: t.Album, PlayedAt: t.PlayedWhen})
	}
	n, err := app.DB.AddScrobbles(r.Context(), user, plays)
	if err != nil {
		app.logger().WithError(err).WithField("user", user).Warn("record scrobbles")
		return
	}
	if n > 0 {
		app.logger().WithField("user", user).WithField("new", n).Debug("recorded scrobbles")
	}
}

// TopJSON returns the top artists, albums, tracks or tags of {user}.
func (app *Application) TopJSON(w http.ResponseWriter, r *http.Request) {
	period, err := lastfm.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid period")
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	ctx, user := r.Context(), pathUser(r)

	var items any
	switch chi.URLParam(r, "kind") {
	case "artists":
		items, err = app.Client.User.TopArtists(ctx, user, period, limit)
	case "albums":
		items, err = app.Client.User.TopAlbums(ctx, user, period, limit)
	case "tracks":
		items, err = app.Client.User.TopTracks(ctx, user, period, limit)
	case "tags":
		items, err = app.Client.User.TopTags(ctx, user, limit)
	default:
		respondJSONError(w, http.StatusNotFound, "unknown top list")
		return
	}
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"period": period, "items": items})
}

// ChartListJSON returns the weekly chart ranges available for {user}.
func (app *Application) ChartListJSON(w http.ResponseWriter, r *http.Request) {
	ranges, err := app.Client.User.WeeklyChartList(r.Context(), pathUser(r))
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	type rangeResponse struct {
		From int64 `json:"from"`
		To   int64 `json:"to"`
	}
	out := make([]rangeResponse, 0, len(ranges))
	for _, c := range ranges {
		out = append(out, rangeResponse{From: c.From.Unix(), To: c.To.Unix()})
	}
	respondJSON(w, http.StatusOK, out)
}

// ChartJSON returns a weekly album, artist or track chart of {user}. The
// optional from and to parameters select a range from the chart list; the
// latest week is returned without them.
func (app *Application) ChartJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if (from == "") != (to == "") {
		respondJSONError(w, http.StatusBadRequest, "from and to must be given together")
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	ctx, user := r.Context(), pathUser(r)

	var (
		out any
		err error
	)
	switch chi.URLParam(r, "kind") {
	case "albums":
		var c lastfm.Chart[lastfm.Album]
		c, err = app.Client.User.WeeklyAlbumChart(ctx, user, from, to, limit)
		out = newChart(c)
	case "artists":
		var c lastfm.Chart[lastfm.Artist]
		c, err = app.Client.User.WeeklyArtistChart(ctx, user, from, to, limit)
		out = newChart(c)
	case "tracks":
		var c lastfm.Chart[lastfm.Track]
		c, err = app.Client.User.WeeklyTrackChart(ctx, user, from, to, limit)
		out = newChart(c)
	default:
		respondJSONError(w, http.StatusNotFound, "unknown chart")
		return
	}
	if err != nil {
		app.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
