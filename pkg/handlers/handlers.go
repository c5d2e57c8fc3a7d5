// Package handlers exposes the Last.fm client as a small JSON HTTP API. The
// Application bundles the dependencies shared by every handler; Routes wires
// them onto a chi router.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"LastFM-Go/pkg/db"
	"LastFM-Go/pkg/lastfm"
)

// Application holds the dependencies of the HTTP handlers.
type Application struct {
	Client *lastfm.Client
	// DB is optional. Without it session routes answer 503 and scrobbles
	// are not recorded.
	DB      *db.DB
	SignKey []byte
	Log     logrus.FieldLogger
	// RateLimit is the number of API requests allowed per client IP and
	// minute. Zero disables limiting.
	RateLimit int
}

func (app *Application) logger() logrus.FieldLogger {
	if app.Log == nil {
		return logrus.StandardLogger()
	}
	return app.Log
}

// Routes returns the handler serving every route of the API.
func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestContext)
	r.Use(app.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	r.Use(SecurityHeaders)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if app.RateLimit > 0 {
			r.Use(RateLimit(app.RateLimit, time.Minute))
		}
		r.Get("/auth/token", app.AuthTokenJSON)
		r.Post("/session", app.CreateSession)
		r.Delete("/session", app.DeleteSession)

		r.Route("/users/{user}", func(r chi.Router) {
			r.Get("/", app.UserJSON)
			r.Get("/recent", app.RecentTracksJSON)
			r.Get("/top/{kind}", app.TopJSON)
			r.Get("/charts", app.ChartListJSON)
			r.Get("/charts/{kind}", app.ChartJSON)
			r.Get("/insights", app.InsightsJSON)
			r.Get("/history", app.HistoryJSON)
			r.Post("/shouts", app.ShoutJSON)
		})

		r.Get("/me", app.MeJSON)
		r.Get("/me/recommended/artists", app.RecommendedArtistsJSON)
	})
	return r
}
