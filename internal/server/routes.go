package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/geoguess/internal/geoguess"
)

// Deps are the collaborators the HTTP routes are built from. Health,
// Silhouettes and Web are optional.
type Deps struct {
	Registry    *Registry
	Broker      *Broker
	Atlas       *geoguess.Atlas
	Health      http.Handler
	Silhouettes http.Handler
	Web         fs.FS
	MaxPlayers  int
}

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", handleSwaggerUI())
	if d.Health != nil {
		r.Mount("/healthz", d.Health)
	}
	if d.Silhouettes != nil {
		r.Mount("/assets/silhouettes", http.StripPrefix("/assets/silhouettes", d.Silhouettes))
	}

	r.Get("/api/countries", handleCountries(d.Atlas))
	r.Post("/api/sessions", handleCreateSession(d.Registry, d.MaxPlayers))

	// Session routes: {id} resolved by sessionMiddleware.
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(sessionMiddleware(d.Registry))
		r.Get("/", handleGetSession())
		r.Delete("/", handleDeleteSession(d.Registry))
		r.Get("/suggestions", handleSuggestions())
		r.Post("/guess", handleGuess())
		r.Post("/forfeit", handleForfeit())
		r.Get("/events", handleEvents(d.Registry, d.Broker))
		r.Get("/ws", handleSessionWS(logger, d.Registry, d.Broker))
	})

	if d.Web != nil {
		r.NotFound(handleSPA(d.Web))
	}
}
