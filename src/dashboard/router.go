package dashboard

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRoutes mounts the page, chart images and JSON API of h.
func SetupRoutes(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Dashboard is up and running!")
	})

	r.Get("/", h.Page)
	r.Get("/logo.png", h.Logo)

	r.Route("/charts", func(r chi.Router) {
		r.Get("/sentiment.png", h.SentimentChart)
		r.Get("/timeline.png", h.TimelineChart)
		r.Get("/wordcloud.png", h.WordCloudChart)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/sentiment", h.SentimentAPI)
		r.Get("/timeline", h.TimelineAPI)
		r.Get("/words", h.WordsAPI)
	})

	return r
}
