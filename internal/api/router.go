package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "threadline/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a chi router with all the application's routes.
func NewRouter(threadHandler *ThreadHandler, chatHandler *ChatHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe for container orchestration.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Standard JSON endpoints get a request timeout so client
		// connections cannot hang indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/threads", threadHandler.GetThreads)
			r.Post("/threads", threadHandler.CreateThread)
			r.Get("/threads/{threadID}", threadHandler.GetThread)
			r.Patch("/threads/{threadID}", threadHandler.UpdateThread)
			r.Delete("/threads/{threadID}", threadHandler.DeleteThread)

			r.Get("/threads/{threadID}/messages", threadHandler.GetMessages)
			r.Post("/threads/{threadID}/messages", threadHandler.CreateMessage)

			r.Post("/generate-title", chatHandler.GenerateTitle)
		})

		// Streaming endpoints hold the connection open and must not be
		// subject to the timeout middleware.
		r.Group(func(r chi.Router) {
			r.Post("/threads/{threadID}/send", chatHandler.SendMessage)
		})
	})

	return r
}
