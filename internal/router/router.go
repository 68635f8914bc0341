package router

import (
	"net/http"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/products/{productID}/similar", h.GetSimilarProducts)
	r.Get("/users/{userID}/recommendations", h.GetAIRecommendations)
	r.Get("/users/{userID}/feed", h.GetForYouFeed)
	r.Get("/users/{userID}/profile", h.GetProfile)
	r.Post("/users/{userID}/profile/recompute", h.RecomputeProfile)
	r.Post("/users/{userID}/views", h.RecordView)
	r.Post("/recommendations/{logID}/click", h.RecordClick)
	r.Post("/recommendations/{logID}/conversion", h.RecordConversion)
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
