package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseLimit(r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, true
	}
	parsed, err := strconv.Atoi(limitStr)
	if err != nil || parsed < 1 || parsed > 50 {
		return 0, false
	}
	return parsed, true
}

func writeRecommendations(w http.ResponseWriter, recs []domain.RecommendedProduct) {
	if recs == nil {
		recs = []domain.RecommendedProduct{}
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{
		Recommendations: recs,
		TotalCount:      len(recs),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidLimit) || errors.Is(err, domain.ErrInvalidID) {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}

// GET /products/{productID}/similar
func (h *Handler) GetSimilarProducts(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseUUIDParam(r, "productID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid product id")
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	recs, err := h.service.GetSimilarProducts(r.Context(), productID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeRecommendations(w, recs)
}

// GET /users/{userID}/recommendations
func (h *Handler) GetAIRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id")
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}
	userContext := r.URL.Query().Get("context")

	recs, err := h.service.GetAIRecommendations(r.Context(), userID, userContext, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeRecommendations(w, recs)
}

// GET /users/{userID}/feed
func (h *Handler) GetForYouFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id")
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	recs, err := h.service.GetForYouFeed(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeRecommendations(w, recs)
}
