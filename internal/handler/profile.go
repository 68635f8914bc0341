package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// GET /users/{userID}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id")
		return
	}

	profile, err := h.service.GetOrCreateProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

// POST /users/{userID}/profile/recompute
func (h *Handler) RecomputeProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id")
		return
	}

	profile, err := h.service.RecomputeProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Profile: profile})
}

type recordViewRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

// POST /users/{userID}/views
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id")
		return
	}

	var req recordViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid request body")
		return
	}

	if err := h.service.RecordProductView(r.Context(), userID, req.ProductID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
