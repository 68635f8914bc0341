package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

type recordClickRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

// POST /recommendations/{logID}/click
func (h *Handler) RecordClick(w http.ResponseWriter, r *http.Request) {
	logID, ok := parseUUIDParam(r, "logID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid log id")
		return
	}

	var req recordClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid request body")
		return
	}

	if err := h.service.RecordClick(r.Context(), logID, req.ProductID); err != nil {
		if errors.Is(err, domain.ErrLogNotFound) {
			writeError(w, http.StatusNotFound, "log_not_found", "Recommendation log does not exist")
			return
		}
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /recommendations/{logID}/conversion
func (h *Handler) RecordConversion(w http.ResponseWriter, r *http.Request) {
	logID, ok := parseUUIDParam(r, "logID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid log id")
		return
	}

	if err := h.service.RecordConversion(r.Context(), logID); err != nil {
		if errors.Is(err, domain.ErrLogNotFound) {
			writeError(w, http.StatusNotFound, "log_not_found", "Recommendation log does not exist")
			return
		}
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
