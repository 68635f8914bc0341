package handler

import "github.com/ABDULS21985/vivaexcel-sub014/internal/domain"

type RecommendationResponse struct {
	Recommendations []domain.RecommendedProduct `json:"recommendations"`
	TotalCount      int                         `json:"total_count"`
	GeneratedAt     string                      `json:"generated_at"`
}

type ProfileResponse struct {
	Profile *domain.UserPreferenceProfile `json:"profile"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
