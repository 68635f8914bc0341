package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductSimilarity is a precomputed pairwise score written by an offline
// batch job. At most one row exists per unordered pair, so lookups must
// match either side.
type ProductSimilarity struct {
	ProductAID         uuid.UUID `json:"product_a_id"`
	ProductBID         uuid.UUID `json:"product_b_id"`
	OverallScore       float64   `json:"overall_score"`
	ContentScore       float64   `json:"content_score"`
	CollaborativeScore float64   `json:"collaborative_score"`
	ComputedAt         time.Time `json:"computed_at"`
}

// Other returns the side of the pair that is not the given product.
func (s *ProductSimilarity) Other(productID uuid.UUID) uuid.UUID {
	if s.ProductAID == productID {
		return s.ProductBID
	}
	return s.ProductAID
}
