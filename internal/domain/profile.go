package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxPreferredCategories = 5
	MaxPreferredTypes      = 5
	MaxBrowsingHistory     = 20
)

// UserPreferenceProfile is one row per user, lazily created on first access
// and rebuilt only by the profile recompute operation. An unset price band
// means "no price filter", never a zero-width band.
type UserPreferenceProfile struct {
	UserID              uuid.UUID   `json:"user_id"`
	PreferredCategories []uuid.UUID `json:"preferred_categories"`
	PreferredTypes      []string    `json:"preferred_types"`
	PriceRangeMin       *float64    `json:"price_range_min,omitempty"`
	PriceRangeMax       *float64    `json:"price_range_max,omitempty"`
	BrowsingHistory     []uuid.UUID `json:"browsing_history"`
	PurchaseHistory     []uuid.UUID `json:"purchase_history"`
	FeatureVector       []float64   `json:"feature_vector,omitempty"`
	LastComputedAt      time.Time   `json:"last_computed_at"`
}

func (p *UserPreferenceProfile) HasPriceBand() bool {
	return p.PriceRangeMin != nil && p.PriceRangeMax != nil
}

// SeenProductIDs is the union of browsing and purchase history, deduplicated.
func (p *UserPreferenceProfile) SeenProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(p.BrowsingHistory)+len(p.PurchaseHistory))
	ids := make([]uuid.UUID, 0, len(p.BrowsingHistory)+len(p.PurchaseHistory))
	for _, list := range [][]uuid.UUID{p.BrowsingHistory, p.PurchaseHistory} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
