package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}

// ViewAggregate is the result of grouping a user's view events joined to
// product metadata, consumed by the profile recompute.
type ViewAggregate struct {
	CategoryCounts []CategoryCount
	TypeCounts     []TypeCount
	PriceStats     *PriceStats
	RecentProducts []uuid.UUID
}

type CategoryCount struct {
	CategoryID uuid.UUID
	Views      int
}

type TypeCount struct {
	Type  string
	Views int
}

type PriceStats struct {
	Min float64
	Max float64
	Avg float64
}
