package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	StatusDraft     ProductStatus = "draft"
	StatusPublished ProductStatus = "published"
	StatusArchived  ProductStatus = "archived"
)

type Product struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Type           string        `json:"type"`
	CategoryID     *uuid.UUID    `json:"category_id,omitempty"`
	Price          float64       `json:"price"`
	CompareAtPrice *float64      `json:"compare_at_price,omitempty"`
	ThumbnailURL   *string       `json:"thumbnail_url,omitempty"`
	Rating         float64       `json:"rating"`
	ReviewCount    int           `json:"review_count"`
	Status         ProductStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}

// RecommendedProduct is the projection returned to callers. Reason is only
// populated on the AI-powered path.
type RecommendedProduct struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Price          float64    `json:"price"`
	CompareAtPrice *float64   `json:"compare_at_price,omitempty"`
	ThumbnailURL   *string    `json:"thumbnail_url,omitempty"`
	Rating         float64    `json:"rating"`
	ReviewCount    int        `json:"review_count"`
	Type           string     `json:"type"`
	Reason         string     `json:"reason,omitempty"`
}

func (p *Product) Recommended() RecommendedProduct {
	return RecommendedProduct{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		ThumbnailURL:   p.ThumbnailURL,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		Type:           p.Type,
	}
}
