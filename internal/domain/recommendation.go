package domain

import (
	"time"

	"github.com/google/uuid"
)

type RecommendationType string

const (
	TypeContentBased  RecommendationType = "content-based"
	TypeCollaborative RecommendationType = "collaborative"
	TypeAIPowered     RecommendationType = "ai-powered"
	TypeTrending      RecommendationType = "trending"
	TypePersonalized  RecommendationType = "personalized"
)

// RecommendationLog is an audit record created once per recommendation
// response. Click and conversion are set at most once each, later, by
// feedback calls.
type RecommendationLog struct {
	ID                    uuid.UUID          `json:"id"`
	UserID                *uuid.UUID         `json:"user_id,omitempty"`
	SessionID             *string            `json:"session_id,omitempty"`
	Type                  RecommendationType `json:"type"`
	SourceProductID       *uuid.UUID         `json:"source_product_id,omitempty"`
	RecommendedProductIDs []uuid.UUID        `json:"recommended_product_ids"`
	ClickedProductID      *uuid.UUID         `json:"clicked_product_id,omitempty"`
	Converted             bool               `json:"converted"`
	Metadata              map[string]any     `json:"metadata,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
}
