package repository

import (
	"context"
	"fmt"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

// InsertRecommendationLog persists an audit record and returns its id.
func (r *Repository) InsertRecommendationLog(ctx context.Context, log *domain.RecommendationLog) (uuid.UUID, error) {
	ids := log.RecommendedProductIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}

	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO recommendation_logs
			(user_id, session_id, type, source_product_id, recommended_product_ids, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		log.UserID, log.SessionID, log.Type, log.SourceProductID, ids, log.Metadata,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert recommendation log: %w", err)
	}
	return id, nil
}

func (r *Repository) SetLogClick(ctx context.Context, logID, productID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE recommendation_logs SET clicked_product_id = $2 WHERE id = $1`,
		logID, productID)
	if err != nil {
		return fmt.Errorf("update log click id=%s: %w", logID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLogNotFound
	}
	return nil
}

func (r *Repository) SetLogConverted(ctx context.Context, logID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE recommendation_logs SET converted = TRUE WHERE id = $1`,
		logID)
	if err != nil {
		return fmt.Errorf("update log conversion id=%s: %w", logID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLogNotFound
	}
	return nil
}
