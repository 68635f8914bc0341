package repository

import (
	"context"
	"fmt"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

// Precomputed similarity rows where either side of the pair matches the
// given product, strongest first.
func (r *Repository) GetSimilaritiesForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]domain.ProductSimilarity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT product_a_id, product_b_id, overall_score, content_score, collaborative_score, computed_at
		FROM product_similarities
		WHERE product_a_id = $1 OR product_b_id = $1
		ORDER BY overall_score DESC
		LIMIT $2`, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("query similarities for product %s: %w", productID, err)
	}
	defer rows.Close()

	var items []domain.ProductSimilarity
	for rows.Next() {
		var s domain.ProductSimilarity
		err := rows.Scan(&s.ProductAID, &s.ProductBID, &s.OverallScore,
			&s.ContentScore, &s.CollaborativeScore, &s.ComputedAt)
		if err != nil {
			return nil, fmt.Errorf("scan similarity: %w", err)
		}
		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarities: %w", err)
	}
	return items, nil
}
