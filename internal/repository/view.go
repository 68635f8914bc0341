package repository

import (
	"context"
	"fmt"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) RecordView(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO product_views (user_id, product_id) VALUES ($1, $2)`,
		userID, productID)
	if err != nil {
		return fmt.Errorf("insert product view: %w", err)
	}
	return nil
}

// AggregateViews runs the grouped aggregations over a user's view events
// that the profile recompute consumes: view counts by category and type,
// price stats over viewed products, and the most recently viewed distinct
// product ids.
func (r *Repository) AggregateViews(ctx context.Context, userID uuid.UUID) (*domain.ViewAggregate, error) {
	agg := &domain.ViewAggregate{}

	rows, err := r.pool.Query(ctx,
		`SELECT p.category_id, COUNT(*) AS views
		FROM product_views v
		JOIN products p ON p.id = v.product_id
		WHERE v.user_id = $1 AND p.category_id IS NOT NULL
		GROUP BY p.category_id
		ORDER BY views DESC
		LIMIT $2`, userID, domain.MaxPreferredCategories)
	if err != nil {
		return nil, fmt.Errorf("aggregate view categories for user %s: %w", userID, err)
	}
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.CategoryID, &c.Views); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		agg.CategoryCounts = append(agg.CategoryCounts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category counts: %w", err)
	}

	rows, err = r.pool.Query(ctx,
		`SELECT p.type, COUNT(*) AS views
		FROM product_views v
		JOIN products p ON p.id = v.product_id
		WHERE v.user_id = $1
		GROUP BY p.type
		ORDER BY views DESC
		LIMIT $2`, userID, domain.MaxPreferredTypes)
	if err != nil {
		return nil, fmt.Errorf("aggregate view types for user %s: %w", userID, err)
	}
	for rows.Next() {
		var t domain.TypeCount
		if err := rows.Scan(&t.Type, &t.Views); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		agg.TypeCounts = append(agg.TypeCounts, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate type counts: %w", err)
	}

	var stats domain.PriceStats
	var count int
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MIN(p.price), 0), COALESCE(MAX(p.price), 0), COALESCE(AVG(p.price), 0)
		FROM product_views v
		JOIN products p ON p.id = v.product_id
		WHERE v.user_id = $1`, userID,
	).Scan(&count, &stats.Min, &stats.Max, &stats.Avg)
	if err != nil {
		return nil, fmt.Errorf("aggregate view prices for user %s: %w", userID, err)
	}
	if count > 0 {
		agg.PriceStats = &stats
	}

	rows, err = r.pool.Query(ctx,
		`SELECT product_id
		FROM product_views
		WHERE user_id = $1
		GROUP BY product_id
		ORDER BY MAX(viewed_at) DESC
		LIMIT $2`, userID, domain.MaxBrowsingHistory)
	if err != nil {
		return nil, fmt.Errorf("query recent views for user %s: %w", userID, err)
	}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan recent view: %w", err)
		}
		agg.RecentProducts = append(agg.RecentProducts, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent views: %w", err)
	}

	return agg, nil
}
