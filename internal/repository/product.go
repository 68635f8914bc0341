package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, title, slug, type, category_id, price, compare_at_price,
	thumbnail_url, rating, review_count, status, created_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Type, &p.CategoryID, &p.Price,
		&p.CompareAtPrice, &p.ThumbnailURL, &p.Rating, &p.ReviewCount, &p.Status, &p.CreatedAt)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	var items []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return items, nil
}

// Get single product
func (r *Repository) GetProductByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product id=%s: %w", productID, err)
	}
	return &p, nil
}

// Hydrate products for a set of ids. Order of the result is unspecified;
// callers reorder as needed.
func (r *Repository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}
	return collectProducts(rows)
}

// Published products in the given category, best-rated first, excluding the
// source product.
func (r *Repository) GetRelatedByCategory(ctx context.Context, categoryID *uuid.UUID, excludeID uuid.UUID, limit int) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+`
		FROM products
		WHERE status = 'published'
		  AND id <> $1
		  AND ($2::uuid IS NULL OR category_id = $2)
		ORDER BY rating DESC, review_count DESC
		LIMIT $3`, excludeID, categoryID, limit)
	if err != nil {
		return nil, fmt.Errorf("query related products for %s: %w", excludeID, err)
	}
	return collectProducts(rows)
}

// Top-rated published products excluding the given ids (candidate pool for
// the AI path).
func (r *Repository) GetTopRatedExcluding(ctx context.Context, exclude []uuid.UUID, limit int) ([]domain.Product, error) {
	if exclude == nil {
		exclude = []uuid.UUID{}
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+`
		FROM products
		WHERE status = 'published'
		  AND NOT (id = ANY($1))
		ORDER BY rating DESC, review_count DESC
		LIMIT $2`, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("query top rated products: %w", err)
	}
	return collectProducts(rows)
}

// Published catalog filtered by a preference profile: category allow-list
// when non-empty, price band when set, purchased ids excluded.
func (r *Repository) GetPersonalizedFeed(ctx context.Context, categories []uuid.UUID, priceMin, priceMax *float64, exclude []uuid.UUID, limit int) ([]domain.Product, error) {
	if exclude == nil {
		exclude = []uuid.UUID{}
	}
	if categories == nil {
		categories = []uuid.UUID{}
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+`
		FROM products
		WHERE status = 'published'
		  AND NOT (id = ANY($1))
		  AND (cardinality($2::uuid[]) = 0 OR category_id = ANY($2))
		  AND ($3::float8 IS NULL OR price >= $3)
		  AND ($4::float8 IS NULL OR price <= $4)
		ORDER BY rating DESC, review_count DESC
		LIMIT $5`, exclude, categories, priceMin, priceMax, limit)
	if err != nil {
		return nil, fmt.Errorf("query personalized feed: %w", err)
	}
	return collectProducts(rows)
}
