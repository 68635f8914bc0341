// Package seeds populates a fresh database with a small marketplace catalog
// for local development.
package seeds

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	numProducts     = 60
	numUsers        = 15
	numViews        = 300
	numSimilarities = 120
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE recommendation_logs, user_preference_profiles, product_similarities, product_views, products CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting products")
	productIDs, err := seedProducts(ctx, pool, rng)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	log.Println("[seed] inserting product views")
	if err := seedViews(ctx, pool, rng, productIDs); err != nil {
		return fmt.Errorf("seed views: %w", err)
	}

	log.Println("[seed] inserting similarities")
	if err := seedSimilarities(ctx, pool, rng, productIDs); err != nil {
		return fmt.Errorf("seed similarities: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

func seedProducts(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) ([]uuid.UUID, error) {
	types := []string{"ebook", "template", "course", "graphic", "plugin"}
	adjectives := []string{"Ultimate", "Complete", "Modern", "Practical", "Essential", "Advanced", "Minimal", "Pro"}
	topics := []string{"Marketing", "Photography", "Web Design", "Copywriting", "Budgeting", "Branding", "SEO", "Illustration"}

	categories := make([]uuid.UUID, 6)
	for i := range categories {
		categories[i] = uuid.New()
	}

	ids := make([]uuid.UUID, 0, numProducts)
	rows := []string{}
	args := []any{}

	for i := 0; i < numProducts; i++ {
		id := uuid.New()
		ids = append(ids, id)

		kind := types[rng.Intn(len(types))]
		title := fmt.Sprintf("%s %s %s",
			adjectives[rng.Intn(len(adjectives))],
			topics[rng.Intn(len(topics))],
			strings.ToUpper(kind[:1])+kind[1:])
		slug := fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(title, " ", "-")), i)
		productType := types[rng.Intn(len(types))]
		category := categories[rng.Intn(len(categories))]
		price := float64(rng.Intn(190)+10) + 0.99
		rating := 2.5 + rng.Float64()*2.5
		reviews := rng.Intn(500)
		status := "published"
		if rng.Float64() < 0.1 {
			status = "draft"
		}
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10))
		args = append(args, id, title, slug, productType, category, price, rating, reviews, status, createdAt)
	}

	query := `INSERT INTO products
		(id, title, slug, type, category_id, price, rating, review_count, status, created_at)
		VALUES ` + strings.Join(rows, ", ")
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return nil, err
	}
	return ids, nil
}

func seedViews(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, productIDs []uuid.UUID) error {
	users := make([]uuid.UUID, numUsers)
	for i := range users {
		users[i] = uuid.New()
	}

	rows := []string{}
	args := []any{}

	for i := 0; i < numViews; i++ {
		user := users[rng.Intn(len(users))]
		product := productIDs[rng.Intn(len(productIDs))]
		viewedAt := time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, user, product, viewedAt)
	}

	query := `INSERT INTO product_views (user_id, product_id, viewed_at) VALUES ` + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedSimilarities(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, productIDs []uuid.UUID) error {
	seen := make(map[[2]uuid.UUID]struct{})
	rows := []string{}
	args := []any{}

	for len(seen) < numSimilarities {
		a := productIDs[rng.Intn(len(productIDs))]
		b := productIDs[rng.Intn(len(productIDs))]
		if a == b {
			continue
		}
		// Store the pair ordered so the uniqueness constraint holds.
		if strings.Compare(a.String(), b.String()) > 0 {
			a, b = b, a
		}
		key := [2]uuid.UUID{a, b}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		content := rng.Float64()
		collaborative := rng.Float64()
		overall := 0.6*content + 0.4*collaborative

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, a, b, overall, content, collaborative)
	}

	query := `INSERT INTO product_similarities
		(product_a_id, product_b_id, overall_score, content_score, collaborative_score)
		VALUES ` + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}
