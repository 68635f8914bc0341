package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `user_id, preferred_categories, preferred_types, price_range_min,
	price_range_max, browsing_history, purchase_history, feature_vector, last_computed_at`

func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserPreferenceProfile, error) {
	p := &domain.UserPreferenceProfile{}

	err := r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_preference_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.PreferredCategories, &p.PreferredTypes, &p.PriceRangeMin,
		&p.PriceRangeMax, &p.BrowsingHistory, &p.PurchaseHistory, &p.FeatureVector, &p.LastComputedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("query profile user=%s: %w", userID, err)
	}
	return p, nil
}

// InsertProfileIfAbsent creates an empty profile row. Concurrent callers
// racing to create the same user's profile are resolved by the unique
// user_id constraint; losers are a no-op.
func (r *Repository) InsertProfileIfAbsent(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_preference_profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("insert profile user=%s: %w", userID, err)
	}
	return nil
}

func (r *Repository) UpdateProfile(ctx context.Context, p *domain.UserPreferenceProfile) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_preference_profiles
		SET preferred_categories = $2,
		    preferred_types = $3,
		    price_range_min = $4,
		    price_range_max = $5,
		    browsing_history = $6,
		    last_computed_at = $7
		WHERE user_id = $1`,
		p.UserID, p.PreferredCategories, p.PreferredTypes, p.PriceRangeMin,
		p.PriceRangeMax, p.BrowsingHistory, p.LastComputedAt)
	if err != nil {
		return fmt.Errorf("update profile user=%s: %w", p.UserID, err)
	}
	return nil
}
