package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

// GetOrCreateProfile returns the user's preference profile, creating an
// empty one on first access. Concurrent first access is resolved by the
// store's unique user_id constraint: losers of the insert race re-read the
// winner's row.
func (s *Service) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*domain.UserPreferenceProfile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	if err := s.store.InsertProfileIfAbsent(ctx, userID); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return s.store.GetProfile(ctx, userID)
}

// RecomputeProfile rebuilds the derived preference fields from the user's
// view events and persists the result. Purchase history is appended by
// external order handling and is not touched here.
func (s *Service) RecomputeProfile(ctx context.Context, userID uuid.UUID) (*domain.UserPreferenceProfile, error) {
	profile, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	agg, err := s.store.AggregateViews(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate views: %w", err)
	}

	categories := make([]uuid.UUID, 0, len(agg.CategoryCounts))
	for _, c := range agg.CategoryCounts {
		categories = append(categories, c.CategoryID)
	}
	types := make([]string, 0, len(agg.TypeCounts))
	for _, t := range agg.TypeCounts {
		types = append(types, t.Type)
	}

	profile.PreferredCategories = categories
	profile.PreferredTypes = types
	profile.BrowsingHistory = agg.RecentProducts
	if profile.BrowsingHistory == nil {
		profile.BrowsingHistory = []uuid.UUID{}
	}

	// Wide band around average viewed price. Downstream feed filtering
	// assumes exactly this width; a user with no views keeps no band at all.
	if agg.PriceStats != nil {
		min := agg.PriceStats.Avg * 0.5
		if min < 0 {
			min = 0
		}
		max := agg.PriceStats.Avg * 2
		profile.PriceRangeMin = &min
		profile.PriceRangeMax = &max
	} else {
		profile.PriceRangeMin = nil
		profile.PriceRangeMax = nil
	}

	profile.LastComputedAt = time.Now().UTC()

	if err := s.store.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}
	return profile, nil
}
