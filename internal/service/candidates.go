package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

// similarCandidates picks the candidate source for a similarity request:
// precomputed similarity rows when there are enough of them, otherwise a
// live same-category query. Fewer precomputed rows than requested means the
// offline job has not caught up for this product, and a partial result is
// wholly replaced rather than topped up with live rows.
func (s *Service) similarCandidates(ctx context.Context, productID uuid.UUID, limit int) ([]uuid.UUID, error) {
	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch source product: %w", err)
	}

	sims, err := s.store.GetSimilaritiesForProduct(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch similarities: %w", err)
	}

	if len(sims) >= limit {
		seen := make(map[uuid.UUID]struct{}, len(sims))
		ids := make([]uuid.UUID, 0, len(sims))
		for _, sim := range sims {
			other := sim.Other(productID)
			if _, ok := seen[other]; ok {
				continue
			}
			seen[other] = struct{}{}
			ids = append(ids, other)
		}
		return ids, nil
	}

	related, err := s.store.GetRelatedByCategory(ctx, product.CategoryID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch related products: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(related))
	for _, p := range related {
		ids = append(ids, p.ID)
	}
	return ids, nil
}
