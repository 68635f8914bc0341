package service

import (
	"context"
	"fmt"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/cache"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

// GetSimilarProducts returns products similar to the given one, in the
// candidate source's order. Unknown products yield an empty list.
func (s *Service) GetSimilarProducts(ctx context.Context, productID uuid.UUID, limit int) ([]domain.RecommendedProduct, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	if recs, ok := s.cachedGet(ctx, cache.OpSimilar, productID.String(), limit); ok {
		return recs, nil
	}

	ids, err := s.similarCandidates(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	products, err := s.hydrateOrdered(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate similar products: %w", err)
	}

	recs := toRecommended(products, limit)
	s.cachedSet(ctx, cache.OpSimilar, productID.String(), limit, recs)
	return recs, nil
}

// GetForYouFeed applies the user's preference profile as filters over the
// published catalog. Pure filter-and-sort, no model involvement.
func (s *Service) GetForYouFeed(ctx context.Context, userID uuid.UUID, limit int) ([]domain.RecommendedProduct, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	if recs, ok := s.cachedGet(ctx, cache.OpFeed, userID.String(), limit); ok {
		return recs, nil
	}

	profile, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.store.GetPersonalizedFeed(ctx, profile.PreferredCategories,
		profile.PriceRangeMin, profile.PriceRangeMax, profile.PurchaseHistory, limit)
	if err != nil {
		return nil, err
	}

	recs := toRecommended(products, limit)
	s.cachedSet(ctx, cache.OpFeed, userID.String(), limit, recs)
	return recs, nil
}

// GetAIRecommendations asks the model to pick from a pool of top-rated
// unseen products. Any model failure falls back silently to the pool's own
// rating order; the caller never sees an error from the AI path.
func (s *Service) GetAIRecommendations(ctx context.Context, userID uuid.UUID, userContext string, limit int) ([]domain.RecommendedProduct, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	if recs, ok := s.cachedGet(ctx, cache.OpAI, userID.String(), limit); ok {
		return recs, nil
	}

	profile, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.store.GetTopRatedExcluding(ctx, profile.SeenProductIDs(), aiCandidatePoolSize)
	if err != nil {
		return nil, err
	}

	// A user who has seen the whole catalog gets nothing to recommend.
	// Expected steady state, not an error.
	if len(pool) == 0 {
		empty := []domain.RecommendedProduct{}
		s.cachedSet(ctx, cache.OpAI, userID.String(), limit, empty)
		return empty, nil
	}

	// Recent views feed the prompt's context block. This is a store read, so
	// unlike model failures its errors are not masked.
	recentIDs := profile.BrowsingHistory
	if len(recentIDs) > aiContextRecentViews {
		recentIDs = recentIDs[:aiContextRecentViews]
	}
	recent, err := s.hydrateOrdered(ctx, recentIDs)
	if err != nil {
		return nil, fmt.Errorf("hydrate recent views: %w", err)
	}

	recs, aiErr := s.selectWithModel(ctx, userID, userContext, profile, recent, pool, limit)
	if aiErr != nil {
		s.log.Warn().Err(aiErr).Str("user_id", userID.String()).
			Msg("model selection failed, falling back to rating order")
		recs = fallbackFromPool(pool, limit)
	}

	s.cachedSet(ctx, cache.OpAI, userID.String(), limit, recs)
	return recs, nil
}

// selectWithModel runs the model path: prompt construction, one bounded
// completion attempt, response parsing, and the audit log write. Every error
// it returns means "the model path failed" and is absorbed by the caller.
func (s *Service) selectWithModel(ctx context.Context, userID uuid.UUID, userContext string, profile *domain.UserPreferenceProfile, recent, pool []domain.Product, limit int) ([]domain.RecommendedProduct, error) {
	userMessage := buildUserMessage(userContext, recent, profile, pool, limit)

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	raw, err := s.llm.Complete(llmCtx, selectionSystemPrompt, userMessage)
	if err != nil {
		return nil, fmt.Errorf("model completion: %w", err)
	}

	selections, err := parseModelSelection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse model selection: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Product, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}

	recs := make([]domain.RecommendedProduct, 0, len(selections))
	ids := make([]uuid.UUID, 0, len(selections))
	for _, sel := range selections {
		p, ok := byID[sel.ID]
		if !ok {
			// Model invented an id outside the pool; skip it.
			continue
		}
		rec := p.Recommended()
		rec.Reason = sel.Reason
		recs = append(recs, rec)
		ids = append(ids, p.ID)
		if len(recs) == limit {
			break
		}
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("model selected no products from the pool")
	}

	// Logging is fire-and-forget relative to the response.
	logRow := &domain.RecommendationLog{
		UserID:                &userID,
		Type:                  domain.TypeAIPowered,
		RecommendedProductIDs: ids,
		Metadata:              map[string]any{"model_response": raw},
	}
	if _, err := s.store.InsertRecommendationLog(ctx, logRow); err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).
			Msg("failed to write recommendation log")
	}

	return recs, nil
}

// fallbackFromPool slices the already rating-ordered candidate pool. No
// reasons, no log row.
func fallbackFromPool(pool []domain.Product, limit int) []domain.RecommendedProduct {
	return toRecommended(pool, limit)
}

func toRecommended(products []domain.Product, limit int) []domain.RecommendedProduct {
	if len(products) > limit {
		products = products[:limit]
	}
	recs := make([]domain.RecommendedProduct, 0, len(products))
	for _, p := range products {
		recs = append(recs, p.Recommended())
	}
	return recs
}
