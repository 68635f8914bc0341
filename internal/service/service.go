package service

import (
	"context"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/cache"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/llm"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/logger"
	"github.com/google/uuid"
)

const (
	defaultLimit         = 8
	maxLimit             = 50
	aiCandidatePoolSize  = 50
	aiPromptCandidates   = 30
	aiContextRecentViews = 5
)

// Store is the slice of the relational store the recommendation core needs.
// Implemented by repository.Repository.
type Store interface {
	GetProductByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	GetRelatedByCategory(ctx context.Context, categoryID *uuid.UUID, excludeID uuid.UUID, limit int) ([]domain.Product, error)
	GetTopRatedExcluding(ctx context.Context, exclude []uuid.UUID, limit int) ([]domain.Product, error)
	GetPersonalizedFeed(ctx context.Context, categories []uuid.UUID, priceMin, priceMax *float64, exclude []uuid.UUID, limit int) ([]domain.Product, error)
	GetSimilaritiesForProduct(ctx context.Context, productID uuid.UUID, limit int) ([]domain.ProductSimilarity, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.UserPreferenceProfile, error)
	InsertProfileIfAbsent(ctx context.Context, userID uuid.UUID) error
	UpdateProfile(ctx context.Context, profile *domain.UserPreferenceProfile) error
	AggregateViews(ctx context.Context, userID uuid.UUID) (*domain.ViewAggregate, error)
	RecordView(ctx context.Context, userID, productID uuid.UUID) error
	InsertRecommendationLog(ctx context.Context, log *domain.RecommendationLog) (uuid.UUID, error)
	SetLogClick(ctx context.Context, logID, productID uuid.UUID) error
	SetLogConverted(ctx context.Context, logID uuid.UUID) error
}

// ResultCache memoizes finished recommendation lists per (operation, id,
// limit). Implemented by cache.Cache.
type ResultCache interface {
	Get(ctx context.Context, op cache.Operation, id string, limit int) ([]domain.RecommendedProduct, bool, error)
	Set(ctx context.Context, op cache.Operation, id string, limit int, recs []domain.RecommendedProduct) error
}

type Service struct {
	store      Store
	cache      ResultCache
	llm        llm.Completer
	llmTimeout time.Duration
	log        *logger.Logger
}

func NewService(store Store, resultCache ResultCache, completer llm.Completer, llmTimeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		cache:      resultCache,
		llm:        completer,
		llmTimeout: llmTimeout,
		log:        log.WithComponent("recommendation-service"),
	}
}

// normalizeLimit applies the default and cap. Negative limits are a caller
// bug and rejected before any store or cache access.
func normalizeLimit(limit int) (int, error) {
	if limit < 0 {
		return 0, domain.ErrInvalidLimit
	}
	if limit == 0 {
		return defaultLimit, nil
	}
	if limit > maxLimit {
		return maxLimit, nil
	}
	return limit, nil
}

// cachedGet treats a cache failure as a miss so an unreachable cache
// degrades to "always recompute" instead of failing requests.
func (s *Service) cachedGet(ctx context.Context, op cache.Operation, id string, limit int) ([]domain.RecommendedProduct, bool) {
	recs, found, err := s.cache.Get(ctx, op, id, limit)
	if err != nil {
		s.log.Warn().Err(err).Str("operation", string(op)).Msg("cache get failed, treating as miss")
		return nil, false
	}
	return recs, found
}

func (s *Service) cachedSet(ctx context.Context, op cache.Operation, id string, limit int, recs []domain.RecommendedProduct) {
	if err := s.cache.Set(ctx, op, id, limit, recs); err != nil {
		s.log.Warn().Err(err).Str("operation", string(op)).Msg("cache set failed")
	}
}

// hydrateOrdered loads full product records for ids and returns them in the
// ids' order, silently dropping ids the catalog no longer has.
func (s *Service) hydrateOrdered(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ordered := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// RecordProductView appends a view event. Cached recommendations are left to
// expire on their own; staleness inside the TTL window is accepted.
func (s *Service) RecordProductView(ctx context.Context, userID, productID uuid.UUID) error {
	return s.store.RecordView(ctx, userID, productID)
}

// RecordClick marks which recommended product the user clicked.
func (s *Service) RecordClick(ctx context.Context, logID, productID uuid.UUID) error {
	return s.store.SetLogClick(ctx, logID, productID)
}

// RecordConversion marks a recommendation log as having led to a purchase.
func (s *Service) RecordConversion(ctx context.Context, logID uuid.UUID) error {
	return s.store.SetLogConverted(ctx, logID)
}
