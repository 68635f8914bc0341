package service

import (
	"context"
	"sync"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/cache"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/ABDULS21985/vivaexcel-sub014/internal/logger"
	"github.com/google/uuid"
)

// fakeStore is an in-memory Store with a read counter so tests can assert
// that cache hits issue no further store work.
type fakeStore struct {
	mu sync.Mutex

	products     map[uuid.UUID]domain.Product
	similarities []domain.ProductSimilarity
	related      []domain.Product
	topRated     []domain.Product
	feed         []domain.Product
	profiles     map[uuid.UUID]*domain.UserPreferenceProfile
	agg          *domain.ViewAggregate
	logs         []*domain.RecommendationLog

	reads              int
	profileInserts     int
	insertLogErr       error
	productsByIDsErr   error
	recordedViews      int
	clicked            map[uuid.UUID]uuid.UUID
	converted          map[uuid.UUID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[uuid.UUID]domain.Product),
		profiles:  make(map[uuid.UUID]*domain.UserPreferenceProfile),
		clicked:   make(map[uuid.UUID]uuid.UUID),
		converted: make(map[uuid.UUID]bool),
		agg:       &domain.ViewAggregate{},
	}
}

func (f *fakeStore) countRead() {
	f.mu.Lock()
	f.reads++
	f.mu.Unlock()
}

func (f *fakeStore) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeStore) GetProductByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	f.countRead()
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeStore) GetProductsByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	f.countRead()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.productsByIDsErr != nil {
		return nil, f.productsByIDsErr
	}
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) GetRelatedByCategory(_ context.Context, _ *uuid.UUID, _ uuid.UUID, limit int) ([]domain.Product, error) {
	f.countRead()
	if len(f.related) > limit {
		return f.related[:limit], nil
	}
	return f.related, nil
}

func (f *fakeStore) GetTopRatedExcluding(_ context.Context, _ []uuid.UUID, limit int) ([]domain.Product, error) {
	f.countRead()
	if len(f.topRated) > limit {
		return f.topRated[:limit], nil
	}
	return f.topRated, nil
}

func (f *fakeStore) GetPersonalizedFeed(_ context.Context, _ []uuid.UUID, _, _ *float64, _ []uuid.UUID, limit int) ([]domain.Product, error) {
	f.countRead()
	if len(f.feed) > limit {
		return f.feed[:limit], nil
	}
	return f.feed, nil
}

func (f *fakeStore) GetSimilaritiesForProduct(_ context.Context, _ uuid.UUID, limit int) ([]domain.ProductSimilarity, error) {
	f.countRead()
	if len(f.similarities) > limit {
		return f.similarities[:limit], nil
	}
	return f.similarities, nil
}

func (f *fakeStore) GetProfile(_ context.Context, userID uuid.UUID) (*domain.UserPreferenceProfile, error) {
	f.countRead()
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) InsertProfileIfAbsent(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileInserts++
	if _, ok := f.profiles[userID]; ok {
		return nil
	}
	f.profiles[userID] = &domain.UserPreferenceProfile{
		UserID:          userID,
		BrowsingHistory: []uuid.UUID{},
		PurchaseHistory: []uuid.UUID{},
	}
	return nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, p *domain.UserPreferenceProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeStore) AggregateViews(_ context.Context, _ uuid.UUID) (*domain.ViewAggregate, error) {
	f.countRead()
	return f.agg, nil
}

func (f *fakeStore) RecordView(_ context.Context, _, _ uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordedViews++
	return nil
}

func (f *fakeStore) InsertRecommendationLog(_ context.Context, log *domain.RecommendationLog) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertLogErr != nil {
		return uuid.Nil, f.insertLogErr
	}
	cp := *log
	cp.ID = uuid.New()
	f.logs = append(f.logs, &cp)
	return cp.ID, nil
}

func (f *fakeStore) SetLogClick(_ context.Context, logID, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicked[logID] = productID
	return nil
}

func (f *fakeStore) SetLogConverted(_ context.Context, logID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.converted[logID] = true
	return nil
}

// fakeCache is an in-memory ResultCache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]domain.RecommendedProduct
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]domain.RecommendedProduct)}
}

func (f *fakeCache) Get(_ context.Context, op cache.Operation, id string, limit int) ([]domain.RecommendedProduct, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	recs, ok := f.entries[cache.Key(op, id, limit)]
	return recs, ok, nil
}

func (f *fakeCache) Set(_ context.Context, op cache.Operation, id string, limit int, recs []domain.RecommendedProduct) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[cache.Key(op, id, limit)] = recs
	return nil
}

// fakeCompleter scripts the model's reply.
type fakeCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(store *fakeStore, rc *fakeCache, completer *fakeCompleter) *Service {
	return NewService(store, rc, completer, time.Second, logger.New("disabled"))
}
