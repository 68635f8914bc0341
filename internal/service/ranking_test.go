package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(title string, rating float64, reviews int) domain.Product {
	category := uuid.New()
	return domain.Product{
		ID:          uuid.New(),
		Title:       title,
		Slug:        title,
		Type:        "ebook",
		CategoryID:  &category,
		Price:       19.99,
		Rating:      rating,
		ReviewCount: reviews,
		Status:      domain.StatusPublished,
		CreatedAt:   time.Now(),
	}
}

func addProducts(store *fakeStore, products ...domain.Product) {
	for _, p := range products {
		store.products[p.ID] = p
	}
}

func TestSimilarFallbackIsAllOrNothing(t *testing.T) {
	store := newFakeStore()
	source := testProduct("source", 4.0, 10)
	addProducts(store, source)

	// Three precomputed rows against a request for five: not enough signal,
	// so the whole precomputed result is discarded.
	simProducts := make([]domain.Product, 3)
	for i := range simProducts {
		simProducts[i] = testProduct(fmt.Sprintf("sim-%d", i), 4.5, 100)
		addProducts(store, simProducts[i])
		store.similarities = append(store.similarities, domain.ProductSimilarity{
			ProductAID:   source.ID,
			ProductBID:   simProducts[i].ID,
			OverallScore: 0.9 - float64(i)*0.1,
		})
	}

	related := make([]domain.Product, 5)
	for i := range related {
		related[i] = testProduct(fmt.Sprintf("related-%d", i), 4.8-float64(i)*0.1, 50)
		addProducts(store, related[i])
	}
	store.related = related

	svc := newTestService(store, newFakeCache(), &fakeCompleter{})

	recs, err := svc.GetSimilarProducts(context.Background(), source.ID, 5)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	simIDs := make(map[uuid.UUID]bool)
	for _, p := range simProducts {
		simIDs[p.ID] = true
	}
	for i, rec := range recs {
		assert.Equal(t, related[i].ID, rec.ID, "live query order must be preserved")
		assert.False(t, simIDs[rec.ID], "no precomputed candidate may leak into the fallback result")
	}
}

func TestSimilarUsesPrecomputedWhenEnough(t *testing.T) {
	store := newFakeStore()
	source := testProduct("source", 4.0, 10)
	addProducts(store, source)

	others := make([]domain.Product, 3)
	for i := range others {
		others[i] = testProduct(fmt.Sprintf("sim-%d", i), 3.0, 5)
		addProducts(store, others[i])
		store.similarities = append(store.similarities, domain.ProductSimilarity{
			ProductAID:   source.ID,
			ProductBID:   others[i].ID,
			OverallScore: 0.9 - float64(i)*0.1,
		})
	}
	store.related = []domain.Product{testProduct("related", 5.0, 500)}

	svc := newTestService(store, newFakeCache(), &fakeCompleter{})

	recs, err := svc.GetSimilarProducts(context.Background(), source.ID, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, rec := range recs {
		assert.Equal(t, others[i].ID, rec.ID, "similarity score order must be preserved")
	}
}

func TestSimilarUnknownProductReturnsEmpty(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeCache(), &fakeCompleter{})

	recs, err := svc.GetSimilarProducts(context.Background(), uuid.New(), 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCacheShortCircuit(t *testing.T) {
	store := newFakeStore()
	source := testProduct("source", 4.0, 10)
	addProducts(store, source)
	store.related = []domain.Product{testProduct("related", 4.5, 20)}
	addProducts(store, store.related...)

	svc := newTestService(store, newFakeCache(), &fakeCompleter{})

	first, err := svc.GetSimilarProducts(context.Background(), source.ID, 5)
	require.NoError(t, err)
	readsAfterFirst := store.readCount()

	second, err := svc.GetSimilarProducts(context.Background(), source.ID, 5)
	require.NoError(t, err)

	assert.Equal(t, readsAfterFirst, store.readCount(), "cache hit must issue no store reads")

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestCacheFailureDegradesToRecompute(t *testing.T) {
	store := newFakeStore()
	source := testProduct("source", 4.0, 10)
	addProducts(store, source)
	store.related = []domain.Product{testProduct("related", 4.5, 20)}
	addProducts(store, store.related...)

	rc := newFakeCache()
	rc.getErr = errors.New("redis down")
	rc.setErr = errors.New("redis down")

	svc := newTestService(store, rc, &fakeCompleter{})

	recs, err := svc.GetSimilarProducts(context.Background(), source.ID, 5)
	require.NoError(t, err, "an unreachable cache must not fail the request")
	assert.Len(t, recs, 1)
}

func aiPool(store *fakeStore, n int) []domain.Product {
	pool := make([]domain.Product, n)
	for i := range pool {
		pool[i] = testProduct(fmt.Sprintf("pool-%d", i), 5.0-float64(i)*0.1, 100-i)
		store.products[pool[i].ID] = pool[i]
	}
	store.topRated = pool
	return pool
}

func TestAIFallbackIsSilent(t *testing.T) {
	store := newFakeStore()
	aiPool(store, 6)

	completer := &fakeCompleter{err: errors.New("provider timeout")}
	svc := newTestService(store, newFakeCache(), completer)

	recs, err := svc.GetAIRecommendations(context.Background(), uuid.New(), "", 4)
	require.NoError(t, err, "a model outage must never surface as an error")
	require.Len(t, recs, 4)
	for _, rec := range recs {
		assert.Empty(t, rec.Reason, "fallback results carry no reason")
	}
	assert.Empty(t, store.logs, "no log row is written for a failed model attempt")
}

func TestAIFallbackOnMalformedResponse(t *testing.T) {
	store := newFakeStore()
	pool := aiPool(store, 4)

	completer := &fakeCompleter{response: "Sure! Here are some great picks for you."}
	svc := newTestService(store, newFakeCache(), completer)

	recs, err := svc.GetAIRecommendations(context.Background(), uuid.New(), "", 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, rec := range recs {
		assert.Equal(t, pool[i].ID, rec.ID, "fallback keeps the pool's rating order")
		assert.Empty(t, rec.Reason)
	}
	assert.Empty(t, store.logs)
}

func TestAISuccessPreservesModelOrderAndLogs(t *testing.T) {
	store := newFakeStore()
	pool := aiPool(store, 5)
	userID := uuid.New()

	// The model picks in its own order, not the pool's.
	picked := []domain.Product{pool[3], pool[0], pool[4]}
	reply := fmt.Sprintf(`[{"id":%q,"reason":"matches your interests"},{"id":%q,"reason":"top rated"},{"id":%q,"reason":"popular pick"}]`,
		picked[0].ID, picked[1].ID, picked[2].ID)

	completer := &fakeCompleter{response: reply}
	svc := newTestService(store, newFakeCache(), completer)

	recs, err := svc.GetAIRecommendations(context.Background(), userID, "looking for design assets", 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	reasons := []string{"matches your interests", "top rated", "popular pick"}
	for i, rec := range recs {
		assert.Equal(t, picked[i].ID, rec.ID, "model order must be preserved")
		assert.Equal(t, reasons[i], rec.Reason)
	}

	require.Len(t, store.logs, 1)
	logRow := store.logs[0]
	assert.Equal(t, domain.TypeAIPowered, logRow.Type)
	require.NotNil(t, logRow.UserID)
	assert.Equal(t, userID, *logRow.UserID)
	require.Len(t, logRow.RecommendedProductIDs, 3)
	for i, id := range logRow.RecommendedProductIDs {
		assert.Equal(t, picked[i].ID, id)
	}
	assert.Equal(t, reply, logRow.Metadata["model_response"])
}

func TestAISuccessWithFencedResponse(t *testing.T) {
	store := newFakeStore()
	pool := aiPool(store, 3)

	reply := fmt.Sprintf("```json\n[{\"id\":%q,\"reason\":\"good fit\"}]\n```", pool[1].ID)
	completer := &fakeCompleter{response: reply}
	svc := newTestService(store, newFakeCache(), completer)

	recs, err := svc.GetAIRecommendations(context.Background(), uuid.New(), "", 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, pool[1].ID, recs[0].ID)
	assert.Equal(t, "good fit", recs[0].Reason)
	assert.Len(t, store.logs, 1)
}

func TestAIEmptyPoolSkipsModel(t *testing.T) {
	store := newFakeStore()
	completer := &fakeCompleter{response: "should never be called"}
	svc := newTestService(store, newFakeCache(), completer)

	recs, err := svc.GetAIRecommendations(context.Background(), uuid.New(), "", 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Zero(t, completer.callCount(), "an empty pool must not invoke the model")
}

func TestAIStoreErrorIsNotMaskedByFallback(t *testing.T) {
	store := newFakeStore()
	aiPool(store, 3)
	userID := uuid.New()

	// A user with browsing history forces the recent-views hydration, which
	// is a store read: its failure must surface, not degrade to a
	// reason-less fallback list.
	store.profiles[userID] = &domain.UserPreferenceProfile{
		UserID:          userID,
		BrowsingHistory: []uuid.UUID{uuid.New(), uuid.New()},
		PurchaseHistory: []uuid.UUID{},
	}
	storeErr := errors.New("connection refused")
	store.productsByIDsErr = storeErr

	svc := newTestService(store, newFakeCache(), &fakeCompleter{response: "unused"})

	recs, err := svc.GetAIRecommendations(context.Background(), userID, "", 3)
	require.Error(t, err, "a store failure has no meaningful fallback")
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, recs)
}

func TestAILogFailureDoesNotFailResponse(t *testing.T) {
	store := newFakeStore()
	pool := aiPool(store, 3)
	store.insertLogErr = errors.New("insert failed")

	reply := fmt.Sprintf(`[{"id":%q,"reason":"solid choice"}]`, pool[0].ID)
	svc := newTestService(store, newFakeCache(), &fakeCompleter{response: reply})

	recs, err := svc.GetAIRecommendations(context.Background(), uuid.New(), "", 1)
	require.NoError(t, err, "logging is fire-and-forget relative to the response")
	require.Len(t, recs, 1)
	assert.Equal(t, "solid choice", recs[0].Reason)
}

func TestAIIgnoresIDsOutsidePool(t *testing.T) {
	store := newFakeStore()
	pool := aiPool(store, 3)

	reply := fmt.Sprintf(`[{"id":%q,"reason":"invented"},{"id":%q,"reason":"real"}]`,
		uuid.New(), pool[2].ID)
	svc := newTestService(store, newFakeCache(), &fakeCompleter{response: reply})

	recs, err := svc.GetAIRecommendations(context.Background(), uuid.New(), "", 2)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, pool[2].ID, recs[0].ID)
}

func TestForYouFeedAppliesProfile(t *testing.T) {
	store := newFakeStore()
	feed := []domain.Product{
		testProduct("feed-0", 4.9, 300),
		testProduct("feed-1", 4.7, 120),
	}
	store.feed = feed
	addProducts(store, feed...)

	svc := newTestService(store, newFakeCache(), &fakeCompleter{})

	recs, err := svc.GetForYouFeed(context.Background(), uuid.New(), 8)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, feed[0].ID, recs[0].ID)
	assert.Equal(t, feed[1].ID, recs[1].ID)
}

func TestNegativeLimitRejectedBeforeStoreAccess(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeCache(), &fakeCompleter{})

	_, err := svc.GetSimilarProducts(context.Background(), uuid.New(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	assert.Zero(t, store.readCount())

	_, err = svc.GetAIRecommendations(context.Background(), uuid.New(), "", -3)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	assert.Zero(t, store.readCount())
}

func TestFeedbackUpdatesLog(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, newFakeCache(), &fakeCompleter{})

	logID := uuid.New()
	productID := uuid.New()
	require.NoError(t, svc.RecordClick(context.Background(), logID, productID))
	require.NoError(t, svc.RecordConversion(context.Background(), logID))

	assert.Equal(t, productID, store.clicked[logID])
	assert.True(t, store.converted[logID])
}
