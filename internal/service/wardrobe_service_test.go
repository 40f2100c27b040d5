package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/liliang-cn/closet/internal/domain"
	"github.com/liliang-cn/closet/internal/observability"
	"github.com/liliang-cn/closet/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"
)

func newTestService(t *testing.T) (*WardrobeService, *observability.Collector) {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "closet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	metrics := observability.NewCollector("closet_test")
	svc := NewWardrobeService(repository.NewClothingRepository(db), zaptest.NewLogger(t), metrics, language.English)
	return svc, metrics
}

func seed(t *testing.T, svc *WardrobeService, userID string) {
	t.Helper()
	reqs := []domain.CreateClothingRequest{
		{Name: "Red T-Shirt", Category: "tops", Color: "red", Brand: "Nike", Size: "M", Tags: []string{"casual"}, PurchaseDate: "2025-01-01"},
		{Name: "Blue Jeans", Category: "bottoms", Color: "blue", Brand: "Levi", Size: "L", Tags: []string{"casual"}, PurchaseDate: "2025-03-01"},
		{Name: "Black Dress", Category: "dresses", Color: "black", Brand: "Zara", Size: "S", Tags: []string{"formal"}},
		{Name: "White Sneakers", Category: "shoes", Color: "white", Brand: "Nike", Tags: []string{"Resell"}, PurchaseDate: "2025-02-01"},
		{Name: "Old Robe", Category: "sleepwear", Tags: []string{"donate"}},
	}
	for i := range reqs {
		_, err := svc.Create(context.Background(), userID, &reqs[i])
		require.NoError(t, err)
	}
}

func strPtr(s string) *string { return &s }

func itemNames(items []*domain.ClothingItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestCreateNormalizes(t *testing.T) {
	svc, metrics := newTestService(t)

	item, err := svc.Create(context.Background(), "u1", &domain.CreateClothingRequest{
		Name:     "  Linen Shirt ",
		Category: "tops",
		Brand:    " ",
		Tags:     []string{" ", "summer "},
	})
	require.NoError(t, err)

	assert.Equal(t, "Linen Shirt", item.Name)
	assert.Empty(t, item.Brand)
	assert.Equal(t, []string{"summer"}, item.Tags)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ItemsCreated))

	got, err := svc.Get(context.Background(), "u1", item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Tags, got.Tags)
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, req := range []domain.CreateClothingRequest{
		{Name: " ", Category: "tops"},
		{Name: "Hat"},
		{Name: "Hat", Category: "accessories", PurchaseDate: "yesterday"},
	} {
		_, err := svc.Create(ctx, "u1", &req)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "%+v", req)
	}
}

func TestGetMissing(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), "u1", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, "u1", &domain.CreateClothingRequest{
		Name: "Parka", Category: "outerwear", Color: "green", Tags: []string{"winter"},
	})
	require.NoError(t, err)

	noTags := []string{}
	updated, err := svc.Update(ctx, "u1", item.ID, &domain.UpdateClothingRequest{Brand: strPtr("Arc"), Tags: &noTags})
	require.NoError(t, err)
	assert.Equal(t, "Parka", updated.Name)
	assert.Equal(t, "green", updated.Color)
	assert.Equal(t, "Arc", updated.Brand)
	assert.Nil(t, updated.Tags)

	_, err = svc.Update(ctx, "u2", item.ID, &domain.UpdateClothingRequest{Name: "Mine"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, "u1", item.ID, &domain.UpdateClothingRequest{PurchaseDate: strPtr("31/12/2024")})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestUpdateClearsOptionalFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, "u1", &domain.CreateClothingRequest{
		Name: "Parka", Category: "outerwear", Color: "green", Brand: "Arc", Size: "L", PurchaseDate: "2024-11-02",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", item.ID, &domain.UpdateClothingRequest{
		Brand: strPtr(""), PurchaseDate: strPtr(""), Size: strPtr("XL"),
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Brand)
	assert.Empty(t, updated.PurchaseDate)
	assert.Equal(t, "XL", updated.Size)
	assert.Equal(t, "green", updated.Color)

	got, err := svc.Get(ctx, "u1", item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Brand)
	assert.Empty(t, got.PurchaseDate)
	assert.Equal(t, "XL", got.Size)
}

func TestDelete(t *testing.T) {
	svc, metrics := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, "u1", &domain.CreateClothingRequest{Name: "Belt", Category: "accessories"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", item.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", item.ID), domain.ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ItemsDeleted))
}

func TestBrowse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seed(t, svc, "u1")
	seed(t, svc, "u2")

	all, err := svc.Browse(ctx, "u1", domain.Criteria{}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Black Dress", "Blue Jeans", "Old Robe", "Red T-Shirt", "White Sneakers"}, itemNames(all))

	nike, err := svc.Browse(ctx, "u1", domain.Criteria{Brand: "Nike"}, "purchaseDate")
	require.NoError(t, err)
	assert.Equal(t, []string{"White Sneakers", "Red T-Shirt"}, itemNames(nike))

	bySize, err := svc.Browse(ctx, "u1", domain.Criteria{}, "size")
	require.NoError(t, err)
	assert.Equal(t, []string{"Black Dress", "Red T-Shirt", "Blue Jeans"}, itemNames(bySize)[:3])

	casual, err := svc.Browse(ctx, "u1", domain.Criteria{Tags: "casual"}, "bogus")
	require.NoError(t, err)
	assert.Equal(t, []string{"Blue Jeans", "Red T-Shirt"}, itemNames(casual))
}

func TestStats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seed(t, svc, "u1")

	stats, err := svc.Stats(ctx, "u1", domain.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Len(t, stats.CategoryCounts, 8)
	assert.Equal(t, 1, stats.CategoryCounts["tops"])
	assert.Equal(t, 0, stats.CategoryCounts["handbags"])
	assert.Equal(t, 2, stats.WithTags)
	assert.Equal(t, 3, stats.WithoutTags)

	nike, err := svc.Stats(ctx, "u1", domain.Criteria{Brand: "Nike"})
	require.NoError(t, err)
	assert.Equal(t, 2, nike.Total)
	assert.Equal(t, 1, nike.WithTags)

	empty, err := svc.Stats(ctx, "nobody", domain.Criteria{})
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Len(t, empty.CategoryCounts, 8)
}

func TestQueryAndAggregate(t *testing.T) {
	svc, _ := newTestService(t)

	items := []*domain.ClothingItem{
		{ID: "1", Name: "Checkered Shirt", Category: "tops", Size: "L"},
		{ID: "2", Name: "Floral Dress", Category: "dresses", Size: "S", Tags: []string{"donate"}},
		{ID: "3", Name: "Blue Jeans", Category: "bottoms", Size: "M"},
	}

	got, err := svc.Query(items, domain.Criteria{}, "size")
	require.NoError(t, err)
	assert.Equal(t, []string{"Floral Dress", "Blue Jeans", "Checkered Shirt"}, itemNames(got))

	summary, err := svc.Aggregate(items)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.WithTags)
	assert.Equal(t, 2, summary.WithoutTags)

	_, err = svc.Query(nil, domain.Criteria{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.Aggregate(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	empty, err := svc.Query([]*domain.ClothingItem{}, domain.Criteria{Category: "tops"}, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestQueryAndAggregateRejectNullEntries(t *testing.T) {
	svc, _ := newTestService(t)
	items := []*domain.ClothingItem{{Name: "Scarf", Category: "accessories"}, nil}

	_, err := svc.Query(items, domain.Criteria{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.Query(items, domain.Criteria{Category: "accessories"}, "size")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.Aggregate(items)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestImport(t *testing.T) {
	svc, metrics := newTestService(t)
	ctx := context.Background()

	items := []*domain.ClothingItem{
		{ID: "ignored", UserID: "someone-else", Name: "Tote", Category: "handbags"},
		{Name: "Leggings", Category: "activewear", Tags: []string{"work"}},
	}
	n, err := svc.Import(ctx, "u1", items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "ignored", items[0].ID)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ItemsCreated))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, item := range list {
		assert.NotEqual(t, "ignored", item.ID)
		assert.Equal(t, "u1", item.UserID)
	}

	n, err = svc.Import(ctx, "u1", []*domain.ClothingItem{{Name: "Cap", Category: "accessories"}, {Name: "No category"}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, 1, n)
}
