package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnes-boutique/models"
	"carnes-boutique/repository"
	"carnes-boutique/repository/mocks"
)

// unreachableRedis returns a client whose every command fails fast.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return client
}

func memoryRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return srv, client
}

func TestCachedCatalogRepository_ServesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	next := mocks.NewMockCatalogRepositoryInterface(ctrl)
	srv, client := memoryRedis(t)
	repo := repository.NewCachedCatalogRepository(next, client, time.Minute)
	ctx := context.Background()

	items := []models.CatalogItem{{
		ID:            "res--arrachera",
		Name:          "Arrachera",
		RegionalPrice: models.RegionalPrices{"regionA": 384},
	}}
	next.EXPECT().List(gomock.Any()).Return(items, nil).Times(1)
	next.EXPECT().ListByRegion(gomock.Any(), "regionA").Return(items, nil).Times(1)

	for i := 0; i < 2; i++ {
		got, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, items, got)

		got, err = repo.ListByRegion(ctx, "regionA")
		require.NoError(t, err)
		assert.Equal(t, items, got)
	}

	assert.True(t, srv.Exists("catalog:v0:all"))
	assert.True(t, srv.Exists("catalog:v0:region:regionA"))
	assert.Equal(t, time.Minute, srv.TTL("catalog:v0:all"))
}

func TestCachedCatalogRepository_WritesStartNewGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)

	next := mocks.NewMockCatalogRepositoryInterface(ctrl)
	srv, client := memoryRedis(t)
	repo := repository.NewCachedCatalogRepository(next, client, time.Minute)
	ctx := context.Background()

	oldItems := []models.CatalogItem{{ID: "res--arrachera", RegionalPrice: models.RegionalPrices{"regionA": 384}}}
	newItems := []models.CatalogItem{{ID: "res--arrachera", RegionalPrice: models.RegionalPrices{"regionA": 420}}}
	snap := &models.CatalogSnapshot{ID: "s2"}

	gomock.InOrder(
		next.EXPECT().List(gomock.Any()).Return(oldItems, nil),
		next.EXPECT().ReplaceAll(gomock.Any(), snap).Return(nil),
		next.EXPECT().List(gomock.Any()).Return(newItems, nil),
		next.EXPECT().SetImage(gomock.Any(), "res--arrachera", "file-1").Return(nil),
		next.EXPECT().List(gomock.Any()).Return(newItems, nil),
	)

	_, err := repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceAll(ctx, snap))
	version, err := srv.Get("catalog:version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, newItems, got)

	require.NoError(t, repo.SetImage(ctx, "res--arrachera", "file-1"))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, newItems, got)
	assert.True(t, srv.Exists("catalog:v2:all"))
}

func TestCachedCatalogRepository_LoadRacingAnImportIsNotServed(t *testing.T) {
	ctrl := gomock.NewController(t)

	next := mocks.NewMockCatalogRepositoryInterface(ctrl)
	_, client := memoryRedis(t)
	repo := repository.NewCachedCatalogRepository(next, client, time.Minute)
	ctx := context.Background()

	oldItems := []models.CatalogItem{{ID: "res--arrachera", RegionalPrice: models.RegionalPrices{"regionA": 384}}}
	newItems := []models.CatalogItem{{ID: "res--arrachera", RegionalPrice: models.RegionalPrices{"regionA": 420}}}
	snap := &models.CatalogSnapshot{ID: "s2"}

	// The first load returns pre-import rows, and the import commits before it is cached.
	next.EXPECT().List(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]models.CatalogItem, error) {
		next.EXPECT().ReplaceAll(gomock.Any(), snap).Return(nil)
		require.NoError(t, repo.ReplaceAll(ctx, snap))
		return oldItems, nil
	})
	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, oldItems, got)

	next.EXPECT().List(gomock.Any()).Return(newItems, nil)
	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, newItems, got)
}

func TestCachedCatalogRepository_DiscardsCorruptEntry(t *testing.T) {
	ctrl := gomock.NewController(t)

	next := mocks.NewMockCatalogRepositoryInterface(ctrl)
	srv, client := memoryRedis(t)
	repo := repository.NewCachedCatalogRepository(next, client, time.Minute)

	require.NoError(t, srv.Set("catalog:v0:all", "{not json"))
	items := []models.CatalogItem{{ID: "res--arrachera"}}
	next.EXPECT().List(gomock.Any()).Return(items, nil)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestCachedCatalogRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := mocks.NewMockCatalogRepositoryInterface(ctrl)
	repo := repository.NewCachedCatalogRepository(next, unreachableRedis(t), time.Minute)
	ctx := context.Background()

	items := []models.CatalogItem{{ID: "res--arrachera", Name: "Arrachera"}}
	next.EXPECT().ListByRegion(gomock.Any(), "regionA").Return(items, nil)
	next.EXPECT().List(gomock.Any()).Return(items, nil)

	got, err := repo.ListByRegion(ctx, "regionA")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestCachedCatalogRepository_PropagatesStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := mocks.NewMockCatalogRepositoryInterface(ctrl)
	repo := repository.NewCachedCatalogRepository(next, unreachableRedis(t), 0)
	ctx := context.Background()
	boom := errors.New("db down")

	next.EXPECT().List(gomock.Any()).Return(nil, boom)
	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, boom)

	snap := &models.CatalogSnapshot{ID: "s1"}
	next.EXPECT().ReplaceAll(gomock.Any(), snap).Return(boom)
	assert.ErrorIs(t, repo.ReplaceAll(ctx, snap), boom)

	next.EXPECT().ReplaceAll(gomock.Any(), snap).Return(nil)
	assert.NoError(t, repo.ReplaceAll(ctx, snap))
}

func TestCachedCatalogRepository_PassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := mocks.NewMockCatalogRepositoryInterface(ctrl)
	repo := repository.NewCachedCatalogRepository(next, unreachableRedis(t), time.Minute)
	ctx := context.Background()

	item := &models.CatalogItem{ID: "res--arrachera"}
	next.EXPECT().GetByID(gomock.Any(), "res--arrachera").Return(item, nil)
	next.EXPECT().ListSnapshots(gomock.Any(), 5).Return([]models.CatalogSnapshot{{ID: "s1"}}, nil)
	next.EXPECT().SetImage(gomock.Any(), "res--arrachera", "file-1").Return(nil)

	got, err := repo.GetByID(ctx, "res--arrachera")
	require.NoError(t, err)
	assert.Same(t, item, got)

	snaps, err := repo.ListSnapshots(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)

	assert.NoError(t, repo.SetImage(ctx, "res--arrachera", "file-1"))
}
