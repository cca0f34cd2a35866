package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnes-boutique/models"
)

var itemColumns = []string{"id", "name", "category", "unit", "wholesale_price", "regional_prices", "annotations", "image_file_id", "updated_at"}

func setupMockDB(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCatalogRepository(db), mock
}

func testSnapshot(now time.Time) *models.CatalogSnapshot {
	return &models.CatalogSnapshot{
		ID:         uuid.NewString(),
		ImportedAt: now,
		Source:     "lista-2024-03-18.pdf",
		ItemCount:  2,
		Items: []models.CatalogItem{
			{
				ID: "res--arrachera", Name: "Arrachera", Category: "Res", Unit: models.UnitWeight,
				WholesalePrice: 250, RegionalPrice: models.RegionalPrices{"regionA": 300, "regionB": 325},
			},
			{
				ID: "embutidos--chorizo", Name: "Chorizo", Category: "Embutidos", Unit: models.UnitPiece,
				WholesalePrice: 85, RegionalPrice: models.RegionalPrices{"regionA": 102},
				ImageFileID: "drive-file-1",
			},
		},
	}
}

func TestReplaceAll_Success(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)
	snap := testSnapshot(now)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertItemQuery)).
		WithArgs("res--arrachera", 0, "Arrachera", "Res", "weight", 250.0,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sql.NullString{}, snap.ID, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertItemQuery)).
		WithArgs("embutidos--chorizo", 1, "Chorizo", "Embutidos", "piece", 85.0,
			sqlmock.AnyArg(), sqlmock.AnyArg(), "drive-file-1", snap.ID, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteStaleItemsQuery)).
		WithArgs(snap.ID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(insertSnapshotQuery)).
		WithArgs(snap.ID, now, "lista-2024-03-18.pdf", 2, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceAll(context.Background(), snap)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAll_RollsBackOnError(t *testing.T) {
	repo, mock := setupMockDB(t)
	snap := testSnapshot(time.Now())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertItemQuery)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), snap)
	assert.ErrorContains(t, err, "res--arrachera")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAll_RequiresSnapshotID(t *testing.T) {
	repo, mock := setupMockDB(t)
	assert.Error(t, repo.ReplaceAll(context.Background(), &models.CatalogSnapshot{}))
	assert.Error(t, repo.ReplaceAll(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(itemColumns).
		AddRow("res--arrachera", "Arrachera", "Res", "weight", 250.0, []byte(`{"regionA":300,"regionB":325}`), []byte(`null`), "", now).
		AddRow("wagyu--ribeye", "Ribeye", "Wagyu", "weight", 1600.0, []byte(`{"regionA":1920}`),
			[]byte(`[{"code":"price_out_of_band","region":"regionB","unit":"weight","value":2080,"floor":10,"ceiling":2000,"reason":"x"}]`), "img-9", now)
	mock.ExpectQuery(regexp.QuoteMeta(selectItemColumns + ` ORDER BY position ASC`)).WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, models.RegionalPrices{"regionA": 300, "regionB": 325}, items[0].RegionalPrice)
	assert.Empty(t, items[0].Annotations)
	assert.Equal(t, models.UnitWeight, items[0].Unit)

	assert.Equal(t, "img-9", items[1].ImageFileID)
	require.Len(t, items[1].Annotations, 1)
	assert.Equal(t, "regionB", items[1].Annotations[0].Region)
	assert.Equal(t, 2080.0, items[1].Annotations[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRegion(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectItemColumns + ` WHERE regional_prices ? $1 ORDER BY position ASC`)).
		WithArgs("regionB").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	items, err := repo.ListByRegion(context.Background(), "regionB")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(selectItemColumns + ` WHERE id = $1`)).
		WithArgs("res--arrachera").
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow("res--arrachera", "Arrachera", "Res", "weight", 250.0, []byte(`{"regionA":300}`), []byte(`[]`), "", now))

	item, err := repo.GetByID(context.Background(), "res--arrachera")
	require.NoError(t, err)
	assert.Equal(t, "Arrachera", item.Name)
	assert.Equal(t, 300.0, item.RegionalPrice["regionA"])

	mock.ExpectQuery(regexp.QuoteMeta(selectItemColumns + ` WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	item, err = repo.GetByID(context.Background(), "missing")
	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetImage(t *testing.T) {
	repo, mock := setupMockDB(t)
	query := regexp.QuoteMeta(`UPDATE catalog_items SET image_file_id = $2 WHERE id = $1`)

	mock.ExpectExec(query).WithArgs("res--arrachera", "file-1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetImage(context.Background(), "res--arrachera", "file-1"))

	mock.ExpectExec(query).WithArgs("missing", "file-2").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetImage(context.Background(), "missing", "file-2"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSnapshots(t *testing.T) {
	repo, mock := setupMockDB(t)
	now := time.Now().UTC()
	id := uuid.NewString()

	mock.ExpectQuery(`SELECT id, imported_at, source, item_count\s+FROM catalog_snapshots`).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "imported_at", "source", "item_count"}).
			AddRow(id, now, "drive:lista.pdf", 42))

	snaps, err := repo.ListSnapshots(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, id, snaps[0].ID)
	assert.Equal(t, 42, snaps[0].ItemCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
