package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carnes-boutique/models"
	repomocks "carnes-boutique/repository/mocks"
)

func menuCatalog() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "res--arrachera", Name: "Arrachera", Category: "Res", Unit: models.UnitWeight,
			RegionalPrice: models.RegionalPrices{"regionA": 165.60}, ImageFileID: "img-1"},
		{ID: "embutidos--chorizo", Name: "Chorizo Argentino", Category: "Embutidos", Unit: models.UnitPiece,
			RegionalPrice: models.RegionalPrices{"regionA": 102}},
		{ID: "res--rib-eye", Name: "Rib Eye", Category: "Res", Unit: models.UnitWeight,
			RegionalPrice: models.RegionalPrices{"regionA": 1540}},
	}
}

func TestMenuService_BuildMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockCatalogRepositoryInterface(ctrl)
	repo.EXPECT().ListByRegion(gomock.Any(), "regionA").Return(menuCatalog(), nil)

	svc := NewMenuService(repo, "http://localhost:8080")
	svc.now = func() time.Time { return time.Date(2024, 3, 18, 12, 0, 0, 0, time.UTC) }

	menu, err := svc.BuildMenu(context.Background(), "regionA")
	require.NoError(t, err)

	assert.Equal(t, "Zona A", menu.RegionLabel)
	assert.Equal(t, "18/03/2024", menu.GeneratedAt)
	require.Len(t, menu.Categories, 2)

	res := menu.Categories[0]
	assert.Equal(t, "Res", res.Name)
	assert.Equal(t, []models.MenuRow{
		{Name: "Arrachera", Price: "$165.60", UnitNote: "/kg", ImageURL: "http://localhost:8080/admin/catalog/items/res--arrachera/image?size=thumb"},
		{Name: "Rib Eye", Price: "$1,540.00", UnitNote: "/kg"},
	}, res.Items)

	assert.Equal(t, "Embutidos", menu.Categories[1].Name)
	assert.Equal(t, "/pza", menu.Categories[1].Items[0].UnitNote)
}

func TestMenuService_RenderHTML(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockCatalogRepositoryInterface(ctrl)
	repo.EXPECT().ListByRegion(gomock.Any(), "regionA").Return(menuCatalog(), nil)

	html, err := NewMenuService(repo, "").RenderHTML(context.Background(), "regionA")
	require.NoError(t, err)

	assert.Contains(t, html, "Carnes Boutique · Zona A")
	assert.Contains(t, html, "<h2>Embutidos</h2>")
	assert.Contains(t, html, "$1,540.00 <span>/kg</span>")
	assert.Contains(t, html, "$102.00 <span>/pza</span>")
	assert.NotContains(t, html, "Sin productos")
}

func TestMenuService_RenderHTMLEmptyRegion(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockCatalogRepositoryInterface(ctrl)
	repo.EXPECT().ListByRegion(gomock.Any(), "regionB").Return(nil, nil)

	html, err := NewMenuService(repo, "").RenderHTML(context.Background(), "regionB")
	require.NoError(t, err)
	assert.Contains(t, html, "Sin productos disponibles")
}

func TestMenuService_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockCatalogRepositoryInterface(ctrl)
	svc := NewMenuService(repo, "")

	_, err := svc.RenderHTML(context.Background(), "")
	assert.ErrorIs(t, err, ErrRegionRequired)

	_, err = svc.GeneratePDF(context.Background(), "norte")
	assert.ErrorIs(t, err, ErrUnknownRegion)

	repo.EXPECT().ListByRegion(gomock.Any(), "regionA").Return(nil, errors.New("timeout"))
	_, err = svc.BuildMenu(context.Background(), "regionA")
	assert.ErrorContains(t, err, "timeout")
}
