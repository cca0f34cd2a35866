package controller

import (
	"context"

	"carnes-boutique/models"
	"carnes-boutique/service"
)

// CatalogImporter is implemented by service.CatalogImportService
type CatalogImporter interface {
	Preview(ctx context.Context, text string) ([]models.CatalogItem, error)
	PreviewPDF(ctx context.Context, data []byte) ([]models.CatalogItem, error)
	ImportText(ctx context.Context, text, source string) (*service.ImportResult, error)
	ImportPDF(ctx context.Context, data []byte, source string) (*service.ImportResult, error)
	ImportFromDrive(ctx context.Context, folderID string) (*service.ImportResult, error)
}

// MenuRenderer is implemented by service.MenuService
type MenuRenderer interface {
	RenderHTML(ctx context.Context, region string) (string, error)
	GeneratePDF(ctx context.Context, region string) ([]byte, error)
}

// ImageProvider is implemented by service.ImageService
type ImageProvider interface {
	GetItemImage(ctx context.Context, itemID, size string) ([]byte, error)
	SyncItemImages(ctx context.Context, folderID string) (*service.ImageSyncResult, error)
	WarmCache(ctx context.Context, size string) (*service.ImageWarmResult, error)
}

// OrderReconciler is implemented by service.ReconciliationService
type OrderReconciler interface {
	Calculate(ctx context.Context, req models.RecalculateRequest) (*models.RecalculateResponse, error)
	SendRecalculation(ctx context.Context, req models.RecalculateRequest) (*models.RecalculateResponse, error)
}

var (
	_ CatalogImporter = (*service.CatalogImportService)(nil)
	_ MenuRenderer    = (*service.MenuService)(nil)
	_ ImageProvider   = (*service.ImageService)(nil)
	_ OrderReconciler = (*service.ReconciliationService)(nil)
)
