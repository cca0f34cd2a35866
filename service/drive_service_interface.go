package service

import (
	"context"

	"carnes-boutique/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
//
//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=drive_service_interface.go
type DriveServiceInterface interface {
	ListPriceLists(ctx context.Context, folderID string) ([]models.DriveFile, error)
	ListImages(ctx context.Context, folderID string) ([]models.DriveFile, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}
