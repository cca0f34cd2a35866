package repository

import (
	"context"
	"errors"

	"carnes-boutique/models"
)

// ErrNotFound is returned when a catalog row does not exist
var ErrNotFound = errors.New("not found")

// CatalogRepositoryInterface defines the contract for catalog storage.
// Items are returned in price-list order, which reconciliation relies on for tie-breaking.
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interface.go CatalogRepositoryInterface
type CatalogRepositoryInterface interface {
	// ReplaceAll makes snapshot.Items the current catalog and records the snapshot.
	ReplaceAll(ctx context.Context, snapshot *models.CatalogSnapshot) error
	List(ctx context.Context) ([]models.CatalogItem, error)
	ListByRegion(ctx context.Context, region string) ([]models.CatalogItem, error)
	GetByID(ctx context.Context, id string) (*models.CatalogItem, error)
	SetImage(ctx context.Context, id string, imageFileID string) error
	ListSnapshots(ctx context.Context, limit int) ([]models.CatalogSnapshot, error)
}
