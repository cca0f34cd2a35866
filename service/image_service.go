package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"carnes-boutique/logger"
	"carnes-boutique/repository"
	"carnes-boutique/utils"
)

// DefaultImageCacheDir is where optimized product photos are kept
const DefaultImageCacheDir = "cache/images"

// ImageService serves optimized product photos stored in Google Drive
type ImageService struct {
	drive    DriveServiceInterface
	repo     repository.CatalogRepositoryInterface
	cacheDir string
}

// NewImageService creates a new ImageService
func NewImageService(drive DriveServiceInterface, repo repository.CatalogRepositoryInterface, cacheDir string) *ImageService {
	if cacheDir == "" {
		cacheDir = DefaultImageCacheDir
	}
	return &ImageService{drive: drive, repo: repo, cacheDir: cacheDir}
}

// ImageSyncResult summarizes a photo folder sync
type ImageSyncResult struct {
	Total     int      `json:"total"`
	Linked    int      `json:"linked"`
	Unmatched []string `json:"unmatched"`
}

// GetItemImage returns the optimized photo of a catalog item
func (s *ImageService) GetItemImage(ctx context.Context, itemID, size string) ([]byte, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ImageFileID == "" {
		return nil, fmt.Errorf("item %s has no photo: %w", itemID, repository.ErrNotFound)
	}
	return s.GetOptimizedImage(ctx, item.ImageFileID, size)
}

// GetOptimizedImage downloads, optimizes and caches a Drive image
func (s *ImageService) GetOptimizedImage(ctx context.Context, fileID, size string) ([]byte, error) {
	if s.drive == nil {
		return nil, ErrDriveNotConfigured
	}

	cachePath := s.cachePath(fileID, size)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	raw, err := s.drive.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}

	optimized, err := OptimizeImage(raw, size)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		logger.Warn(ctx, "⚠️  Failed to create image cache directory", zap.Error(err))
		return optimized, nil
	}
	if err := os.WriteFile(cachePath, optimized, 0644); err != nil {
		logger.Warn(ctx, "⚠️  Failed to cache image", zap.String("path", cachePath), zap.Error(err))
	}
	return optimized, nil
}

func (s *ImageService) cachePath(fileID, size string) string {
	return filepath.Join(s.cacheDir, fmt.Sprintf("%s_%s.jpg", utils.Slugify(fileID), size))
}

// SyncItemImages links photos in a Drive folder to catalog items. A photo
// matches when its file name, without extension, slugifies to an item id or
// to the slug of an item's name ("res--arrachera.jpg", "Arrachera.png").
func (s *ImageService) SyncItemImages(ctx context.Context, folderID string) (*ImageSyncResult, error) {
	if s.drive == nil {
		return nil, ErrDriveNotConfigured
	}

	files, err := s.drive.ListImages(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images from Drive: %w", err)
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	byKey := make(map[string]string, len(items)*2)
	for _, item := range items {
		byKey[item.ID] = item.ID
		if _, taken := byKey[utils.Slugify(item.Name)]; !taken {
			byKey[utils.Slugify(item.Name)] = item.ID
		}
	}

	result := &ImageSyncResult{Total: len(files), Unmatched: []string{}}
	for _, f := range files {
		base := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
		key := utils.Slugify(base)
		if strings.Contains(base, "--") {
			parts := strings.SplitN(base, "--", 2)
			key = utils.CatalogItemID(parts[0], parts[1])
		}

		itemID, ok := byKey[key]
		if !ok {
			result.Unmatched = append(result.Unmatched, f.Name)
			continue
		}
		if err := s.repo.SetImage(ctx, itemID, f.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				result.Unmatched = append(result.Unmatched, f.Name)
				continue
			}
			return nil, err
		}
		result.Linked++
	}

	logger.Info(ctx, "🖼️  Photo sync completed",
		zap.Int("total", result.Total),
		zap.Int("linked", result.Linked),
		zap.Int("unmatched", len(result.Unmatched)),
	)
	return result, nil
}
