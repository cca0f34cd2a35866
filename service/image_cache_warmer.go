package service

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"carnes-boutique/logger"
)

// ImageWarmResult summarizes a cache warm-up run
type ImageWarmResult struct {
	Total      int      `json:"total"` // items with a linked photo
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"` // already cached, or photo shared with an earlier item
	Errors     []string `json:"errors"`
}

// WarmCache downloads and optimizes the photo of every catalog item that has
// one, so menu rendering never waits on Drive. Per-photo failures are
// collected and do not stop the run.
func (s *ImageService) WarmCache(ctx context.Context, size string) (*ImageWarmResult, error) {
	if s.drive == nil {
		return nil, ErrDriveNotConfigured
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	result := &ImageWarmResult{Errors: []string{}}
	seen := make(map[string]bool)

	for _, item := range items {
		if item.ImageFileID == "" {
			continue
		}
		result.Total++

		if seen[item.ImageFileID] {
			result.Skipped++
			continue
		}
		seen[item.ImageFileID] = true

		if _, err := os.Stat(s.cachePath(item.ImageFileID, size)); err == nil {
			result.Skipped++
			continue
		}

		if _, err := s.GetOptimizedImage(ctx, item.ImageFileID, size); err != nil {
			msg := fmt.Sprintf("%s (%s): %v", item.ID, item.ImageFileID, err)
			logger.Warn(ctx, "❌ Failed to cache photo", zap.String("item", item.ID), zap.Error(err))
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.Downloaded++
	}

	logger.Info(ctx, "🎉 Photo cache warmed",
		zap.String("size", size),
		zap.Int("total", result.Total),
		zap.Int("downloaded", result.Downloaded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Errors)),
	)
	return result, nil
}
