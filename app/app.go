package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"carnes-boutique/app/controller"
	"carnes-boutique/app/router"
	"carnes-boutique/db"
	"carnes-boutique/logger"
	"carnes-boutique/pricing"
	"carnes-boutique/repository"
	"carnes-boutique/sender"
	"carnes-boutique/service"
	"carnes-boutique/storage"
)

// Initialize wires the database, optional integrations and HTTP routes
func Initialize(ctx context.Context, cfg *Config) (http.Handler, error) {
	if err := db.InitDB(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if _, err := pricing.LoadEngine(cfg.PricingConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load pricing config: %w", err)
	}

	var repo repository.CatalogRepositoryInterface = repository.NewCatalogRepository(db.DB)
	if cfg.RedisURL != "" {
		client, err := repository.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn(ctx, "⚠️  Redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			repo = repository.NewCachedCatalogRepository(repo, client, cfg.CacheTTL)
			logger.Info(ctx, "✅ Catalog cache enabled", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	// Optional integrations stay nil interfaces when not configured
	var drive service.DriveServiceInterface
	if cfg.DriveEnabled() {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath, cfg.GoogleCredentialsJSON)
		if err != nil {
			return nil, err
		}
		drive = driveService
	} else {
		logger.Warn(ctx, "⚠️  Google Drive credentials not set, Drive imports and photos disabled")
	}

	var archive storage.ArchiveStore
	if s3cfg := storage.S3ConfigFromEnv(); s3cfg.Bucket != "" {
		s3Archive, err := storage.NewS3Archive(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		archive = s3Archive
		logger.Info(ctx, "✅ Price-list archive enabled", zap.String("bucket", s3cfg.Bucket))
	}

	var msgSender sender.MessageSender
	if whatsApp, err := sender.NewWhatsAppSender(); err != nil {
		logger.Warn(ctx, "⚠️  WhatsApp sender disabled", zap.Error(err))
	} else {
		msgSender = whatsApp
	}

	importService := service.NewCatalogImportService(repo, service.NewPDFReader(), drive, archive)
	menuService := service.NewMenuService(repo, cfg.BaseURL)
	imageService := service.NewImageService(drive, repo, cfg.ImageCacheDir)
	reconciliationService := service.NewReconciliationService(repo, msgSender)

	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(repo, importService, menuService, imageService, cfg.PriceListFolderID, cfg.PhotoFolderID),
		Order:   controller.NewOrderController(reconciliationService),
	}

	return router.SetupRoutes(controllers), nil
}
