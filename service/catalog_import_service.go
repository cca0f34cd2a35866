package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carnes-boutique/logger"
	"carnes-boutique/models"
	"carnes-boutique/pricelist"
	"carnes-boutique/pricing"
	"carnes-boutique/repository"
	"carnes-boutique/storage"
	"carnes-boutique/utils"
)

// ImportResult summarizes one catalog import
type ImportResult struct {
	SnapshotID     string     `json:"snapshotId"`
	Source         string     `json:"source"`
	ImportedAt     time.Time  `json:"importedAt"`
	ListDate       *time.Time `json:"listDate,omitempty"` // date printed in the price-list file name
	Parsed         int        `json:"parsed"`             // priced records found by the extractor
	Imported       int        `json:"imported"`
	Duplicates     int        `json:"duplicates"` // records whose id was already taken earlier in the list
	Suppressed     int        `json:"suppressed"` // regional prices dropped by the sanity band
	Unpriced       int        `json:"unpriced"`
	RejectedPrices int        `json:"rejectedPrices"`
	SkippedLines   int        `json:"skippedLines"`
	ArchiveURL     string     `json:"archiveUrl,omitempty"`
}

// CatalogImportService turns wholesale price lists into the current catalog
type CatalogImportService struct {
	repository repository.CatalogRepositoryInterface
	parser     *pricelist.Parser
	extractor  PDFTextExtractor
	drive      DriveServiceInterface
	archive    storage.ArchiveStore
	now        func() time.Time
	newID      func() string
}

// NewCatalogImportService creates a new CatalogImportService.
// drive and archive may be nil when those integrations are not configured.
func NewCatalogImportService(
	repo repository.CatalogRepositoryInterface,
	extractor PDFTextExtractor,
	drive DriveServiceInterface,
	archive storage.ArchiveStore,
) *CatalogImportService {
	if extractor == nil {
		extractor = NewPDFReader()
	}
	return &CatalogImportService{
		repository: repo,
		parser:     pricelist.NewParser(),
		extractor:  extractor,
		drive:      drive,
		archive:    archive,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Preview parses and prices text without storing anything
func (s *CatalogImportService) Preview(ctx context.Context, text string) ([]models.CatalogItem, error) {
	items, _ := s.build(text)
	return items, nil
}

// PreviewPDF is Preview for a PDF price list
func (s *CatalogImportService) PreviewPDF(ctx context.Context, data []byte) ([]models.CatalogItem, error) {
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read price list PDF: %w", err)
	}
	return s.Preview(ctx, text)
}

// ImportText replaces the catalog with the items priced from text
func (s *CatalogImportService) ImportText(ctx context.Context, text, source string) (*ImportResult, error) {
	result, err := s.store(ctx, text, source)
	if err != nil {
		return nil, err
	}
	s.archiveOriginal(ctx, result, []byte(text), "text/plain; charset=utf-8")
	return result, nil
}

// ImportPDF extracts the text of a PDF price list and imports it
func (s *CatalogImportService) ImportPDF(ctx context.Context, data []byte, source string) (*ImportResult, error) {
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read price list PDF: %w", err)
	}

	result, err := s.store(ctx, text, source)
	if err != nil {
		return nil, err
	}
	s.archiveOriginal(ctx, result, data, "application/pdf")
	return result, nil
}

// ImportFromDrive imports the newest price-list PDF of a Drive folder
func (s *CatalogImportService) ImportFromDrive(ctx context.Context, folderID string) (*ImportResult, error) {
	if s.drive == nil {
		return nil, ErrDriveNotConfigured
	}

	files, err := s.drive.ListPriceLists(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list price lists from Drive: %w", err)
	}

	latest, ok := latestPriceList(files)
	if !ok {
		return nil, ErrNoPriceList
	}
	logger.Info(ctx, "📥 Downloading price list", zap.String("file", latest.Name), zap.String("fileId", latest.ID))

	data, err := s.drive.Download(ctx, latest.ID)
	if err != nil {
		return nil, err
	}
	return s.ImportPDF(ctx, data, latest.Name)
}

// latestPriceList picks the file with the newest list date. The date comes
// from the file name when it carries one, else from the Drive modified time.
func latestPriceList(files []models.DriveFile) (models.DriveFile, bool) {
	var (
		best     models.DriveFile
		bestDate time.Time
		found    bool
	)
	for _, f := range files {
		date, err := utils.ParsePriceListFileName(f.Name)
		if err != nil {
			date = f.ModifiedTime
		}
		if !found || date.After(bestDate) || (date.Equal(bestDate) && f.ModifiedTime.After(best.ModifiedTime)) {
			best, bestDate, found = f, date, true
		}
	}
	return best, found
}

// build parses and prices text. When an id repeats, the first item wins.
func (s *CatalogImportService) build(text string) ([]models.CatalogItem, *ImportResult) {
	parsed := s.parser.Run(text)
	engine := pricing.GetEngine()

	result := &ImportResult{
		Parsed:         len(parsed.Records),
		Unpriced:       parsed.Unpriced,
		RejectedPrices: parsed.RejectedPrices,
		SkippedLines:   parsed.SkippedLines,
	}

	items := make([]models.CatalogItem, 0, len(parsed.Records))
	seen := make(map[string]bool, len(parsed.Records))
	for _, rec := range parsed.Records {
		item := engine.BuildCatalogItem(rec)
		if seen[item.ID] {
			result.Duplicates++
			continue
		}
		seen[item.ID] = true
		result.Suppressed += len(item.Annotations)
		items = append(items, item)
	}
	result.Imported = len(items)
	return items, result
}

func (s *CatalogImportService) store(ctx context.Context, text, source string) (*ImportResult, error) {
	items, result := s.build(text)
	if len(items) == 0 {
		logger.Warn(ctx, "⚠️  Price list produced no items", zap.String("source", source), zap.Int("unpriced", result.Unpriced))
		return nil, ErrEmptyImport
	}

	now := s.now().UTC()
	for i := range items {
		items[i].UpdatedAt = now
	}

	result.SnapshotID = s.newID()
	result.Source = source
	result.ImportedAt = now
	if date, err := utils.ParsePriceListFileName(source); err == nil {
		result.ListDate = &date
	}

	snapshot := &models.CatalogSnapshot{
		ID:         result.SnapshotID,
		ImportedAt: now,
		Source:     source,
		ItemCount:  len(items),
		Items:      items,
	}
	if err := s.repository.ReplaceAll(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store catalog: %w", err)
	}

	logger.Info(ctx, "✅ Catalog imported",
		zap.String("snapshotId", result.SnapshotID),
		zap.String("source", source),
		zap.Int("imported", result.Imported),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("suppressed", result.Suppressed),
		zap.Int("unpriced", result.Unpriced),
	)
	return result, nil
}

// archiveOriginal keeps a copy of the imported list. The catalog is already
// replaced at this point, so a failure is only logged.
func (s *CatalogImportService) archiveOriginal(ctx context.Context, result *ImportResult, data []byte, contentType string) {
	if s.archive == nil {
		return
	}
	key := storage.ArchiveKey(result.ImportedAt, result.SnapshotID, result.Source)
	location, err := s.archive.Put(ctx, key, data, contentType)
	if err != nil {
		logger.Warn(ctx, "⚠️  Failed to archive price list", zap.String("key", key), zap.Error(err))
		return
	}
	result.ArchiveURL = location
}
