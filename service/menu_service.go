package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"carnes-boutique/logger"
	"carnes-boutique/models"
	"carnes-boutique/pricing"
	"carnes-boutique/repository"
	"carnes-boutique/utils"
)

//go:embed templates/menu.html
var menuTemplateHTML string

var menuTemplate = template.Must(template.New("menu").Parse(menuTemplateHTML))

// MenuService renders the retail menu of a region as HTML or PDF
type MenuService struct {
	repository repository.CatalogRepositoryInterface
	baseURL    string // Base URL of this server (e.g., "http://localhost:8080")
	now        func() time.Time
}

// NewMenuService creates a new MenuService
func NewMenuService(repo repository.CatalogRepositoryInterface, baseURL string) *MenuService {
	return &MenuService{
		repository: repo,
		baseURL:    baseURL,
		now:        time.Now,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func checkRegion(region string) error {
	if region == "" {
		return ErrRegionRequired
	}
	if !pricing.GetEngine().HasRegion(region) {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}
	return nil
}

// BuildMenu groups the items available in a region by category, keeping
// price-list order for both categories and items.
func (s *MenuService) BuildMenu(ctx context.Context, region string) (*models.MenuData, error) {
	if err := checkRegion(region); err != nil {
		return nil, err
	}

	items, err := s.repository.ListByRegion(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for %s: %w", region, err)
	}

	menu := &models.MenuData{
		Region:      region,
		RegionLabel: pricing.GetEngine().RegionLabel(region),
		GeneratedAt: s.now().Format("02/01/2006"),
		Categories:  []models.MenuCategory{},
	}

	index := make(map[string]int)
	for _, item := range items {
		price, ok := item.RegionalPrice.Price(region)
		if !ok {
			continue
		}

		row := models.MenuRow{
			Name:     item.Name,
			Price:    utils.FormatMXN(price),
			UnitNote: "/kg",
		}
		if item.Unit == models.UnitPiece {
			row.UnitNote = "/pza"
		}
		if item.ImageFileID != "" {
			row.ImageURL = fmt.Sprintf("%s/admin/catalog/items/%s/image?size=thumb", s.baseURL, url.PathEscape(item.ID))
		}

		i, seen := index[item.Category]
		if !seen {
			i = len(menu.Categories)
			index[item.Category] = i
			menu.Categories = append(menu.Categories, models.MenuCategory{Name: item.Category})
		}
		menu.Categories[i].Items = append(menu.Categories[i].Items, row)
	}

	return menu, nil
}

// RenderHTML renders the menu template for a region
func (s *MenuService) RenderHTML(ctx context.Context, region string) (string, error) {
	menu, err := s.BuildMenu(ctx, region)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := menuTemplate.Execute(&buf, menu); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF prints the rendered menu page of a region with headless Chrome
func (s *MenuService) GeneratePDF(ctx context.Context, region string) ([]byte, error) {
	if err := checkRegion(region); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		logger.Warn(ctx, "⚠️  Chrome not found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/menu/render?region=%s", s.baseURL, url.QueryEscape(region))

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for product photos before printing
		chromedp.Evaluate(`
			Promise.all(Array.from(document.images).map(img => img.complete ? null :
				new Promise(resolve => { img.onload = img.onerror = resolve; setTimeout(resolve, 5000); })));
		`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	logger.Info(ctx, "📄 Menu PDF generated", zap.String("region", region), zap.Int("bytes", len(pdfBuf)))
	return pdfBuf, nil
}
