package controller

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"carnes-boutique/apperrors"
	"carnes-boutique/logger"
	"carnes-boutique/models"
	"carnes-boutique/pricing"
	"carnes-boutique/repository"
	"carnes-boutique/service"
)

// CatalogController handles HTTP requests for catalog import, browsing and menus
type CatalogController struct {
	repository      repository.CatalogRepositoryInterface
	importer        CatalogImporter
	menus           MenuRenderer
	images          ImageProvider
	defaultFolderID string // Drive folder with price-list PDFs
	photoFolderID   string // Drive folder with product photos
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	repo repository.CatalogRepositoryInterface,
	importer CatalogImporter,
	menus MenuRenderer,
	images ImageProvider,
	defaultFolderID string,
	photoFolderID string,
) *CatalogController {
	return &CatalogController{
		repository:      repo,
		importer:        importer,
		menus:           menus,
		images:          images,
		defaultFolderID: defaultFolderID,
		photoFolderID:   photoFolderID,
	}
}

// validMenuFormats is a map of valid menu format values
var validMenuFormats = map[string]bool{
	"html": true,
	"pdf":  true,
}

// priceListUpload is a request body holding a PDF or plain-text price list
type priceListUpload struct {
	data  []byte
	isPDF bool
}

func readPriceList(r *http.Request) (*priceListUpload, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		return nil, apperrors.New(http.StatusBadRequest, "failed to read request body", err)
	}
	if len(data) > maxUploadBytes {
		return nil, apperrors.New(http.StatusRequestEntityTooLarge, "price list is too large", nil)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperrors.BadRequest("request body is empty")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	isPDF := mediaType == "application/pdf" || bytes.HasPrefix(data, []byte("%PDF"))
	return &priceListUpload{data: data, isPDF: isPDF}, nil
}

// Import handles POST /admin/catalog/import?source=
// Body is a PDF (application/pdf) or the price list as plain text.
func (c *CatalogController) Import(w http.ResponseWriter, r *http.Request) {
	upload, err := readPriceList(r)
	if err != nil {
		writeError(w, r, "Import", err)
		return
	}

	source := strings.TrimSpace(r.URL.Query().Get("source"))
	if source == "" {
		source = "upload"
	}

	var result *service.ImportResult
	if upload.isPDF {
		result, err = c.importer.ImportPDF(r.Context(), upload.data, source)
	} else {
		result, err = c.importer.ImportText(r.Context(), string(upload.data), source)
	}
	if err != nil {
		writeError(w, r, "Import", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Preview handles POST /admin/catalog/import/preview
func (c *CatalogController) Preview(w http.ResponseWriter, r *http.Request) {
	upload, err := readPriceList(r)
	if err != nil {
		writeError(w, r, "Preview", err)
		return
	}

	var items []models.CatalogItem
	if upload.isPDF {
		items, err = c.importer.PreviewPDF(r.Context(), upload.data)
	} else {
		items, err = c.importer.Preview(r.Context(), string(upload.data))
	}
	if err != nil {
		writeError(w, r, "Preview", err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// ImportFromDrive handles POST /admin/catalog/import/drive?folderId=
func (c *CatalogController) ImportFromDrive(w http.ResponseWriter, r *http.Request) {
	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		folderID = c.defaultFolderID
	}
	if folderID == "" {
		writeError(w, r, "ImportFromDrive", apperrors.BadRequest("folderId parameter is required"))
		return
	}

	result, err := c.importer.ImportFromDrive(r.Context(), folderID)
	if err != nil {
		writeError(w, r, "ImportFromDrive", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// List handles GET /admin/catalog?region=
func (c *CatalogController) List(w http.ResponseWriter, r *http.Request) {
	region := strings.TrimSpace(r.URL.Query().Get("region"))

	var (
		items []models.CatalogItem
		err   error
	)
	if region == "" {
		items, err = c.repository.List(r.Context())
	} else {
		if !pricing.GetEngine().HasRegion(region) {
			writeError(w, r, "List", fmt.Errorf("%w: %s", service.ErrUnknownRegion, region))
			return
		}
		items, err = c.repository.ListByRegion(r.Context(), region)
	}
	if err != nil {
		writeError(w, r, "List", err)
		return
	}
	if items == nil {
		items = []models.CatalogItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /admin/catalog/{id}
func (c *CatalogController) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, "Get", err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Snapshots handles GET /admin/catalog/snapshots?limit=
func (c *CatalogController) Snapshots(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, "Snapshots", apperrors.BadRequest("limit must be a positive integer"))
			return
		}
		limit = n
	}

	snapshots, err := c.repository.ListSnapshots(r.Context(), limit)
	if err != nil {
		writeError(w, r, "Snapshots", err)
		return
	}

	writeJSON(w, http.StatusOK, snapshots)
}

// ItemImage handles GET /admin/catalog/items/{id}/image?size=thumb|medium
func (c *CatalogController) ItemImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	size := r.URL.Query().Get("size")
	if size == "" {
		size = "medium"
	}
	if !service.ValidImageSizes[size] {
		writeError(w, r, "ItemImage", apperrors.BadRequest("invalid size. Valid sizes: thumb, medium"))
		return
	}

	data, err := c.images.GetItemImage(r.Context(), id, size)
	if err != nil {
		writeError(w, r, "ItemImage", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// SyncImages handles POST /admin/catalog/images/sync?folderId=
func (c *CatalogController) SyncImages(w http.ResponseWriter, r *http.Request) {
	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		folderID = c.photoFolderID
	}
	if folderID == "" {
		writeError(w, r, "SyncImages", apperrors.BadRequest("folderId parameter is required"))
		return
	}

	result, err := c.images.SyncItemImages(r.Context(), folderID)
	if err != nil {
		writeError(w, r, "SyncImages", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// WarmImages handles POST /admin/catalog/images/warm?size=thumb|medium
func (c *CatalogController) WarmImages(w http.ResponseWriter, r *http.Request) {
	size := r.URL.Query().Get("size")
	if size == "" {
		size = "thumb"
	}
	if !service.ValidImageSizes[size] {
		writeError(w, r, "WarmImages", apperrors.BadRequest("invalid size. Valid sizes: thumb, medium"))
		return
	}

	result, err := c.images.WarmCache(r.Context(), size)
	if err != nil {
		writeError(w, r, "WarmImages", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Menu handles GET /admin/menu?region=regionA&format=html|pdf
func (c *CatalogController) Menu(w http.ResponseWriter, r *http.Request) {
	region := strings.TrimSpace(r.URL.Query().Get("region"))
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	if !validMenuFormats[format] {
		writeError(w, r, "Menu", apperrors.BadRequest("invalid format. Valid formats: html, pdf"))
		return
	}

	if format == "html" {
		c.RenderMenu(w, r)
		return
	}

	pdfData, err := c.menus.GeneratePDF(r.Context(), region)
	if err != nil {
		writeError(w, r, "Menu", err)
		return
	}

	logger.Info(r.Context(), "📄 Menu downloaded", zap.String("region", region))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="menu-%s.pdf"`, region))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfData)
}

// RenderMenu handles GET /admin/menu/render?region=
// Headless Chrome prints this page when generating the PDF.
func (c *CatalogController) RenderMenu(w http.ResponseWriter, r *http.Request) {
	region := strings.TrimSpace(r.URL.Query().Get("region"))

	html, err := c.menus.RenderHTML(r.Context(), region)
	if err != nil {
		writeError(w, r, "RenderMenu", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, html)
}
