package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"carnes-boutique/logger"
	"carnes-boutique/models"
)

const (
	mimePDF = "application/pdf"
	// 25 MB is well above any supplier list or product photo
	maxDriveDownload = 25 << 20
)

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance.
// credentialsJSON takes precedence over credentialsPath (Service Account file).
func NewDriveService(ctx context.Context, credentialsPath, credentialsJSON string, opts ...option.ClientOption) (*DriveService, error) {
	switch {
	case credentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	case credentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	opts = append(opts, option.WithScopes(drive.DriveReadonlyScope))

	client, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{client: client}, nil
}

var _ DriveServiceInterface = (*DriveService)(nil)

// ListPriceLists lists the PDF files in a folder
func (ds *DriveService) ListPriceLists(ctx context.Context, folderID string) ([]models.DriveFile, error) {
	files, err := ds.listFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	var out []models.DriveFile
	for _, f := range files {
		if strings.EqualFold(f.MimeType, mimePDF) {
			out = append(out, f)
		}
	}
	return out, nil
}

// ListImages lists the image files in a folder
func (ds *DriveService) ListImages(ctx context.Context, folderID string) ([]models.DriveFile, error) {
	files, err := ds.listFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	var out []models.DriveFile
	for _, f := range files {
		if imageMimeTypes[strings.ToLower(f.MimeType)] {
			out = append(out, f)
		}
	}
	return out, nil
}

// Download returns the content of a Drive file
func (ds *DriveService) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveDownload+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	if len(data) > maxDriveDownload {
		return nil, fmt.Errorf("file %s exceeds %d bytes", fileID, maxDriveDownload)
	}
	return data, nil
}

func (ds *DriveService) listFolder(ctx context.Context, folderID string) ([]models.DriveFile, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folder id is required")
	}
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))

	var files []models.DriveFile
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType, modifiedTime)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		for _, f := range r.Files {
			modified, _ := time.Parse(time.RFC3339, f.ModifiedTime)
			files = append(files, models.DriveFile{
				ID:           f.Id,
				Name:         f.Name,
				MimeType:     f.MimeType,
				ModifiedTime: modified,
			})
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}

	logger.Info(ctx, "📂 Listed Drive folder", zap.String("folder_id", folderID), zap.Int("files", len(files)))
	return files, nil
}
