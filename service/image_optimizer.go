package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"carnes-boutique/logger"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ValidImageSizes are the sizes accepted by OptimizeImage
var ValidImageSizes = map[string]bool{
	"thumb":  true,
	"medium": true,
}

// OptimizeImage converts a product photo to JPEG and fits it inside the
// size's bounding box, keeping aspect ratio. size is "thumb" or "medium".
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case "thumb":
		maxDim, quality = maxSizeThumb, qualityThumb
	case "medium":
	default:
		logger.Log.Warn("⚠️  Unknown image size, defaulting to medium", zap.String("size", size))
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	logger.Log.Debug("✓ Image optimized",
		zap.String("size", size),
		zap.Int("quality", quality),
		zap.Int("output_bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}
