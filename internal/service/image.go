package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"time"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	"gorm.io/gorm"

	"github.com/Haval-Sadun/mealmaster-m/internal/logger"
	"github.com/Haval-Sadun/mealmaster-m/internal/models"
)

const (
	// MaxUploadBytes is the largest raw image accepted for ingestion.
	// Callers must reject bigger payloads before handing bytes to Ingest.
	MaxUploadBytes = 2 << 20

	// Thumbnails fit inside a thumbSide x thumbSide box, aspect preserved.
	thumbSide = 400

	defaultContentType   = "application/octet-stream"
	thumbnailContentType = "image/jpeg"
)

// ImageService ingests uploaded image bytes for recipes and serves the
// stored payloads back.
type ImageService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewImageService creates a new ImageService instance.
func NewImageService(db *gorm.DB, log *logger.Logger) *ImageService {
	return &ImageService{db: db, log: log.With("service", "image")}
}

// Ingest stores the raw bytes as an image row bound to the recipe and tries
// to derive a thumbnail. Thumbnail derivation failing is not an error: the
// raw payload is stored either way and the thumbnail fields stay absent.
func (s *ImageService) Ingest(ctx context.Context, recipeID uint, filename, contentType string, data []byte) (*models.Image, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, persistence("check recipe", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	img := s.BuildImage(filename, contentType, data)
	img.RecipeID = recipeID

	if err := s.db.WithContext(ctx).Create(img).Error; err != nil {
		return nil, persistence("store image", err)
	}
	return img, nil
}

// BuildImage assembles an image row from raw bytes without persisting it:
// content type defaulted, size fixed to the payload length, thumbnail
// derived when the bytes decode. Used by Ingest and by aggregate creation
// with inline images.
func (s *ImageService) BuildImage(filename, contentType string, data []byte) *models.Image {
	if contentType == "" {
		contentType = defaultContentType
	}

	img := &models.Image{
		Filename:    filename,
		ContentType: contentType,
		Size:        uint(len(data)),
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}

	if thumb, ct, ok := makeThumbnail(data); ok {
		img.Thumbnail = thumb
		img.ThumbnailContentType = &ct
	} else {
		s.log.Warn("thumbnail derivation skipped", "filename", filename)
	}
	return img
}

// GetImage loads one image row including payloads.
func (s *ImageService) GetImage(ctx context.Context, id uint) (*models.Image, error) {
	var img models.Image
	if err := s.db.WithContext(ctx).First(&img, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistence("get image", err)
	}
	return &img, nil
}

// RawPayload returns the stored raw bytes with their content type, or
// ErrNotFound when the image or its raw payload is absent.
func (s *ImageService) RawPayload(ctx context.Context, id uint) ([]byte, string, error) {
	img, err := s.GetImage(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if len(img.Data) == 0 {
		return nil, "", ErrNotFound
	}
	return img.Data, img.ContentType, nil
}

// ThumbnailPayload returns the stored thumbnail bytes with their content
// type, or ErrNotFound when the image or its thumbnail is absent.
func (s *ImageService) ThumbnailPayload(ctx context.Context, id uint) ([]byte, string, error) {
	img, err := s.GetImage(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if len(img.Thumbnail) == 0 {
		return nil, "", ErrNotFound
	}
	ct := thumbnailContentType
	if img.ThumbnailContentType != nil {
		ct = *img.ThumbnailContentType
	}
	return img.Thumbnail, ct, nil
}

// ListImages returns the image rows of one recipe.
func (s *ImageService) ListImages(ctx context.Context, recipeID uint) ([]models.Image, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&count).Error; err != nil {
		return nil, persistence("check recipe", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	var images []models.Image
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Order("id").Find(&images).Error; err != nil {
		return nil, persistence("list images", err)
	}
	return images, nil
}

// makeThumbnail decodes raw bytes and re-encodes a JPEG bounded by
// thumbSide x thumbSide, aspect ratio preserved. Images already inside the
// box are re-encoded at their original dimensions. The third return reports
// whether a thumbnail was produced; failure is never an error.
func makeThumbnail(data []byte) ([]byte, string, bool) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", false
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, "", false
	}

	tw, th := w, h
	if w > thumbSide || h > thumbSide {
		if w >= h {
			tw = thumbSide
			th = h * thumbSide / w
		} else {
			th = thumbSide
			tw = w * thumbSide / h
		}
		if tw < 1 {
			tw = 1
		}
		if th < 1 {
			th = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, nil); err != nil {
		return nil, "", false
	}
	return out.Bytes(), thumbnailContentType, true
}
