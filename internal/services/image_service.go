package services

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageService handles image processing and storage
type ImageService struct {
	uploadDir string
}

func NewImageService(uploadDir string) *ImageService {
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		_ = os.MkdirAll(uploadDir, 0755)
	}
	return &ImageService{
		uploadDir: uploadDir,
	}
}

// UploadResult holds the stored paths for an uploaded image
type UploadResult struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url"`
	Filename string `json:"filename"`
}

// ProcessAndSave validates the image, stores the original and writes a
// 256px thumbnail next to it. Returned paths are relative to the static
// /uploads mount, with a timestamp suffix to bust client caches.
func (s *ImageService) ProcessAndSave(file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil, fmt.Errorf("unsupported image format (JPG/PNG only)")
	}

	filename := uuid.New().String()
	originalFilename := filename + ext
	thumbFilename := filename + "_thumb" + ext

	originalRelPath := "/uploads/" + originalFilename
	thumbRelPath := "/uploads/" + thumbFilename

	// Decoding doubles as validation of the actual content
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Copy the original stream untouched to keep full quality
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	outOriginalPath := filepath.Join(s.uploadDir, originalFilename)
	outOriginal, err := os.Create(outOriginalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer outOriginal.Close()

	if _, err := io.Copy(outOriginal, file); err != nil {
		return nil, fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Fit(img, 256, 256, imaging.Lanczos)

	outThumbPath := filepath.Join(s.uploadDir, thumbFilename)
	outThumb, err := os.Create(outThumbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail: %w", err)
	}
	defer outThumb.Close()

	if ext == ".png" {
		err = png.Encode(outThumb, thumbImg)
	} else {
		err = jpeg.Encode(outThumb, thumbImg, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save thumbnail: %w", err)
	}

	ts := fmt.Sprintf("%d", time.Now().Unix())
	return &UploadResult{
		URL:      originalRelPath + "?t=" + ts,
		ThumbURL: thumbRelPath + "?t=" + ts,
		Filename: originalFilename,
	}, nil
}
