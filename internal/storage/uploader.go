package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const thumbMaxSize = 320

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// Uploader stores multipart image uploads through a Driver under
// tenant-scoped folders and derives thumbnails for primary images.
type Uploader struct {
	driver Driver

	// MaxFileSize in bytes; zero disables the check.
	MaxFileSize int64
}

func NewUploader(driver Driver) *Uploader {
	return &Uploader{
		driver:      driver,
		MaxFileSize: 10 << 20,
	}
}

func (u *Uploader) ValidateImage(file *multipart.FileHeader) error {
	if u.MaxFileSize > 0 && file.Size > u.MaxFileSize {
		return fmt.Errorf("file %s exceeds maximum size of %d bytes", file.Filename, u.MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type %s not allowed", ext)
}

// UploadImage stores a single image under folder and returns its public URL.
func (u *Uploader) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if err := u.ValidateImage(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s/%s%s", strings.TrimSuffix(folder, "/"), uuid.NewString(), ext)

	_, publicURL, err := u.driver.Upload(ctx, src, name)
	if err != nil {
		return "", err
	}

	return publicURL, nil
}

// UploadImageWithThumbnail stores the image plus a JPEG thumbnail variant
// next to it. Returns the public URLs of both.
func (u *Uploader) UploadImageWithThumbnail(
	ctx context.Context,
	file *multipart.FileHeader,
	folder string,
) (imageURL string, thumbURL string, err error) {

	if err := u.ValidateImage(file); err != nil {
		return "", "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	id := uuid.NewString()
	base := strings.TrimSuffix(folder, "/")

	// Decode once so the same bytes feed both the original and the thumb.
	img, _, err := image.Decode(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	var original bytes.Buffer
	if err := jpeg.Encode(&original, img, &jpeg.Options{Quality: 90}); err != nil {
		return "", "", fmt.Errorf("failed to encode image: %w", err)
	}

	_, imageURL, err = u.driver.Upload(ctx, &original, fmt.Sprintf("%s/%s.jpg", base, id))
	if err != nil {
		return "", "", err
	}

	thumb := imaging.Fit(img, thumbMaxSize, thumbMaxSize, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := jpeg.Encode(&thumbBuf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return "", "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	_, thumbURL, err = u.driver.Upload(ctx, &thumbBuf, fmt.Sprintf("%s/%s_thumb.jpg", base, id))
	if err != nil {
		return "", "", err
	}

	return imageURL, thumbURL, nil
}

// DeleteByURL removes a previously uploaded object given its public URL.
// Best effort: unknown URL shapes are ignored.
func (u *Uploader) DeleteByURL(ctx context.Context, publicURL string) error {
	path := publicURL
	if i := strings.Index(publicURL, "/uploads/"); i >= 0 {
		path = publicURL[i+len("/uploads/"):]
	} else if i := strings.Index(publicURL, ".amazonaws.com/"); i >= 0 {
		path = publicURL[i+len(".amazonaws.com/"):]
	}
	if path == "" {
		return nil
	}
	return u.driver.Delete(ctx, path)
}
