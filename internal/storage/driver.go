package storage

import (
	"context"
	"io"
	"strings"
)

// Driver abstracts where uploaded assets (tenant logos, car images)
// live. Local disk for development, S3 in deployments.
type Driver interface {
	// Upload stores the file and returns its storage path and public URL.
	Upload(ctx context.Context, file io.Reader, path string) (storagePath string, publicURL string, err error)

	// Delete removes a file. Missing objects are not an error.
	Delete(ctx context.Context, path string) error

	// PublicURL returns the public URL for a stored path.
	PublicURL(path string) string
}

type Config struct {
	Driver string // local, s3

	// Local
	UploadsPath string

	// AWS S3
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSBucket          string
}

func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	case strings.HasSuffix(path, ".gif"):
		return "image/gif"
	}
	return "application/octet-stream"
}
