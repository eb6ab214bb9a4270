package storage

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 lossless webp (VP8L), black pixel.
var webpPixel = []byte{
	0x52, 0x49, 0x46, 0x46, 0x16, 0x00, 0x00, 0x00, // RIFF, size 22
	0x57, 0x45, 0x42, 0x50, // WEBP
	0x56, 0x50, 0x38, 0x4C, 0x09, 0x00, 0x00, 0x00, // VP8L, size 9
	0x2F, 0x00, 0x00, 0x00, 0x00, 0x88, 0x88, 0xFE, 0x07,
	0x00, // pad
}

func pngPixel(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func fileHeaderWithContent(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestUploadImageWithThumbnail(t *testing.T) {
	ctx := context.Background()

	t.Run("png primary image gets a jpeg thumbnail", func(t *testing.T) {
		u := NewUploader(NewLocalDriver(t.TempDir()))
		file := fileHeaderWithContent(t, "car.png", pngPixel(t))

		imageURL, thumbURL, err := u.UploadImageWithThumbnail(ctx, file, "tenants/t1/cars/primary")

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(imageURL, ".jpg"))
		assert.True(t, strings.HasSuffix(thumbURL, "_thumb.jpg"))
	})

	t.Run("webp primary image decodes and gets a jpeg thumbnail", func(t *testing.T) {
		u := NewUploader(NewLocalDriver(t.TempDir()))
		file := fileHeaderWithContent(t, "car.webp", webpPixel)

		imageURL, thumbURL, err := u.UploadImageWithThumbnail(ctx, file, "tenants/t1/cars/primary")

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(imageURL, ".jpg"))
		assert.True(t, strings.HasSuffix(thumbURL, "_thumb.jpg"))
	})

	t.Run("non-image payload fails to decode", func(t *testing.T) {
		u := NewUploader(NewLocalDriver(t.TempDir()))
		file := fileHeaderWithContent(t, "car.jpg", []byte("not an image"))

		_, _, err := u.UploadImageWithThumbnail(ctx, file, "tenants/t1/cars/primary")

		assert.Error(t, err)
	})
}

func TestUploadImageKeepsOriginalFormat(t *testing.T) {
	ctx := context.Background()
	u := NewUploader(NewLocalDriver(t.TempDir()))

	file := fileHeaderWithContent(t, "gallery.webp", webpPixel)

	url, err := u.UploadImage(ctx, file, "tenants/t1/cars/gallery")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".webp"))
}
