package storage

import (
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestLocalDriver(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	driver := NewLocalDriver(base)

	t.Run("upload writes the file and returns a public url", func(t *testing.T) {
		path, url, err := driver.Upload(ctx, strings.NewReader("image-bytes"), "tenants/t1/branding/logo.png")

		require.NoError(t, err)
		assert.Equal(t, "tenants/t1/branding/logo.png", path)
		assert.Equal(t, "/uploads/tenants/t1/branding/logo.png", url)

		data, err := os.ReadFile(filepath.Join(base, "tenants/t1/branding/logo.png"))
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(data))
	})

	t.Run("delete removes the file", func(t *testing.T) {
		_, _, err := driver.Upload(ctx, strings.NewReader("x"), "cars/one.jpg")
		require.NoError(t, err)

		require.NoError(t, driver.Delete(ctx, "cars/one.jpg"))

		_, err = os.Stat(filepath.Join(base, "cars/one.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing file is not an error", func(t *testing.T) {
		assert.NoError(t, driver.Delete(ctx, "cars/never-existed.jpg"))
	})
}

func TestUploaderValidateImage(t *testing.T) {
	u := NewUploader(NewLocalDriver(t.TempDir()))

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		err := u.ValidateImage(header("malware.exe", 100))
		assert.Error(t, err)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		err := u.ValidateImage(header("big.jpg", u.MaxFileSize+1))
		assert.Error(t, err)
	})

	t.Run("accepts a normal jpeg", func(t *testing.T) {
		assert.NoError(t, u.ValidateImage(header("car.jpg", 1024)))
	})
}

func TestUploaderDeleteByURL(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	driver := NewLocalDriver(base)
	u := NewUploader(driver)

	_, url, err := driver.Upload(ctx, strings.NewReader("x"), "tenants/t1/branding/logo.png")
	require.NoError(t, err)

	require.NoError(t, u.DeleteByURL(ctx, url))

	_, err = os.Stat(filepath.Join(base, "tenants/t1/branding/logo.png"))
	assert.True(t, os.IsNotExist(err))
}
