package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

// newFileHeader builds the header a multipart form upload of content would produce
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestValidateComplaintImage(t *testing.T) {
	t.Run("PNG accepted", func(t *testing.T) {
		mimeType, err := ValidateComplaintImage(newFileHeader(t, "fan.png", pngHeader))
		assert.NoError(t, err)
		assert.Equal(t, "image/png", mimeType)
	})

	t.Run("JPEG accepted regardless of filename", func(t *testing.T) {
		mimeType, err := ValidateComplaintImage(newFileHeader(t, "fan.txt", jpegHeader))
		assert.NoError(t, err)
		assert.Equal(t, "image/jpeg", mimeType)
	})

	t.Run("Text rejected", func(t *testing.T) {
		_, err := ValidateComplaintImage(newFileHeader(t, "fan.png", []byte("just some text")))
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "image", ve.Field)
		assert.Equal(t, "The image must be a file of type: jpeg, png, webp, gif.", ve.Message)
	})

	t.Run("Oversize rejected", func(t *testing.T) {
		fh := newFileHeader(t, "fan.png", pngHeader)
		fh.Size = MaxComplaintImageSize + 1
		_, err := ValidateComplaintImage(fh)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "The image may not be greater than 5MB.", ve.Message)
	})
}

func TestUploadComplaintImage(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())
	caller := &Caller{UserID: "user-1"}

	t.Run("Stores under the caller prefix with an absolute URL", func(t *testing.T) {
		image, err := UploadComplaintImage(context.Background(), storage, caller, "http://localhost:8080/", newFileHeader(t, "fan.jpeg", pngHeader))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(image.Key, "complaints/user-1/"))
		assert.True(t, strings.HasSuffix(image.Key, ".png"))
		assert.True(t, strings.HasPrefix(image.URL, "http://localhost:8080/"))
		assert.True(t, strings.HasSuffix(image.URL, image.Key))
		assert.Equal(t, "image/png", image.MimeType)
		assert.Equal(t, int64(len(pngHeader)), image.Size)

		reader, _, err := storage.Get(context.Background(), image.Key)
		require.NoError(t, err)
		reader.Close()
	})

	t.Run("Requires a caller", func(t *testing.T) {
		_, err := UploadComplaintImage(context.Background(), storage, nil, "", newFileHeader(t, "fan.png", pngHeader))
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Invalid file is a validation error", func(t *testing.T) {
		_, err := UploadComplaintImage(context.Background(), storage, caller, "", newFileHeader(t, "fan.png", []byte("hello")))
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

// privateStorage behaves like a private R2 bucket: objects have no public URL
type privateStorage struct {
	*LocalStorage
}

func (p privateStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	result, err := p.LocalStorage.UploadReader(ctx, reader, key, contentType, size)
	if err != nil {
		return nil, err
	}
	result.URL = ""
	return result, nil
}

func (p privateStorage) GetPublicURL(key string) string {
	return ""
}

func TestUploadComplaintImage_PrivateBucket(t *testing.T) {
	ctx := context.Background()
	storage := privateStorage{NewLocalStorage(t.TempDir())}
	caller := &Caller{UserID: "user-1"}

	image, err := UploadComplaintImage(ctx, storage, caller, "http://localhost:8080", newFileHeader(t, "fan.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/images/"+image.Key, image.URL)
	assert.NotContains(t, image.URL, "X-Amz")

	key, ok := complaintImageKey(storage, "http://localhost:8080", image.URL)
	require.True(t, ok)
	assert.Equal(t, image.Key, key)

	require.NoError(t, DeleteComplaintImage(ctx, storage, "http://localhost:8080", image.URL))
	_, _, err = storage.Get(ctx, image.Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenComplaintImage(t *testing.T) {
	ctx := context.Background()
	storage := NewLocalStorage(t.TempDir())
	owner := &Caller{UserID: "user-1"}

	image, err := UploadComplaintImage(ctx, storage, owner, "http://localhost:8080", newFileHeader(t, "fan.png", pngHeader))
	require.NoError(t, err)

	t.Run("Owner", func(t *testing.T) {
		reader, contentType, err := OpenComplaintImage(ctx, storage, owner, image.Key)
		require.NoError(t, err)
		defer reader.Close()
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("Admin", func(t *testing.T) {
		reader, _, err := OpenComplaintImage(ctx, storage, &Caller{UserID: "admin-1", IsAdmin: true}, image.Key)
		require.NoError(t, err)
		reader.Close()
	})

	t.Run("Other student", func(t *testing.T) {
		_, _, err := OpenComplaintImage(ctx, storage, &Caller{UserID: "user-2"}, image.Key)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Anonymous", func(t *testing.T) {
		_, _, err := OpenComplaintImage(ctx, storage, nil, image.Key)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("Outside the complaints prefix", func(t *testing.T) {
		_, _, err := OpenComplaintImage(ctx, storage, owner, "other/user-1/x.png")
		assert.ErrorIs(t, err, ErrNotFound)
		_, _, err = OpenComplaintImage(ctx, storage, owner, "complaints/user-1/../../secret.png")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Missing object", func(t *testing.T) {
		_, _, err := OpenComplaintImage(ctx, storage, owner, "complaints/user-1/gone.png")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteComplaintImage(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()
	storage := NewLocalStorage(baseDir)

	image, err := UploadComplaintImage(ctx, storage, &Caller{UserID: "user-1"}, "http://localhost:8080", newFileHeader(t, "fan.png", pngHeader))
	require.NoError(t, err)

	t.Run("Ignores foreign URLs", func(t *testing.T) {
		require.NoError(t, DeleteComplaintImage(ctx, storage, "http://localhost:8080", "https://example.com/"+image.Key))
		require.NoError(t, DeleteComplaintImage(ctx, storage, "http://localhost:8080", "https://example.com/photo.png"))
		require.NoError(t, DeleteComplaintImage(ctx, storage, "http://localhost:8080", ""))
		require.NoError(t, DeleteComplaintImage(ctx, nil, "http://localhost:8080", image.URL))
		_, err := os.Stat(filepath.Join(baseDir, image.Key))
		assert.NoError(t, err)
	})

	t.Run("Removes the stored file", func(t *testing.T) {
		require.NoError(t, DeleteComplaintImage(ctx, storage, "http://localhost:8080", image.URL))
		_, err := os.Stat(filepath.Join(baseDir, image.Key))
		assert.True(t, os.IsNotExist(err))
	})
}
