package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxComplaintImageSize is the largest picture a student may attach
	MaxComplaintImageSize = 5 * 1024 * 1024 // 5MB
	// ComplaintImageRoute serves pictures kept in a private bucket
	ComplaintImageRoute   = "/api/images/"
	complaintImagePrefix  = "complaints/"
)

// allowedImageTypes maps the sniffed content type to the extension we store
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ComplaintImage is an uploaded picture ready to be referenced by a complaint
type ComplaintImage struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// ValidateComplaintImage checks size and sniffs the content type of an uploaded picture.
// It returns the detected MIME type.
func ValidateComplaintImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxComplaintImageSize {
		return "", &ValidationError{Field: "image", Message: "The image may not be greater than 5MB."}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}

	mimeType := mtype.String()
	if _, ok := allowedImageTypes[mimeType]; !ok {
		return "", &ValidationError{Field: "image", Message: "The image must be a file of type: jpeg, png, webp, gif."}
	}
	return mimeType, nil
}

// UploadComplaintImage validates a picture and stores it under the caller's prefix.
// Relative URLs from local storage are made absolute with baseURL.
func UploadComplaintImage(ctx context.Context, storage StorageProvider, caller *Caller, baseURL string, fileHeader *multipart.FileHeader) (*ComplaintImage, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	mimeType, err := ValidateComplaintImage(fileHeader)
	if err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxComplaintImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	// The extension follows the sniffed type, not the client's filename
	key := GenerateComplaintImageKey(caller.UserID, "image"+allowedImageTypes[mimeType])
	result, err := storage.UploadReader(ctx, bytes.NewReader(data), key, mimeType, int64(len(data)))
	if err != nil {
		return nil, err
	}

	url := result.URL
	if url == "" {
		url = ComplaintImageRoute + key
	}

	return &ComplaintImage{
		Key:      result.Key,
		URL:      absoluteURL(baseURL, url),
		MimeType: mimeType,
		Size:     result.FileSize,
	}, nil
}

// absoluteURL prefixes app-relative paths with baseURL
func absoluteURL(baseURL, url string) string {
	if strings.HasPrefix(url, "/") {
		return strings.TrimSuffix(baseURL, "/") + filepath.ToSlash(url)
	}
	return url
}

// OpenComplaintImage streams a stored picture to its uploader or an admin.
// The caller closes the returned reader.
func OpenComplaintImage(ctx context.Context, storage StorageProvider, caller *Caller, key string) (io.ReadCloser, string, error) {
	if err := requireCaller(caller); err != nil {
		return nil, "", err
	}
	if storage == nil {
		return nil, "", fmt.Errorf("storage not initialized")
	}
	if !strings.HasPrefix(key, complaintImagePrefix) || strings.Contains(key, "..") {
		return nil, "", notFound("image")
	}
	if !caller.IsAdmin && !strings.HasPrefix(key, complaintImagePrefix+caller.UserID+"/") {
		return nil, "", ErrForbidden
	}
	return storage.Get(ctx, key)
}

// complaintImageKey recovers the storage key from an image URL issued by UploadComplaintImage.
// URLs pointing anywhere else are not ours to delete.
func complaintImageKey(storage StorageProvider, baseURL, imageURL string) (string, bool) {
	idx := strings.LastIndex(imageURL, complaintImagePrefix)
	if idx < 0 {
		return "", false
	}
	key := imageURL[idx:]
	if strings.Contains(key, "..") {
		return "", false
	}

	for _, candidate := range []string{ComplaintImageRoute + key, storage.GetPublicURL(key)} {
		if candidate != "" && absoluteURL(baseURL, candidate) == imageURL {
			return key, true
		}
	}
	return "", false
}

// DeleteComplaintImage removes the stored picture behind imageURL.
// External URLs are left alone.
func DeleteComplaintImage(ctx context.Context, storage StorageProvider, baseURL, imageURL string) error {
	if storage == nil || imageURL == "" {
		return nil
	}
	key, ok := complaintImageKey(storage, baseURL, imageURL)
	if !ok {
		return nil
	}
	return storage.Delete(ctx, key)
}
