package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

var ErrAttachmentOutOfScope = errors.New("attachment outside caller scope")

var allowedExtensions = []string{"png", "jpg", "jpeg", "gif", "pdf", "txt", "doc", "docx"}

// maxAttachmentSizeMB is advisory for clients; the backend only enforces
// path scope on delete.
const maxAttachmentSizeMB = 10

const presignTTL = 15 * time.Minute

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// PresignResult carries everything a client needs to upload directly to
// the bucket.
type PresignResult struct {
	UploadURL         string   `json:"uploadUrl"`
	DownloadURL       string   `json:"downloadUrl"`
	Path              string   `json:"path"`
	ExpiresAt         string   `json:"expiresAt"`
	MaxSizeMB         int      `json:"maxSizeMB"`
	AllowedExtensions []string `json:"allowedExtensions"`
}

type AttachmentManager interface {
	PresignUpload(ctx context.Context, uid, filename, contentType string) (*PresignResult, error)
	Delete(ctx context.Context, uid, path string) error
	PathFromURL(url string) string
}

type AttachmentService struct {
	bucket     *storage.BucketHandle
	bucketName string
	now        func() time.Time
}

var _ AttachmentManager = (*AttachmentService)(nil)

func NewAttachmentService(bucket *storage.BucketHandle, bucketName string) *AttachmentService {
	return &AttachmentService{bucket: bucket, bucketName: bucketName, now: time.Now}
}

// IsAllowedExtension checks the filename against the upload allowlist.
func IsAllowedExtension(filename string) bool {
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return false
	}
	ext := strings.ToLower(parts[len(parts)-1])
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func buildAttachmentPath(uid, filename string, at time.Time) string {
	safeName := unsafePathChars.ReplaceAllString(filename, "_")
	return fmt.Sprintf("users/%s/attachments/%d-%s", uid, at.UnixMilli(), safeName)
}

func (s *AttachmentService) PresignUpload(ctx context.Context, uid, filename, contentType string) (*PresignResult, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	path := buildAttachmentPath(uid, filename, s.now())
	expires := s.now().Add(presignTTL)

	uploadURL, err := s.bucket.SignedURL(path, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      "PUT",
		Expires:     expires,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignResult{
		UploadURL:         uploadURL,
		DownloadURL:       fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, path),
		Path:              path,
		ExpiresAt:         expires.UTC().Format(time.RFC3339),
		MaxSizeMB:         maxAttachmentSizeMB,
		AllowedExtensions: allowedExtensions,
	}, nil
}

// Delete removes an object after checking it lives under the caller's
// own attachment prefix. Deleting an already-gone object succeeds.
func (s *AttachmentService) Delete(ctx context.Context, uid, path string) error {
	if !strings.HasPrefix(path, fmt.Sprintf("users/%s/attachments/", uid)) {
		return ErrAttachmentOutOfScope
	}
	if err := s.bucket.Object(path).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// PathFromURL extracts the object path from a public download URL for
// this bucket, or returns "" when the URL is not ours.
func (s *AttachmentService) PathFromURL(url string) string {
	marker := s.bucketName + "/"
	if idx := strings.Index(url, marker); idx >= 0 {
		return url[idx+len(marker):]
	}
	return ""
}
