// Package storage provides local-disk file storage for user uploads.
package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/influconnect/marketplace-api/internal/core/domain"
)

// MaxAvatarSize is the upper bound on accepted avatar uploads.
const MaxAvatarSize = 5 << 20 // 5 MiB

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarStore writes avatar images under a local directory and returns the
// public URL path they are served from.
type AvatarStore struct {
	dir     string
	urlBase string
}

// NewAvatarStore creates the upload directory if needed. urlBase is the URL
// prefix the directory is served under, e.g. "/uploads/avatars".
func NewAvatarStore(dir, urlBase string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &AvatarStore{dir: dir, urlBase: urlBase}, nil
}

// Save sniffs the content type, enforces the size cap and writes the image
// under a random filename. The returned string is the public URL path.
func (s *AvatarStore) Save(r io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	head = head[:n]

	ext, ok := avatarExtensions[http.DetectContentType(head)]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type", domain.ErrValidation)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer dst.Close()

	// head already consumed from r, so the cap accounts for it.
	limited := io.LimitReader(r, MaxAvatarSize-int64(len(head))+1)
	written, err := dst.Write(head)
	if err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	copied, err := io.Copy(dst, limited)
	if err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	if int64(written)+copied > MaxAvatarSize {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("%w: avatar exceeds %d bytes", domain.ErrValidation, MaxAvatarSize)
	}

	return path.Join(s.urlBase, name), nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *AvatarStore) Dir() string {
	return s.dir
}
