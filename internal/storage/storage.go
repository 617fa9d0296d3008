// Package storage persists uploaded images to a bucket or local disk and
// hands back their public URL.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	FolderCategoryIcon = "icon_category"
	FolderHeadline     = "headlines"
	FolderIklan        = "gambar_iklan"
	FolderAuthorFoto   = "foto_authors"
)

// Backend is a flat key/value blob store.
type Backend interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	// KeyOf maps a URL returned by Put back to its key.
	KeyOf(url string) (string, bool)
	Mode() string
}

type Uploader interface {
	Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
	Mode() string
}

type Store struct {
	backend Backend
	now     func() time.Time
}

func New(b Backend) *Store {
	return &Store{backend: b, now: time.Now}
}

func (s *Store) Mode() string { return s.backend.Mode() }

// Upload validates and normalises file, then stores it under folder with
// a collision resistant name.
func (s *Store) Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	img, err := Prepare(folder, file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%d-%s%s", folder, s.now().UnixMilli(), uuid.New().String()[:8], img.Ext)
	return s.backend.Put(ctx, key, img.Data, img.ContentType)
}

func (s *Store) Delete(ctx context.Context, url string) error {
	key, ok := s.backend.KeyOf(url)
	if !ok {
		return fmt.Errorf("url %q is not managed by %s storage", url, s.backend.Mode())
	}
	return s.backend.Remove(ctx, key)
}

var current Uploader

func Use(u Uploader) { current = u }

func Current() Uploader { return current }

func GetStorageMode() string {
	if current == nil {
		return "none"
	}
	return current.Mode()
}

func joinURL(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}
