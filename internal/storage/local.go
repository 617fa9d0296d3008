package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local writes files below Root and serves them from BaseURL + "/uploads".
type Local struct {
	Root    string
	BaseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	for _, folder := range []string{FolderCategoryIcon, FolderHeadline, FolderIklan, FolderAuthorFoto} {
		dir := filepath.Join(root, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return &Local{Root: root, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *Local) Mode() string { return "local" }

func (l *Local) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	path, err := l.pathOf(key)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return l.BaseURL + "/uploads/" + key, nil
}

func (l *Local) Remove(_ context.Context, key string) error {
	path, err := l.pathOf(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (l *Local) KeyOf(url string) (string, bool) {
	prefix := l.BaseURL + "/uploads/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

// pathOf resolves key inside Root and refuses anything that escapes it.
func (l *Local) pathOf(key string) (string, error) {
	rootAbs, err := filepath.Abs(l.Root)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	full, err := filepath.Abs(filepath.Join(rootAbs, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}
	if !strings.HasPrefix(full, rootAbs+string(os.PathSeparator)) {
		return "", fmt.Errorf("file path outside uploads directory")
	}
	return full, nil
}
