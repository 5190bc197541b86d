package previews

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore keeps each preview as <key> plus a <key>.type sidecar
// holding its content type.
type FilesystemStore struct {
	basePath string
}

func NewFilesystemStore(basePath string) (*FilesystemStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	return &FilesystemStore{basePath: basePath}, nil
}

func (s *FilesystemStore) path(key string) (string, error) {
	if !ValidKey(key) {
		return "", fmt.Errorf("invalid preview key %q", key)
	}
	return filepath.Join(s.basePath, key), nil
}

func (s *FilesystemStore) Put(_ context.Context, key, contentType string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	if err := os.WriteFile(p+".type", []byte(contentType), 0o600); err != nil {
		_ = os.Remove(p)
		return fmt.Errorf("write preview type: %w", err)
	}
	return nil
}

func (s *FilesystemStore) Open(_ context.Context, key string) (io.ReadCloser, string, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	ct, err := os.ReadFile(p + ".type")
	if err != nil {
		ct = []byte("application/octet-stream")
	}
	return f, strings.TrimSpace(string(ct)), nil
}

func (s *FilesystemStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	var firstErr error
	for _, name := range []string{p, p + ".type"} {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", filepath.Base(name), err)
		}
	}
	return firstErr
}
