// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vivekrp/openform/models"
)

var ErrNotFound = errors.New("stored file not found")

// Disk stores uploaded files under a local directory and serves them
// back by key. It stands in for remote object storage: the FileRef it
// returns has the same shape either way.
type Disk struct {
	dir     string
	baseURL string
}

// NewDisk creates the storage directory if needed. baseURL is the
// public prefix stored files are reachable under.
func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Disk{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the file under a random key, preserving the original
// extension so served files get a sensible content type.
func (d *Disk) Upload(ctx context.Context, name, contentType string, data []byte) (models.FileRef, error) {
	key := uuid.NewString() + sanitizeExt(name)
	path := filepath.Join(d.dir, key)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return models.FileRef{}, fmt.Errorf("failed to store file: %w", err)
	}

	return models.FileRef{
		Name: name,
		Type: contentType,
		Size: int64(len(data)),
		URL:  d.baseURL + "/files/" + key,
	}, nil
}

// Open returns a reader for a stored file by key. Keys are flat; any
// path separator is rejected.
func (d *Disk) Open(key string) (io.ReadCloser, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(d.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// sanitizeExt keeps a short, plain file extension and drops anything
// suspicious.
func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	for _, r := range ext[min(1, len(ext)):] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

// Inline is the degraded-mode fallback when no upload directory is
// configured: the file is encoded as a data URL. The rest of the
// system sees an identical FileRef shape.
type Inline struct{}

func (Inline) Upload(ctx context.Context, name, contentType string, data []byte) (models.FileRef, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return models.FileRef{
		Name: name,
		Type: contentType,
		Size: int64(len(data)),
		URL:  "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}
