// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vivekrp/openform/middleware"
	"github.com/vivekrp/openform/storage"
)

// FileHandler serves uploaded files back from the disk store. When the
// service runs in inline fallback mode there is no store and every key
// is a 404; the file content already lives inside the answer value.
type FileHandler struct {
	disk *storage.Disk
}

func NewFileHandler(disk *storage.Disk) *FileHandler {
	return &FileHandler{disk: disk}
}

// Serve handles GET /files/{key}
func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.disk == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "File storage not configured")
		return
	}

	key := r.PathValue("key")
	f, err := h.disk.Open(key)
	if errors.Is(err, storage.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		slog.Error("failed to open stored file", "error", err, "key", key)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer f.Close()

	// Let the client sniff the type from the extension-preserving key.
	if _, err := io.Copy(w, f); err != nil {
		slog.Warn("failed to stream file", "error", err, "key", key)
	}
}
