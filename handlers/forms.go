// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vivekrp/openform/auth"
	"github.com/vivekrp/openform/catalog"
	"github.com/vivekrp/openform/cliparse"
	"github.com/vivekrp/openform/middleware"
	"github.com/vivekrp/openform/models"
	"github.com/vivekrp/openform/themes"
)

type FormHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFormHandler(db *sql.DB, cfg cliparse.Config) *FormHandler {
	return &FormHandler{db: db, cfg: cfg}
}

// CreateForm handles POST /forms
func (h *FormHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	theme := req.Theme
	if theme == "" {
		theme = themes.DefaultID
	}
	if !themes.Known(theme) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown theme: "+theme)
		return
	}

	// Generate form ID
	formID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate form ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	// Generate admin key
	adminKey := auth.GenerateAdminKey(formID, h.cfg.AdminKeySalt)

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO form (id, title, description, status, theme, questions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '[]', $6, $7)
	`, formID, req.Title, req.Description, models.StatusDraft, theme, now, now)

	if err != nil {
		slog.Error("failed to insert form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create form")
		return
	}

	slog.Info("form created", "form_id", formID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateFormResponse{
		FormID:   formID,
		AdminKey: adminKey,
	})
}

// GetFormAdmin handles GET /forms/{id}/admin
// Returns full form details plus the response count.
func (h *FormHandler) GetFormAdmin(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(formID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	form, err := loadFormByID(h.db, formID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var count int
	err = h.db.QueryRow(`SELECT COUNT(*) FROM response WHERE form_id = $1`, formID).Scan(&count)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FormAdmin{
		Form:          form,
		ResponseCount: count,
	})
}

// UpdateForm handles PUT /forms/{id}
// Applies partial updates; nil request fields are unchanged. The
// question sequence is validated before it is stored: known types
// only, unique non-empty ids (blank ids are assigned), and choice
// questions must carry options.
func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(formID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.UpdateFormRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	form, err := loadFormByID(h.db, formID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if form.Status == models.StatusClosed {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot edit a closed form")
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		form.Title = *req.Title
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if req.Theme != nil {
		if !themes.Known(*req.Theme) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown theme: "+*req.Theme)
			return
		}
		form.Theme = *req.Theme
	}
	if req.ThankYouMessage != nil {
		form.ThankYouMessage = *req.ThankYouMessage
	}
	if req.Questions != nil {
		cleaned, msg := normalizeQuestions(req.Questions)
		if msg != "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, msg)
			return
		}
		form.Questions = cleaned
	}

	questionsJSON, err := json.Marshal(form.Questions)
	if err != nil {
		slog.Error("failed to marshal questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update form")
		return
	}

	_, err = h.db.Exec(`
		UPDATE form
		SET title = $1, description = $2, theme = $3, thank_you_message = $4, questions = $5, updated_at = $6
		WHERE id = $7
	`, form.Title, form.Description, form.Theme, form.ThankYouMessage, string(questionsJSON), time.Now(), formID)

	if err != nil {
		slog.Error("failed to update form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update form")
		return
	}

	slog.Info("form updated", "form_id", formID, "questions", len(form.Questions))

	middleware.JSONResponse(w, http.StatusOK, form)
}

// PublishForm handles POST /forms/{id}/publish
func (h *FormHandler) PublishForm(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(formID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	form, err := loadFormByID(h.db, formID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if form.Status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Form is not in draft status")
		return
	}

	if len(form.Questions) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Form must have at least 1 question")
		return
	}

	// Generate share slug
	shareSlug := auth.GenerateShareSlug(formID, h.cfg.FormSlugSalt)

	_, err = h.db.Exec(`
		UPDATE form
		SET status = $1, share_slug = $2, updated_at = $3
		WHERE id = $4
	`, models.StatusPublished, shareSlug, time.Now(), formID)

	if err != nil {
		slog.Error("failed to publish form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish form")
		return
	}

	slog.Info("form published", "form_id", formID, "share_slug", shareSlug)

	middleware.JSONResponse(w, http.StatusOK, models.PublishFormResponse{
		ShareSlug: shareSlug,
		ShareURL:  h.cfg.BaseURL + "/f/" + shareSlug,
	})
}

// CloseForm handles POST /forms/{id}/close
func (h *FormHandler) CloseForm(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(formID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var status string
	err := h.db.QueryRow("SELECT status FROM form WHERE id = $1", formID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusPublished {
		middleware.ErrorResponse(w, http.StatusConflict, "Form is not published")
		return
	}

	_, err = h.db.Exec(`
		UPDATE form SET status = $1, updated_at = $2 WHERE id = $3
	`, models.StatusClosed, time.Now(), formID)

	if err != nil {
		slog.Error("failed to close form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close form")
		return
	}

	slog.Info("form closed", "form_id", formID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": models.StatusClosed})
}

// DeleteForm handles DELETE /forms/{id}
// Responses cascade with the form.
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("id")
	if formID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "form_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(formID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	result, err := h.db.Exec(`DELETE FROM form WHERE id = $1`, formID)
	if err != nil {
		slog.Error("failed to delete form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete form")
		return
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}

	slog.Info("form deleted", "form_id", formID)

	w.WriteHeader(http.StatusNoContent)
}

// normalizeQuestions validates an incoming question sequence and fills
// blank ids. Returns a non-empty message on the first invalid entry.
func normalizeQuestions(questions []models.Question) ([]models.Question, string) {
	seen := make(map[string]bool, len(questions))
	out := make([]models.Question, 0, len(questions))

	for _, q := range questions {
		if !catalog.Known(q.Type) {
			return nil, "unknown question type: " + string(q.Type)
		}
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		if seen[q.ID] {
			return nil, "duplicate question id: " + q.ID
		}
		seen[q.ID] = true

		switch q.Type {
		case models.TypeDropdown, models.TypeCheckboxes:
			if len(q.Options) == 0 {
				return nil, "question " + q.ID + " requires options"
			}
		}
		out = append(out, q)
	}
	return out, ""
}

// loadFormByID fetches a form row and decodes its question sequence.
func loadFormByID(db *sql.DB, formID string) (models.Form, error) {
	return scanForm(db.QueryRow(`
		SELECT id, title, description, status, share_slug, theme, questions, thank_you_message, created_at, updated_at
		FROM form
		WHERE id = $1
	`, formID))
}

// loadFormBySlug fetches a published-or-closed form by its share slug.
func loadFormBySlug(db *sql.DB, slug string) (models.Form, error) {
	return scanForm(db.QueryRow(`
		SELECT id, title, description, status, share_slug, theme, questions, thank_you_message, created_at, updated_at
		FROM form
		WHERE share_slug = $1
	`, slug))
}

func scanForm(row *sql.Row) (models.Form, error) {
	var form models.Form
	var description sql.NullString
	var questionsJSON string

	err := row.Scan(
		&form.ID, &form.Title, &description, &form.Status, &form.ShareSlug,
		&form.Theme, &questionsJSON, &form.ThankYouMessage,
		&form.CreatedAt, &form.UpdatedAt,
	)
	if err != nil {
		return models.Form{}, err
	}
	form.Description = description.String

	if err := json.Unmarshal([]byte(questionsJSON), &form.Questions); err != nil {
		return models.Form{}, err
	}
	if form.Questions == nil {
		form.Questions = []models.Question{}
	}
	return form, nil
}
