// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/vivekrp/openform/auth"
	"github.com/vivekrp/openform/catalog"
	"github.com/vivekrp/openform/cliparse"
	"github.com/vivekrp/openform/middleware"
	"github.com/vivekrp/openform/models"
	"github.com/vivekrp/openform/player"
	"github.com/vivekrp/openform/themes"
)

// MsgNoQuestions is shown when a published form has an empty question
// sequence; the player never enters the answering state for it.
const MsgNoQuestions = "This form has no questions yet."

type PlayHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	registry *player.Registry
	store    player.Uploader
}

func NewPlayHandler(db *sql.DB, cfg cliparse.Config, registry *player.Registry, store player.Uploader) *PlayHandler {
	return &PlayHandler{db: db, cfg: cfg, registry: registry, store: store}
}

// responseGateway persists a finished answer set as one response row.
// One gateway is built per session so the respondent metadata captured
// at session creation travels with the submission.
type responseGateway struct {
	db        *sql.DB
	ipHash    string
	userAgent string
}

func (g *responseGateway) Submit(ctx context.Context, formID string, answers map[string]models.AnswerValue) error {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return err
	}

	_, err = g.db.ExecContext(ctx, `
		INSERT INTO response (id, form_id, answers, submitted_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), formID, string(answersJSON), time.Now(), g.ipHash, g.userAgent)
	if err != nil {
		slog.Error("failed to insert response", "error", err, "form_id", formID)
	}
	return err
}

// GetForm handles GET /f/{slug}
// Returns the public view of a published form: questions, resolved
// theme, thank-you message. Closed forms are gone, not found.
func (h *PlayHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form, ok := h.publishedForm(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PublicForm{
		Title:           form.Title,
		Description:     form.Description,
		Status:          form.Status,
		Questions:       form.Questions,
		Theme:           themes.Get(form.Theme),
		ThankYouMessage: form.ThankYouMessage,
	})
}

// CreateSession handles POST /f/{slug}/sessions
// Starts one respondent's pass through the form. An empty question
// sequence degrades to a static informational state without creating
// a session.
func (h *PlayHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	form, ok := h.publishedForm(w, r)
	if !ok {
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	gw := &responseGateway{db: h.db, ipHash: ipHash, userAgent: r.UserAgent()}

	sess, err := player.NewSession(form.ID, form.Questions, gw)
	if errors.Is(err, player.ErrNoQuestions) {
		middleware.JSONResponse(w, http.StatusOK, models.SessionView{
			State:   "empty",
			Message: MsgNoQuestions,
		})
		return
	}
	if err != nil {
		slog.Error("failed to create session", "error", err, "form_id", form.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.registry.Put(sess)
	slog.Info("session created", "session_id", sess.ID(), "form_id", form.ID)

	middleware.JSONResponse(w, http.StatusCreated, sess.View())
}

// GetSession handles GET /sessions/{id}
func (h *PlayHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.decorate(sess))
}

// SetAnswer handles POST /sessions/{id}/answer
// Records a value for the current question. On commit-on-change
// surfaces the session advances in the same call, so the returned
// state may already show the next question (or the thank-you state).
func (h *PlayHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.SetAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.QuestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	err := sess.SetAnswer(r.Context(), req.QuestionID, req.Value)
	switch {
	case errors.Is(err, player.ErrSubmitted):
		middleware.ErrorResponse(w, http.StatusConflict, "Session already submitted")
		return
	case errors.Is(err, player.ErrWrongQuestion):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Answer is not for the current question")
		return
	case errors.Is(err, player.ErrValueShape):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Value shape does not match the question type")
		return
	case errors.Is(err, player.ErrOutOfRange):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Value is outside the question's scale")
		return
	case errors.Is(err, player.ErrNotAnOption):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Value is not one of the question's options")
		return
	case err != nil:
		slog.Error("failed to set answer", "error", err, "session_id", sess.ID())
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record answer")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.decorate(sess))
}

// HandleEvent handles POST /sessions/{id}/events
// One entry point for keyboard, wheel, and pointer navigation. Wheel
// events are rate limited inside the player; a dropped event simply
// returns unchanged state.
func (h *PlayHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req models.NavigationEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Source {
	case player.SourceKey, player.SourceWheel, player.SourcePointer:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "source must be key, wheel, or pointer")
		return
	}
	if req.Source != player.SourceWheel {
		switch req.Action {
		case player.ActionAdvance, player.ActionRetreat:
		default:
			middleware.ErrorResponse(w, http.StatusBadRequest, "action must be advance or retreat")
			return
		}
	}

	sess.Handle(r.Context(), player.NavigationEvent{
		Source: req.Source,
		Action: req.Action,
		Delta:  req.Delta,
	})

	middleware.JSONResponse(w, http.StatusOK, h.decorate(sess))
}

// Upload handles POST /sessions/{id}/upload
// Multipart upload for a file question. Transport failures surface in
// the upload status, never in the session's validation errors.
func (h *PlayHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	questionID := r.FormValue("question_id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	q, found := sess.Question(questionID)
	if !found || q.Type != models.TypeFileUpload {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question does not accept file uploads")
		return
	}

	maxBytes := catalog.MaxFileBytes(q)
	if header.Size > maxBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			"File exceeds the "+humanize.Bytes(uint64(maxBytes))+" limit")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !typeAllowed(q, contentType) {
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, "File type not allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if int64(len(data)) > maxBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
			"File exceeds the "+humanize.Bytes(uint64(maxBytes))+" limit")
		return
	}

	err = sess.UploadFile(r.Context(), questionID, header.Filename, contentType, data, h.store)
	switch {
	case errors.Is(err, player.ErrSubmitted):
		middleware.ErrorResponse(w, http.StatusConflict, "Session already submitted")
		return
	case errors.Is(err, player.ErrNotFileQuestion):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question does not accept file uploads")
		return
	case err != nil:
		slog.Error("upload failed", "error", err, "session_id", sess.ID())
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	status, uploadErr := sess.UploadState(questionID)
	resp := models.UploadResultResponse{
		Status: status.String(),
		Error:  uploadErr,
		State:  h.decorate(sess),
	}
	if v, ok := sess.Answers()[questionID]; ok && v.Kind == models.KindFile {
		resp.File = v.File
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ClearUpload handles DELETE /sessions/{id}/files/{question_id}
func (h *PlayHandler) ClearUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	questionID := r.PathValue("question_id")

	err := sess.ClearFile(questionID)
	switch {
	case errors.Is(err, player.ErrSubmitted):
		middleware.ErrorResponse(w, http.StatusConflict, "Session already submitted")
		return
	case errors.Is(err, player.ErrNotFileQuestion):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Question does not accept file uploads")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.decorate(sess))
}

// DeleteSession handles DELETE /sessions/{id}
// The tab-close analog: the session and its answers are discarded.
func (h *PlayHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}
	h.registry.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// publishedForm loads the form behind a share slug and writes the
// error response itself when the form is unavailable.
func (h *PlayHandler) publishedForm(w http.ResponseWriter, r *http.Request) (models.Form, bool) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return models.Form{}, false
	}

	form, err := loadFormBySlug(h.db, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return models.Form{}, false
	}
	if err != nil {
		slog.Error("failed to query form", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Form{}, false
	}

	if form.Status == models.StatusClosed {
		middleware.ErrorResponse(w, http.StatusGone, "This form is no longer accepting responses")
		return models.Form{}, false
	}
	return form, true
}

func (h *PlayHandler) session(w http.ResponseWriter, r *http.Request) (*player.Session, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return nil, false
	}
	sess, ok := h.registry.Get(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found or expired")
		return nil, false
	}
	return sess, true
}

// decorate fills the thank-you message on submitted views.
func (h *PlayHandler) decorate(sess *player.Session) models.SessionView {
	view := sess.View()
	if view.State != "submitted" {
		return view
	}
	form, err := loadFormByID(h.db, sess.FormID())
	if err != nil {
		slog.Warn("failed to load thank-you message", "error", err, "form_id", sess.FormID())
		return view
	}
	view.Message = form.ThankYouMessage
	return view
}

// typeAllowed checks a content type against the question's allowed
// patterns ("image/*" or exact types). An unset list falls back to
// the catalog default.
func typeAllowed(q models.Question, contentType string) bool {
	allowed := q.AllowedFileTypes
	if len(allowed) == 0 {
		info, _ := catalog.Lookup(models.TypeFileUpload)
		allowed = info.DefaultFileTypes
	}
	for _, pattern := range allowed {
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if strings.HasPrefix(contentType, prefix+"/") {
				return true
			}
			continue
		}
		if contentType == pattern {
			return true
		}
	}
	return false
}
