// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vivekrp/openform/auth"
	"github.com/vivekrp/openform/cliparse"
	"github.com/vivekrp/openform/middleware"
	"github.com/vivekrp/openform/models"
)

type ResponseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResponseHandler(db *sql.DB, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{db: db, cfg: cfg}
}

// ListResponses handles GET /forms/{id}/responses
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
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

	records, err := h.loadResponses(formID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Form not found")
		return
	}
	if err != nil {
		slog.Error("failed to query responses", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, records)
}

// ExportCSV handles GET /forms/{id}/responses.csv
// One row per response, one column per question in sequence order.
// Checkbox selections join with "; "; file answers render as
// "name (url)".
func (h *ResponseHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
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

	records, err := h.loadResponses(formID)
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query responses", "error", err, "form_id", formID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="responses.csv"`)

	cw := csv.NewWriter(w)

	header := []string{"Response ID", "Submitted At"}
	for _, q := range form.Questions {
		title := q.Title
		if title == "" {
			title = "Untitled question"
		}
		header = append(header, title)
	}
	if err := cw.Write(header); err != nil {
		slog.Error("failed to write CSV header", "error", err)
		return
	}

	for _, rec := range records {
		row := []string{rec.ID, rec.SubmittedAt.UTC().Format("2006-01-02 15:04:05")}
		for _, q := range form.Questions {
			row = append(row, answerCell(rec.Answers[q.ID]))
		}
		if err := cw.Write(row); err != nil {
			slog.Error("failed to write CSV row", "error", err)
			return
		}
	}
	cw.Flush()
}

// answerCell renders one answer value as a CSV cell.
func answerCell(v models.AnswerValue) string {
	switch v.Kind {
	case models.KindAbsent:
		return ""
	case models.KindText:
		return v.Text
	case models.KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case models.KindBool:
		return strconv.FormatBool(v.Bool)
	case models.KindList:
		return strings.Join(v.List, "; ")
	case models.KindFile:
		if v.File == nil {
			return ""
		}
		return v.File.Name + " (" + v.File.URL + ")"
	}
	return ""
}

func (h *ResponseHandler) loadResponses(formID string) ([]models.ResponseRecord, error) {
	rows, err := h.db.Query(`
		SELECT id, form_id, answers, submitted_at
		FROM response
		WHERE form_id = $1
		ORDER BY submitted_at DESC
	`, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.ResponseRecord{}
	for rows.Next() {
		var rec models.ResponseRecord
		var answersJSON string
		if err := rows.Scan(&rec.ID, &rec.FormID, &answersJSON, &rec.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answersJSON), &rec.Answers); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
