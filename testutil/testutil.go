// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vivekrp/openform/auth"
	"github.com/vivekrp/openform/cliparse"
	"github.com/vivekrp/openform/db"
	"github.com/vivekrp/openform/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own database; nothing to clean up beyond
// closing.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection so every statement sees the same in-memory DB
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3324,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
		FormSlugSalt: "test-slug-salt",
		BaseURL:      "http://localhost:3324",
	}
}

// SampleQuestions returns a small mixed-type question sequence for
// player tests.
func SampleQuestions() []models.Question {
	return []models.Question{
		{ID: "q-name", Type: models.TypeShortText, Title: "What is your name?", Required: true},
		{ID: "q-email", Type: models.TypeEmail, Title: "Your email?", Required: true},
		{ID: "q-color", Type: models.TypeDropdown, Title: "Pick a color", Options: []string{"Red", "Green", "Blue"}},
		{ID: "q-toppings", Type: models.TypeCheckboxes, Title: "Toppings?", Options: []string{"Cheese", "Olives", "Ham"}},
		{ID: "q-score", Type: models.TypeOpinionScale, Title: "How likely to recommend?"},
	}
}

// CreateTestForm creates a form in the database and returns its ID,
// admin key, and share slug. status should be "draft", "published",
// or "closed". Questions may be nil for an empty sequence.
func CreateTestForm(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string, questions []models.Question) (formID, adminKey, shareSlug string) {
	t.Helper()

	formID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(formID, cfg.AdminKeySalt)

	var slug *string
	if status == models.StatusPublished || status == models.StatusClosed {
		s := auth.GenerateShareSlug(formID, cfg.FormSlugSalt)
		slug = &s
		shareSlug = s
	}

	if questions == nil {
		questions = []models.Question{}
	}
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("Failed to marshal questions: %v", err)
	}

	now := time.Now()
	_, err = conn.Exec(`
		INSERT INTO form (id, title, description, status, share_slug, theme, questions, thank_you_message, created_at, updated_at)
		VALUES ($1, 'Test Form', 'A test form', $2, $3, 'midnight', $4, 'Thanks for filling this out!', $5, $6)
	`, formID, status, slug, string(questionsJSON), now, now)
	if err != nil {
		t.Fatalf("Failed to create test form: %v", err)
	}

	return formID, adminKey, shareSlug
}

// InsertTestResponse writes a response row directly and returns its ID.
func InsertTestResponse(t *testing.T, conn *sql.DB, formID string, answers map[string]models.AnswerValue) string {
	t.Helper()

	responseID, _ := auth.GenerateID(16)
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		t.Fatalf("Failed to marshal answers: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO response (id, form_id, answers, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, responseID, formID, string(answersJSON), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return responseID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
