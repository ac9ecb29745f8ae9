// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vivekrp/openform/auth"
	"github.com/vivekrp/openform/models"
	"github.com/vivekrp/openform/testutil"
)

func TestCreateForm(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(conn, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateFormResponse)
	}{
		{
			name: "valid form creation",
			requestBody: models.CreateFormRequest{
				Title:       "Customer Survey",
				Description: "Tell us what you think",
				Theme:       "ocean",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateFormResponse) {
				if resp.FormID == "" {
					t.Error("Expected non-empty form_id")
				}
				if resp.AdminKey != auth.GenerateAdminKey(resp.FormID, cfg.AdminKeySalt) {
					t.Error("Admin key does not match expected value")
				}

				var status, theme string
				err := conn.QueryRow("SELECT status, theme FROM form WHERE id = $1", resp.FormID).Scan(&status, &theme)
				if err != nil {
					t.Fatalf("Failed to query form: %v", err)
				}
				if status != models.StatusDraft {
					t.Errorf("Expected status 'draft', got '%s'", status)
				}
				if theme != "ocean" {
					t.Errorf("Expected theme 'ocean', got '%s'", theme)
				}
			},
		},
		{
			name:           "empty theme uses default",
			requestBody:    models.CreateFormRequest{Title: "Plain"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateFormResponse) {
				var theme string
				if err := conn.QueryRow("SELECT theme FROM form WHERE id = $1", resp.FormID).Scan(&theme); err != nil {
					t.Fatalf("Failed to query form: %v", err)
				}
				if theme != "midnight" {
					t.Errorf("Expected default theme, got '%s'", theme)
				}
			},
		},
		{
			name:           "missing title",
			requestBody:    models.CreateFormRequest{Description: "no title"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown theme",
			requestBody:    models.CreateFormRequest{Title: "T", Theme: "neon"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if str, ok := tt.requestBody.(string); ok {
				req = httptest.NewRequest("POST", "/forms", strings.NewReader(str))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = testutil.MakeRequest("POST", "/forms", tt.requestBody, nil)
			}
			w := httptest.NewRecorder()

			handler.CreateForm(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreateFormResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestGetFormAdmin(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(conn, cfg)

	formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, testutil.SampleQuestions())
	testutil.InsertTestResponse(t, conn, formID, map[string]models.AnswerValue{
		"q-name": models.TextAnswer("Ada"),
	})

	t.Run("valid key", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/forms/"+formID+"/admin", nil, map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", formID)
		w := httptest.NewRecorder()

		handler.GetFormAdmin(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.FormAdmin
		testutil.AssertJSON(t, w, &resp)
		if resp.Form.ID != formID {
			t.Errorf("Expected form %s, got %s", formID, resp.Form.ID)
		}
		if resp.ResponseCount != 1 {
			t.Errorf("Expected 1 response, got %d", resp.ResponseCount)
		}
		if len(resp.Form.Questions) != 5 {
			t.Errorf("Expected 5 questions, got %d", len(resp.Form.Questions))
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/forms/"+formID+"/admin", nil, map[string]string{"X-Admin-Key": "wrong"})
		req.SetPathValue("id", formID)
		w := httptest.NewRecorder()

		handler.GetFormAdmin(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown form", func(t *testing.T) {
		unknownID := "ffffffffffffffffffffffffffffffff"
		key := auth.GenerateAdminKey(unknownID, cfg.AdminKeySalt)
		req := testutil.MakeRequest("GET", "/forms/"+unknownID+"/admin", nil, map[string]string{"X-Admin-Key": key})
		req.SetPathValue("id", unknownID)
		w := httptest.NewRecorder()

		handler.GetFormAdmin(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestUpdateForm(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(conn, cfg)

	updateReq := func(t *testing.T, formID, adminKey string, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("PUT", "/forms/"+formID, body, map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", formID)
		w := httptest.NewRecorder()
		handler.UpdateForm(w, req)
		return w
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)

		title := "Renamed"
		w := updateReq(t, formID, adminKey, models.UpdateFormRequest{Title: &title})

		testutil.AssertStatus(t, w, http.StatusOK)
		var form models.Form
		testutil.AssertJSON(t, w, &form)
		if form.Title != "Renamed" {
			t.Errorf("Expected title 'Renamed', got '%s'", form.Title)
		}
		if form.Description != "A test form" {
			t.Errorf("Description should be unchanged, got '%s'", form.Description)
		}
	})

	t.Run("replaces question sequence", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)

		w := updateReq(t, formID, adminKey, models.UpdateFormRequest{
			Questions: []models.Question{
				{Type: models.TypeShortText, Title: "Name", Required: true},
				{Type: models.TypeRating, Title: "Rate"},
			},
		})

		testutil.AssertStatus(t, w, http.StatusOK)
		var form models.Form
		testutil.AssertJSON(t, w, &form)
		if len(form.Questions) != 2 {
			t.Fatalf("Expected 2 questions, got %d", len(form.Questions))
		}
		if form.Questions[0].ID == "" || form.Questions[1].ID == "" {
			t.Error("Blank question ids should be assigned")
		}
	})

	t.Run("rejects unknown question type", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)

		w := updateReq(t, formID, adminKey, models.UpdateFormRequest{
			Questions: []models.Question{{Type: "ranking", Title: "Rank"}},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects duplicate question ids", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)

		w := updateReq(t, formID, adminKey, models.UpdateFormRequest{
			Questions: []models.Question{
				{ID: "dup", Type: models.TypeShortText, Title: "One"},
				{ID: "dup", Type: models.TypeShortText, Title: "Two"},
			},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects choice question without options", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)

		w := updateReq(t, formID, adminKey, models.UpdateFormRequest{
			Questions: []models.Question{{Type: models.TypeDropdown, Title: "Pick"}},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("closed form cannot be edited", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusClosed, nil)

		title := "Nope"
		w := updateReq(t, formID, adminKey, models.UpdateFormRequest{Title: &title})
		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}

func TestPublishForm(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(conn, cfg)

	publish := func(t *testing.T, formID, adminKey string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("POST", "/forms/"+formID+"/publish", nil, map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", formID)
		w := httptest.NewRecorder()
		handler.PublishForm(w, req)
		return w
	}

	t.Run("publishes a draft with questions", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, testutil.SampleQuestions())

		w := publish(t, formID, adminKey)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PublishFormResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ShareSlug == "" {
			t.Fatal("Expected a share slug")
		}
		if resp.ShareURL != cfg.BaseURL+"/f/"+resp.ShareSlug {
			t.Errorf("Unexpected share URL: %s", resp.ShareURL)
		}

		var status string
		if err := conn.QueryRow("SELECT status FROM form WHERE id = $1", formID).Scan(&status); err != nil {
			t.Fatalf("Failed to query form: %v", err)
		}
		if status != models.StatusPublished {
			t.Errorf("Expected status 'published', got '%s'", status)
		}
	})

	t.Run("rejects empty question sequence", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)

		w := publish(t, formID, adminKey)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("rejects double publish", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusPublished, testutil.SampleQuestions())

		w := publish(t, formID, adminKey)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}

func TestCloseForm(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(conn, cfg)

	closeForm := func(t *testing.T, formID, adminKey string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("POST", "/forms/"+formID+"/close", nil, map[string]string{"X-Admin-Key": adminKey})
		req.SetPathValue("id", formID)
		w := httptest.NewRecorder()
		handler.CloseForm(w, req)
		return w
	}

	t.Run("closes a published form", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusPublished, testutil.SampleQuestions())

		w := closeForm(t, formID, adminKey)
		testutil.AssertStatus(t, w, http.StatusOK)

		var status string
		if err := conn.QueryRow("SELECT status FROM form WHERE id = $1", formID).Scan(&status); err != nil {
			t.Fatalf("Failed to query form: %v", err)
		}
		if status != models.StatusClosed {
			t.Errorf("Expected status 'closed', got '%s'", status)
		}
	})

	t.Run("cannot close a draft", func(t *testing.T) {
		formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)

		w := closeForm(t, formID, adminKey)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}

func TestDeleteForm(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewFormHandler(conn, cfg)

	formID, adminKey, _ := testutil.CreateTestForm(t, conn, cfg, models.StatusDraft, nil)
	testutil.InsertTestResponse(t, conn, formID, map[string]models.AnswerValue{"q": models.TextAnswer("x")})

	req := testutil.MakeRequest("DELETE", "/forms/"+formID, nil, map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", formID)
	w := httptest.NewRecorder()

	handler.DeleteForm(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM response WHERE form_id = $1", formID).Scan(&count); err != nil {
		t.Fatalf("Failed to count responses: %v", err)
	}
	if count != 0 {
		t.Errorf("Responses should cascade with the form, %d left", count)
	}

	// Deleting again is a 404.
	w = httptest.NewRecorder()
	handler.DeleteForm(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestNormalizeQuestions_FillsDefaults(t *testing.T) {
	cleaned, msg := normalizeQuestions([]models.Question{
		{Type: models.TypeShortText, Title: "Name"},
		{ID: "fixed", Type: models.TypeCheckboxes, Title: "Pick", Options: []string{"a", "b"}},
	})
	if msg != "" {
		t.Fatalf("normalizeQuestions() message = %q", msg)
	}
	if cleaned[0].ID == "" {
		t.Error("blank id should be assigned")
	}
	if cleaned[1].ID != "fixed" {
		t.Error("existing ids are preserved")
	}
}
