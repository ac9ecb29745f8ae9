// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the OpenForm API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - FormHandler: form lifecycle (create, update, publish, close, delete)
  - PlayHandler: public form fetch, player sessions, uploads
  - ResponseHandler: response listing and CSV export
  - FileHandler: serving stored upload files

Handlers are created via constructor functions that accept *sql.DB and
Config:

	formHandler := handlers.NewFormHandler(db, cfg)

# Form Lifecycle

Forms progress through three states: draft → published → closed

	POST /forms              → CreateForm (returns admin_key)
	PUT  /forms/{id}         → UpdateForm (draft or published)
	POST /forms/{id}/publish → PublishForm (generates share_slug)
	POST /forms/{id}/close   → CloseForm

Admin operations require the X-Admin-Key header.

# Respondent Flow

Respondents interact via the share slug and a player session:

	GET    /f/{slug}                  → GetForm (questions + theme)
	POST   /f/{slug}/sessions         → CreateSession
	POST   /sessions/{id}/answer      → SetAnswer
	POST   /sessions/{id}/events      → HandleEvent (key/wheel/pointer)
	POST   /sessions/{id}/upload      → Upload (file questions)
	DELETE /sessions/{id}             → DeleteSession (tab close)

Advancing past the last question submits the composed answer set as
one response row; a failed insert returns the session to the last
question so the respondent can retry.

# Response Inspection

	GET /forms/{id}/responses     → ListResponses (admin)
	GET /forms/{id}/responses.csv → ExportCSV (admin)
*/
package handlers
