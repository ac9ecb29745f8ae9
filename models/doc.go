// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateFormRequest: title, description, theme
  - UpdateFormRequest: partial form update (nil fields unchanged)
  - SetAnswerRequest: question_id, value
  - NavigationEventRequest: source, action, delta

# Response Types

Types for JSON responses:

  - CreateFormResponse: form_id, admin_key
  - PublishFormResponse: share_slug, share_url
  - SessionView: player state for the respondent
  - UploadResultResponse: upload outcome plus updated session state
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Form: form metadata, lifecycle state, and question sequence
  - Question: one entry in the question sequence (13 closed types)
  - AnswerValue: tagged union of the value shapes a surface can emit
  - FileRef: uploaded file reference (name, type, size, url)
  - Theme: resolved theme preset record
  - ResponseRecord: one submitted answer set

# Constants

Status values:

	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"

Question types:

	short_text, long_text, dropdown, checkboxes, email, phone, number,
	date, rating, opinion_scale, yes_no, file_upload, url

# Answer Encoding

AnswerValue marshals to the naked JSON value (string, number, bool,
string array, file object, or null when absent) so a stored answers
document reads as a plain questionID → value map. Unmarshalling
discriminates on the JSON shape.
*/
package models
