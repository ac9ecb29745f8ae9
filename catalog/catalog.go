// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"github.com/google/uuid"

	"github.com/vivekrp/openform/models"
)

// Default bounds for scale questions.
const (
	DefaultRatingMax   = 5
	DefaultOpinionMin  = 1
	DefaultOpinionMax  = 10
	DefaultMaxFileSize = 10 // MB
)

// Info is the static metadata for one question type: display strings,
// the value shape its input surface emits, the commit behavior, and
// the default configuration applied when an author adds a question.
type Info struct {
	Type        models.QuestionType
	Label       string
	Description string

	// Kind is the AnswerValue variant the surface for this type emits.
	Kind models.AnswerKind

	// CommitsOnChange marks surfaces where selecting a value also
	// requests an immediate, validation-skipping advance.
	CommitsOnChange bool

	// Defaults applied by NewQuestion.
	DefaultPlaceholder string
	DefaultOptions     []string
	HasScale           bool
	DefaultMin         int
	DefaultMax         int
	DefaultFileTypes   []string
	DefaultMaxFileMB   int
}

var registry = []Info{
	{
		Type:               models.TypeShortText,
		Label:              "Short Text",
		Description:        "A single line text input",
		Kind:               models.KindText,
		DefaultPlaceholder: "Type your answer here...",
	},
	{
		Type:               models.TypeLongText,
		Label:              "Long Text",
		Description:        "A multi-line text area",
		Kind:               models.KindText,
		DefaultPlaceholder: "Type your answer here...",
	},
	{
		Type:            models.TypeDropdown,
		Label:           "Dropdown",
		Description:     "Select one option from a list",
		Kind:            models.KindText,
		CommitsOnChange: true,
		DefaultOptions:  []string{"Option 1", "Option 2", "Option 3"},
	},
	{
		Type:           models.TypeCheckboxes,
		Label:          "Checkboxes",
		Description:    "Select multiple options from a list",
		Kind:           models.KindList,
		DefaultOptions: []string{"Option 1", "Option 2", "Option 3"},
	},
	{
		Type:               models.TypeEmail,
		Label:              "Email",
		Description:        "An email address input",
		Kind:               models.KindText,
		DefaultPlaceholder: "name@example.com",
	},
	{
		Type:               models.TypePhone,
		Label:              "Phone",
		Description:        "A phone number input",
		Kind:               models.KindText,
		DefaultPlaceholder: "+1 (555) 000-0000",
	},
	{
		Type:               models.TypeNumber,
		Label:              "Number",
		Description:        "A numeric input",
		Kind:               models.KindText,
		DefaultPlaceholder: "0",
	},
	{
		Type:        models.TypeDate,
		Label:       "Date",
		Description: "A date picker",
		Kind:        models.KindText,
	},
	{
		Type:        models.TypeRating,
		Label:       "Rating",
		Description: "A star rating (1-5)",
		Kind:        models.KindNumber,
		HasScale:    true,
		DefaultMin:  1,
		DefaultMax:  DefaultRatingMax,
	},
	{
		Type:            models.TypeOpinionScale,
		Label:           "Opinion Scale",
		Description:     "A numeric scale (1-10)",
		Kind:            models.KindNumber,
		CommitsOnChange: true,
		HasScale:        true,
		DefaultMin:      DefaultOpinionMin,
		DefaultMax:      DefaultOpinionMax,
	},
	{
		Type:            models.TypeYesNo,
		Label:           "Yes / No",
		Description:     "A simple yes or no choice",
		Kind:            models.KindText,
		CommitsOnChange: true,
	},
	{
		Type:             models.TypeFileUpload,
		Label:            "File Upload",
		Description:      "Upload images or PDFs",
		Kind:             models.KindFile,
		DefaultFileTypes: []string{"image/*", "application/pdf"},
		DefaultMaxFileMB: DefaultMaxFileSize,
	},
	{
		Type:               models.TypeURL,
		Label:              "Website URL",
		Description:        "A URL input",
		Kind:               models.KindText,
		DefaultPlaceholder: "https://example.com",
	},
}

var byType = func() map[models.QuestionType]Info {
	m := make(map[models.QuestionType]Info, len(registry))
	for _, info := range registry {
		m[info.Type] = info
	}
	return m
}()

// Lookup returns the metadata for a question type.
func Lookup(t models.QuestionType) (Info, bool) {
	info, ok := byType[t]
	return info, ok
}

// Known reports whether t is one of the 13 supported types.
func Known(t models.QuestionType) bool {
	_, ok := byType[t]
	return ok
}

// Types returns all question types in catalog order.
func Types() []models.QuestionType {
	out := make([]models.QuestionType, len(registry))
	for i, info := range registry {
		out[i] = info.Type
	}
	return out
}

// CommitsOnChange reports whether setting a value on this question's
// surface also requests an immediate advance. Unknown types never
// commit on change.
func CommitsOnChange(t models.QuestionType) bool {
	return byType[t].CommitsOnChange
}

// ValueKind returns the AnswerValue variant this question's surface
// emits.
func ValueKind(t models.QuestionType) models.AnswerKind {
	return byType[t].Kind
}

// NewQuestion builds a question of the given type with a fresh id and
// the catalog's default configuration, ready for an author to edit.
func NewQuestion(t models.QuestionType) models.Question {
	info := byType[t]
	q := models.Question{
		ID:          uuid.NewString(),
		Type:        t,
		Required:    false,
		Placeholder: info.DefaultPlaceholder,
	}
	if len(info.DefaultOptions) > 0 {
		q.Options = append([]string(nil), info.DefaultOptions...)
	}
	if info.HasScale {
		mn, mx := info.DefaultMin, info.DefaultMax
		q.MinValue = &mn
		q.MaxValue = &mx
	}
	if len(info.DefaultFileTypes) > 0 {
		q.AllowedFileTypes = append([]string(nil), info.DefaultFileTypes...)
		q.MaxFileSize = info.DefaultMaxFileMB
	}
	return q
}

// ScaleBounds resolves the effective [min, max] range for a rating or
// opinion scale question, falling back to the catalog defaults when
// the author left the bounds unset.
func ScaleBounds(q models.Question) (int, int) {
	info := byType[q.Type]
	mn, mx := info.DefaultMin, info.DefaultMax
	if !info.HasScale {
		return 0, 0
	}
	if q.MinValue != nil {
		mn = *q.MinValue
	}
	if q.MaxValue != nil {
		mx = *q.MaxValue
	}
	if mx < mn {
		mx = mn
	}
	return mn, mx
}

// MaxFileBytes resolves the upload size cap for a file question.
func MaxFileBytes(q models.Question) int64 {
	mb := q.MaxFileSize
	if mb <= 0 {
		mb = DefaultMaxFileSize
	}
	return int64(mb) * 1024 * 1024
}
