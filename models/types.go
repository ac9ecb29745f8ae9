package models

import "time"

// Form status constants
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

// QuestionType tags the shape of a question. The set is closed; the
// catalog package holds the registry of metadata per type.
type QuestionType string

const (
	TypeShortText    QuestionType = "short_text"
	TypeLongText     QuestionType = "long_text"
	TypeDropdown     QuestionType = "dropdown"
	TypeCheckboxes   QuestionType = "checkboxes"
	TypeEmail        QuestionType = "email"
	TypePhone        QuestionType = "phone"
	TypeNumber       QuestionType = "number"
	TypeDate         QuestionType = "date"
	TypeRating       QuestionType = "rating"
	TypeOpinionScale QuestionType = "opinion_scale"
	TypeYesNo        QuestionType = "yes_no"
	TypeFileUpload   QuestionType = "file_upload"
	TypeURL          QuestionType = "url"
)

// Question is one entry in a form's question sequence. It is immutable
// once a respondent begins a session. The JSON keys match the stored
// document format (camelCase), not the snake_case API envelopes.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Required    bool         `json:"required"`

	// Type-specific configuration
	Options          []string `json:"options,omitempty"`          // dropdown, checkboxes
	MinValue         *int     `json:"minValue,omitempty"`         // rating, opinion_scale
	MaxValue         *int     `json:"maxValue,omitempty"`         // rating, opinion_scale
	AllowedFileTypes []string `json:"allowedFileTypes,omitempty"` // file_upload
	MaxFileSize      int      `json:"maxFileSize,omitempty"`      // file_upload, in MB
	Placeholder      string   `json:"placeholder,omitempty"`      // free-text types
}

// Request types

type CreateFormRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
}

// UpdateFormRequest carries partial updates; nil fields are unchanged.
type UpdateFormRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Theme           *string    `json:"theme"`
	ThankYouMessage *string    `json:"thank_you_message"`
	Questions       []Question `json:"questions"`
}

type SetAnswerRequest struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
}

// NavigationEventRequest is the wire form of a player navigation event.
// Source is "key", "wheel", or "pointer"; action is "advance" or
// "retreat". Delta carries the wheel magnitude and is ignored for the
// other sources.
type NavigationEventRequest struct {
	Source string  `json:"source"`
	Action string  `json:"action"`
	Delta  float64 `json:"delta,omitempty"`
}

// Response types

type CreateFormResponse struct {
	FormID   string `json:"form_id"`
	AdminKey string `json:"admin_key"`
}

type PublishFormResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type UploadResultResponse struct {
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	File   *FileRef    `json:"file,omitempty"`
	State  SessionView `json:"state"`
}

// SessionView is the player state rendered for the respondent. State is
// "answering", "submitted", or "empty". Question is the currently
// displayed question; it is nil outside the answering state.
type SessionView struct {
	SessionID   string       `json:"session_id,omitempty"`
	State       string       `json:"state"`
	Index       int          `json:"index"`
	Total       int          `json:"total"`
	Progress    float64      `json:"progress"`
	Direction   int          `json:"direction"`
	Question    *Question    `json:"question,omitempty"`
	Answer      *AnswerValue `json:"answer,omitempty"`
	Error       string       `json:"error,omitempty"`
	SubmitError string       `json:"submit_error,omitempty"`
	Message     string       `json:"message,omitempty"`
}

// Domain types

type Form struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	ShareSlug       *string    `json:"share_slug,omitempty"`
	Theme           string     `json:"theme"`
	Questions       []Question `json:"questions"`
	ThankYouMessage string     `json:"thank_you_message"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type FormAdmin struct {
	Form          Form `json:"form"`
	ResponseCount int  `json:"response_count"`
}

// PublicForm is what a respondent fetching a published form sees. The
// theme is resolved to its full record so the player needs no second
// lookup.
type PublicForm struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	Questions       []Question `json:"questions"`
	Theme           Theme      `json:"theme"`
	ThankYouMessage string     `json:"thank_you_message"`
}

// Theme is the fixed record of named colors and a font family resolved
// from a theme preset id.
type Theme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	AccentColor     string `json:"accentColor"`
	FontFamily      string `json:"fontFamily"`
}

type ResponseRecord struct {
	ID          string                 `json:"id"`
	FormID      string                 `json:"form_id"`
	Answers     map[string]AnswerValue `json:"answers"`
	SubmittedAt time.Time              `json:"submitted_at"`
	IPHash      *string                `json:"-"` // Never expose in JSON
	UserAgent   *string                `json:"-"` // Never expose in JSON
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
