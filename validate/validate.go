// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"net/url"
	"regexp"

	"github.com/vivekrp/openform/models"
)

// User-facing validation messages.
const (
	MsgRequired     = "This field is required"
	MsgSelectOne    = "Please select at least one option"
	MsgInvalidEmail = "Please enter a valid email address"
	MsgInvalidURL   = "Please enter a valid URL"
	MsgInvalidPhone = "Please enter a valid phone number"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[+]?[\d\s\-().]+$`)
)

// Answer checks a single (question, value) pair and returns the error
// message to display, or "" when the value is acceptable. Rules run in
// order and the first failure wins: required, then the per-type format
// checks, which only apply to non-empty values.
//
// Numeric bounds on rating and opinion scale questions are not checked
// here; the input surface cannot emit out-of-range values.
func Answer(q models.Question, v models.AnswerValue) string {
	if q.Required && v.Empty() {
		if q.Type == models.TypeCheckboxes {
			return MsgSelectOne
		}
		return MsgRequired
	}

	if v.Kind != models.KindText || v.Text == "" {
		return ""
	}

	switch q.Type {
	case models.TypeEmail:
		if !emailRe.MatchString(v.Text) {
			return MsgInvalidEmail
		}
	case models.TypeURL:
		if !isAbsoluteURL(v.Text) {
			return MsgInvalidURL
		}
	case models.TypePhone:
		if !phoneRe.MatchString(v.Text) {
			return MsgInvalidPhone
		}
	}
	return ""
}

// isAbsoluteURL mirrors the browser URL constructor: the value must
// parse and carry a scheme.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}
