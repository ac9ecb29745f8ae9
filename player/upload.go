// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package player

import (
	"context"

	"github.com/vivekrp/openform/models"
)

// UploadStatus is the per-surface sub-state of a file upload question:
// Idle -> Uploading -> (Uploaded | Failed). Only Uploaded commits a
// value; Failed is local to the surface and a new selection supersedes
// it.
type UploadStatus int

const (
	UploadIdle UploadStatus = iota
	Uploading
	Uploaded
	UploadFailed
)

func (u UploadStatus) String() string {
	switch u {
	case UploadIdle:
		return "idle"
	case Uploading:
		return "uploading"
	case Uploaded:
		return "uploaded"
	case UploadFailed:
		return "failed"
	}
	return "unknown"
}

// Uploader stores a file and returns its reference. The disk store and
// the inline data-URL fallback both satisfy it with an identical
// output shape.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, data []byte) (models.FileRef, error)
}

type uploadSurface struct {
	status UploadStatus
	err    string
}

// UploadFile runs the upload sub-state machine for a file question.
// A transport failure surfaces on this question's upload state only;
// it never touches the session's validation errors and the stored
// value stays absent. Success records the file reference as the
// answer and clears any prior validation error for the question.
//
// The question does not have to be the current one: an upload that
// resolves after the respondent navigated away still lands on its own
// surface, never on the controller's index.
func (s *Session) UploadFile(ctx context.Context, questionID, name, contentType string, data []byte, up Uploader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	q, ok := s.questionByID(questionID)
	if !ok || q.Type != models.TypeFileUpload {
		return ErrNotFileQuestion
	}

	surface := s.surface(questionID)
	surface.status = Uploading
	surface.err = ""

	ref, err := up.Upload(ctx, name, contentType, data)
	if err != nil {
		surface.status = UploadFailed
		surface.err = err.Error()
		return nil
	}

	surface.status = Uploaded
	s.answers[questionID] = models.FileAnswer(ref)
	delete(s.errors, questionID)
	return nil
}

// ClearFile removes a file answer and resets the surface to idle, the
// respondent's "remove file" action.
func (s *Session) ClearFile(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	q, ok := s.questionByID(questionID)
	if !ok || q.Type != models.TypeFileUpload {
		return ErrNotFileQuestion
	}

	delete(s.answers, questionID)
	surface := s.surface(questionID)
	surface.status = UploadIdle
	surface.err = ""
	return nil
}

// UploadState returns the surface sub-state for a file question.
func (s *Session) UploadState(questionID string) (UploadStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	surface, ok := s.uploads[questionID]
	if !ok {
		return UploadIdle, ""
	}
	return surface.status, surface.err
}

// surface runs with the lock held.
func (s *Session) surface(questionID string) *uploadSurface {
	surface, ok := s.uploads[questionID]
	if !ok {
		surface = &uploadSurface{}
		s.uploads[questionID] = surface
	}
	return surface
}

// questionByID runs with the lock held.
func (s *Session) questionByID(id string) (models.Question, bool) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}
