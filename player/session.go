// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package player

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vivekrp/openform/catalog"
	"github.com/vivekrp/openform/models"
	"github.com/vivekrp/openform/validate"
)

var (
	ErrNoQuestions     = errors.New("form has no questions")
	ErrSubmitted       = errors.New("session already submitted")
	ErrWrongQuestion   = errors.New("answer is not for the current question")
	ErrValueShape      = errors.New("value shape does not match question type")
	ErrOutOfRange      = errors.New("value outside the question's scale bounds")
	ErrNotAnOption     = errors.New("value is not one of the question's options")
	ErrNotFileQuestion = errors.New("question does not accept file uploads")
)

// MsgSubmitFailed is the transient notification shown when the
// submission gateway rejects a finished answer set.
const MsgSubmitFailed = "Failed to submit response"

// Phase is the navigation controller's state machine position.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseSubmitting
	PhaseSubmitted
)

// Gateway persists a finished answer set. Submit is called exactly
// once per successful completion; a failed submission is retried only
// by the respondent re-triggering the final advance.
type Gateway interface {
	Submit(ctx context.Context, formID string, answers map[string]models.AnswerValue) error
}

// Session walks one respondent through a form's question sequence. It
// owns the session state exclusively: all interaction paths funnel
// through its methods, serialized by an internal mutex so concurrent
// HTTP requests behave like the single-threaded event dispatch the
// design assumes.
type Session struct {
	mu sync.Mutex

	id        string
	formID    string
	questions []models.Question
	gateway   Gateway

	current   int
	answers   map[string]models.AnswerValue
	errors    map[string]string
	direction int
	phase     Phase
	submitErr string

	uploads map[string]*uploadSurface

	lastNav time.Time
	touched time.Time

	now func() time.Time // injectable clock for tests
}

// NewSession creates a player session over an ordered question
// sequence. An empty sequence is a structural failure handled by the
// caller; the session never enters the answering state for it.
func NewSession(formID string, questions []models.Question, gw Gateway) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		id:        uuid.NewString(),
		formID:    formID,
		questions: questions,
		gateway:   gw,
		answers:   make(map[string]models.AnswerValue),
		errors:    make(map[string]string),
		uploads:   make(map[string]*uploadSurface),
		now:       time.Now,
	}
	s.touched = s.now()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// FormID returns the form this session plays.
func (s *Session) FormID() string { return s.formID }

// SetAnswer records a value for the currently displayed question and
// clears its validation error. On a commit-on-change surface
// (dropdown, yes/no, opinion scale) choosing a value also advances
// immediately with validation skipped, which may submit when the
// question is the last. An absent value clears the recorded answer
// and never advances: the skip applies to choosing, not clearing.
//
// The surface cannot emit values outside the question's domain: a
// number outside the scale bounds or a selection outside the option
// list is rejected without being stored.
func (s *Session) SetAnswer(ctx context.Context, questionID string, v models.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.phase == PhaseSubmitted {
		return ErrSubmitted
	}
	q := s.questions[s.current]
	if q.ID != questionID {
		return ErrWrongQuestion
	}
	if err := checkShape(q, v); err != nil {
		return err
	}

	if v.Absent() {
		delete(s.answers, questionID)
		delete(s.errors, questionID)
		return nil
	}

	s.answers[questionID] = v
	delete(s.errors, questionID)

	if catalog.CommitsOnChange(q.Type) {
		s.advance(ctx, true)
	}
	return nil
}

// checkShape verifies the value matches the variant the question's
// surface emits, and enforces the per-type value domain at the
// emission point: scale bounds for number surfaces, option membership
// for choice surfaces.
func checkShape(q models.Question, v models.AnswerValue) error {
	if v.Absent() {
		return nil // clearing an answer is always allowed
	}
	if v.Kind != catalog.ValueKind(q.Type) {
		return ErrValueShape
	}

	switch q.Type {
	case models.TypeRating, models.TypeOpinionScale:
		mn, mx := catalog.ScaleBounds(q)
		n := int(v.Number)
		if float64(n) != v.Number || n < mn || n > mx {
			return ErrOutOfRange
		}
	case models.TypeDropdown:
		if !slices.Contains(q.Options, v.Text) {
			return ErrNotAnOption
		}
	case models.TypeCheckboxes:
		for _, sel := range v.List {
			if !slices.Contains(q.Options, sel) {
				return ErrNotAnOption
			}
		}
	case models.TypeYesNo:
		if v.Text != "Yes" && v.Text != "No" {
			return ErrNotAnOption
		}
	}
	return nil
}

// Advance requests a move to the next question, validating the
// current answer unless skipValidation is set. Advancing past the
// last question submits the composed answer set.
func (s *Session) Advance(ctx context.Context, skipValidation bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.advance(ctx, skipValidation)
}

// Retreat moves back one question. It never validates and never
// mutates answers or errors; retreating from the first question is a
// no-op.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.retreat()
}

// advance runs with the lock held.
func (s *Session) advance(ctx context.Context, skipValidation bool) {
	if s.phase != PhaseAnswering {
		return
	}
	s.submitErr = ""

	q := s.questions[s.current]
	if !skipValidation {
		if msg := validate.Answer(q, s.answers[q.ID]); msg != "" {
			s.errors[q.ID] = msg
			return
		}
	}
	delete(s.errors, q.ID)

	if s.current == len(s.questions)-1 {
		s.submit(ctx)
		return
	}
	s.current++
	s.direction = 1
}

// retreat runs with the lock held.
func (s *Session) retreat() {
	if s.phase != PhaseAnswering {
		return
	}
	if s.current == 0 {
		return
	}
	s.current--
	s.direction = -1
}

// submit hands the composed answer set to the gateway. Failure is a
// transient notification and the session resumes answering at the
// last question; the answer store is untouched so the respondent can
// retry.
func (s *Session) submit(ctx context.Context) {
	s.phase = PhaseSubmitting

	snapshot := make(map[string]models.AnswerValue, len(s.answers))
	for id, v := range s.answers {
		snapshot[id] = v
	}

	if err := s.gateway.Submit(ctx, s.formID, snapshot); err != nil {
		s.phase = PhaseAnswering
		s.submitErr = MsgSubmitFailed
		return
	}
	s.phase = PhaseSubmitted
}

// Question returns a question in this session's sequence by id.
func (s *Session) Question(id string) (models.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionByID(id)
}

// Answers returns a copy of the answer store.
func (s *Session) Answers() map[string]models.AnswerValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]models.AnswerValue, len(s.answers))
	for id, v := range s.answers {
		out[id] = v
	}
	return out
}

// Submitted reports whether the session reached its terminal state.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseSubmitted
}

// View renders the session state for the respondent.
func (s *Session) View() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := models.SessionView{
		SessionID:   s.id,
		Index:       s.current,
		Total:       len(s.questions),
		Direction:   s.direction,
		SubmitError: s.submitErr,
	}

	if s.phase == PhaseSubmitted {
		view.State = "submitted"
		view.Progress = 100
		return view
	}

	view.State = "answering"
	view.Progress = float64(s.current+1) / float64(len(s.questions)) * 100

	q := s.questions[s.current]
	view.Question = &q
	if v, ok := s.answers[q.ID]; ok {
		view.Answer = &v
	}
	view.Error = s.errors[q.ID]
	return view
}

// touch runs with the lock held; the registry uses LastTouched to
// expire abandoned sessions.
func (s *Session) touch() { s.touched = s.now() }

// LastTouched returns the time of the most recent interaction.
func (s *Session) LastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}
