// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package player is the form-player runtime: it walks a respondent
through an ordered question sequence one question at a time, validates
answers, and hands the finished answer set to a submission gateway.

# Session State Machine

A Session is Answering(i) for 0 <= i < len(questions), then
Submitting, then Submitted. Advancing validates the current answer
(unless the advance came from a commit-on-change surface), retreating
never validates and floor-clamps at the first question. Advancing past
the last question submits; gateway failure returns the session to the
last question with all answers intact so the respondent can retry.

	sess, err := player.NewSession(formID, questions, gateway)
	sess.SetAnswer(ctx, qid, models.TextAnswer("hi"))
	sess.Advance(ctx, false)
	view := sess.View()

# Commit-on-change

Dropdown, yes/no, and opinion scale surfaces record the value and
advance in the same interaction, bypassing validation (the value was
just set; a stale error must not block the advance). The capability is
a catalog flag consulted by SetAnswer, not a per-surface decision.

# Input Events

Keyboard, wheel, and pointer producers all feed Handle, so the wheel
cooldown (500ms) and magnitude threshold (50) live in one place.

# File Uploads

Each file question owns an Idle -> Uploading -> (Uploaded | Failed)
sub-state. Only Uploaded commits a value; a transport failure stays on
the surface and never becomes a validation error.

# Registry

Registry tracks a process's live sessions and sweeps the ones idle
past the TTL. Sessions are never persisted and there are no
resume-later semantics.
*/
package player
