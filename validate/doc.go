// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate decides whether a candidate answer is acceptable for
a question.

The single entry point is Answer, a pure function with no I/O:

	msg := validate.Answer(question, value)
	if msg != "" {
		// reject; msg is the user-facing error text
	}

Rules run in order, first failure wins:

 1. required questions reject absent, empty-string, and empty-selection
    values
 2. email answers must match a standard email shape
 3. url answers must parse as an absolute URL
 4. phone answers may contain digits, spaces, hyphens, parentheses,
    periods, and an optional leading +

Format checks only apply to non-empty text values, so an optional
email question accepts an empty answer.
*/
package validate
