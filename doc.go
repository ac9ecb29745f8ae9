// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the OpenForm API server.

OpenForm is a form-building and response-collection service: authors
design multi-step, one-question-at-a-time forms from a fixed catalog
of question types, publish them to a public URL, and collect and
inspect responses. The form-player runtime walks respondents through
the question sequence server-side.

# Starting the Server

The server requires environment variables or CLI flags for
configuration:

	DATABASE_URL=./openform.db go run main.go

Or with flags:

	go run main.go -p 3324 -d ./openform.db -t sqlite

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - ADMIN_KEY_SALT (--admin-salt): Secret for form admin key HMAC
  - FORM_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3324)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (--base-url): Public base URL for share links
  - UPLOAD_DIR (--upload-dir): File storage directory; empty means
    uploads degrade to inline data URLs
  - SESSION_TTL_MINUTES (--session-ttl): Player session idle TTL

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (forms, player sessions, responses, files)
  - player: the form-player runtime (navigation state machine, answer
    store, upload sub-state machine, session registry)
  - catalog: static question type registry
  - validate: pure answer validation
  - themes: theme preset lookup
  - storage: uploaded file persistence (disk or inline fallback)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: admin key and share slug generation
  - db: connection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
