// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database connection and creates the schema.

Two tables: form (metadata, lifecycle status, question sequence as a
JSON document, theme, thank-you message) and response (one submitted
answer set per row, answers as a JSON document).

The schema and all query placeholders ($1 style) stay within the
subset both PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite)
accept, so the same handler SQL runs against either backend.
*/
package db
