// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers: request
logging with status and duration, CORS for form embeds, JSON
request/response encoding, and client IP extraction behind proxies.
*/
package middleware
