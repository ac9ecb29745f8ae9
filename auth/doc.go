// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation.

Forms have no accounts: the author who creates a form receives an
HMAC-derived admin key, and publishing derives a short base62 share
slug the same way. Both are deterministic from the form id and a
server-side salt, so neither is stored.

	adminKey := auth.GenerateAdminKey(formID, cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(formID, presented, cfg.AdminKeySalt)
	slug := auth.GenerateShareSlug(formID, cfg.FormSlugSalt)

GenerateID produces random hex identifiers, and HashIP one-way hashes
respondent IPs before they touch the database.
*/
package auth
