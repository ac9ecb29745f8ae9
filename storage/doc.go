// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage persists respondent file uploads.

Disk writes files under a configured directory and hands back a
FileRef whose URL points at the service's /files/ route. Inline is the
degraded-mode fallback used when no directory is configured: the same
FileRef shape with a base64 data URL instead of a remote location.
Both satisfy player.Uploader, so the player cannot tell them apart.
*/
package storage
