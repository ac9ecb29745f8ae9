// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse layers configuration from CLI flags over environment
variables.

Required settings:

  - DATABASE_URL (-d): database connection string or sqlite path
  - ADMIN_KEY_SALT (--admin-salt): secret for form admin key HMAC
  - FORM_SLUG_SALT (--slug-salt): secret for share slug generation

Optional settings:

  - PORT (-p): server port (default 3324)
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - BASE_URL (--base-url): public base URL for share links
  - UPLOAD_DIR (--upload-dir): file storage directory; when empty,
    uploads fall back to inline data URLs
  - SESSION_TTL_MINUTES (--session-ttl): player session idle TTL
*/
package cliparse
