// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers using Go 1.22+
method patterns on the standard ServeMux. Every route runs behind the
logging middleware; CORS wraps the mux in main.
*/
package router
