// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package themes resolves theme preset ids to their fixed records of
named colors and a font family. The player consumes themes but never
computes them; unknown ids degrade to the default preset instead of
failing.
*/
package themes
