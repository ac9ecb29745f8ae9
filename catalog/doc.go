// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog is the static registry of question types.

Each of the 13 types maps to display metadata, a default configuration,
the AnswerValue variant its input surface emits, and the
CommitsOnChange capability flag the navigation controller consults.
The registry holds no runtime state.

	info, ok := catalog.Lookup(models.TypeDropdown)
	q := catalog.NewQuestion(models.TypeRating) // id + defaults filled

ScaleBounds and MaxFileBytes resolve effective per-question limits,
applying the catalog defaults (rating 1-5, opinion scale 1-10, uploads
10 MB) when the author left them unset.
*/
package catalog
