// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package themes

import "github.com/vivekrp/openform/models"

// DefaultID is the preset applied when a form references an unknown or
// empty theme id. Theme resolution never fails.
const DefaultID = "midnight"

var presets = []models.Theme{
	{
		ID:              "midnight",
		Name:            "Midnight",
		PrimaryColor:    "#8B5CF6",
		BackgroundColor: "#0F0F14",
		TextColor:       "#F4F4F5",
		AccentColor:     "#A78BFA",
		FontFamily:      "'Inter', sans-serif",
	},
	{
		ID:              "ocean",
		Name:            "Ocean",
		PrimaryColor:    "#0EA5E9",
		BackgroundColor: "#0C1929",
		TextColor:       "#E0F2FE",
		AccentColor:     "#38BDF8",
		FontFamily:      "'Inter', sans-serif",
	},
	{
		ID:              "sunset",
		Name:            "Sunset",
		PrimaryColor:    "#F97316",
		BackgroundColor: "#1C1210",
		TextColor:       "#FFEDD5",
		AccentColor:     "#FB923C",
		FontFamily:      "'Inter', sans-serif",
	},
	{
		ID:              "forest",
		Name:            "Forest",
		PrimaryColor:    "#22C55E",
		BackgroundColor: "#0D1B12",
		TextColor:       "#DCFCE7",
		AccentColor:     "#4ADE80",
		FontFamily:      "'Inter', sans-serif",
	},
	{
		ID:              "lavender",
		Name:            "Lavender",
		PrimaryColor:    "#C084FC",
		BackgroundColor: "#FAF5FF",
		TextColor:       "#3B0764",
		AccentColor:     "#A855F7",
		FontFamily:      "'Inter', sans-serif",
	},
	{
		ID:              "minimal",
		Name:            "Minimal",
		PrimaryColor:    "#18181B",
		BackgroundColor: "#FFFFFF",
		TextColor:       "#18181B",
		AccentColor:     "#52525B",
		FontFamily:      "'Inter', sans-serif",
	},
}

var byID = func() map[string]models.Theme {
	m := make(map[string]models.Theme, len(presets))
	for _, t := range presets {
		m[t.ID] = t
	}
	return m
}()

// Get resolves a theme id to its preset, falling back to the default
// preset for unknown ids.
func Get(id string) models.Theme {
	if t, ok := byID[id]; ok {
		return t
	}
	return byID[DefaultID]
}

// Known reports whether id names a preset.
func Known(id string) bool {
	_, ok := byID[id]
	return ok
}

// All returns the presets in display order.
func All() []models.Theme {
	return append([]models.Theme(nil), presets...)
}
