// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the agroview CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Agroview color palette - greens of growing fields, earth tones below.
var (
	// Primary palette (brightest to darkest)
	ColorLeafBright  = lipgloss.Color("#7BD88F") // Bright leaf - highlights, success
	ColorLeafPrimary = lipgloss.Color("#55B46E") // Primary leaf - main brand color
	ColorMoss        = lipgloss.Color("#3E9158") // Moss - interactive elements
	ColorFern        = lipgloss.Color("#2F7547") // Fern - secondary elements
	ColorPine        = lipgloss.Color("#235C3A") // Pine - borders, accents

	// Earth palette (backgrounds, muted elements)
	ColorSoil    = lipgloss.Color("#5B4636") // Tilled soil
	ColorBark    = lipgloss.Color("#3D2F24") // Bark - deep backgrounds
	ColorStone   = lipgloss.Color("#4F5B53") // Stone - muted text, borders
	ColorDarkest = lipgloss.Color("#131A15") // Darkest - near black

	// Semantic colors (standard conventions for clarity)
	ColorSuccess = lipgloss.Color("#7BD88F") // Bright leaf for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold/amber for warnings
	ColorError   = lipgloss.Color("#E74C3C") // Red for errors
	ColorMuted   = lipgloss.Color("#4F5B53") // Stone for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorLeafBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorLeafPrimary),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorStone),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorLeafBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPine).
		Padding(0, 1),
}

// plain is true when stdout is not a terminal; styling is suppressed so
// piped output stays machine-readable.
var plain = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

// FieldStatus renders a field/crop status with its semantic color.
func FieldStatus(status string) string {
	if plain {
		return status
	}
	switch status {
	case "Healthy":
		return Styles.Success.Render(status)
	case "Attention":
		return Styles.Warning.Render(status)
	case "Critical":
		return Styles.Error.Render(status)
	default:
		return Styles.Muted.Render(status)
	}
}

// Title prints a styled title.
func Title(text string) {
	if plain {
		fmt.Println(text)
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success message with checkmark.
func Success(text string) {
	if plain {
		fmt.Printf("OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Success.Render("✓"), Styles.Success.Render(text))
}

// Warning prints a warning message.
func Warning(text string) {
	if plain {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Warning.Render("⚠"), Styles.Warning.Render(text))
}

// Error prints an error message.
func Error(text string) {
	if plain {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Error.Render("✗"), Styles.Error.Render(text))
}

// Info prints an informational message.
func Info(text string) {
	if plain {
		fmt.Println(text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
}

// Muted prints secondary text.
func Muted(text string) {
	fmt.Println(Styles.Muted.Render(text))
}
