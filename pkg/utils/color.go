package utils

import (
	"strings"

	"github.com/fatih/color"
)

// gradeColors maps finding grades (confidence and severity) to terminal colors
var gradeColors = map[string]color.Attribute{
	"high":           color.FgRed,
	"medium":         color.FgYellow,
	"low":            color.FgBlue,
	"recommendation": color.FgMagenta,
	"info":           color.FgCyan,
}

// GradeColor returns the display color for a grade, or FgWhite when unknown
func GradeColor(grade string) color.Attribute {
	if c, ok := gradeColors[strings.ToLower(grade)]; ok {
		return c
	}
	return color.FgWhite
}

// Colorize renders text in the color of the given grade
func Colorize(grade, text string) string {
	return color.New(GradeColor(grade)).Sprint(text)
}

// DisableColor turns off all color output (e.g. --no-color or non-TTY)
func DisableColor() {
	color.NoColor = true
}
