package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

// HeatCell is one day in the activity grid: its ISO date and discrete
// heat level (0..3).
type HeatCell struct {
	Date  string
	Level int
}

// Heatmap renders a calendar activity grid, one column per week and one
// row per weekday, oldest week on the left.
type Heatmap struct {
	Cells []HeatCell
}

// NewHeatmap creates a grid over cells ordered oldest first.
func NewHeatmap(cells []HeatCell) Heatmap {
	return Heatmap{Cells: cells}
}

// View renders the grid, clipping the oldest weeks when maxWidth cannot
// fit them all.
func (h Heatmap) View(maxWidth int) string {
	if len(h.Cells) == 0 {
		return ""
	}

	const rows = 7
	weeks := (len(h.Cells) + rows - 1) / rows

	// Two display columns per week ("■ ").
	maxWeeks := maxWidth / 2
	if maxWeeks < 1 {
		maxWeeks = 1
	}
	startWeek := 0
	if weeks > maxWeeks {
		startWeek = weeks - maxWeeks
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for week := startWeek; week < weeks; week++ {
			idx := week*rows + row
			if idx >= len(h.Cells) {
				b.WriteString("  ")
				continue
			}
			level := h.Cells[idx].Level
			if level < 0 {
				level = 0
			}
			if level >= len(theme.Heat) {
				level = len(theme.Heat) - 1
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Heat[level]).
				Render("■ "))
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
