package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/skillsprint/skillsprint/internal/ui/theme"
)

// Gauge renders a half-circle gauge as a horizontal arc. The needle
// position comes from an angle in degrees (0..180), precomputed by the
// caller.
type Gauge struct {
	Label string
	Angle float64
	Value string // formatted value shown under the arc
	Width int
}

// NewGauge creates a gauge for a 0..180 degree angle.
func NewGauge(label string, angle float64, value string, width int) Gauge {
	return Gauge{Label: label, Angle: angle, Value: value, Width: width}
}

// View renders the gauge.
func (g Gauge) View() string {
	arcWidth := g.Width
	if arcWidth < 10 {
		arcWidth = 10
	}

	angle := g.Angle
	if angle < 0 {
		angle = 0
	}
	if angle > 180 {
		angle = 180
	}
	filled := int(angle / 180 * float64(arcWidth))
	if filled > arcWidth {
		filled = arcWidth
	}

	arc := lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Repeat("▰", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("▱", arcWidth-filled))

	var b strings.Builder
	if g.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(g.Label))
		b.WriteString("\n")
	}
	b.WriteString(arc)
	if g.Value != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(g.Value))
	}
	return b.String()
}
