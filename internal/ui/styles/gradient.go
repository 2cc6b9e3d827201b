package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// BlendFunc returns the colour at t (0..1) along a gradient.
type BlendFunc func(t float64) colorful.Color

// Linear blends between two stops in HCL space.
func Linear(from, to colorful.Color) BlendFunc {
	return func(t float64) colorful.Color {
		return from.BlendHcl(to, min(max(t, 0), 1)).Clamped()
	}
}

// ApplyGradient renders text with a horizontal foreground gradient.
func ApplyGradient(text string, blend BlendFunc) string {
	return applyGradient(text, false, blend)
}

// ApplyBoldGradient renders bold text with a horizontal foreground gradient.
func ApplyBoldGradient(text string, blend BlendFunc) string {
	return applyGradient(text, true, blend)
}

func applyGradient(text string, bold bool, blend BlendFunc) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 0 {
		return ""
	}

	var b strings.Builder
	for i, cluster := range clusters {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(blend(position(i, len(clusters))).Hex()))
		if bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// Strip renders a solid bar of width cells whose background follows the
// gradient.
func Strip(width int, blend BlendFunc) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	for i := range width {
		c := lipgloss.Color(blend(position(i, width)).Hex())
		b.WriteString(lipgloss.NewStyle().Background(c).Render(" "))
	}
	return b.String()
}

func position(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}
