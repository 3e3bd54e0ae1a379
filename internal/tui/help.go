package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay draws a centered popup with the keybindings and a
// short legend. Dismissed by pressing any key.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSapphire)
	descStyle := lipgloss.NewStyle().Foreground(colorText)
	dimHintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	var lines []string

	lines = append(lines, titleStyle.Render("  UI Overpayments Report"))
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Selection"))
	lines = append(lines, "")
	selectionKeys := []struct{ key, desc string }{
		{"← → / h l", "Step the report year"},
		{"c / Tab", "Cycle category: Overview → Program → Benefit"},
		{"n", "Jump to the national view"},
		{"s", "Open the state picker"},
		{"v", "Toggle charts / comparison table"},
	}
	for _, k := range selectionKeys {
		lines = append(lines, "    "+keyStyle.Render(padRight(k.key, 14))+descStyle.Render(k.desc))
	}
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Actions"))
	lines = append(lines, "")
	actionKeys := []struct{ key, desc string }{
		{"e", "Export the current view as a PDF report"},
		{"t", "Cycle color theme"},
		{"?", "Toggle this help"},
		{"q / Ctrl+C", "Quit"},
	}
	for _, k := range actionKeys {
		lines = append(lines, "    "+keyStyle.Render(padRight(k.key, 14))+descStyle.Render(k.desc))
	}
	lines = append(lines, "")

	lines = append(lines, headingStyle.Render("  Reading the Charts"))
	lines = append(lines, "")
	legend := []struct {
		sample string
		color  lipgloss.Color
		desc   string
	}{
		{"●", metricColor("#2a9d8f"), "Value meets the performance standard"},
		{"●", metricColor("#e63946"), "Value misses the performance standard"},
		{"┄┄", colorDim, "Dashed line: the standard itself (ALP / Target)"},
	}
	for _, l := range legend {
		sample := lipgloss.NewStyle().Foreground(l.color).Render(padRight(l.sample, 4))
		lines = append(lines, "    "+sample+descStyle.Render(l.desc))
	}
	lines = append(lines, "")
	lines = append(lines, "    "+descStyle.Render("Gaps in a line are years with no reported value."))
	lines = append(lines, "")
	lines = append(lines, "  "+dimHintStyle.Render("Press any key to dismiss"))

	content := strings.Join(lines, "\n")

	contentW := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > contentW {
			contentW = w
		}
	}
	boxW := contentW + 4
	if boxW > screenW-4 {
		boxW = screenW - 4
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorBase).
		Padding(1, 2).
		Width(boxW)

	return centerOverlay(boxStyle.Render(content), screenW, screenH)
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
