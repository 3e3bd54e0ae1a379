package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ─── Color Palette (Catppuccin Mocha defaults, theme-overridable) ───────────

var (
	// Base tones
	colorBase     = lipgloss.Color("#1E1E2E") // background
	colorMantle   = lipgloss.Color("#181825") // deeper bg
	colorSurface0 = lipgloss.Color("#313244") // card bg
	colorSurface1 = lipgloss.Color("#45475A") // lighter surface
	colorText     = lipgloss.Color("#CDD6F4") // primary text
	colorSubtext  = lipgloss.Color("#A6ADC8") // secondary text
	colorDim      = lipgloss.Color("#585B70") // muted, borders

	// Accents
	colorAccent   = lipgloss.Color("#CBA6F7") // mauve – primary accent
	colorBlue     = lipgloss.Color("#89B4FA") // section headers
	colorSapphire = lipgloss.Color("#74C7EC") // key hints
	colorGreen    = lipgloss.Color("#A6E3A1") // favorable
	colorYellow   = lipgloss.Color("#F9E2AF") // warning
	colorRed      = lipgloss.Color("#F38BA8") // unfavorable
	colorLavender = lipgloss.Color("#B4BEFE") // titles
	colorTeal     = lipgloss.Color("#94E2D5") // secondary highlight
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	headerStyle        lipgloss.Style
	subtitleStyle      lipgloss.Style
	sectionHeaderStyle lipgloss.Style
	helpStyle          lipgloss.Style
	helpKeyStyle       lipgloss.Style
	labelStyle         lipgloss.Style
	valueStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	statusStyle        lipgloss.Style
	errorStyle         lipgloss.Style

	chartTitleStyle lipgloss.Style
	chartAxisStyle  lipgloss.Style

	tableHeaderStyle lipgloss.Style
	tableCellStyle   lipgloss.Style
	tableNAStyle     lipgloss.Style

	pickerBoxStyle      lipgloss.Style
	pickerSelectedStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorSapphire).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle = lipgloss.NewStyle().Foreground(colorTeal)
	errorStyle = lipgloss.NewStyle().Foreground(colorRed)

	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	chartAxisStyle = lipgloss.NewStyle().Foreground(colorSurface1)

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	tableCellStyle = lipgloss.NewStyle().Foreground(colorText)
	tableNAStyle = lipgloss.NewStyle().Foreground(colorDim)

	pickerBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorBase).
		Padding(1, 2)
	pickerSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorMantle).
		Background(colorAccent)
}

// applyTheme overwrites the palette with the theme's tokens and rebuilds
// the derived styles.
func applyTheme(t Theme) {
	colorBase = t.Base
	colorMantle = t.Mantle
	colorSurface0 = t.Surface0
	colorSurface1 = t.Surface1
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	colorBlue = t.Blue
	colorSapphire = t.Sapphire
	colorGreen = t.Green
	colorYellow = t.Yellow
	colorRed = t.Red
	colorLavender = t.Lavender
	colorTeal = t.Teal

	rebuildStyles()
}

// metricColor converts a catalog hex color into a terminal color.
func metricColor(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}
