package tui

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/statboard/uiscorecard/internal/config"
	"github.com/statboard/uiscorecard/internal/scorecard"
)

// DatasetMsg carries a freshly loaded dataset into the running program
// (hot reload from the file watcher).
type DatasetMsg scorecard.Dataset

// ExportResultMsg reports the outcome of a PDF export.
type ExportResultMsg struct {
	Path string
	Err  error
}

type themePersistedMsg struct{ err error }

// ExportFunc renders the current selection to a report file and returns
// the written path.
type ExportFunc func(sel scorecard.Selection, ds scorecard.Dataset) (string, error)

const pickerVisibleRows = 12

type Model struct {
	ctrl *scorecard.Controller
	plan scorecard.RenderPlan

	width  int
	height int

	showHelp bool

	picking      bool
	pickerFilter string
	pickerCursor int
	pickerOffset int

	status    string
	exporting bool

	export ExportFunc
}

// NewModel builds the dashboard model around a loaded dataset, seeding
// the selection from configuration.
func NewModel(ds scorecard.Dataset, cfg config.Config) Model {
	ctrl := scorecard.NewController(ds)

	update := scorecard.SelectionUpdate{}
	if cfg.DefaultScope != "" && cfg.DefaultScope != scorecard.ScopeNational {
		scope := cfg.DefaultScope
		update.Scope = &scope
	}
	cat := scorecard.ParseCategory(cfg.DefaultCategory)
	update.Category = &cat
	if cfg.UI.DefaultView == "table" {
		view := scorecard.ViewTable
		update.View = &view
	}
	plan := ctrl.Apply(update)

	return Model{ctrl: ctrl, plan: plan}
}

// SetExporter wires the PDF export pipeline; set from main.
func (m *Model) SetExporter(fn ExportFunc) {
	m.export = fn
}

func (m Model) persistThemeCmd(themeName string) tea.Cmd {
	return func() tea.Msg {
		err := config.SaveTheme(themeName)
		if err != nil {
			log.Printf("theme persist: %v", err)
		}
		return themePersistedMsg{err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	sel := m.ctrl.Selection()
	ds := m.ctrl.Dataset()
	fn := m.export
	return func() tea.Msg {
		path, err := fn(sel, ds)
		return ExportResultMsg{Path: path, Err: err}
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case DatasetMsg:
		m.plan = m.ctrl.ReplaceDataset(scorecard.Dataset(msg))
		m.status = "data reloaded"
		return m, nil

	case ExportResultMsg:
		m.exporting = false
		if msg.Err != nil {
			m.status = "export failed: " + msg.Err.Error()
		} else {
			m.status = "exported " + msg.Path
		}
		return m, nil

	case themePersistedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.picking {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = true

	case "left", "h":
		m.stepYear(-1)

	case "right", "l":
		m.stepYear(+1)

	case "c", "tab":
		next := scorecard.NextCategory(m.ctrl.Selection().Category)
		m.plan = m.ctrl.Apply(scorecard.SelectionUpdate{Category: &next})

	case "n":
		scope := scorecard.ScopeNational
		m.plan = m.ctrl.Apply(scorecard.SelectionUpdate{Scope: &scope})

	case "s":
		m.picking = true
		m.pickerFilter = ""
		m.pickerCursor = 0
		m.pickerOffset = 0

	case "v":
		view := scorecard.ViewTable
		if m.ctrl.Selection().View == scorecard.ViewTable {
			view = scorecard.ViewCharts
		}
		m.plan = m.ctrl.Apply(scorecard.SelectionUpdate{View: &view})

	case "t":
		name := CycleTheme()
		m.status = "theme: " + ThemeName()
		return m, m.persistThemeCmd(name)

	case "e":
		if m.export == nil || m.exporting {
			break
		}
		m.exporting = true
		m.status = "exporting…"
		return m, m.exportCmd()
	}

	return m, nil
}

func (m *Model) stepYear(delta int) {
	year := m.ctrl.Selection().Year + delta
	m.plan = m.ctrl.Apply(scorecard.SelectionUpdate{Year: &year})
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.picking = false
		return m, nil

	case "enter":
		scopes := m.filteredScopes()
		if m.pickerCursor < len(scopes) {
			scope := scopes[m.pickerCursor]
			m.plan = m.ctrl.Apply(scorecard.SelectionUpdate{Scope: &scope})
		}
		m.picking = false
		return m, nil

	case "up", "ctrl+p":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}

	case "down", "ctrl+n":
		if m.pickerCursor < len(m.filteredScopes())-1 {
			m.pickerCursor++
		}

	case "backspace":
		if len(m.pickerFilter) > 0 {
			m.pickerFilter = m.pickerFilter[:len(m.pickerFilter)-1]
			m.pickerCursor = 0
			m.pickerOffset = 0
		}

	default:
		if msg.Type == tea.KeyRunes {
			m.pickerFilter += string(msg.Runes)
			m.pickerCursor = 0
			m.pickerOffset = 0
		}
	}

	// Keep the cursor inside the visible window.
	if m.pickerCursor < m.pickerOffset {
		m.pickerOffset = m.pickerCursor
	}
	if m.pickerCursor >= m.pickerOffset+pickerVisibleRows {
		m.pickerOffset = m.pickerCursor - pickerVisibleRows + 1
	}
	return m, nil
}

func (m Model) filteredScopes() []string {
	scopes := m.ctrl.Dataset().Scopes()
	needle := strings.ToUpper(strings.TrimSpace(m.pickerFilter))
	if needle == "" {
		return scopes
	}
	return lo.Filter(scopes, func(s string, _ int) bool {
		return strings.Contains(strings.ToUpper(s), needle) ||
			strings.Contains(strings.ToUpper(scorecard.ScopeLabel(s)), needle)
	})
}

// Selection exposes the live selection, mainly for tests and the export
// wiring.
func (m Model) Selection() scorecard.Selection { return m.ctrl.Selection() }

// Plan exposes the last rendered plan.
func (m Model) Plan() scorecard.RenderPlan { return m.plan }

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}
	if m.showHelp {
		return m.renderHelpOverlay(m.width, m.height)
	}
	if m.picking {
		return m.renderStatePicker(m.width, m.height)
	}

	var sb strings.Builder

	sb.WriteString("  " + headerStyle.Render(m.plan.Title) +
		"  " + subtitleStyle.Render(m.plan.Subtitle) + "\n\n")

	if m.plan.View == scorecard.ViewTable {
		sb.WriteString(RenderComparisonTable(m.plan.Table, m.width))
	} else {
		sb.WriteString(m.renderCharts())
	}

	body := sb.String()
	bodyLines := strings.Count(body, "\n") + 1
	for bodyLines < m.height-1 {
		body += "\n"
		bodyLines++
	}

	return body + m.renderFooter()
}

func (m Model) renderCharts() string {
	chartH := 7
	if m.height < 24 {
		chartH = 5
	}

	var parts []string
	for _, spec := range m.plan.Charts {
		if spec.Empty() {
			continue
		}
		var rendered string
		if spec.Kind == scorecard.ChartPie {
			rendered = RenderBarBreakdown(spec, m.width-4)
		} else {
			rendered = RenderTrendChart(spec, m.width-4, chartH)
		}
		if rendered == "" {
			continue
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderFooter() string {
	hints := []struct{ key, desc string }{
		{"←/→", "year"},
		{"c", "category"},
		{"s", "state"},
		{"n", "national"},
		{"v", "view"},
		{"e", "export"},
		{"t", "theme"},
		{"?", "help"},
		{"q", "quit"},
	}

	var sb strings.Builder
	sb.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(helpKeyStyle.Render(h.key) + helpStyle.Render(" "+h.desc))
	}
	if m.status != "" {
		sb.WriteString("   ")
		sb.WriteString(statusStyle.Render(m.status))
	}
	return fitAnsiWidth(sb.String(), m.width)
}

func (m Model) renderStatePicker(screenW, screenH int) string {
	scopes := m.filteredScopes()

	var lines []string
	lines = append(lines, headerStyle.Render("Select State"))
	filter := m.pickerFilter
	if filter == "" {
		filter = dimStyle.Render("type to filter…")
	} else {
		filter = valueStyle.Render(filter)
	}
	lines = append(lines, labelStyle.Render("Filter: ")+filter)
	lines = append(lines, "")

	end := m.pickerOffset + pickerVisibleRows
	if end > len(scopes) {
		end = len(scopes)
	}
	for i := m.pickerOffset; i < end; i++ {
		label := scopes[i]
		if label == scorecard.ScopeNational {
			label = scorecard.ScopeLabel(label) + " (" + scorecard.ScopeNational + ")"
		}
		if i == m.pickerCursor {
			lines = append(lines, pickerSelectedStyle.Render(" "+label+" "))
		} else {
			lines = append(lines, valueStyle.Render(" "+label+" "))
		}
	}
	if len(scopes) == 0 {
		lines = append(lines, dimStyle.Render("  no match"))
	}

	if bar := renderScrollBarLine(28, m.pickerOffset, pickerVisibleRows, len(scopes)); bar != "" {
		lines = append(lines, bar)
	}
	lines = append(lines, "")
	lines = append(lines, helpStyle.Render("enter select · esc cancel"))

	return centerOverlay(pickerBoxStyle.Render(strings.Join(lines, "\n")), screenW, screenH)
}

// centerOverlay positions a rendered box in the middle of the screen.
func centerOverlay(box string, screenW, screenH int) string {
	boxW := lipgloss.Width(box)
	boxH := strings.Count(box, "\n") + 1

	padTop := (screenH - boxH) / 2
	if padTop < 0 {
		padTop = 0
	}
	padLeft := (screenW - boxW) / 2
	if padLeft < 0 {
		padLeft = 0
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", padTop))
	for i, line := range strings.Split(box, "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat(" ", padLeft))
		sb.WriteString(line)
	}

	rendered := padTop + boxH
	for rendered < screenH {
		sb.WriteString("\n")
		rendered++
	}
	return sb.String()
}
