// Package tui provides the interactive Bubble Tea report viewer for chatrecap.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/chatrecap/internal/cli"
	"github.com/theirongolddev/chatrecap/internal/model"
	"github.com/theirongolddev/chatrecap/internal/pipeline"
	"github.com/theirongolddev/chatrecap/internal/tui/components"
	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the export has been loaded and extracted.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	Err      error
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	messages      []model.Message
	conversations int
	dropped       int
	fromCache     bool
	loaded        bool
	loadErr       error
	loadTime      time.Duration

	// Report for the selected scope
	scopes   []model.Scope
	scopeIdx int
	report   model.Report
	loc      *time.Location

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	spinner  spinner.Model
	viewport viewport.Model

	// Source
	path   string
	year   int
	dbPath string // empty disables the parse cache
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140

	headerHeight     = 2 // tab bar + scope line
	statusHeight     = 1
	minContentHeight = 3
)

// NewApp creates a viewer for the export at path. A non-zero year selects
// that year's scope once data is loaded.
func NewApp(path string, year int, dbPath string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		path:     path,
		year:     year,
		dbPath:   dbPath,
		loc:      time.Local,
		spinner:  sp,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.path, a.dbPath),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.loadErr = nil
		a.messages = msg.Result.Messages
		a.conversations = msg.Result.TotalConversations
		a.dropped = msg.Result.Dropped
		a.fromCache = msg.Result.FromCache
		a.buildScopes()
		a.recompute()
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.loadErr != nil || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.setTab(tab)
				}
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" || key == "q" {
		return a, tea.Quit
	}
	if !a.loaded || a.loadErr != nil {
		if a.loadErr != nil && key == "r" {
			return a.reload()
		}
		return a, nil
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "tab":
		a.setTab((a.activeTab + 1) % len(components.Tabs))
		return a, nil
	case "shift+tab":
		a.setTab((a.activeTab + len(components.Tabs) - 1) % len(components.Tabs))
		return a, nil
	case "left", "h":
		if a.scopeIdx > 0 {
			a.scopeIdx--
			a.recompute()
		}
		return a, nil
	case "right", "l":
		if a.scopeIdx < len(a.scopes)-1 {
			a.scopeIdx++
			a.recompute()
		}
		return a, nil
	case "r":
		return a.reload()
	case "1", "2", "3":
		a.setTab(int(key[0] - '1'))
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.setTab(idx)
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a App) reload() (tea.Model, tea.Cmd) {
	a.loaded = false
	a.loadErr = nil
	return a, tea.Batch(loadDataCmd(a.path, a.dbPath), a.spinner.Tick)
}

// buildScopes lists all-time followed by every year with messages, plus the
// requested year when it has none.
func (a *App) buildScopes() {
	years := pipeline.Years(a.messages, a.loc)
	if a.year != 0 && !slices.Contains(years, a.year) {
		years = append(years, a.year)
		slices.Sort(years)
	}

	a.scopes = make([]model.Scope, 0, len(years)+1)
	a.scopes = append(a.scopes, model.Scope{})
	a.scopeIdx = 0
	for _, y := range years {
		if y == a.year {
			a.scopeIdx = len(a.scopes)
		}
		a.scopes = append(a.scopes, model.Scope{Year: y})
	}
}

func (a *App) recompute() {
	scope := model.Scope{}
	if a.scopeIdx < len(a.scopes) {
		scope = a.scopes[a.scopeIdx]
	}
	a.report = pipeline.Aggregate(a.messages, a.conversations, scope, a.loc)
	a.refreshContent()
}

func (a *App) setTab(idx int) {
	if idx < 0 || idx >= len(components.Tabs) {
		return
	}
	a.activeTab = idx
	a.refreshContent()
}

func (a *App) resize() {
	a.viewport.Width = a.contentWidth()
	h := a.height - headerHeight - statusHeight
	if h < minContentHeight {
		h = minContentHeight
	}
	a.viewport.Height = h
	a.refreshContent()
}

func (a *App) refreshContent() {
	if !a.loaded || a.loadErr != nil {
		return
	}
	a.viewport.SetContent(a.renderTab(a.contentWidth()))
	a.viewport.GotoTop()
}

func (a App) renderTab(cw int) string {
	switch a.activeTab {
	case 1:
		return a.renderMonthlyTab(cw)
	case 2:
		return a.renderModelsTab(cw)
	default:
		return a.renderOverviewTab(cw)
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	return fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  chatrecap needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("🤖 chatrecap"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Reading " + a.path))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Warn).
		Padding(1, 3)

	errStyle := lipgloss.NewStyle().Foreground(t.Warn).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := errStyle.Render("❌ analysis failed") + "\n\n" +
		a.loadErr.Error() + "\n\n" +
		hintStyle.Render("[r] retry  [q] quit")

	width := a.width - 8
	if width > 80 {
		width = 80
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Width(width).Render(body))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o m d", "Jump to tab"},
		{"1 2 3", "Jump to tab"},
		{"tab", "Next tab"},
		{"← →", "Previous / next scope"},
		{"j k", "Scroll"},
		{"r", "Reload export"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	scopeLine := pillStyle.Render(" scope ")
	for i, s := range a.scopes {
		label := s.Label()
		if i == a.scopeIdx {
			scopeLine += accentStyle.Render("[" + label + "]")
		} else {
			scopeLine += pillStyle.Render(" " + label + " ")
		}
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" + scopeLine

	source := "parsed"
	if a.fromCache {
		source = "cached"
	}
	info := fmt.Sprintf("%s · %s %.1fs", a.path, source, a.loadTime.Seconds())
	statusBar := components.RenderStatusBar(w, info)

	content := lipgloss.Place(w, a.viewport.Height, lipgloss.Center, lipgloss.Top, a.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func loadDataCmd(path, dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		var (
			result *pipeline.LoadResult
			err    error
		)
		if dbPath != "" {
			result, err = pipeline.LoadCached(path, dbPath)
		} else {
			result, err = pipeline.Load(path)
		}
		return DataLoadedMsg{Result: result, Err: err, LoadTime: time.Since(start)}
	}
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

func formatCount(n int) string {
	return cli.FormatNumber(int64(n))
}
