package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-farm/internal/storage"
)

// Ledger layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the page sidebar
	sidebarWidth       = 20  // Width of the page sidebar
	maxLedgerRows      = 100 // Max rows to load per page
)

// LedgerPage selects what the ledger table lists.
type LedgerPage int

const (
	PageSessions LedgerPage = iota
	PageHarvests
	PageItems
)

var ledgerPages = []LedgerPage{PageSessions, PageHarvests, PageItems}

// String returns the page title.
func (p LedgerPage) String() string {
	switch p {
	case PageSessions:
		return "Sessions"
	case PageHarvests:
		return "Harvests"
	case PageItems:
		return "Items"
	default:
		return "Unknown"
	}
}

// LedgerKeyMap defines the key bindings for the ledger.
type LedgerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Refresh  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LedgerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LedgerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultLedgerKeyMap returns default key bindings.
func DefaultLedgerKeyMap() LedgerKeyMap {
	return LedgerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev page"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "l"),
			key.WithHelp("esc/l", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LedgerModel is the Bubble Tea model for the harvest ledger screen.
type LedgerModel struct {
	store       *storage.Store
	page        int // Index into ledgerPages
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        LedgerKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	standalone  bool // Back quits the program
	showSidebar bool // Whether to show the page sidebar
}

// NewLedgerModel creates a new ledger model.
func NewLedgerModel(store *storage.Store, width, height int) LedgerModel {
	h := help.New()
	h.ShowAll = false

	m := LedgerModel{
		store:       store,
		keys:        DefaultLedgerKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// Page returns the page being shown.
func (m LedgerModel) Page() LedgerPage {
	return ledgerPages[m.page]
}

// columnsFor returns the table columns of a page.
func columnsFor(p LedgerPage) []table.Column {
	switch p {
	case PageHarvests:
		return []table.Column{
			{Title: "Item", Width: 10},
			{Title: "Amount", Width: 7},
			{Title: "Day", Width: 5},
			{Title: "Tile", Width: 8},
			{Title: "When", Width: 13},
		}
	case PageItems:
		return []table.Column{
			{Title: "Item", Width: 10},
			{Title: "Total", Width: 7},
			{Title: "Harvests", Width: 9},
			{Title: "Best", Width: 6},
			{Title: "Last", Width: 13},
		}
	default:
		return []table.Column{
			{Title: "Farmer", Width: 12},
			{Title: "Started", Width: 13},
			{Title: "Days", Width: 5},
			{Title: "Harvests", Width: 9},
			{Title: "Items", Width: 6},
		}
	}
}

// createTable creates a new table for the current page.
func (m *LedgerModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(columnsFor(m.Page())),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the rows of the current page from the store.
func (m *LedgerModel) load() {
	m.rows, m.loadErr = ledgerRows(m.store, m.Page())
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// ledgerRows queries the store for one page. A nil store has no rows.
func ledgerRows(store *storage.Store, p LedgerPage) ([]table.Row, error) {
	if store == nil {
		return nil, nil
	}

	const when = "Jan 02 15:04"
	var rows []table.Row
	switch p {
	case PageHarvests:
		harvests, err := store.RecentHarvests(maxLedgerRows)
		if err != nil {
			return nil, err
		}
		for _, h := range harvests {
			rows = append(rows, table.Row{
				h.Item,
				fmt.Sprintf("%d", h.Amount),
				fmt.Sprintf("%d", h.Day),
				fmt.Sprintf("%d,%d", h.X, h.Y),
				h.CreatedAt.Local().Format(when),
			})
		}
	case PageItems:
		stats, err := store.ItemTotals()
		if err != nil {
			return nil, err
		}
		for _, s := range stats {
			rows = append(rows, table.Row{
				s.Item,
				fmt.Sprintf("%d", s.Total),
				fmt.Sprintf("%d", s.Harvests),
				fmt.Sprintf("%d", s.Best),
				s.LastHarvested.Local().Format(when),
			})
		}
	default:
		sessions, err := store.RecentSessions(maxLedgerRows)
		if err != nil {
			return nil, err
		}
		for _, s := range sessions {
			player := s.Player
			if player == "" {
				player = "-"
			}
			rows = append(rows, table.Row{
				player,
				s.StartedAt.Local().Format(when),
				fmt.Sprintf("%d", s.Days),
				fmt.Sprintf("%d", s.Harvests),
				fmt.Sprintf("%d", s.Items),
			})
		}
	}
	return rows, nil
}

// switchPage moves the page cursor by delta, wrapping around.
func (m *LedgerModel) switchPage(delta int) {
	m.page = (m.page + delta + len(ledgerPages)) % len(ledgerPages)
	m.table = m.createTable()
	m.load()
}

// Init initializes the ledger model.
func (m LedgerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the ledger.
func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextPage), key.Matches(msg, m.keys.Right):
			m.switchPage(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevPage), key.Matches(msg, m.keys.Left):
			m.switchPage(-1)
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ledger.
func (m LedgerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("HARVEST LEDGER - %s", m.Page())
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the ledger with a sidebar for page selection.
func (m LedgerModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Ledger\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range ledgerPages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.page {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + p.String()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the ledger with page tabs above the table.
func (m LedgerModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)

	tabs := make([]string, len(ledgerPages))
	for i, p := range ledgerPages {
		if i == m.page {
			tabs[i] = activeTabStyle.Render(p.String())
		} else {
			tabs[i] = tabStyle.Render(" " + p.String() + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m LedgerModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("The ledger is not available.\nStart with a database to record harvests.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read the ledger:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nHarvest a crop to fill the ledger!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the farm.
func (m LedgerModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LedgerModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// RunLedger runs the ledger screen on its own.
func RunLedger(store *storage.Store, width, height int) error {
	m := NewLedgerModel(store, width, height)
	m.standalone = true

	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
