// Package app wires the editor, results pane and storage into the
// main Bubbletea application model.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siftdb/sift/internal/config"
	"github.com/siftdb/sift/internal/logger"
	"github.com/siftdb/sift/internal/query"
	"github.com/siftdb/sift/internal/storage/sqlite"
	"github.com/siftdb/sift/internal/ui"
	"github.com/siftdb/sift/internal/ui/styles"
	"github.com/siftdb/sift/internal/ui/views/results"
)

// editorHeight is the fixed height of the SQL editor pane.
const editorHeight = 8

type focusArea int

const (
	focusEditor focusArea = iota
	focusResults
)

// Model represents the main Bubbletea application model
type Model struct {
	// Configuration
	config *config.Config

	// Database connection
	dbPool        *pgxpool.Pool
	connected     bool
	connectionErr error
	serverVersion string

	// Local storage
	store        *sqlite.DB
	stateStore   *sqlite.StateStore
	historyStore *sqlite.HistoryStore

	// Query execution
	service   *query.Service
	bufferURI string
	lastBatch int

	// UI state
	width  int
	height int
	focus  focusArea
	ready  bool

	keys      KeyMap
	editor    textarea.Model
	results   *results.QueryResultsView
	clipboard *ui.ClipboardWriter
}

// New creates a new application model
func New(cfg *config.Config) (*Model, error) {
	storePath := cfg.Storage.Path
	if storePath == "" {
		storePath = sqlite.DefaultPath()
	}
	store, err := sqlite.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	editor := textarea.New()
	editor.Placeholder = "SELECT ..."
	editor.Prompt = ""
	editor.ShowLineNumbers = true
	editor.Focus()

	return &Model{
		config:       cfg,
		store:        store,
		stateStore:   sqlite.NewStateStore(store),
		historyStore: sqlite.NewHistoryStore(store),
		bufferURI:    "untitled:1",
		keys:         DefaultKeyMap(),
		editor:       editor,
		clipboard:    ui.NewClipboardWriter(),
	}, nil
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		connectToDatabase(m.config),
		textarea.Blink,
		tickStatus(),
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.results != nil {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.scrollActive(-1)
			case tea.MouseButtonWheelDown:
				m.scrollActive(1)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width)
		m.editor.SetHeight(editorHeight)
		if m.results != nil {
			m.results.Layout(msg.Width, m.resultsHeight())
		}
		m.ready = true
		return m, nil

	case DatabaseConnectedMsg:
		m.connected = true
		m.dbPool = msg.Pool
		m.serverVersion = msg.Version
		m.connectionErr = nil
		m.service = query.NewService(msg.Pool)
		m.results = results.NewQueryResultsView(m.service)
		if m.width > 0 {
			m.results.Layout(m.width, m.resultsHeight())
		}
		return m, loadState(m.stateStore, m.bufferURI)

	case ConnectionFailedMsg:
		m.connected = false
		m.connectionErr = msg.Err
		return m, nil

	case StateLoadedMsg:
		if m.results != nil && msg.URI == m.bufferURI {
			m.results.SetState(msg.State)
			m.results.BindInput(&results.Input{URI: msg.URI})
		}
		return m, nil

	case StatusTickMsg:
		return m, tickStatus()

	case results.QueryStartedMsg:
		if m.results != nil {
			return m, m.results.Update(msg)
		}
		return m, nil

	case results.QueryFinishedMsg:
		if m.results == nil {
			return m, nil
		}
		m.lastBatch = msg.BatchID
		cmd := m.results.Update(msg)
		return m, tea.Batch(cmd, saveState(m.stateStore, m.bufferURI, m.results.State()))

	case results.PlanFetchedMsg:
		if m.results != nil {
			return m, m.results.Update(msg)
		}
		return m, nil

	case ErrorMsg:
		m.connectionErr = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.results != nil {
			return m, tea.Sequence(
				saveState(m.stateStore, m.bufferURI, m.results.State()),
				tea.Quit,
			)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleFocus):
		if m.focus == focusEditor {
			m.focus = focusResults
			m.editor.Blur()
		} else {
			m.focus = focusEditor
			m.editor.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Run):
		return m, m.runQuery()
	}

	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m.handleResultsKey(msg)
}

// handleResultsKey processes keys while the results pane has focus.
func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.results == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, m.keys.ShowChart):
		m.results.ChartData(0, m.lastBatch)
	case key.Matches(msg, m.keys.HideChart):
		m.results.HideChart()
	case key.Matches(msg, m.keys.HidePlan):
		m.results.HidePlan()
	case key.Matches(msg, m.keys.GrowGrid):
		m.results.ResultsView().DragSash(1)
	case key.Matches(msg, m.keys.ShrinkGrid):
		m.results.ResultsView().DragSash(-1)
	case key.Matches(msg, m.keys.Up):
		m.scrollActive(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollActive(1)
	case key.Matches(msg, m.keys.NextColumn):
		m.results.ChartView().NextColumn()
	case key.Matches(msg, m.keys.Yank):
		if row := m.results.ResultsView().Grid().SelectedRow(); row != nil {
			if err := m.clipboard.Write(strings.Join(row, "\t")); err != nil {
				logger.Warn("copying row to clipboard", "error", err)
			}
		}
		return m, nil
	default:
		return m, nil
	}
	return m, saveState(m.stateStore, m.bufferURI, m.results.State())
}

// runQuery executes the editor contents on the bound runner.
func (m Model) runQuery() tea.Cmd {
	if m.results == nil || m.results.Runner() == nil {
		return nil
	}
	sql := m.editor.Value()
	if sql == "" {
		return nil
	}
	r := m.results.Runner()
	return tea.Sequence(
		queryStarted(r, sql),
		executeQuery(r, sql, m.config.Query.Timeout, m.historyStore),
	)
}

// cycleTab switches the active results tab forward or backward.
func (m *Model) cycleTab(delta int) {
	tabs := m.results.Tabs().Tabs()
	if len(tabs) < 2 {
		return
	}
	active := m.results.Tabs().ActiveID()
	for i, t := range tabs {
		if t.ID() == active {
			next := (i + delta + len(tabs)) % len(tabs)
			m.results.Tabs().Show(tabs[next].ID())
			return
		}
	}
}

// scrollActive moves within the active results tab.
func (m *Model) scrollActive(delta int) {
	switch m.results.Tabs().ActiveID() {
	case results.TabResults:
		m.results.ResultsView().Grid().MoveSelection(delta)
	case results.TabPlan:
		if delta > 0 {
			m.results.PlanView().ScrollDown(delta)
		} else {
			m.results.PlanView().ScrollUp(-delta)
		}
	}
}

// resultsHeight returns the rows left for the results pane.
func (m Model) resultsHeight() int {
	// editor + status line
	return max(0, m.height-editorHeight-1)
}

// View renders the application UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch {
	case !m.connected && m.connectionErr != nil:
		body = styles.ErrorStyle.Render(fmt.Sprintf("Connection Error: %s", m.connectionErr.Error()))
	case !m.connected:
		body = styles.InfoStyle.Render("Connecting to database...")
	case m.results != nil:
		body = m.results.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.editor.View(),
		body,
		m.statusLine(),
	)
}

// statusLine renders the bottom status line.
func (m Model) statusLine() string {
	conn := fmt.Sprintf("%s@%s:%d/%s",
		m.config.Connection.User,
		m.config.Connection.Host,
		m.config.Connection.Port,
		m.config.Connection.Database)
	if !m.connected {
		return styles.HintStyle.Render(conn + "  disconnected")
	}
	return styles.HintStyle.Render(conn + "  [tab]focus [ctrl+r]run [c]chart [+/-]resize")
}

// Cleanup performs cleanup operations before the application exits
func (m *Model) Cleanup() {
	if m.results != nil {
		m.results.Dispose()
	}
	if m.dbPool != nil {
		m.dbPool.Close()
	}
	if m.store != nil {
		m.store.Close()
	}
}
