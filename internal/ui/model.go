package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/gametools-console/internal/backend"
	"github.com/atomicstack/gametools-console/internal/menu"
	"github.com/atomicstack/gametools-console/internal/theme"
	"github.com/atomicstack/gametools-console/internal/ui/command"
	uistate "github.com/atomicstack/gametools-console/internal/ui/state"
	"github.com/atomicstack/gametools-console/internal/workspace"
)

type level = uistate.Level

type Mode int

const (
	ModeDashboard Mode = iota
	ModePalette
	ModePrompt
)

const (
	paletteHeaderSeparator = " > "
	defaultWidth           = 80
	defaultHeight          = 24
	infoLifetime           = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Model implements the Bubble Tea model for the dashboard.
type Model struct {
	ws   *workspace.Workspace
	conn *backend.Conn

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	focus   int
	mode    Mode
	editing bool
	stack   []*level
	form    *menu.Form

	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	filterCursor cursor.Model

	handlers map[reflect.Type]msgHandler

	registry *menu.Registry
	bus      *command.Bus
}

// NewModel initialises the UI around ws. conn may be nil, in which case no
// transport events are awaited. Non-zero width or height pin the canvas
// size instead of following the terminal.
func NewModel(ws *workspace.Workspace, conn *backend.Conn, width, height int) *Model {
	m := &Model{
		ws:       ws,
		conn:     conn,
		width:    defaultWidth,
		height:   defaultHeight,
		registry: menu.BuildRegistry(),
		bus:      command.New(),
		mode:     ModeDashboard,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.Style = c.TextStyle.Reverse(true)
	c.SetMode(cursor.CursorStatic)
	c.Focus()
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.conn == nil {
		return nil
	}
	return waitForBackendEvent(m.conn)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(menu.Prompt{}):       m.handlePromptMsg,
		reflect.TypeOf(menu.LayoutToggle{}): m.handleLayoutToggleMsg,
		reflect.TypeOf(menu.FocusWidget{}):  m.handleFocusWidgetMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate keeps focus on an existing widget and persists whatever the
// message changed.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.ws != nil {
		m.clampFocus()
		m.ws.SyncSettings()
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Workspace exposes the stores the model renders.
func (m *Model) Workspace() *workspace.Workspace {
	return m.ws
}

// Focus returns the index of the focused widget.
func (m *Model) Focus() int {
	return m.focus
}

// Mode returns the current interaction mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Editing reports whether layout editing is on.
func (m *Model) Editing() bool {
	return m.editing
}
