package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
)

const (
	headerHeight = 2 // Title + info line
	footerHeight = 2 // Status bar + help

	// initialDepth is the number of levels expanded on start
	initialDepth = 3
)

// ExplorerConfig holds explorer configuration
type ExplorerConfig struct {
	Title     string
	Info      string
	Fragments []mdwast.Fragment
	Styles    Styles
}

// row is one visible line of the explorer
type row struct {
	path     string
	trail    string
	depth    int
	fragment mdwast.Fragment
}

// Explorer is the Bubbletea model for browsing an AST
type Explorer struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	viewport viewport.Model

	// Tree state
	fragments []mdwast.Fragment
	expanded  map[string]bool
	rows      []row
	cursor    int

	title  string
	info   string
	styles Styles
}

// NewExplorer creates a new explorer model
func NewExplorer(cfg ExplorerConfig) Explorer {
	m := Explorer{
		fragments: cfg.Fragments,
		expanded:  make(map[string]bool),
		title:     cfg.Title,
		info:      cfg.Info,
		styles:    cfg.Styles,
	}
	m.expandTo(initialDepth)
	m.rebuild()
	return m
}

// RunExplorer starts the explorer on the alternate screen
func RunExplorer(cfg ExplorerConfig) error {
	_, err := tea.NewProgram(NewExplorer(cfg), tea.WithAltScreen()).Run()
	return err
}

// Init initializes the model
func (m Explorer) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.refresh()
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Explorer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.pageSize())
	case "pgdown":
		m.moveCursor(m.pageSize())
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.rows) - 1

	case "enter", " ", "tab":
		if r, ok := m.selected(); ok && r.fragment.IsGroup() {
			m.setExpanded(r.path, !m.expanded[r.path])
		}
	case "right", "l":
		if r, ok := m.selected(); ok && r.fragment.IsGroup() {
			m.setExpanded(r.path, true)
		}
	case "left", "h":
		m.collapseOrParent()

	case "e":
		m.expandTo(-1)
		m.rebuild()
	case "c":
		m.expanded = make(map[string]bool)
		m.rebuild()
		m.cursor = 0
	}

	m.refresh()
	return m, nil
}

func (m *Explorer) pageSize() int {
	if m.viewport.Height > 1 {
		return m.viewport.Height - 1
	}
	return 1
}

func (m *Explorer) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Explorer) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// setExpanded toggles one node and keeps the cursor on it
func (m *Explorer) setExpanded(path string, open bool) {
	if open {
		m.expanded[path] = true
	} else {
		delete(m.expanded, path)
	}
	m.rebuild()
	m.cursorTo(path)
}

// collapseOrParent closes an open group, otherwise jumps to the parent
func (m *Explorer) collapseOrParent() {
	r, ok := m.selected()
	if !ok {
		return
	}
	if r.fragment.IsGroup() && m.expanded[r.path] {
		m.setExpanded(r.path, false)
		return
	}
	if i := strings.LastIndexByte(r.path, '/'); i >= 0 {
		m.cursorTo(r.path[:i])
	}
}

func (m *Explorer) cursorTo(path string) {
	for i, r := range m.rows {
		if r.path == path {
			m.cursor = i
			return
		}
	}
}

// expandTo opens every group above depth; a negative depth opens all
func (m *Explorer) expandTo(depth int) {
	var walk func(fragments []mdwast.Fragment, prefix string, level int)
	walk = func(fragments []mdwast.Fragment, prefix string, level int) {
		if depth >= 0 && level >= depth {
			return
		}
		for i, f := range fragments {
			children, ok := f.Children()
			if !ok {
				continue
			}
			path := prefix + strconv.Itoa(i)
			m.expanded[path] = true
			walk(children, path+"/", level+1)
		}
	}
	walk(m.fragments, "", 0)
}

// rebuild flattens the visible part of the tree into rows
func (m *Explorer) rebuild() {
	m.rows = nil
	var walk func(fragments []mdwast.Fragment, prefix, trail string, depth int)
	walk = func(fragments []mdwast.Fragment, prefix, trail string, depth int) {
		for i, f := range fragments {
			path := prefix + strconv.Itoa(i)
			name := f.Name
			if trail != "" {
				name = trail + "." + f.Name
			}
			m.rows = append(m.rows, row{path: path, trail: name, depth: depth, fragment: f})
			if children, ok := f.Children(); ok && m.expanded[path] {
				walk(children, path+"/", name, depth+1)
			}
		}
	}
	walk(m.fragments, "", "", 0)
	m.moveCursor(0)
}

// refresh renders the rows into the viewport and scrolls to the cursor
func (m *Explorer) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderRows())

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Explorer) renderRows() string {
	if len(m.rows) == 0 {
		return m.styles.Subtitle.Render("(leerer AST)")
	}

	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		marker := "  "
		if r.fragment.IsGroup() {
			marker = "▸ "
			if m.expanded[r.path] {
				marker = "▾ "
			}
		}
		line := strings.Repeat("  ", r.depth) + marker + nodeLabel(r.fragment, m.styles)
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// View renders the UI
func (m Explorer) View() string {
	if !m.ready {
		return "Lade AST..."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(m.info))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// renderStatusBar shows the path of the selected node
func (m Explorer) renderStatusBar() string {
	r, ok := m.selected()
	if !ok {
		return m.styles.Status.Render("keine Knoten")
	}
	detail := fmt.Sprintf("%d Kinder", r.fragment.Len())
	if v, isLeaf := r.fragment.Leaf(); isLeaf {
		detail = fmt.Sprintf("%d Zeichen", len(v))
	}
	return m.styles.Status.Render(fmt.Sprintf("%s  [%s]  %d/%d", r.trail, detail, m.cursor+1, len(m.rows)))
}

func (m Explorer) renderHelpBar() string {
	hints := []string{
		m.styles.RenderKeyHint("↑/↓", "bewegen"),
		m.styles.RenderKeyHint("enter", "auf/zu"),
		m.styles.RenderKeyHint("←", "Eltern"),
		m.styles.RenderKeyHint("e", "alle öffnen"),
		m.styles.RenderKeyHint("c", "alle schließen"),
		m.styles.RenderKeyHint("q", "beenden"),
	}
	return strings.Join(hints, "  ")
}
