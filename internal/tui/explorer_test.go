package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestExplorer(t *testing.T) Explorer {
	t.Helper()
	m := NewExplorer(ExplorerConfig{
		Title:     "demo.toy",
		Info:      "2 Deklarationen",
		Fragments: sampleFragments(),
		Styles:    PlainStyles(),
	})
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
}

func send(t *testing.T, m Explorer, msgs ...tea.Msg) Explorer {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Explorer); !ok {
			t.Fatalf("Update() returned %T", next)
		}
	}
	return m
}

func trails(m Explorer) []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.trail
	}
	return out
}

func TestExplorerInitialState(t *testing.T) {
	m := NewExplorer(ExplorerConfig{Fragments: sampleFragments(), Styles: PlainStyles()})
	if got := m.View(); got != "Lade AST..." {
		t.Errorf("View() before size = %q", got)
	}

	m = newTestExplorer(t)
	if len(m.rows) != 10 {
		t.Fatalf("rows = %v, want 10 expanded rows", trails(m))
	}

	view := m.View()
	for _, want := range []string{"demo.toy", "2 Deklarationen", "> ▾ ast (2)", `value: "1"`, "ast  [2 Kinder]  1/10", "beenden"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestExplorerNavigation(t *testing.T) {
	m := newTestExplorer(t)

	m = send(t, m, runeKey("c"))
	if len(m.rows) != 1 || m.cursor != 0 {
		t.Fatalf("after collapse all: rows = %v, cursor = %d", trails(m), m.cursor)
	}

	m = send(t, m, keyEnter)
	if got := strings.Join(trails(m), ","); got != "ast,ast.item,ast.item" {
		t.Fatalf("after enter: rows = %s", got)
	}

	m = send(t, m, keyDown, keyRight)
	if got := strings.Join(trails(m), ","); got != "ast,ast.item,ast.item.const,ast.item" {
		t.Fatalf("after right: rows = %s", got)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m = send(t, m, keyDown, keyLeft)
	if m.cursor != 1 {
		t.Errorf("left on a closed group should jump to the parent, cursor = %d", m.cursor)
	}

	m = send(t, m, keyLeft)
	if len(m.rows) != 3 || m.cursor != 1 {
		t.Errorf("left on an open group should close it: rows = %v, cursor = %d", trails(m), m.cursor)
	}

	m = send(t, m, runeKey("e"), runeKey("G"))
	if len(m.rows) != 10 || m.cursor != 9 {
		t.Fatalf("after expand all + end: rows = %d, cursor = %d", len(m.rows), m.cursor)
	}
	if !strings.Contains(m.View(), "ast.item.struct.name  [1 Zeichen]  10/10") {
		t.Errorf("status bar wrong:\n%s", m.View())
	}

	m = send(t, m, keyDown, runeKey("g"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestExplorerScrollsToCursor(t *testing.T) {
	m := NewExplorer(ExplorerConfig{Fragments: sampleFragments(), Styles: PlainStyles()})
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 7})

	if m.viewport.Height != 3 {
		t.Fatalf("viewport height = %d, want 3", m.viewport.Height)
	}

	m = send(t, m, runeKey("G"))
	if m.viewport.YOffset != 7 {
		t.Errorf("YOffset = %d, want 7", m.viewport.YOffset)
	}

	m = send(t, m, runeKey("g"))
	if m.viewport.YOffset != 0 {
		t.Errorf("YOffset = %d, want 0", m.viewport.YOffset)
	}
}

func TestExplorerQuit(t *testing.T) {
	m := newTestExplorer(t)
	for _, key := range []tea.KeyMsg{runeKey("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("%s: Update() returned no command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", key)
		}
	}
}

func TestExplorerEmpty(t *testing.T) {
	m := NewExplorer(ExplorerConfig{Styles: PlainStyles()})
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10}, keyDown, keyEnter, keyLeft)

	view := m.View()
	if !strings.Contains(view, "(leerer AST)") || !strings.Contains(view, "keine Knoten") {
		t.Errorf("View() =\n%s", view)
	}
}
