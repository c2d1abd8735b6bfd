package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/menumanager/internal/core"
)

func newTestModel(t *testing.T) (*Model, *core.Service) {
	t.Helper()
	dir := t.TempDir()
	svc := core.NewService(
		core.NewStore(core.SeedItems(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
		nil,
		core.ServiceConfig{
			ImportDir: filepath.Join(dir, "imports"),
			ExportDir: filepath.Join(dir, "exports"),
		},
	)
	return New(svc), svc
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestMenuTree_LinksParents(t *testing.T) {
	m, _ := newTestModel(t)

	root := m.menu
	if root.Parent != nil {
		t.Fatal("root should have no parent")
	}
	for _, e := range root.Entries {
		if e.Submenu == nil {
			continue
		}
		if e.Submenu.Parent != root {
			t.Errorf("%s parent not linked", e.Label)
		}
		last := e.Submenu.Entries[len(e.Submenu.Entries)-1]
		if last.Label != backLabel || last.Submenu != root {
			t.Errorf("%s: Back should lead to root", e.Label)
		}
	}
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "down", "enter")
	if m.menu.Title != "Browse" {
		t.Fatalf("menu = %q, want Browse", m.menu.Title)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after entering submenu", m.cursor)
	}

	press(m, "esc")
	if m.menu.Parent != nil {
		t.Fatalf("esc should return to root, got %q", m.menu.Title)
	}

	// Cursor stops at the ends.
	press(m, "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	for range m.menu.Entries {
		press(m, "j")
	}
	if m.cursor != len(m.menu.Entries)-1 {
		t.Errorf("cursor = %d, want last", m.cursor)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseCategory(t *testing.T) {
	m, _ := newTestModel(t)

	// Browse -> Wings (All Items, Starters, Salads, Cheesesteaks, Pasta, Wings)
	press(m, "down", "enter")
	cmd := press(m, "down", "down", "down", "down", "down", "enter")
	if cmd == nil {
		t.Fatal("expected browse command")
	}
	m.Update(cmd())

	if !strings.Contains(m.output, "Showing 4 of 29 items") {
		t.Errorf("output = %q", m.output)
	}
	if !strings.Contains(m.View(), "Lemon Pepper Wings (6pc)") {
		t.Error("view should list wings")
	}
}

func TestDashboard(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(m.Init()())

	for _, want := range []string{"Total items: 29", "Cheesesteaks", "Recent items:", "Cheese Sauce - $2.00"} {
		if !strings.Contains(m.output, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestRunExport(t *testing.T) {
	m, svc := newTestModel(t)

	msg := m.runExport()
	done, ok := msg.(DoneMsg)
	if !ok {
		t.Fatalf("msg = %#v, want DoneMsg", msg)
	}

	files, err := filepath.Glob(filepath.Join(svc.ExportDir(), "*.csv"))
	if err != nil || len(files) != 1 {
		t.Fatalf("export files = %v, err = %v", files, err)
	}
	if !strings.Contains(string(done), files[0]) {
		t.Errorf("status %q should name %s", done, files[0])
	}
}

func TestRunImport(t *testing.T) {
	m, svc := newTestModel(t)

	// Missing directory.
	if _, ok := m.runImport().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg for missing import dir")
	}

	if err := os.MkdirAll(svc.ImportDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	csvData := "Name,Category,Price,Description,SKU\n" +
		"Cheese Fries,Starters,6.50,Fries with cheese,PHI-FRI-002\n" +
		",Starters,1,No name,PHI-BAD-001\n"
	if err := os.WriteFile(filepath.Join(svc.ImportDir(), "a.csv"), []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	msg := m.runImport()
	view, ok := msg.(ViewMsg)
	if !ok {
		t.Fatalf("msg = %#v, want ViewMsg", msg)
	}
	if !strings.Contains(string(view), "a.csv: 1 of 2 rows added") {
		t.Errorf("output = %q", view)
	}
	if !strings.Contains(string(view), "line 3:") {
		t.Errorf("failed row not reported: %q", view)
	}
	if svc.Len() != 30 {
		t.Errorf("Len = %d, want 30", svc.Len())
	}
}

func TestErrMsgShowsCode(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(WorkingMsg("Importing..."))
	if !m.busy {
		t.Fatal("model should be busy")
	}

	m.Update(ErrMsg{Err: errors.New("empty file")})
	if m.busy || !m.isError {
		t.Error("error should clear busy and set isError")
	}
	if !strings.Contains(m.View(), "FILE003") {
		t.Errorf("view should show error code:\n%s", m.View())
	}
}

func TestBusyIgnoresSelect(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(WorkingMsg("Writing export..."))
	if cmd := press(m, "enter"); cmd != nil {
		t.Error("select should be ignored while busy")
	}
}
