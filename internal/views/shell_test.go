package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KovalVladuslav/addressbook/internal/commands"
	"github.com/KovalVladuslav/addressbook/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
}

func newTestShell(save func() error) (*ShellModel, *commands.Handler) {
	h := commands.NewHandler(models.NewAddressBook(), commands.WithClock(fixedNow))
	return NewShellModel(h, ShellOptions{Save: save, Now: fixedNow}), h
}

func typeLine(m *ShellModel, line string) tea.Cmd {
	m.input.SetValue(line)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func lastOutput(m *ShellModel) string {
	t := m.Transcript()
	return t[len(t)-1]
}

func TestShellStartsWithWelcome(t *testing.T) {
	m, _ := newTestShell(nil)
	if !strings.Contains(m.Transcript()[0], "Welcome to the assistant bot!") {
		t.Error("Expected welcome banner first")
	}
	if !strings.Contains(m.View(), "Enter a command: ") {
		t.Error("Expected prompt in view")
	}
}

func TestShellRunsCommands(t *testing.T) {
	m, h := newTestShell(nil)

	typeLine(m, "add Alice 0123456789")
	if !strings.Contains(lastOutput(m), "Contact added.") {
		t.Errorf("Expected confirmation, got %q", lastOutput(m))
	}
	if _, ok := h.Book().Find("Alice"); !ok {
		t.Error("Expected Alice in the book")
	}
	if m.input.Value() != "" {
		t.Error("Expected input cleared after submit")
	}

	typeLine(m, "phone Nobody")
	if !strings.Contains(lastOutput(m), "User not found") {
		t.Errorf("Expected not found message, got %q", lastOutput(m))
	}

	typeLine(m, "fly")
	if !strings.Contains(lastOutput(m), "Invalid command.") {
		t.Errorf("Expected invalid command message, got %q", lastOutput(m))
	}

	typeLine(m, "add Bob 12")
	if !strings.Contains(lastOutput(m), "10 digits") {
		t.Errorf("Expected phone validation message, got %q", lastOutput(m))
	}
}

func TestShellIgnoresBlankLines(t *testing.T) {
	m, _ := newTestShell(nil)
	before := len(m.Transcript())
	typeLine(m, "   ")
	if len(m.Transcript()) != before {
		t.Error("Blank input should not produce output")
	}
}

func TestShellAutosavesOnlyMutations(t *testing.T) {
	saves := 0
	m, _ := newTestShell(func() error {
		saves++
		return nil
	})

	typeLine(m, "add Alice 0123456789")
	typeLine(m, "all")
	typeLine(m, "add-birthday Alice 15.06.1990")
	typeLine(m, "birthdays")

	if saves != 2 {
		t.Errorf("Expected 2 saves, got %d", saves)
	}
	if !strings.Contains(lastOutput(m), "Monday, 17 June 2024") {
		t.Errorf("Expected shifted congratulation date, got %q", lastOutput(m))
	}
}

func TestShellReportsSaveFailure(t *testing.T) {
	m, _ := newTestShell(func() error { return errors.New("disk full") })

	typeLine(m, "add Alice")
	if !strings.Contains(lastOutput(m), "disk full") {
		t.Errorf("Expected save error in output, got %q", lastOutput(m))
	}
}

func TestShellExit(t *testing.T) {
	m, _ := newTestShell(nil)

	cmd := typeLine(m, "exit")
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if !m.Quitting() {
		t.Error("Expected model to be quitting")
	}
	if !strings.Contains(lastOutput(m), "Good bye!") {
		t.Errorf("Expected farewell, got %q", lastOutput(m))
	}
}

func TestShellCtrlCQuits(t *testing.T) {
	m, _ := newTestShell(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.Quitting() {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestShellHistoryRecall(t *testing.T) {
	m, _ := newTestShell(nil)
	typeLine(m, "hello")
	typeLine(m, "all")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "all" {
		t.Errorf("Expected 'all', got %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "hello" {
		t.Errorf("Expected 'hello', got %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "" {
		t.Errorf("Expected empty input past the newest entry, got %q", m.input.Value())
	}
}

func TestShellViewFitsHeight(t *testing.T) {
	m, _ := newTestShell(nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 5})
	for i := 0; i < 10; i++ {
		typeLine(m, "hello")
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines > 5 {
		t.Errorf("Expected at most 5 lines, got %d", lines)
	}
}
