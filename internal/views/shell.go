package views

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KovalVladuslav/addressbook/internal/commands"
	"github.com/KovalVladuslav/addressbook/internal/utils"
)

const maxScrollback = 500

type ShellOptions struct {
	// Save is called after every command that changed the book. Nil
	// disables autosave.
	Save   func() error
	Now    func() time.Time
	Logger *slog.Logger
}

// ShellModel is the interactive prompt: one input line plus the output of
// everything typed so far.
type ShellModel struct {
	handler *commands.Handler
	input   textinput.Model
	save    func() error
	now     func() time.Time
	log     *slog.Logger

	width  int
	height int

	scrollback []string
	past       []string
	pastIdx    int
	quitting   bool
}

func NewShellModel(handler *commands.Handler, opts ShellOptions) *ShellModel {
	input := textinput.New()
	input.Prompt = "Enter a command: "
	input.Placeholder = "help"
	input.CharLimit = 256
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Accent))
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Text))
	input.Focus()

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ShellModel{
		handler:    handler,
		input:      input,
		save:       opts.Save,
		now:        opts.Now,
		log:        opts.Logger.With("component", "shell"),
		scrollback: []string{RenderWelcome()},
	}
}

func (m *ShellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - len(m.input.Prompt) - 1; w > 0 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ShellModel) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.past = append(m.past, line)
	m.pastIdx = len(m.past)
	m.appendOutput(mutedStyle.Render(m.input.Prompt) + line)

	res, err := m.handler.Run(line)
	if err != nil {
		if !errors.Is(err, commands.ErrEmptyCommand) {
			m.appendOutput(RenderError(err))
		}
		return m, nil
	}

	m.appendOutput(RenderResult(res, m.now()))

	if res.Mutated && m.save != nil {
		if err := m.save(); err != nil {
			m.log.Error("autosave.failed", "error", err)
			m.appendOutput(errorStyle.Render("Could not save contacts: " + err.Error()))
		}
	}

	if res.Kind == commands.KindExit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *ShellModel) recall(step int) {
	if len(m.past) == 0 {
		return
	}
	m.pastIdx += step
	if m.pastIdx < 0 {
		m.pastIdx = 0
	}
	if m.pastIdx >= len(m.past) {
		m.pastIdx = len(m.past)
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.past[m.pastIdx])
	m.input.CursorEnd()
}

func (m *ShellModel) appendOutput(text string) {
	m.scrollback = append(m.scrollback, text)
	if len(m.scrollback) > maxScrollback {
		m.scrollback = m.scrollback[len(m.scrollback)-maxScrollback:]
	}
}

// Quitting reports whether the user asked to leave.
func (m *ShellModel) Quitting() bool {
	return m.quitting
}

// Transcript returns everything printed so far, oldest first.
func (m *ShellModel) Transcript() []string {
	out := make([]string, len(m.scrollback))
	copy(out, m.scrollback)
	return out
}

func (m *ShellModel) View() string {
	if m.quitting {
		return ""
	}

	lines := strings.Split(strings.Join(m.scrollback, "\n"), "\n")
	if m.height > 1 && len(lines) > m.height-1 {
		lines = lines[len(lines)-(m.height-1):]
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}
