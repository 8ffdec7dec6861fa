package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KovalVladuslav/addressbook/internal/utils"
)

const maxPassphraseAttempts = 3

// PassphrasePromptModel asks for the passphrase of an encrypted contacts
// file. verify is called with each attempt; a nil error unlocks.
type PassphrasePromptModel struct {
	verify func(string) error

	passphrase  string
	attempts    int
	maxAttempts int

	loading     bool
	error       string
	description string

	unlocked  bool
	cancelled bool
}

type passphraseVerifiedMsg struct {
	err error
}

func NewPassphrasePromptModel(description string, verify func(string) error) *PassphrasePromptModel {
	return &PassphrasePromptModel{
		verify:      verify,
		maxAttempts: maxPassphraseAttempts,
		description: description,
	}
}

// Unlocked reports whether a passphrase was accepted.
func (m *PassphrasePromptModel) Unlocked() bool {
	return m.unlocked
}

// Passphrase returns the accepted passphrase, or "" if none was.
func (m *PassphrasePromptModel) Passphrase() string {
	if !m.unlocked {
		return ""
	}
	return m.passphrase
}

func (m *PassphrasePromptModel) Init() tea.Cmd {
	return nil
}

func (m *PassphrasePromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.passphrase == "" {
				m.error = "Passphrase cannot be empty"
				return m, nil
			}
			m.loading = true
			m.error = ""
			return m, m.check(m.passphrase)

		case tea.KeyBackspace:
			if r := []rune(m.passphrase); len(r) > 0 {
				m.passphrase = string(r[:len(r)-1])
			}

		case tea.KeyCtrlU:
			m.passphrase = ""

		case tea.KeyRunes, tea.KeySpace:
			m.passphrase += string(msg.Runes)
		}

	case passphraseVerifiedMsg:
		m.loading = false
		if msg.err == nil {
			m.unlocked = true
			return m, tea.Quit
		}

		m.attempts++
		m.passphrase = ""
		if m.attempts >= m.maxAttempts {
			m.cancelled = true
			m.error = "Too many failed attempts"
			return m, tea.Quit
		}
		m.error = fmt.Sprintf("Incorrect passphrase (%d/%d attempts)", m.attempts, m.maxAttempts)
	}

	return m, nil
}

func (m *PassphrasePromptModel) check(passphrase string) tea.Cmd {
	return func() tea.Msg {
		return passphraseVerifiedMsg{err: m.verify(passphrase)}
	}
}

func (m *PassphrasePromptModel) View() string {
	if m.unlocked || m.cancelled {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Width(60).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Accent)).
		Padding(1).
		Align(lipgloss.Center)

	inputStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text)).
		Background(lipgloss.Color(utils.Colours.Surface)).
		Padding(0, 1).
		Width(40)

	var content strings.Builder
	content.WriteString(accentStyle.Bold(true).Render("Unlock contacts"))
	content.WriteString("\n\n")

	if m.description != "" {
		content.WriteString(textStyle.Render(m.description))
		content.WriteString("\n\n")
	}

	if m.loading {
		content.WriteString(inputStyle.Render("Verifying passphrase..."))
	} else {
		content.WriteString(inputStyle.Render("Passphrase: " + strings.Repeat("*", len([]rune(m.passphrase)))))
	}
	content.WriteString("\n\n")

	if m.error != "" {
		content.WriteString(errorStyle.Bold(true).Render(m.error))
		content.WriteString("\n\n")
	}

	if !m.loading {
		content.WriteString(mutedStyle.Italic(true).Render("Enter: confirm • Esc: cancel • Ctrl+U: clear"))
	}

	return boxStyle.Render(content.String())
}
