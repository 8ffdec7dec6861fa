package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/KovalVladuslav/addressbook/internal/audit"
	"github.com/KovalVladuslav/addressbook/internal/commands"
	"github.com/KovalVladuslav/addressbook/internal/models"
	"github.com/KovalVladuslav/addressbook/internal/utils"
	"github.com/KovalVladuslav/addressbook/internal/validation"
)

var (
	successStyle   = utils.Fg(utils.Colours.Success)
	warningStyle   = utils.Fg(utils.Colours.Warning)
	errorStyle     = utils.Fg(utils.Colours.Error)
	highlightStyle = utils.Fg(utils.Colours.Highlight)
	mutedStyle     = utils.Fg(utils.Colours.Muted)
	accentStyle    = utils.Fg(utils.Colours.Accent)
	farewellStyle  = utils.Fg(utils.Colours.Farewell)
	textStyle      = utils.Fg(utils.Colours.Text)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(utils.Colours.Text)).
			Background(lipgloss.Color(utils.Colours.Surface)).
			Padding(0, 1)
)

func RenderWelcome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to the assistant bot!"))
	b.WriteString("\n")
	b.WriteString(RenderHelp())
	return b.String()
}

func RenderHelp() string {
	var b strings.Builder
	b.WriteString(textStyle.Render("Available commands:"))
	for _, info := range commands.Catalog {
		b.WriteString("\n  ")
		b.WriteString(successStyle.Render(info.Name))
		if info.Usage != "" {
			b.WriteString(" ")
			b.WriteString(highlightStyle.Render(info.Usage))
		}
		b.WriteString(textStyle.Render(" - " + info.Description))
	}
	return b.String()
}

// RenderResult turns a command result into terminal output.
func RenderResult(res commands.Result, now time.Time) string {
	switch res.Kind {
	case commands.KindContact:
		return RenderContact(res.Contact)
	case commands.KindContacts:
		if len(res.Contacts) == 0 {
			return mutedStyle.Render("No contacts yet.")
		}
		lines := make([]string, 0, len(res.Contacts))
		for _, c := range res.Contacts {
			lines = append(lines, RenderContact(c))
		}
		return strings.Join(lines, "\n")
	case commands.KindBirthday:
		if res.Birthday == nil {
			return warningStyle.Render("Not added birthday")
		}
		return successStyle.Render(res.Birthday.String())
	case commands.KindUpcoming:
		return renderUpcoming(res.Upcoming, res.Window)
	case commands.KindHistory:
		return renderHistory(res.Message, res.History, now)
	case commands.KindHelp:
		return RenderHelp()
	case commands.KindGreeting, commands.KindExit:
		return farewellStyle.Render(res.Message)
	default:
		return successStyle.Render(res.Message)
	}
}

func RenderContact(c *models.Contact) string {
	birthday := "none"
	if b, ok := c.Birthday(); ok {
		birthday = b.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s",
		highlightStyle.Render(c.Name()),
		highlightStyle.Render(utils.FormatPhones(c.PhoneStrings())),
		highlightStyle.Render(birthday))
}

// maxNameWidth keeps list rows on one line for very long names.
const maxNameWidth = 30

func renderUpcoming(upcoming []models.UpcomingBirthday, window int) string {
	if len(upcoming) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No birthdays in the next %d days.", window))
	}

	lines := []string{textStyle.Render(fmt.Sprintf("Birthdays in the next %d days:", window))}
	for _, u := range upcoming {
		lines = append(lines, fmt.Sprintf("Name: %s, Date: %s %s",
			highlightStyle.Render(utils.TruncateString(u.Name, maxNameWidth)),
			highlightStyle.Render(u.Format()),
			mutedStyle.Render("("+utils.FormatDaysUntil(u.DaysUntil)+")")))
	}
	return strings.Join(lines, "\n")
}

func renderHistory(name string, history []audit.AuditLog, now time.Time) string {
	name = utils.TruncateString(name, maxNameWidth)
	if len(history) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No history for %s.", name))
	}

	lines := []string{textStyle.Render(fmt.Sprintf("History of %s:", name))}
	for _, entry := range history {
		details := make([]string, 0, len(entry.Details)+len(entry.Changes))
		for _, key := range []string{"phone", "old", "new", "source"} {
			if v, ok := entry.Details[key]; ok && v != "" {
				details = append(details, key+"="+v)
			}
		}
		for field, change := range entry.Changes {
			details = append(details, fmt.Sprintf("%s: %s -> %s", field, orNone(change.OldValue), orNone(change.NewValue)))
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			mutedStyle.Render(utils.PadString(utils.FormatTimeAgo(entry.Timestamp, now), 14, ' ')),
			accentStyle.Render(utils.PadString(string(entry.Action), 13, ' ')),
			textStyle.Render(strings.Join(details, " "))))
	}
	return strings.Join(lines, "\n")
}

// RenderError translates command errors into user-facing text.
func RenderError(err error) string {
	var ve *validation.ValidationError
	switch {
	case errors.Is(err, commands.ErrContactNotFound):
		return errorStyle.Render("User not found")
	case errors.Is(err, commands.ErrUnknownCommand):
		return errorStyle.Render("Invalid command.")
	case errors.Is(err, commands.ErrPhoneNotFound):
		return warningStyle.Render(utils.Capitalize(err.Error()))
	case errors.Is(err, commands.ErrMalformedCommand):
		return warningStyle.Render(utils.Capitalize(err.Error()))
	case errors.As(err, &ve):
		return warningStyle.Render(ve.Message)
	default:
		return errorStyle.Render(utils.Capitalize(err.Error()))
	}
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}
