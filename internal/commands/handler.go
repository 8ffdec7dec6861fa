package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/KovalVladuslav/addressbook/internal/audit"
	"github.com/KovalVladuslav/addressbook/internal/models"
)

var (
	ErrEmptyCommand     = errors.New("empty command")
	ErrUnknownCommand   = errors.New("invalid command")
	ErrMalformedCommand = errors.New("enter the argument for the command")
	ErrContactNotFound  = errors.New("contact not found")
	ErrPhoneNotFound    = errors.New("phone not found")
)

type ResultKind int

const (
	KindMessage ResultKind = iota
	KindGreeting
	KindContact
	KindContacts
	KindBirthday
	KindUpcoming
	KindHistory
	KindHelp
	KindExit
)

// Result is what a command produced. Front ends decide how to show it.
type Result struct {
	Kind     ResultKind
	Message  string
	Contact  *models.Contact
	Contacts []*models.Contact
	Birthday *models.Birthday
	Upcoming []models.UpcomingBirthday
	History  []audit.AuditLog
	Window   int

	// Mutated is set when the address book changed and should be saved.
	Mutated bool
}

type Handler struct {
	book    *models.AddressBook
	auditor *audit.ContactAuditor
	now     func() time.Time
	window  int
	log     *slog.Logger
}

type HandlerOption func(*Handler)

func WithAuditor(a *audit.ContactAuditor) HandlerOption {
	return func(h *Handler) { h.auditor = a }
}

func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

func WithBirthdayWindow(days int) HandlerOption {
	return func(h *Handler) {
		if days > 0 {
			h.window = days
		}
	}
}

func WithLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

func NewHandler(book *models.AddressBook, opts ...HandlerOption) *Handler {
	h := &Handler{
		book:   book,
		now:    time.Now,
		window: models.DefaultBirthdayWindow,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With("component", "commands")
	return h
}

func (h *Handler) Book() *models.AddressBook {
	return h.book
}

// Run parses and executes one input line.
func (h *Handler) Run(line string) (Result, error) {
	cmd, err := Parse(line)
	if err != nil {
		return Result{}, err
	}
	return h.Execute(cmd)
}

func (h *Handler) Execute(cmd Command) (Result, error) {
	res, err := h.dispatch(cmd)
	if err != nil {
		h.log.Debug("command.failed", "command", cmd.Name, "error", err)
		return Result{}, err
	}
	h.log.Debug("command.executed", "command", cmd.Name, "mutated", res.Mutated)
	return res, nil
}

func (h *Handler) dispatch(cmd Command) (Result, error) {
	switch cmd.Name {
	case "hello":
		return Result{Kind: KindGreeting, Message: "How can I help you?"}, nil
	case "help":
		return Result{Kind: KindHelp}, nil
	case "close", "exit":
		return Result{Kind: KindExit, Message: "Good bye!"}, nil
	case "add":
		return h.add(cmd)
	case "change":
		return h.change(cmd)
	case "phone":
		return h.phone(cmd)
	case "all":
		if err := expectArgs(cmd, 0, 0); err != nil {
			return Result{}, err
		}
		return Result{Kind: KindContacts, Contacts: h.book.Records()}, nil
	case "add-birthday":
		return h.addBirthday(cmd)
	case "show-birthday":
		return h.showBirthday(cmd)
	case "birthdays":
		return h.birthdays(cmd)
	case "remove-phone":
		return h.removePhone(cmd)
	case "delete":
		return h.deleteContact(cmd)
	case "history":
		return h.history(cmd)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name)
	}
}

func (h *Handler) add(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 1, 2); err != nil {
		return Result{}, err
	}
	name := cmd.Args[0]

	hasPhone := len(cmd.Args) == 2
	if hasPhone {
		if _, err := models.NewPhoneNumber(cmd.Args[1]); err != nil {
			return Result{}, err
		}
	}

	message := "Contact updated."
	contact, ok := h.book.Find(name)
	if !ok {
		c, err := models.NewContact(name)
		if err != nil {
			return Result{}, err
		}
		contact = c
		h.book.AddRecord(contact)
		h.audit(audit.AuditActionCreate, contact.Name(), nil)
		message = "Contact added."
	}

	if hasPhone {
		if err := contact.AddPhone(cmd.Args[1]); err != nil {
			return Result{}, err
		}
		h.audit(audit.AuditActionPhoneAdd, contact.Name(), map[string]string{"phone": cmd.Args[1]})
	}

	return Result{Kind: KindMessage, Message: message, Contact: contact, Mutated: true}, nil
}

func (h *Handler) change(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 3, 3); err != nil {
		return Result{}, err
	}
	contact, err := h.find(cmd.Args[0])
	if err != nil {
		return Result{}, err
	}

	oldPhone, newPhone := cmd.Args[1], cmd.Args[2]
	found, err := contact.EditPhone(oldPhone, newPhone)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, fmt.Errorf("%w: %s", ErrPhoneNotFound, oldPhone)
	}

	h.audit(audit.AuditActionPhoneEdit, contact.Name(), map[string]string{"old": oldPhone, "new": newPhone})
	return Result{Kind: KindMessage, Message: "Contact changed.", Contact: contact, Mutated: true}, nil
}

func (h *Handler) phone(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return Result{}, err
	}
	contact, err := h.find(cmd.Args[0])
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: KindContact, Contact: contact}, nil
}

func (h *Handler) addBirthday(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 2, 2); err != nil {
		return Result{}, err
	}
	contact, err := h.find(cmd.Args[0])
	if err != nil {
		return Result{}, err
	}

	previous := ""
	if b, ok := contact.Birthday(); ok {
		previous = b.String()
	}
	if err := contact.AddBirthday(cmd.Args[1]); err != nil {
		return Result{}, err
	}

	b, _ := contact.Birthday()
	h.auditChange(contact.Name(), "birthday", audit.Change{OldValue: previous, NewValue: b.String()})
	return Result{Kind: KindMessage, Message: "Birthday added.", Contact: contact, Mutated: true}, nil
}

func (h *Handler) showBirthday(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return Result{}, err
	}
	contact, err := h.find(cmd.Args[0])
	if err != nil {
		return Result{}, err
	}

	res := Result{Kind: KindBirthday, Contact: contact}
	if b, ok := contact.Birthday(); ok {
		res.Birthday = &b
	}
	return res, nil
}

func (h *Handler) birthdays(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 0, 1); err != nil {
		return Result{}, err
	}

	window := h.window
	if len(cmd.Args) == 1 {
		days, err := strconv.Atoi(cmd.Args[0])
		if err != nil || days <= 0 {
			return Result{}, fmt.Errorf("%w (days must be a positive number)", ErrMalformedCommand)
		}
		window = days
	}

	return Result{
		Kind:     KindUpcoming,
		Upcoming: h.book.UpcomingBirthdays(h.now(), window),
		Window:   window,
	}, nil
}

func (h *Handler) removePhone(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 2, 2); err != nil {
		return Result{}, err
	}
	contact, err := h.find(cmd.Args[0])
	if err != nil {
		return Result{}, err
	}

	if contact.RemovePhone(cmd.Args[1]) == 0 {
		return Result{Kind: KindMessage, Message: "Nothing to remove.", Contact: contact}, nil
	}

	h.audit(audit.AuditActionPhoneRemove, contact.Name(), map[string]string{"phone": cmd.Args[1]})
	return Result{Kind: KindMessage, Message: "Phone removed.", Contact: contact, Mutated: true}, nil
}

func (h *Handler) deleteContact(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return Result{}, err
	}
	name := cmd.Args[0]
	if !h.book.Delete(name) {
		return Result{}, fmt.Errorf("%w: %s", ErrContactNotFound, name)
	}

	h.audit(audit.AuditActionDelete, name, nil)
	return Result{Kind: KindMessage, Message: "Contact deleted.", Mutated: true}, nil
}

func (h *Handler) history(cmd Command) (Result, error) {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return Result{}, err
	}
	logs, err := h.auditor.GetContactHistory(cmd.Args[0])
	if err != nil {
		return Result{}, fmt.Errorf("failed to read history: %w", err)
	}
	return Result{Kind: KindHistory, History: logs, Message: cmd.Args[0]}, nil
}

func (h *Handler) find(name string) (*models.Contact, error) {
	contact, ok := h.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, name)
	}
	return contact, nil
}

func (h *Handler) audit(action audit.AuditAction, contact string, details map[string]string) {
	if err := h.auditor.LogContactAction(action, contact, details); err != nil {
		h.log.Warn("audit.write_failed", "action", action, "contact", contact, "error", err)
	}
}

func (h *Handler) auditChange(contact, field string, change audit.Change) {
	if err := h.auditor.LogContactChange(contact, field, change); err != nil {
		h.log.Warn("audit.write_failed", "action", audit.AuditActionUpdate, "contact", contact, "error", err)
	}
}

func expectArgs(cmd Command, least, most int) error {
	if len(cmd.Args) < least || len(cmd.Args) > most {
		return fmt.Errorf("%w (usage: %s)", ErrMalformedCommand, usageFor(cmd.Name))
	}
	return nil
}
