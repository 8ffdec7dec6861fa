package commands

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/KovalVladuslav/addressbook/internal/audit"
	"github.com/KovalVladuslav/addressbook/internal/models"
	"github.com/KovalVladuslav/addressbook/internal/validation"
)

func newTestHandler(t *testing.T, opts ...HandlerOption) *Handler {
	t.Helper()
	today := func() time.Time { return time.Date(2024, time.June, 10, 9, 30, 0, 0, time.UTC) }
	return NewHandler(models.NewAddressBook(), append([]HandlerOption{WithClock(today)}, opts...)...)
}

func run(t *testing.T, h *Handler, line string) Result {
	t.Helper()
	res, err := h.Run(line)
	if err != nil {
		t.Fatalf("%q failed: %v", line, err)
	}
	return res
}

func TestParse(t *testing.T) {
	cmd, err := Parse("  ADD   Alice  0123456789 ")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "add" {
		t.Errorf("Expected name add, got %s", cmd.Name)
	}
	if !reflect.DeepEqual(cmd.Args, []string{"Alice", "0123456789"}) {
		t.Errorf("Expected args [Alice 0123456789], got %v", cmd.Args)
	}

	if _, err := Parse("   "); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
}

func TestAddCreatesThenUpdates(t *testing.T) {
	h := newTestHandler(t)

	res := run(t, h, "add Alice 0123456789")
	if res.Message != "Contact added." {
		t.Errorf("Expected Contact added., got %s", res.Message)
	}
	if !res.Mutated {
		t.Error("Expected add to mutate the book")
	}

	res = run(t, h, "add Alice 1111111111")
	if res.Message != "Contact updated." {
		t.Errorf("Expected Contact updated., got %s", res.Message)
	}

	alice, ok := h.Book().Find("Alice")
	if !ok {
		t.Fatal("Expected Alice in the book")
	}
	if !reflect.DeepEqual(alice.PhoneStrings(), []string{"0123456789", "1111111111"}) {
		t.Errorf("Expected both phones, got %v", alice.PhoneStrings())
	}
}

func TestAddWithoutPhone(t *testing.T) {
	h := newTestHandler(t)

	res := run(t, h, "add Bob")
	if res.Message != "Contact added." {
		t.Errorf("Expected Contact added., got %s", res.Message)
	}
	bob, ok := h.Book().Find("Bob")
	if !ok {
		t.Fatal("Expected Bob in the book")
	}
	if len(bob.Phones()) != 0 {
		t.Errorf("Expected no phones, got %v", bob.PhoneStrings())
	}
}

func TestAddInvalidPhoneCreatesNothing(t *testing.T) {
	h := newTestHandler(t)

	if _, err := h.Run("add Alice 12345"); !errors.Is(err, validation.ErrInvalidPhone) {
		t.Errorf("Expected ErrInvalidPhone, got %v", err)
	}
	if h.Book().Len() != 0 {
		t.Errorf("Expected empty book, got %d contacts", h.Book().Len())
	}
}

func TestMalformedCommands(t *testing.T) {
	h := newTestHandler(t)
	run(t, h, "add Alice 0123456789")

	for _, line := range []string{
		"add",
		"add Alice 0123456789 extra",
		"change Alice 0123456789",
		"phone",
		"all extra",
		"add-birthday Alice",
		"show-birthday",
		"birthdays soon",
		"birthdays 0",
		"remove-phone Alice",
		"delete",
	} {
		if _, err := h.Run(line); !errors.Is(err, ErrMalformedCommand) {
			t.Errorf("Expected ErrMalformedCommand for %q, got %v", line, err)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newTestHandler(t)
	if _, err := h.Run("dance"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Expected ErrUnknownCommand, got %v", err)
	}
}

func TestContactNotFound(t *testing.T) {
	h := newTestHandler(t)

	for _, line := range []string{
		"change Nobody 0123456789 1111111111",
		"phone Nobody",
		"add-birthday Nobody 01.01.1990",
		"show-birthday Nobody",
		"remove-phone Nobody 0123456789",
		"delete Nobody",
	} {
		if _, err := h.Run(line); !errors.Is(err, ErrContactNotFound) {
			t.Errorf("Expected ErrContactNotFound for %q, got %v", line, err)
		}
	}
}

func TestChangePhone(t *testing.T) {
	h := newTestHandler(t)
	run(t, h, "add Alice 0123456789")

	res := run(t, h, "change Alice 0123456789 1111111111")
	if res.Message != "Contact changed." {
		t.Errorf("Expected Contact changed., got %s", res.Message)
	}
	if !reflect.DeepEqual(res.Contact.PhoneStrings(), []string{"1111111111"}) {
		t.Errorf("Expected [1111111111], got %v", res.Contact.PhoneStrings())
	}

	if _, err := h.Run("change Alice 0123456789 2222222222"); !errors.Is(err, ErrPhoneNotFound) {
		t.Errorf("Expected ErrPhoneNotFound, got %v", err)
	}
	if _, err := h.Run("change Alice 1111111111 bad"); !errors.Is(err, validation.ErrInvalidPhone) {
		t.Errorf("Expected ErrInvalidPhone, got %v", err)
	}
}

func TestPhoneAndAll(t *testing.T) {
	h := newTestHandler(t)
	run(t, h, "add Alice 0123456789")
	run(t, h, "add Bob")

	res := run(t, h, "phone Alice")
	if res.Kind != KindContact || res.Contact.Name() != "Alice" {
		t.Errorf("Expected Alice's contact, got %v %v", res.Kind, res.Contact)
	}
	if res.Mutated {
		t.Error("Expected phone to leave the book untouched")
	}

	res = run(t, h, "all")
	if res.Kind != KindContacts {
		t.Errorf("Expected KindContacts, got %v", res.Kind)
	}
	if len(res.Contacts) != 2 || res.Contacts[1].Name() != "Bob" {
		t.Errorf("Expected [Alice Bob], got %v", res.Contacts)
	}
}

func TestBirthdayCommands(t *testing.T) {
	h := newTestHandler(t)
	run(t, h, "add Alice")

	res := run(t, h, "show-birthday Alice")
	if res.Kind != KindBirthday || res.Birthday != nil {
		t.Errorf("Expected empty birthday result, got %v %v", res.Kind, res.Birthday)
	}

	if _, err := h.Run("add-birthday Alice 1990-06-15"); !errors.Is(err, validation.ErrInvalidDate) {
		t.Errorf("Expected ErrInvalidDate, got %v", err)
	}

	res = run(t, h, "add-birthday Alice 15.06.1990")
	if res.Message != "Birthday added." {
		t.Errorf("Expected Birthday added., got %s", res.Message)
	}

	res = run(t, h, "show-birthday Alice")
	if res.Birthday == nil || res.Birthday.String() != "15.06.1990" {
		t.Errorf("Expected 15.06.1990, got %v", res.Birthday)
	}
}

func TestBirthdaysUsesClockAndWindow(t *testing.T) {
	h := newTestHandler(t)
	run(t, h, "add Alice")
	run(t, h, "add-birthday Alice 15.06.1990")
	run(t, h, "add Bob")
	run(t, h, "add-birthday Bob 25.06.1990")

	res := run(t, h, "birthdays")
	if res.Kind != KindUpcoming || res.Window != models.DefaultBirthdayWindow {
		t.Errorf("Expected upcoming over %d days, got %v over %d", models.DefaultBirthdayWindow, res.Kind, res.Window)
	}
	if len(res.Upcoming) != 1 {
		t.Fatalf("Expected 1 upcoming birthday, got %d", len(res.Upcoming))
	}
	if got := res.Upcoming[0].Format(); got != "Monday, 17 June 2024" {
		t.Errorf("Expected Monday, 17 June 2024, got %s", got)
	}

	res = run(t, h, "birthdays 20")
	if len(res.Upcoming) != 2 {
		t.Errorf("Expected 2 upcoming birthdays, got %d", len(res.Upcoming))
	}

	narrow := newTestHandler(t, WithBirthdayWindow(3))
	run(t, narrow, "add Alice")
	run(t, narrow, "add-birthday Alice 15.06.1990")
	res = run(t, narrow, "birthdays")
	if len(res.Upcoming) != 0 {
		t.Errorf("Expected no birthdays within 3 days, got %d", len(res.Upcoming))
	}
}

func TestRemovePhoneAndDelete(t *testing.T) {
	h := newTestHandler(t)
	run(t, h, "add Alice 0123456789")
	run(t, h, "add Alice 0123456789")

	res := run(t, h, "remove-phone Alice 0123456789")
	if res.Message != "Phone removed." {
		t.Errorf("Expected Phone removed., got %s", res.Message)
	}
	if len(res.Contact.Phones()) != 0 {
		t.Errorf("Expected every copy removed, got %v", res.Contact.PhoneStrings())
	}

	res = run(t, h, "remove-phone Alice 0123456789")
	if res.Mutated {
		t.Error("Expected removing a missing phone not to mutate")
	}

	res = run(t, h, "delete Alice")
	if res.Message != "Contact deleted." {
		t.Errorf("Expected Contact deleted., got %s", res.Message)
	}
	if h.Book().Len() != 0 {
		t.Errorf("Expected empty book, got %d", h.Book().Len())
	}
}

func TestExitAndHello(t *testing.T) {
	h := newTestHandler(t)

	res := run(t, h, "hello")
	if res.Message != "How can I help you?" {
		t.Errorf("Expected greeting, got %s", res.Message)
	}

	for _, line := range []string{"exit", "close", "EXIT"} {
		res = run(t, h, line)
		if res.Kind != KindExit || res.Message != "Good bye!" {
			t.Errorf("Expected exit for %q, got %v %q", line, res.Kind, res.Message)
		}
	}
}

func TestHistoryRecordsChanges(t *testing.T) {
	auditor, err := audit.NewContactAuditor(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := newTestHandler(t, WithAuditor(auditor))

	run(t, h, "add Alice 0123456789")
	run(t, h, "change Alice 0123456789 1111111111")
	run(t, h, "add-birthday Alice 01.01.1990")
	run(t, h, "add-birthday Alice 01.01.1990")
	run(t, h, "add-birthday Alice 02.01.1990")

	res := run(t, h, "history Alice")
	if res.Kind != KindHistory {
		t.Errorf("Expected KindHistory, got %v", res.Kind)
	}
	if len(res.History) != 5 {
		t.Fatalf("Expected 5 entries (repeated birthday skipped), got %d", len(res.History))
	}

	wantActions := []audit.AuditAction{
		audit.AuditActionCreate,
		audit.AuditActionPhoneAdd,
		audit.AuditActionPhoneEdit,
		audit.AuditActionUpdate,
		audit.AuditActionUpdate,
	}
	for i, want := range wantActions {
		if res.History[i].Action != want {
			t.Errorf("Expected entry %d to be %s, got %s", i, want, res.History[i].Action)
		}
	}

	first := res.History[3].Changes["birthday"]
	if first.OldValue != "" || first.NewValue != "01.01.1990" {
		t.Errorf("Expected birthday change '' -> 01.01.1990, got %+v", first)
	}
	second := res.History[4].Changes["birthday"]
	if second.OldValue != "01.01.1990" || second.NewValue != "02.01.1990" {
		t.Errorf("Expected birthday change 01.01.1990 -> 02.01.1990, got %+v", second)
	}
}

func TestHistoryWithoutAuditor(t *testing.T) {
	h := newTestHandler(t)
	res := run(t, h, "history Alice")
	if len(res.History) != 0 {
		t.Errorf("Expected no history, got %d entries", len(res.History))
	}
}
