package models

import (
	"strings"
	"time"

	"github.com/KovalVladuslav/addressbook/internal/validation"
)

// Name is a contact's non-blank, trimmed display name.
type Name struct {
	value string
}

func NewName(raw string) (Name, error) {
	if err := validation.ValidateName(raw); err != nil {
		return Name{}, err
	}
	return Name{value: strings.TrimSpace(raw)}, nil
}

func (n Name) String() string {
	return n.value
}

// PhoneNumber holds exactly ten decimal digits.
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if err := validation.ValidatePhone(raw); err != nil {
		return PhoneNumber{}, err
	}
	return PhoneNumber{value: raw}, nil
}

func (p PhoneNumber) String() string {
	return p.value
}

// Birthday is a calendar date entered as DD.MM.YYYY.
type Birthday struct {
	date time.Time
}

func NewBirthday(raw string) (Birthday, error) {
	date, err := validation.ParseBirthday(raw)
	if err != nil {
		return Birthday{}, err
	}
	return Birthday{date: date}, nil
}

// Date returns the birthday at UTC midnight.
func (b Birthday) Date() time.Time {
	return b.date
}

func (b Birthday) String() string {
	return b.date.Format(validation.BirthdayLayout)
}
