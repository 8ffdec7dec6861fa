package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Contact is one person's entry in the address book. The name is fixed at
// creation; phones keep insertion order and may repeat.
type Contact struct {
	name     Name
	phones   []PhoneNumber
	birthday *Birthday
}

type contactJSON struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

func NewContact(name string) (*Contact, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Contact{name: n}, nil
}

func (c *Contact) Name() string {
	return c.name.String()
}

// Phones returns a copy of the contact's phone numbers.
func (c *Contact) Phones() []PhoneNumber {
	phones := make([]PhoneNumber, len(c.phones))
	copy(phones, c.phones)
	return phones
}

func (c *Contact) Birthday() (Birthday, bool) {
	if c.birthday == nil {
		return Birthday{}, false
	}
	return *c.birthday, true
}

func (c *Contact) AddPhone(number string) error {
	phone, err := NewPhoneNumber(number)
	if err != nil {
		return err
	}
	c.phones = append(c.phones, phone)
	return nil
}

// EditPhone replaces the first phone equal to oldNumber. newNumber is
// validated before any lookup, so a bad value never mutates the contact.
func (c *Contact) EditPhone(oldNumber, newNumber string) (bool, error) {
	phone, err := NewPhoneNumber(newNumber)
	if err != nil {
		return false, err
	}

	for i, p := range c.phones {
		if p.value == oldNumber {
			c.phones[i] = phone
			return true, nil
		}
	}
	return false, nil
}

// RemovePhone drops every phone equal to number and reports how many went.
func (c *Contact) RemovePhone(number string) int {
	kept := c.phones[:0]
	removed := 0
	for _, p := range c.phones {
		if p.value == number {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	c.phones = kept
	return removed
}

func (c *Contact) FindPhone(number string) (PhoneNumber, bool) {
	for _, p := range c.phones {
		if p.value == number {
			return p, true
		}
	}
	return PhoneNumber{}, false
}

func (c *Contact) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	c.birthday = &b
	return nil
}

func (c *Contact) PhoneStrings() []string {
	phones := make([]string, 0, len(c.phones))
	for _, p := range c.phones {
		phones = append(phones, p.value)
	}
	return phones
}

func (c *Contact) String() string {
	birthday := "none"
	if c.birthday != nil {
		birthday = c.birthday.String()
	}
	return fmt.Sprintf("Contact name: %s, phones: %s, birthday: %s",
		c.name, strings.Join(c.PhoneStrings(), "; "), birthday)
}

func (c *Contact) MarshalJSON() ([]byte, error) {
	data := contactJSON{
		Name:   c.name.String(),
		Phones: c.PhoneStrings(),
	}
	if c.birthday != nil {
		data.Birthday = c.birthday.String()
	}
	return json.Marshal(data)
}

// UnmarshalJSON rebuilds the contact through the same constructors used
// interactively, so stored data that fails validation is rejected.
func (c *Contact) UnmarshalJSON(b []byte) error {
	var data contactJSON
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	restored, err := NewContact(data.Name)
	if err != nil {
		return err
	}
	for _, phone := range data.Phones {
		if err := restored.AddPhone(phone); err != nil {
			return fmt.Errorf("contact %s: %w", data.Name, err)
		}
	}
	if data.Birthday != "" {
		if err := restored.AddBirthday(data.Birthday); err != nil {
			return fmt.Errorf("contact %s: %w", data.Name, err)
		}
	}

	*c = *restored
	return nil
}
