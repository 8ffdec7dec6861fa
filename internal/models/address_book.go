package models

import "time"

// AddressBook maps contact names to contacts and iterates in insertion order.
type AddressBook struct {
	records map[string]*Contact
	order   []string
}

func NewAddressBook() *AddressBook {
	return &AddressBook{
		records: make(map[string]*Contact),
	}
}

// AddRecord stores c under its name. An existing entry with the same name
// is replaced outright and keeps its position.
func (b *AddressBook) AddRecord(c *Contact) {
	if c == nil {
		return
	}
	name := c.Name()
	if _, exists := b.records[name]; !exists {
		b.order = append(b.order, name)
	}
	b.records[name] = c
}

func (b *AddressBook) Find(name string) (*Contact, bool) {
	c, ok := b.records[name]
	return c, ok
}

func (b *AddressBook) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Records returns the contacts in insertion order.
func (b *AddressBook) Records() []*Contact {
	contacts := make([]*Contact, 0, len(b.order))
	for _, name := range b.order {
		contacts = append(contacts, b.records[name])
	}
	return contacts
}

func (b *AddressBook) Len() int {
	return len(b.order)
}

func (b *AddressBook) UpcomingBirthdays(today time.Time, withinDays int) []UpcomingBirthday {
	return GetUpcomingBirthdays(b.Records(), today, withinDays)
}
