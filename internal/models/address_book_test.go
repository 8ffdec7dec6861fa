package models

import (
	"testing"
	"time"
)

func TestAddressBookInsertionOrder(t *testing.T) {
	book := NewAddressBook()
	book.AddRecord(mustContact(t, "Charlie"))
	book.AddRecord(mustContact(t, "Alice"))
	book.AddRecord(mustContact(t, "Bob"))

	names := []string{}
	for _, c := range book.Records() {
		names = append(names, c.Name())
	}
	want := []string{"Charlie", "Alice", "Bob"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, names)
		}
	}
}

func TestAddressBookAddRecordOverwrites(t *testing.T) {
	book := NewAddressBook()
	book.AddRecord(mustContact(t, "Alice", "0123456789"))
	book.AddRecord(mustContact(t, "Bob"))
	book.AddRecord(mustContact(t, "Alice", "1111111111"))

	if book.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", book.Len())
	}

	alice, ok := book.Find("Alice")
	if !ok {
		t.Fatal("Expected Alice to be found")
	}
	phones := alice.PhoneStrings()
	if len(phones) != 1 || phones[0] != "1111111111" {
		t.Errorf("Expected overwrite without merge, got %v", phones)
	}

	if book.Records()[0].Name() != "Alice" {
		t.Error("Overwritten record should keep its position")
	}
}

func TestAddressBookFindAndDelete(t *testing.T) {
	book := NewAddressBook()
	book.AddRecord(mustContact(t, "Alice"))
	book.AddRecord(mustContact(t, "Bob"))

	if _, ok := book.Find("Nobody"); ok {
		t.Error("Expected missing contact not to be found")
	}

	if !book.Delete("Alice") {
		t.Error("Expected Delete to report removal")
	}
	if book.Delete("Alice") {
		t.Error("Expected second Delete to report nothing removed")
	}
	if book.Len() != 1 || book.Records()[0].Name() != "Bob" {
		t.Errorf("Expected only Bob left, got %d records", book.Len())
	}

	book.AddRecord(mustContact(t, "Alice"))
	if book.Records()[1].Name() != "Alice" {
		t.Error("Re-added contact should go to the end")
	}
}

func TestAddressBookUpcomingBirthdays(t *testing.T) {
	book := NewAddressBook()
	with := mustContact(t, "Alice")
	if err := with.AddBirthday("12.06.1990"); err != nil {
		t.Fatal(err)
	}
	book.AddRecord(with)
	book.AddRecord(mustContact(t, "Bob"))

	today := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	upcoming := book.UpcomingBirthdays(today, DefaultBirthdayWindow)
	if len(upcoming) != 1 || upcoming[0].Name != "Alice" {
		t.Errorf("Expected only Alice, got %v", upcoming)
	}
}
