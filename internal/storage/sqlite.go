package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/KovalVladuslav/addressbook/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	name     TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	birthday TEXT
);
CREATE TABLE IF NOT EXISTS phones (
	contact_name TEXT NOT NULL REFERENCES contacts(name) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	number       TEXT NOT NULL,
	PRIMARY KEY (contact_name, position)
);`

// SQLiteStore keeps the address book in a SQLite database. Every Save
// replaces the whole content inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(book *models.AddressBook) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM phones`); err != nil {
		return fmt.Errorf("failed to clear phones: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM contacts`); err != nil {
		return fmt.Errorf("failed to clear contacts: %w", err)
	}

	for i, c := range book.Records() {
		var birthday sql.NullString
		if b, ok := c.Birthday(); ok {
			birthday = sql.NullString{String: b.String(), Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO contacts (name, position, birthday) VALUES (?, ?, ?)`,
			c.Name(), i, birthday); err != nil {
			return fmt.Errorf("failed to insert contact %s: %w", c.Name(), err)
		}

		for j, phone := range c.PhoneStrings() {
			if _, err := tx.Exec(`INSERT INTO phones (contact_name, position, number) VALUES (?, ?, ?)`,
				c.Name(), j, phone); err != nil {
				return fmt.Errorf("failed to insert phone for %s: %w", c.Name(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() (*models.AddressBook, error) {
	rows, err := s.db.Query(`SELECT name, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	book := models.NewAddressBook()
	for rows.Next() {
		var name string
		var birthday sql.NullString
		if err := rows.Scan(&name, &birthday); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}

		c, err := models.NewContact(name)
		if err != nil {
			return nil, err
		}
		if birthday.Valid {
			if err := c.AddBirthday(birthday.String); err != nil {
				return nil, fmt.Errorf("contact %s: %w", name, err)
			}
		}
		book.AddRecord(c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	phoneRows, err := s.db.Query(`SELECT contact_name, number FROM phones ORDER BY contact_name, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query phones: %w", err)
	}
	defer phoneRows.Close()

	for phoneRows.Next() {
		var name, number string
		if err := phoneRows.Scan(&name, &number); err != nil {
			return nil, fmt.Errorf("failed to scan phone: %w", err)
		}
		c, ok := book.Find(name)
		if !ok {
			continue
		}
		if err := c.AddPhone(number); err != nil {
			return nil, fmt.Errorf("contact %s: %w", name, err)
		}
	}
	if err := phoneRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read phones: %w", err)
	}

	return book, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
