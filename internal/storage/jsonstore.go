package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KovalVladuslav/addressbook/internal/models"
)

const fileVersion = 1

type contactsDocument struct {
	Version   int               `json:"version"`
	SavedAt   time.Time         `json:"saved_at"`
	Contacts  []*models.Contact `json:"contacts,omitempty"`
	Encrypted *EncryptedData    `json:"encrypted,omitempty"`
}

// JSONStore keeps the address book in a single JSON file, optionally
// sealed with a passphrase.
type JSONStore struct {
	path       string
	passphrase string
	now        func() time.Time
}

type Option func(*JSONStore)

func WithPassphrase(passphrase string) Option {
	return func(s *JSONStore) { s.passphrase = passphrase }
}

func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewJSONStore(path string, opts ...Option) *JSONStore {
	s := &JSONStore{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JSONStore) Save(book *models.AddressBook) error {
	doc := contactsDocument{
		Version: fileVersion,
		SavedAt: s.now().UTC(),
	}

	contacts := book.Records()
	if s.passphrase != "" {
		plain, err := json.Marshal(contacts)
		if err != nil {
			return fmt.Errorf("failed to marshal contacts: %w", err)
		}
		enc, err := Encrypt(plain, s.passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt contacts: %w", err)
		}
		doc.Encrypted = enc
	} else {
		doc.Contacts = contacts
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contacts file: %w", err)
	}

	return writeFileAtomic(s.path, data)
}

func (s *JSONStore) Load() (*models.AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.NewAddressBook(), nil
		}
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}

	var doc contactsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contacts: %w", err)
	}
	if doc.Version > fileVersion {
		return nil, fmt.Errorf("unsupported contacts file version %d", doc.Version)
	}

	contacts := doc.Contacts
	if doc.Encrypted != nil {
		plain, err := Decrypt(doc.Encrypted, s.passphrase)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(plain, &contacts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal contacts: %w", err)
		}
	}

	book := models.NewAddressBook()
	for _, c := range contacts {
		book.AddRecord(c)
	}
	return book, nil
}

func (s *JSONStore) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".contacts-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write contacts file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set contacts file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace contacts file: %w", err)
	}
	return nil
}
