package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KovalVladuslav/addressbook/internal/models"
)

const (
	appDir       = ".abook"
	contactsFile = "contacts.json"
	databaseFile = "contacts.db"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store persists the whole address book at once. Load returns an empty
// book when nothing has been saved yet.
type Store interface {
	Save(book *models.AddressBook) error
	Load() (*models.AddressBook, error)
	Close() error
}

type Options struct {
	DataDir    string
	Backend    string
	Passphrase string
}

// DefaultDataDir returns ~/.abook.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDir), nil
}

// Open creates the data directory if needed and returns the store for the
// configured backend.
func Open(opts Options) (Store, error) {
	if opts.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		opts.DataDir = dir
	}

	if err := os.MkdirAll(opts.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	switch opts.Backend {
	case "", BackendJSON:
		return NewJSONStore(filepath.Join(opts.DataDir, contactsFile), WithPassphrase(opts.Passphrase)), nil
	case BackendSQLite:
		s, err := NewSQLiteStore(filepath.Join(opts.DataDir, databaseFile))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}

// LoadOrEmpty loads the book, falling back to an empty one when the stored
// state is unreadable or corrupt. A missing or wrong passphrase is still
// returned, since saving over an encrypted file would lose it.
func LoadOrEmpty(s Store, log *slog.Logger) (*models.AddressBook, error) {
	book, err := s.Load()
	if err != nil {
		if errors.Is(err, ErrPassphraseRequired) || errors.Is(err, ErrWrongPassphrase) {
			return nil, err
		}
		log.Warn("storage.load_failed", "error", err)
		return models.NewAddressBook(), nil
	}
	log.Debug("storage.loaded", "contacts", book.Len())
	return book, nil
}
