package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/KovalVladuslav/addressbook/internal/audit"
	"github.com/KovalVladuslav/addressbook/internal/commands"
	"github.com/KovalVladuslav/addressbook/internal/config"
	"github.com/KovalVladuslav/addressbook/internal/logger"
	"github.com/KovalVladuslav/addressbook/internal/storage"
)

type globalFlags struct {
	configPath string
	dataDir    string
	backend    string
	debug      bool

	// passphrase is only set by the interactive unlock prompt.
	passphrase string
}

// app holds everything a session needs, opened once per invocation.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	store   storage.Store
	auditor *audit.ContactAuditor
	handler *commands.Handler

	closeLog func() error
}

func openApp(flags *globalFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.backend != "" {
		cfg.Backend = flags.backend
	}
	if flags.debug {
		cfg.Debug = true
	}
	if flags.passphrase != "" {
		cfg.Passphrase = flags.passphrase
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	cleanup, err := logger.Setup(logger.Config{
		Dir:   cfg.LogDir(),
		Level: cfg.LogLevel,
		Debug: cfg.Debug,
	})
	if err == nil {
		a.closeLog = cleanup
	}
	a.log = logger.L().With("component", "app")

	a.store, err = storage.Open(storage.Options{
		DataDir:    cfg.DataDir,
		Backend:    cfg.Backend,
		Passphrase: cfg.Passphrase,
	})
	if err != nil {
		_ = a.close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	book, err := storage.LoadOrEmpty(a.store, a.log)
	if err != nil {
		_ = a.close()
		return nil, err
	}

	if cfg.Audit {
		a.auditor, err = audit.NewContactAuditor(cfg.AuditDir())
		if err != nil {
			a.log.Warn("audit.disabled", "error", err)
			a.auditor = nil
		}
	}

	a.handler = commands.NewHandler(book,
		commands.WithAuditor(a.auditor),
		commands.WithBirthdayWindow(cfg.BirthdayWindow),
		commands.WithLogger(logger.L()),
	)

	a.log.Info("app.opened", "backend", cfg.Backend, "contacts", book.Len(), "encrypted", cfg.Passphrase != "")
	return a, nil
}

func (a *app) save() error {
	book := a.handler.Book()
	if err := a.store.Save(book); err != nil {
		a.log.Error("storage.save_failed", "error", err)
		return fmt.Errorf("failed to save contacts: %w", err)
	}
	a.log.Debug("storage.saved", "contacts", book.Len())
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.auditor != nil {
		errs = append(errs, a.auditor.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
	}
	return errors.Join(errs...)
}
