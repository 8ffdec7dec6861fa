package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/KovalVladuslav/addressbook/internal/commands"
	"github.com/KovalVladuslav/addressbook/internal/logger"
	"github.com/KovalVladuslav/addressbook/internal/storage"
	"github.com/KovalVladuslav/addressbook/internal/views"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "abook",
		Short:         "Address book with birthday reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config.yaml (default ~/.abook/config.yaml)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory holding contacts, logs and audit trail")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: json|sqlite")
	pf.BoolVar(&flags.debug, "debug", false, "enable verbose logging to <data-dir>/logs/abook.log")

	for _, sub := range contactCmds(flags) {
		cmd.AddCommand(sub)
	}
	cmd.AddCommand(exportCmd(flags), importCmd(flags), versionCmd())

	return cmd
}

// runShell starts the interactive prompt. The book is saved when the
// program ends however it ends, autosave or not.
func runShell(cmd *cobra.Command, flags *globalFlags) error {
	a, err := openApp(flags)
	if errors.Is(err, storage.ErrPassphraseRequired) || errors.Is(err, storage.ErrWrongPassphrase) {
		a, err = unlock(flags)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), views.RenderError(err))
		return err
	}
	defer func() { _ = a.close() }()

	opts := views.ShellOptions{Logger: logger.L()}
	if a.cfg.Autosave {
		opts.Save = a.save
	}
	shell := views.NewShellModel(a.handler, opts)

	p := tea.NewProgram(shell, tea.WithAltScreen())
	_, runErr := p.Run()

	saveErr := a.save()
	if runErr != nil {
		return fmt.Errorf("error running application: %w", runErr)
	}
	if saveErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), views.RenderError(saveErr))
		return saveErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), views.RenderResult(commands.Result{Kind: commands.KindExit, Message: "Good bye!"}, time.Now()))
	if a.cfg.Debug && logger.Path() != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Debug log: %s\n", logger.Path())
	}
	return nil
}

// unlock asks for the passphrase of an encrypted contacts file until the
// app opens or the user gives up.
func unlock(flags *globalFlags) (*app, error) {
	var opened *app
	prompt := views.NewPassphrasePromptModel("Your contacts file is encrypted.", func(passphrase string) error {
		candidate := *flags
		candidate.passphrase = passphrase
		a, err := openApp(&candidate)
		if err != nil {
			return err
		}
		opened = a
		return nil
	})

	if _, err := tea.NewProgram(prompt, tea.WithAltScreen()).Run(); err != nil {
		return nil, fmt.Errorf("error running passphrase prompt: %w", err)
	}
	if !prompt.Unlocked() || opened == nil {
		return nil, storage.ErrWrongPassphrase
	}
	flags.passphrase = prompt.Passphrase()
	return opened, nil
}
