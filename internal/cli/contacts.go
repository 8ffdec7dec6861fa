package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KovalVladuslav/addressbook/internal/commands"
	"github.com/KovalVladuslav/addressbook/internal/views"
)

// shellOnly commands make no sense outside the interactive prompt.
var shellOnly = map[string]bool{
	"help":  true,
	"close": true,
}

// contactCmds mirrors the shell command set as one-shot subcommands, so
// `abook add Bob 0123456789` does what typing it at the prompt would.
func contactCmds(flags *globalFlags) []*cobra.Command {
	var cmds []*cobra.Command
	for _, info := range commands.Catalog {
		if shellOnly[info.Name] {
			continue
		}
		cmds = append(cmds, contactCmd(flags, info))
	}
	return cmds
}

func contactCmd(flags *globalFlags, info commands.CommandInfo) *cobra.Command {
	name := info.Name
	var days int

	cmd := &cobra.Command{
		Use:   strings.TrimSpace(name + " " + info.Usage),
		Short: info.Description,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "birthdays" && len(args) == 0 && cmd.Flags().Changed("days") {
				args = []string{strconv.Itoa(days)}
			}
			return runOnce(cmd, flags, commands.Command{Name: name, Args: args})
		},
	}

	if name == "birthdays" {
		cmd.Flags().IntVar(&days, "days", 0, "look-ahead window in days")
	}
	return cmd
}

// runOnce opens the book, executes a single command and saves if it
// changed anything.
func runOnce(cmd *cobra.Command, flags *globalFlags, c commands.Command) error {
	a, err := openApp(flags)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), views.RenderError(err))
		return err
	}
	defer func() { _ = a.close() }()

	res, err := a.handler.Execute(c)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), views.RenderError(err))
		return err
	}

	if res.Mutated {
		if err := a.save(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), views.RenderError(err))
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), views.RenderResult(res, time.Now()))
	return nil
}
