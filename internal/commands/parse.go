package commands

import (
	"strings"
)

// Command is one parsed input line: a lowercased verb and its arguments.
type Command struct {
	Name string
	Args []string
}

// Parse splits a line on whitespace. The verb is case-insensitive; the
// arguments are kept verbatim.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	return Command{
		Name: strings.ToLower(fields[0]),
		Args: fields[1:],
	}, nil
}

// CommandInfo describes a command for help output.
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
}

var Catalog = []CommandInfo{
	{Name: "add", Usage: "[name] [phone]", Description: "add a new contact, or add another phone number to an existing one"},
	{Name: "change", Usage: "[name] [old phone] [new phone]", Description: "change a phone number"},
	{Name: "phone", Usage: "[name]", Description: "show a contact's phone numbers"},
	{Name: "all", Description: "show all contacts"},
	{Name: "add-birthday", Usage: "[name] [DD.MM.YYYY]", Description: "add a birthday"},
	{Name: "show-birthday", Usage: "[name]", Description: "show the birthday"},
	{Name: "birthdays", Usage: "[days]", Description: "show birthdays within the next week (or the given number of days)"},
	{Name: "remove-phone", Usage: "[name] [phone]", Description: "remove a phone number"},
	{Name: "delete", Usage: "[name]", Description: "delete a contact"},
	{Name: "history", Usage: "[name]", Description: "show the change history of a contact"},
	{Name: "hello", Description: "get a greeting"},
	{Name: "help", Description: "show this list"},
	{Name: "close", Usage: "| exit", Description: "save and quit"},
}

func usageFor(name string) string {
	for _, info := range Catalog {
		if info.Name == name {
			if info.Usage == "" {
				return name
			}
			return name + " " + info.Usage
		}
	}
	return name
}
