package main

import "github.com/KovalVladuslav/addressbook/internal/cli"

func main() {
	cli.Execute()
}
