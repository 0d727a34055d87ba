package main

import (
	"github.com/smartlink-app/smartlink/cmd"

	// Subcommands register themselves with the root command.
	_ "github.com/smartlink-app/smartlink/cmd/cli"
	_ "github.com/smartlink-app/smartlink/cmd/server"
)

func main() {
	cmd.Execute()
}
