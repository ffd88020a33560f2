// Command compressed-shell runs the shell-mediation MCP server over stdio.
package main

import (
	"os"

	"github.com/daliovic/compressed-shell-mcp-server/cmd/compressed-shell/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
