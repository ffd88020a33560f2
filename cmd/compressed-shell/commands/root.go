// Package commands provides the CLI commands for the compressed shell
// MCP server.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags.
var (
	logLevel string
	workDir  string
)

var rootCmd = &cobra.Command{
	Use:   "compressed-shell",
	Short: "MCP server mediating shell command execution",
	Long: `compressed-shell is an MCP server that executes shell commands on
behalf of an agent. Commands pass a permission check first, and large
output from verbose tools is compressed through a summarization backend
while the full output is preserved on disk.`,
	Version: Version,
	// Serving over stdio is the only mode, so the bare command serves.
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR), overrides SHELLMCP_LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&workDir, "directory", "", "Default project directory (defaults to the current directory)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("compressed-shell %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getWorkDir returns the working directory from flag or current directory.
func getWorkDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return os.Getwd()
}
