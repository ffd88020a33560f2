package commands

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/daliovic/compressed-shell-mcp-server/internal/compress"
	"github.com/daliovic/compressed-shell-mcp-server/internal/config"
	"github.com/daliovic/compressed-shell-mcp-server/internal/executor"
	"github.com/daliovic/compressed-shell-mcp-server/internal/kvstore"
	"github.com/daliovic/compressed-shell-mcp-server/internal/logging"
	"github.com/daliovic/compressed-shell-mcp-server/internal/oracle"
	"github.com/daliovic/compressed-shell-mcp-server/internal/permission"
	"github.com/daliovic/compressed-shell-mcp-server/pkg/mcpserver/shell"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP protocol over stdio",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.Init(cfg.LogLevel, cfg.LogPretty)

	dir, err := getWorkDir(workDir)
	if err != nil {
		return err
	}

	summarizer, err := buildSummarizer(cfg)
	if err != nil {
		return err
	}

	resolver := permission.NewResolver(kvstore.NewFile(), cfg.PendingFile, cfg.SettingsDir)
	compressor := compress.New(summarizer, cfg.LogDir,
		compress.WithTimeout(cfg.OracleTimeout),
		compress.WithMinLines(cfg.MinCompressLines),
	)
	handler := shell.NewHandler(resolver, executor.NewService(), compressor, dir)

	logging.Info().
		Str("version", Version).
		Str("directory", dir).
		Str("oracle", cfg.Oracle).
		Msg("starting compressed-shell MCP server")

	return server.ServeStdio(shell.NewServer(handler))
}

// buildSummarizer selects the oracle backend from configuration. The
// "none" backend disables compression.
func buildSummarizer(cfg *config.Config) (oracle.Summarizer, error) {
	switch cfg.Oracle {
	case "cli":
		return oracle.NewCLI(cfg.OracleCommand, cfg.OracleArgs...), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai oracle")
		}
		clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
		if cfg.OpenAIBase != "" {
			clientCfg.BaseURL = cfg.OpenAIBase
		}
		return oracle.NewOpenAI(openai.NewClientWithConfig(clientCfg), cfg.OpenAIModel), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown oracle backend %q", cfg.Oracle)
}
