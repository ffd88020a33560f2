package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/daliovic/compressed-shell-mcp-server/internal/compress"
	"github.com/daliovic/compressed-shell-mcp-server/internal/executor"
	"github.com/daliovic/compressed-shell-mcp-server/internal/logging"
	"github.com/daliovic/compressed-shell-mcp-server/internal/permission"
)

// Handler wires the permission resolver, the executor and the compression
// orchestrator behind the MCP tools. Every fault becomes a tool result;
// nothing here may panic or terminate the process.
type Handler struct {
	resolver   *permission.Resolver
	exec       *executor.Service
	compressor *compress.Orchestrator
	workDir    string
}

// NewHandler creates a handler. workDir is the default project directory
// when a request does not carry its own cwd.
func NewHandler(resolver *permission.Resolver, exec *executor.Service, compressor *compress.Orchestrator, workDir string) *Handler {
	return &Handler{
		resolver:   resolver,
		exec:       exec,
		compressor: compressor,
		workDir:    workDir,
	}
}

// Execute handles the execute_command tool: resolve, run, compress.
func (h *Handler) Execute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command := strings.TrimSpace(request.GetString("command", ""))
	if command == "" {
		return mcp.NewToolResultError("command is required"), nil
	}
	cwd := request.GetString("cwd", h.workDir)

	// compress is tri-state: absent defers to the orchestrator.
	var force *bool
	if v, ok := request.GetArguments()["compress"]; ok {
		if b, ok := v.(bool); ok {
			force = &b
		}
	}

	dec, err := h.resolver.Resolve(ctx, command, cwd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !dec.Allowed {
		logging.Info().Str("command", command).Msg("command denied")
		return mcp.NewToolResultError(denialText(dec)), nil
	}

	logging.Info().Str("command", command).Str("source", string(dec.Source)).
		Msg("command allowed")

	res := h.exec.Run(ctx, command, cwd)
	combined := combineOutput(res)
	final := h.compressor.Process(ctx, command, combined, res.ExitCode, res.Duration, force)

	return mcp.NewToolResultText(fmt.Sprintf("Exit code: %d (%.2fs)\n\n%s",
		res.ExitCode, res.Duration, final)), nil
}

// Approve handles the approve_command tool: a one-time grant.
func (h *Handler) Approve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command := strings.TrimSpace(request.GetString("command", ""))
	if command == "" {
		return mcp.NewToolResultError("command is required"), nil
	}

	added, err := h.resolver.GrantOnce(ctx, command)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !added {
		return mcp.NewToolResultText(fmt.Sprintf("Command already approved and pending: %s", command)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"Approved for one-time execution: %s\nRun execute_command to use it.", command)), nil
}

// AddPermanent handles the add_permanent_permission tool: a durable
// prefix-family grant scoped to the project directory.
func (h *Handler) AddPermanent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix := strings.TrimSpace(request.GetString("prefix", ""))
	if prefix == "" {
		return mcp.NewToolResultError("prefix is required"), nil
	}
	cwd := request.GetString("cwd", h.workDir)

	rule, added, err := h.resolver.GrantDurable(ctx, prefix, cwd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !added {
		return mcp.NewToolResultText(fmt.Sprintf("Rule already exists: %s", rule)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added rule %s to %s",
		rule, h.resolver.SettingsPath(cwd))), nil
}

// denialText builds the structured guidance for a denied command, naming
// both remediation paths.
func denialText(dec permission.Decision) string {
	return fmt.Sprintf(`Permission denied for command: %s

To run it anyway, either:
- approve_command with command %q for a single execution, or
- add_permanent_permission with prefix %q to always allow this command family in the project.`,
		dec.Command, dec.Command, dec.Prefix)
}

// combineOutput merges the captured streams after the process has exited,
// stdout first.
func combineOutput(res executor.Result) string {
	if res.Stderr == "" {
		return res.Stdout
	}
	if res.Stdout == "" {
		return res.Stderr
	}
	return res.Stdout + "\n" + res.Stderr
}
