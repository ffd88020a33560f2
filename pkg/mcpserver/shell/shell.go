// Package shell provides the MCP server mediating shell command execution
// with permission checks and output compression.
package shell

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates the MCP server exposing the three shell tools.
func NewServer(h *Handler) *server.MCPServer {
	s := server.NewMCPServer(
		"compressed-shell",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	executeTool := mcp.NewTool("execute_command",
		mcp.WithDescription("Execute a shell command after a permission check. Large output from verbose tools is compressed; the full output is always saved to a log file."),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The shell command to execute"),
		),
		mcp.WithString("cwd",
			mcp.Description("Working directory for the command and permission scope"),
		),
		mcp.WithBoolean("compress",
			mcp.Description("Force compression on (true) or off (false); omit for automatic"),
		),
	)
	s.AddTool(executeTool, h.Execute)

	approveTool := mcp.NewTool("approve_command",
		mcp.WithDescription("Approve an exact command for a single execution"),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The exact command to approve once"),
		),
	)
	s.AddTool(approveTool, h.Approve)

	permanentTool := mcp.NewTool("add_permanent_permission",
		mcp.WithDescription("Permanently allow a command prefix family in a project"),
		mcp.WithString("prefix",
			mcp.Required(),
			mcp.Description("Command prefix to allow, e.g. \"npm install\""),
		),
		mcp.WithString("cwd",
			mcp.Description("Project directory the rule is scoped to"),
		),
	)
	s.AddTool(permanentTool, h.AddPermanent)

	return s
}
