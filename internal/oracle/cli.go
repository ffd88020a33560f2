package oracle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLI summarizes by piping the instructions to an external command's
// stdin and reading the summary from its stdout.
type CLI struct {
	command string
	args    []string
}

// NewCLI creates a CLI summarizer. A typical configuration is
// NewCLI("claude", "-p").
func NewCLI(command string, args ...string) *CLI {
	return &CLI{command: command, args: args}
}

func (c *CLI) Summarize(ctx context.Context, req Request) (string, error) {
	cmd := exec.CommandContext(ctx, c.command, c.args...)
	cmd.Stdin = strings.NewReader(req.Instructions)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("summarizer %s failed: %s", c.command, msg)
	}

	return stdout.String(), nil
}
