// Package compress decides whether a command's output warrants
// compression and orchestrates the summarization oracle around it. The
// raw output is always persisted to disk before the oracle runs, and a
// failed or degenerate oracle call falls back to the complete original
// output. Compression may lose comfort, never data.
package compress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/daliovic/compressed-shell-mcp-server/internal/logging"
	"github.com/daliovic/compressed-shell-mcp-server/internal/oracle"
)

const (
	// DefaultMinLines is the combined line count at or above which a
	// verbose command's output is compressed.
	DefaultMinLines = 30

	// DefaultTimeout bounds one oracle call.
	DefaultTimeout = 30 * time.Second

	// minSummaryLength below which an oracle result counts as degenerate.
	minSummaryLength = 10
)

// Orchestrator owns the compression decision and the oracle call.
type Orchestrator struct {
	oracle   oracle.Summarizer
	logDir   string
	timeout  time.Duration
	minLines int
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithTimeout overrides the oracle call timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithMinLines overrides the auto-compression line threshold.
func WithMinLines(n int) Option {
	return func(o *Orchestrator) { o.minLines = n }
}

// New creates an orchestrator persisting raw output artifacts under
// logDir. A nil summarizer disables compression entirely.
func New(summarizer oracle.Summarizer, logDir string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		oracle:   summarizer,
		logDir:   logDir,
		timeout:  DefaultTimeout,
		minLines: DefaultMinLines,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process returns the final output text for a finished command. force is
// tri-state: true compresses regardless of classification, false
// suppresses compression, nil defers to the verbose catalog and line
// threshold.
func (o *Orchestrator) Process(ctx context.Context, command, output string, exitCode int, duration float64, force *bool) string {
	lines := countLines(output)
	if !o.shouldCompress(command, lines, force) {
		return output
	}

	// The raw output hits disk before the oracle is consulted so it
	// survives any oracle failure.
	artifact, err := o.saveArtifact(output)
	if err != nil {
		logging.Warn().Err(err).Msg("could not persist raw output, skipping compression")
		return output
	}

	req := oracle.Request{
		Command:      command,
		ExitCode:     exitCode,
		Output:       output,
		Instructions: buildInstructions(command, exitCode, lines, output),
	}

	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	summary, err := o.oracle.Summarize(cctx, req)
	summary = strings.TrimSpace(summary)

	if err != nil || len(summary) < minSummaryLength {
		if err != nil {
			logging.Warn().Err(err).Str("command", command).Msg("output compression failed")
		} else {
			logging.Warn().Str("command", command).Msg("summarizer returned degenerate output")
		}
		return failureBanner(artifact) + "\n\n" + output
	}

	logging.Debug().Int("original_lines", lines).Str("artifact", artifact).
		Msg("output compressed")
	return successBanner(lines, exitCode, duration, artifact) + "\n\n" + summary
}

// shouldCompress applies the decision rule: forced wins, suppression
// wins, otherwise a verbose-classified command with enough output.
func (o *Orchestrator) shouldCompress(command string, lines int, force *bool) bool {
	if o.oracle == nil {
		return false
	}
	if force != nil {
		return *force
	}
	return IsVerbose(command) && lines >= o.minLines
}

// saveArtifact writes the raw output to a timestamped file under the log
// directory, creating it if absent.
func (o *Orchestrator) saveArtifact(output string) (string, error) {
	if err := os.MkdirAll(o.logDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	name := fmt.Sprintf("cmd-output-%s-%s.log",
		time.Now().UTC().Format("20060102T150405"), ulid.Make())
	path := filepath.Join(o.logDir, name)

	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}

func successBanner(lines, exitCode int, duration float64, artifact string) string {
	return fmt.Sprintf("[Compressed output: %d lines | exit %d | %.2fs | full output: %s]",
		lines, exitCode, duration, artifact)
}

func failureBanner(artifact string) string {
	return fmt.Sprintf("[Output compression failed, complete original output follows | saved: %s]", artifact)
}

func countLines(output string) int {
	if output == "" {
		return 0
	}
	return len(strings.Split(strings.TrimRight(output, "\n"), "\n"))
}
