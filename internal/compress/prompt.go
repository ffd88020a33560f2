package compress

import (
	"fmt"
	"strings"
)

// buildInstructions produces the fixed payload handed to the summarizer.
// The preserve and remove lists and the 15-line budget are part of the
// orchestration contract, not tunables.
func buildInstructions(command string, exitCode, lineCount int, output string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Compress the output of a shell command.\n\n")
	fmt.Fprintf(&b, "Command: %s\n", command)
	fmt.Fprintf(&b, "Exit code: %d\n", exitCode)
	fmt.Fprintf(&b, "Original length: %d lines\n\n", lineCount)

	b.WriteString(`ALWAYS PRESERVE:
- errors and warnings, verbatim
- the final exit/status outcome
- file paths that were created, modified or deleted
- counts (tests passed/failed, packages installed, files processed)
- timing information and durations
- version numbers

ALWAYS REMOVE:
- progress indicators and spinners
- percentage updates
- near-duplicate repeated lines
- decorative separators and banners
- informational lines that restate other lines

FORMAT:
- at most 15 lines
- first line starts with SUCCESS, FAILED or WARNING
- plain text only, no commentary about the compression itself

OUTPUT TO COMPRESS:
`)
	b.WriteString(output)

	return b.String()
}
