package compress

import "strings"

// verboseTools are commands known to flood the transcript: build tools,
// package managers, container and infra tools, test runners.
var verboseTools = []string{
	"npm",
	"yarn",
	"pnpm",
	"bun",
	"pip",
	"pip3",
	"poetry",
	"cargo",
	"go",
	"make",
	"cmake",
	"mvn",
	"gradle",
	"gradlew",
	"docker",
	"podman",
	"kubectl",
	"helm",
	"terraform",
	"apt",
	"apt-get",
	"dnf",
	"brew",
	"composer",
	"bundle",
	"tsc",
	"webpack",
	"vite",
	"jest",
	"pytest",
}

var segmentSplitter = strings.NewReplacer(
	"&&", "\n",
	"||", "\n",
	";", "\n",
	"|", "\n",
)

// IsVerbose reports whether any segment of a compound command starts with
// a known high-output tool. Commands are tokenized heuristically, never
// parsed: the split happens on sequencing, pipe and conjunction operators,
// and only each segment's first token is inspected. Hyphenated variants
// count too, so "docker-compose" is verbose via "docker".
func IsVerbose(command string) bool {
	for _, segment := range strings.Split(segmentSplitter.Replace(command), "\n") {
		fields := strings.Fields(segment)
		if len(fields) == 0 {
			continue
		}
		tok := fields[0]
		for _, tool := range verboseTools {
			if tok == tool || strings.HasPrefix(tok, tool+"-") {
				return true
			}
		}
	}
	return false
}
