package permission

import "strings"

// safeCommands lists read-only operations that run without a grant.
// Multi-word entries pin a specific subcommand ("git status"); single-word
// entries allow the whole tool. Matching inspects only the leading clause
// of a compound command; later clauses after a separator are not
// re-verified.
var safeCommands = []string{
	"ls",
	"pwd",
	"cat",
	"head",
	"tail",
	"grep",
	"rg",
	"find",
	"which",
	"whoami",
	"id",
	"date",
	"wc",
	"du",
	"df",
	"ps",
	"env",
	"uname",
	"stat",
	"file",
	"uptime",
	"hostname",
	"git status",
	"git log",
	"git diff",
	"git branch",
	"git remote -v",
}

// matchSafeCatalog returns the catalog entry allowing command, if any.
// A command matches when it equals an entry, starts with the entry plus a
// space, or its first token equals an entry.
func matchSafeCatalog(command string) (string, bool) {
	tok := firstToken(command)
	for _, entry := range safeCommands {
		if command == entry || strings.HasPrefix(command, entry+" ") {
			return entry, true
		}
		if tok == entry {
			return entry, true
		}
	}
	return "", false
}
