// Package permission decides whether a shell command may run on behalf of
// the agent, and records the grants that make future commands runnable.
//
// # Resolution
//
// Resolve classifies a command against four sources, in order, first match
// wins:
//
//  1. Safe catalog: read-only commands (ls, git status, ...) are allowed
//     without consulting any store.
//  2. One-time grants: an exact-string allowance consumed atomically on
//     first use.
//  3. Durable rules: project-scoped allow rules persisted in the project's
//     settings.local.json.
//  4. Otherwise the command is denied. A denial is a Decision value, not
//     an error; it carries the command and its grant prefix so callers can
//     offer both remediation paths.
//
// # Durable rules
//
// A durable rule allows a whole command-prefix family, where the prefix is
// the first two whitespace tokens of a command ("npm install", "git push").
// The canonical written form is
//
//	Bash(command:npm install *)
//
// Matching additionally accepts exact-command rules, legacy single-token
// rules, and externally authored "Bash(npm install:*)" rules. Matchers are
// an ordered list, so new rule shapes slot in without touching callers.
//
// # Storage
//
// Both stores live behind the kvstore.Store interface. Malformed persisted
// data is treated as an empty store on read, never surfaced as an error.
package permission
