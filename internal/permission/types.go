package permission

import (
	"fmt"
	"strings"
)

// Source identifies which allow path matched during resolution.
type Source string

const (
	SourceNone    Source = ""
	SourceCatalog Source = "catalog"
	SourceOnce    Source = "one-time"
	SourceDurable Source = "durable"
)

// Decision is the outcome of resolving one command.
type Decision struct {
	Allowed     bool
	Source      Source
	MatchedRule string // rule or catalog entry that matched, empty on deny
	Command     string // trimmed command the decision applies to
	Prefix      string // grant unit offered in denial remediation
}

// PendingCommands is the persisted schema of the one-time store.
type PendingCommands struct {
	Commands []string `json:"commands"`
}

// LocalSettings is the read schema of a project's settings.local.json.
// Only the allow list is interpreted here; unknown fields are preserved
// by the mutation path.
type LocalSettings struct {
	Permissions struct {
		Allow []string `json:"allow"`
	} `json:"permissions"`
}

// ValidationError reports a missing or empty required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// Prefix returns the grant unit for a command: its first two whitespace
// tokens, or the sole token when only one exists.
func Prefix(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	if len(fields) == 1 {
		return fields[0]
	}
	return fields[0] + " " + fields[1]
}

func firstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
