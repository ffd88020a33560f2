package permission

import (
	"fmt"
	"strings"
)

// CanonicalRule builds the durable rule string written for a prefix.
// The same form is what the prefix-family matcher accepts, so a grant is
// always honored by the next resolution.
func CanonicalRule(prefix string) string {
	return fmt.Sprintf("Bash(command:%s *)", prefix)
}

// ruleBody strips the Bash(...) envelope from a rule string.
func ruleBody(rule string) (string, bool) {
	if !strings.HasPrefix(rule, "Bash(") || !strings.HasSuffix(rule, ")") {
		return "", false
	}
	return rule[len("Bash(") : len(rule)-1], true
}

// ruleMatcher reports whether one persisted rule allows a command.
type ruleMatcher struct {
	name  string
	match func(body, command string) bool
}

// ruleMatchers are evaluated in order per rule, first match wins. New rule
// shapes are added here without touching the resolver.
var ruleMatchers = []ruleMatcher{
	{
		// Bash(command:git push origin main), the exact command.
		name: "exact",
		match: func(body, command string) bool {
			return body == "command:"+command
		},
	},
	{
		// Bash(command:npm install *), the command's own two-token prefix.
		name: "prefix-family",
		match: func(body, command string) bool {
			return body == "command:"+Prefix(command)+" *"
		},
	},
	{
		// Bash(command:npm *), legacy single-token rules still honored.
		name: "legacy-token",
		match: func(body, command string) bool {
			return body == "command:"+firstToken(command)+" *"
		},
	},
	{
		// Bash(npm install:*), externally authored. Matched by prefix
		// equality or prefix plus space; read-compatible, never written.
		name: "colon-wildcard",
		match: func(body, command string) bool {
			if strings.HasPrefix(body, "command:") || !strings.HasSuffix(body, ":*") {
				return false
			}
			p := strings.TrimSuffix(body, ":*")
			if p == "" {
				return false
			}
			return command == p || strings.HasPrefix(command, p+" ")
		},
	},
}

// matchRules returns the first persisted rule allowing command.
func matchRules(rules []string, command string) (string, bool) {
	for _, rule := range rules {
		body, ok := ruleBody(strings.TrimSpace(rule))
		if !ok {
			continue
		}
		for _, m := range ruleMatchers {
			if m.match(body, command) {
				return rule, true
			}
		}
	}
	return "", false
}
