package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		command  string
		expected string
	}{
		{"npm install lodash", "npm install"},
		{"npm install", "npm install"},
		{"ls", "ls"},
		{"git   push   origin main", "git push"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.expected, Prefix(tt.command))
		})
	}
}

func TestCanonicalRuleRoundTrip(t *testing.T) {
	// A freshly granted rule must allow every command in its prefix family.
	rule := CanonicalRule("npm install")
	assert.Equal(t, "Bash(command:npm install *)", rule)

	_, ok := matchRules([]string{rule}, "npm install lodash")
	assert.True(t, ok)
	_, ok = matchRules([]string{rule}, "npm install")
	assert.True(t, ok, "the bare prefix is part of its own family")
}

func TestMatchRules(t *testing.T) {
	tests := []struct {
		name    string
		rules   []string
		command string
		matches bool
	}{
		{
			name:    "exact command rule",
			rules:   []string{"Bash(command:git push origin main)"},
			command: "git push origin main",
			matches: true,
		},
		{
			name:    "exact command rule rejects different args",
			rules:   []string{"Bash(command:git push origin main)"},
			command: "git push origin dev",
			matches: false,
		},
		{
			name:    "prefix family rule",
			rules:   []string{"Bash(command:npm install *)"},
			command: "npm install lodash",
			matches: true,
		},
		{
			name:    "prefix family rule rejects sibling subcommand",
			rules:   []string{"Bash(command:npm install *)"},
			command: "npm remove lodash",
			matches: false,
		},
		{
			name:    "legacy single token rule",
			rules:   []string{"Bash(command:npm *)"},
			command: "npm remove lodash",
			matches: true,
		},
		{
			name:    "colon wildcard matches prefix plus space",
			rules:   []string{"Bash(npm install:*)"},
			command: "npm install lodash",
			matches: true,
		},
		{
			name:    "colon wildcard matches prefix exactly",
			rules:   []string{"Bash(npm install:*)"},
			command: "npm install",
			matches: true,
		},
		{
			name:    "colon wildcard rejects partial token",
			rules:   []string{"Bash(npm ins:*)"},
			command: "npm install",
			matches: false,
		},
		{
			name:    "malformed rule is skipped",
			rules:   []string{"not-a-rule", "Bash(command:go test *)"},
			command: "go test ./...",
			matches: true,
		},
		{
			name:    "no rules",
			rules:   nil,
			command: "rm -rf /",
			matches: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := matchRules(tt.rules, tt.command)
			assert.Equal(t, tt.matches, ok)
		})
	}
}

func TestMatchSafeCatalog(t *testing.T) {
	tests := []struct {
		command string
		safe    bool
	}{
		{"ls", true},
		{"ls -la /tmp", true},
		{"git status", true},
		{"git status --short", true},
		{"git push origin main", false},
		{"echo hello", false},
		{"rm -rf /", false},
		{"cat /etc/hosts", true},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			_, ok := matchSafeCatalog(tt.command)
			assert.Equal(t, tt.safe, ok)
		})
	}
}
