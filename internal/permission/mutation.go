package permission

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/daliovic/compressed-shell-mcp-server/internal/kvstore"
	"github.com/daliovic/compressed-shell-mcp-server/internal/logging"
)

// GrantOnce records a single-use allowance for the exact command. It
// reports whether a new entry was added; granting an already pending
// command is a no-op.
func (r *Resolver) GrantOnce(ctx context.Context, command string) (bool, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return false, &ValidationError{Field: "command"}
	}

	added := false
	err := r.store.Update(ctx, r.pendingPath, func(data []byte) ([]byte, error) {
		pending := decodePending(data)
		for _, c := range pending.Commands {
			if c == command {
				return nil, kvstore.ErrNoChange
			}
		}
		added = true
		pending.Commands = append(pending.Commands, command)
		return json.MarshalIndent(pending, "", "  ")
	})
	if err != nil {
		return false, err
	}

	if added {
		logging.Info().Str("command", command).Msg("one-time permission granted")
	}
	return added, nil
}

// GrantDurable appends the canonical allow rule for prefix to the
// project's settings.local.json, creating the file on demand. It returns
// the rule string and whether it was newly added. Fields in the settings
// file other than the allow list are preserved.
func (r *Resolver) GrantDurable(ctx context.Context, prefix, projectDir string) (string, bool, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", false, &ValidationError{Field: "prefix"}
	}
	if projectDir == "" {
		return "", false, &ValidationError{Field: "projectDir"}
	}

	rule := CanonicalRule(prefix)
	added := false

	err := r.store.Update(ctx, r.SettingsPath(projectDir), func(data []byte) ([]byte, error) {
		settings := decodeSettingsObject(data)

		perms, ok := settings["permissions"].(map[string]any)
		if !ok {
			perms = map[string]any{}
			settings["permissions"] = perms
		}

		allow, _ := perms["allow"].([]any)
		for _, entry := range allow {
			if s, ok := entry.(string); ok && s == rule {
				return nil, kvstore.ErrNoChange
			}
		}

		added = true
		perms["allow"] = append(allow, rule)
		return json.MarshalIndent(settings, "", "  ")
	})
	if err != nil {
		return "", false, err
	}

	if added {
		logging.Info().Str("rule", rule).Str("project", projectDir).
			Msg("durable permission granted")
	}
	return rule, added, nil
}

// decodeSettingsObject parses a settings file as a generic object so
// sibling settings survive a rewrite. Corrupt data starts over empty.
func decodeSettingsObject(data []byte) map[string]any {
	settings := map[string]any{}
	if len(data) == 0 {
		return settings
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return map[string]any{}
	}
	return settings
}
