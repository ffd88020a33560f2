package permission

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/daliovic/compressed-shell-mcp-server/internal/kvstore"
	"github.com/daliovic/compressed-shell-mcp-server/internal/logging"
)

// SettingsFile is the durable rule store filename inside a project's
// settings directory.
const SettingsFile = "settings.local.json"

// Resolver classifies commands against the safe catalog, the one-time
// store and the durable rule store, and owns the grant operations that
// feed those stores.
type Resolver struct {
	store       kvstore.Store
	pendingPath string
	settingsDir string
}

// NewResolver creates a resolver. pendingPath locates the one-time store
// file; settingsDir is the per-project settings directory name holding
// settings.local.json.
func NewResolver(store kvstore.Store, pendingPath, settingsDir string) *Resolver {
	return &Resolver{
		store:       store,
		pendingPath: pendingPath,
		settingsDir: settingsDir,
	}
}

// SettingsPath returns the durable rule store path for a project.
func (r *Resolver) SettingsPath(projectDir string) string {
	return filepath.Join(projectDir, r.settingsDir, SettingsFile)
}

// Resolve decides whether command may run in projectDir. The only side
// effect is consuming a matching one-time grant. Denial is reported in
// the Decision, not as an error.
func (r *Resolver) Resolve(ctx context.Context, command, projectDir string) (Decision, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return Decision{}, &ValidationError{Field: "command"}
	}

	dec := Decision{Command: command, Prefix: Prefix(command)}

	if entry, ok := matchSafeCatalog(command); ok {
		dec.Allowed = true
		dec.Source = SourceCatalog
		dec.MatchedRule = entry
		return dec, nil
	}

	consumed, err := r.consumeOnce(ctx, command)
	if err != nil {
		return Decision{}, err
	}
	if consumed {
		dec.Allowed = true
		dec.Source = SourceOnce
		dec.MatchedRule = command
		return dec, nil
	}

	if projectDir != "" {
		rules := r.loadRules(ctx, projectDir)
		if rule, ok := matchRules(rules, command); ok {
			dec.Allowed = true
			dec.Source = SourceDurable
			dec.MatchedRule = rule
			return dec, nil
		}
	}

	return dec, nil
}

// consumeOnce removes command from the one-time store if present. Removal
// and persistence happen inside one atomic store update, so a consumed
// grant can never allow a second request and an unconsumed one is never
// lost.
func (r *Resolver) consumeOnce(ctx context.Context, command string) (bool, error) {
	found := false
	err := r.store.Update(ctx, r.pendingPath, func(data []byte) ([]byte, error) {
		pending := decodePending(data)
		remaining := pending.Commands[:0]
		for _, c := range pending.Commands {
			if !found && c == command {
				found = true
				continue
			}
			remaining = append(remaining, c)
		}
		if !found {
			return nil, kvstore.ErrNoChange
		}
		pending.Commands = remaining
		return json.MarshalIndent(pending, "", "  ")
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// loadRules reads the project's allow list. A missing or malformed file
// reads as empty, never as an error.
func (r *Resolver) loadRules(ctx context.Context, projectDir string) []string {
	data, err := r.store.Get(ctx, r.SettingsPath(projectDir))
	if err != nil {
		return nil
	}

	var settings LocalSettings
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		logging.Debug().Str("path", r.SettingsPath(projectDir)).Err(err).
			Msg("unreadable settings file, treating as empty")
		return nil
	}
	return settings.Permissions.Allow
}

// decodePending parses the one-time store, treating corrupt or missing
// data as an empty list.
func decodePending(data []byte) PendingCommands {
	var pending PendingCommands
	if len(data) == 0 {
		return pending
	}
	if err := json.Unmarshal(data, &pending); err != nil {
		return PendingCommands{}
	}
	return pending
}
