// Package settings persists the world scoped global action settings as JSON files.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"rgehrsitz/gact/internal/catalog"
	"rgehrsitz/gact/internal/preprocessor"
	"rgehrsitz/gact/internal/rules"

	"github.com/rs/zerolog/log"
)

// Setting keys, one file each.
const (
	KeyWorldActions    = "world_global_actions"
	KeyDisabledActions = "system_action_disabled"
	KeyGMActions       = "gm_actions"
)

// Store reads and writes settings under a directory.
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating it when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// read returns the raw setting, or nil when it was never written.
func (s *Store) read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read setting %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) write(key string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	log.Debug().Str("setting", key).Msg("Setting saved")
	return nil
}

// unwrapLegacy returns the inner array of a value stored as [[...]].
func unwrapLegacy(data []byte) []byte {
	var outer []json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil || len(outer) == 0 {
		return data
	}
	if bytes.HasPrefix(bytes.TrimSpace(outer[0]), []byte("[")) {
		return outer[0]
	}
	return data
}

// WorldActions returns the custom actions of the world.
func (s *Store) WorldActions() ([]*rules.Action, error) {
	data, err := s.read(KeyWorldActions)
	if err != nil || data == nil {
		return nil, err
	}
	actions, err := preprocessor.ParseActions(unwrapLegacy(data))
	if err != nil {
		return nil, fmt.Errorf("setting %s: %w", KeyWorldActions, err)
	}
	return actions, nil
}

func (s *Store) SetWorldActions(actions []*rules.Action) error {
	if actions == nil {
		actions = []*rules.Action{}
	}
	return s.write(KeyWorldActions, actions)
}

// DisabledActions returns the ids of disabled actions.
func (s *Store) DisabledActions() ([]string, error) {
	data, err := s.read(KeyDisabledActions)
	if err != nil || data == nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(unwrapLegacy(data), &ids); err != nil {
		return nil, fmt.Errorf("decode setting %s: %w", KeyDisabledActions, err)
	}
	return ids, nil
}

func (s *Store) SetDisabledActions(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.write(KeyDisabledActions, ids)
}

// GMActions returns the persisted GM toggle states.
func (s *Store) GMActions() ([]catalog.GMState, error) {
	data, err := s.read(KeyGMActions)
	if err != nil || data == nil {
		return nil, err
	}
	var states []catalog.GMState
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("decode setting %s: %w", KeyGMActions, err)
	}
	return states, nil
}

func (s *Store) SetGMActions(states []catalog.GMState) error {
	if states == nil {
		states = []catalog.GMState{}
	}
	return s.write(KeyGMActions, states)
}

// Catalog assembles the world catalog: builtins (when given) plus world actions.
func (s *Store) Catalog(builtins []*rules.Action) (*catalog.Catalog, error) {
	custom, err := s.WorldActions()
	if err != nil {
		return nil, err
	}
	return catalog.New(builtins, custom), nil
}

// Export writes the world actions as a JSON document.
func (s *Store) Export(w io.Writer) error {
	actions, err := s.WorldActions()
	if err != nil {
		return err
	}
	if actions == nil {
		actions = []*rules.Action{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(actions); err != nil {
		return fmt.Errorf("export world actions: %w", err)
	}
	return nil
}

// Import replaces the world actions with the document read from r. The
// document is validated before anything is written.
func (s *Store) Import(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	actions, err := preprocessor.LoadActions(data, preprocessor.NewLoadContext())
	if err != nil {
		return 0, fmt.Errorf("import world actions: %w", err)
	}
	if err := s.SetWorldActions(actions); err != nil {
		return 0, err
	}
	log.Info().Int("actions", len(actions)).Msg("World actions imported")
	return len(actions), nil
}
