package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"rgehrsitz/gact/internal/rules"
)

// fileVersion is bumped when the catalog file layout changes.
const fileVersion = 1

// File is the on-disk form of an assembled catalog.
type File struct {
	Version  int             `json:"version"`
	Actions  []*rules.Action `json:"actions"`
	Disabled []string        `json:"disabled"`
}

// WriteFile stores c and the disabled ids at path.
func WriteFile(path string, c *Catalog, disabled []string) error {
	if disabled == nil {
		disabled = []string{}
	}
	data, err := json.MarshalIndent(File{Version: fileVersion, Actions: c.Actions(), Disabled: disabled}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// ReadFile loads a catalog written by WriteFile.
func ReadFile(path string) (*Catalog, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("decode catalog: %w", err)
	}
	if file.Version != fileVersion {
		return nil, nil, fmt.Errorf("unsupported catalog version %d", file.Version)
	}
	return New(nil, file.Actions), file.Disabled, nil
}
