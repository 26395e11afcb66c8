package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/atomicstack/gametools-console/internal/data/wire"
	"github.com/atomicstack/gametools-console/internal/logging/events"
)

// FileStore keeps the settings document on disk as indented JSON. Comments
// and trailing commas are tolerated when reading.
type FileStore struct {
	Path string
}

// Load returns the stored document percent-encoded, or "" when no file
// exists yet.
func (f FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Path, err)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, jsonc.ToJSON(data)); err != nil {
		return "", fmt.Errorf("%s: %w: %v", f.Path, ErrInvalidDocument, err)
	}
	return wire.EscapeURIComponent(compact.String()), nil
}

// Save writes a percent-encoded document to disk, pretty-printed.
func (f FileStore) Save(encoded string) error {
	text, err := wire.UnescapeURIComponent(encoded)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return f.SaveJSON([]byte(text))
}

// SaveJSON writes a plain JSON document to disk, pretty-printed.
func (f FileStore) SaveJSON(data []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	pretty.WriteByte('\n')
	if err := os.WriteFile(f.Path, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	events.Settings.Save(pretty.Len(), f.Path)
	return nil
}
