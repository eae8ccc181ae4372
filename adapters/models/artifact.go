package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pravaah/domain/core"
)

// loadArtifact reads and decodes one JSON model artifact from the
// artifacts directory. Missing or corrupt artifacts surface as
// ErrModelUnavailable so the caller can degrade to a notice instead of
// crashing the dashboard.
func loadArtifact(dir, name string, v interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return core.NewModelUnavailableError(name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return core.NewModelUnavailableError(name, fmt.Errorf("corrupt artifact: %w", err))
	}
	return nil
}
