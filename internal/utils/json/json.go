package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile decodes the JSON document at path into out. Errors from opening the file are returned
// unwrapped so callers can test them with errors.Is(err, fs.ErrNotExist).
func ReadFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

// WriteFile writes v to path as indented JSON, creating parent directories and replacing any
// existing file.
func WriteFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(b, '\n'), 0o600)
}
