package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveChart writes a rendered chart to path, overwriting any previous file.
// The parent directory is created when missing.
func SaveChart(path string, data []byte) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}
