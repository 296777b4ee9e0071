package app

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// sampleCatalog is a small demo catalog written at config init so the
// tool works out of the box. Users point catalog_path at their real
// catalog to replace it.
//
//go:embed sample_catalog.json
var sampleCatalog []byte

// WriteSampleCatalog writes the bundled demo catalog to path unless a
// file already exists there. Returns whether a file was written.
func WriteSampleCatalog(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("creating catalog directory: %w", err)
	}
	if err := os.WriteFile(path, sampleCatalog, 0644); err != nil {
		return false, fmt.Errorf("writing sample catalog: %w", err)
	}
	return true, nil
}
