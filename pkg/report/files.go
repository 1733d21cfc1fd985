package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devicelab-dev/flowdigest/pkg/core"
)

// ensureDir creates a directory if it does not exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}

// atomicWrite writes data to a temp file in the target directory and renames
// it into place, so readers never observe a half-written artifact.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteFile atomically writes data to path. Failures are reported as
// core.ErrWriteOutput.
func WriteFile(path string, data []byte) error {
	if err := atomicWrite(path, data); err != nil {
		return core.ErrWriteOutput.
			WithMessage(fmt.Sprintf("write %s", path)).
			WithCause(err)
	}
	return nil
}
