package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// writeFileAtomic writes dir/name through a temp file and rename so readers
// never see a torn file. Temp files are dot-prefixed.
func writeFileAtomic(dir, name string, data []byte) error {
	dir = filepath.Clean(dir)
	if strings.TrimSpace(name) == "" {
		return errors.New("write file: missing name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, name))
}
