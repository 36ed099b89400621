package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileBlobs keeps each key in <Dir>/<key>.json.
type FileBlobs struct {
	Dir string
}

func NewFileBlobs(dir string) *FileBlobs {
	return &FileBlobs{Dir: dir}
}

func (b *FileBlobs) path(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

func (b *FileBlobs) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes through a temp file and rename so readers never see a torn document.
func (b *FileBlobs) Put(_ context.Context, key string, data []byte) error {
	return writeFileAtomic(b.Dir, key+".json", data)
}

func (b *FileBlobs) Close() error { return nil }
