package export

import (
	"context"
	"path/filepath"

	"github.com/pt428/recipes/internal/filex"
)

// DirSink writes documents into a local directory.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed.
func NewDirSink(dir string) (*DirSink, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &DirSink{dir: abs}, nil
}

func (s *DirSink) Put(_ context.Context, name string, data []byte, _ string) error {
	return filex.WriteFileAtomic(filepath.Join(s.dir, filepath.Base(name)), data)
}

func (s *DirSink) Location(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}
