package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var ErrEmptyPath = errors.New("output path is empty")

func EnsureDir(path string, perm os.FileMode) error {
	if err := os.MkdirAll(path, perm); err != nil {
		return err
	}
	return os.Chmod(path, perm)
}

// AtomicWriteFile writes to a temp file in the target directory and renames it into place.
func AtomicWriteFile(path string, perm os.FileMode, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp.%d", filepath.Base(path), time.Now().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
