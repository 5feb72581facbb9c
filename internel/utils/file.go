package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateFile creates filename, making any missing parent directories.
func CreateFile(filename string) (*os.File, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// WriteTxt writes one line per element, rendered by f.
func WriteTxt[V, T any](filename string, data []T, f func(T) V) error {

	file, err := CreateFile(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, element := range data {
		_, err := fmt.Fprintln(file, f(element))
		if err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
	}

	return file.Close()
}
