// Package files provides the file helpers used by the assistant: reading documents
// into a session, writing files on behalf of the model and copying documents into
// the knowledge base directory.
//
// All paths handed in by users or the model must be absolute.
package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrPathNotAbsolute is returned when a relative path is supplied.
	ErrPathNotAbsolute = errors.New("file path must be absolute")

	// ErrFileNotFound is returned when the file to read or copy does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotRegularFile is returned when the path names a directory or device.
	ErrNotRegularFile = errors.New("not a regular file")
)

// ReadFile returns the contents of the file at path.
func ReadFile(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %s", ErrPathNotAbsolute, path)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes content to path, replacing any existing file and creating
// missing parent directories.
func WriteFile(path, content string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%w: %s", ErrPathNotAbsolute, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// AddToKnowledgeBase copies the file at src into kbDir, creating kbDir if needed.
// The copy keeps the source's base name and replaces a file of the same name.
// It returns the base name of the copied file.
func AddToKnowledgeBase(src, kbDir string) (string, error) {
	if !filepath.IsAbs(src) {
		return "", fmt.Errorf("%w: %s", ErrPathNotAbsolute, src)
	}

	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, src)
	}
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegularFile, src)
	}

	if err := os.MkdirAll(kbDir, 0755); err != nil {
		return "", fmt.Errorf("could not create knowledge base directory at %s: %w", kbDir, err)
	}

	name := filepath.Base(src)
	if err := copyFile(src, filepath.Join(kbDir, name), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("could not copy file: %w", err)
	}
	return name, nil
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
