// Package fsutil provides the recursive copy primitives the profile store is
// built on. All operations go through billy.Filesystem so they run unchanged
// against the OS filesystem and the in-memory one used in tests.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// Exists reports whether path exists on fs.
func Exists(fs billy.Basic, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(fs billy.Basic, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// CopyAny copies the file or directory tree at src to dst.
func CopyAny(fs billy.Filesystem, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if info.IsDir() {
		return CopyDir(fs, src, dst)
	}
	return CopyFile(fs, src, dst)
}

// CopyDir recursively copies the directory tree at src into dst, creating
// dst if needed. Files already present in dst are overwritten; extra files
// in dst are left alone, so copying into an existing tree merges.
func CopyDir(fs billy.Filesystem, src, dst string) error {
	if err := fs.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return fmt.Errorf("listing %s: %w", src, err)
	}

	for _, entry := range entries {
		srcPath := fs.Join(src, entry.Name())
		dstPath := fs.Join(dst, entry.Name())
		if entry.IsDir() {
			err = CopyDir(fs, srcPath, dstPath)
		} else {
			err = CopyFile(fs, srcPath, dstPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CopyFile copies a single file, creating the destination's parent directory
// if needed and truncating any existing destination.
func CopyFile(fs billy.Filesystem, src, dst string) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}
