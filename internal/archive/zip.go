// Package archive packs a directory tree into dotkeep's portable export
// container and unpacks it back. The container is an ordinary zip file;
// deflate goes through klauspost/compress on both sides.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/klauspost/compress/flate"
)

// Extension is the file extension of exported profiles.
const Extension = ".dkp"

// zipMagic is the local-file-header signature every zip archive starts with.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// Pack writes the tree rooted at root into a zip archive at target.
// Directory entries are implicit; only files are stored.
func Pack(fs billy.Filesystem, root, target string) (err error) {
	out, err := fs.Create(target)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", target, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	walkErr := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}

		in, err := fs.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		_, err = io.Copy(w, in)
		return err
	})
	if walkErr != nil {
		return fmt.Errorf("packing %s: %w", root, walkErr)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive %s: %w", target, err)
	}
	return nil
}

// Unpack extracts the archive at path into dir.
func Unpack(fs billy.Filesystem, path, dir string) error {
	in, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer in.Close()

	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	zr, err := zip.NewReader(in, info.Size())
	if err != nil {
		return fmt.Errorf("reading archive %s: %w", path, err)
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	for _, zf := range zr.File {
		if err := extract(fs, zf, dir); err != nil {
			return fmt.Errorf("extracting %s from %s: %w", zf.Name, path, err)
		}
	}
	return nil
}

func extract(fs billy.Filesystem, zf *zip.File, dir string) error {
	name := filepath.FromSlash(zf.Name)
	if filepath.IsAbs(name) || strings.Contains(name, "..") {
		return fmt.Errorf("refusing unsafe archive member %q", zf.Name)
	}

	target := fs.Join(dir, name)
	if zf.FileInfo().IsDir() {
		return fs.MkdirAll(target, 0o755)
	}

	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	in, err := zf.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// IsArchive reports whether the file at path starts with the zip signature.
func IsArchive(fs billy.Basic, path string) bool {
	f, err := fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return string(head) == string(zipMagic)
}
