// Package ops holds maintenance operations on the data directory
// itself: archiving and restoring the whole store as a tar.gz.
package ops

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveName builds the default timestamped backup file name.
func ArchiveName(now time.Time) string {
	return "homekeep-backup-" + now.Format("20060102-150405") + ".tar.gz"
}

// Backup archives the data directory into a gzipped tarball. Symlinks
// are skipped so a restore never writes outside the target.
func Backup(dataDir, archivePath string) error {
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	if dataDir == "" || archivePath == "" {
		return errors.New("data directory and archive path are required")
	}
	info, err := os.Stat(dataDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dataDir)
	}
	if err := os.MkdirAll(filepath.Dir(archivePath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	defer gz.Close()
	tw := tar.NewWriter(gz)
	defer tw.Close()

	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == dataDir || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(dataDir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
}

// Restore unpacks a backup archive into the data directory,
// overwriting existing files. Entry paths are validated against
// traversal before anything is written.
func Restore(archivePath, dataDir string) error {
	archivePath = filepath.Clean(strings.TrimSpace(archivePath))
	dataDir = filepath.Clean(strings.TrimSpace(dataDir))
	if archivePath == "" || dataDir == "" {
		return errors.New("archive path and data directory are required")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		rel, err := safeRelPath(hdr.Name)
		if err != nil {
			return err
		}
		out := filepath.Join(dataDir, rel)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(out, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return err
			}
			dst, err := os.OpenFile(out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(dst, tr); err != nil {
				_ = dst.Close()
				return err
			}
			if err := dst.Close(); err != nil {
				return err
			}
		}
	}
}

func safeRelPath(name string) (string, error) {
	name = filepath.Clean(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." ||
		filepath.IsAbs(name) ||
		strings.HasPrefix(name, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe archive entry: %q", name)
	}
	return name, nil
}
