// Package storage persists uploaded point photos on a filesystem and serves
// them back under the media base URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const maxBaseNameLength = 64

// ErrInvalidName is returned for names that would escape the upload directory.
var ErrInvalidName = errors.New("invalid stored file name")

// DiskStore writes photos into dir on the wrapped afero.Fs.
type DiskStore struct {
	fs  afero.Fs
	dir string
}

// NewDiskStore prepares dir on fs and returns a store rooted there.
func NewDiskStore(fs afero.Fs, dir string) (*DiskStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &DiskStore{fs: fs, dir: dir}, nil
}

// NewOSDiskStore is NewDiskStore on the real operating-system filesystem.
func NewOSDiskStore(dir string) (*DiskStore, error) {
	return NewDiskStore(afero.NewOsFs(), dir)
}

// Save copies r into a new file named after originalName and returns the
// stored filename. The name is unique per call and safe to append to a URL.
func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := GenerateName(originalName)
	full := path.Join(s.dir, name)

	f, err := s.fs.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return name, nil
}

// Provision copies every regular file at the root of src into the upload
// directory unless a file with that name is already there, and returns how
// many were written. It ships the catalog icons on a fresh deployment without
// overwriting replacements made by operators.
func (s *DiskStore) Provision(ctx context.Context, src fs.FS) (int, error) {
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		return 0, fmt.Errorf("read provision source: %w", err)
	}

	written := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if !e.Type().IsRegular() {
			continue
		}
		full := path.Join(s.dir, e.Name())
		ok, err := afero.Exists(s.fs, full)
		if err != nil {
			return written, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		if ok {
			continue
		}
		if err := s.copyIn(src, e.Name(), full); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (s *DiskStore) copyIn(src fs.FS, name, full string) error {
	f, err := src.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close() //nolint:errcheck

	if err := afero.WriteReader(s.fs, full, f); err != nil {
		_ = s.fs.Remove(full)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Exists reports whether a stored file called name is present.
func (s *DiskStore) Exists(_ context.Context, name string) (bool, error) {
	if !validStoredName(name) {
		return false, ErrInvalidName
	}
	ok, err := afero.Exists(s.fs, path.Join(s.dir, name))
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return ok, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (s *DiskStore) Remove(_ context.Context, name string) error {
	if !validStoredName(name) {
		return ErrInvalidName
	}
	if err := s.fs.Remove(path.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Ping checks that the upload directory is still reachable.
func (s *DiskStore) Ping(_ context.Context) error {
	ok, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return fmt.Errorf("storage ping: %w", err)
	}
	if !ok {
		return fmt.Errorf("storage ping: %s is not a directory", s.dir)
	}
	return nil
}

// FileSystem exposes the upload directory for http.FileServer.
func (s *DiskStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.dir)
}

// GenerateName returns "<uuid>-<sanitized original>".
func GenerateName(originalName string) string {
	return uuid.NewString() + "-" + SanitizeName(originalName)
}

// SanitizeName reduces an uploaded filename to [A-Za-z0-9._-], keeping the
// extension. Path components are dropped and whitespace becomes '-'.
func SanitizeName(originalName string) string {
	base := path.Base(strings.ReplaceAll(originalName, `\`, "/"))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}

	name := strings.TrimLeft(b.String(), ".-")
	if name == "" {
		return "photo"
	}
	if len(name) > maxBaseNameLength {
		ext := path.Ext(name)
		if len(ext) >= maxBaseNameLength {
			ext = ""
		}
		name = name[:maxBaseNameLength-len(ext)] + ext
	}
	return name
}

func validStoredName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
