// Package disk stores uploads in a local directory. It is meant for
// development; the directory is served by the HTTP router under /uploads/.
package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yasohm/formulaire/internal/intake/blob"
)

// URLPrefix is the path under which the router serves the upload directory.
const URLPrefix = "/uploads/"

type Store struct {
	dir     string
	baseURL string
}

// New creates dir if needed. When baseURL is empty, references are relative
// paths ("uploads/<name>").
func New(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory holding the uploads.
func (s *Store) Dir() string { return s.dir }

func (s *Store) Put(_ context.Context, obj blob.Object) (string, error) {
	if !blob.ValidName(obj.Name) {
		return "", fmt.Errorf("disk: invalid object name %q", obj.Name)
	}

	p := filepath.Join(s.dir, obj.Name)
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", blob.ErrExists
		}
		return "", err
	}

	if _, err := f.Write(obj.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(p)
		return "", err
	}

	return s.ref(obj.Name), nil
}

func (s *Store) Delete(_ context.Context, ref string) error {
	name, err := s.nameOf(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("disk: %s is not a directory", s.dir)
	}
	return nil
}

func (s *Store) ref(name string) string {
	if s.baseURL == "" {
		return strings.TrimPrefix(URLPrefix, "/") + name
	}
	return s.baseURL + URLPrefix + name
}

func (s *Store) nameOf(ref string) (string, error) {
	p := ref
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		p = u.Path
	}
	p = "/" + strings.TrimPrefix(p, "/")
	if !strings.HasPrefix(p, URLPrefix) {
		return "", fmt.Errorf("%w: %q", blob.ErrForeignRef, ref)
	}

	name := path.Base(p)
	if !blob.ValidName(name) {
		return "", fmt.Errorf("%w: %q", blob.ErrForeignRef, ref)
	}
	return name, nil
}
