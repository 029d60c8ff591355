package workspace

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/casdoor/oss"
	"github.com/pkg/errors"
)

// GetFullPath returns the full path from absolute / relative path.
func (w *Workspace) GetFullPath(p string) string {
	fp := p
	if !strings.HasPrefix(p, w.Folder) {
		fp, _ = filepath.Abs(filepath.Join(w.Folder, p))
	}
	return fp
}

// Get receives a file with the given path.
func (w *Workspace) Get(p string) (*os.File, error) {
	return os.Open(w.GetFullPath(p))
}

// GetStream gets a file as a stream.
func (w *Workspace) GetStream(p string) (io.ReadCloser, error) {
	return os.Open(w.GetFullPath(p))
}

// Put stores the reader into the given path.
func (w *Workspace) Put(p string, r io.Reader) (*oss.Object, error) {
	fp := w.GetFullPath(p)
	if err := os.MkdirAll(filepath.Dir(fp), os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "failed to create directories for file path")
	}

	dst, err := os.Create(fp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file")
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		return nil, errors.Wrap(err, "failed to copy data to file")
	}

	return &oss.Object{Path: p, Name: filepath.Base(p), StorageInterface: w}, nil
}

// Delete deletes a file.
func (w *Workspace) Delete(p string) error {
	return os.Remove(w.GetFullPath(p))
}

// List lists the files below p recursively. Object paths are relative to p
// and use forward slashes.
func (w *Workspace) List(p string) ([]*oss.Object, error) {
	var (
		objects []*oss.Object
		fp      = w.GetFullPath(p)
	)

	err := filepath.Walk(fp, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == fp || info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(fp, path)
		if err != nil {
			return err
		}
		mt := info.ModTime()
		objects = append(objects, &oss.Object{
			Path:             filepath.ToSlash(rel),
			Name:             info.Name(),
			LastModified:     &mt,
			StorageInterface: w,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list files")
	}

	return objects, nil
}

// GetEndpoint gets the endpoint. For the workspace, the endpoint is "/".
func (w *Workspace) GetEndpoint() string {
	return "/"
}

// GetURL gets the public accessible URL.
func (w *Workspace) GetURL(p string) (string, error) {
	return "/" + strings.TrimPrefix(filepath.ToSlash(p), "/"), nil
}
