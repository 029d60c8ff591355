// Package workspace manages the per-calculation directory tree: one directory
// per calculation id holding the configuration document, the optional final
// state marker, the worker log and the result files.
package workspace

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/casdoor/oss"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// File names inside a calculation directory.
const (
	ConfigFile = "configuration.json"
	MarkerFile = "state.log"
	LogFile    = "modflow.log"

	// SuccessMarker is the marker content of a successfully finished calculation.
	SuccessMarker = "200"
)

var (
	// ErrClaimed is returned by Claim when the directory already exists.
	ErrClaimed = errors.New("calculation directory already claimed")
	// ErrInvalidName is returned for ids or file names that are not a single path element.
	ErrInvalidName = errors.New("invalid name")
)

var _ oss.StorageInterface = (*Workspace)(nil)

// Workspace is the local directory tree of calculations.
type Workspace struct {
	Folder  string
	Uploads string
}

// New creates a workspace rooted at folder, with uploads kept in uploads.
// Both folders are created when missing.
func New(folder, uploads string) (*Workspace, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get absolute path for workspace folder")
	}
	if err := os.MkdirAll(abs, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "failed to create workspace folder")
	}

	up, err := filepath.Abs(uploads)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get absolute path for uploads folder")
	}
	if err := os.MkdirAll(up, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "failed to create uploads folder")
	}

	return &Workspace{Folder: abs, Uploads: up}, nil
}

// ValidName reports whether name can be used as a single path element.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// Dir returns the directory of calculation id.
func (w *Workspace) Dir(id string) string {
	return filepath.Join(w.Folder, id)
}

// HasConfig reports whether the configuration document of id exists.
func (w *Workspace) HasConfig(id string) bool {
	if !ValidName(id) {
		return false
	}
	info, err := os.Stat(filepath.Join(w.Dir(id), ConfigFile))
	return err == nil && !info.IsDir()
}

// Marker returns the whitespace trimmed content of the final state marker.
// ok is false when there is no marker.
func (w *Workspace) Marker(id string) (marker string, ok bool, err error) {
	b, err := os.ReadFile(filepath.Join(w.Dir(id), MarkerFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "failed to read state marker")
	}
	return strings.TrimSpace(string(b)), true, nil
}

// Finished reports whether the marker of id equals the success code.
func (w *Workspace) Finished(id string) (bool, error) {
	marker, ok, err := w.Marker(id)
	if err != nil || !ok {
		return false, err
	}
	return marker == SuccessMarker, nil
}

// Purge removes the directory of id recursively.
func (w *Workspace) Purge(id string) error {
	if !ValidName(id) {
		return ErrInvalidName
	}
	if err := os.RemoveAll(w.Dir(id)); err != nil {
		return errors.Wrapf(err, "failed to purge calculation %s", id)
	}
	return nil
}

// Claim creates the directory of id. Exactly one of several concurrent
// callers succeeds; the others get ErrClaimed.
func (w *Workspace) Claim(id string) error {
	if !ValidName(id) {
		return ErrInvalidName
	}
	if err := os.Mkdir(w.Dir(id), os.ModePerm); err != nil {
		if os.IsExist(err) {
			return ErrClaimed
		}
		return errors.Wrapf(err, "failed to claim calculation %s", id)
	}
	return nil
}

// WriteConfig persists the configuration document of id into its claimed
// directory. The directory is not recreated if it has been removed since.
func (w *Workspace) WriteConfig(id string, doc []byte) error {
	if !ValidName(id) {
		return ErrInvalidName
	}
	if err := os.WriteFile(filepath.Join(w.Dir(id), ConfigFile), doc, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write configuration of %s", id)
	}
	return nil
}

// ReadConfig returns the configuration document of id.
func (w *Workspace) ReadConfig(id string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(w.Dir(id), ConfigFile))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read configuration")
	}
	return b, nil
}

// ReadLog returns the worker log of id, if any.
func (w *Workspace) ReadLog(id string) (string, bool) {
	b, err := os.ReadFile(filepath.Join(w.Dir(id), LogFile))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Entries returns the names of the direct entries of the directory of id.
func (w *Workspace) Entries(id string) ([]string, error) {
	entries, err := os.ReadDir(w.Dir(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read calculation directory")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// FilePath resolves name inside the directory of id. Only plain file names
// are accepted; anything that would leave the directory is rejected.
func (w *Workspace) FilePath(id, name string) (string, error) {
	if !ValidName(id) || !ValidName(name) {
		return "", ErrInvalidName
	}
	p := filepath.Join(w.Dir(id), name)
	info, err := os.Stat(p)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrNotExist
	}
	return p, nil
}

// IsBinary reports whether the file at p contains a NUL byte.
func IsBinary(p string) (bool, error) {
	f, err := os.Open(p)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if bytes.IndexByte(buf[:n], 0) >= 0 {
			return true, nil
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrap(err, "failed to read file")
		}
	}
}

// SaveUpload stores r in the uploads folder under a random name and returns
// its path.
func (w *Workspace) SaveUpload(r io.Reader) (string, error) {
	p := filepath.Join(w.Uploads, uuid.NewString()+".json")
	dst, err := os.Create(p)
	if err != nil {
		return "", errors.Wrap(err, "failed to create upload file")
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(p)
		return "", errors.Wrap(err, "failed to store upload")
	}
	if err := dst.Close(); err != nil {
		os.Remove(p)
		return "", errors.Wrap(err, "failed to store upload")
	}
	return p, nil
}
