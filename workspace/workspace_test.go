package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
)

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	root := t.TempDir()
	w, err := New(filepath.Join(root, "calculations"), filepath.Join(root, "uploads"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

func TestClaimIsExclusive(t *testing.T) {
	w := newWorkspace(t)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		won     int
		claimed int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := w.Claim("sim-001")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case errors.Is(err, ErrClaimed):
				claimed++
			default:
				t.Errorf("Claim() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if won != 1 || claimed != workers-1 {
		t.Errorf("won = %d, claimed = %d, want 1 and %d", won, claimed, workers-1)
	}
}

func TestClaimRejectsInvalidNames(t *testing.T) {
	w := newWorkspace(t)
	for _, id := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := w.Claim(id); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Claim(%q) error = %v, want ErrInvalidName", id, err)
		}
	}
}

func TestConfigAndMarker(t *testing.T) {
	w := newWorkspace(t)

	if w.HasConfig("job") {
		t.Fatal("HasConfig() = true before write")
	}
	if err := w.Claim("job"); err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if err := w.WriteConfig("job", []byte(`{"calculation_id":"job"}`)); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if !w.HasConfig("job") {
		t.Fatal("HasConfig() = false after write")
	}

	if _, ok, err := w.Marker("job"); ok || err != nil {
		t.Fatalf("Marker() ok = %v, err = %v, want no marker", ok, err)
	}

	if err := os.WriteFile(filepath.Join(w.Dir("job"), MarkerFile), []byte("200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	finished, err := w.Finished("job")
	if err != nil || !finished {
		t.Errorf("Finished() = %v, %v, want true", finished, err)
	}

	if err := os.WriteFile(filepath.Join(w.Dir("job"), MarkerFile), []byte("400"), 0o644); err != nil {
		t.Fatal(err)
	}
	if finished, _ := w.Finished("job"); finished {
		t.Errorf("Finished() = true for marker 400")
	}

	if err := w.Purge("job"); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if _, err := os.Stat(w.Dir("job")); !os.IsNotExist(err) {
		t.Errorf("directory still exists after Purge()")
	}
}

func TestWriteConfigRequiresClaim(t *testing.T) {
	w := newWorkspace(t)

	if err := w.Claim("job"); err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	if err := w.Purge("job"); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if err := w.WriteConfig("job", []byte(`{}`)); err == nil {
		t.Fatal("WriteConfig() succeeded after the directory was removed")
	}
	if _, err := os.Stat(w.Dir("job")); !os.IsNotExist(err) {
		t.Errorf("WriteConfig() recreated the directory, stat error = %v", err)
	}
	if err := w.WriteConfig("..", []byte(`{}`)); !errors.Is(err, ErrInvalidName) {
		t.Errorf("WriteConfig(..) error = %v, want ErrInvalidName", err)
	}
}

func TestFilePath(t *testing.T) {
	w := newWorkspace(t)
	if err := w.Claim("job"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Put("job/mf.list", strings.NewReader("listing")); err != nil {
		t.Fatal(err)
	}

	if _, err := w.FilePath("job", "mf.list"); err != nil {
		t.Errorf("FilePath() error = %v", err)
	}
	if _, err := w.FilePath("job", "../job/mf.list"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("FilePath() traversal error = %v, want ErrInvalidName", err)
	}
	if _, err := w.FilePath("job", "missing"); !os.IsNotExist(err) {
		t.Errorf("FilePath() missing error = %v, want not exist", err)
	}
}

func TestIsBinary(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "text")
	if err := os.WriteFile(text, []byte("plain text\nwith lines\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	large := filepath.Join(dir, "large")
	content := append([]byte(strings.Repeat("x", 100*1024)), 0)
	if err := os.WriteFile(large, content, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{text, false},
		{large, true},
	}
	for _, tt := range tests {
		got, err := IsBinary(tt.path)
		if err != nil {
			t.Fatalf("IsBinary(%s) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("IsBinary(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestListAndEntries(t *testing.T) {
	w := newWorkspace(t)
	for _, p := range []string{"job/configuration.json", "job/mf.hds", "job/sub/mt.ucn"} {
		if _, err := w.Put(p, strings.NewReader("x")); err != nil {
			t.Fatal(err)
		}
	}

	objects, err := w.List("job")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var paths []string
	for _, o := range objects {
		paths = append(paths, o.Path)
	}
	sort.Strings(paths)
	want := []string{"configuration.json", "mf.hds", "sub/mt.ucn"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("List() paths = %v, want %v", paths, want)
	}

	names, err := w.Entries("job")
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(names) != 3 {
		t.Errorf("Entries() = %v, want 3 entries", names)
	}
}

func TestSaveUpload(t *testing.T) {
	w := newWorkspace(t)

	p, err := w.SaveUpload(strings.NewReader(`{"a":1}`))
	if err != nil {
		t.Fatalf("SaveUpload() error = %v", err)
	}
	if filepath.Dir(p) != w.Uploads {
		t.Errorf("upload stored in %s, want %s", filepath.Dir(p), w.Uploads)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != `{"a":1}` {
		t.Errorf("upload content = %q, %v", b, err)
	}
}
