package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// dailyFile writes to <base>.<yyyy-mm-dd>.log and switches to a new file
// with the first write of a new day.
type dailyFile struct {
	mu   sync.Mutex
	base string
	day  string
	f    *os.File
	now  func() time.Time
}

func newDailyFile(path string) (*dailyFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	d := &dailyFile{base: strings.TrimSuffix(path, ".log"), now: time.Now}
	if err := d.open(d.now().Format(time.DateOnly)); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *dailyFile) open(day string) error {
	f, err := os.OpenFile(fmt.Sprintf("%s.%s.log", d.base, day), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if d.f != nil {
		_ = d.f.Close()
	}
	d.f, d.day = f, day
	return nil
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.f == nil {
		return 0, os.ErrClosed
	}
	if day := d.now().Format(time.DateOnly); day != d.day {
		if err := d.open(day); err != nil {
			return 0, err
		}
	}
	return d.f.Write(p)
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
