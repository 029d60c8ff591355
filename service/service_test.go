package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/data"
	dc "github.com/ncobase/calcgate/data/config"
	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/logging/logger"
	"github.com/ncobase/calcgate/results"
	"github.com/ncobase/calcgate/schema"
	"github.com/ncobase/calcgate/workspace"

	_ "github.com/ncobase/calcgate/data/sqlite"
)

type fakeValidator struct {
	mu      sync.Mutex
	results map[schema.Kind]schema.Result
	calls   []schema.Kind
}

func (v *fakeValidator) Validate(_ context.Context, kind schema.Kind, _ any) schema.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, kind)
	if r, ok := v.results[kind]; ok {
		return r
	}
	return schema.Result{Status: schema.Valid}
}

type noOpener struct{}

func (noOpener) Open(context.Context, string, string) (results.Reader, error) {
	return nil, workspace.ErrInvalidName
}

type fixture struct {
	svc       *Service
	ws        *workspace.Workspace
	repo      repository.CalculationRepository
	validator *fakeValidator
}

func newFixture(t *testing.T, opener results.Opener) *fixture {
	t.Helper()
	root := t.TempDir()

	ws, err := workspace.New(filepath.Join(root, "modflow"), filepath.Join(root, "uploads"))
	if err != nil {
		t.Fatalf("workspace.New() error = %v", err)
	}

	d, cleanup, err := data.New(context.Background(), &dc.Config{
		Database: &dc.Database{
			Master:  &dc.DBNode{Driver: "sqlite", Source: "file:" + filepath.Join(root, "calc.db")},
			Migrate: true,
		},
	})
	if err != nil {
		t.Fatalf("data.New() error = %v", err)
	}
	t.Cleanup(cleanup)

	if opener == nil {
		opener = noOpener{}
	}
	log := logger.StdLogger()
	repo := repository.NewCalculationRepository(d, log)
	v := &fakeValidator{results: map[schema.Kind]schema.Result{}}
	rs := results.NewService(ws, opener, log)

	return &fixture{
		svc:       NewService(&config.Schema{}, ws, repo, v, rs, log),
		ws:        ws,
		repo:      repo,
		validator: v,
	}
}

func (f *fixture) count(t *testing.T, id string) int {
	t.Helper()
	n, err := f.repo.CountByID(context.Background(), id)
	if err != nil {
		t.Fatalf("CountByID() error = %v", err)
	}
	return n
}
