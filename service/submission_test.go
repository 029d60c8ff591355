package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncobase/calcgate/config"
	"github.com/ncobase/calcgate/data/repository"
	"github.com/ncobase/calcgate/schema"
	"github.com/ncobase/calcgate/workspace"
)

const simDoc = `{"calculation_id": "sim-001", "data": {"mf": {"dis": {"nlay": 2, "itmuni": 4, "start_datetime": "2000-01-01"}}}}`

func decodeDoc(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := DecodeDocument(strings.NewReader(s))
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	return doc
}

func TestSubmitScenario(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	sub := f.svc.Submission

	id, err := sub.Submit(ctx, decodeDoc(t, simDoc))
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if id.ID != "sim-001" || id.Link != "/sim-001" {
		t.Errorf("identity = %+v", id)
	}
	rec, err := f.repo.GetByID(ctx, "sim-001")
	if err != nil || rec.State != repository.StateQueued {
		t.Fatalf("record = %+v, %v, want queued", rec, err)
	}
	stored, err := f.ws.ReadConfig("sim-001")
	if err != nil || string(stored) != simDoc {
		t.Errorf("stored configuration = %q, %v", stored, err)
	}

	// Resubmitting before any state change keeps a single record.
	again, err := sub.Submit(ctx, decodeDoc(t, simDoc))
	if err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}
	if again.Link != id.Link {
		t.Errorf("link = %s, want %s", again.Link, id.Link)
	}
	if n := f.count(t, "sim-001"); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}

	// A successfully finished calculation is left untouched.
	marker := filepath.Join(f.ws.Dir("sim-001"), workspace.MarkerFile)
	if err := os.WriteFile(marker, []byte("200"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := filepath.Join(f.ws.Dir("sim-001"), "mf.hds")
	if err := os.WriteFile(result, []byte("heads"), 0o644); err != nil {
		t.Fatal(err)
	}

	final, err := sub.Submit(ctx, decodeDoc(t, simDoc))
	if err != nil {
		t.Fatalf("third Submit() error = %v", err)
	}
	if final.Link != id.Link {
		t.Errorf("link = %s, want %s", final.Link, id.Link)
	}
	if n := f.count(t, "sim-001"); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	if _, err := os.Stat(result); err != nil {
		t.Errorf("finished calculation directory was modified: %v", err)
	}
}

func TestSubmitPurgesFailedAttempt(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	if _, err := f.svc.Submission.Submit(ctx, decodeDoc(t, simDoc)); err != nil {
		t.Fatal(err)
	}
	dir := f.ws.Dir("sim-001")
	if err := os.WriteFile(filepath.Join(dir, workspace.MarkerFile), []byte("400\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stale.out"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := `{"calculation_id": "sim-001", "data": {"mf": {"dis": {"nlay": 3}}}}`
	if _, err := f.svc.Submission.Submit(ctx, decodeDoc(t, doc)); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "stale.out")); !os.IsNotExist(err) {
		t.Errorf("stale output survived resubmission")
	}
	if _, err := os.Stat(filepath.Join(dir, workspace.MarkerFile)); !os.IsNotExist(err) {
		t.Errorf("marker survived resubmission")
	}
	stored, _ := f.ws.ReadConfig("sim-001")
	if string(stored) != doc {
		t.Errorf("configuration = %s, want new document", stored)
	}
	if n := f.count(t, "sim-001"); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestSubmitRequeuesFailedRecord(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	if _, err := f.svc.Submission.Submit(ctx, decodeDoc(t, simDoc)); err != nil {
		t.Fatal(err)
	}
	if err := f.ws.Purge("sim-001"); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Submission.Submit(ctx, decodeDoc(t, simDoc)); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	rec, err := f.repo.GetByID(ctx, "sim-001")
	if err != nil || rec.State != repository.StateQueued {
		t.Errorf("record = %+v, %v, want queued", rec, err)
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		results map[schema.Kind]schema.Result
		calls   int
	}{
		{"missing id", `{"data": {"mf": {}}}`, nil, 0},
		{"id with separator", `{"calculation_id": "../x", "data": {"mf": {}}}`, nil, 0},
		{"missing mf", `{"calculation_id": "a", "data": {}}`, nil, 0},
		{"null mf", `{"calculation_id": "a", "data": {"mf": null}}`, nil, 0},
		{"invalid mf", `{"calculation_id": "a", "data": {"mf": {}}}`,
			map[schema.Kind]schema.Result{schema.KindModflow: {Status: schema.Invalid, Reason: "missing dis"}}, 1},
		{"invalid mt", `{"calculation_id": "a", "data": {"mf": {}, "mt": {}}}`,
			map[schema.Kind]schema.Result{schema.KindMt3d: {Status: schema.Invalid, Reason: "missing btn"}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			if tt.results != nil {
				f.validator.results = tt.results
			}

			_, err := f.svc.Submission.Submit(context.Background(), decodeDoc(t, tt.doc))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Submit() error = %v, want ValidationError", err)
			}
			if len(f.validator.calls) != tt.calls {
				t.Errorf("validator calls = %v, want %d", f.validator.calls, tt.calls)
			}

			entries, _ := os.ReadDir(f.ws.Folder)
			if len(entries) != 0 {
				t.Errorf("workspace has %d entries after rejection", len(entries))
			}
			list, _ := f.repo.List(context.Background())
			if len(list) != 0 {
				t.Errorf("registry has %d records after rejection", len(list))
			}
		})
	}
}

func TestSubmitSkipsMtWhenAbsent(t *testing.T) {
	f := newFixture(t, nil)
	if _, err := f.svc.Submission.Submit(context.Background(), decodeDoc(t, simDoc)); err != nil {
		t.Fatal(err)
	}
	if len(f.validator.calls) != 1 || f.validator.calls[0] != schema.KindModflow {
		t.Errorf("validator calls = %v, want [modflow]", f.validator.calls)
	}
}

func TestSubmitUnavailableValidator(t *testing.T) {
	f := newFixture(t, nil)
	f.validator.results[schema.KindModflow] = schema.Result{Status: schema.Unavailable, Reason: "timeout"}

	_, err := f.svc.Submission.Submit(context.Background(), decodeDoc(t, simDoc))
	var uerr *UnavailableError
	if !errors.As(err, &uerr) {
		t.Fatalf("Submit() error = %v, want UnavailableError", err)
	}

	f.svc.Submission.cfg = &config.Schema{UnavailableAsInvalid: true}
	_, err = f.svc.Submission.Submit(context.Background(), decodeDoc(t, simDoc))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit() error = %v, want ValidationError", err)
	}
}

func TestSubmitUpload(t *testing.T) {
	f := newFixture(t, nil)

	id, err := f.svc.Submission.SubmitUpload(context.Background(), strings.NewReader(simDoc))
	if err != nil {
		t.Fatalf("SubmitUpload() error = %v", err)
	}
	if id.Link != "/sim-001" {
		t.Errorf("link = %s", id.Link)
	}

	f.validator.results[schema.KindModflow] = schema.Result{Status: schema.Invalid, Reason: "bad"}
	if _, err := f.svc.Submission.SubmitUpload(context.Background(), strings.NewReader(simDoc)); err == nil {
		t.Error("expected rejection")
	}

	entries, _ := os.ReadDir(f.ws.Uploads)
	if len(entries) != 0 {
		t.Errorf("uploads folder has %d leftover files", len(entries))
	}
}

func TestDecodeDocumentRejectsNonObject(t *testing.T) {
	for _, body := range []string{`[]`, `"x"`, `{"data": 5}`, `not json`} {
		_, err := DecodeDocument(strings.NewReader(body))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("DecodeDocument(%s) error = %v, want ValidationError", body, err)
		}
	}
}
