package storage

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/ddl"
)

// fakeRepo is a minimal Repository implementation for tests. It records every
// statement passed to Exec.
type fakeRepo struct {
	closed  bool
	execs   []string
	failOn  string
	execErr error
}

func (f *fakeRepo) CopyFrom(_ context.Context, _ string, _ []string, rows [][]any) (int64, error) {
	return int64(len(rows)), nil
}

func (f *fakeRepo) Exec(_ context.Context, sql string) error {
	f.execs = append(f.execs, sql)
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return f.execErr
	}
	return nil
}

func (f *fakeRepo) CountRows(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeRepo) Close() { f.closed = true }

// TestRegisterAndNew_Success verifies that registering a backend enables New()
// to return the corresponding repository.
func TestRegisterAndNew_Success(t *testing.T) {
	t.Parallel()

	kind := "fake"
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: kind})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if repo == nil {
		t.Fatalf("New returned nil repo")
	}

	found := false
	for _, k := range ListKinds() {
		if k == kind {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("registered kind %q not present in ListKinds: %v", kind, ListKinds())
	}
}

// TestNew_Unsupported verifies that unsupported kinds return a helpful error.
func TestNew_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Kind: "does-not-exist"})
	if err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
	if got, want := err.Error(), "unsupported storage.kind=does-not-exist"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

// TestRegister_Override verifies that re-registering a kind overrides the
// previous factory.
func TestRegister_Override(t *testing.T) {
	t.Parallel()

	kind := "override"
	calls := 0

	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls++
		return &fakeRepo{}, nil
	})
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls += 10
		return &fakeRepo{}, nil
	})

	if _, err := New(context.Background(), Config{Kind: kind}); err != nil {
		t.Fatalf("New error: %v", err)
	}
	if calls != 10 {
		t.Fatalf("factory call count = %d, want 10", calls)
	}
}

// TestListKinds_Snapshot checks that ListKinds returns a copy.
func TestListKinds_Snapshot(t *testing.T) {
	t.Parallel()

	Register("snap", func(ctx context.Context, cfg Config) (Repository, error) { return &fakeRepo{}, nil })

	a := ListKinds()
	if len(a) == 0 {
		t.Fatalf("ListKinds empty after registration")
	}
	a[0] = "mutated"

	b := ListKinds()
	if reflect.DeepEqual(a, b) {
		t.Fatalf("ListKinds returned same slice; want snapshot copy")
	}
}

// TestRegister_AllowsErrors shows factories can return errors that bubble up.
func TestRegister_AllowsErrors(t *testing.T) {
	t.Parallel()

	kind := "errkind"
	want := errors.New("boom")
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return nil, want
	})

	if _, err := New(context.Background(), Config{Kind: kind}); !errors.Is(err, want) {
		t.Fatalf("want %v, got %v", want, err)
	}
}

func TestDialectFor(t *testing.T) {
	t.Parallel()

	RegisterDDL("generic-test", ddl.Generic)
	d, err := DialectFor("generic-test")
	if err != nil {
		t.Fatalf("DialectFor error: %v", err)
	}
	if d.Name != "generic" {
		t.Fatalf("dialect = %q, want generic", d.Name)
	}
	if _, err := DialectFor("nope"); err == nil {
		t.Fatalf("DialectFor(nope): want error")
	}
}

// TestRecreateSchema_Order checks drops run child-first and creates run
// parent-first.
func TestRecreateSchema_Order(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	if err := RecreateSchema(context.Background(), repo, ddl.Generic, ddl.Retail()); err != nil {
		t.Fatalf("RecreateSchema error: %v", err)
	}
	if len(repo.execs) != 18 {
		t.Fatalf("executed %d statements, want 18", len(repo.execs))
	}
	if got := repo.execs[0]; got != "DROP TABLE IF EXISTS Stocks;" {
		t.Fatalf("first statement = %q, want drop of Stocks", got)
	}
	if got := repo.execs[8]; got != "DROP TABLE IF EXISTS Brands;" {
		t.Fatalf("ninth statement = %q, want drop of Brands", got)
	}
	if got := repo.execs[9]; !strings.HasPrefix(got, "CREATE TABLE Brands (") {
		t.Fatalf("first create = %q, want Brands", got)
	}
	if got := repo.execs[17]; !strings.HasPrefix(got, "CREATE TABLE Stocks (") {
		t.Fatalf("last create = %q, want Stocks", got)
	}
}

func TestRecreateSchema_StopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	repo := &fakeRepo{failOn: "CREATE TABLE Staffs", execErr: boom}
	err := RecreateSchema(context.Background(), repo, ddl.Generic, ddl.Retail())
	if !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
	if !strings.Contains(err.Error(), "create Staffs") {
		t.Fatalf("error %q does not name the table", err)
	}
	if last := repo.execs[len(repo.execs)-1]; !strings.HasPrefix(last, "CREATE TABLE Staffs") {
		t.Fatalf("continued after failure: last statement %q", last)
	}
}
