package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDirOpen covers success, missing file, and pre-canceled context.
func TestDirOpen(t *testing.T) {
	t.Parallel()

	type tc struct {
		name            string
		prepare         func(t *testing.T) string // returns the root dir
		makeCtx         func(t *testing.T) context.Context
		wantErrIs       error
		wantErrContains string
		wantContent     string
	}

	cases := []tc{
		{
			name: "success_reads_content",
			prepare: func(t *testing.T) string {
				t.Helper()
				dir := t.TempDir()
				if err := os.WriteFile(filepath.Join(dir, "brands.csv"), []byte("brand_id\n1\n"), 0o644); err != nil {
					t.Fatalf("write test file: %v", err)
				}
				return dir
			},
			makeCtx:     func(t *testing.T) context.Context { return context.Background() },
			wantContent: "brand_id\n1\n",
		},
		{
			name: "missing_file_errors_with_wrapping",
			prepare: func(t *testing.T) string {
				t.Helper()
				return t.TempDir()
			},
			makeCtx:         func(t *testing.T) context.Context { return context.Background() },
			wantErrIs:       os.ErrNotExist,
			wantErrContains: "open ",
		},
		{
			name: "pre_canceled_context_short_circuits",
			prepare: func(t *testing.T) string {
				t.Helper()
				return t.TempDir()
			},
			makeCtx: func(t *testing.T) context.Context {
				t.Helper()
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantErrIs: context.Canceled,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			rc, err := NewDir(c.prepare(t), "").Open(c.makeCtx(t), "brands")

			if c.wantErrIs != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", c.wantErrIs)
				}
				if !errors.Is(err, c.wantErrIs) {
					t.Fatalf("errors.Is(%v, %v) = false", err, c.wantErrIs)
				}
				if c.wantErrContains != "" && !strings.Contains(err.Error(), c.wantErrContains) {
					t.Fatalf("error %q does not contain substring %q", err, c.wantErrContains)
				}
				if rc != nil {
					_ = rc.Close()
					t.Fatalf("got non-nil ReadCloser on error: %T", rc)
				}
				return
			}

			if err != nil {
				t.Fatalf("Open() unexpected error: %v", err)
			}
			defer rc.Close()

			got, rerr := io.ReadAll(rc)
			if rerr != nil {
				t.Fatalf("reading: %v", rerr)
			}
			if string(got) != c.wantContent {
				t.Fatalf("content mismatch: got %q, want %q", string(got), c.wantContent)
			}
		})
	}
}

func TestDirCreateUsesPattern(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "cleaned")
	d := NewDir(root, CleanedPattern)

	w, err := d.Create(context.Background(), "orders")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := io.WriteString(w, "order_id\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := filepath.Join(root, "cleaned_orders.csv")
	if got := d.Path("orders"); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("stat %s: %v", want, err)
	}
}
