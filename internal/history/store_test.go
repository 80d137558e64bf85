package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
	"github.com/msto63/pcomb/foundation/combinator/parser"
	mdwerror "github.com/msto63/pcomb/foundation/core/error"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func successResult() parser.Result {
	return parser.Succeed("const x = 1", "\n").
		AddGroup("const", []mdwast.Fragment{
			mdwast.NewLeaf("type", "const"),
			mdwast.NewLeaf("name", "x"),
			mdwast.NewLeaf("value", "1"),
		})
}

func TestNewRun(t *testing.T) {
	ok := NewRun("a.toy", "toylang", "1.0.0", 12, successResult())
	if ok.ID == "" {
		t.Error("NewRun() should assign an id")
	}
	if ok.Status != "Success" || ok.MatchedLength != 11 || ok.RestLength != 1 {
		t.Errorf("NewRun() = %+v", ok)
	}
	if len(ok.Fragments) != 1 {
		t.Errorf("Fragments = %v", ok.Fragments)
	}

	failed := NewRun("b.toy", "toylang", "1.0.0", 3, parser.Fail(mdwerror.CodeUnexpectedCharacter, "expected 'a' but got 'b'"))
	if failed.Status != "Failure" || failed.ErrorCode != "UNEXPECTED_CHARACTER" || failed.Error == "" {
		t.Errorf("NewRun() = %+v", failed)
	}
	if failed.Fragments != nil {
		t.Error("failed run should carry no fragments")
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := NewRun("a.toy", "toylang", "1.0.0", 12, successResult())
	run.Steps = 42
	run.DurationMs = 1.5
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Source != "a.toy" || got.Steps != 42 || got.DurationMs != 1.5 {
		t.Errorf("Get() = %+v", got)
	}
	if !mdwast.EqualAll(got.Fragments, run.Fragments) {
		t.Errorf("Fragments = %v, want %v", got.Fragments, run.Fragments)
	}

	byPrefix, err := s.Get(ctx, run.ID[:8])
	if err != nil {
		t.Fatalf("Get(prefix) error = %v", err)
	}
	if byPrefix.ID != run.ID {
		t.Errorf("Get(prefix) = %s, want %s", byPrefix.ID, run.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "does-not-exist")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
}

func TestListFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	runs := []*Run{
		NewRun("a.toy", "toylang", "1.0.0", 12, successResult()),
		NewRun("b.toy", "toylang", "1.0.0", 3, parser.Fail(mdwerror.CodeEndOfInput, "end of input: expected 'a'")),
		NewRun("a.toy", "toylang", "1.0.0", 12, successResult()),
	}
	for i, run := range runs {
		run.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := s.Save(ctx, run); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all newest first", Filter{}, []string{runs[2].ID, runs[1].ID, runs[0].ID}},
		{"by source", Filter{Source: "a.toy"}, []string{runs[2].ID, runs[0].ID}},
		{"by status", Filter{Status: "Failure"}, []string{runs[1].ID}},
		{"limit", Filter{Limit: 1}, []string{runs[2].ID}},
		{"since", Filter{Since: base.Add(90 * time.Second)}, []string{runs[2].ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() returned %d runs, want %d", len(got), len(tt.want))
			}
			for i, run := range got {
				if run.ID != tt.want[i] {
					t.Errorf("List()[%d] = %s, want %s", i, run.ID, tt.want[i])
				}
				if run.Fragments != nil {
					t.Error("List() should not load fragments")
				}
			}
		})
	}
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := NewRun("old.toy", "toylang", "1.0.0", 1, successResult())
	old.Timestamp = time.Now().Add(-48 * time.Hour)
	fresh := NewRun("new.toy", "toylang", "1.0.0", 1, successResult())
	for _, run := range []*Run{old, fresh} {
		if err := s.Save(ctx, run); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	removed, err := s.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}

	remaining, _ := s.List(ctx, Filter{})
	if len(remaining) != 1 || remaining[0].Source != "new.toy" {
		t.Errorf("remaining runs = %+v", remaining)
	}
}
