package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/msto63/pcomb/foundation/combinator"
	mdwlog "github.com/msto63/pcomb/foundation/core/log"
	"github.com/msto63/pcomb/internal/history"
	"github.com/msto63/pcomb/internal/toylang"
)

// newToyEngine builds the toy grammar behind an engine with quiet logging
func newToyEngine(t *testing.T, configure func(*combinator.Options)) *combinator.Engine {
	t.Helper()

	g, err := toylang.NewGrammar(mdwlog.NewNop())
	requireNoError(t, err, "NewGrammar failed")

	opts := combinator.DefaultOptions()
	if configure != nil {
		configure(&opts)
	}
	opts.Logger = mdwlog.NewNop()

	engine, err := combinator.NewFromGrammar(g, opts)
	requireNoError(t, err, "NewFromGrammar failed")
	return engine
}

// openStore opens a history store in a temp directory
func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(history.Config{Path: filepath.Join(t.TempDir(), "history.db")})
	requireNoError(t, err, "history.Open failed")
	t.Cleanup(func() { store.Close() })
	return store
}

// writeFile writes content to name inside dir
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	requireNoError(t, os.WriteFile(path, []byte(content), 0644), "WriteFile failed")
	return path
}

// testContext returns a context with timeout for tests
func testContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), timeout)
}

// requireNoError fails the test if err is not nil
func requireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// requireTrue fails the test if condition is false
func requireTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Fatalf("Expected true: %s", msg)
	}
}

// requireEqual fails the test if expected != actual
func requireEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// logTestStart logs the start of a test with component info
func logTestStart(t *testing.T, component, testName string) {
	t.Helper()
	t.Logf("=== %s: %s ===", component, testName)
}
