package beatcache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cuemark/internal/beatcache"
	"cuemark/internal/beats"
	"cuemark/internal/testsupport"
)

func openTestStore(t *testing.T) *beatcache.Store {
	t.Helper()
	store, err := beatcache.Open(filepath.Join(t.TempDir(), "beats.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := store.Close(); closeErr != nil {
			t.Errorf("close store: %v", closeErr)
		}
	})
	return store
}

func writeSourceFile(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mov")
	testsupport.WriteMediaFile(t, path, size)
	return path
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	path := writeSourceFile(t, 1024)

	key, err := beatcache.KeyFor(path, "high-accuracy", nil)
	if err != nil {
		t.Fatalf("build key: %v", err)
	}

	ctx := context.Background()
	if _, hit, lookupErr := store.Lookup(ctx, key); lookupErr != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, lookupErr)
	}

	events := []beats.Event{
		{TimeSeconds: 0.5, Ordinal: 1},
		{TimeSeconds: 1.0, Ordinal: 2},
		{TimeSeconds: 1.5, Ordinal: 3, Estimated: true},
	}
	if err := store.Store(ctx, key, events); err != nil {
		t.Fatalf("store events: %v", err)
	}

	got, hit, err := store.Lookup(ctx, key)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit after store")
	}
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Fatalf("event %d mismatch: got %+v want %+v", i, got[i], events[i])
		}
	}
}

func TestStoreMissWhenSourceFileChanges(t *testing.T) {
	store := openTestStore(t)
	path := writeSourceFile(t, 2048)

	key, err := beatcache.KeyFor(path, "fallback", &beats.Window{StartSeconds: 2, DurationSeconds: 4})
	if err != nil {
		t.Fatalf("build key: %v", err)
	}
	ctx := context.Background()
	if err := store.Store(ctx, key, []beats.Event{{TimeSeconds: 2.5, Ordinal: 1}}); err != nil {
		t.Fatalf("store events: %v", err)
	}

	// Same path, different size and mtime.
	testsupport.WriteMediaFile(t, path, 4096)
	if err := os.Chtimes(path, time.Now(), time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("bump mtime: %v", err)
	}

	freshKey, err := beatcache.KeyFor(path, "fallback", &beats.Window{StartSeconds: 2, DurationSeconds: 4})
	if err != nil {
		t.Fatalf("rebuild key: %v", err)
	}
	if _, hit, lookupErr := store.Lookup(ctx, freshKey); lookupErr != nil || hit {
		t.Fatalf("expected miss after source change, got hit=%v err=%v", hit, lookupErr)
	}
}

func TestStoreKeysWindowedAndWholeFileSeparately(t *testing.T) {
	store := openTestStore(t)
	path := writeSourceFile(t, 1024)
	ctx := context.Background()

	wholeFile, err := beatcache.KeyFor(path, "fallback", nil)
	if err != nil {
		t.Fatalf("build whole-file key: %v", err)
	}
	windowed, err := beatcache.KeyFor(path, "fallback", &beats.Window{StartSeconds: 0, DurationSeconds: 4})
	if err != nil {
		t.Fatalf("build windowed key: %v", err)
	}

	if err := store.Store(ctx, wholeFile, []beats.Event{{TimeSeconds: 9, Ordinal: 1}}); err != nil {
		t.Fatalf("store whole-file: %v", err)
	}
	if _, hit, lookupErr := store.Lookup(ctx, windowed); lookupErr != nil || hit {
		t.Fatalf("windowed lookup should miss whole-file entry, got hit=%v err=%v", hit, lookupErr)
	}
}

type countingEngine struct {
	calls  int
	events []beats.Event
}

func (e *countingEngine) Name() string { return "high-accuracy" }

func (e *countingEngine) Analyze(_ context.Context, _ string, _ *beats.Window) ([]beats.Event, error) {
	e.calls++
	return e.events, nil
}

func TestCachedEngineAnalyzesOnceAcrossCalls(t *testing.T) {
	store := openTestStore(t)
	path := writeSourceFile(t, 1024)

	inner := &countingEngine{events: []beats.Event{
		{TimeSeconds: 0.25, Ordinal: 1},
		{TimeSeconds: 0.75, Ordinal: 2},
	}}
	engine := beatcache.WrapEngine(inner, store, nil)

	ctx := context.Background()
	first, err := engine.Analyze(ctx, path, nil)
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	second, err := engine.Analyze(ctx, path, nil)
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected 1 engine invocation, got %d", inner.calls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected both calls to return 2 events, got %d and %d", len(first), len(second))
	}
	if engine.Name() != "high-accuracy" {
		t.Fatalf("wrapper must report inner engine name, got %q", engine.Name())
	}
}

func TestCachedEngineFallsThroughOnMissingFile(t *testing.T) {
	store := openTestStore(t)
	inner := &countingEngine{events: []beats.Event{{TimeSeconds: 1, Ordinal: 1}}}
	engine := beatcache.WrapEngine(inner, store, nil)

	events, err := engine.Analyze(context.Background(), filepath.Join(t.TempDir(), "gone.mov"), nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if inner.calls != 1 || len(events) != 1 {
		t.Fatalf("expected direct analysis, calls=%d events=%d", inner.calls, len(events))
	}
}

func TestPruneRemovesOldEntries(t *testing.T) {
	store := openTestStore(t)
	path := writeSourceFile(t, 1024)

	key, err := beatcache.KeyFor(path, "fallback", nil)
	if err != nil {
		t.Fatalf("build key: %v", err)
	}
	ctx := context.Background()
	if err := store.Store(ctx, key, []beats.Event{{TimeSeconds: 1, Ordinal: 1}}); err != nil {
		t.Fatalf("store: %v", err)
	}

	removed, err := store.Prune(ctx, -time.Minute)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 pruned row, got %d", removed)
	}
	if _, hit, lookupErr := store.Lookup(ctx, key); lookupErr != nil || hit {
		t.Fatalf("expected miss after prune, got hit=%v err=%v", hit, lookupErr)
	}
}
