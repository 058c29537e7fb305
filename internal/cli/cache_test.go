package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/timespiral/pkg/cache"
)

func TestNewCacheNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	store, err := c.newCache(context.Background(), cacheFlags{noCache: true})
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("--no-cache should select NullCache, got %T", store)
	}
}

func TestNewCacheFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	store, err := c.newCache(context.Background(), cacheFlags{})
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("default cache should be FileCache, got %T", store)
	}
	if filepath.Base(fc.Dir()) != appName {
		t.Errorf("cache dir = %q, should end with %q", fc.Dir(), appName)
	}
}

func TestNewCacheBadURL(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if _, err := c.newCache(context.Background(), cacheFlags{url: "ftp://nowhere"}); err == nil {
		t.Error("newCache() should reject a non-redis URL")
	}
}

func TestCacheCommands(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := context.Background()

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.ui = printer{out: &out}

	run := func(args ...string) string {
		t.Helper()
		out.Reset()
		cmd := c.cacheCommand()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("cache %v: %v", args, err)
		}
		return out.String()
	}

	if got := run("info"); !strings.Contains(got, "Cache is empty") {
		t.Errorf("info before first use = %q", got)
	}

	dir, _ := cache.DefaultDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	keyer := cache.NewDefaultKeyer()
	_ = fc.Set(ctx, keyer.LayoutKey("ds", cache.LayoutKeyOpts{}), []byte("{}"), time.Hour)
	_ = fc.Set(ctx, keyer.ArtifactKey("l", cache.ArtifactKeyOpts{Format: "svg"}), []byte("<svg/>"), time.Hour)

	got := run("info")
	for _, want := range []string{dir, "layouts", "artifacts", "1 ("} {
		if !strings.Contains(got, want) {
			t.Errorf("info output missing %q:\n%s", want, got)
		}
	}

	if got := run("clear", "--artifacts"); !strings.Contains(got, "Cleared 1 cached entries") {
		t.Errorf("clear --artifacts = %q", got)
	}
	if got := run("clear"); !strings.Contains(got, "Cleared 1 cached entries") {
		t.Errorf("clear = %q", got)
	}
	if got := run("path"); strings.TrimSpace(got) != dir {
		t.Errorf("path = %q, want %q", got, dir)
	}
}
