package cli

import (
	"bytes"
	"testing"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	return New(&bytes.Buffer{}, LogInfo)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI(t).RootCommand()

	want := []string{"order", "blocks", "decompose", "profile", "render", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := testCLI(t)
	c.SetLogLevel(LogDebug)
	if got := c.Logger.GetLevel(); got != LogDebug {
		t.Errorf("log level = %v, want debug", got)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir failed: %v", err)
	}
	if dir == "" {
		t.Fatal("cacheDir returned an empty path")
	}
}

func TestNewCacheFallsBackToNull(t *testing.T) {
	store := newCache(true)
	defer store.Close()
	if _, hit, err := store.Get(t.Context(), "anything"); err != nil || hit {
		t.Errorf("null cache Get = hit=%v err=%v, want miss", hit, err)
	}
}
