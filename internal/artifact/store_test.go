package artifact_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tg-analyst-bot/internal/artifact"
)

func TestWriteAndOverwrite(t *testing.T) {
	t.Parallel()

	store, err := artifact.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := store.Write("Team_42", []byte("first"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	again, err := store.Write("Team_42", []byte("second"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if again != path {
		t.Fatalf("expected same path on overwrite, got %q and %q", path, again)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten content, got %q", data)
	}
}

func TestWriteSanitizesKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := artifact.New(dir, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	path, err := store.Write("../evil/title_7", []byte("x"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("artifact escaped its directory: %q", path)
	}
}

func TestSanitizeKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{"Team_42", "Team_42"},
		{"a/b\\c", "a_b_c"},
		{"title: with * chars?", "title_ with _ chars_"},
		{"Личный чат_7", "Личный чат_7"},
		{"...", "_"},
	}

	for _, tc := range testCases {
		if got := artifact.SanitizeKey(tc.input); got != tc.expected {
			t.Errorf("SanitizeKey(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := artifact.New(dir, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	oldPath, err := store.Write("old_1", []byte("old"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	freshPath, err := store.Write("fresh_1", []byte("fresh"))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldPath, stale, stale); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	removed, err := store.Sweep(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed artifact, got %d", removed)
	}

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("expected expired artifact to be removed")
	}
	if _, err := os.Stat(freshPath); err != nil {
		t.Errorf("expected fresh artifact to survive sweep: %v", err)
	}
}
