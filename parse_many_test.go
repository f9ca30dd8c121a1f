package cuesheet_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/cuesheet"
)

func writeCue(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseMany_Order(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		paths = append(paths, writeCue(t, dir, title+".cue", "TITLE \""+title+"\"\n"))
	}

	discs, err := cuesheet.ParseMany(context.Background(), paths, cuesheet.WithStrictParsing())
	if err != nil {
		t.Fatal(err)
	}
	if len(discs) != len(paths) {
		t.Fatalf("got %d discs, want %d", len(discs), len(paths))
	}
	for i, disc := range discs {
		want := strings.TrimSuffix(filepath.Base(paths[i]), ".cue")
		if disc.Title != want {
			t.Errorf("discs[%d].Title = %q, want %q", i, disc.Title, want)
		}
	}
}

func TestParseMany_Empty(t *testing.T) {
	discs, err := cuesheet.ParseMany(context.Background(), nil)
	if err != nil || discs != nil {
		t.Errorf("ParseMany(nil) = %v, %v", discs, err)
	}
}

// TestParseMany_Cancellation verifies that a cancelled context stops the batch
func TestParseMany_Cancellation(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = writeCue(t, dir, "disc"+string(rune('0'+i))+".cue", "TITLE x\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	discs, err := cuesheet.ParseMany(ctx, paths)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if discs != nil {
		t.Error("expected nil discs on error")
	}
}

// TestParseMany_PartialFailure verifies the batch is all or nothing
func TestParseMany_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeCue(t, dir, "good.cue", "TITLE x\n")
	bad := writeCue(t, dir, "bad.cue", "TRACK 01 AUDIO\n")

	_, err := cuesheet.ParseMany(context.Background(), []string{good, "/nonexistent/file.cue", good})
	if err == nil {
		t.Fatal("expected error from nonexistent file")
	}
	if !cuesheet.IsIOError(err) {
		t.Errorf("expected I/O error, got %v", err)
	}

	discs, err := cuesheet.ParseMany(context.Background(), []string{good, bad}, cuesheet.WithStrictParsing())
	if err == nil {
		t.Fatal("expected strict error")
	}
	if discs != nil {
		t.Error("expected nil discs on partial failure")
	}
	if !strings.Contains(err.Error(), bad) {
		t.Errorf("error %q should name the failing path", err)
	}
	if !cuesheet.IsParseError(err) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestParseContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cuesheet.ParseContext(ctx, "testdata/basic.cue"); err == nil {
		t.Error("expected error from cancelled context")
	}

	disc, err := cuesheet.ParseContext(context.Background(), "testdata/basic.cue")
	if err != nil {
		t.Fatal(err)
	}
	if disc.Title != "Loveless" {
		t.Errorf("Title = %q", disc.Title)
	}
}
