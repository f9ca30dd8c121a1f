package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simonhull/cuesheet/internal/catalog"
)

// run executes the command tree and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// sandbox isolates configuration and returns the absolute path of the
// shared basic fixture.
func sandbox(t *testing.T) (dir, basic string) {
	t.Helper()

	basic, err := filepath.Abs("../../../testdata/basic.cue")
	if err != nil {
		t.Fatal(err)
	}

	dir = t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{"CUESHEET_CONFIG", "CUESHEET_STRICT", "CUESHEET_OUTPUT", "CUESHEET_DB", "CUESHEET_DEBUG"} {
		t.Setenv(k, "")
	}
	return dir, basic
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseCmd_Text(t *testing.T) {
	_, basic := sandbox(t)

	out, err := run(t, "parse", basic)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Title:      Loveless", "Only Shallow", "00:00:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseCmd_JSON(t *testing.T) {
	_, basic := sandbox(t)

	out, err := run(t, "parse", "-o", "json", basic)
	if err != nil {
		t.Fatal(err)
	}
	var v struct {
		Title string `json:"title"`
		Files []struct {
			Tracks []struct {
				Title string `json:"title"`
			} `json:"tracks"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if v.Title != "Loveless" || len(v.Files) != 1 || v.Files[0].Tracks[0].Title != "Only Shallow" {
		t.Errorf("decoded = %+v", v)
	}
}

func TestParseCmd_OutputFromConfig(t *testing.T) {
	dir, basic := sandbox(t)
	writeFile(t, filepath.Join(dir, "cuesheet.toml"), "[parse]\noutput = \"yaml\"\n")

	out, err := run(t, "parse", basic)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "title: Loveless") {
		t.Errorf("expected YAML output from config:\n%s", out)
	}
}

func TestParseCmd_Strict(t *testing.T) {
	dir, _ := sandbox(t)
	sheet := filepath.Join(dir, "orphan.cue")
	writeFile(t, sheet, "TITLE x\nINDEX 01 00:00:00\n")

	out, err := run(t, "parse", sheet)
	if err != nil {
		t.Fatalf("lenient parse failed: %v", err)
	}
	if !strings.Contains(out, "line 2: INDEX assigned to no TRACK") {
		t.Errorf("expected warning in output:\n%s", out)
	}

	_, err = run(t, "parse", "--strict", sheet)
	if err == nil || !strings.Contains(err.Error(), "strict mode failure") {
		t.Errorf("strict parse error = %v", err)
	}

	t.Setenv("CUESHEET_STRICT", "true")
	if _, err := run(t, "parse", sheet); err == nil {
		t.Error("CUESHEET_STRICT=true should select strict mode")
	}
	if _, err := run(t, "parse", "--strict=false", sheet); err != nil {
		t.Errorf("--strict=false should override the environment: %v", err)
	}
}

func TestParseCmd_Many(t *testing.T) {
	dir, basic := sandbox(t)
	other := filepath.Join(dir, "other.cue")
	writeFile(t, other, "TITLE \"Other\"\n")

	out, err := run(t, "parse", basic, other)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "==> "+basic+" <==") || !strings.Contains(out, "Title:      Other") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestParseCmd_Errors(t *testing.T) {
	_, basic := sandbox(t)

	if _, err := run(t, "parse"); err == nil {
		t.Error("expected error without arguments")
	}
	if _, err := run(t, "parse", "-o", "xml", basic); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := run(t, "parse", "/nonexistent/disc.cue"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDumpCmd(t *testing.T) {
	dir, _ := sandbox(t)
	sheet := filepath.Join(dir, "dump.cue")
	writeFile(t, sheet, "REM GENRE Rock\n\nFLAGS DCP PRE\nWHATEVER 1\nTRACK 01\n")

	out, err := run(t, "dump", sheet)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"REM", "Key:GENRE", "DCP PRE", "WHATEVER 1", "missing TRACK mode"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 5 {
		t.Errorf("expected one row per line, got %d rows:\n%s", got, out)
	}
}

func TestIndexAndSearch(t *testing.T) {
	dir, basic := sandbox(t)
	db := filepath.Join(dir, "data", "catalog.db")

	out, err := run(t, "index", "--db", db, basic)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "indexed 1 of 1 sheets") {
		t.Errorf("index output = %q", out)
	}

	out, err = run(t, "search", "--db", db, "only", "shallow")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Only Shallow") || !strings.Contains(out, basic) {
		t.Errorf("search output:\n%s", out)
	}

	out, err = run(t, "search", "--db", db, "nothing")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no tracks match") {
		t.Errorf("search output = %q", out)
	}
}

func TestIndexCmd_PartialFailure(t *testing.T) {
	dir, basic := sandbox(t)
	t.Setenv("CUESHEET_DB", filepath.Join(dir, "env.db"))

	out, err := run(t, "index", basic, filepath.Join(dir, "missing.cue"))
	if err == nil {
		t.Error("expected error when a sheet fails")
	}
	if !strings.Contains(out, "indexed 1 of 2 sheets") {
		t.Errorf("index output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "env.db")); err != nil {
		t.Errorf("CUESHEET_DB not honored: %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	sandbox(t)

	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "cuesheet v") || !strings.Contains(out, "Commit:") || !strings.Contains(out, "Go Version:") {
		t.Errorf("version output:\n%s", out)
	}
}

func TestPrune(t *testing.T) {
	dir, basic := sandbox(t)
	db := filepath.Join(dir, "catalog.db")

	kept := filepath.Join(dir, "kept.cue")
	gone := filepath.Join(dir, "gone.cue")
	writeFile(t, kept, "TITLE kept\n")
	writeFile(t, gone, "TITLE gone\n")

	if _, err := run(t, "index", "--db", db, kept, gone, basic); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	store, err := catalog.NewSQLiteStore(db, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := prune(ctx, store, dir); err != nil {
		t.Fatal(err)
	}
	paths, err := store.Paths(ctx)
	if err != nil {
		t.Fatal(err)
	}

	has := func(p string) bool {
		for _, q := range paths {
			if q == p {
				return true
			}
		}
		return false
	}
	if has(gone) || !has(kept) || !has(basic) {
		t.Errorf("paths after prune = %v", paths)
	}
}
