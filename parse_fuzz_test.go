package cuesheet_test

import (
	"bytes"
	"os"
	"reflect"
	"testing"

	"github.com/simonhull/cuesheet"
)

// FuzzParse feeds arbitrary bytes to both modes. An in-memory source fails
// only with a parse error, and whatever parses strictly must parse to the
// same disc leniently.
func FuzzParse(f *testing.F) {
	for _, path := range []string{"testdata/basic.cue", "testdata/full.cue", "testdata/lenient.cue", "testdata/bom_crlf.cue"} {
		data, err := os.ReadFile(path)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(data)
	}
	f.Add([]byte("TITLE \"unterminated\n"))
	f.Add([]byte("INDEX 01 99:99:99\n"))
	f.Add([]byte("FILE\n"))
	f.Add([]byte("\xef\xbb\xbfREM \xff\xfe\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		lenient, lerr := cuesheet.Parse(bytes.NewReader(data))
		if lerr != nil && !cuesheet.IsParseError(lerr) {
			t.Fatalf("lenient parse returned a non-parse error: %v", lerr)
		}

		strict, err := cuesheet.Parse(bytes.NewReader(data), cuesheet.WithStrictParsing())
		if err != nil {
			if !cuesheet.IsParseError(err) {
				t.Fatalf("strict parse returned a non-parse error: %v", err)
			}
			return
		}
		if lerr != nil {
			t.Fatalf("strict success but lenient failed: %v", lerr)
		}
		if len(lenient.Warnings) != 0 {
			t.Errorf("strict success but lenient warned: %v", lenient.Warnings)
		}
		if !reflect.DeepEqual(strict, lenient) {
			t.Errorf("lenient result differs from strict:\nstrict:  %+v\nlenient: %+v", strict, lenient)
		}
	})
}
