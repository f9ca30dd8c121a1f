package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/cuesheet/internal/types"
)

func sampleDisc() *types.Disc {
	pregap := 2 * time.Second
	return &types.Disc{
		Title:     "Loveless",
		Performer: "My Bloody Valentine",
		Catalog:   "5012093510227",
		Comments:  []types.Comment{{Key: "GENRE", Value: "Shoegaze"}},
		Files: []types.File{{
			Path:   "Loveless.flac",
			Format: "WAVE",
			Tracks: []types.Track{
				{
					Number: "01", Format: "AUDIO", Title: "Only Shallow",
					Indices: []types.Index{{Number: "01", Offset: 0}},
				},
				{
					Number: "02", Format: "AUDIO", Title: "Loomer",
					Pregap: &pregap,
					Flags:  []string{"DCP", "PRE"},
					Indices: []types.Index{
						{Number: "00", Offset: 257*time.Second + 693333333},
						{Number: "01", Offset: 259 * time.Second},
					},
				},
			},
		}},
		Warnings: []types.Warning{{Line: 7, Message: "INDEX assigned to no TRACK"}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"", FormatText, false},
		{" text ", FormatText, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDisc(), FormatJSON); err != nil {
		t.Fatal(err)
	}

	var got discView
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if got.Title != "Loveless" || len(got.Files) != 1 || len(got.Files[0].Tracks) != 2 {
		t.Fatalf("unexpected structure: %+v", got)
	}

	loomer := got.Files[0].Tracks[1]
	if loomer.Pregap != "00:02:00" {
		t.Errorf("pregap = %q, want 00:02:00", loomer.Pregap)
	}
	if loomer.Indices[0].Offset != "04:17:52" {
		t.Errorf("INDEX 00 = %q, want 04:17:52", loomer.Indices[0].Offset)
	}
	if got.Files[0].Tracks[0].Pregap != "" {
		t.Error("absent pregap should be omitted")
	}
	if len(got.Warnings) != 1 || got.Warnings[0] != "line 7: INDEX assigned to no TRACK" {
		t.Errorf("warnings = %v", got.Warnings)
	}
	if strings.Contains(buf.String(), `"songwriter"`) {
		t.Error("empty songwriter should be omitted")
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDisc(), FormatYAML); err != nil {
		t.Fatal(err)
	}

	var got discView
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if got.Performer != "My Bloody Valentine" {
		t.Errorf("performer = %q", got.Performer)
	}
	if got.Files[0].Tracks[1].Flags[1] != "PRE" {
		t.Errorf("flags = %v", got.Files[0].Tracks[1].Flags)
	}
	if got.Comments[0].Key != "GENRE" {
		t.Errorf("comments = %v", got.Comments)
	}
}

func TestWrite_TOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDisc(), FormatTOML); err != nil {
		t.Fatal(err)
	}

	var got discView
	if _, err := toml.Decode(buf.String(), &got); err != nil {
		t.Fatalf("output is not valid TOML: %v\n%s", err, buf.String())
	}
	if got.Catalog != "5012093510227" {
		t.Errorf("catalog = %q", got.Catalog)
	}
	if got.Files[0].Tracks[1].Indices[1].Offset != "04:19:00" {
		t.Errorf("INDEX 01 = %q", got.Files[0].Tracks[1].Indices[1].Offset)
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDisc(), FormatText); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"Title:      Loveless",
		"GENRE:      Shoegaze",
		"Loveless.flac (WAVE)",
		"Only Shallow",
		"04:19:00",
		"pregap 00:02:00",
		"DCP PRE",
		"line 7: INDEX assigned to no TRACK",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, FormatJSON); err == nil {
		t.Error("expected error for nil disc")
	}
	if err := Write(&buf, sampleDisc(), Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWrite_EmptyDisc(t *testing.T) {
	for _, f := range Formats {
		var buf bytes.Buffer
		if err := Write(&buf, &types.Disc{}, f); err != nil {
			t.Errorf("Write(empty, %s) error = %v", f, err)
		}
	}
}
