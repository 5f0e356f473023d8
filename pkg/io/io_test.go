package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

func sampleDocument() document.Document {
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	return document.Document{
		Master: document.Master{
			ID:             "tpl-1",
			Kind:           document.KindTemplate,
			Name:           "Monthly bulletin",
			Status:         document.StatusPublished,
			CurrentVersion: 2,
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		Content: document.Content{
			Page:  &document.Page{Size: "a4", Orientation: "portrait", Columns: 2},
			Style: &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#0a4"), FontSize: style.Number(12)}},
			Header: &document.Container{Fields: []document.Field{{
				ID: "title", Label: "Title", Config: document.TextConfig{MaxLength: 80},
				Style: &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#0a4")}},
			}}},
			Sections: []document.Section{{
				ID:    "forecast",
				Label: "Forecast",
				Style: &style.Config{Local: style.Local{Padding: style.String("8px")}},
				Blocks: []document.Block{{
					ID: "rain",
					Container: document.Container{Fields: []document.Field{
						{ID: "rain_total", Label: "Rain", Config: document.ClimateConfig{Variable: "precipitation", Unit: "mm", Period: "monthly"}},
						{ID: "level", Label: "Level", Config: document.SelectConfig{Options: []document.Option{{Value: "low"}, {Value: "high"}}}, StyleManuallyEdited: true,
							Style: &style.Config{Heritable: style.Heritable{FontWeight: style.String("bold")}}},
					}},
				}},
			}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			want := sampleDocument()
			var buf bytes.Buffer
			if err := Write(&buf, format, want); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	in := `
master:
  kind: card
  name: Rain card
content:
  style_config:
    primary_color: "#123"
  header_config:
    fields:
      - field_id: total
        label: Total
        type: number
        field_config:
          unit: mm
          decimals: 1
  sections: []
`
	doc, err := Read(strings.NewReader(in), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	f := doc.Content.Header.Fields[0]
	cfg, ok := f.Config.(document.NumberConfig)
	if !ok {
		t.Fatalf("config = %T, want NumberConfig", f.Config)
	}
	if cfg.Unit != "mm" || cfg.Decimals != 1 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		in     string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{`, errors.ErrCodeInvalidInput},
		{"empty yaml", FormatYAML, ``, errors.ErrCodeInvalidInput},
		{"bad kind", FormatJSON, `{"master":{"kind":"poster","name":"x"},"content":{"sections":[]}}`, errors.ErrCodeInvalidKind},
		{"no name", FormatJSON, `{"master":{"kind":"card"},"content":{"sections":[]}}`, errors.ErrCodeInvalidDocument},
		{"unknown property", FormatJSON, `{"master":{"kind":"card","name":"x"},"content":{"style_config":{"colour":"red"},"sections":[]}}`, errors.ErrCodeInvalidInput},
		{"unknown field type", FormatYAML, "master: {kind: card, name: x}\ncontent:\n  header_config:\n    fields:\n      - {field_id: a, label: A, type: hologram}\n  sections: []\n", errors.ErrCodeInvalidFieldType},
		{"invalid style", FormatJSON, `{"master":{"kind":"card","name":"x"},"content":{"style_config":{"primary_color":"nope"},"sections":[]}}`, errors.ErrCodeInvalidStyle},
		{"unsupported format", Format("toml"), `x`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"doc.json", FormatJSON, true},
		{"dir/doc.YAML", FormatYAML, true},
		{"doc.yml", FormatYAML, true},
		{"doc.toml", "", false},
		{"doc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err == nil) != tt.ok {
				t.Fatalf("FormatFromPath(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := sampleDocument()

	for _, name := range []string{"out/doc.json", "out/doc.yaml"} {
		path := filepath.Join(dir, name)
		if err := ExportFile(path, want); err != nil {
			t.Fatalf("ExportFile(%s) error: %v", name, err)
		}
		got, err := ImportFile(path)
		if err != nil {
			t.Fatalf("ImportFile(%s) error: %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ImportFile(missing) error = %v", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.yaml")
	if err := os.WriteFile(path, []byte("primary_color: \"#fff\"\npadding: 4px\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var cfg style.Config
	if err := ReadFile(path, &cfg); err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if *cfg.PrimaryColor != "#fff" || *cfg.Padding != "4px" {
		t.Errorf("ReadFile() = %s", cfg)
	}
}
