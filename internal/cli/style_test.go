package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bulletins/pkg/document"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func decodeMap(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return m
}

func TestStyleCombine(t *testing.T) {
	parent := writeFile(t, "parent.json", `{"primary_color": "#111", "font_size": 12, "padding": "4px"}`)
	child := writeFile(t, "child.yaml", "primary_color: \"#222\"\n")

	out, err := run(t, newTestCLI(t), "style", "combine", parent, child)
	if err != nil {
		t.Fatalf("style combine: %v", err)
	}
	want := map[string]any{"primary_color": "#222", "font_size": 12.0}
	if diff := cmp.Diff(want, decodeMap(t, out)); diff != "" {
		t.Errorf("combined style mismatch (-want +got):\n%s", diff)
	}
}

func TestStyleCombineYAMLOutput(t *testing.T) {
	parent := writeFile(t, "parent.json", `{"font": "Lato"}`)
	child := writeFile(t, "child.json", `{}`)

	out, err := run(t, newTestCLI(t), "style", "combine", "-o", "yaml", parent, child)
	if err != nil {
		t.Fatalf("style combine: %v", err)
	}
	if strings.TrimSpace(out) != "font: Lato" {
		t.Errorf("yaml output = %q", out)
	}
}

func TestStyleResolve(t *testing.T) {
	field := writeFile(t, "field.json", `{"field_id": "title", "label": "Title", "type": "text", "style_config": {"font_size": 10}}`)
	container := writeFile(t, "container.json", `{"primary_color": "#333", "padding": "2px"}`)

	out, err := run(t, newTestCLI(t), "style", "resolve", field, "--container", container)
	if err != nil {
		t.Fatalf("style resolve: %v", err)
	}
	want := map[string]any{"primary_color": "#333", "font_size": 10.0, "padding": "2px"}
	if diff := cmp.Diff(want, decodeMap(t, out)); diff != "" {
		t.Errorf("resolved style mismatch (-want +got):\n%s", diff)
	}
}

func TestStylePropagate(t *testing.T) {
	fields := writeFile(t, "fields.yaml", `
- field_id: title
  label: Title
  type: text
- field_id: note
  label: Note
  type: text
  style_config:
    primary_color: "#999"
  style_manually_edited: true
`)
	container := writeFile(t, "container.yaml", "primary_color: \"#0a4\"\nborder_width: 1px\n")

	out, err := run(t, newTestCLI(t), "style", "propagate", fields, "-c", container)
	if err != nil {
		t.Fatalf("style propagate: %v", err)
	}
	var got []document.Field
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d fields, want 2", len(got))
	}
	if got[0].Style == nil || *got[0].Style.PrimaryColor != "#0a4" {
		t.Errorf("inheriting field style = %v", got[0].Style)
	}
	if got[0].Style.BorderWidth != nil {
		t.Error("local-only property must not propagate")
	}
	if *got[1].Style.PrimaryColor != "#999" || !got[1].StyleManuallyEdited {
		t.Errorf("manual field changed: %v", got[1].Style)
	}
}

func TestStyleProps(t *testing.T) {
	out, err := run(t, newTestCLI(t), "style", "props")
	if err != nil {
		t.Fatalf("style props: %v", err)
	}
	for _, want := range []string{"primary_color", "list_items_layout", "border_radius", "heritable", "local"} {
		if !strings.Contains(out, want) {
			t.Errorf("props output missing %q", want)
		}
	}
}

func TestStyleErrors(t *testing.T) {
	good := writeFile(t, "good.json", `{}`)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown property", []string{"style", "combine", writeFile(t, "bad.json", `{"colour": "red"}`), good}},
		{"unsupported extension", []string{"style", "combine", writeFile(t, "style.txt", `{}`), good}},
		{"missing file", []string{"style", "combine", filepath.Join(t.TempDir(), "none.json"), good}},
		{"bad output format", []string{"style", "combine", "-o", "xml", good, good}},
		{"wrong arg count", []string{"style", "combine", good}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, newTestCLI(t), tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
