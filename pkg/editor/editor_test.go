package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/inherit"
	"github.com/matzehuels/bulletins/pkg/style"
)

var rainBlock = document.BlockRef("forecast", "rain")

// newContent builds a tree whose fields were all created through seeding.
func newContent(t *testing.T) document.Content {
	t.Helper()
	c := document.Content{
		Style: &style.Config{
			Heritable: style.Heritable{PrimaryColor: style.String("#111"), Font: style.String("Inter")},
			Local:     style.Local{Padding: style.String("16px")},
		},
		Sections: []document.Section{{
			ID:     "forecast",
			Style:  &style.Config{Heritable: style.Heritable{FontSize: style.Number(14)}},
			Blocks: []document.Block{{ID: "rain"}, {ID: "temp"}},
		}},
	}

	var err error
	add := func(ref document.ContainerRef, id string) {
		c, err = AddField(c, ref, document.Field{ID: id, Label: id, Config: document.TextConfig{}})
		if err != nil {
			t.Fatalf("AddField(%s): %v", id, err)
		}
	}
	add(document.HeaderRef, "title")
	add(rainBlock, "rain_total")
	add(rainBlock, "rain_note")
	add(document.BlockRef("forecast", "temp"), "temp_max")
	add(document.FooterRef, "issued")
	return c
}

func field(t *testing.T, c document.Content, id string) document.Field {
	t.Helper()
	loc, ok := c.FindField(id)
	if !ok {
		t.Fatalf("field %q not found", id)
	}
	ct, err := c.Container(loc.Container, false)
	if err != nil {
		t.Fatal(err)
	}
	return ct.Fields[loc.Index]
}

func TestEffectiveContainerStyle(t *testing.T) {
	c := newContent(t)

	tests := []struct {
		name string
		ref  document.ContainerRef
		want style.Config
	}{
		{"global keeps its own local", document.GlobalRef, style.Config{
			Heritable: style.Heritable{PrimaryColor: style.String("#111"), Font: style.String("Inter")},
			Local:     style.Local{Padding: style.String("16px")},
		}},
		{"block cascades heritable only", rainBlock, style.Config{
			Heritable: style.Heritable{PrimaryColor: style.String("#111"), Font: style.String("Inter"), FontSize: style.Number(14)},
		}},
		{"header inherits global", document.HeaderRef, style.Config{
			Heritable: style.Heritable{PrimaryColor: style.String("#111"), Font: style.String("Inter")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveContainerStyle(c, tt.ref)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EffectiveContainerStyle(%s) mismatch (-want +got):\n%s", tt.ref, diff)
			}
		})
	}

	if _, err := EffectiveContainerStyle(c, document.SectionRef("none")); !errors.Is(err, errors.ErrCodeContainerNotFound) {
		t.Errorf("missing section error = %v", err)
	}
}

func TestAddFieldSeeds(t *testing.T) {
	c := newContent(t)
	got := field(t, c, "rain_total")

	want := &style.Config{Heritable: style.Heritable{
		PrimaryColor: style.String("#111"),
		Font:         style.String("Inter"),
		FontSize:     style.Number(14),
	}}
	if diff := cmp.Diff(want, got.Style); diff != "" {
		t.Errorf("seeded style mismatch (-want +got):\n%s", diff)
	}
	if got.StyleManuallyEdited {
		t.Error("added field should inherit")
	}
}

func TestAddFieldErrors(t *testing.T) {
	c := newContent(t)

	tests := []struct {
		name string
		ref  document.ContainerRef
		f    document.Field
		want errors.Code
	}{
		{"duplicate", rainBlock, document.Field{ID: "title", Config: document.TextConfig{}}, errors.ErrCodeConflict},
		{"section holds no fields", document.SectionRef("forecast"), document.Field{ID: "x", Config: document.TextConfig{}}, errors.ErrCodeInvalidInput},
		{"missing block", document.BlockRef("forecast", "wind"), document.Field{ID: "x", Config: document.TextConfig{}}, errors.ErrCodeContainerNotFound},
		{"no type", rainBlock, document.Field{ID: "x"}, errors.ErrCodeInvalidFieldType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := AddField(c, tt.ref, tt.f)
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("AddField() code = %q, want %q (err %v)", got, tt.want, err)
			}
			if diff := cmp.Diff(c, out); diff != "" {
				t.Errorf("content changed on error:\n%s", diff)
			}
		})
	}
}

func TestSetContainerStyleGlobal(t *testing.T) {
	c := newContent(t)
	c, err := SetFieldStyle(c, "rain_note", &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#999")}})
	if err != nil {
		t.Fatal(err)
	}

	next := &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#222")}}
	out, res, err := SetContainerStyle(c, document.GlobalRef, next)
	if err != nil {
		t.Fatal(err)
	}

	if res.Containers != 4 || res.Inheriting != 4 || res.Manual != 1 {
		t.Errorf("result = %+v, want 4 containers, 4 inheriting, 1 manual", res)
	}
	for _, id := range []string{"title", "rain_total", "temp_max", "issued"} {
		f := field(t, out, id)
		if *f.Style.PrimaryColor != "#222" {
			t.Errorf("%s primary_color = %q, want #222", id, *f.Style.PrimaryColor)
		}
		if f.Style.Font != nil {
			t.Errorf("%s still carries font from the old global style", id)
		}
	}
	if note := field(t, out, "rain_note"); *note.Style.PrimaryColor != "#999" {
		t.Errorf("manual field changed: %s", note.Style)
	}
	if *field(t, c, "title").Style.PrimaryColor != "#111" {
		t.Error("input content mutated")
	}
}

func TestSetContainerStyleSectionScope(t *testing.T) {
	c := newContent(t)

	out, res, err := SetContainerStyle(c, document.SectionRef("forecast"), &style.Config{Heritable: style.Heritable{FontSize: style.Number(20)}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Containers != 2 {
		t.Errorf("Containers = %d, want 2", res.Containers)
	}
	if got := *field(t, out, "temp_max").Style.FontSize; got != 20 {
		t.Errorf("temp_max font_size = %v, want 20", got)
	}
	if field(t, out, "title").Style.FontSize != nil {
		t.Error("header field should not see section styles")
	}
}

func TestSetContainerStyleBlockLocalNotPropagated(t *testing.T) {
	c := newContent(t)

	out, _, err := SetContainerStyle(c, rainBlock, &style.Config{
		Heritable: style.Heritable{TextAlign: style.String("center")},
		Local:     style.Local{Gap: style.String("4px")},
	})
	if err != nil {
		t.Fatal(err)
	}
	f := field(t, out, "rain_total")
	if f.Style.Gap != nil {
		t.Error("local-only property propagated into a field")
	}
	if f.Style.TextAlign == nil || *f.Style.TextAlign != "center" {
		t.Errorf("text_align = %v, want center", f.Style.TextAlign)
	}
	if field(t, out, "temp_max").Style.TextAlign != nil {
		t.Error("sibling block affected")
	}

	// The renderer still places the field in the block's box.
	if gap := ResolveAll(out)["rain_total"].Gap; gap == nil || *gap != "4px" {
		t.Errorf("resolved gap = %v, want 4px", gap)
	}
}

func TestSetContainerStyleMissing(t *testing.T) {
	c := newContent(t)
	if _, _, err := SetContainerStyle(c, document.BlockRef("forecast", "wind"), nil); !errors.Is(err, errors.ErrCodeContainerNotFound) {
		t.Errorf("error = %v, want container not found", err)
	}
}

func TestSetAndResetFieldStyle(t *testing.T) {
	c := newContent(t)

	edited, err := SetFieldStyle(c, "rain_total", &style.Config{Local: style.Local{Margin: style.String("2px")}})
	if err != nil {
		t.Fatal(err)
	}
	f := field(t, edited, "rain_total")
	if inherit.StateOf(f) != inherit.Manual {
		t.Fatal("SetFieldStyle() should mark the field manual")
	}
	if f.Style.PrimaryColor != nil {
		t.Error("SetFieldStyle() should replace, not merge")
	}

	reset, err := ResetFieldStyle(edited, "rain_total")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(field(t, c, "rain_total"), field(t, reset, "rain_total")); diff != "" {
		t.Errorf("reset field differs from freshly seeded one (-want +got):\n%s", diff)
	}

	if _, err := ResetFieldStyle(c, "nope"); !errors.Is(err, errors.ErrCodeFieldNotFound) {
		t.Errorf("ResetFieldStyle(missing) error = %v", err)
	}
}

func TestMarkFieldManualAndValue(t *testing.T) {
	c := newContent(t)

	out, err := MarkFieldManual(c, "issued")
	if err != nil {
		t.Fatal(err)
	}
	out, err = SetFieldValue(out, "issued", "2026-10-01")
	if err != nil {
		t.Fatal(err)
	}
	f := field(t, out, "issued")
	if !f.StyleManuallyEdited || f.Value != "2026-10-01" {
		t.Errorf("field = %+v", f)
	}
	if field(t, c, "issued").Value != nil {
		t.Error("input content mutated")
	}
}

func TestRemoveField(t *testing.T) {
	c := newContent(t)

	out, err := RemoveField(c, "rain_total")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.FindField("rain_total"); ok {
		t.Error("field still present")
	}
	if _, ok := c.FindField("rain_total"); !ok {
		t.Error("input content mutated")
	}
	if _, err := RemoveField(out, "rain_total"); !errors.Is(err, errors.ErrCodeFieldNotFound) {
		t.Errorf("second RemoveField() error = %v", err)
	}
}

func TestMoveField(t *testing.T) {
	c := newContent(t)
	c, err := SetFieldStyle(c, "rain_note", &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#999")}})
	if err != nil {
		t.Fatal(err)
	}

	out, err := MoveField(c, "rain_total", document.HeaderRef, 0)
	if err != nil {
		t.Fatal(err)
	}
	loc, _ := out.FindField("rain_total")
	if loc.Container != document.HeaderRef || loc.Index != 0 {
		t.Errorf("location = %+v", loc)
	}
	if field(t, out, "rain_total").Style.FontSize != nil {
		t.Error("moved inheriting field should be re-seeded from the header")
	}

	out, err = MoveField(out, "rain_note", document.FooterRef, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := *field(t, out, "rain_note").Style.PrimaryColor; got != "#999" {
		t.Errorf("moved manual field style = %q, want #999", got)
	}

	if _, err := MoveField(c, "rain_total", document.HeaderRef, 5); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("out of range error = %v", err)
	}
}

func TestAddSectionAndBlock(t *testing.T) {
	c := newContent(t)

	out, err := AddSection(c, document.Section{
		ID:    "outlook",
		Style: &style.Config{Heritable: style.Heritable{FontWeight: style.String("bold")}},
		Blocks: []document.Block{{
			ID:        "summary",
			Container: document.Container{Fields: []document.Field{{ID: "summary_text", Config: document.TextConfig{}}}},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	f := field(t, out, "summary_text")
	if f.Style == nil || f.Style.FontWeight == nil || *f.Style.PrimaryColor != "#111" {
		t.Errorf("section fields not seeded: %v", f.Style)
	}
	if _, err := AddSection(out, document.Section{ID: "outlook"}); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate section error = %v", err)
	}

	out, err = AddBlock(out, "outlook", document.Block{
		ID:        "extra",
		Container: document.Container{Fields: []document.Field{{ID: "extra_text", Config: document.TextConfig{}}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := field(t, out, "extra_text").Style; got == nil || got.FontWeight == nil {
		t.Errorf("block fields not seeded: %v", got)
	}
	if _, err := AddBlock(out, "outlook", document.Block{ID: "extra"}); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate block error = %v", err)
	}
	if _, err := AddBlock(out, "none", document.Block{ID: "b"}); !errors.Is(err, errors.ErrCodeContainerNotFound) {
		t.Errorf("missing section error = %v", err)
	}
	if _, err := AddSection(out, document.Section{
		ID:     "dup_field",
		Blocks: []document.Block{{ID: "b", Container: document.Container{Fields: []document.Field{{ID: "title", Config: document.TextConfig{}}}}}},
	}); !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("duplicate field error = %v", err)
	}
}

func TestResolveAll(t *testing.T) {
	c := newContent(t)
	c, err := SetFieldStyle(c, "rain_note", &style.Config{Heritable: style.Heritable{PrimaryColor: style.String("#999")}})
	if err != nil {
		t.Fatal(err)
	}

	got := ResolveAll(c)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	note := got["rain_note"]
	if *note.PrimaryColor != "#999" || *note.FontSize != 14 || *note.Font != "Inter" {
		t.Errorf("rain_note resolved = %s", note)
	}
	if got["title"].Padding != nil {
		t.Error("global padding leaked into a header field")
	}
}
