package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bulletins/pkg/errors"
)

func mustMap(t *testing.T, m map[string]any) Config {
	t.Helper()
	c, err := FromMap(m)
	if err != nil {
		t.Fatalf("FromMap(%v): %v", m, err)
	}
	return c
}

// sampleValue returns a valid value for p that differs per variant.
func sampleValue(p Property, variant int) any {
	switch p {
	case FontSize, IconSize:
		return float64(10 + variant)
	case PrimaryColor, BackgroundColor, SecondaryColor, BorderColor:
		return []string{"#111", "#222"}[variant]
	default:
		return []string{"a", "b"}[variant]
	}
}

func TestCombineChildWinsForHeritable(t *testing.T) {
	for _, p := range HeritableProperties {
		t.Run(string(p), func(t *testing.T) {
			parent := mustMap(t, map[string]any{string(p): sampleValue(p, 0)})
			child := mustMap(t, map[string]any{string(p): sampleValue(p, 1)})

			got, ok := Combine(&parent, &child).Get(p)
			if !ok {
				t.Fatalf("Combine()[%s] missing", p)
			}
			if got != sampleValue(p, 1) {
				t.Errorf("Combine()[%s] = %v, want %v", p, got, sampleValue(p, 1))
			}
		})
	}
}

func TestCombineParentFallback(t *testing.T) {
	for _, p := range HeritableProperties {
		t.Run(string(p), func(t *testing.T) {
			parent := mustMap(t, map[string]any{string(p): sampleValue(p, 0)})

			for _, child := range []*Config{nil, {}} {
				got, ok := Combine(&parent, child).Get(p)
				if !ok || got != sampleValue(p, 0) {
					t.Errorf("Combine()[%s] = %v (%v), want %v", p, got, ok, sampleValue(p, 0))
				}
			}
		})
	}
}

func TestCombineLocalNeverFromParent(t *testing.T) {
	for _, p := range LocalProperties {
		t.Run(string(p), func(t *testing.T) {
			parent := mustMap(t, map[string]any{string(p): sampleValue(p, 0)})

			if v, ok := Combine(&parent, &Config{}).Get(p); ok {
				t.Errorf("Combine()[%s] = %v, want undefined", p, v)
			}

			child := mustMap(t, map[string]any{string(p): sampleValue(p, 1)})
			if v, _ := Combine(&parent, &child).Get(p); v != sampleValue(p, 1) {
				t.Errorf("Combine()[%s] = %v, want %v", p, v, sampleValue(p, 1))
			}
		})
	}
}

func TestCombineNilInputs(t *testing.T) {
	if got := Combine(nil, nil); !got.IsZero() {
		t.Errorf("Combine(nil, nil) = %v, want empty", got)
	}
}

func TestCombineSkipsEmptyStrings(t *testing.T) {
	parent := Config{Heritable: Heritable{PrimaryColor: String("#111")}}
	child := Config{
		Heritable: Heritable{PrimaryColor: String("")},
		Local:     Local{Padding: String("")},
	}

	got := Combine(&parent, &child)
	want := Config{Heritable: Heritable{PrimaryColor: String("#111")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Combine() mismatch (-want +got):\n%s", diff)
	}
}

func TestCombineDoesNotAlias(t *testing.T) {
	parent := Config{Heritable: Heritable{PrimaryColor: String("#111")}}
	child := Config{Local: Local{Padding: String("8px")}}

	got := Combine(&parent, &child)
	*got.PrimaryColor = "#999"
	*got.Padding = "0"

	if *parent.PrimaryColor != "#111" {
		t.Errorf("parent mutated: %s", *parent.PrimaryColor)
	}
	if *child.Padding != "8px" {
		t.Errorf("child mutated: %s", *child.Padding)
	}
}

func TestCascade(t *testing.T) {
	global := Config{
		Heritable: Heritable{PrimaryColor: String("#111"), FontSize: Number(12)},
		Local:     Local{Padding: String("16px")},
	}
	section := Config{Heritable: Heritable{FontSize: Number(14)}, Local: Local{Margin: String("4px")}}
	block := Config{Local: Local{BorderColor: String("#ccc")}}

	got := Cascade(&global, &section, &block)
	want := Config{
		Heritable: Heritable{PrimaryColor: String("#111"), FontSize: Number(14)},
		Local:     Local{BorderColor: String("#ccc")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Cascade() mismatch (-want +got):\n%s", diff)
	}

	if got := Cascade(&global); !cmp.Equal(got, global) {
		t.Errorf("Cascade(single) = %v, want %v", got, global)
	}
	if got := Cascade(); !got.IsZero() {
		t.Errorf("Cascade() = %v, want empty", got)
	}
}

func TestMergeSpreadSemantics(t *testing.T) {
	base := Config{Heritable: Heritable{PrimaryColor: String("#111"), FontSize: Number(12)}}
	over := Config{Heritable: Heritable{PrimaryColor: String("")}, Local: Local{Gap: String("2px")}}

	got := Merge(&base, &over)
	want := Config{
		Heritable: Heritable{PrimaryColor: String(""), FontSize: Number(12)},
		Local:     Local{Gap: String("2px")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
	if got := Merge(nil, nil); !got.IsZero() {
		t.Errorf("Merge(nil, nil) = %v, want empty", got)
	}
}

func TestInheritable(t *testing.T) {
	c := Config{
		Heritable: Heritable{PrimaryColor: String("#111"), Font: String("")},
		Local:     Local{Padding: String("8px")},
	}
	want := Config{Heritable: Heritable{PrimaryColor: String("#111")}}
	if diff := cmp.Diff(want, c.Inheritable()); diff != "" {
		t.Errorf("Inheritable() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMap(t *testing.T) {
	c, err := FromMap(map[string]any{"primary_color": "#222", "font_size": 14, "padding": "8px"})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	want := Config{
		Heritable: Heritable{PrimaryColor: String("#222"), FontSize: Number(14)},
		Local:     Local{Padding: String("8px")},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("FromMap() mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		in   map[string]any
	}{
		{"unknown property", map[string]any{"z_index": 3}},
		{"wrong type", map[string]any{"font_size": "big"}},
		{"boolean color", map[string]any{"primary_color": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.in)
			if !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("FromMap(%v) error = %v, want INVALID_STYLE", tt.in, err)
			}
		})
	}
}

func TestToMapRoundTrip(t *testing.T) {
	in := map[string]any{"primary_color": "#222", "font_size": float64(14), "border_radius": "4px"}
	c := mustMap(t, in)
	if diff := cmp.Diff(in, c.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}

	want := []Property{BorderRadius, FontSize, PrimaryColor}
	if diff := cmp.Diff(want, c.Properties()); diff != "" {
		t.Errorf("Properties() mismatch (-want +got):\n%s", diff)
	}
}

func TestWith(t *testing.T) {
	c, err := Config{}.With(TextAlign, "center")
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if v, _ := c.Get(TextAlign); v != "center" {
		t.Errorf("Get(text_align) = %v, want center", v)
	}
	if _, err := c.With("opacity", 1); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("With(opacity) error = %v, want INVALID_STYLE", err)
	}
}

func TestPartitionIsDisjointAndComplete(t *testing.T) {
	seen := map[Property]bool{}
	for _, p := range append(append([]Property{}, HeritableProperties...), LocalProperties...) {
		if seen[p] {
			t.Errorf("property %s listed twice", p)
		}
		seen[p] = true
		if p.IsHeritable() == p.IsLocal() {
			t.Errorf("property %s: heritable=%v local=%v", p, p.IsHeritable(), p.IsLocal())
		}
	}

	// Every JSON property of a fully populated Config is in exactly one list.
	full := Config{}
	for p := range seen {
		var err error
		full, err = full.With(p, sampleValue(p, 0))
		if err != nil {
			t.Fatalf("With(%s): %v", p, err)
		}
	}
	if len(full.ToMap()) != len(seen) {
		t.Errorf("ToMap() has %d properties, want %d", len(full.ToMap()), len(seen))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Config
		wantErr bool
	}{
		{"empty", Config{}, false},
		{"valid", Config{Heritable: Heritable{PrimaryColor: String("#111"), FontSize: Number(14), TextAlign: String("center")}}, false},
		{"empty string color", Config{Heritable: Heritable{PrimaryColor: String("")}}, false},
		{"bad color", Config{Heritable: Heritable{PrimaryColor: String("#12")}}, true},
		{"bad border color", Config{Local: Local{BorderColor: String("not a color")}}, true},
		{"negative size", Config{Heritable: Heritable{FontSize: Number(-1)}}, true},
		{"bad align", Config{Heritable: Heritable{TextAlign: String("middle")}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("Validate() code = %v, want INVALID_STYLE", errors.GetCode(err))
			}
		})
	}
}

func TestPropertyName(t *testing.T) {
	if got := propertyName("ListItemsLayout"); got != "list_items_layout" {
		t.Errorf("propertyName() = %q, want list_items_layout", got)
	}
}
