package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

func TestContainer(t *testing.T) {
	c := sampleContent()

	tests := []struct {
		name     string
		ref      ContainerRef
		wantCode errors.Code
		wantLen  int
	}{
		{"header", HeaderRef, "", 1},
		{"footer", FooterRef, "", 1},
		{"block", BlockRef("forecast", "rain"), "", 2},
		{"missing block", BlockRef("forecast", "wind"), errors.ErrCodeContainerNotFound, 0},
		{"missing section", BlockRef("outlook", "rain"), errors.ErrCodeContainerNotFound, 0},
		{"global", GlobalRef, errors.ErrCodeInvalidInput, 0},
		{"section", SectionRef("forecast"), errors.ErrCodeInvalidInput, 0},
		{"unknown", ContainerRef{Scope: "page"}, errors.ErrCodeInvalidInput, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := c.Container(tt.ref, false)
			if tt.wantCode != "" {
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Container(%s) error = %v", tt.ref, err)
			}
			if len(ct.Fields) != tt.wantLen {
				t.Errorf("len(Fields) = %d, want %d", len(ct.Fields), tt.wantLen)
			}
		})
	}
}

func TestContainerCreate(t *testing.T) {
	var c Content
	if _, err := c.Container(HeaderRef, false); !errors.Is(err, errors.ErrCodeContainerNotFound) {
		t.Fatalf("Container(header) error = %v, want not found", err)
	}
	ct, err := c.Container(HeaderRef, true)
	if err != nil {
		t.Fatalf("Container(header, create) error = %v", err)
	}
	if ct != c.Header {
		t.Error("created header should be stored on the content")
	}
}

func TestStylePtr(t *testing.T) {
	c := sampleContent()
	p, err := c.StylePtr(SectionRef("forecast"))
	if err != nil {
		t.Fatal(err)
	}
	*p = &style.Config{Heritable: style.Heritable{FontSize: style.Number(20)}}
	if *c.Sections[0].Style.FontSize != 20 {
		t.Error("StylePtr should address the section style slot")
	}

	if _, err := c.StylePtr(SectionRef("nope")); !errors.Is(err, errors.ErrCodeContainerNotFound) {
		t.Errorf("StylePtr(missing) error = %v", err)
	}

	var empty Content
	p, err = empty.StylePtr(FooterRef)
	if err != nil || p == nil || empty.Footer == nil {
		t.Errorf("StylePtr(footer) on empty content = %v, %v", p, err)
	}
}

func TestStyleChain(t *testing.T) {
	c := sampleContent()

	chain, err := c.StyleChain(BlockRef("forecast", "rain"))
	if err != nil {
		t.Fatal(err)
	}
	want := []*style.Config{c.Style, c.Sections[0].Style, c.Sections[0].Blocks[0].Style}
	if diff := cmp.Diff(want, chain); diff != "" {
		t.Errorf("StyleChain(block) mismatch (-want +got):\n%s", diff)
	}

	chain, err = c.StyleChain(HeaderRef)
	if err != nil || len(chain) != 2 || chain[0] != c.Style || chain[1] != nil {
		t.Errorf("StyleChain(header) = %v, %v", chain, err)
	}

	if _, err := c.StyleChain(BlockRef("forecast", "wind")); err == nil {
		t.Error("StyleChain(missing block) should fail")
	}
}

func TestWalkOrderAndFindField(t *testing.T) {
	c := sampleContent()

	var ids []string
	for _, f := range c.Fields() {
		ids = append(ids, f.ID)
	}
	want := []string{"logo", "rain_total", "rain_note", "issued"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Fields() order mismatch (-want +got):\n%s", diff)
	}

	loc, ok := c.FindField("rain_note")
	if !ok {
		t.Fatal("FindField(rain_note) not found")
	}
	if loc.Container != BlockRef("forecast", "rain") || loc.Index != 1 {
		t.Errorf("FindField(rain_note) = %+v", loc)
	}
	if _, ok := c.FindField("missing"); ok {
		t.Error("FindField(missing) should not be found")
	}

	visited := 0
	c.Walk(func(ContainerRef, *Container) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("Walk visited %d containers after stop, want 1", visited)
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := sampleContent()
	cp := c.Clone()

	if diff := cmp.Diff(c, cp); diff != "" {
		t.Fatalf("Clone() mismatch (-orig +clone):\n%s", diff)
	}

	*cp.Style.Font = "Roboto"
	*cp.Sections[0].Style.FontSize = 99
	*cp.Sections[0].Blocks[0].Fields[1].Style.PrimaryColor = "#000"
	cp.Header.Fields[0].ID = "other"

	if *c.Style.Font != "Inter" || *c.Sections[0].Style.FontSize != 14 {
		t.Error("container styles aliased")
	}
	if *c.Sections[0].Blocks[0].Fields[1].Style.PrimaryColor != "#999" {
		t.Error("field style aliased")
	}
	if c.Header.Fields[0].ID != "logo" {
		t.Error("header fields aliased")
	}
}

func TestInstantiateBulletin(t *testing.T) {
	tmpl := sampleContent()
	b := InstantiateBulletin(tmpl)

	for _, f := range b.Fields() {
		if f.Value != nil {
			t.Errorf("field %s value = %v, want nil", f.ID, f.Value)
		}
	}
	note := b.Sections[0].Blocks[0].Fields[1]
	if !note.StyleManuallyEdited || *note.Style.PrimaryColor != "#999" {
		t.Errorf("style state lost: %+v", note)
	}
	if tmpl.Sections[0].Blocks[0].Fields[0].Value != 12.5 {
		t.Error("template values should be kept")
	}
}

func TestContainerRefString(t *testing.T) {
	tests := []struct {
		ref  ContainerRef
		want string
	}{
		{GlobalRef, "global"},
		{HeaderRef, "header"},
		{SectionRef("s1"), "section:s1"},
		{BlockRef("s1", "b1"), "block:s1/b1"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if tt.ref.HoldsFields() != (tt.ref.Scope == ScopeHeader || tt.ref.Scope == ScopeBlock) {
			t.Errorf("%s HoldsFields() = %v", tt.ref, tt.ref.HoldsFields())
		}
	}
}
