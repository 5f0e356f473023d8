package document

import (
	"testing"

	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

func TestContentValidate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Content)
		wantCode errors.Code
	}{
		{"valid", func(*Content) {}, ""},
		{"empty", func(c *Content) { *c = Content{} }, ""},
		{"duplicate field id", func(c *Content) {
			c.Footer.Fields[0].ID = "logo"
		}, errors.ErrCodeInvalidDocument},
		{"duplicate section id", func(c *Content) {
			c.Sections = append(c.Sections, Section{ID: "forecast"})
		}, errors.ErrCodeInvalidDocument},
		{"duplicate block id", func(c *Content) {
			c.Sections[0].Blocks = append(c.Sections[0].Blocks, Block{ID: "rain"})
		}, errors.ErrCodeInvalidDocument},
		{"bad block id", func(c *Content) {
			c.Sections[0].Blocks[0].ID = "a/b"
		}, errors.ErrCodeInvalidDocument},
		{"missing field type", func(c *Content) {
			c.Header.Fields[0].Config = nil
		}, errors.ErrCodeInvalidFieldType},
		{"bad global color", func(c *Content) {
			c.Style.PrimaryColor = style.String("not-a-color!")
		}, errors.ErrCodeInvalidStyle},
		{"bad field style", func(c *Content) {
			c.Header.Fields[0].Style = &style.Config{Heritable: style.Heritable{TextAlign: style.String("middle")}}
		}, errors.ErrCodeInvalidStyle},
		{"bad climate variable", func(c *Content) {
			c.Sections[0].Blocks[0].Fields[0].Config = ClimateConfig{Variable: "snow", Unit: "cm"}
		}, errors.ErrCodeInvalidDocument},
		{"select without options", func(c *Content) {
			c.Footer.Fields[0].Config = SelectConfig{}
		}, errors.ErrCodeInvalidDocument},
		{"number min above max", func(c *Content) {
			c.Footer.Fields[0].Config = NumberConfig{Min: style.Number(5), Max: style.Number(1)}
		}, errors.ErrCodeInvalidDocument},
		{"bad page size", func(c *Content) {
			c.Page = &Page{Size: "tabloid"}
		}, errors.ErrCodeInvalidDocument},
		{"bad image url", func(c *Content) {
			c.Header.Fields[0].Config = ImageConfig{URL: "not a url"}
		}, errors.ErrCodeInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sampleContent()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}
