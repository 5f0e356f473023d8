package document

import (
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

// Container holds a style and an ordered sequence of fields. Header, footer
// and blocks are containers.
type Container struct {
	Style  *style.Config `json:"style_config,omitempty" yaml:"style_config,omitempty" msgpack:"style_config,omitempty"`
	Fields []Field       `json:"fields" yaml:"fields" msgpack:"fields"`
}

// Block is a container inside a section.
type Block struct {
	ID        string `json:"block_id" yaml:"block_id" msgpack:"block_id"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Container `yaml:",inline" msgpack:",inline"`
}

// Section groups blocks and carries a section-level style.
type Section struct {
	ID     string        `json:"section_id" yaml:"section_id" msgpack:"section_id"`
	Label  string        `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	Style  *style.Config `json:"style_config,omitempty" yaml:"style_config,omitempty" msgpack:"style_config,omitempty"`
	Blocks []Block       `json:"blocks" yaml:"blocks" msgpack:"blocks"`
}

// Page describes the sheet a document is laid out on.
type Page struct {
	Size        string `json:"size,omitempty" yaml:"size,omitempty" msgpack:"size,omitempty" validate:"omitempty,oneof=a4 a3 letter legal"`
	Orientation string `json:"orientation,omitempty" yaml:"orientation,omitempty" msgpack:"orientation,omitempty" validate:"omitempty,oneof=portrait landscape"`
	Columns     int    `json:"columns,omitempty" yaml:"columns,omitempty" msgpack:"columns,omitempty" validate:"gte=0,lte=4"`
}

// Content is the tree held by a document version.
type Content struct {
	Page     *Page         `json:"page,omitempty" yaml:"page,omitempty" msgpack:"page,omitempty"`
	Style    *style.Config `json:"style_config,omitempty" yaml:"style_config,omitempty" msgpack:"style_config,omitempty"`
	Header   *Container    `json:"header_config,omitempty" yaml:"header_config,omitempty" msgpack:"header_config,omitempty"`
	Footer   *Container    `json:"footer_config,omitempty" yaml:"footer_config,omitempty" msgpack:"footer_config,omitempty"`
	Sections []Section     `json:"sections" yaml:"sections" msgpack:"sections"`
}

// Scope names a level of the content tree that carries a style.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeHeader  Scope = "header"
	ScopeFooter  Scope = "footer"
	ScopeSection Scope = "section"
	ScopeBlock   Scope = "block"
)

// ContainerRef addresses a style holder in a Content.
type ContainerRef struct {
	Scope     Scope  `json:"scope" yaml:"scope"`
	SectionID string `json:"section_id,omitempty" yaml:"section_id,omitempty"`
	BlockID   string `json:"block_id,omitempty" yaml:"block_id,omitempty"`
}

// Convenience constructors for ContainerRef.
var (
	GlobalRef = ContainerRef{Scope: ScopeGlobal}
	HeaderRef = ContainerRef{Scope: ScopeHeader}
	FooterRef = ContainerRef{Scope: ScopeFooter}
)

// SectionRef addresses a section.
func SectionRef(sectionID string) ContainerRef {
	return ContainerRef{Scope: ScopeSection, SectionID: sectionID}
}

// BlockRef addresses a block.
func BlockRef(sectionID, blockID string) ContainerRef {
	return ContainerRef{Scope: ScopeBlock, SectionID: sectionID, BlockID: blockID}
}

// HoldsFields reports whether the referenced level holds fields directly.
func (r ContainerRef) HoldsFields() bool {
	return r.Scope == ScopeHeader || r.Scope == ScopeFooter || r.Scope == ScopeBlock
}

func (r ContainerRef) String() string {
	switch r.Scope {
	case ScopeSection:
		return "section:" + r.SectionID
	case ScopeBlock:
		return "block:" + r.SectionID + "/" + r.BlockID
	default:
		return string(r.Scope)
	}
}

// Section returns the section with the given ID.
func (c *Content) Section(id string) (*Section, bool) {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i], true
		}
	}
	return nil, false
}

// Container returns the field container addressed by ref. Header and footer
// containers are created on demand when create is true.
func (c *Content) Container(ref ContainerRef, create bool) (*Container, error) {
	switch ref.Scope {
	case ScopeHeader:
		if c.Header == nil && create {
			c.Header = &Container{}
		}
		if c.Header != nil {
			return c.Header, nil
		}
	case ScopeFooter:
		if c.Footer == nil && create {
			c.Footer = &Container{}
		}
		if c.Footer != nil {
			return c.Footer, nil
		}
	case ScopeBlock:
		if s, ok := c.Section(ref.SectionID); ok {
			for i := range s.Blocks {
				if s.Blocks[i].ID == ref.BlockID {
					return &s.Blocks[i].Container, nil
				}
			}
		}
	case ScopeGlobal, ScopeSection:
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s does not hold fields", ref)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown container scope: %q", ref.Scope)
	}
	return nil, errors.New(errors.ErrCodeContainerNotFound, "container %s not found", ref)
}

// StylePtr returns the address of the style slot of ref, so callers can
// replace it.
func (c *Content) StylePtr(ref ContainerRef) (**style.Config, error) {
	switch ref.Scope {
	case ScopeGlobal:
		return &c.Style, nil
	case ScopeSection:
		if s, ok := c.Section(ref.SectionID); ok {
			return &s.Style, nil
		}
		return nil, errors.New(errors.ErrCodeContainerNotFound, "container %s not found", ref)
	default:
		ct, err := c.Container(ref, true)
		if err != nil {
			return nil, err
		}
		return &ct.Style, nil
	}
}

// StyleChain returns the styles applying at ref ordered from the outermost
// to the innermost. Nil entries stand for levels without a style.
func (c *Content) StyleChain(ref ContainerRef) ([]*style.Config, error) {
	switch ref.Scope {
	case ScopeGlobal:
		return []*style.Config{c.Style}, nil
	case ScopeHeader, ScopeFooter:
		ct, err := c.Container(ref, false)
		if err != nil {
			return []*style.Config{c.Style, nil}, nil
		}
		return []*style.Config{c.Style, ct.Style}, nil
	case ScopeSection:
		s, ok := c.Section(ref.SectionID)
		if !ok {
			return nil, errors.New(errors.ErrCodeContainerNotFound, "container %s not found", ref)
		}
		return []*style.Config{c.Style, s.Style}, nil
	case ScopeBlock:
		s, ok := c.Section(ref.SectionID)
		if !ok {
			return nil, errors.New(errors.ErrCodeContainerNotFound, "container %s not found", ref)
		}
		ct, err := c.Container(ref, false)
		if err != nil {
			return nil, err
		}
		return []*style.Config{c.Style, s.Style, ct.Style}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown container scope: %q", ref.Scope)
	}
}

// Walk calls fn for every field container in document order: header, each
// block of each section, footer. Returning false stops the walk.
func (c *Content) Walk(fn func(ref ContainerRef, ct *Container) bool) {
	if c.Header != nil && !fn(HeaderRef, c.Header) {
		return
	}
	for i := range c.Sections {
		s := &c.Sections[i]
		for j := range s.Blocks {
			if !fn(BlockRef(s.ID, s.Blocks[j].ID), &s.Blocks[j].Container) {
				return
			}
		}
	}
	if c.Footer != nil {
		fn(FooterRef, c.Footer)
	}
}

// FieldLocation is the position of a field in a Content.
type FieldLocation struct {
	Container ContainerRef
	Index     int
}

// FindField locates the field with the given ID.
func (c *Content) FindField(id string) (FieldLocation, bool) {
	var loc FieldLocation
	found := false
	c.Walk(func(ref ContainerRef, ct *Container) bool {
		for i := range ct.Fields {
			if ct.Fields[i].ID == id {
				loc = FieldLocation{Container: ref, Index: i}
				found = true
				return false
			}
		}
		return true
	})
	return loc, found
}

// Fields returns every field in document order.
func (c *Content) Fields() []Field {
	var out []Field
	c.Walk(func(_ ContainerRef, ct *Container) bool {
		out = append(out, ct.Fields...)
		return true
	})
	return out
}

// Clone returns a deep copy of c.
func (c Content) Clone() Content {
	out := Content{Style: cloneStyle(c.Style)}
	if c.Page != nil {
		p := *c.Page
		out.Page = &p
	}
	if c.Header != nil {
		h := c.Header.Clone()
		out.Header = &h
	}
	if c.Footer != nil {
		f := c.Footer.Clone()
		out.Footer = &f
	}
	if c.Sections != nil {
		out.Sections = make([]Section, len(c.Sections))
		for i, s := range c.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of ct.
func (ct Container) Clone() Container {
	out := Container{Style: cloneStyle(ct.Style)}
	if ct.Fields != nil {
		out.Fields = make([]Field, len(ct.Fields))
		for i, f := range ct.Fields {
			out.Fields[i] = f.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	out := Section{ID: s.ID, Label: s.Label, Style: cloneStyle(s.Style)}
	if s.Blocks != nil {
		out.Blocks = make([]Block, len(s.Blocks))
		for i, b := range s.Blocks {
			out.Blocks[i] = Block{ID: b.ID, Label: b.Label, Container: b.Container.Clone()}
		}
	}
	return out
}

func cloneStyle(s *style.Config) *style.Config {
	if s == nil {
		return nil
	}
	c := s.Clone()
	return &c
}

// InstantiateBulletin returns a copy of a template's content to start a
// bulletin from. Structure, styles and the manual-edit state of every field
// are kept; values are cleared.
func InstantiateBulletin(template Content) Content {
	out := template.Clone()
	out.Walk(func(_ ContainerRef, ct *Container) bool {
		for i := range ct.Fields {
			ct.Fields[i].Value = nil
		}
		return true
	})
	return out
}
