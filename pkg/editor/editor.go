package editor

import (
	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/inherit"
	"github.com/matzehuels/bulletins/pkg/style"
)

// PropagationResult describes what a container style change touched.
type PropagationResult struct {
	// Containers is the number of field containers re-propagated.
	Containers int

	// Inheriting is the number of fields that were re-seeded.
	Inheriting int

	// Manual is the number of fields left alone because they were manually
	// edited.
	Manual int
}

// EffectiveContainerStyle returns the cascaded style of the container at
// ref. This is the style fields in that container inherit from.
func EffectiveContainerStyle(c document.Content, ref document.ContainerRef) (style.Config, error) {
	chain, err := c.StyleChain(ref)
	if err != nil {
		return style.Config{}, err
	}
	return style.Cascade(chain...), nil
}

// SetContainerStyle replaces the style at ref with a copy of cfg (nil clears
// it) and propagates the change into every field container below ref.
func SetContainerStyle(c document.Content, ref document.ContainerRef, cfg *style.Config) (document.Content, PropagationResult, error) {
	out := c.Clone()
	slot, err := out.StylePtr(ref)
	if err != nil {
		return c, PropagationResult{}, err
	}
	*slot = nil
	if cfg != nil {
		*slot = cfg.Clone().Ptr()
	}

	var res PropagationResult
	out.Walk(func(r document.ContainerRef, ct *document.Container) bool {
		if !affects(ref, r) {
			return true
		}
		eff, e := EffectiveContainerStyle(out, r)
		if e != nil {
			err = e
			return false
		}
		ct.Fields = inherit.Propagate(ct.Fields, &eff)
		res.Containers++
		for _, f := range ct.Fields {
			if f.StyleManuallyEdited {
				res.Manual++
			} else {
				res.Inheriting++
			}
		}
		return true
	})
	if err != nil {
		return c, PropagationResult{}, err
	}
	return out, res, nil
}

// affects reports whether a style change at changed reaches the field
// container at target.
func affects(changed, target document.ContainerRef) bool {
	switch changed.Scope {
	case document.ScopeGlobal:
		return true
	case document.ScopeSection:
		return target.Scope == document.ScopeBlock && target.SectionID == changed.SectionID
	default:
		return changed == target
	}
}

// SetFieldStyle replaces the style of a field with a copy of cfg and marks it
// manually edited.
func SetFieldStyle(c document.Content, fieldID string, cfg *style.Config) (document.Content, error) {
	return updateField(c, fieldID, func(_ style.Config, f document.Field) document.Field {
		return inherit.SetStyle(f, cfg)
	})
}

// ResetFieldStyle moves a field back to inheriting and re-seeds it from the
// effective style of its container.
func ResetFieldStyle(c document.Content, fieldID string) (document.Content, error) {
	return updateField(c, fieldID, func(eff style.Config, f document.Field) document.Field {
		return inherit.ResetToInherited(f, &eff)
	})
}

// MarkFieldManual marks a field manually edited without changing its style.
func MarkFieldManual(c document.Content, fieldID string) (document.Content, error) {
	return updateField(c, fieldID, func(_ style.Config, f document.Field) document.Field {
		return inherit.MarkManuallyEdited(f)
	})
}

// SetFieldValue sets the value of a field.
func SetFieldValue(c document.Content, fieldID string, value any) (document.Content, error) {
	return updateField(c, fieldID, func(_ style.Config, f document.Field) document.Field {
		f.Value = value
		return f
	})
}

func updateField(c document.Content, fieldID string, fn func(eff style.Config, f document.Field) document.Field) (document.Content, error) {
	out := c.Clone()
	loc, ok := out.FindField(fieldID)
	if !ok {
		return c, errors.New(errors.ErrCodeFieldNotFound, "field %q not found", fieldID)
	}
	ct, err := out.Container(loc.Container, false)
	if err != nil {
		return c, err
	}
	eff, err := EffectiveContainerStyle(out, loc.Container)
	if err != nil {
		return c, err
	}
	ct.Fields[loc.Index] = fn(eff, ct.Fields[loc.Index])
	return out, nil
}

// AddField appends f to the container at ref. The field starts inheriting
// and is seeded from the container's effective style; header and footer
// containers are created on demand.
func AddField(c document.Content, ref document.ContainerRef, f document.Field) (document.Content, error) {
	if _, exists := c.FindField(f.ID); exists {
		return c, errors.New(errors.ErrCodeConflict, "field %q already exists", f.ID)
	}
	if err := f.Validate(); err != nil {
		return c, err
	}

	out := c.Clone()
	ct, err := out.Container(ref, true)
	if err != nil {
		return c, err
	}
	eff, err := EffectiveContainerStyle(out, ref)
	if err != nil {
		return c, err
	}
	f = f.Clone()
	f.StyleManuallyEdited = false
	ct.Fields = append(ct.Fields, inherit.Seed(f, &eff))
	return out, nil
}

// RemoveField deletes a field.
func RemoveField(c document.Content, fieldID string) (document.Content, error) {
	out := c.Clone()
	loc, ok := out.FindField(fieldID)
	if !ok {
		return c, errors.New(errors.ErrCodeFieldNotFound, "field %q not found", fieldID)
	}
	ct, err := out.Container(loc.Container, false)
	if err != nil {
		return c, err
	}
	ct.Fields = append(ct.Fields[:loc.Index], ct.Fields[loc.Index+1:]...)
	return out, nil
}

// MoveField moves a field to position index of the container at to. An
// index equal to the length of the target appends. An inheriting field is
// re-seeded from its new container; a manual field keeps its style.
func MoveField(c document.Content, fieldID string, to document.ContainerRef, index int) (document.Content, error) {
	out := c.Clone()
	loc, ok := out.FindField(fieldID)
	if !ok {
		return c, errors.New(errors.ErrCodeFieldNotFound, "field %q not found", fieldID)
	}
	src, err := out.Container(loc.Container, false)
	if err != nil {
		return c, err
	}
	f := src.Fields[loc.Index]
	src.Fields = append(src.Fields[:loc.Index], src.Fields[loc.Index+1:]...)

	dst, err := out.Container(to, true)
	if err != nil {
		return c, err
	}
	if index < 0 || index > len(dst.Fields) {
		return c, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d]", index, len(dst.Fields))
	}
	if !f.StyleManuallyEdited {
		eff, err := EffectiveContainerStyle(out, to)
		if err != nil {
			return c, err
		}
		f = inherit.Propagate([]document.Field{f}, &eff)[0]
	}
	dst.Fields = append(dst.Fields[:index], append([]document.Field{f}, dst.Fields[index:]...)...)
	return out, nil
}

// AddSection appends a section. Fields in its blocks are seeded from their
// effective container styles unless they are manually edited.
func AddSection(c document.Content, s document.Section) (document.Content, error) {
	if _, exists := c.Section(s.ID); exists {
		return c, errors.New(errors.ErrCodeConflict, "section %q already exists", s.ID)
	}
	out := c.Clone()
	out.Sections = append(out.Sections, s.Clone())
	return seedNew(c, out, func(r document.ContainerRef) bool {
		return r.SectionID == s.ID
	})
}

// AddBlock appends a block to a section. Its fields are seeded the same way
// AddSection seeds them.
func AddBlock(c document.Content, sectionID string, b document.Block) (document.Content, error) {
	out := c.Clone()
	s, ok := out.Section(sectionID)
	if !ok {
		return c, errors.New(errors.ErrCodeContainerNotFound, "section %q not found", sectionID)
	}
	for _, existing := range s.Blocks {
		if existing.ID == b.ID {
			return c, errors.New(errors.ErrCodeConflict, "block %q already exists in section %q", b.ID, sectionID)
		}
	}
	s.Blocks = append(s.Blocks, document.Block{ID: b.ID, Label: b.Label, Container: b.Container.Clone()})
	return seedNew(c, out, func(r document.ContainerRef) bool {
		return r == document.BlockRef(sectionID, b.ID)
	})
}

// seedNew validates out and seeds the inheriting fields of the containers
// accepted by added. On failure orig is returned.
func seedNew(orig, out document.Content, added func(document.ContainerRef) bool) (document.Content, error) {
	if err := out.Validate(); err != nil {
		return orig, err
	}
	var err error
	out.Walk(func(r document.ContainerRef, ct *document.Container) bool {
		if !added(r) {
			return true
		}
		eff, e := EffectiveContainerStyle(out, r)
		if e != nil {
			err = e
			return false
		}
		for i, f := range ct.Fields {
			ct.Fields[i] = inherit.Seed(f, &eff)
		}
		return true
	})
	if err != nil {
		return orig, err
	}
	return out, nil
}

// ResolveAll returns the effective style of every field keyed by field ID,
// which is what a renderer consumes.
func ResolveAll(c document.Content) map[string]style.Config {
	out := make(map[string]style.Config)
	c.Walk(func(r document.ContainerRef, ct *document.Container) bool {
		eff, err := EffectiveContainerStyle(c, r)
		if err != nil {
			return true
		}
		for _, f := range ct.Fields {
			out[f.ID] = inherit.Resolve(f, &eff)
		}
		return true
	})
	return out
}
