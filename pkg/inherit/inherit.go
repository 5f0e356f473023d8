package inherit

import (
	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/style"
)

// State is the style ownership of a field.
type State int

const (
	// Inheriting fields follow their container.
	Inheriting State = iota
	// Manual fields keep their own style.
	Manual
)

func (s State) String() string {
	if s == Manual {
		return "manual"
	}
	return "inheriting"
}

// StateOf returns the style ownership state of f.
func StateOf(f document.Field) State {
	if f.StyleManuallyEdited {
		return Manual
	}
	return Inheriting
}

// Resolve returns the style a renderer should apply to f inside a container
// styled with containerStyle. The manual flag plays no part here.
//
// Heritable properties combine with field precedence (see [style.Combine]).
// Local-only properties come from the field and fall back to the container's
// own local-only properties, so a field always sits in its container's box
// unless it sets one itself.
func Resolve(f document.Field, containerStyle *style.Config) style.Config {
	out := style.Combine(containerStyle, f.Style)
	if containerStyle != nil {
		fallback := style.Combine(nil, &style.Config{Local: containerStyle.Local})
		out.Local = style.Merge(&fallback, &style.Config{Local: out.Local}).Local
	}
	return out
}

// Seed fills f with the heritable properties of containerStyle. Properties f
// already carries win, local-only ones included. Manual fields are returned
// unchanged.
func Seed(f document.Field, containerStyle *style.Config) document.Field {
	if f.StyleManuallyEdited {
		return f.Clone()
	}
	var inherited style.Config
	if containerStyle != nil {
		inherited = containerStyle.Inheritable()
	}
	f = f.Clone()
	f.Style = style.Merge(&inherited, f.Style).Ptr()
	return f
}

// Propagate applies a new container style to fields. Inheriting fields are
// cleared and re-seeded, which drops any local-only property they carried.
// Manual fields pass through. The result is a new slice in input order.
func Propagate(fields []document.Field, containerStyle *style.Config) []document.Field {
	if fields == nil {
		return nil
	}
	out := make([]document.Field, len(fields))
	for i, f := range fields {
		if f.StyleManuallyEdited {
			out[i] = f.Clone()
			continue
		}
		f.Style = nil
		out[i] = Seed(f, containerStyle)
	}
	return out
}

// MarkManuallyEdited moves f to the manual state. Its style is kept.
func MarkManuallyEdited(f document.Field) document.Field {
	out := f.Clone()
	out.StyleManuallyEdited = true
	return out
}

// SetStyle replaces the style of f with a copy of cfg and marks it manual.
// This is what a direct user edit does.
func SetStyle(f document.Field, cfg *style.Config) document.Field {
	f.Style = nil
	if cfg != nil {
		f.Style = cfg.Clone().Ptr()
	}
	return MarkManuallyEdited(f)
}

// ResetToInherited moves f back to the inheriting state and clears its
// style. With a non-nil containerStyle the field is re-seeded at once.
func ResetToInherited(f document.Field, containerStyle *style.Config) document.Field {
	f.StyleManuallyEdited = false
	f.Style = nil
	if containerStyle == nil {
		return f.Clone()
	}
	return Seed(f, containerStyle)
}

// NewField creates a field in the inheriting state, seeded from
// containerStyle.
func NewField(id, label string, cfg document.FieldConfig, containerStyle *style.Config) document.Field {
	return Seed(document.Field{ID: id, Label: label, Config: cfg}, containerStyle)
}
