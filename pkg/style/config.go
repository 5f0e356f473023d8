package style

// Property names a style property by its serialized (snake_case) name.
type Property string

// Heritable properties.
const (
	PrimaryColor    Property = "primary_color"
	BackgroundColor Property = "background_color"
	FontSize        Property = "font_size"
	IconSize        Property = "icon_size"
	FontWeight      Property = "font_weight"
	FontStyle       Property = "font_style"
	TextDecoration  Property = "text_decoration"
	TextAlign       Property = "text_align"
	Font            Property = "font"
	SecondaryColor  Property = "secondary_color"
	ListStyleType   Property = "list_style_type"
	ListItemsLayout Property = "list_items_layout"
)

// Local-only properties.
const (
	BackgroundImage Property = "background_image"
	Padding         Property = "padding"
	Margin          Property = "margin"
	Gap             Property = "gap"
	BorderColor     Property = "border_color"
	BorderWidth     Property = "border_width"
	BorderRadius    Property = "border_radius"
)

// HeritableProperties lists the properties a field inherits from its container,
// in the order they are applied.
var HeritableProperties = []Property{
	PrimaryColor, BackgroundColor, FontSize, IconSize, FontWeight, FontStyle,
	TextDecoration, TextAlign, Font, SecondaryColor, ListStyleType, ListItemsLayout,
}

// LocalProperties lists the properties that never propagate from a container.
var LocalProperties = []Property{
	BackgroundImage, Padding, Margin, Gap, BorderColor, BorderWidth, BorderRadius,
}

// IsHeritable reports whether p is a heritable property.
func (p Property) IsHeritable() bool {
	for _, h := range HeritableProperties {
		if h == p {
			return true
		}
	}
	return false
}

// IsLocal reports whether p is a local-only property.
func (p Property) IsLocal() bool {
	for _, l := range LocalProperties {
		if l == p {
			return true
		}
	}
	return false
}

// Heritable holds the properties that flow from a container to its fields.
type Heritable struct {
	PrimaryColor    *string  `json:"primary_color,omitempty" yaml:"primary_color,omitempty" bson:"primary_color,omitempty" msgpack:"primary_color,omitempty" validate:"omitempty,csscolor"`
	BackgroundColor *string  `json:"background_color,omitempty" yaml:"background_color,omitempty" bson:"background_color,omitempty" msgpack:"background_color,omitempty" validate:"omitempty,csscolor"`
	FontSize        *float64 `json:"font_size,omitempty" yaml:"font_size,omitempty" bson:"font_size,omitempty" msgpack:"font_size,omitempty" validate:"omitempty,gt=0,lte=512"`
	IconSize        *float64 `json:"icon_size,omitempty" yaml:"icon_size,omitempty" bson:"icon_size,omitempty" msgpack:"icon_size,omitempty" validate:"omitempty,gt=0,lte=1024"`
	FontWeight      *string  `json:"font_weight,omitempty" yaml:"font_weight,omitempty" bson:"font_weight,omitempty" msgpack:"font_weight,omitempty" validate:"omitempty,oneof=normal bold bolder lighter 100 200 300 400 500 600 700 800 900"`
	FontStyle       *string  `json:"font_style,omitempty" yaml:"font_style,omitempty" bson:"font_style,omitempty" msgpack:"font_style,omitempty" validate:"omitempty,oneof=normal italic oblique"`
	TextDecoration  *string  `json:"text_decoration,omitempty" yaml:"text_decoration,omitempty" bson:"text_decoration,omitempty" msgpack:"text_decoration,omitempty" validate:"omitempty,oneof=none underline overline line-through"`
	TextAlign       *string  `json:"text_align,omitempty" yaml:"text_align,omitempty" bson:"text_align,omitempty" msgpack:"text_align,omitempty" validate:"omitempty,oneof=left center right justify start end"`
	Font            *string  `json:"font,omitempty" yaml:"font,omitempty" bson:"font,omitempty" msgpack:"font,omitempty" validate:"omitempty,max=256"`
	SecondaryColor  *string  `json:"secondary_color,omitempty" yaml:"secondary_color,omitempty" bson:"secondary_color,omitempty" msgpack:"secondary_color,omitempty" validate:"omitempty,csscolor"`
	ListStyleType   *string  `json:"list_style_type,omitempty" yaml:"list_style_type,omitempty" bson:"list_style_type,omitempty" msgpack:"list_style_type,omitempty" validate:"omitempty,max=64"`
	ListItemsLayout *string  `json:"list_items_layout,omitempty" yaml:"list_items_layout,omitempty" bson:"list_items_layout,omitempty" msgpack:"list_items_layout,omitempty" validate:"omitempty,oneof=vertical horizontal grid"`
}

// Local holds the properties that apply only where they are set.
type Local struct {
	BackgroundImage *string `json:"background_image,omitempty" yaml:"background_image,omitempty" bson:"background_image,omitempty" msgpack:"background_image,omitempty" validate:"omitempty,max=2048"`
	Padding         *string `json:"padding,omitempty" yaml:"padding,omitempty" bson:"padding,omitempty" msgpack:"padding,omitempty" validate:"omitempty,max=64"`
	Margin          *string `json:"margin,omitempty" yaml:"margin,omitempty" bson:"margin,omitempty" msgpack:"margin,omitempty" validate:"omitempty,max=64"`
	Gap             *string `json:"gap,omitempty" yaml:"gap,omitempty" bson:"gap,omitempty" msgpack:"gap,omitempty" validate:"omitempty,max=64"`
	BorderColor     *string `json:"border_color,omitempty" yaml:"border_color,omitempty" bson:"border_color,omitempty" msgpack:"border_color,omitempty" validate:"omitempty,csscolor"`
	BorderWidth     *string `json:"border_width,omitempty" yaml:"border_width,omitempty" bson:"border_width,omitempty" msgpack:"border_width,omitempty" validate:"omitempty,max=64"`
	BorderRadius    *string `json:"border_radius,omitempty" yaml:"border_radius,omitempty" bson:"border_radius,omitempty" msgpack:"border_radius,omitempty" validate:"omitempty,max=64"`
}

// Config is the style record attached to containers and fields.
// The zero value is an empty style.
type Config struct {
	Heritable `yaml:",inline" bson:",inline" msgpack:",inline"`
	Local     `yaml:",inline" bson:",inline" msgpack:",inline"`
}

// String and Number build property values for literals.
func String(s string) *string { return &s }

// Number returns a pointer to n.
func Number(n float64) *float64 { return &n }

// IsZero reports whether no property is present.
func (c Config) IsZero() bool {
	return c == Config{}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	return Config{
		Heritable: Heritable{}.overlay(c.Heritable, present),
		Local:     Local{}.overlay(c.Local, present),
	}
}

// Inheritable returns a copy of c holding only its defined heritable
// properties.
func (c Config) Inheritable() Config {
	return Config{Heritable: Heritable{}.overlay(c.Heritable, defined)}
}

// Merge returns base with every property present in over written on top, the
// way an object spread does: a non-nil property in over wins even when it is
// an empty string. Neither argument is modified.
func Merge(base, over *Config) Config {
	var out Config
	if base != nil {
		out = base.Clone()
	}
	if over != nil {
		out.Heritable = out.Heritable.overlay(over.Heritable, present)
		out.Local = out.Local.overlay(over.Local, present)
	}
	return out
}

// Ptr returns a pointer to a copy of c, or nil when c is empty.
func (c Config) Ptr() *Config {
	if c.IsZero() {
		return nil
	}
	return &c
}

// overlay copies every property of src accepted by keep into h.
func (h Heritable) overlay(src Heritable, keep func(any) bool) Heritable {
	h.PrimaryColor = pick(h.PrimaryColor, src.PrimaryColor, keep)
	h.BackgroundColor = pick(h.BackgroundColor, src.BackgroundColor, keep)
	h.FontSize = pick(h.FontSize, src.FontSize, keep)
	h.IconSize = pick(h.IconSize, src.IconSize, keep)
	h.FontWeight = pick(h.FontWeight, src.FontWeight, keep)
	h.FontStyle = pick(h.FontStyle, src.FontStyle, keep)
	h.TextDecoration = pick(h.TextDecoration, src.TextDecoration, keep)
	h.TextAlign = pick(h.TextAlign, src.TextAlign, keep)
	h.Font = pick(h.Font, src.Font, keep)
	h.SecondaryColor = pick(h.SecondaryColor, src.SecondaryColor, keep)
	h.ListStyleType = pick(h.ListStyleType, src.ListStyleType, keep)
	h.ListItemsLayout = pick(h.ListItemsLayout, src.ListItemsLayout, keep)
	return h
}

// overlay copies every property of src accepted by keep into l.
func (l Local) overlay(src Local, keep func(any) bool) Local {
	l.BackgroundImage = pick(l.BackgroundImage, src.BackgroundImage, keep)
	l.Padding = pick(l.Padding, src.Padding, keep)
	l.Margin = pick(l.Margin, src.Margin, keep)
	l.Gap = pick(l.Gap, src.Gap, keep)
	l.BorderColor = pick(l.BorderColor, src.BorderColor, keep)
	l.BorderWidth = pick(l.BorderWidth, src.BorderWidth, keep)
	l.BorderRadius = pick(l.BorderRadius, src.BorderRadius, keep)
	return l
}

// pick returns a copy of next when keep accepts it, otherwise cur.
func pick[T any](cur, next *T, keep func(any) bool) *T {
	if next == nil || !keep(*next) {
		return cur
	}
	v := *next
	return &v
}

// present accepts any non-nil value.
func present(any) bool { return true }

// defined rejects empty strings.
func defined(v any) bool {
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}
