package document

import (
	"slices"

	"github.com/matzehuels/bulletins/pkg/style"
)

// FieldType tags the variant of a field.
type FieldType string

const (
	TypeText    FieldType = "text"
	TypeNumber  FieldType = "number"
	TypeDate    FieldType = "date"
	TypeSelect  FieldType = "select"
	TypeList    FieldType = "list"
	TypeImage   FieldType = "image"
	TypeClimate FieldType = "climate"
	TypeTable   FieldType = "table"
)

// FieldTypes lists every field type.
var FieldTypes = []FieldType{
	TypeText, TypeNumber, TypeDate, TypeSelect, TypeList, TypeImage, TypeClimate, TypeTable,
}

// FieldConfig is the type-specific configuration of a field. The set of
// implementations is closed: one struct per FieldType.
type FieldConfig interface {
	// Type returns the field type this configuration belongs to.
	Type() FieldType
	cloneConfig() FieldConfig
}

// TextConfig configures free text fields.
type TextConfig struct {
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty" msgpack:"placeholder,omitempty" validate:"max=256"`
	MaxLength   int    `json:"max_length,omitempty" yaml:"max_length,omitempty" msgpack:"max_length,omitempty" validate:"gte=0"`
	Multiline   bool   `json:"multiline,omitempty" yaml:"multiline,omitempty" msgpack:"multiline,omitempty"`
}

// NumberConfig configures numeric fields.
type NumberConfig struct {
	Min      *float64 `json:"min,omitempty" yaml:"min,omitempty" msgpack:"min,omitempty"`
	Max      *float64 `json:"max,omitempty" yaml:"max,omitempty" msgpack:"max,omitempty"`
	Decimals int      `json:"decimals,omitempty" yaml:"decimals,omitempty" msgpack:"decimals,omitempty" validate:"gte=0,lte=10"`
	Unit     string   `json:"unit,omitempty" yaml:"unit,omitempty" msgpack:"unit,omitempty" validate:"max=32"`
}

// DateConfig configures date fields. Format is a Go reference layout.
type DateConfig struct {
	Format  string `json:"format,omitempty" yaml:"format,omitempty" msgpack:"format,omitempty" validate:"max=64"`
	MinDate string `json:"min_date,omitempty" yaml:"min_date,omitempty" msgpack:"min_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaxDate string `json:"max_date,omitempty" yaml:"max_date,omitempty" msgpack:"max_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value" yaml:"value" msgpack:"value" validate:"required,max=256"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty" validate:"max=256"`
}

// SelectConfig configures single or multiple choice fields.
type SelectConfig struct {
	Options  []Option `json:"options" yaml:"options" msgpack:"options" validate:"required,min=1,dive"`
	Multiple bool     `json:"multiple,omitempty" yaml:"multiple,omitempty" msgpack:"multiple,omitempty"`
}

// ListConfig configures list fields (bullet lists of text items).
type ListConfig struct {
	MaxItems int  `json:"max_items,omitempty" yaml:"max_items,omitempty" msgpack:"max_items,omitempty" validate:"gte=0"`
	Ordered  bool `json:"ordered,omitempty" yaml:"ordered,omitempty" msgpack:"ordered,omitempty"`
}

// ImageConfig configures image fields such as logos and maps.
type ImageConfig struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty" msgpack:"url,omitempty" validate:"omitempty,url"`
	Alt    string `json:"alt,omitempty" yaml:"alt,omitempty" msgpack:"alt,omitempty" validate:"max=512"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty" msgpack:"width,omitempty" validate:"gte=0"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty" msgpack:"height,omitempty" validate:"gte=0"`
}

// ClimateConfig configures a field bound to an agro-climatic variable.
type ClimateConfig struct {
	Variable string `json:"variable" yaml:"variable" msgpack:"variable" validate:"required,oneof=precipitation temperature_max temperature_min temperature_mean humidity wind_speed solar_radiation evapotranspiration soil_moisture"`
	Unit     string `json:"unit" yaml:"unit" msgpack:"unit" validate:"required,max=32"`
	Period   string `json:"period,omitempty" yaml:"period,omitempty" msgpack:"period,omitempty" validate:"omitempty,oneof=daily weekly dekadal monthly seasonal"`
	Station  string `json:"station,omitempty" yaml:"station,omitempty" msgpack:"station,omitempty" validate:"max=128"`
}

// Column is one column of a table field.
type Column struct {
	Key   string    `json:"key" yaml:"key" msgpack:"key" validate:"required,max=64"`
	Label string    `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty" validate:"max=256"`
	Type  FieldType `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty" validate:"omitempty,oneof=text number date"`
}

// TableConfig configures tabular fields.
type TableConfig struct {
	Columns []Column `json:"columns" yaml:"columns" msgpack:"columns" validate:"required,min=1,dive"`
	MaxRows int      `json:"max_rows,omitempty" yaml:"max_rows,omitempty" msgpack:"max_rows,omitempty" validate:"gte=0"`
}

func (TextConfig) Type() FieldType    { return TypeText }
func (NumberConfig) Type() FieldType  { return TypeNumber }
func (DateConfig) Type() FieldType    { return TypeDate }
func (SelectConfig) Type() FieldType  { return TypeSelect }
func (ListConfig) Type() FieldType    { return TypeList }
func (ImageConfig) Type() FieldType   { return TypeImage }
func (ClimateConfig) Type() FieldType { return TypeClimate }
func (TableConfig) Type() FieldType   { return TypeTable }

func (c TextConfig) cloneConfig() FieldConfig { return c }
func (c DateConfig) cloneConfig() FieldConfig { return c }
func (c ListConfig) cloneConfig() FieldConfig { return c }
func (c ImageConfig) cloneConfig() FieldConfig { return c }
func (c ClimateConfig) cloneConfig() FieldConfig { return c }

func (c NumberConfig) cloneConfig() FieldConfig {
	if c.Min != nil {
		c.Min = style.Number(*c.Min)
	}
	if c.Max != nil {
		c.Max = style.Number(*c.Max)
	}
	return c
}

func (c SelectConfig) cloneConfig() FieldConfig {
	c.Options = slices.Clone(c.Options)
	return c
}

func (c TableConfig) cloneConfig() FieldConfig {
	c.Columns = slices.Clone(c.Columns)
	return c
}

// Field is a leaf content element.
type Field struct {
	ID          string
	Label       string
	Description string
	Required    bool

	// Config is the typed configuration; its Type is the field type.
	Config FieldConfig

	// Value is the content filled into the field (bulletins), if any.
	Value any

	// Style is the style set on this field. Nil means none.
	Style *style.Config

	// StyleManuallyEdited is true once a user edited this field's style
	// directly. Such fields no longer follow their container.
	StyleManuallyEdited bool
}

// Type returns the field type, or "" when no configuration is set.
func (f Field) Type() FieldType {
	if f.Config == nil {
		return ""
	}
	return f.Config.Type()
}

// Clone returns a deep copy of f. Value is copied shallowly.
func (f Field) Clone() Field {
	if f.Config != nil {
		f.Config = f.Config.cloneConfig()
	}
	if f.Style != nil {
		s := f.Style.Clone()
		f.Style = &s
	}
	return f
}
