package document

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

// fieldWire is the serialized shape of a Field. R holds the undecoded
// field_config payload of the codec in use.
type fieldWire[R any] struct {
	ID                  string        `json:"field_id" yaml:"field_id" msgpack:"field_id"`
	Label               string        `json:"label" yaml:"label" msgpack:"label"`
	Description         string        `json:"description,omitempty" yaml:"description,omitempty" msgpack:"description,omitempty"`
	Required            bool          `json:"required,omitempty" yaml:"required,omitempty" msgpack:"required,omitempty"`
	Type                FieldType     `json:"type" yaml:"type" msgpack:"type"`
	FieldConfig         R             `json:"field_config,omitempty" yaml:"field_config,omitempty" msgpack:"field_config,omitempty"`
	Value               any           `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
	Style               *style.Config `json:"style_config,omitempty" yaml:"style_config,omitempty" msgpack:"style_config,omitempty"`
	StyleManuallyEdited bool          `json:"style_manually_edited" yaml:"style_manually_edited" msgpack:"style_manually_edited"`
}

func toWire[R any](f Field, cfg R) fieldWire[R] {
	return fieldWire[R]{
		ID:                  f.ID,
		Label:               f.Label,
		Description:         f.Description,
		Required:            f.Required,
		Type:                f.Type(),
		FieldConfig:         cfg,
		Value:               f.Value,
		Style:               f.Style,
		StyleManuallyEdited: f.StyleManuallyEdited,
	}
}

func fromWire[R any](w fieldWire[R], cfg FieldConfig) Field {
	return Field{
		ID:                  w.ID,
		Label:               w.Label,
		Description:         w.Description,
		Required:            w.Required,
		Config:              cfg,
		Value:               w.Value,
		Style:               w.Style,
		StyleManuallyEdited: w.StyleManuallyEdited,
	}
}

// decodeConfig builds the variant for t. decode fills its argument from the
// field_config payload and is nil when the payload is absent, in which case
// the zero configuration of the variant is used.
func decodeConfig(t FieldType, decode func(any) error) (FieldConfig, error) {
	switch t {
	case TypeText:
		return decodeAs[TextConfig](decode)
	case TypeNumber:
		return decodeAs[NumberConfig](decode)
	case TypeDate:
		return decodeAs[DateConfig](decode)
	case TypeSelect:
		return decodeAs[SelectConfig](decode)
	case TypeList:
		return decodeAs[ListConfig](decode)
	case TypeImage:
		return decodeAs[ImageConfig](decode)
	case TypeClimate:
		return decodeAs[ClimateConfig](decode)
	case TypeTable:
		return decodeAs[TableConfig](decode)
	case "":
		return nil, errors.New(errors.ErrCodeInvalidFieldType, "field type is required")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFieldType, "unknown field type: %q", t)
	}
}

func decodeAs[T FieldConfig](decode func(any) error) (FieldConfig, error) {
	var c T
	if decode == nil {
		return c, nil
	}
	if err := decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFieldType, err, "decode %s field_config", c.Type())
	}
	return c, nil
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if f.Config != nil {
		data, err := json.Marshal(f.Config)
		if err != nil {
			return nil, err
		}
		raw = data
	}
	return json.Marshal(toWire(f, raw))
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	var w fieldWire[json.RawMessage]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var decode func(any) error
	if len(w.FieldConfig) > 0 && string(w.FieldConfig) != "null" {
		decode = func(v any) error { return json.Unmarshal(w.FieldConfig, v) }
	}
	cfg, err := decodeConfig(w.Type, decode)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "field %q", w.ID)
	}
	*f = fromWire(w, cfg)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (f Field) MarshalYAML() (any, error) {
	return toWire[any](f, f.Config), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	var w fieldWire[yaml.Node]
	if err := node.Decode(&w); err != nil {
		return err
	}

	var decode func(any) error
	if w.FieldConfig.Kind != 0 {
		decode = w.FieldConfig.Decode
	}
	cfg, err := decodeConfig(w.Type, decode)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "field %q", w.ID)
	}
	*f = fromWire(w, cfg)
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (f Field) EncodeMsgpack(enc *msgpack.Encoder) error {
	var raw msgpack.RawMessage
	if f.Config != nil {
		data, err := msgpack.Marshal(f.Config)
		if err != nil {
			return err
		}
		raw = data
	}
	return enc.Encode(toWire(f, raw))
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (f *Field) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w fieldWire[msgpack.RawMessage]
	if err := dec.Decode(&w); err != nil {
		return err
	}

	var decode func(any) error
	if len(w.FieldConfig) > 0 {
		decode = func(v any) error { return msgpack.Unmarshal(w.FieldConfig, v) }
	}
	cfg, err := decodeConfig(w.Type, decode)
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "field %q", w.ID)
	}
	*f = fromWire(w, cfg)
	return nil
}

var (
	_ json.Marshaler        = Field{}
	_ json.Unmarshaler      = (*Field)(nil)
	_ yaml.Marshaler        = Field{}
	_ yaml.Unmarshaler      = (*Field)(nil)
	_ msgpack.CustomEncoder = Field{}
	_ msgpack.CustomDecoder = (*Field)(nil)
)
