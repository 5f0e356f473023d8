package document

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

// docValidate is the validator instance for document records.
var docValidate = validator.New()

// Validate checks a master record.
func (m Master) Validate() error {
	if err := errors.ValidateName(m.Name); err != nil {
		return err
	}
	return structErr(docValidate.Struct(m), "master")
}

// Validate checks the field identity and its typed configuration.
func (f Field) Validate() error {
	if err := errors.ValidateID(f.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "field id")
	}
	if f.Config == nil {
		return errors.New(errors.ErrCodeInvalidFieldType, "field %q has no type", f.ID)
	}
	if err := validateConfig(f.Config); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "field %q", f.ID)
	}
	if f.Style != nil {
		if err := f.Style.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStyle, err, "field %q", f.ID)
		}
	}
	return nil
}

// validateConfig dispatches on the variant. NumberConfig carries a cross-field
// rule the struct tags cannot express.
func validateConfig(cfg FieldConfig) error {
	switch c := cfg.(type) {
	case NumberConfig:
		if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
			return errors.New(errors.ErrCodeInvalidDocument, "number min %v is greater than max %v", *c.Min, *c.Max)
		}
	case TextConfig, DateConfig, SelectConfig, ListConfig, ImageConfig, ClimateConfig, TableConfig:
	default:
		return errors.New(errors.ErrCodeInvalidFieldType, "unsupported field config %T", cfg)
	}
	return structErr(docValidate.Struct(cfg), string(cfg.Type())+" field_config")
}

// Validate checks the whole tree: identifiers are well-formed and unique
// (field IDs across the whole content, block IDs within a section), every
// field is valid, and every style holds valid values.
func (c Content) Validate() error {
	if c.Page != nil {
		if err := structErr(docValidate.Struct(c.Page), "page"); err != nil {
			return err
		}
	}
	if err := validateStyle(c.Style, "global"); err != nil {
		return err
	}

	sections := map[string]bool{}
	for _, s := range c.Sections {
		if err := errors.ValidateID(s.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "section id")
		}
		if sections[s.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate section id %q", s.ID)
		}
		sections[s.ID] = true
		if err := validateStyle(s.Style, "section "+s.ID); err != nil {
			return err
		}

		blocks := map[string]bool{}
		for _, b := range s.Blocks {
			if err := errors.ValidateID(b.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "block id in section %q", s.ID)
			}
			if blocks[b.ID] {
				return errors.New(errors.ErrCodeInvalidDocument, "duplicate block id %q in section %q", b.ID, s.ID)
			}
			blocks[b.ID] = true
		}
	}

	fields := map[string]bool{}
	var err error
	c.Walk(func(ref ContainerRef, ct *Container) bool {
		if err = validateStyle(ct.Style, ref.String()); err != nil {
			return false
		}
		for _, f := range ct.Fields {
			if err = f.Validate(); err != nil {
				return false
			}
			if fields[f.ID] {
				err = errors.New(errors.ErrCodeInvalidDocument, "duplicate field id %q", f.ID)
				return false
			}
			fields[f.ID] = true
		}
		return true
	})
	return err
}

func validateStyle(s *style.Config, where string) error {
	if s == nil {
		return nil
	}
	if err := s.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "%s style", where)
	}
	return nil
}

func structErr(err error, what string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "validate %s", what)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(errors.ErrCodeInvalidDocument, "invalid %s: %s", what, strings.Join(msgs, "; "))
}
