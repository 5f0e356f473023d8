package style

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/bulletins/pkg/errors"
)

// styleValidate is the validator instance for style records.
// Initialized in init() with the csscolor rule.
var styleValidate *validator.Validate

func init() {
	styleValidate = validator.New()
	_ = styleValidate.RegisterValidation("csscolor", validateCSSColor)
}

func validateCSSColor(fl validator.FieldLevel) bool {
	return errors.ValidateColor(fl.Field().String()) == nil
}

// Validate checks property values: colors must be CSS colors, sizes positive,
// and keyword properties one of their allowed keywords. Empty strings are
// treated as unset and always pass.
func (c Config) Validate() error {
	set := Config{
		Heritable: Heritable{}.overlay(c.Heritable, defined),
		Local:     Local{}.overlay(c.Local, defined),
	}
	err := styleValidate.Struct(set)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "validate style")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", propertyName(fe.StructField()), fe.Tag(), fe.Value()))
	}
	return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %s", strings.Join(msgs, "; "))
}

// propertyName maps a Go field name back to its serialized property name.
func propertyName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
