package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateID validates an identifier used for documents, sections, blocks and
// fields. IDs end up in URLs and storage keys, so the rules are conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - No control characters, whitespace or path separators
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "id %q contains path characters", id)
	}

	return nil
}

// ValidateName validates a human-readable document name.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// colorRegex matches #rgb, #rgba, #rrggbb and #rrggbbaa hex colors.
var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// colorFuncRegex matches rgb()/rgba()/hsl()/hsla() color functions.
var colorFuncRegex = regexp.MustCompile(`^(rgb|rgba|hsl|hsla)\([0-9.,%\s/]+\)$`)

// ValidateColor validates a CSS color value. Hex colors, the rgb/hsl
// functional notations, "transparent" and plain lowercase keywords are accepted.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidStyle, "color cannot be empty")
	}

	if strings.HasPrefix(color, "#") {
		if !colorRegex.MatchString(color) {
			return New(ErrCodeInvalidStyle, "invalid hex color: %q", color)
		}
		return nil
	}

	if colorFuncRegex.MatchString(color) {
		return nil
	}

	for _, r := range color {
		if r < 'a' || r > 'z' {
			return New(ErrCodeInvalidStyle, "invalid color: %q", color)
		}
	}
	return nil
}
