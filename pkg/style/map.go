package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/matzehuels/bulletins/pkg/errors"
)

// FromMap builds a Config from a property map such as a decoded JSON or YAML
// object. Unknown properties and values of the wrong type are rejected with
// ErrCodeInvalidStyle. A nil or empty map yields the empty Config.
func FromMap(m map[string]any) (Config, error) {
	var c Config
	if len(m) == 0 {
		return c, nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidStyle, err, "encode style map")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "decode style map")
	}
	return c, nil
}

// ToMap returns the present properties of c keyed by property name.
// Numbers are float64 and everything else is a string.
func (c Config) ToMap() map[string]any {
	m := make(map[string]any)
	data, err := json.Marshal(c)
	if err != nil {
		return m
	}
	_ = json.Unmarshal(data, &m)
	return m
}

// Properties returns the names of the present properties in c, sorted.
func (c Config) Properties() []Property {
	m := c.ToMap()
	props := make([]Property, 0, len(m))
	for k := range m {
		props = append(props, Property(k))
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}

// Get returns the value of property p and whether it is present.
func (c Config) Get(p Property) (any, bool) {
	v, ok := c.ToMap()[string(p)]
	return v, ok
}

// With returns a copy of c with property p set to v.
func (c Config) With(p Property, v any) (Config, error) {
	if !p.IsHeritable() && !p.IsLocal() {
		return c, errors.New(errors.ErrCodeInvalidStyle, "unknown style property %q", p)
	}
	m := c.ToMap()
	m[string(p)] = v
	return FromMap(m)
}

// String renders c as a compact JSON object, for logs and CLI output.
func (c Config) String() string {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<style: %v>", err)
	}
	return string(data)
}
