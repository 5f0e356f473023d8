package style

// Combine produces the effective style of a child (field) inside a parent
// (container):
//
//  1. heritable properties defined on parent are copied,
//  2. heritable properties defined on child overwrite them,
//  3. local-only properties are copied from child only.
//
// Either argument may be nil. Neither is modified and the result shares no
// memory with them.
func Combine(parent, child *Config) Config {
	var out Config
	if parent != nil {
		out.Heritable = out.Heritable.overlay(parent.Heritable, defined)
	}
	if child != nil {
		out.Heritable = out.Heritable.overlay(child.Heritable, defined)
		out.Local = out.Local.overlay(child.Local, defined)
	}
	return out
}

// Cascade folds Combine over a chain of container styles ordered from the
// outermost to the innermost, e.g. global, section, block. Heritable
// properties flow down the chain and local-only properties come from the last
// element alone.
func Cascade(chain ...*Config) Config {
	var out Config
	for i, c := range chain {
		if i == 0 {
			out = Combine(nil, c)
			continue
		}
		out = Combine(&out, c)
	}
	return out
}
