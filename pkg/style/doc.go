// Package style defines the style record shared by document containers and
// fields, and the combiner that computes an effective style from a container
// (parent) style and a field (child) style.
//
// # Heritable and local-only properties
//
// A [Config] embeds two records. [Heritable] holds the properties a field picks
// up from its container unless it sets them itself: colors, font settings,
// text alignment and list layout. [Local] holds the properties that only apply
// to the element that sets them: padding, margin, gap, borders and the
// background image. The split is structural, so the partition cannot drift
// from the combiner:
//
//	effective := style.Combine(container, field)
//
// takes heritable properties from the container, lets the field override them,
// and takes local-only properties from the field alone.
//
// # Defined values
//
// A property is defined when it is non-nil and, for string properties,
// non-empty. Undefined properties contribute nothing to [Combine].
//
// # Map boundary
//
// Clients and CLI tools exchange styles as plain JSON/YAML objects keyed by the
// snake_case property names. [FromMap] and [Config.ToMap] convert at that
// boundary and reject unknown properties.
package style
