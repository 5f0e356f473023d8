// Package editor applies authoring operations to a whole document tree.
//
// Where package inherit works on a single field and the style of the
// container holding it, editor knows how containers nest:
//
//	global ─┬─ header ── fields
//	        ├─ section ── block ── fields
//	        └─ footer ── fields
//
// The effective style of a container is the [style.Cascade] of every style on
// its path, so heritable properties flow from global through section into
// block, header and footer, while local-only properties stay where they are
// set. Changing a container style re-propagates into every field container
// below it.
//
// Every operation takes a [document.Content] by value and returns a new one.
// The input is never modified.
package editor
