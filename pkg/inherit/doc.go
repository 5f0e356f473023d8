// Package inherit implements the field side of style inheritance: how a
// field picks up the style of the container holding it, how container
// changes flow into fields, and how a field leaves and re-enters the
// inheriting state.
//
// # States
//
// A field is either [Inheriting] or [Manual]:
//
//	             SetStyle / MarkManuallyEdited
//	Inheriting ─────────────────────────────────▶ Manual
//	     ▲                                          │
//	     └────────────── ResetToInherited ──────────┘
//
// Inheriting fields are rewritten by [Propagate] whenever their container's
// style changes. Manual fields are never touched by propagation.
//
// # Reading vs writing
//
// The manual flag only guards writes. [Resolve], which computes the style a
// renderer should use, treats every field the same way: the container's
// heritable properties fill whatever the field leaves unset.
//
// All functions are pure. They take fields by value and return new values
// that share no style memory with their inputs.
package inherit
