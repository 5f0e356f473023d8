// Package wizard implements the step-by-step creation flows used to author
// documents.
//
// Each document kind has a fixed sequence of steps:
//
//	template: info → layout → header_footer → sections → review
//	bulletin: template → info → content → review
//	card:     info → content → review
//
// A [State] records the current step and the steps already completed. It is
// a plain value that drafts persist between requests. [State.Next] validates
// the payload of the current step before advancing; [State.GoTo] only jumps
// to completed steps or to the first step not yet completed.
//
// Payloads are validated with struct tags from go-playground/validator.
// Failures carry the INVALID_STEP error code.
package wizard
