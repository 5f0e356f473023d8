package wizard

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// State is the position of a wizard. The zero value is not usable; create
// one with New.
type State struct {
	Kind      document.Kind `json:"kind" yaml:"kind" msgpack:"kind"`
	Current   Step          `json:"current" yaml:"current" msgpack:"current"`
	Completed []Step        `json:"completed" yaml:"completed" msgpack:"completed"`
}

// New returns the initial state of the wizard for kind.
func New(kind document.Kind) (State, error) {
	steps := flows[kind]
	if len(steps) == 0 {
		return State{}, errors.New(errors.ErrCodeInvalidKind, "no wizard for kind %q", kind)
	}
	return State{Kind: kind, Current: steps[0], Completed: []Step{}}, nil
}

// Steps returns the step sequence of s.
func (s State) Steps() []Step { return Steps(s.Kind) }

// IsCompleted reports whether step has been completed.
func (s State) IsCompleted(step Step) bool {
	return slices.Contains(s.Completed, step)
}

// Done reports whether every step has been completed.
func (s State) Done() bool {
	steps := flows[s.Kind]
	if len(steps) == 0 {
		return false
	}
	for _, st := range steps {
		if !s.IsCompleted(st) {
			return false
		}
	}
	return true
}

// Next validates data as the payload of the current step, marks the step
// completed and advances. On the last step the state stays there and Done
// becomes true. data must be of the type NewPayload returns for the step
// (pointer or value), or nil for steps without a payload.
func (s State) Next(data any) (State, error) {
	idx, err := s.index()
	if err != nil {
		return s, err
	}
	if err := checkPayload(s.Current, data); err != nil {
		return s, err
	}

	out := s.clone()
	if !out.IsCompleted(s.Current) {
		out.Completed = append(out.Completed, s.Current)
	}
	steps := flows[s.Kind]
	if idx+1 < len(steps) {
		out.Current = steps[idx+1]
	}
	return out, nil
}

// Back moves to the previous step.
func (s State) Back() (State, error) {
	idx, err := s.index()
	if err != nil {
		return s, err
	}
	if idx == 0 {
		return s, errors.New(errors.ErrCodeInvalidStep, "already at the first step %q", s.Current)
	}
	out := s.clone()
	out.Current = flows[s.Kind][idx-1]
	return out, nil
}

// GoTo jumps to step. Only completed steps and the first step not yet
// completed can be reached.
func (s State) GoTo(step Step) (State, error) {
	if _, err := s.index(); err != nil {
		return s, err
	}
	steps := flows[s.Kind]
	if !slices.Contains(steps, step) {
		return s, errors.New(errors.ErrCodeInvalidStep, "step %q is not part of the %s wizard", step, s.Kind)
	}
	if !s.IsCompleted(step) && step != s.firstOpen() {
		return s, errors.New(errors.ErrCodeInvalidStep, "step %q is not reachable yet", step)
	}
	out := s.clone()
	out.Current = step
	return out, nil
}

func (s State) firstOpen() Step {
	for _, st := range flows[s.Kind] {
		if !s.IsCompleted(st) {
			return st
		}
	}
	return ""
}

func (s State) index() (int, error) {
	steps := flows[s.Kind]
	if len(steps) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidKind, "no wizard for kind %q", s.Kind)
	}
	idx := slices.Index(steps, s.Current)
	if idx < 0 {
		return 0, errors.New(errors.ErrCodeInvalidStep, "step %q is not part of the %s wizard", s.Current, s.Kind)
	}
	return idx, nil
}

func (s State) clone() State {
	s.Completed = slices.Clone(s.Completed)
	return s
}

// checkPayload verifies data has the payload type of step and passes its
// validation tags.
func checkPayload(step Step, data any) error {
	want := NewPayload(step)
	if want == nil {
		if data != nil {
			return errors.New(errors.ErrCodeInvalidStep, "step %q takes no payload", step)
		}
		return nil
	}
	if data == nil {
		return errors.New(errors.ErrCodeInvalidStep, "step %q requires a payload", step)
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return errors.New(errors.ErrCodeInvalidStep, "step %q requires a payload", step)
		}
		v = v.Elem()
	}
	if v.Type() != reflect.TypeOf(want).Elem() {
		return errors.New(errors.ErrCodeInvalidStep, "step %q expects %T, got %T", step, want, data)
	}

	if err := validate.Struct(v.Interface()); err != nil {
		return stepError(step, err)
	}
	return nil
}

func stepError(step Step, err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidStep, err, "validate %s step", step)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(errors.ErrCodeInvalidStep, "invalid %s step: %s", step, strings.Join(msgs, "; "))
}
