package wizard

import (
	"github.com/matzehuels/bulletins/pkg/document"
)

// Step names one page of a wizard.
type Step string

const (
	StepTemplate     Step = "template"
	StepInfo         Step = "info"
	StepLayout       Step = "layout"
	StepHeaderFooter Step = "header_footer"
	StepSections     Step = "sections"
	StepContent      Step = "content"
	StepReview       Step = "review"
)

var flows = map[document.Kind][]Step{
	document.KindTemplate: {StepInfo, StepLayout, StepHeaderFooter, StepSections, StepReview},
	document.KindBulletin: {StepTemplate, StepInfo, StepContent, StepReview},
	document.KindCard:     {StepInfo, StepContent, StepReview},
}

// Steps returns the step sequence for kind, or nil for an unknown kind.
func Steps(kind document.Kind) []Step {
	steps := flows[kind]
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// TemplateData selects the template a bulletin is instantiated from.
type TemplateData struct {
	TemplateID string `json:"template_id" yaml:"template_id" validate:"required,max=128"`
}

// InfoData names the document.
type InfoData struct {
	Name        string `json:"name" yaml:"name" validate:"required,max=256"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" validate:"max=4096"`
}

// LayoutData chooses the page the document is laid out on.
type LayoutData struct {
	Size        string `json:"size" yaml:"size" validate:"required,oneof=a4 a3 letter legal"`
	Orientation string `json:"orientation" yaml:"orientation" validate:"required,oneof=portrait landscape"`
	Columns     int    `json:"columns,omitempty" yaml:"columns,omitempty" validate:"gte=0,lte=4"`
}

// HeaderFooterData toggles the header and footer containers.
type HeaderFooterData struct {
	Header bool `json:"header" yaml:"header"`
	Footer bool `json:"footer" yaml:"footer"`
}

// SectionSpec declares one section to create.
type SectionSpec struct {
	ID    string `json:"section_id" yaml:"section_id" validate:"required,max=128"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" validate:"max=256"`
}

// SectionsData lists the sections of a template.
type SectionsData struct {
	Sections []SectionSpec `json:"sections" yaml:"sections" validate:"required,min=1,unique=ID,dive"`
}

// ReviewData confirms the document before it is committed.
type ReviewData struct {
	Confirm bool `json:"confirm" yaml:"confirm" validate:"eq=true"`
}

// NewPayload returns a pointer to a zero payload for step, suitable for
// decoding a request body into. Steps without a payload return nil.
func NewPayload(step Step) any {
	switch step {
	case StepTemplate:
		return &TemplateData{}
	case StepInfo:
		return &InfoData{}
	case StepLayout:
		return &LayoutData{}
	case StepHeaderFooter:
		return &HeaderFooterData{}
	case StepSections:
		return &SectionsData{}
	case StepReview:
		return &ReviewData{}
	default:
		return nil
	}
}
