package service

import (
	"context"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/draft"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/wizard"
)

// WizardNext completes the current wizard step of a draft and advances.
// decode fills the step payload (see wizard.NewPayload) and is not called
// for steps without one. The payload is applied to the draft:
//
//   - template: the bulletin content is instantiated from the template's
//     current version
//   - info: name and description
//   - layout: page size, orientation and columns
//   - header_footer: header and footer are created or removed
//   - sections: sections are added, reordered or removed to match the list
func (s *Service) WizardNext(ctx context.Context, id string, decode func(any) error) (*draft.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}

	step := d.Wizard.Current
	payload := wizard.NewPayload(step)
	if payload != nil && decode != nil {
		if err := decode(payload); err != nil {
			return nil, err
		}
	}
	next, err := d.Wizard.Next(payload)
	if err != nil {
		return nil, err
	}
	if err := s.applyStep(ctx, d, payload); err != nil {
		return nil, err
	}
	d.Wizard = next

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Debug("wizard step completed", "draft", id, "step", step, "next", next.Current, "done", next.Done())
	return d, nil
}

// WizardBack moves the wizard of a draft one step back.
func (s *Service) WizardBack(ctx context.Context, id string) (*draft.Draft, error) {
	return s.moveWizard(ctx, id, wizard.State.Back)
}

// WizardGoTo jumps to a completed step or to the first open one.
func (s *Service) WizardGoTo(ctx context.Context, id string, step wizard.Step) (*draft.Draft, error) {
	return s.moveWizard(ctx, id, func(st wizard.State) (wizard.State, error) {
		return st.GoTo(step)
	})
}

func (s *Service) moveWizard(ctx context.Context, id string, move func(wizard.State) (wizard.State, error)) (*draft.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := move(d.Wizard)
	if err != nil {
		return nil, err
	}
	d.Wizard = next
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) applyStep(ctx context.Context, d *draft.Draft, payload any) error {
	switch p := payload.(type) {
	case *wizard.TemplateData:
		return s.applyTemplate(ctx, d, p.TemplateID)
	case *wizard.InfoData:
		d.Name, d.Description = p.Name, p.Description
	case *wizard.LayoutData:
		d.Content.Page = &document.Page{Size: p.Size, Orientation: p.Orientation, Columns: p.Columns}
	case *wizard.HeaderFooterData:
		d.Content.Header = toggle(d.Content.Header, p.Header)
		d.Content.Footer = toggle(d.Content.Footer, p.Footer)
	case *wizard.SectionsData:
		content, err := syncSections(d.Content, p.Sections)
		if err != nil {
			return err
		}
		d.Content = content
	}
	return nil
}

func (s *Service) applyTemplate(ctx context.Context, d *draft.Draft, templateID string) error {
	if d.TemplateID == templateID && len(d.Content.Sections) > 0 {
		return nil
	}
	t, err := s.GetKind(ctx, document.KindTemplate, templateID)
	if err != nil {
		return err
	}
	if t.Status == document.StatusArchived {
		return errors.New(errors.ErrCodeConflict, "template %q is archived", templateID)
	}
	if t.CurrentVersion == 0 {
		return errors.New(errors.ErrCodeConflict, "template %q has no published version", templateID)
	}
	v, err := s.repo.GetVersion(ctx, templateID, t.CurrentVersion)
	if err != nil {
		return err
	}
	d.Content = document.InstantiateBulletin(v.Content)
	d.TemplateID = templateID
	return nil
}

func toggle(ct *document.Container, on bool) *document.Container {
	switch {
	case !on:
		return nil
	case ct == nil:
		return &document.Container{Fields: []document.Field{}}
	default:
		return ct
	}
}

// syncSections makes the sections of c match specs in order. Existing
// sections keep their blocks and style; labels are updated.
func syncSections(c document.Content, specs []wizard.SectionSpec) (document.Content, error) {
	out := c.Clone()
	sections := make([]document.Section, 0, len(specs))
	for _, spec := range specs {
		sec, ok := c.Section(spec.ID)
		if !ok {
			sections = append(sections, document.Section{ID: spec.ID, Label: spec.Label, Blocks: []document.Block{}})
			continue
		}
		cp := sec.Clone()
		cp.Label = spec.Label
		sections = append(sections, cp)
	}
	out.Sections = sections
	if err := out.Validate(); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidStep, err, "sections step")
	}
	return out, nil
}
