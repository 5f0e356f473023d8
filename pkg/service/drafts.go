package service

import (
	"context"
	"time"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/draft"
	"github.com/matzehuels/bulletins/pkg/editor"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/observability"
	"github.com/matzehuels/bulletins/pkg/style"
)

// =============================================================================
// Lifecycle
// =============================================================================

// StartDraft opens a working copy. With a masterID the draft starts from the
// master's current version and carries its name; without one it starts
// empty and the wizard collects the rest.
func (s *Service) StartDraft(ctx context.Context, kind document.Kind, masterID string) (*draft.Draft, error) {
	kind, err := document.ParseKind(string(kind))
	if err != nil {
		return nil, err
	}

	content := document.Content{Sections: []document.Section{}}
	var m document.Master
	if masterID != "" {
		if m, err = s.GetKind(ctx, kind, masterID); err != nil {
			return nil, err
		}
		if m.Status == document.StatusArchived {
			return nil, errors.New(errors.ErrCodeConflict, "document %q is archived", masterID)
		}
		if m.CurrentVersion > 0 {
			v, err := s.repo.GetVersion(ctx, masterID, m.CurrentVersion)
			if err != nil {
				return nil, err
			}
			content = v.Content
		}
	}

	d, err := draft.New(kind, masterID, content, s.draftTTL)
	if err != nil {
		return nil, err
	}
	d.Name = m.Name
	d.Description = m.Description
	d.TemplateID = m.TemplateID

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Debug("started draft", "draft", d.ID, "kind", kind, "master", masterID)
	return d, nil
}

// Draft returns a live draft.
func (s *Service) Draft(ctx context.Context, id string) (*draft.Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		observability.Drafts().OnDraftMiss(ctx, s.backend)
		return nil, errors.New(errors.ErrCodeDraftNotFound, "draft %q not found or expired", id)
	}
	observability.Drafts().OnDraftHit(ctx, s.backend)
	return d, nil
}

// Drafts returns every live draft ordered by ID.
func (s *Service) Drafts(ctx context.Context) ([]*draft.Draft, error) {
	return s.drafts.List(ctx)
}

// DiscardDraft deletes a draft.
func (s *Service) DiscardDraft(ctx context.Context, id string) error {
	if _, err := s.Draft(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("discarded draft", "draft", id)
	return s.drafts.Delete(ctx, id)
}

// CommitDraft publishes the draft content as a new version and deletes the
// draft. A draft without a master creates one from the name, description
// and template collected by the wizard.
func (s *Service) CommitDraft(ctx context.Context, id, comment string) (document.Master, document.Version, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return document.Master{}, document.Version{}, err
	}
	if err := d.Content.Validate(); err != nil {
		return document.Master{}, document.Version{}, err
	}

	masterID := d.MasterID
	if masterID == "" {
		if d.Name == "" {
			return document.Master{}, document.Version{}, errors.New(errors.ErrCodeInvalidStep, "draft %q has no name; complete the info step first", id)
		}
		m, err := s.Create(ctx, d.Kind, d.Name, d.Description, nil)
		if err != nil {
			return document.Master{}, document.Version{}, err
		}
		if d.TemplateID != "" {
			m.TemplateID = d.TemplateID
			if err := s.repo.UpdateMaster(ctx, m); err != nil {
				return document.Master{}, document.Version{}, err
			}
		}
		masterID = m.ID
	} else if d.Name != "" {
		m, err := s.repo.GetMaster(ctx, masterID)
		if err != nil {
			return document.Master{}, document.Version{}, err
		}
		if m.Name != d.Name || m.Description != d.Description {
			m.Name, m.Description = d.Name, d.Description
			if err := m.Validate(); err != nil {
				return document.Master{}, document.Version{}, err
			}
			if err := s.repo.UpdateMaster(ctx, m); err != nil {
				return document.Master{}, document.Version{}, err
			}
		}
	}

	v, err := s.Publish(ctx, masterID, comment, d.Content)
	if err != nil {
		return document.Master{}, document.Version{}, err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		s.logger.Warn("delete committed draft", "draft", id, "err", err)
	}
	m, err := s.repo.GetMaster(ctx, masterID)
	if err != nil {
		return document.Master{}, document.Version{}, err
	}
	s.logger.Debug("committed draft", "draft", id, "master", masterID, "version", v.Number)
	return m, v, nil
}

// =============================================================================
// Content edits
// =============================================================================

// SetContainerStyle replaces a container style in a draft and propagates it
// to the inheriting fields below the container.
func (s *Service) SetContainerStyle(ctx context.Context, id string, ref document.ContainerRef, cfg *style.Config) (*draft.Draft, editor.PropagationResult, error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, editor.PropagationResult{}, err
		}
	}
	var res editor.PropagationResult
	d, err := s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		start := time.Now()
		out, r, err := editor.SetContainerStyle(c, ref, cfg)
		if err != nil {
			return c, err
		}
		res = r
		observability.Editor().OnPropagate(ctx, string(ref.Scope), r.Inheriting, r.Manual, time.Since(start))
		return out, nil
	})
	if err != nil {
		return nil, editor.PropagationResult{}, err
	}
	s.logger.Debug("set container style", "draft", id, "container", ref, "inheriting", res.Inheriting, "manual", res.Manual)
	return d, res, nil
}

// SetFieldStyle replaces a field style and marks the field manually edited.
func (s *Service) SetFieldStyle(ctx context.Context, id, fieldID string, cfg *style.Config) (*draft.Draft, error) {
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		out, err := editor.SetFieldStyle(c, fieldID, cfg)
		if err == nil {
			observability.Editor().OnFieldEdit(ctx, fieldType(out, fieldID))
		}
		return out, err
	})
}

// ResetFieldStyle makes a field inherit again.
func (s *Service) ResetFieldStyle(ctx context.Context, id, fieldID string) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		out, err := editor.ResetFieldStyle(c, fieldID)
		if err == nil {
			observability.Editor().OnFieldReset(ctx, fieldType(out, fieldID))
		}
		return out, err
	})
}

// MarkFieldManual stops a field from following its container without
// changing its style.
func (s *Service) MarkFieldManual(ctx context.Context, id, fieldID string) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		return editor.MarkFieldManual(c, fieldID)
	})
}

// SetFieldValue fills a field.
func (s *Service) SetFieldValue(ctx context.Context, id, fieldID string, value any) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		return editor.SetFieldValue(c, fieldID, value)
	})
}

// AddField appends a field to a container. The field starts inheriting.
func (s *Service) AddField(ctx context.Context, id string, ref document.ContainerRef, f document.Field) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		return editor.AddField(c, ref, f)
	})
}

// RemoveField deletes a field.
func (s *Service) RemoveField(ctx context.Context, id, fieldID string) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		return editor.RemoveField(c, fieldID)
	})
}

// MoveField moves a field to position index of another container.
func (s *Service) MoveField(ctx context.Context, id, fieldID string, to document.ContainerRef, index int) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		return editor.MoveField(c, fieldID, to, index)
	})
}

// AddSection appends a section.
func (s *Service) AddSection(ctx context.Context, id string, sec document.Section) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		return editor.AddSection(c, sec)
	})
}

// AddBlock appends a block to a section.
func (s *Service) AddBlock(ctx context.Context, id, sectionID string, b document.Block) (*draft.Draft, error) {
	return s.edit(ctx, id, func(c document.Content) (document.Content, error) {
		return editor.AddBlock(c, sectionID, b)
	})
}

// DraftStyles returns the effective style of every field of a draft.
func (s *Service) DraftStyles(ctx context.Context, id string) (map[string]style.Config, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	return editor.ResolveAll(d.Content), nil
}

// edit loads a draft, replaces its content with the result of fn and saves
// it. Nothing is saved when fn fails.
func (s *Service) edit(ctx context.Context, id string, fn func(document.Content) (document.Content, error)) (*draft.Draft, error) {
	d, err := s.Draft(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := fn(d.Content)
	if err != nil {
		return nil, err
	}
	d.Content = content
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) save(ctx context.Context, d *draft.Draft) error {
	d.Touch(s.draftTTL)
	if err := s.drafts.Set(ctx, d); err != nil {
		return err
	}
	observability.Drafts().OnDraftSave(ctx, s.backend, len(d.Content.Fields()))
	return nil
}

func fieldType(c document.Content, fieldID string) string {
	loc, ok := c.FindField(fieldID)
	if !ok {
		return ""
	}
	ct, err := c.Container(loc.Container, false)
	if err != nil {
		return ""
	}
	return string(ct.Fields[loc.Index].Type())
}
