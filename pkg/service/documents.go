package service

import (
	"context"

	"github.com/matzehuels/bulletins/pkg/cache"
	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/editor"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

// Create stores a new master of kind. A non-nil content is validated and
// stored as version 1; the master stays in draft status until it is
// published.
func (s *Service) Create(ctx context.Context, kind document.Kind, name, description string, content *document.Content) (document.Master, error) {
	if _, err := document.ParseKind(string(kind)); err != nil {
		return document.Master{}, err
	}
	m := document.NewMaster(kind, name, description)
	if err := m.Validate(); err != nil {
		return document.Master{}, err
	}
	if content != nil {
		if err := content.Validate(); err != nil {
			return document.Master{}, err
		}
	}

	if err := s.repo.CreateMaster(ctx, m); err != nil {
		return document.Master{}, err
	}
	if content != nil {
		if _, err := s.repo.AddVersion(ctx, document.NewVersion(m.ID, "initial", *content), false); err != nil {
			return document.Master{}, err
		}
	}
	s.logger.Debug("created document", "kind", kind, "id", m.ID, "with_content", content != nil)
	return s.repo.GetMaster(ctx, m.ID)
}

// Get returns a master.
func (s *Service) Get(ctx context.Context, id string) (document.Master, error) {
	return s.repo.GetMaster(ctx, id)
}

// GetKind returns a master and checks it is of kind.
func (s *Service) GetKind(ctx context.Context, kind document.Kind, id string) (document.Master, error) {
	m, err := s.repo.GetMaster(ctx, id)
	if err != nil {
		return document.Master{}, err
	}
	if m.Kind != kind {
		return document.Master{}, errors.New(errors.ErrCodeDocumentNotFound, "%s %q not found", kind, id)
	}
	return m, nil
}

// List returns the masters of kind, newest first. An empty kind lists all.
func (s *Service) List(ctx context.Context, kind document.Kind) ([]document.Master, error) {
	return s.repo.ListMasters(ctx, kind)
}

// Versions returns every version of a master in ascending order.
func (s *Service) Versions(ctx context.Context, id string) ([]document.Version, error) {
	return s.repo.ListVersions(ctx, id)
}

// Version returns version n of a master. n == 0 selects the current version.
func (s *Service) Version(ctx context.Context, id string, n int) (document.Version, error) {
	if n < 0 {
		return document.Version{}, errors.New(errors.ErrCodeInvalidInput, "version number must not be negative")
	}
	if n == 0 {
		m, err := s.repo.GetMaster(ctx, id)
		if err != nil {
			return document.Version{}, err
		}
		if m.CurrentVersion == 0 {
			return document.Version{}, errors.New(errors.ErrCodeVersionNotFound, "document %q has no versions", id)
		}
		n = m.CurrentVersion
	}
	return s.repo.GetVersion(ctx, id, n)
}

// Publish stores content as the next version of a master and marks the
// master published. Archived masters cannot be published.
func (s *Service) Publish(ctx context.Context, id, comment string, content document.Content) (document.Version, error) {
	m, err := s.repo.GetMaster(ctx, id)
	if err != nil {
		return document.Version{}, err
	}
	if m.Status == document.StatusArchived {
		return document.Version{}, errors.New(errors.ErrCodeConflict, "document %q is archived", id)
	}
	if err := content.Validate(); err != nil {
		return document.Version{}, err
	}

	v, err := s.repo.AddVersion(ctx, document.NewVersion(id, comment, content), true)
	if err != nil {
		return document.Version{}, err
	}
	s.logger.Debug("published version", "id", id, "version", v.Number)
	return v, nil
}

// Archive marks a master archived. Archiving twice is not an error.
func (s *Service) Archive(ctx context.Context, id string) (document.Master, error) {
	m, err := s.repo.GetMaster(ctx, id)
	if err != nil {
		return document.Master{}, err
	}
	if m.Status == document.StatusArchived {
		return m, nil
	}
	m, err = s.repo.SetStatus(ctx, id, document.StatusArchived)
	if err != nil {
		return document.Master{}, err
	}
	s.logger.Debug("archived document", "id", id)
	return m, nil
}

// Export returns a master together with the content of version n (0 for
// the current one). A master without versions exports empty content.
func (s *Service) Export(ctx context.Context, id string, n int) (document.Document, error) {
	m, err := s.repo.GetMaster(ctx, id)
	if err != nil {
		return document.Document{}, err
	}
	if n == 0 && m.CurrentVersion == 0 {
		return document.Document{Master: m, Content: document.Content{Sections: []document.Section{}}}, nil
	}
	v, err := s.Version(ctx, id, n)
	if err != nil {
		return document.Document{}, err
	}
	return document.Document{Master: m, Content: v.Content}, nil
}

// Import stores doc as a new master. The imported master gets a fresh ID and
// its content becomes version 1.
func (s *Service) Import(ctx context.Context, doc document.Document) (document.Master, error) {
	m, err := s.Create(ctx, doc.Master.Kind, doc.Master.Name, doc.Master.Description, &doc.Content)
	if err != nil {
		return document.Master{}, err
	}
	if doc.Master.TemplateID == "" {
		return m, nil
	}
	m.TemplateID = doc.Master.TemplateID
	if err := s.repo.UpdateMaster(ctx, m); err != nil {
		return document.Master{}, err
	}
	return m, nil
}

// ResolvedStyles returns the effective style of every field of version n
// (0 for the current one). Results are cached per version.
func (s *Service) ResolvedStyles(ctx context.Context, id string, n int) (map[string]style.Config, error) {
	v, err := s.Version(ctx, id, n)
	if err != nil {
		return nil, err
	}

	key := cache.Key("styles", v.MasterID, v.Number, v.ID)
	var out map[string]style.Config
	if hit, err := cache.GetJSON(ctx, s.cache, key, &out); err == nil && hit {
		return out, nil
	} else if err != nil {
		s.logger.Warn("style cache read failed", "id", id, "version", v.Number, "err", err)
	}

	out = editor.ResolveAll(v.Content)
	if err := cache.SetJSON(ctx, s.cache, key, out, s.cacheTTL); err != nil {
		s.logger.Warn("style cache write failed", "id", id, "version", v.Number, "err", err)
	}
	return out, nil
}
