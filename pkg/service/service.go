// Package service implements the document workflows shared by the HTTP API
// and the CLI.
//
// A [Service] ties together the document [store.Repository], the draft
// [draft.Store], the pure content operations of package editor and the
// creation wizards of package wizard:
//
//   - documents are created, published as numbered versions and archived
//   - drafts are working copies that the editor operations modify
//   - committing a draft publishes its content as a new version
//
// Service methods are safe for concurrent use as long as the configured
// repository and draft store are. Two concurrent edits of the same draft are
// last-writer-wins.
//
// # Usage
//
//	svc, err := service.New(service.Options{
//	    Repo:   store.NewMemory(),
//	    Drafts: draft.NewMemoryStore(),
//	    Logger: logger,
//	})
//	if err != nil {
//	    return err
//	}
//
//	d, err := svc.StartDraft(ctx, document.KindTemplate, "")
//	d, err = svc.WizardNext(ctx, d.ID, service.DecodeJSON(body))
//	d, res, err := svc.SetContainerStyle(ctx, d.ID, document.GlobalRef, cfg)
//	master, version, err := svc.CommitDraft(ctx, d.ID, "first issue")
package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bulletins/pkg/cache"
	"github.com/matzehuels/bulletins/pkg/draft"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/store"
)

// DefaultStyleCacheTTL is how long resolved styles of a published version
// are cached. Versions are immutable, so the TTL only bounds cache size.
const DefaultStyleCacheTTL = 24 * time.Hour

// Options configures a Service.
type Options struct {
	// Repo stores masters and versions. Required.
	Repo store.Repository

	// Drafts stores working copies. Required.
	Drafts draft.Store

	// DraftBackend names the draft store in metrics ("memory", "file",
	// "redis"). Defaults to "memory".
	DraftBackend string

	// DraftTTL is how long an untouched draft is kept. Defaults to
	// draft.DefaultTTL.
	DraftTTL time.Duration

	// Cache holds resolved styles of published versions. Nil disables
	// caching.
	Cache cache.Cache

	// StyleCacheTTL defaults to DefaultStyleCacheTTL.
	StyleCacheTTL time.Duration

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Validate checks the required collaborators are present.
func (o Options) Validate() error {
	if o.Repo == nil {
		return errors.New(errors.ErrCodeInvalidInput, "service: repository is required")
	}
	if o.Drafts == nil {
		return errors.New(errors.ErrCodeInvalidInput, "service: draft store is required")
	}
	if o.DraftTTL < 0 || o.StyleCacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "service: TTLs must not be negative")
	}
	return nil
}

// SetDefaults fills unset optional fields.
func (o *Options) SetDefaults() {
	if o.DraftBackend == "" {
		o.DraftBackend = "memory"
	}
	if o.DraftTTL == 0 {
		o.DraftTTL = draft.DefaultTTL
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.StyleCacheTTL == 0 {
		o.StyleCacheTTL = DefaultStyleCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Service runs document workflows.
type Service struct {
	repo     store.Repository
	drafts   draft.Store
	backend  string
	draftTTL time.Duration
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *log.Logger
}

// New creates a Service from opts.
func New(opts Options) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.SetDefaults()
	return &Service{
		repo:     opts.Repo,
		drafts:   opts.Drafts,
		backend:  opts.DraftBackend,
		draftTTL: opts.DraftTTL,
		cache:    opts.Cache,
		cacheTTL: opts.StyleCacheTTL,
		logger:   opts.Logger,
	}, nil
}

// Close releases the repository, the draft store and the cache.
func (s *Service) Close(ctx context.Context) error {
	var first error
	for _, err := range []error{s.drafts.Close(), s.cache.Close(), s.repo.Close(ctx)} {
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// DecodeJSON returns a payload decoder for WizardNext reading data as JSON.
// Empty data decodes nothing, which suits steps without a payload.
func DecodeJSON(data []byte) func(any) error {
	return func(v any) error {
		if len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode step payload")
		}
		return nil
	}
}
