// Package draft stores in-progress document edits (autosave).
//
// A [Draft] holds a working copy of a document's content together with the
// position of its creation wizard. Drafts expire: each store treats an
// expired draft exactly like a missing one.
//
// Backends implement [Store]:
//   - [MemoryStore]: in-process map, for tests and single-instance servers
//   - [FileStore]: one msgpack file per draft, for the CLI and small setups
//   - [RedisStore]: shared storage with native TTLs for multi-instance servers
//
// The file and redis stores encode drafts with msgpack.
//
// # Usage
//
//	store := draft.NewMemoryStore()
//	d, err := draft.New(document.KindTemplate, "", content, draft.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	if err := store.Set(ctx, d); err != nil {
//	    return err
//	}
//
//	d, err = store.Get(ctx, d.ID)
//	if err != nil {
//	    return err
//	}
//	if d == nil {
//	    // missing or expired
//	}
package draft

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/wizard"
)

// DefaultTTL is how long an untouched draft is kept.
const DefaultTTL = 7 * 24 * time.Hour

// Draft is a working copy of a document.
type Draft struct {
	ID       string        `json:"id" msgpack:"id"`
	Kind     document.Kind `json:"kind" msgpack:"kind"`
	MasterID string        `json:"master_id,omitempty" msgpack:"master_id,omitempty"`

	// Name, Description and TemplateID are collected by the wizard and
	// copied onto the master record when the draft is committed.
	Name        string `json:"name,omitempty" msgpack:"name,omitempty"`
	Description string `json:"description,omitempty" msgpack:"description,omitempty"`
	TemplateID  string `json:"template_id,omitempty" msgpack:"template_id,omitempty"`

	Wizard  wizard.State     `json:"wizard" msgpack:"wizard"`
	Content document.Content `json:"content" msgpack:"content"`

	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`
	ExpiresAt time.Time `json:"expires_at" msgpack:"expires_at"`
}

// New creates a draft of kind with a fresh ID, positioned at the first
// wizard step. masterID is empty for documents that do not exist yet.
func New(kind document.Kind, masterID string, content document.Content, ttl time.Duration) (*Draft, error) {
	w, err := wizard.New(kind)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.NewString(),
		Kind:      kind,
		MasterID:  masterID,
		Wizard:    w,
		Content:   content.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired reports whether the draft has passed its expiry time.
func (d *Draft) IsExpired() bool {
	return time.Now().After(d.ExpiresAt)
}

// Touch records a modification and extends the expiry by ttl.
func (d *Draft) Touch(ttl time.Duration) {
	now := time.Now().UTC()
	d.UpdatedAt = now
	d.ExpiresAt = now.Add(ttl)
}

// Clone returns a deep copy of d.
func (d *Draft) Clone() *Draft {
	out := *d
	out.Content = d.Content.Clone()
	out.Wizard.Completed = slices.Clone(d.Wizard.Completed)
	return &out
}

// Store is the interface for draft storage backends.
type Store interface {
	// Get retrieves a draft by ID.
	// Returns nil, nil if the draft doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Draft, error)

	// Set stores a draft, replacing any previous version.
	Set(ctx context.Context, d *Draft) error

	// Delete removes a draft. Deleting a missing draft is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every live draft, ordered by ID.
	List(ctx context.Context) ([]*Draft, error)

	// Close releases backend resources.
	Close() error
}

func encode(d *Draft) ([]byte, error) {
	return msgpack.Marshal(d)
}

func decode(data []byte) (*Draft, error) {
	var d Draft
	if err := msgpack.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
