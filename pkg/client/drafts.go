package client

import (
	"context"
	"net/http"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/draft"
	"github.com/matzehuels/bulletins/pkg/editor"
	"github.com/matzehuels/bulletins/pkg/style"
	"github.com/matzehuels/bulletins/pkg/wizard"
)

// Drafts accesses editing sessions.
type Drafts struct{ c *Client }

// Drafts returns the draft accessor.
func (c *Client) Drafts() *Drafts { return &Drafts{c: c} }

// Start opens a draft of kind. With a masterID the draft starts from the
// master's current version.
func (d *Drafts) Start(ctx context.Context, kind document.Kind, masterID string) (*draft.Draft, error) {
	in := struct {
		Kind     document.Kind `json:"kind"`
		MasterID string        `json:"master_id,omitempty"`
	}{kind, masterID}
	return d.call(ctx, http.MethodPost, "", in)
}

// Get returns a draft.
func (d *Drafts) Get(ctx context.Context, id string) (*draft.Draft, error) {
	return d.call(ctx, http.MethodGet, pathf("/%s", id), nil)
}

// List returns every live draft.
func (d *Drafts) List(ctx context.Context) ([]*draft.Draft, error) {
	var out []*draft.Draft
	err := d.c.do(ctx, http.MethodGet, "/drafts", nil, &out)
	return out, err
}

// Discard deletes a draft.
func (d *Drafts) Discard(ctx context.Context, id string) error {
	return d.c.do(ctx, http.MethodDelete, pathf("/drafts/%s", id), nil, nil)
}

// Commit publishes a draft as the next version of its master and deletes
// the draft.
func (d *Drafts) Commit(ctx context.Context, id, comment string) (document.Master, document.Version, error) {
	in := struct {
		Comment string `json:"comment,omitempty"`
	}{comment}
	var out struct {
		Master  document.Master  `json:"master"`
		Version document.Version `json:"version"`
	}
	err := d.c.do(ctx, http.MethodPost, pathf("/drafts/%s/commit", id), in, &out)
	return out.Master, out.Version, err
}

// Next completes the current wizard step with payload, which must encode
// as the step's JSON payload (see wizard.NewPayload). Pass nil for steps
// without one.
func (d *Drafts) Next(ctx context.Context, id string, payload any) (*draft.Draft, error) {
	if payload == nil {
		payload = struct{}{}
	}
	return d.call(ctx, http.MethodPost, pathf("/%s/wizard/next", id), payload)
}

// Back moves the wizard one step back.
func (d *Drafts) Back(ctx context.Context, id string) (*draft.Draft, error) {
	return d.call(ctx, http.MethodPost, pathf("/%s/wizard/back", id), nil)
}

// GoTo jumps the wizard to step.
func (d *Drafts) GoTo(ctx context.Context, id string, step wizard.Step) (*draft.Draft, error) {
	in := struct {
		Step wizard.Step `json:"step"`
	}{step}
	return d.call(ctx, http.MethodPost, pathf("/%s/wizard/goto", id), in)
}

// SetContainerStyle sets the style of a container and reports how the
// change propagated.
func (d *Drafts) SetContainerStyle(ctx context.Context, id string, ref document.ContainerRef, cfg *style.Config) (*draft.Draft, editor.PropagationResult, error) {
	in := struct {
		Container document.ContainerRef `json:"container"`
		Style     *style.Config         `json:"style_config"`
	}{ref, cfg}
	var out struct {
		Draft       *draft.Draft `json:"draft"`
		Propagation struct {
			Containers int `json:"containers"`
			Inheriting int `json:"inheriting"`
			Manual     int `json:"manual"`
		} `json:"propagation"`
	}
	if err := d.c.do(ctx, http.MethodPut, pathf("/drafts/%s/containers/style", id), in, &out); err != nil {
		return nil, editor.PropagationResult{}, err
	}
	p := out.Propagation
	return out.Draft, editor.PropagationResult{Containers: p.Containers, Inheriting: p.Inheriting, Manual: p.Manual}, nil
}

// SetFieldStyle sets a field's style and marks it manually edited.
func (d *Drafts) SetFieldStyle(ctx context.Context, id, fieldID string, cfg *style.Config) (*draft.Draft, error) {
	in := struct {
		Style *style.Config `json:"style_config"`
	}{cfg}
	return d.call(ctx, http.MethodPut, pathf("/%s/fields/%s/style", id, fieldID), in)
}

// ResetFieldStyle makes a field inherit from its container again.
func (d *Drafts) ResetFieldStyle(ctx context.Context, id, fieldID string) (*draft.Draft, error) {
	return d.call(ctx, http.MethodPost, pathf("/%s/fields/%s/reset", id, fieldID), nil)
}

// MarkFieldManual stops a field from following its container.
func (d *Drafts) MarkFieldManual(ctx context.Context, id, fieldID string) (*draft.Draft, error) {
	return d.call(ctx, http.MethodPost, pathf("/%s/fields/%s/manual", id, fieldID), nil)
}

// SetFieldValue fills a field.
func (d *Drafts) SetFieldValue(ctx context.Context, id, fieldID string, value any) (*draft.Draft, error) {
	in := struct {
		Value any `json:"value"`
	}{value}
	return d.call(ctx, http.MethodPut, pathf("/%s/fields/%s/value", id, fieldID), in)
}

// AddField appends a field to a container.
func (d *Drafts) AddField(ctx context.Context, id string, ref document.ContainerRef, f document.Field) (*draft.Draft, error) {
	in := struct {
		Container document.ContainerRef `json:"container"`
		Field     document.Field        `json:"field"`
	}{ref, f}
	return d.call(ctx, http.MethodPost, pathf("/%s/fields", id), in)
}

// RemoveField deletes a field.
func (d *Drafts) RemoveField(ctx context.Context, id, fieldID string) (*draft.Draft, error) {
	return d.call(ctx, http.MethodDelete, pathf("/%s/fields/%s", id, fieldID), nil)
}

// MoveField moves a field to position index of the container at to.
func (d *Drafts) MoveField(ctx context.Context, id, fieldID string, to document.ContainerRef, index int) (*draft.Draft, error) {
	in := struct {
		Container document.ContainerRef `json:"container"`
		Index     int                   `json:"index"`
	}{to, index}
	return d.call(ctx, http.MethodPost, pathf("/%s/fields/%s/move", id, fieldID), in)
}

// AddSection appends a section.
func (d *Drafts) AddSection(ctx context.Context, id string, s document.Section) (*draft.Draft, error) {
	return d.call(ctx, http.MethodPost, pathf("/%s/sections", id), s)
}

// AddBlock appends a block to a section.
func (d *Drafts) AddBlock(ctx context.Context, id, sectionID string, b document.Block) (*draft.Draft, error) {
	return d.call(ctx, http.MethodPost, pathf("/%s/sections/%s/blocks", id, sectionID), b)
}

// Styles returns the resolved style of every field of the draft.
func (d *Drafts) Styles(ctx context.Context, id string) (map[string]style.Config, error) {
	var out map[string]style.Config
	err := d.c.do(ctx, http.MethodGet, pathf("/drafts/%s/styles", id), nil, &out)
	return out, err
}

func (d *Drafts) call(ctx context.Context, method, path string, in any) (*draft.Draft, error) {
	var out draft.Draft
	if err := d.c.do(ctx, method, "/drafts"+path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
