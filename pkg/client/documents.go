package client

import (
	"context"
	"net/http"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/style"
)

// Documents accesses the documents of one kind.
type Documents struct {
	c    *Client
	kind document.Kind
}

// Documents returns the accessor for kind.
func (c *Client) Documents(kind document.Kind) *Documents {
	return &Documents{c: c, kind: kind}
}

func (d *Documents) path(format string, args ...any) string {
	return pathf("/"+string(d.kind)+"s"+format, args...)
}

// versionPath formats a version number, with 0 meaning the current one.
func versionPath(n int) any {
	if n == 0 {
		return "current"
	}
	return n
}

// List returns every master of the kind.
func (d *Documents) List(ctx context.Context) ([]document.Master, error) {
	var out []document.Master
	err := d.c.do(ctx, http.MethodGet, d.path(""), nil, &out)
	return out, err
}

// Create creates a master, optionally with initial content stored as
// version 1.
func (d *Documents) Create(ctx context.Context, name, description string, content *document.Content) (document.Master, error) {
	in := struct {
		Name        string            `json:"name"`
		Description string            `json:"description,omitempty"`
		Content     *document.Content `json:"content,omitempty"`
	}{name, description, content}
	var out document.Master
	err := d.c.do(ctx, http.MethodPost, d.path(""), in, &out)
	return out, err
}

// Get returns a master.
func (d *Documents) Get(ctx context.Context, id string) (document.Master, error) {
	var out document.Master
	err := d.c.do(ctx, http.MethodGet, d.path("/%s", id), nil, &out)
	return out, err
}

// Archive archives a master.
func (d *Documents) Archive(ctx context.Context, id string) (document.Master, error) {
	var out document.Master
	err := d.c.do(ctx, http.MethodPost, d.path("/%s/archive", id), nil, &out)
	return out, err
}

// Versions lists the versions of a master, oldest first.
func (d *Documents) Versions(ctx context.Context, id string) ([]document.Version, error) {
	var out []document.Version
	err := d.c.do(ctx, http.MethodGet, d.path("/%s/versions", id), nil, &out)
	return out, err
}

// Version returns version n of a master; 0 selects the current version.
func (d *Documents) Version(ctx context.Context, id string, n int) (document.Version, error) {
	var out document.Version
	err := d.c.do(ctx, http.MethodGet, d.path("/%s/versions/%v", id, versionPath(n)), nil, &out)
	return out, err
}

// Publish stores content as the next version of a master.
func (d *Documents) Publish(ctx context.Context, id, comment string, content document.Content) (document.Version, error) {
	in := struct {
		Comment string           `json:"comment,omitempty"`
		Content document.Content `json:"content"`
	}{comment, content}
	var out document.Version
	err := d.c.do(ctx, http.MethodPost, d.path("/%s/versions", id), in, &out)
	return out, err
}

// Styles returns the resolved style of every field of version n.
func (d *Documents) Styles(ctx context.Context, id string, n int) (map[string]style.Config, error) {
	var out map[string]style.Config
	err := d.c.do(ctx, http.MethodGet, d.path("/%s/versions/%v/styles", id, versionPath(n)), nil, &out)
	return out, err
}

// Export returns a master bundled with its current content.
func (d *Documents) Export(ctx context.Context, id string) (document.Document, error) {
	var out document.Document
	err := d.c.do(ctx, http.MethodGet, d.path("/%s/export", id), nil, &out)
	return out, err
}

// Import creates a new master from an exported document.
func (c *Client) Import(ctx context.Context, doc document.Document) (document.Master, error) {
	var out document.Master
	err := c.do(ctx, http.MethodPost, "/import", doc, &out)
	return out, err
}
