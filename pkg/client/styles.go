package client

import (
	"context"
	"net/http"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/style"
)

// Combine merges a parent and child style on the server.
func (c *Client) Combine(ctx context.Context, parent, child *style.Config) (style.Config, error) {
	in := struct {
		Parent *style.Config `json:"parent"`
		Child  *style.Config `json:"child"`
	}{parent, child}
	var out style.Config
	err := c.do(ctx, http.MethodPost, "/style/combine", in, &out)
	return out, err
}

// Resolve returns the effective style of f inside a container styled with
// containerStyle.
func (c *Client) Resolve(ctx context.Context, f document.Field, containerStyle *style.Config) (style.Config, error) {
	in := struct {
		Field          document.Field `json:"field"`
		ContainerStyle *style.Config  `json:"container_style"`
	}{f, containerStyle}
	var out style.Config
	err := c.do(ctx, http.MethodPost, "/style/resolve", in, &out)
	return out, err
}

// Propagate re-seeds the inheriting fields from containerStyle.
func (c *Client) Propagate(ctx context.Context, fields []document.Field, containerStyle *style.Config) ([]document.Field, error) {
	in := struct {
		Fields         []document.Field `json:"fields"`
		ContainerStyle *style.Config    `json:"container_style"`
	}{fields, containerStyle}
	var out []document.Field
	err := c.do(ctx, http.MethodPost, "/style/propagate", in, &out)
	return out, err
}
