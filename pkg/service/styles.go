package service

import (
	"context"
	"time"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/inherit"
	"github.com/matzehuels/bulletins/pkg/observability"
	"github.com/matzehuels/bulletins/pkg/style"
)

// Combine returns the effective style of child inside parent.
func (s *Service) Combine(parent, child *style.Config) style.Config {
	return style.Combine(parent, child)
}

// Resolve returns the effective style of f inside a container styled with
// containerStyle.
func (s *Service) Resolve(f document.Field, containerStyle *style.Config) style.Config {
	return inherit.Resolve(f, containerStyle)
}

// Propagate re-seeds the inheriting fields of a container after its style
// changed to containerStyle.
func (s *Service) Propagate(ctx context.Context, fields []document.Field, containerStyle *style.Config) []document.Field {
	start := time.Now()
	out := inherit.Propagate(fields, containerStyle)
	manual := 0
	for _, f := range out {
		if f.StyleManuallyEdited {
			manual++
		}
	}
	observability.Editor().OnPropagate(ctx, "standalone", len(out)-manual, manual, time.Since(start))
	return out
}
