// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about style editing, draft storage and HTTP traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The Prometheus implementation lives in internal/metrics and is registered
// by the serve command.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    observability.SetDraftHooks(&myDraftHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	content, res, err := editor.SetContainerStyle(content, ref, cfg)
//	observability.Editor().OnPropagate(ctx, string(ref.Scope), res.Inheriting, res.Manual, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from style editing.
type EditorHooks interface {
	// OnPropagate records a container style change and how many fields it
	// re-seeded or left alone.
	OnPropagate(ctx context.Context, scope string, inheriting, manual int, duration time.Duration)

	// OnFieldEdit records a direct edit of a field style.
	OnFieldEdit(ctx context.Context, fieldType string)

	// OnFieldReset records a field returning to the inheriting state.
	OnFieldReset(ctx context.Context, fieldType string)
}

// =============================================================================
// Draft Hooks
// =============================================================================

// DraftHooks receives events from draft storage.
type DraftHooks interface {
	// OnDraftHit records a draft lookup that found a live draft.
	OnDraftHit(ctx context.Context, backend string)

	// OnDraftMiss records a lookup of a missing or expired draft.
	OnDraftMiss(ctx context.Context, backend string)

	// OnDraftSave records a draft write.
	OnDraftSave(ctx context.Context, backend string, fields int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP operations, both served and sent.
type HTTPHooks interface {
	// OnRequest records an HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnPropagate(context.Context, string, int, int, time.Duration) {}
func (NoopEditorHooks) OnFieldEdit(context.Context, string)                          {}
func (NoopEditorHooks) OnFieldReset(context.Context, string)                         {}

// NoopDraftHooks is a no-op implementation of DraftHooks.
type NoopDraftHooks struct{}

func (NoopDraftHooks) OnDraftHit(context.Context, string)       {}
func (NoopDraftHooks) OnDraftMiss(context.Context, string)      {}
func (NoopDraftHooks) OnDraftSave(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks EditorHooks = NoopEditorHooks{}
	draftHooks  DraftHooks  = NoopDraftHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// This should be called once at application startup.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetDraftHooks registers custom draft hooks.
// This should be called once at application startup.
func SetDraftHooks(h DraftHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		draftHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Drafts returns the registered draft hooks.
func Drafts() DraftHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return draftHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	draftHooks = NoopDraftHooks{}
	httpHooks = NoopHTTPHooks{}
}
