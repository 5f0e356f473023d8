// Package pkg provides the libraries behind the bulletins service.
//
// # Overview
//
// Bulletins manages three kinds of documents: templates, bulletins built
// from templates, and cards. A document is a tree of containers (global
// style, header, footer, sections, blocks) holding typed fields. Every
// container and field carries an optional style, and fields inherit the
// heritable part of their container's style until a user edits them by
// hand.
//
// # Packages
//
// The inheritance engine:
//
//   - [style]: style records, the heritable/local property split, Combine
//   - [inherit]: per-field Resolve, Seed, Propagate and the manual flag
//   - [editor]: content-level edits that keep inheritance consistent
//
// The document model and its workflow:
//
//   - [document]: masters, versions, content tree and field variants
//   - [wizard]: the step machine that guides document creation
//   - [draft]: in-progress wizard sessions (memory, file, redis stores)
//   - [store]: masters and versions (memory, mongo)
//   - [service]: the operations shared by the API and the CLI
//
// Transport and infrastructure:
//
//   - [api]: the HTTP API over [service]
//   - [client]: a Go client for [api]
//   - [io]: JSON and YAML import/export of documents and styles
//   - [cache]: resolved-style cache (memory, file, redis)
//   - [errors], [observability], [httputil], [buildinfo]
//
// # Data Flow
//
//	wizard step / edit ──► editor ──► inherit ──► style
//	        │                                      ▲
//	        ▼                                      │
//	     draft store ──commit──► store ──► service.ResolvedStyles ──► cache
package pkg
