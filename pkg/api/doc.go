// Package api serves the bulletins HTTP API.
//
// All routes live under /api/v1 and exchange JSON. Errors are returned as
//
//	{"code": "FIELD_NOT_FOUND", "message": "field \"title\" not found"}
//
// with the HTTP status given by errors.HTTPStatus for the code.
//
// # Routes
//
// Documents, one route group per kind (templates, bulletins, cards):
//
//	GET    /{kind}s                          list
//	POST   /{kind}s                          create
//	GET    /{kind}s/{id}                     get master
//	POST   /{kind}s/{id}/archive             archive
//	GET    /{kind}s/{id}/versions            list versions
//	POST   /{kind}s/{id}/versions            publish a version
//	GET    /{kind}s/{id}/versions/{n}        get version (0 or "current")
//	GET    /{kind}s/{id}/versions/{n}/styles resolved field styles
//	GET    /{kind}s/{id}/export              master + current content
//	POST   /import                           import a document
//
// Drafts:
//
//	POST   /drafts                           start
//	GET    /drafts                           list
//	GET    /drafts/{id}                      get
//	DELETE /drafts/{id}                      discard
//	POST   /drafts/{id}/commit               publish as a version
//	PUT    /drafts/{id}/containers/style     set a container style
//	POST   /drafts/{id}/fields               add a field
//	PUT    /drafts/{id}/fields/{fid}/style   set a field style
//	POST   /drafts/{id}/fields/{fid}/reset   reset a field to inherit
//	POST   /drafts/{id}/fields/{fid}/manual  mark a field manual
//	PUT    /drafts/{id}/fields/{fid}/value   fill a field
//	POST   /drafts/{id}/fields/{fid}/move    move a field
//	DELETE /drafts/{id}/fields/{fid}         remove a field
//	POST   /drafts/{id}/sections             add a section
//	POST   /drafts/{id}/sections/{sid}/blocks add a block
//	POST   /drafts/{id}/wizard/next          complete the current step
//	POST   /drafts/{id}/wizard/back          previous step
//	POST   /drafts/{id}/wizard/goto          jump to a step
//	GET    /drafts/{id}/styles               resolved field styles
//
// Stateless style operations:
//
//	POST   /style/combine
//	POST   /style/resolve
//	POST   /style/propagate
//
// Plus GET /healthz and GET /version. When a metrics handler is configured
// it is mounted at the configured path outside /api/v1.
package api
