// Package store persists document masters and their versions.
//
// A master is the long-lived record of a template, bulletin or card.
// Versions are immutable snapshots of its content, numbered from 1 per
// master. [Repository] is implemented by [Memory] here and by package
// store/mongo for MongoDB.
package store

import (
	"context"

	"github.com/matzehuels/bulletins/pkg/document"
)

// Repository stores masters and versions.
type Repository interface {
	// CreateMaster inserts a new master. Returns CONFLICT if the ID exists.
	CreateMaster(ctx context.Context, m document.Master) error

	// GetMaster returns the master with the given ID, or DOCUMENT_NOT_FOUND.
	GetMaster(ctx context.Context, id string) (document.Master, error)

	// ListMasters returns every master of kind ordered by creation time,
	// newest first. An empty kind lists all kinds.
	ListMasters(ctx context.Context, kind document.Kind) ([]document.Master, error)

	// UpdateMaster stores the name, description and template ID of an
	// existing master, or returns DOCUMENT_NOT_FOUND. Status and
	// CurrentVersion are only changed by SetStatus and AddVersion.
	UpdateMaster(ctx context.Context, m document.Master) error

	// SetStatus changes the status of a master and returns the result.
	SetStatus(ctx context.Context, id string, status document.Status) (document.Master, error)

	// AddVersion stores v as the next version of its master and returns it
	// with its assigned number. The master's CurrentVersion is advanced.
	// With publish set, the master is marked published in the same step,
	// and an archived master yields CONFLICT without allocating a number.
	AddVersion(ctx context.Context, v document.Version, publish bool) (document.Version, error)

	// GetVersion returns version number n of a master, or VERSION_NOT_FOUND.
	GetVersion(ctx context.Context, masterID string, n int) (document.Version, error)

	// ListVersions returns every version of a master ordered by number.
	ListVersions(ctx context.Context, masterID string) ([]document.Version, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
