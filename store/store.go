// Package store defines the persistence collaborator: a Store that
// saves site snapshots, and a Debouncer that coalesces the rapid
// mutation bursts of interactive editing into occasional saves.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/openpit/blast"
)

// ErrSnapshotNotFound is returned when a load finds no snapshot.
var ErrSnapshotNotFound = errors.New("store: snapshot not found")

// Snapshot is one saved site state. ID is assigned at capture time so
// retries of the same save batch are idempotent at the store.
type Snapshot struct {
	ID       string
	SavedAt  time.Time
	Holes    []blast.Hole
	Entities []blast.KADEntity
}

// Capture copies the site's current holes and KAD entities into a new
// snapshot with a fresh batch ID.
func Capture(s *blast.Site) Snapshot {
	return Snapshot{
		ID:       uuid.NewString(),
		SavedAt:  time.Now().UTC(),
		Holes:    s.Holes(),
		Entities: s.KADEntities(),
	}
}

// Store persists snapshots. Implementations must tolerate Save being
// retried with the same snapshot ID.
type Store interface {
	// Save persists the snapshot.
	Save(ctx context.Context, snap Snapshot) error
	// Latest returns the most recently saved snapshot, or
	// ErrSnapshotNotFound when the store is empty.
	Latest(ctx context.Context) (Snapshot, error)
}
