package trash

import (
	"context"
	"time"
)

type Repository interface {
	// Trash soft-deletes the row and, for customers and loans, every live child row, stamping them all with at.
	Trash(ctx context.Context, kind Kind, id int64, at time.Time) error

	List(ctx context.Context, kind Kind) ([]Item, error)

	// Restore un-deletes the row together with the children that were trashed alongside it.
	Restore(ctx context.Context, kind Kind, id int64) error

	// Purge permanently removes a trashed row and returns the number of rows deleted.
	Purge(ctx context.Context, kind Kind, id int64) (int64, error)

	PurgeBefore(ctx context.Context, kind Kind, before time.Time) (int64, error)
}
