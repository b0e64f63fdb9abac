package seniority

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error

	FindByID(ctx context.Context, id int64) (*Entry, error)

	List(ctx context.Context, status Status) ([]*Entry, error)

	// UpdateStatus moves an entry out of from; it returns ErrConflict if the entry is no longer in from.
	UpdateStatus(ctx context.Context, id int64, from, to Status, note string, reviewedAt time.Time) error

	Delete(ctx context.Context, id int64) error
}
