package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/seniority"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	seniorityColumns = `s.id, s.customer_id, c.name, s.request_type, s.status, s.note, s.requested_at, s.reviewed_at`

	insertSenioritySQL = `
        INSERT INTO loan_seniority (customer_id, request_type, status, note, requested_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	findSenioritySQL = `
        SELECT ` + seniorityColumns + `
        FROM loan_seniority s
        JOIN customers c ON c.id = s.customer_id
        WHERE s.id = $1 AND c.deleted_at IS NULL`

	listSenioritySQL = `
        SELECT ` + seniorityColumns + `
        FROM loan_seniority s
        JOIN customers c ON c.id = s.customer_id
        WHERE c.deleted_at IS NULL
          AND ($1::text = '' OR s.status = $1)
        ORDER BY s.requested_at ASC, s.id ASC`

	updateSeniorityStatusSQL = `
        UPDATE loan_seniority
        SET status = $1, note = $2, reviewed_at = $3
        WHERE id = $4 AND status = $5`

	deleteSenioritySQL = `DELETE FROM loan_seniority WHERE id = $1`
)

type SeniorityRepository struct {
	baseRepository
}

var _ seniority.Repository = (*SeniorityRepository)(nil)

func NewSeniorityRepository(db DBPool, logger *slog.Logger) *SeniorityRepository {
	return &SeniorityRepository{baseRepository: newBaseRepository(db, logger, "SeniorityRepository")}
}

func (r *SeniorityRepository) Create(ctx context.Context, entry *seniority.Entry) error {
	start := time.Now()
	err := r.db.QueryRow(ctx, insertSenioritySQL, entry.CustomerID, entry.RequestType, entry.Status, entry.Note, entry.RequestedAt).
		Scan(&entry.ID)
	observe("CreateSeniorityEntry", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *SeniorityRepository) FindByID(ctx context.Context, id int64) (*seniority.Entry, error) {
	start := time.Now()
	entry, err := scanSeniorityEntry(r.db.QueryRow(ctx, findSenioritySQL, id))
	observe("FindSeniorityEntry", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return entry, nil
}

func (r *SeniorityRepository) List(ctx context.Context, status seniority.Status) ([]*seniority.Entry, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, listSenioritySQL, string(status))
	observe("ListSeniorityEntries", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	entries := make([]*seniority.Entry, 0)
	for rows.Next() {
		entry, err := scanSeniorityEntry(rows)
		if err != nil {
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return entries, nil
}

func (r *SeniorityRepository) UpdateStatus(ctx context.Context, id int64, from, to seniority.Status, note string, reviewedAt time.Time) error {
	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, updateSeniorityStatusSQL, to, note, reviewedAt, id, from)
	observe("UpdateSeniorityStatus", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: seniority entry %d is no longer %s", apperrors.ErrConflict, id, from)
	}
	return nil
}

func (r *SeniorityRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, deleteSenioritySQL, id)
	observe("DeleteSeniorityEntry", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanSeniorityEntry(row pgx.Row) (*seniority.Entry, error) {
	var e seniority.Entry
	if err := row.Scan(&e.ID, &e.CustomerID, &e.CustomerName, &e.RequestType, &e.Status, &e.Note, &e.RequestedAt, &e.ReviewedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
