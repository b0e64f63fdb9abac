package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	insertDataEntrySQL = `
        INSERT INTO data_entries (entry_type, category, description, amount, entry_date, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at`

	findDataEntrySQL = `
        SELECT id, entry_type, category, description, amount, entry_date, created_at
        FROM data_entries
        WHERE id = $1 AND deleted_at IS NULL`

	listDataEntriesSQL = `
        SELECT id, entry_type, category, description, amount, entry_date, created_at
        FROM data_entries
        WHERE deleted_at IS NULL
          AND ($1::date IS NULL OR entry_date >= $1)
          AND ($2::date IS NULL OR entry_date <= $2)
          AND ($3::text = '' OR entry_type = $3)
        ORDER BY entry_date DESC, id DESC`

	dataEntryTotalsSQL = `
        SELECT COALESCE(SUM(amount) FILTER (WHERE entry_type = 'CREDIT'), 0),
               COALESCE(SUM(amount) FILTER (WHERE entry_type = 'DEBIT'), 0)
        FROM data_entries
        WHERE deleted_at IS NULL
          AND ($1::date IS NULL OR entry_date >= $1)
          AND ($2::date IS NULL OR entry_date <= $2)`
)

type DataEntryRepository struct {
	baseRepository
}

var _ ledger.Repository = (*DataEntryRepository)(nil)

func NewDataEntryRepository(db DBPool, logger *slog.Logger) *DataEntryRepository {
	return &DataEntryRepository{baseRepository: newBaseRepository(db, logger, "DataEntryRepository")}
}

func (r *DataEntryRepository) Create(ctx context.Context, entry *ledger.DataEntry) error {
	start := time.Now()
	err := r.db.QueryRow(ctx, insertDataEntrySQL,
		entry.EntryType, entry.Category, entry.Description, entry.Amount, entry.EntryDate,
	).Scan(&entry.ID, &entry.CreatedAt)
	observe("CreateDataEntry", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	return nil
}

func (r *DataEntryRepository) FindByID(ctx context.Context, id int64) (*ledger.DataEntry, error) {
	start := time.Now()
	entry, err := scanDataEntry(r.db.QueryRow(ctx, findDataEntrySQL, id))
	observe("FindDataEntryByID", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return entry, nil
}

func (r *DataEntryRepository) List(ctx context.Context, filter ledger.Filter) ([]*ledger.DataEntry, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, listDataEntriesSQL, filter.From, filter.To, string(filter.Type))
	observe("ListDataEntries", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	entries := make([]*ledger.DataEntry, 0)
	for rows.Next() {
		entry, err := scanDataEntry(rows)
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

func (r *DataEntryRepository) Totals(ctx context.Context, from, to *time.Time) (credits, debits decimal.Decimal, err error) {
	start := time.Now()
	err = r.db.QueryRow(ctx, dataEntryTotalsSQL, from, to).Scan(&credits, &debits)
	observe("DataEntryTotals", start, err)
	if err != nil {
		return decimal.Zero, decimal.Zero, translateDBError(err, r.logger)
	}
	return credits, debits, nil
}

func scanDataEntry(row pgx.Row) (*ledger.DataEntry, error) {
	var e ledger.DataEntry
	if err := row.Scan(&e.ID, &e.EntryType, &e.Category, &e.Description, &e.Amount, &e.EntryDate, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
