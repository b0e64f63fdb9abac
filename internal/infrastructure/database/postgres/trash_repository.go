package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"welfare-ledger/internal/domain/trash"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var trashTables = map[trash.Kind]string{
	trash.KindCustomer:     "customers",
	trash.KindLoan:         "loans",
	trash.KindInstallment:  "installments",
	trash.KindSubscription: "subscriptions",
	trash.KindDataEntry:    "data_entries",
}

const (
	trashCustomerSQL = `UPDATE customers SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	trashCustomerInstallmentSQL = `
        UPDATE installments SET deleted_at = $2
        WHERE deleted_at IS NULL
          AND loan_id IN (SELECT id FROM loans WHERE customer_id = $1 AND deleted_at IS NULL)`
	trashCustomerLoansSQL         = `UPDATE loans SET deleted_at = $2 WHERE customer_id = $1 AND deleted_at IS NULL`
	trashCustomerSubscriptionsSQL = `UPDATE subscriptions SET deleted_at = $2 WHERE customer_id = $1 AND deleted_at IS NULL`

	trashLoanSQL             = `UPDATE loans SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	trashLoanInstallmentsSQL = `UPDATE installments SET deleted_at = $2 WHERE loan_id = $1 AND deleted_at IS NULL`

	trashInstallmentSQL = `
        UPDATE installments SET deleted_at = $2
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING loan_id`

	trashSubscriptionSQL = `UPDATE subscriptions SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	trashDataEntrySQL    = `UPDATE data_entries SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	// refreshLoanStatusSQL recomputes ACTIVE/CLOSED from the live installments.
	refreshLoanStatusSQL = `
        UPDATE loans l
        SET status = CASE
                WHEN COALESCE((SELECT SUM(i.amount) FROM installments i WHERE i.loan_id = l.id AND i.deleted_at IS NULL), 0)
                     >= l.original_amount + l.interest_amount THEN 'CLOSED'
                ELSE 'ACTIVE'
            END,
            updated_at = NOW()
        WHERE l.id = $1`

	lockTrashedCustomerSQL  = `SELECT deleted_at FROM customers WHERE id = $1 AND deleted_at IS NOT NULL FOR UPDATE`
	restoreCustomerSQL      = `UPDATE customers SET deleted_at = NULL, updated_at = NOW() WHERE id = $1`
	restoreCustomerLoansSQL = `UPDATE loans SET deleted_at = NULL WHERE customer_id = $1 AND deleted_at = $2`
	restoreCustomerInstallmentsSQL = `
        UPDATE installments SET deleted_at = NULL
        WHERE deleted_at = $2
          AND loan_id IN (SELECT id FROM loans WHERE customer_id = $1)`
	restoreCustomerSubscriptionsSQL = `UPDATE subscriptions SET deleted_at = NULL WHERE customer_id = $1 AND deleted_at = $2`

	lockTrashedLoanSQL = `
        SELECT l.deleted_at, c.deleted_at IS NOT NULL
        FROM loans l
        JOIN customers c ON c.id = l.customer_id
        WHERE l.id = $1 AND l.deleted_at IS NOT NULL
        FOR UPDATE OF l`
	restoreLoanSQL             = `UPDATE loans SET deleted_at = NULL, updated_at = NOW() WHERE id = $1`
	restoreLoanInstallmentsSQL = `UPDATE installments SET deleted_at = NULL WHERE loan_id = $1 AND deleted_at = $2`

	findTrashedInstallmentSQL = `SELECT loan_id, amount FROM installments WHERE id = $1 AND deleted_at IS NOT NULL`

	lockInstallmentLoanSQL = `
        SELECT original_amount + interest_amount, deleted_at IS NOT NULL
        FROM loans
        WHERE id = $1
        FOR UPDATE`
	restoreInstallmentSQL = `UPDATE installments SET deleted_at = NULL WHERE id = $1`

	findTrashedSubscriptionSQL = `
        SELECT c.deleted_at IS NOT NULL
        FROM subscriptions s
        JOIN customers c ON c.id = s.customer_id
        WHERE s.id = $1 AND s.deleted_at IS NOT NULL`
	restoreSubscriptionSQL = `UPDATE subscriptions SET deleted_at = NULL WHERE id = $1`

	restoreDataEntrySQL = `UPDATE data_entries SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`
)

// Trash listings only show rows whose parent is still live; cascaded children come back with their parent.
var listTrashSQL = map[trash.Kind]string{
	trash.KindCustomer: `
        SELECT id, name || ' (' || phone || ')', id, deleted_at
        FROM customers
        WHERE deleted_at IS NOT NULL
        ORDER BY deleted_at DESC, id DESC`,
	trash.KindLoan: `
        SELECT l.id, 'Loan #' || l.id || ' - ' || c.name, l.customer_id, l.deleted_at
        FROM loans l
        JOIN customers c ON c.id = l.customer_id
        WHERE l.deleted_at IS NOT NULL AND c.deleted_at IS NULL
        ORDER BY l.deleted_at DESC, l.id DESC`,
	trash.KindInstallment: `
        SELECT i.id, 'Installment of ' || i.amount::text || ' on loan #' || i.loan_id, l.customer_id, i.deleted_at
        FROM installments i
        JOIN loans l ON l.id = i.loan_id
        WHERE i.deleted_at IS NOT NULL AND l.deleted_at IS NULL
        ORDER BY i.deleted_at DESC, i.id DESC`,
	trash.KindSubscription: `
        SELECT s.id, 'Subscription ' || s.period || ' - ' || c.name, s.customer_id, s.deleted_at
        FROM subscriptions s
        JOIN customers c ON c.id = s.customer_id
        WHERE s.deleted_at IS NOT NULL AND c.deleted_at IS NULL
        ORDER BY s.deleted_at DESC, s.id DESC`,
	trash.KindDataEntry: `
        SELECT id, entry_type || ' ' || category || ' ' || amount::text, NULL::bigint, deleted_at
        FROM data_entries
        WHERE deleted_at IS NOT NULL
        ORDER BY deleted_at DESC, id DESC`,
}

func purgeSQL(kind trash.Kind) string {
	return `DELETE FROM ` + trashTables[kind] + ` WHERE id = $1 AND deleted_at IS NOT NULL`
}

func purgeBeforeSQL(kind trash.Kind) string {
	return `DELETE FROM ` + trashTables[kind] + ` WHERE deleted_at IS NOT NULL AND deleted_at < $1`
}

type TrashRepository struct {
	baseRepository
}

var _ trash.Repository = (*TrashRepository)(nil)

func NewTrashRepository(db DBPool, logger *slog.Logger) *TrashRepository {
	return &TrashRepository{baseRepository: newBaseRepository(db, logger, "TrashRepository")}
}

func (r *TrashRepository) Trash(ctx context.Context, kind trash.Kind, id int64, at time.Time) error {
	start := time.Now()
	var err error
	switch kind {
	case trash.KindCustomer:
		err = r.inTx(ctx, func(tx pgx.Tx) error {
			return execCascade(ctx, tx, id, at, trashCustomerSQL,
				trashCustomerInstallmentSQL, trashCustomerLoansSQL, trashCustomerSubscriptionsSQL)
		})
	case trash.KindLoan:
		err = r.inTx(ctx, func(tx pgx.Tx) error {
			return execCascade(ctx, tx, id, at, trashLoanSQL, trashLoanInstallmentsSQL)
		})
	case trash.KindInstallment:
		err = r.inTx(ctx, func(tx pgx.Tx) error {
			var loanID int64
			if err := tx.QueryRow(ctx, trashInstallmentSQL, id, at).Scan(&loanID); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, refreshLoanStatusSQL, loanID)
			return err
		})
	case trash.KindSubscription:
		err = execOne(ctx, r.db, trashSubscriptionSQL, id, at)
	case trash.KindDataEntry:
		err = execOne(ctx, r.db, trashDataEntrySQL, id, at)
	default:
		return fmt.Errorf("%w: unknown trash kind %q", apperrors.ErrInvalidArgument, kind)
	}
	observe("Trash_"+string(kind), start, err)
	if err != nil {
		return r.translate(err)
	}
	return nil
}

// execCascade runs parentSQL, which must touch exactly one row, then each child statement with the same arguments.
func execCascade(ctx context.Context, tx pgx.Tx, id int64, at time.Time, parentSQL string, childSQL ...string) error {
	if err := execOne(ctx, tx, parentSQL, id, at); err != nil {
		return err
	}
	for _, stmt := range childSQL {
		if _, err := tx.Exec(ctx, stmt, id, at); err != nil {
			return err
		}
	}
	return nil
}

func execOne(ctx context.Context, q querier, sql string, args ...any) error {
	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TrashRepository) List(ctx context.Context, kind trash.Kind) ([]trash.Item, error) {
	query, ok := listTrashSQL[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown trash kind %q", apperrors.ErrInvalidArgument, kind)
	}

	start := time.Now()
	rows, err := r.db.Query(ctx, query)
	observe("ListTrash_"+string(kind), start, err)
	if err != nil {
		return nil, r.translate(err)
	}
	defer rows.Close()

	items := make([]trash.Item, 0)
	for rows.Next() {
		item := trash.Item{Kind: kind}
		if err := rows.Scan(&item.ID, &item.Label, &item.CustomerID, &item.DeletedAt); err != nil {
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return items, nil
}

func (r *TrashRepository) Restore(ctx context.Context, kind trash.Kind, id int64) error {
	start := time.Now()
	var err error
	switch kind {
	case trash.KindCustomer:
		err = r.inTx(ctx, func(tx pgx.Tx) error { return restoreCustomer(ctx, tx, id) })
	case trash.KindLoan:
		err = r.inTx(ctx, func(tx pgx.Tx) error { return restoreLoan(ctx, tx, id) })
	case trash.KindInstallment:
		err = r.inTx(ctx, func(tx pgx.Tx) error { return restoreInstallment(ctx, tx, id) })
	case trash.KindSubscription:
		err = r.inTx(ctx, func(tx pgx.Tx) error { return restoreSubscription(ctx, tx, id) })
	case trash.KindDataEntry:
		err = execOne(ctx, r.db, restoreDataEntrySQL, id)
	default:
		return fmt.Errorf("%w: unknown trash kind %q", apperrors.ErrInvalidArgument, kind)
	}
	observe("Restore_"+string(kind), start, err)
	if err != nil {
		return r.translate(err)
	}
	return nil
}

func restoreCustomer(ctx context.Context, tx pgx.Tx, id int64) error {
	var deletedAt time.Time
	if err := tx.QueryRow(ctx, lockTrashedCustomerSQL, id).Scan(&deletedAt); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, restoreCustomerSQL, id); err != nil {
		return err
	}
	for _, stmt := range []string{restoreCustomerLoansSQL, restoreCustomerInstallmentsSQL, restoreCustomerSubscriptionsSQL} {
		if _, err := tx.Exec(ctx, stmt, id, deletedAt); err != nil {
			return err
		}
	}
	return nil
}

func restoreLoan(ctx context.Context, tx pgx.Tx, id int64) error {
	var deletedAt time.Time
	var customerTrashed bool
	if err := tx.QueryRow(ctx, lockTrashedLoanSQL, id).Scan(&deletedAt, &customerTrashed); err != nil {
		return err
	}
	if customerTrashed {
		return fmt.Errorf("%w: loan %d belongs to a customer in the trash; restore the customer instead", apperrors.ErrConflict, id)
	}
	if _, err := tx.Exec(ctx, restoreLoanSQL, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, restoreLoanInstallmentsSQL, id, deletedAt); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, refreshLoanStatusSQL, id)
	return err
}

func restoreInstallment(ctx context.Context, tx pgx.Tx, id int64) error {
	var loanID int64
	var amount decimal.Decimal
	if err := tx.QueryRow(ctx, findTrashedInstallmentSQL, id).Scan(&loanID, &amount); err != nil {
		return err
	}

	var total decimal.Decimal
	var loanTrashed bool
	if err := tx.QueryRow(ctx, lockInstallmentLoanSQL, loanID).Scan(&total, &loanTrashed); err != nil {
		return err
	}
	if loanTrashed {
		return fmt.Errorf("%w: installment %d belongs to loan %d which is in the trash", apperrors.ErrConflict, id, loanID)
	}

	var paid decimal.Decimal
	if err := tx.QueryRow(ctx, sumInstallmentsSQL, loanID).Scan(&paid); err != nil {
		return err
	}
	if paid.Add(amount).GreaterThan(total) {
		remaining := total.Sub(paid)
		return fmt.Errorf("%w: %w", apperrors.ErrPaymentExceedsBalance, &apperrors.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("restoring installment of %s exceeds the remaining balance of %s", amount.StringFixed(2), remaining.StringFixed(2)),
		})
	}

	if _, err := tx.Exec(ctx, restoreInstallmentSQL, id); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, refreshLoanStatusSQL, loanID)
	return err
}

func restoreSubscription(ctx context.Context, tx pgx.Tx, id int64) error {
	var customerTrashed bool
	if err := tx.QueryRow(ctx, findTrashedSubscriptionSQL, id).Scan(&customerTrashed); err != nil {
		return err
	}
	if customerTrashed {
		return fmt.Errorf("%w: subscription %d belongs to a customer in the trash", apperrors.ErrConflict, id)
	}
	_, err := tx.Exec(ctx, restoreSubscriptionSQL, id)
	return err
}

func (r *TrashRepository) Purge(ctx context.Context, kind trash.Kind, id int64) (int64, error) {
	if _, ok := trashTables[kind]; !ok {
		return 0, fmt.Errorf("%w: unknown trash kind %q", apperrors.ErrInvalidArgument, kind)
	}

	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, purgeSQL(kind), id)
	observe("Purge_"+string(kind), start, err)
	if err != nil {
		return 0, r.translate(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrNotFound
	}
	return cmdTag.RowsAffected(), nil
}

func (r *TrashRepository) PurgeBefore(ctx context.Context, kind trash.Kind, before time.Time) (int64, error) {
	if _, ok := trashTables[kind]; !ok {
		return 0, fmt.Errorf("%w: unknown trash kind %q", apperrors.ErrInvalidArgument, kind)
	}

	start := time.Now()
	cmdTag, err := r.db.Exec(ctx, purgeBeforeSQL(kind), before)
	observe("PurgeBefore_"+string(kind), start, err)
	if err != nil {
		return 0, r.translate(err)
	}
	return cmdTag.RowsAffected(), nil
}

// translate keeps domain sentinels raised inside a transaction and maps driver errors.
func (r *TrashRepository) translate(err error) error {
	for _, sentinel := range []error{apperrors.ErrNotFound, apperrors.ErrConflict, apperrors.ErrPaymentExceedsBalance, apperrors.ErrDatabase} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return translateDBError(err, r.logger)
}
