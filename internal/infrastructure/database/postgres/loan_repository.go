package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	loanColumns = `l.id, l.customer_id, l.original_amount, l.interest_amount, l.issued_on, l.status, l.note, l.created_at, l.updated_at`

	paidAmountExpr = `COALESCE((SELECT SUM(i.amount) FROM installments i WHERE i.loan_id = l.id AND i.deleted_at IS NULL), 0)`

	insertLoanSQL = `
        INSERT INTO loans (customer_id, original_amount, interest_amount, issued_on, status, note, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	getLoanByIDSQL = `
        SELECT ` + loanColumns + `, ` + paidAmountExpr + `
        FROM loans l
        WHERE l.id = $1 AND l.deleted_at IS NULL`

	listLoansBaseSQL = `
        SELECT ` + loanColumns + `, ` + paidAmountExpr + `
        FROM loans l
        WHERE l.deleted_at IS NULL`

	lockLoanSQL = `
        SELECT ` + loanColumns + `
        FROM loans l
        WHERE l.id = $1 AND l.deleted_at IS NULL
        FOR UPDATE`

	sumInstallmentsSQL = `
        SELECT COALESCE(SUM(amount), 0)
        FROM installments
        WHERE loan_id = $1 AND deleted_at IS NULL`

	updateLoanSQL = `
        UPDATE loans
        SET interest_amount = $1,
            status = $2,
            note = $3,
            updated_at = NOW()
        WHERE id = $4 AND deleted_at IS NULL`

	insertInstallmentSQL = `
        INSERT INTO installments (loan_id, amount, paid_on, note, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at`

	listInstallmentsSQL = `
        SELECT id, loan_id, amount, paid_on, note, created_at
        FROM installments
        WHERE loan_id = $1 AND deleted_at IS NULL
        ORDER BY paid_on ASC, id ASC`
)

type LoanRepository struct {
	baseRepository
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{baseRepository: newBaseRepository(db, logger, "LoanRepository")}
}

func (r *LoanRepository) CreateLoan(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error) {
	if newLoan == nil {
		return nil, fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}

	created := *newLoan
	start := time.Now()
	err := r.db.QueryRow(ctx, insertLoanSQL,
		newLoan.CustomerID, newLoan.OriginalAmount, newLoan.InterestAmount, newLoan.IssuedOn, newLoan.Status, newLoan.Note,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	observe("CreateLoan", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert loan", "error", err)
		return nil, translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", created.ID)
	return &created, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	start := time.Now()
	l, err := scanLoanWithPaid(r.db.QueryRow(ctx, getLoanByIDSQL, loanID))
	observe("GetLoanByID", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return l, nil
}

func buildListLoansQuery(filter loan.Filter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(listLoansBaseSQL)
	args := make([]any, 0, 2)

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		fmt.Fprintf(&sb, " AND l.customer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND l.status = $%d", len(args))
	}
	sb.WriteString(" ORDER BY l.issued_on DESC, l.id DESC")
	return sb.String(), args
}

func (r *LoanRepository) ListLoans(ctx context.Context, filter loan.Filter) ([]*loan.Loan, error) {
	query, args := buildListLoansQuery(filter)

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	observe("ListLoans", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	loans := make([]*loan.Loan, 0)
	for rows.Next() {
		l, err := scanLoanWithPaid(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return loans, nil
}

func (r *LoanRepository) ListInstallments(ctx context.Context, loanID int64) ([]loan.Installment, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, listInstallmentsSQL, loanID)
	observe("ListInstallments", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query installments", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	installments := make([]loan.Installment, 0)
	for rows.Next() {
		var inst loan.Installment
		if err := rows.Scan(&inst.ID, &inst.LoanID, &inst.Amount, &inst.PaidOn, &inst.Note, &inst.CreatedAt); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan installment row", "loan_id", loanID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return installments, nil
}

func (r *LoanRepository) GetLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*loan.Loan, error) {
	start := time.Now()
	l, err := scanLoan(tx.QueryRow(ctx, lockLoanSQL, loanID))
	observe("LockLoan", start, err)
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}

	if err := tx.QueryRow(ctx, sumInstallmentsSQL, loanID).Scan(&l.PaidAmount); err != nil {
		r.logger.ErrorContext(ctx, "Failed to sum installments", "loan_id", loanID, "error", err)
		return nil, translateDBError(err, r.logger)
	}
	return l, nil
}

func (r *LoanRepository) UpdateLoanInTx(ctx context.Context, tx pgx.Tx, l *loan.Loan) error {
	start := time.Now()
	cmdTag, err := tx.Exec(ctx, updateLoanSQL, l.InterestAmount, l.Status, l.Note, l.ID)
	observe("UpdateLoan", start, err)
	if err != nil {
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, l.ID)
	}
	return nil
}

func (r *LoanRepository) InsertInstallmentInTx(ctx context.Context, tx pgx.Tx, inst *loan.Installment) error {
	start := time.Now()
	err := tx.QueryRow(ctx, insertInstallmentSQL, inst.LoanID, inst.Amount, inst.PaidOn, inst.Note).
		Scan(&inst.ID, &inst.CreatedAt)
	observe("InsertInstallment", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert installment", "loan_id", inst.LoanID, "error", err)
		return translateDBError(err, r.logger)
	}
	return nil
}

func scanLoan(row pgx.Row) (*loan.Loan, error) {
	var l loan.Loan
	if err := row.Scan(&l.ID, &l.CustomerID, &l.OriginalAmount, &l.InterestAmount, &l.IssuedOn,
		&l.Status, &l.Note, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLoanWithPaid(row pgx.Row) (*loan.Loan, error) {
	var l loan.Loan
	if err := row.Scan(&l.ID, &l.CustomerID, &l.OriginalAmount, &l.InterestAmount, &l.IssuedOn,
		&l.Status, &l.Note, &l.CreatedAt, &l.UpdatedAt, &l.PaidAmount); err != nil {
		return nil, err
	}
	return &l, nil
}
