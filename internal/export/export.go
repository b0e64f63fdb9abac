package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/ledger"
	"welfare-ledger/internal/domain/loan"
	"welfare-ledger/internal/domain/subscription"
	"welfare-ledger/internal/pkg/apperrors"
)

type Dataset string

const (
	DatasetCustomers     Dataset = "customers"
	DatasetLoans         Dataset = "loans"
	DatasetInstallments  Dataset = "installments"
	DatasetSubscriptions Dataset = "subscriptions"
	DatasetDataEntries   Dataset = "data-entries"
)

func ParseDataset(s string) (Dataset, error) {
	switch d := Dataset(strings.ToLower(strings.TrimSpace(s))); d {
	case DatasetCustomers, DatasetLoans, DatasetInstallments, DatasetSubscriptions, DatasetDataEntries:
		return d, nil
	default:
		return "", apperrors.NewValidationError("dataset", fmt.Sprintf("unknown dataset %q", s))
	}
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat defaults to CSV when s is empty.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", apperrors.NewValidationError("format", fmt.Sprintf("format %q must be csv or xlsx", s))
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename is the attachment name, stamped with the export day.
func Filename(d Dataset, f Format, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", d, now.Format("2006-01-02"), f)
}

// Table is a dataset flattened to strings, ready for any writer.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

type CustomerReader interface {
	ListCustomers(ctx context.Context, search string) ([]*customer.Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error)
}

type LoanReader interface {
	ListLoans(ctx context.Context, filter loan.Filter) ([]*loan.Loan, error)
	GetLoan(ctx context.Context, loanID int64) (*loan.Loan, error)
	ListInstallments(ctx context.Context, loanID int64) ([]loan.Installment, error)
}

type SubscriptionReader interface {
	ListSubscriptions(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, error)
}

type EntryReader interface {
	ListEntries(ctx context.Context, filter ledger.Filter) ([]*ledger.DataEntry, error)
}

type Service interface {
	// Export writes a whole dataset in the requested format.
	Export(ctx context.Context, dataset Dataset, format Format, w io.Writer) error
	// LoanStatement writes a PDF statement of one loan and its installments.
	LoanStatement(ctx context.Context, loanID int64, w io.Writer) error
}

type exportService struct {
	customers     CustomerReader
	loans         LoanReader
	subscriptions SubscriptionReader
	entries       EntryReader
	fontDir       string
	now           func() time.Time
	logger        *slog.Logger
}

func NewService(customers CustomerReader, loans LoanReader, subscriptions SubscriptionReader, entries EntryReader, fontDir string, logger *slog.Logger) Service {
	return &exportService{
		customers:     customers,
		loans:         loans,
		subscriptions: subscriptions,
		entries:       entries,
		fontDir:       fontDir,
		now:           time.Now,
		logger:        logger.With(slog.String("component", "exportService")),
	}
}

func (s *exportService) Export(ctx context.Context, dataset Dataset, format Format, w io.Writer) error {
	table, err := s.buildTable(ctx, dataset)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to collect export rows", slog.String("dataset", string(dataset)), slog.Any("error", err))
		return err
	}

	switch format {
	case FormatCSV:
		err = WriteCSV(w, table)
	case FormatXLSX:
		err = WriteXLSX(w, table)
	default:
		return apperrors.NewValidationError("format", fmt.Sprintf("format %q must be csv or xlsx", format))
	}
	if err != nil {
		return fmt.Errorf("failed to write %s export: %w", dataset, err)
	}

	s.logger.InfoContext(ctx, "Dataset exported", slog.String("dataset", string(dataset)),
		slog.String("format", string(format)), slog.Int("rows", len(table.Rows)))
	return nil
}

func (s *exportService) buildTable(ctx context.Context, dataset Dataset) (*Table, error) {
	switch dataset {
	case DatasetCustomers:
		return s.customerTable(ctx)
	case DatasetLoans:
		return s.loanTable(ctx)
	case DatasetInstallments:
		return s.installmentTable(ctx)
	case DatasetSubscriptions:
		return s.subscriptionTable(ctx)
	case DatasetDataEntries:
		return s.entryTable(ctx)
	default:
		return nil, apperrors.NewValidationError("dataset", fmt.Sprintf("unknown dataset %q", dataset))
	}
}

func (s *exportService) customerTable(ctx context.Context) (*Table, error) {
	customers, err := s.customers.ListCustomers(ctx, "")
	if err != nil {
		return nil, err
	}
	t := &Table{Name: "Customers", Header: []string{"ID", "Name", "Phone", "Address", "Created"}}
	for _, c := range customers {
		t.Rows = append(t.Rows, []string{id(c.ID), c.Name, c.Phone, c.Address, day(c.CreatedAt)})
	}
	return t, nil
}

func (s *exportService) loanTable(ctx context.Context) (*Table, error) {
	loans, err := s.loans.ListLoans(ctx, loan.Filter{})
	if err != nil {
		return nil, err
	}
	t := &Table{
		Name:   "Loans",
		Header: []string{"ID", "Customer ID", "Issued On", "Original", "Interest", "Total", "Paid", "Outstanding", "Status", "Note"},
	}
	for _, l := range loans {
		t.Rows = append(t.Rows, []string{
			id(l.ID), id(l.CustomerID), day(l.IssuedOn),
			l.OriginalAmount.StringFixed(2), l.InterestAmount.StringFixed(2), l.TotalRepayable().StringFixed(2),
			l.PaidAmount.StringFixed(2), l.Outstanding().StringFixed(2), string(l.Status), l.Note,
		})
	}
	return t, nil
}

func (s *exportService) installmentTable(ctx context.Context) (*Table, error) {
	loans, err := s.loans.ListLoans(ctx, loan.Filter{})
	if err != nil {
		return nil, err
	}
	t := &Table{Name: "Installments", Header: []string{"ID", "Loan ID", "Customer ID", "Paid On", "Amount", "Note"}}
	for _, l := range loans {
		installments, err := s.loans.ListInstallments(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		for _, inst := range installments {
			t.Rows = append(t.Rows, []string{id(inst.ID), id(l.ID), id(l.CustomerID), day(inst.PaidOn), inst.Amount.StringFixed(2), inst.Note})
		}
	}
	return t, nil
}

func (s *exportService) subscriptionTable(ctx context.Context) (*Table, error) {
	subs, err := s.subscriptions.ListSubscriptions(ctx, subscription.Filter{})
	if err != nil {
		return nil, err
	}
	t := &Table{Name: "Subscriptions", Header: []string{"ID", "Customer ID", "Period", "Paid On", "Amount", "Note"}}
	for _, sub := range subs {
		t.Rows = append(t.Rows, []string{id(sub.ID), id(sub.CustomerID), sub.Period, day(sub.PaidOn), sub.Amount.StringFixed(2), sub.Note})
	}
	return t, nil
}

func (s *exportService) entryTable(ctx context.Context) (*Table, error) {
	entries, err := s.entries.ListEntries(ctx, ledger.Filter{})
	if err != nil {
		return nil, err
	}
	t := &Table{Name: "Data Entries", Header: []string{"ID", "Date", "Type", "Category", "Description", "Amount"}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{id(e.ID), day(e.EntryDate), string(e.EntryType), e.Category, e.Description, e.Amount.StringFixed(2)})
	}
	return t, nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}
