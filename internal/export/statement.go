package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"welfare-ledger/internal/domain/customer"
	"welfare-ledger/internal/domain/loan"

	"github.com/jung-kurt/gofpdf"
)

const statementFont = "DejaVu"

func (s *exportService) LoanStatement(ctx context.Context, loanID int64, w io.Writer) error {
	l, err := s.loans.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	c, err := s.customers.GetCustomer(ctx, l.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to load customer for loan %d: %w", loanID, err)
	}

	doc := s.newDocument()
	renderStatement(doc, c, l, s.now())
	if err := doc.pdf.Output(w); err != nil {
		s.logger.ErrorContext(ctx, "Failed to render loan statement", slog.Int64("loanID", loanID), slog.Any("error", err))
		return fmt.Errorf("failed to render statement for loan %d: %w", loanID, err)
	}
	return nil
}

type document struct {
	pdf  *gofpdf.Fpdf
	font string
}

// newDocument uses DejaVuSans from fontDir when present so names outside Latin-1 render; core Helvetica otherwise.
func (s *exportService) newDocument() *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetAuthor("Welfare Ledger", false)

	font := "Helvetica"
	if s.fontDir != "" {
		regular := filepath.Join(s.fontDir, "DejaVuSans.ttf")
		if _, err := os.Stat(regular); err == nil {
			bold := filepath.Join(s.fontDir, "DejaVuSans-Bold.ttf")
			if _, err := os.Stat(bold); err != nil {
				bold = regular
			}
			pdf.AddUTF8Font(statementFont, "", regular)
			pdf.AddUTF8Font(statementFont, "B", bold)
			font = statementFont
		}
	}
	return &document{pdf: pdf, font: font}
}

func renderStatement(d *document, c *customer.Customer, l *loan.Loan, generatedAt time.Time) {
	pdf := d.pdf
	pdf.SetTitle(fmt.Sprintf("Loan statement #%d", l.ID), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(d.font, "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated %s - page %d", generatedAt.Format("2006-01-02 15:04"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(d.font, "B", 16)
	pdf.CellFormat(0, 10, "LOAN STATEMENT", "", 1, "C", false, 0, "")
	pdf.SetFont(d.font, "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Loan #%d issued %s", l.ID, day(l.IssuedOn)), "", 1, "C", false, 0, "")
	d.hr()

	d.section("Member")
	d.kv("Name", c.Name)
	d.kv("Phone", c.Phone)
	if c.Address != "" {
		d.kv("Address", c.Address)
	}
	d.hr()

	d.section("Loan")
	d.kv("Original amount", l.OriginalAmount.StringFixed(2))
	d.kv("Interest", l.InterestAmount.StringFixed(2))
	d.kv("Total repayable", l.TotalRepayable().StringFixed(2))
	d.kv("Paid", l.PaidAmount.StringFixed(2))
	d.kv("Outstanding", l.Outstanding().StringFixed(2))
	d.kv("Status", string(l.Status))
	if l.Note != "" {
		d.kv("Note", l.Note)
	}
	d.hr()

	d.section("Installments")
	widths := []float64{15, 40, 40, 75}
	pdf.SetFont(d.font, "B", 10)
	for i, h := range []string{"#", "Paid on", "Amount", "Note"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(d.font, "", 10)
	if len(l.Installments) == 0 {
		pdf.CellFormat(0, 7, "No installments recorded.", "", 1, "L", false, 0, "")
	}
	for i, inst := range l.Installments {
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, day(inst.PaidOn), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, inst.Amount.StringFixed(2), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, inst.Note, "", 1, "L", false, 0, "")
	}
}

func (d *document) section(title string) {
	d.pdf.Ln(2)
	d.pdf.SetFont(d.font, "B", 12)
	d.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (d *document) kv(key, val string) {
	d.pdf.SetFont(d.font, "B", 11)
	d.pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	d.pdf.SetFont(d.font, "", 11)
	d.pdf.MultiCell(0, 6, val, "", "L", false)
}

func (d *document) hr() {
	x, y := d.pdf.GetX(), d.pdf.GetY()
	w, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	d.pdf.Line(left, y+2, w-right, y+2)
	d.pdf.SetXY(x, y+4)
}
