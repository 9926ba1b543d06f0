package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
	"github.com/SscSPs/invoice_ledger/internal/utils/mapping"
)

const invoiceColumns = `invoice_id, invoice_number, invoice_date, subtotal, tax_rate, tax_amount,
	total_amount, outstanding_amount, status, version, created_at, last_updated_at`

// findInvoice runs a single-invoice query; key is only used in errors.
func findInvoice(ctx context.Context, q querier, query, key string) (*domain.Invoice, error) {
	rows, err := q.Query(ctx, query, key)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice "+key, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, &apperrors.NotFoundError{Resource: "invoice", Key: key}
		}
		return nil, apperrors.NewAppError(500, "failed to scan invoice "+key, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// FindInvoiceByID retrieves an invoice by its identifier.
func (s *PgxLedgerStore) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return findInvoice(ctx, s.Pool, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID)
}

// FindInvoiceByNumber retrieves an invoice by its unique invoice number.
func (s *PgxLedgerStore) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	return findInvoice(ctx, s.Pool, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_number = $1;`, invoiceNumber)
}

// ListInvoices returns every invoice in creation order.
func (s *PgxLedgerStore) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return listInvoices(ctx, s.Pool)
}

func listInvoices(ctx context.Context, q querier) ([]domain.Invoice, error) {
	rows, err := q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY seq;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan invoices", err)
	}

	invoices := make([]domain.Invoice, 0, len(ms))
	for _, m := range ms {
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	return invoices, nil
}

// FindInvoiceByIDForUpdate loads the invoice and holds its row lock until the transaction ends.
func (t *pgxLedgerTx) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return findInvoice(ctx, t.tx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, invoiceID)
}

// InsertInvoice stores a new invoice; the unique index on invoice_number decides races.
func (t *pgxLedgerTx) InsertInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := t.tx.Exec(ctx, query,
		m.InvoiceID,
		m.InvoiceNumber,
		m.InvoiceDate,
		m.Subtotal,
		m.TaxRate,
		m.TaxAmount,
		m.TotalAmount,
		m.OutstandingAmount,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		code, constraint := pgErrorCode(err)
		if code == pgUniqueViolation {
			if constraint == "uq_invoices_invoice_number" {
				return &apperrors.DuplicateInvoiceError{InvoiceNumber: m.InvoiceNumber}
			}
			return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, m.InvoiceID)
		}
		if code == pgStringTooLong {
			return apperrors.NewValidationError("invoiceNumber", "exceeds column width")
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceNumber, err)
	}
	return nil
}

// UpdateInvoiceBalance writes the new balance only when the stored version still matches.
func (t *pgxLedgerTx) UpdateInvoiceBalance(ctx context.Context, invoice domain.Invoice, expectedVersion int64) error {
	query := `
		UPDATE invoices
		SET outstanding_amount = $2, status = $3, version = $4, last_updated_at = $5
		WHERE invoice_id = $1 AND version = $6;
	`
	tag, err := t.tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.OutstandingAmount,
		string(invoice.Status),
		invoice.Version,
		invoice.LastUpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current int64
	err = t.tx.QueryRow(ctx, `SELECT version FROM invoices WHERE invoice_id = $1;`, invoice.InvoiceID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return &apperrors.NotFoundError{Resource: "invoice", Key: invoice.InvoiceID}
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read invoice version "+invoice.InvoiceID, err)
	}
	return &apperrors.ConcurrentModificationError{
		InvoiceID: invoice.InvoiceID,
		Reason:    fmt.Sprintf("expected version %d, found %d", expectedVersion, current),
	}
}
