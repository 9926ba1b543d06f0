package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
	"github.com/SscSPs/invoice_ledger/internal/utils/mapping"
)

const paymentSelect = `
	SELECT p.payment_id, p.invoice_id, i.invoice_number, p.amount, p.payment_date,
	       p.payment_method, p.transaction_reference, p.created_at
	FROM payments p
	JOIN invoices i ON i.invoice_id = p.invoice_id`

func queryPayments(ctx context.Context, q querier, query string, args ...any) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isMalformedID(err) {
			return []domain.Payment{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		if isMalformedID(err) {
			return []domain.Payment{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to scan payments", err)
	}

	payments := make([]domain.Payment, 0, len(ms))
	for _, m := range ms {
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	return payments, nil
}

// ListPaymentsByInvoiceID returns the payments applied to one invoice in creation order.
func (s *PgxLedgerStore) ListPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	return queryPayments(ctx, s.Pool, paymentSelect+` WHERE p.invoice_id = $1 ORDER BY p.seq;`, invoiceID)
}

// ListPayments returns every payment in creation order.
func (s *PgxLedgerStore) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return listPayments(ctx, s.Pool)
}

func listPayments(ctx context.Context, q querier) ([]domain.Payment, error) {
	return queryPayments(ctx, q, paymentSelect+` ORDER BY p.seq;`)
}

// InsertPayment stores a new payment.
func (t *pgxLedgerTx) InsertPayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, invoice_id, amount, payment_date, payment_method, transaction_reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := t.tx.Exec(ctx, query,
		payment.PaymentID,
		payment.InvoiceID,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		payment.TransactionReference,
		payment.CreatedAt,
	)
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgForeignKeyViolation:
			return &apperrors.NotFoundError{Resource: "invoice", Key: payment.InvoiceID}
		case pgStringTooLong:
			return apperrors.NewValidationError("payment", "text field exceeds column width")
		}
		return apperrors.NewAppError(500, "failed to insert payment "+payment.PaymentID, err)
	}
	return nil
}
