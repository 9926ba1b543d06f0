package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/models"
	"github.com/SscSPs/invoice_ledger/internal/utils/mapping"
	"github.com/SscSPs/invoice_ledger/internal/utils/accounting"
)

const (
	journalEntryColumns = `journal_entry_id, entry_date, description, created_at`

	journalLineSelect = `
		SELECT l.line_id, l.journal_entry_id, l.line_no, l.account_id, a.code AS account_code, l.debit, l.credit
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id`
)

// FindJournalEntryByID retrieves one entry with its lines in line order.
func (s *PgxLedgerStore) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+journalEntryColumns+` FROM journal_entries WHERE journal_entry_id = $1;`, journalEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry "+journalEntryID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, &apperrors.NotFoundError{Resource: "journal entry", Key: journalEntryID}
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal entry "+journalEntryID, err)
	}

	lineRows, err := s.Pool.Query(ctx, journalLineSelect+` WHERE l.journal_entry_id = $1 ORDER BY l.line_no;`, journalEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines "+journalEntryID, err)
	}
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal lines "+journalEntryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m, lines)
	return &entry, nil
}

// ListJournalEntries returns every entry, with lines, in creation order.
func (s *PgxLedgerStore) ListJournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return listJournalEntries(ctx, s.Pool)
}

func listJournalEntries(ctx context.Context, q querier) ([]domain.JournalEntry, error) {
	rows, err := q.Query(ctx, `SELECT `+journalEntryColumns+` FROM journal_entries ORDER BY seq;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal entries", err)
	}

	lineRows, err := q.Query(ctx, journalLineSelect+` ORDER BY l.journal_entry_id, l.line_no;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	lines, err := pgx.CollectRows(lineRows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal lines", err)
	}

	byEntry := make(map[string][]models.JournalLine, len(entries))
	for _, l := range lines {
		byEntry[l.JournalEntryID] = append(byEntry[l.JournalEntryID], l)
	}

	out := make([]domain.JournalEntry, 0, len(entries))
	for _, m := range entries {
		out = append(out, mapping.ToDomainJournalEntry(m, byEntry[m.JournalEntryID]))
	}
	return out, nil
}

// InsertJournalEntry re-validates the entry, then writes the header and its lines in one batch.
func (t *pgxLedgerTx) InsertJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	if err := accounting.ValidateJournalBalance(entry.Lines); err != nil {
		return err
	}

	_, err := t.tx.Exec(ctx, `
		INSERT INTO journal_entries (journal_entry_id, entry_date, description, created_at)
		VALUES ($1, $2, $3, $4);
	`, entry.JournalEntryID, entry.EntryDate, entry.Description, entry.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.JournalEntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_entry_id, line_no, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, l := range entry.Lines {
		batch.Queue(lineQuery, l.LineID, entry.JournalEntryID, l.LineNo, l.AccountID, l.Debit, l.Credit)
	}

	br := t.tx.SendBatch(ctx, batch)
	for _, l := range entry.Lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
				return &apperrors.NotFoundError{Resource: "account", Key: l.AccountID}
			}
			return apperrors.NewAppError(500, "failed to insert journal line for entry "+entry.JournalEntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close journal line batch", err)
	}
	return nil
}
