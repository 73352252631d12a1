package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libris/internal/models"
)

const loanColumns = "LoanRecordId, ItemId, UserId, LoanDate, DueDate, ReturnDate"

func (s *Store) SaveLoanRecord(ctx context.Context, record models.LoanRecord) error {
	query := `
		INSERT INTO LoanRecords (` + loanColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(LoanRecordId) DO UPDATE SET
			ItemId = excluded.ItemId,
			UserId = excluded.UserId,
			LoanDate = excluded.LoanDate,
			DueDate = excluded.DueDate,
			ReturnDate = excluded.ReturnDate
	`
	var returnDate sql.NullString
	if record.ReturnDate != nil {
		returnDate = sql.NullString{String: toSQLDateTime(*record.ReturnDate), Valid: true}
	}
	_, err := s.q().ExecContext(ctx, query,
		record.RecordID,
		record.ItemID,
		record.UserID,
		toSQLDateTime(record.LoanDate),
		toSQLDateTime(record.DueDate),
		returnDate,
	)
	if err != nil {
		return fmt.Errorf("%w: save loan record %q: %v", models.ErrOperationFailed, record.RecordID, err)
	}
	return nil
}

func (s *Store) UpdateLoanRecord(ctx context.Context, record models.LoanRecord) error {
	return s.SaveLoanRecord(ctx, record)
}

func scanLoan(scan func(dest ...any) error) (models.LoanRecord, error) {
	var (
		record     models.LoanRecord
		loanDate   string
		dueDate    string
		returnDate sql.NullString
	)
	if err := scan(&record.RecordID, &record.ItemID, &record.UserID, &loanDate, &dueDate, &returnDate); err != nil {
		return models.LoanRecord{}, err
	}
	var err error
	if record.LoanDate, err = fromSQLDateTime(loanDate); err != nil {
		return models.LoanRecord{}, err
	}
	if record.DueDate, err = fromSQLDateTime(dueDate); err != nil {
		return models.LoanRecord{}, err
	}
	if returnDate.Valid {
		t, err := fromSQLDateTime(returnDate.String)
		if err != nil {
			return models.LoanRecord{}, err
		}
		record.ReturnDate = &t
	}
	return record, nil
}

func (s *Store) LoadLoanRecord(ctx context.Context, id string) (models.LoanRecord, bool, error) {
	row := s.q().QueryRowContext(ctx,
		"SELECT "+loanColumns+" FROM LoanRecords WHERE LoanRecordId = ?", id)
	record, err := scanLoan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LoanRecord{}, false, nil
	}
	if err != nil {
		return models.LoanRecord{}, false, fmt.Errorf("%w: load loan record %q: %v", models.ErrOperationFailed, id, err)
	}
	return record, true, nil
}

func (s *Store) queryLoans(ctx context.Context, query string, args ...any) ([]models.LoanRecord, error) {
	rows, err := s.q().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: load loan records: %v", models.ErrOperationFailed, err)
	}
	defer rows.Close()

	var records []models.LoanRecord
	for rows.Next() {
		record, err := scanLoan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scan loan record: %v", models.ErrOperationFailed, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate loan records: %v", models.ErrOperationFailed, err)
	}
	return records, nil
}

func (s *Store) LoadAllLoanRecords(ctx context.Context) ([]models.LoanRecord, error) {
	return s.queryLoans(ctx, "SELECT "+loanColumns+" FROM LoanRecords")
}

func (s *Store) LoadLoanRecordsByUserID(ctx context.Context, userID string) ([]models.LoanRecord, error) {
	return s.queryLoans(ctx,
		"SELECT "+loanColumns+" FROM LoanRecords WHERE UserId = ?", userID)
}

func (s *Store) LoadLoanRecordsByItemID(ctx context.Context, itemID string) ([]models.LoanRecord, error) {
	return s.queryLoans(ctx,
		"SELECT "+loanColumns+" FROM LoanRecords WHERE ItemId = ?", itemID)
}

func (s *Store) DeleteLoanRecord(ctx context.Context, id string) error {
	if _, err := s.q().ExecContext(ctx, "DELETE FROM LoanRecords WHERE LoanRecordId = ?", id); err != nil {
		return fmt.Errorf("%w: delete loan record %q: %v", models.ErrOperationFailed, id, err)
	}
	return nil
}
