package file

import (
	"context"
	"log/slog"

	"libris/internal/clock"
	"libris/internal/models"
)

// Loan rows: recordId,itemId,userId,loanDate,dueDate,returnDate
// Dates use the clock.DateTimeLayout format; an empty return date marks an
// active loan.

const loanFieldCount = 6

func loanRow(record models.LoanRecord) []string {
	returnDate := ""
	if record.ReturnDate != nil {
		returnDate = clock.FormatDateTime(*record.ReturnDate)
	}
	return []string{
		record.RecordID,
		record.ItemID,
		record.UserID,
		clock.FormatDateTime(record.LoanDate),
		clock.FormatDateTime(record.DueDate),
		returnDate,
	}
}

// parseLoan rebuilds a loan record from a CSV row. Returns false when the
// row is malformed or its dates do not parse.
func parseLoan(fields []string) (models.LoanRecord, bool) {
	if len(fields) != loanFieldCount {
		return models.LoanRecord{}, false
	}
	if fields[0] == "" || fields[1] == "" || fields[2] == "" {
		return models.LoanRecord{}, false
	}
	loanDate, err := clock.ParseDateTime(fields[3])
	if err != nil {
		return models.LoanRecord{}, false
	}
	dueDate, err := clock.ParseDateTime(fields[4])
	if err != nil {
		return models.LoanRecord{}, false
	}
	record := models.LoanRecord{
		RecordID: fields[0],
		ItemID:   fields[1],
		UserID:   fields[2],
		LoanDate: loanDate,
		DueDate:  dueDate,
	}
	if fields[5] != "" {
		returnDate, err := clock.ParseDateTime(fields[5])
		if err != nil {
			return models.LoanRecord{}, false
		}
		record.ReturnDate = &returnDate
	}
	return record, true
}

func (s *Store) SaveLoanRecord(ctx context.Context, record models.LoanRecord) error {
	return s.UpdateLoanRecord(ctx, record)
}

func (s *Store) UpdateLoanRecord(_ context.Context, record models.LoanRecord) error {
	rows, err := s.readCSV(loansFile)
	if err != nil {
		return err
	}
	rows = upsertRow(rows, record.RecordID, loanRow(record))
	return s.writeCSV(loansFile, rows)
}

func (s *Store) LoadLoanRecord(_ context.Context, id string) (models.LoanRecord, bool, error) {
	rows, err := s.readCSV(loansFile)
	if err != nil {
		return models.LoanRecord{}, false, err
	}
	for _, fields := range rows {
		if len(fields) > 0 && fields[0] == id {
			record, ok := parseLoan(fields)
			if !ok {
				slog.Warn("skipping malformed loan record", "file", loansFile, "record_id", id)
				return models.LoanRecord{}, false, nil
			}
			return record, true, nil
		}
	}
	return models.LoanRecord{}, false, nil
}

func (s *Store) loadLoans(filter func(models.LoanRecord) bool) ([]models.LoanRecord, error) {
	rows, err := s.readCSV(loansFile)
	if err != nil {
		return nil, err
	}
	var records []models.LoanRecord
	for _, fields := range rows {
		record, ok := parseLoan(fields)
		if !ok {
			slog.Warn("skipping malformed loan record", "file", loansFile, "fields", len(fields))
			continue
		}
		if filter == nil || filter(record) {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *Store) LoadAllLoanRecords(_ context.Context) ([]models.LoanRecord, error) {
	return s.loadLoans(nil)
}

func (s *Store) LoadLoanRecordsByUserID(_ context.Context, userID string) ([]models.LoanRecord, error) {
	return s.loadLoans(func(r models.LoanRecord) bool { return r.UserID == userID })
}

func (s *Store) LoadLoanRecordsByItemID(_ context.Context, itemID string) ([]models.LoanRecord, error) {
	return s.loadLoans(func(r models.LoanRecord) bool { return r.ItemID == itemID })
}

func (s *Store) DeleteLoanRecord(_ context.Context, id string) error {
	rows, err := s.readCSV(loansFile)
	if err != nil {
		return err
	}
	return s.writeCSV(loansFile, dropRow(rows, id))
}
