package models

import (
	"fmt"
	"time"
)

// LoanRecord tracks one borrow/return cycle of an item by a user.
//
// Lifecycle: created active by the loan service, mutated exactly once when
// the item is returned, never deleted in normal flow. A record is active
// while ReturnDate is nil.
type LoanRecord struct {
	// RecordID is the unique identifier for the loan record.
	RecordID string

	// ItemID references the borrowed item.
	ItemID string

	// UserID references the borrowing user.
	UserID string

	// LoanDate is when the loan was taken out.
	LoanDate time.Time

	// DueDate is when the item must be returned, never before LoanDate.
	DueDate time.Time

	// ReturnDate is when the item came back, nil while the loan is active.
	ReturnDate *time.Time
}

// NewLoanRecord validates and builds an active loan record.
func NewLoanRecord(recordID, itemID, userID string, loanDate, dueDate time.Time) (LoanRecord, error) {
	if recordID == "" {
		return LoanRecord{}, fmt.Errorf("%w: loan record id cannot be empty", ErrInvalidArgument)
	}
	if itemID == "" {
		return LoanRecord{}, fmt.Errorf("%w: loan item id cannot be empty", ErrInvalidArgument)
	}
	if userID == "" {
		return LoanRecord{}, fmt.Errorf("%w: loan user id cannot be empty", ErrInvalidArgument)
	}
	if dueDate.Before(loanDate) {
		return LoanRecord{}, fmt.Errorf("%w: due date cannot be before loan date", ErrInvalidArgument)
	}
	return LoanRecord{
		RecordID: recordID,
		ItemID:   itemID,
		UserID:   userID,
		LoanDate: loanDate,
		DueDate:  dueDate,
	}, nil
}

// Active reports whether the loan is still outstanding.
func (r LoanRecord) Active() bool {
	return r.ReturnDate == nil
}

// MarkReturned sets the return date, completing the lifecycle. The return
// date may not precede the loan date, and a returned loan stays returned.
func (r *LoanRecord) MarkReturned(at time.Time) error {
	if r.ReturnDate != nil {
		return fmt.Errorf("%w: loan record %q is already returned", ErrOperationFailed, r.RecordID)
	}
	if at.Before(r.LoanDate) {
		return fmt.Errorf("%w: return date cannot be before loan date", ErrInvalidArgument)
	}
	t := at
	r.ReturnDate = &t
	return nil
}

// Clone returns an independent deep copy of the record.
func (r LoanRecord) Clone() LoanRecord {
	c := r
	if r.ReturnDate != nil {
		t := *r.ReturnDate
		c.ReturnDate = &t
	}
	return c
}
