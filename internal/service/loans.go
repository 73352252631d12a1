package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"libris/internal/clock"
	"libris/internal/models"
	"libris/internal/storage"
)

// DefaultLoanDurationDays is the loan period used when none is configured.
const DefaultLoanDurationDays = 14

// LoanService orchestrates the borrow/return/overdue workflows across the
// catalog, user, persistence and notification collaborators.
//
// The two mutating workflows touch two aggregates (loan record + item
// status) without a shared transaction. A failure between the two writes
// leaves the system inconsistent; this race is accepted and documented
// rather than compensated (see DESIGN.md).
type LoanService struct {
	catalog  *CatalogService
	users    *UserService
	store    storage.PersistenceService
	notifier Notifier
	clk      clock.Clock
	loanDays int

	// idMu guards the loan id counter, independently of any storage lock,
	// so ids stay unique and monotonic under concurrent borrows. The
	// counter is seeded from the store on first use: durable backends
	// outlive the process, so restarting from zero would reuse ids and
	// overwrite earlier loan records.
	idMu   sync.Mutex
	seeded bool
	nextID int64
}

// NewLoanService wires a LoanService. A non-positive loanDays falls back
// to DefaultLoanDurationDays.
func NewLoanService(
	catalog *CatalogService,
	users *UserService,
	store storage.PersistenceService,
	notifier Notifier,
	clk clock.Clock,
	loanDays int,
) *LoanService {
	if loanDays <= 0 {
		loanDays = DefaultLoanDurationDays
	}
	return &LoanService{
		catalog:  catalog,
		users:    users,
		store:    store,
		notifier: notifier,
		clk:      clk,
		loanDays: loanDays,
	}
}

// parseLoanRecordID extracts the numeric suffix of a loan_N id. Foreign
// id shapes are ignored when seeding the counter.
func parseLoanRecordID(id string) (int64, bool) {
	const prefix = "loan_"
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(id[len(prefix):], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// nextLoanRecordID returns the next monotonic loan id. On first use the
// counter is seeded from the highest persisted loan_N id.
func (s *LoanService) nextLoanRecordID(ctx context.Context) (string, error) {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	if !s.seeded {
		records, err := s.store.LoadAllLoanRecords(ctx)
		if err != nil {
			return "", err
		}
		for _, record := range records {
			if n, ok := parseLoanRecordID(record.RecordID); ok && n > s.nextID {
				s.nextID = n
			}
		}
		s.seeded = true
	}
	s.nextID++
	return fmt.Sprintf("loan_%d", s.nextID), nil
}

// BorrowItem lends an available item to a user and returns the created
// loan record. At most one active loan may exist per user and item.
func (s *LoanService) BorrowItem(ctx context.Context, userID, itemID string) (models.LoanRecord, error) {
	if userID == "" || itemID == "" {
		return models.LoanRecord{}, fmt.Errorf("%w: user id and item id cannot be empty for borrowing", models.ErrInvalidArgument)
	}

	_, found, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.LoanRecord{}, err
	}
	if !found {
		return models.LoanRecord{}, fmt.Errorf("%w: user %q", models.ErrNotFound, userID)
	}

	item, found, err := s.catalog.FindItemByID(ctx, itemID)
	if err != nil {
		return models.LoanRecord{}, err
	}
	if !found {
		return models.LoanRecord{}, fmt.Errorf("%w: library item %q", models.ErrNotFound, itemID)
	}

	if item.Status != models.StatusAvailable {
		return models.LoanRecord{}, fmt.Errorf("%w: item %q is not available for borrowing (status %s)",
			models.ErrOperationFailed, itemID, item.Status)
	}

	activeLoans, err := s.GetActiveLoansForUser(ctx, userID)
	if err != nil {
		return models.LoanRecord{}, err
	}
	for _, loan := range activeLoans {
		if loan.ItemID == itemID {
			return models.LoanRecord{}, fmt.Errorf("%w: user %q has already borrowed item %q",
				models.ErrOperationFailed, userID, itemID)
		}
	}

	recordID, err := s.nextLoanRecordID(ctx)
	if err != nil {
		return models.LoanRecord{}, err
	}
	loanDate := s.clk.Now()
	dueDate := clock.AddDays(loanDate, s.loanDays)
	record, err := models.NewLoanRecord(recordID, itemID, userID, loanDate, dueDate)
	if err != nil {
		return models.LoanRecord{}, err
	}

	if err := s.store.SaveLoanRecord(ctx, record); err != nil {
		return models.LoanRecord{}, err
	}
	if err := s.catalog.UpdateItemStatus(ctx, itemID, models.StatusBorrowed); err != nil {
		return models.LoanRecord{}, err
	}

	slog.Info("item borrowed",
		"record_id", record.RecordID, "user_id", userID, "item_id", itemID,
		"due", clock.FormatDate(dueDate))
	return record, nil
}

// ReturnItem completes the user's active loan on the item and makes the
// item available again.
func (s *LoanService) ReturnItem(ctx context.Context, userID, itemID string) error {
	if userID == "" || itemID == "" {
		return fmt.Errorf("%w: user id and item id cannot be empty for returning", models.ErrInvalidArgument)
	}

	itemLoans, err := s.store.LoadLoanRecordsByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	var active *models.LoanRecord
	for i := range itemLoans {
		if itemLoans[i].UserID == userID && itemLoans[i].Active() {
			active = &itemLoans[i]
			break
		}
	}
	if active == nil {
		return fmt.Errorf("%w: no active loan for user %q and item %q", models.ErrNotFound, userID, itemID)
	}

	if err := active.MarkReturned(s.clk.Now()); err != nil {
		return err
	}
	if err := s.store.UpdateLoanRecord(ctx, *active); err != nil {
		return err
	}
	if err := s.catalog.UpdateItemStatus(ctx, itemID, models.StatusAvailable); err != nil {
		return err
	}

	slog.Info("item returned", "record_id", active.RecordID, "user_id", userID, "item_id", itemID)
	return nil
}

// GetActiveLoansForUser returns the user's outstanding loans.
func (s *LoanService) GetActiveLoansForUser(ctx context.Context, userID string) ([]models.LoanRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", models.ErrInvalidArgument)
	}
	history, err := s.store.LoadLoanRecordsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var active []models.LoanRecord
	for _, record := range history {
		if record.Active() {
			active = append(active, record)
		}
	}
	return active, nil
}

// GetLoanHistoryForUser returns all of the user's loans, active or not.
func (s *LoanService) GetLoanHistoryForUser(ctx context.Context, userID string) ([]models.LoanRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id cannot be empty", models.ErrInvalidArgument)
	}
	return s.store.LoadLoanRecordsByUserID(ctx, userID)
}

// GetLoanHistoryForItem returns all loans ever taken on the item.
func (s *LoanService) GetLoanHistoryForItem(ctx context.Context, itemID string) ([]models.LoanRecord, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id cannot be empty", models.ErrInvalidArgument)
	}
	return s.store.LoadLoanRecordsByItemID(ctx, itemID)
}

// ProcessOverdueItems notifies every user holding a loan whose due date
// lies strictly before today's midnight. A loan due today is not overdue.
// There is no de-duplication: every invocation re-notifies for every
// overdue loan. Returns the number of notifications sent.
func (s *LoanService) ProcessOverdueItems(ctx context.Context) (int, error) {
	allLoans, err := s.store.LoadAllLoanRecords(ctx)
	if err != nil {
		return 0, err
	}
	today := clock.Today(s.clk)

	notified := 0
	for _, loan := range allLoans {
		if !loan.Active() || !loan.DueDate.Before(today) {
			continue
		}

		// Best-effort lookups: a vanished user or item downgrades to a
		// placeholder instead of aborting the scan.
		userName := "Unknown User"
		if user, found, err := s.users.FindUserByID(ctx, loan.UserID); err == nil && found {
			userName = user.Name
		}
		itemTitle := "Unknown Item"
		if item, found, err := s.catalog.FindItemByID(ctx, loan.ItemID); err == nil && found {
			itemTitle = item.Title
		}

		message := fmt.Sprintf("Dear %s, the item '%s' (Loan ID: %s) was due on %s. Please return it as soon as possible.",
			userName, itemTitle, loan.RecordID, clock.FormatDate(loan.DueDate))
		s.notifier.Send(loan.UserID, message)
		notified++
	}

	slog.Info("overdue scan complete", "overdue", notified)
	return notified, nil
}
