// Package instrumented decorates any persistence backend with prometheus
// counters, one increment per contract operation, labeled by operation,
// aggregate and outcome.
package instrumented

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"libris/internal/models"
	"libris/internal/storage"
)

// Ensure Store implements the contract.
var _ storage.PersistenceService = (*Store)(nil)

// Store counts every operation on the wrapped backend.
type Store struct {
	next storage.PersistenceService
	ops  *prometheus.CounterVec
}

// New wraps next and registers the operation counter with reg.
func New(next storage.PersistenceService, reg prometheus.Registerer) *Store {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "libris_storage_operations_total",
		Help: "Total persistence operations by operation, aggregate and outcome.",
	}, []string{"op", "aggregate", "outcome"})
	reg.MustRegister(ops)
	return &Store{next: next, ops: ops}
}

// Unwrap returns the decorated backend, so callers can reach optional
// capabilities (transactions, checkpoints) on the concrete store.
func (s *Store) Unwrap() storage.PersistenceService {
	return s.next
}

func (s *Store) count(op, aggregate string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.ops.WithLabelValues(op, aggregate, outcome).Inc()
}

func (s *Store) SaveAuthor(ctx context.Context, author models.Author) error {
	err := s.next.SaveAuthor(ctx, author)
	s.count("save", "author", err)
	return err
}

func (s *Store) LoadAuthor(ctx context.Context, id string) (models.Author, bool, error) {
	a, ok, err := s.next.LoadAuthor(ctx, id)
	s.count("load", "author", err)
	return a, ok, err
}

func (s *Store) LoadAllAuthors(ctx context.Context) ([]models.Author, error) {
	out, err := s.next.LoadAllAuthors(ctx)
	s.count("load_all", "author", err)
	return out, err
}

func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	err := s.next.DeleteAuthor(ctx, id)
	s.count("delete", "author", err)
	return err
}

func (s *Store) SaveItem(ctx context.Context, item models.Item) error {
	err := s.next.SaveItem(ctx, item)
	s.count("save", "item", err)
	return err
}

func (s *Store) LoadItem(ctx context.Context, id string) (models.Item, bool, error) {
	item, ok, err := s.next.LoadItem(ctx, id)
	s.count("load", "item", err)
	return item, ok, err
}

func (s *Store) LoadAllItems(ctx context.Context) ([]models.Item, error) {
	out, err := s.next.LoadAllItems(ctx)
	s.count("load_all", "item", err)
	return out, err
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	err := s.next.DeleteItem(ctx, id)
	s.count("delete", "item", err)
	return err
}

func (s *Store) SaveUser(ctx context.Context, user models.User) error {
	err := s.next.SaveUser(ctx, user)
	s.count("save", "user", err)
	return err
}

func (s *Store) LoadUser(ctx context.Context, id string) (models.User, bool, error) {
	u, ok, err := s.next.LoadUser(ctx, id)
	s.count("load", "user", err)
	return u, ok, err
}

func (s *Store) LoadAllUsers(ctx context.Context) ([]models.User, error) {
	out, err := s.next.LoadAllUsers(ctx)
	s.count("load_all", "user", err)
	return out, err
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	err := s.next.DeleteUser(ctx, id)
	s.count("delete", "user", err)
	return err
}

func (s *Store) SaveLoanRecord(ctx context.Context, record models.LoanRecord) error {
	err := s.next.SaveLoanRecord(ctx, record)
	s.count("save", "loan_record", err)
	return err
}

func (s *Store) UpdateLoanRecord(ctx context.Context, record models.LoanRecord) error {
	err := s.next.UpdateLoanRecord(ctx, record)
	s.count("update", "loan_record", err)
	return err
}

func (s *Store) LoadLoanRecord(ctx context.Context, id string) (models.LoanRecord, bool, error) {
	r, ok, err := s.next.LoadLoanRecord(ctx, id)
	s.count("load", "loan_record", err)
	return r, ok, err
}

func (s *Store) LoadAllLoanRecords(ctx context.Context) ([]models.LoanRecord, error) {
	out, err := s.next.LoadAllLoanRecords(ctx)
	s.count("load_all", "loan_record", err)
	return out, err
}

func (s *Store) LoadLoanRecordsByUserID(ctx context.Context, userID string) ([]models.LoanRecord, error) {
	out, err := s.next.LoadLoanRecordsByUserID(ctx, userID)
	s.count("load_by_user", "loan_record", err)
	return out, err
}

func (s *Store) LoadLoanRecordsByItemID(ctx context.Context, itemID string) ([]models.LoanRecord, error) {
	out, err := s.next.LoadLoanRecordsByItemID(ctx, itemID)
	s.count("load_by_item", "loan_record", err)
	return out, err
}

func (s *Store) DeleteLoanRecord(ctx context.Context, id string) error {
	err := s.next.DeleteLoanRecord(ctx, id)
	s.count("delete", "loan_record", err)
	return err
}
