// Package memory provides the in-memory implementation of the persistence
// contract. It is the system of record for the caching-hybrid backend and
// the default backend for tests.
package memory

import (
	"context"
	"sync"

	"libris/internal/models"
	"libris/internal/storage"
)

// Ensure Store implements the contract.
var _ storage.PersistenceService = (*Store)(nil)

// table is an id-keyed collection that preserves insertion order, so
// LoadAll results are stable across calls.
type table[T any] struct {
	byID  map[string]T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{byID: make(map[string]T)}
}

func (t *table[T]) upsert(id string, v T) {
	if _, ok := t.byID[id]; !ok {
		t.order = append(t.order, id)
	}
	t.byID[id] = v
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.byID[id]
	return v, ok
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.byID[id])
	}
	return out
}

func (t *table[T]) delete(id string) {
	if _, ok := t.byID[id]; !ok {
		return
	}
	delete(t.byID, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Store keeps every aggregate in an id-keyed map guarded by one coarse
// mutex. No operation blocks on I/O, so critical sections are short. Items
// and loan records are cloned on the way in and out; authors and users are
// plain values, so assignment already copies them.
type Store struct {
	mu      sync.Mutex
	authors table[models.Author]
	items   table[models.Item]
	users   table[models.User]
	loans   table[models.LoanRecord]
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		authors: newTable[models.Author](),
		items:   newTable[models.Item](),
		users:   newTable[models.User](),
		loans:   newTable[models.LoanRecord](),
	}
}

func (s *Store) SaveAuthor(_ context.Context, author models.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors.upsert(author.ID, author)
	return nil
}

func (s *Store) LoadAuthor(_ context.Context, id string) (models.Author, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.authors.get(id)
	return a, ok, nil
}

func (s *Store) LoadAllAuthors(_ context.Context) ([]models.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authors.all(), nil
}

func (s *Store) DeleteAuthor(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authors.delete(id)
	return nil
}

func (s *Store) SaveItem(_ context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.upsert(item.ID, item.Clone())
	return nil
}

func (s *Store) LoadItem(_ context.Context, id string) (models.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items.get(id)
	if !ok {
		return models.Item{}, false, nil
	}
	return item.Clone(), true, nil
}

func (s *Store) LoadAllItems(_ context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.items.all()
	out := make([]models.Item, len(stored))
	for i, item := range stored {
		out[i] = item.Clone()
	}
	return out, nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items.delete(id)
	return nil
}

func (s *Store) SaveUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.upsert(user.ID, user)
	return nil
}

func (s *Store) LoadUser(_ context.Context, id string) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users.get(id)
	return u, ok, nil
}

func (s *Store) LoadAllUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users.all(), nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users.delete(id)
	return nil
}

func (s *Store) SaveLoanRecord(_ context.Context, record models.LoanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans.upsert(record.RecordID, record.Clone())
	return nil
}

func (s *Store) UpdateLoanRecord(ctx context.Context, record models.LoanRecord) error {
	return s.SaveLoanRecord(ctx, record)
}

func (s *Store) LoadLoanRecord(_ context.Context, id string) (models.LoanRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.loans.get(id)
	if !ok {
		return models.LoanRecord{}, false, nil
	}
	return r.Clone(), true, nil
}

func (s *Store) LoadAllLoanRecords(_ context.Context) ([]models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.loans.all()
	out := make([]models.LoanRecord, len(stored))
	for i, r := range stored {
		out[i] = r.Clone()
	}
	return out, nil
}

func (s *Store) LoadLoanRecordsByUserID(_ context.Context, userID string) ([]models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LoanRecord
	for _, r := range s.loans.all() {
		if r.UserID == userID {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *Store) LoadLoanRecordsByItemID(_ context.Context, itemID string) ([]models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LoanRecord
	for _, r := range s.loans.all() {
		if r.ItemID == itemID {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *Store) DeleteLoanRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loans.delete(id)
	return nil
}
