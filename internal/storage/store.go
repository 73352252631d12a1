// Package storage defines the persistence contract for the libris aggregates.
package storage

import (
	"context"

	"libris/internal/models"
)

// PersistenceService is the uniform storage contract implemented by every
// backend (in-memory, CSV file, caching-hybrid, sqlite). This abstraction
// keeps the backends interchangeable behind the service layer.
//
// Semantics, uniform across backends:
//   - Save* upserts by primary key. There is no distinct insert-vs-update
//     error; saves succeed or fail with a wrapped models.ErrOperationFailed
//     on I/O or driver failure.
//   - Load* returns (zero, false, nil) when no record with the id exists;
//     absence is never an error.
//   - LoadAll* returns every record. Order is the backend's own iteration
//     order (insertion order in memory, file order for CSV) and is stable
//     within one backend.
//   - Delete* is idempotent; deleting a nonexistent id is a no-op.
//
// Every value handed out is an independent copy of stored state; callers
// never receive references into a backend's internals.
type PersistenceService interface {
	SaveAuthor(ctx context.Context, author models.Author) error
	LoadAuthor(ctx context.Context, id string) (models.Author, bool, error)
	LoadAllAuthors(ctx context.Context) ([]models.Author, error)
	DeleteAuthor(ctx context.Context, id string) error

	SaveItem(ctx context.Context, item models.Item) error
	LoadItem(ctx context.Context, id string) (models.Item, bool, error)
	LoadAllItems(ctx context.Context) ([]models.Item, error)
	DeleteItem(ctx context.Context, id string) error

	SaveUser(ctx context.Context, user models.User) error
	LoadUser(ctx context.Context, id string) (models.User, bool, error)
	LoadAllUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error

	SaveLoanRecord(ctx context.Context, record models.LoanRecord) error
	// UpdateLoanRecord upserts like SaveLoanRecord; it exists to make the
	// return-item mutation explicit at call sites.
	UpdateLoanRecord(ctx context.Context, record models.LoanRecord) error
	LoadLoanRecord(ctx context.Context, id string) (models.LoanRecord, bool, error)
	LoadAllLoanRecords(ctx context.Context) ([]models.LoanRecord, error)
	LoadLoanRecordsByUserID(ctx context.Context, userID string) ([]models.LoanRecord, error)
	LoadLoanRecordsByItemID(ctx context.Context, itemID string) ([]models.LoanRecord, error)
	DeleteLoanRecord(ctx context.Context, id string) error
}

// Transactional is implemented by backends that support explicit
// transactions (currently only sqlite). Auto-commit is the default; a begun
// transaction must be committed or rolled back before the next Begin.
type Transactional interface {
	BeginTransaction(ctx context.Context) error
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}

// Checkpointer is implemented by backends whose durability is an explicit
// checkpoint rather than a property of every write (the caching-hybrid
// backend). PersistAllToFile upserts every in-memory record into the file
// store; records deleted from memory are not removed from the file.
// LoadAllFromFileToMemory discards current memory state and reloads.
type Checkpointer interface {
	PersistAllToFile(ctx context.Context) error
	LoadAllFromFileToMemory(ctx context.Context) error
}
