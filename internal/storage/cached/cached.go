// Package cached provides the caching-hybrid backend: an in-memory store
// serves all live reads and writes, a CSV file store provides durability
// through explicit checkpoints. Data survives a restart only if the caller
// triggers PersistAllToFile, typically at shutdown.
package cached

import (
	"context"
	"log/slog"

	"libris/internal/storage"
	"libris/internal/storage/file"
	"libris/internal/storage/memory"
)

// Ensure Store implements both the contract and the checkpoint extension.
var (
	_ storage.PersistenceService = (*Store)(nil)
	_ storage.Checkpointer       = (*Store)(nil)
)

// Store embeds the in-memory store, so every contract method operates on
// memory only; there is no write-through. Checkpoint calls are not mutually
// excluded against live traffic — callers serialize them externally (the
// CLI is single-threaded).
type Store struct {
	*memory.Store
	files *file.Store
}

// New builds a Store over the CSV data directory and performs the initial
// bulk load from file into memory.
func New(dir string) (*Store, error) {
	files, err := file.New(dir)
	if err != nil {
		return nil, err
	}
	s := &Store{Store: memory.New(), files: files}
	if err := s.LoadAllFromFileToMemory(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadAllFromFileToMemory discards current memory state and reloads every
// aggregate from the CSV files. Authors and users load before items, items
// before loans, because items reference authors and loans reference both.
func (s *Store) LoadAllFromFileToMemory(ctx context.Context) error {
	fresh := memory.New()

	authors, err := s.files.LoadAllAuthors(ctx)
	if err != nil {
		return err
	}
	for _, a := range authors {
		if err := fresh.SaveAuthor(ctx, a); err != nil {
			return err
		}
	}

	users, err := s.files.LoadAllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := fresh.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	items, err := s.files.LoadAllItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := fresh.SaveItem(ctx, item); err != nil {
			return err
		}
	}

	loans, err := s.files.LoadAllLoanRecords(ctx)
	if err != nil {
		return err
	}
	for _, r := range loans {
		if err := fresh.SaveLoanRecord(ctx, r); err != nil {
			return err
		}
	}

	s.Store = fresh
	slog.Info("loaded data from files into memory",
		"authors", len(authors), "users", len(users), "items", len(items), "loans", len(loans))
	return nil
}

// PersistAllToFile upserts every in-memory record into the CSV files.
// Records deleted from memory since the last checkpoint are not removed
// from the files; this is an upsert dump, not a sync.
func (s *Store) PersistAllToFile(ctx context.Context) error {
	authors, err := s.LoadAllAuthors(ctx)
	if err != nil {
		return err
	}
	for _, a := range authors {
		if err := s.files.SaveAuthor(ctx, a); err != nil {
			return err
		}
	}

	users, err := s.LoadAllUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := s.files.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	items, err := s.LoadAllItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.files.SaveItem(ctx, item); err != nil {
			return err
		}
	}

	loans, err := s.LoadAllLoanRecords(ctx)
	if err != nil {
		return err
	}
	for _, r := range loans {
		if err := s.files.SaveLoanRecord(ctx, r); err != nil {
			return err
		}
	}

	slog.Info("persisted in-memory data to files",
		"authors", len(authors), "users", len(users), "items", len(items), "loans", len(loans))
	return nil
}
