// Package service implements the catalog, user and loan workflows on top of
// the persistence contract. Services are stateless façades: the selected
// backend is the system of record, and every read goes back to it.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"libris/internal/models"
	"libris/internal/storage"
)

// CatalogService manages library items and their authors.
type CatalogService struct {
	store storage.PersistenceService
}

// NewCatalogService creates a CatalogService over the given backend.
func NewCatalogService(store storage.PersistenceService) *CatalogService {
	return &CatalogService{store: store}
}

// getOrCreateAuthor resolves the author by id, creating and persisting a
// new one from the supplied name when absent. There is no separate
// create-author operation; this is the only way authors come into being.
func (s *CatalogService) getOrCreateAuthor(ctx context.Context, authorID, authorName string) (models.Author, error) {
	author, found, err := s.store.LoadAuthor(ctx, authorID)
	if err != nil {
		return models.Author{}, err
	}
	if found {
		return author, nil
	}

	author, err = models.NewAuthor(authorID, authorName)
	if err != nil {
		return models.Author{}, err
	}
	if err := s.store.SaveAuthor(ctx, author); err != nil {
		return models.Author{}, err
	}
	slog.Info("author created", "author_id", author.ID, "name", author.Name)
	return author, nil
}

// AddBook validates the fields, resolves or creates the author, and
// persists a new book. Fails when the item id is already taken.
func (s *CatalogService) AddBook(ctx context.Context, itemID, title, authorID, authorName, isbn string, year int) error {
	if itemID == "" || title == "" || isbn == "" || year <= 0 {
		return fmt.Errorf("%w: invalid parameters for adding a book", models.ErrInvalidArgument)
	}

	_, exists, err := s.store.LoadItem(ctx, itemID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: library item %q already exists", models.ErrOperationFailed, itemID)
	}

	author, err := s.getOrCreateAuthor(ctx, authorID, authorName)
	if err != nil {
		return err
	}

	book, err := models.NewBook(itemID, title, author, isbn, year)
	if err != nil {
		return err
	}
	if err := s.store.SaveItem(ctx, book); err != nil {
		return err
	}
	slog.Info("book added", "item_id", itemID, "title", title, "author_id", author.ID)
	return nil
}

// RemoveItem deletes the item if it exists and reports whether it did.
// A missing item is not an error.
func (s *CatalogService) RemoveItem(ctx context.Context, itemID string) (bool, error) {
	if itemID == "" {
		return false, fmt.Errorf("%w: item id cannot be empty", models.ErrInvalidArgument)
	}
	_, exists, err := s.store.LoadItem(ctx, itemID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return false, err
	}
	slog.Info("item removed", "item_id", itemID)
	return true, nil
}

// FindItemByID looks up a single item.
func (s *CatalogService) FindItemByID(ctx context.Context, itemID string) (models.Item, bool, error) {
	if itemID == "" {
		return models.Item{}, false, fmt.Errorf("%w: item id cannot be empty", models.ErrInvalidArgument)
	}
	return s.store.LoadItem(ctx, itemID)
}

// FindItemsByTitle returns all items with exactly the given title.
func (s *CatalogService) FindItemsByTitle(ctx context.Context, title string) ([]models.Item, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", models.ErrInvalidArgument)
	}
	all, err := s.store.LoadAllItems(ctx)
	if err != nil {
		return nil, err
	}
	var matches []models.Item
	for _, item := range all {
		if item.Title == title {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// FindItemsByAuthor returns all items whose author has the given id.
func (s *CatalogService) FindItemsByAuthor(ctx context.Context, authorID string) ([]models.Item, error) {
	if authorID == "" {
		return nil, fmt.Errorf("%w: author id cannot be empty", models.ErrInvalidArgument)
	}
	all, err := s.store.LoadAllItems(ctx)
	if err != nil {
		return nil, err
	}
	var matches []models.Item
	for _, item := range all {
		if item.AuthorID() == authorID {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// GetAllItems returns every item in the catalog.
func (s *CatalogService) GetAllItems(ctx context.Context) ([]models.Item, error) {
	return s.store.LoadAllItems(ctx)
}

// UpdateItemStatus loads the item, mutates the status on the copy and
// saves it back as a full overwrite.
func (s *CatalogService) UpdateItemStatus(ctx context.Context, itemID string, status models.AvailabilityStatus) error {
	if itemID == "" {
		return fmt.Errorf("%w: item id cannot be empty", models.ErrInvalidArgument)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown availability status %d", models.ErrInvalidArgument, int(status))
	}

	item, found, err := s.store.LoadItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: item %q not found for status update", models.ErrNotFound, itemID)
	}

	item.Status = status
	if err := s.store.SaveItem(ctx, item); err != nil {
		return err
	}
	slog.Info("item status updated", "item_id", itemID, "status", status.String())
	return nil
}
