package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libris/internal/models"
)

const itemColumns = `
	i.ItemId, i.ItemType, i.Title, i.AuthorId, a.Name, i.ISBN,
	i.PublicationYear, i.AvailabilityStatus
`

const itemSelect = `
	SELECT ` + itemColumns + `
	FROM LibraryItems i
	LEFT JOIN Authors a ON a.AuthorId = i.AuthorId
`

func (s *Store) SaveItem(ctx context.Context, item models.Item) error {
	query := `
		INSERT INTO LibraryItems
			(ItemId, ItemType, Title, AuthorId, ISBN, PublicationYear, AvailabilityStatus)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(ItemId) DO UPDATE SET
			ItemType = excluded.ItemType,
			Title = excluded.Title,
			AuthorId = excluded.AuthorId,
			ISBN = excluded.ISBN,
			PublicationYear = excluded.PublicationYear,
			AvailabilityStatus = excluded.AvailabilityStatus
	`
	_, err := s.q().ExecContext(ctx, query,
		item.ID,
		string(item.Type),
		item.Title,
		nullable(item.AuthorID()),
		nullable(item.ISBN),
		item.PublicationYear,
		int(item.Status),
	)
	if err != nil {
		return fmt.Errorf("%w: save item %q: %v", models.ErrOperationFailed, item.ID, err)
	}
	return nil
}

// scanItem maps one joined row to an Item. The author reference is nil
// when the item has no AuthorId or the author row has gone missing.
func scanItem(scan func(dest ...any) error) (models.Item, error) {
	var (
		item       models.Item
		itemType   string
		authorID   sql.NullString
		authorName sql.NullString
		isbn       sql.NullString
		status     int
	)
	err := scan(&item.ID, &itemType, &item.Title, &authorID, &authorName, &isbn,
		&item.PublicationYear, &status)
	if err != nil {
		return models.Item{}, err
	}
	item.Type = models.ItemType(itemType)
	item.ISBN = isbn.String
	item.Status = models.AvailabilityStatus(status)
	if authorID.Valid && authorName.Valid {
		item.Author = &models.Author{ID: authorID.String, Name: authorName.String}
	}
	return item, nil
}

func (s *Store) LoadItem(ctx context.Context, id string) (models.Item, bool, error) {
	row := s.q().QueryRowContext(ctx, itemSelect+" WHERE i.ItemId = ?", id)
	item, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, false, nil
	}
	if err != nil {
		return models.Item{}, false, fmt.Errorf("%w: load item %q: %v", models.ErrOperationFailed, id, err)
	}
	return item, true, nil
}

func (s *Store) LoadAllItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.q().QueryContext(ctx, itemSelect)
	if err != nil {
		return nil, fmt.Errorf("%w: load items: %v", models.ErrOperationFailed, err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scan item: %v", models.ErrOperationFailed, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate items: %v", models.ErrOperationFailed, err)
	}
	return items, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.q().ExecContext(ctx, "DELETE FROM LibraryItems WHERE ItemId = ?", id); err != nil {
		return fmt.Errorf("%w: delete item %q: %v", models.ErrOperationFailed, id, err)
	}
	return nil
}
