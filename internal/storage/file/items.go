package file

import (
	"context"
	"log/slog"
	"strconv"

	"libris/internal/models"
)

// Item rows: id,type,title,authorId,isbn,publicationYear,availabilityStatus
// The author id is a foreign key; the author record is re-resolved on every
// load, so renames are picked up lazily and a vanished author downgrades to
// a nil reference with a logged warning.

const itemFieldCount = 7

func itemRow(item models.Item) []string {
	return []string{
		item.ID,
		string(item.Type),
		item.Title,
		item.AuthorID(),
		item.ISBN,
		strconv.Itoa(item.PublicationYear),
		strconv.Itoa(int(item.Status)),
	}
}

// parseItem rebuilds an item from a CSV row, resolving the author by a
// nested load. Returns false when the row is not a well-formed item record.
func (s *Store) parseItem(ctx context.Context, fields []string) (models.Item, bool) {
	if len(fields) != itemFieldCount || fields[1] != string(models.ItemTypeBook) {
		return models.Item{}, false
	}
	if fields[0] == "" || fields[2] == "" {
		return models.Item{}, false
	}
	year, err := strconv.Atoi(fields[5])
	if err != nil || year <= 0 {
		return models.Item{}, false
	}
	statusCode, err := strconv.Atoi(fields[6])
	if err != nil {
		return models.Item{}, false
	}
	status := models.AvailabilityStatus(statusCode)
	if !status.Valid() {
		return models.Item{}, false
	}

	var author *models.Author
	if authorID := fields[3]; authorID != "" {
		a, found, err := s.LoadAuthor(ctx, authorID)
		if err != nil || !found {
			slog.Warn("author not found for item", "item_id", fields[0], "author_id", authorID)
		} else {
			author = &a
		}
	}

	return models.Item{
		ID:              fields[0],
		Type:            models.ItemTypeBook,
		Title:           fields[2],
		Author:          author,
		ISBN:            fields[4],
		PublicationYear: year,
		Status:          status,
	}, true
}

func (s *Store) SaveItem(_ context.Context, item models.Item) error {
	rows, err := s.readCSV(itemsFile)
	if err != nil {
		return err
	}
	rows = upsertRow(rows, item.ID, itemRow(item))
	return s.writeCSV(itemsFile, rows)
}

func (s *Store) LoadItem(ctx context.Context, id string) (models.Item, bool, error) {
	rows, err := s.readCSV(itemsFile)
	if err != nil {
		return models.Item{}, false, err
	}
	for _, fields := range rows {
		if len(fields) > 0 && fields[0] == id {
			item, ok := s.parseItem(ctx, fields)
			if !ok {
				slog.Warn("skipping malformed item record", "file", itemsFile, "item_id", id)
				return models.Item{}, false, nil
			}
			return item, true, nil
		}
	}
	return models.Item{}, false, nil
}

func (s *Store) LoadAllItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.readCSV(itemsFile)
	if err != nil {
		return nil, err
	}
	var items []models.Item
	for _, fields := range rows {
		item, ok := s.parseItem(ctx, fields)
		if !ok {
			slog.Warn("skipping malformed item record", "file", itemsFile, "fields", len(fields))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	rows, err := s.readCSV(itemsFile)
	if err != nil {
		return err
	}
	return s.writeCSV(itemsFile, dropRow(rows, id))
}
