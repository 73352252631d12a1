package file

import (
	"context"
	"log/slog"

	"libris/internal/models"
)

// Author rows: id,name

func (s *Store) SaveAuthor(_ context.Context, author models.Author) error {
	rows, err := s.readCSV(authorsFile)
	if err != nil {
		return err
	}
	rows = upsertRow(rows, author.ID, []string{author.ID, author.Name})
	return s.writeCSV(authorsFile, rows)
}

func (s *Store) LoadAuthor(_ context.Context, id string) (models.Author, bool, error) {
	rows, err := s.readCSV(authorsFile)
	if err != nil {
		return models.Author{}, false, err
	}
	for _, fields := range rows {
		if len(fields) == 0 || fields[0] != id {
			continue
		}
		if len(fields) != 2 || fields[1] == "" {
			slog.Warn("skipping invalid author record", "file", authorsFile, "author_id", id)
			return models.Author{}, false, nil
		}
		return models.Author{ID: fields[0], Name: fields[1]}, true, nil
	}
	return models.Author{}, false, nil
}

func (s *Store) LoadAllAuthors(_ context.Context) ([]models.Author, error) {
	rows, err := s.readCSV(authorsFile)
	if err != nil {
		return nil, err
	}
	var authors []models.Author
	for _, fields := range rows {
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			slog.Warn("skipping invalid author record", "file", authorsFile, "fields", len(fields))
			continue
		}
		authors = append(authors, models.Author{ID: fields[0], Name: fields[1]})
	}
	return authors, nil
}

func (s *Store) DeleteAuthor(_ context.Context, id string) error {
	rows, err := s.readCSV(authorsFile)
	if err != nil {
		return err
	}
	return s.writeCSV(authorsFile, dropRow(rows, id))
}
