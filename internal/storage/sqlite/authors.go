package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libris/internal/models"
)

func (s *Store) SaveAuthor(ctx context.Context, author models.Author) error {
	query := `
		INSERT INTO Authors (AuthorId, Name) VALUES (?, ?)
		ON CONFLICT(AuthorId) DO UPDATE SET Name = excluded.Name
	`
	if _, err := s.q().ExecContext(ctx, query, author.ID, author.Name); err != nil {
		return fmt.Errorf("%w: save author %q: %v", models.ErrOperationFailed, author.ID, err)
	}
	return nil
}

func (s *Store) LoadAuthor(ctx context.Context, id string) (models.Author, bool, error) {
	var author models.Author
	err := s.q().QueryRowContext(ctx,
		"SELECT AuthorId, Name FROM Authors WHERE AuthorId = ?", id,
	).Scan(&author.ID, &author.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Author{}, false, nil
	}
	if err != nil {
		return models.Author{}, false, fmt.Errorf("%w: load author %q: %v", models.ErrOperationFailed, id, err)
	}
	return author, true, nil
}

func (s *Store) LoadAllAuthors(ctx context.Context) ([]models.Author, error) {
	rows, err := s.q().QueryContext(ctx, "SELECT AuthorId, Name FROM Authors")
	if err != nil {
		return nil, fmt.Errorf("%w: load authors: %v", models.ErrOperationFailed, err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		var author models.Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, fmt.Errorf("%w: scan author: %v", models.ErrOperationFailed, err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate authors: %v", models.ErrOperationFailed, err)
	}
	return authors, nil
}

func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	if _, err := s.q().ExecContext(ctx, "DELETE FROM Authors WHERE AuthorId = ?", id); err != nil {
		return fmt.Errorf("%w: delete author %q: %v", models.ErrOperationFailed, id, err)
	}
	return nil
}
