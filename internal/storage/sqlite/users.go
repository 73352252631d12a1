package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"libris/internal/models"
)

func (s *Store) SaveUser(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO Users (UserId, Name) VALUES (?, ?)
		ON CONFLICT(UserId) DO UPDATE SET Name = excluded.Name
	`
	if _, err := s.q().ExecContext(ctx, query, user.ID, user.Name); err != nil {
		return fmt.Errorf("%w: save user %q: %v", models.ErrOperationFailed, user.ID, err)
	}
	return nil
}

func (s *Store) LoadUser(ctx context.Context, id string) (models.User, bool, error) {
	var user models.User
	err := s.q().QueryRowContext(ctx,
		"SELECT UserId, Name FROM Users WHERE UserId = ?", id,
	).Scan(&user.ID, &user.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("%w: load user %q: %v", models.ErrOperationFailed, id, err)
	}
	return user, true, nil
}

func (s *Store) LoadAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.q().QueryContext(ctx, "SELECT UserId, Name FROM Users")
	if err != nil {
		return nil, fmt.Errorf("%w: load users: %v", models.ErrOperationFailed, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("%w: scan user: %v", models.ErrOperationFailed, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate users: %v", models.ErrOperationFailed, err)
	}
	return users, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.q().ExecContext(ctx, "DELETE FROM Users WHERE UserId = ?", id); err != nil {
		return fmt.Errorf("%w: delete user %q: %v", models.ErrOperationFailed, id, err)
	}
	return nil
}
