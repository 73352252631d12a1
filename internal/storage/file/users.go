package file

import (
	"context"
	"log/slog"

	"libris/internal/models"
)

// User rows: id,name

func (s *Store) SaveUser(_ context.Context, user models.User) error {
	rows, err := s.readCSV(usersFile)
	if err != nil {
		return err
	}
	rows = upsertRow(rows, user.ID, []string{user.ID, user.Name})
	return s.writeCSV(usersFile, rows)
}

func (s *Store) LoadUser(_ context.Context, id string) (models.User, bool, error) {
	rows, err := s.readCSV(usersFile)
	if err != nil {
		return models.User{}, false, err
	}
	for _, fields := range rows {
		if len(fields) == 0 || fields[0] != id {
			continue
		}
		if len(fields) != 2 || fields[1] == "" {
			slog.Warn("skipping invalid user record", "file", usersFile, "user_id", id)
			return models.User{}, false, nil
		}
		return models.User{ID: fields[0], Name: fields[1]}, true, nil
	}
	return models.User{}, false, nil
}

func (s *Store) LoadAllUsers(_ context.Context) ([]models.User, error) {
	rows, err := s.readCSV(usersFile)
	if err != nil {
		return nil, err
	}
	var users []models.User
	for _, fields := range rows {
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			slog.Warn("skipping invalid user record", "file", usersFile, "fields", len(fields))
			continue
		}
		users = append(users, models.User{ID: fields[0], Name: fields[1]})
	}
	return users, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	rows, err := s.readCSV(usersFile)
	if err != nil {
		return err
	}
	return s.writeCSV(usersFile, dropRow(rows, id))
}
