package models

import "fmt"

// User represents a registered library user.
type User struct {
	// ID is the unique identifier for the user.
	ID string

	// Name is the user's display name.
	Name string
}

// NewUser validates and builds a User.
func NewUser(id, name string) (User, error) {
	if id == "" {
		return User{}, fmt.Errorf("%w: user id cannot be empty", ErrInvalidArgument)
	}
	if name == "" {
		return User{}, fmt.Errorf("%w: user name cannot be empty", ErrInvalidArgument)
	}
	return User{ID: id, Name: name}, nil
}
