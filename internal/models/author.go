package models

import "fmt"

// Author represents a book author. Authors are identified by ID and shared
// across items by id reference; the struct itself is copied like any other
// value, so renames propagate only through an explicit SaveAuthor.
type Author struct {
	// ID is the unique identifier for the author.
	ID string

	// Name is the author's display name.
	Name string
}

// NewAuthor validates and builds an Author.
func NewAuthor(id, name string) (Author, error) {
	if id == "" {
		return Author{}, fmt.Errorf("%w: author id cannot be empty", ErrInvalidArgument)
	}
	if name == "" {
		return Author{}, fmt.Errorf("%w: author name cannot be empty", ErrInvalidArgument)
	}
	return Author{ID: id, Name: name}, nil
}
