package models

import "fmt"

// AvailabilityStatus describes whether an item can currently be borrowed.
// The numeric values are part of the CSV and relational wire formats.
type AvailabilityStatus int

const (
	StatusAvailable AvailabilityStatus = iota
	StatusBorrowed
	StatusReserved
	StatusMaintenance
)

// String returns a human-readable status name.
func (s AvailabilityStatus) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusBorrowed:
		return "Borrowed"
	case StatusReserved:
		return "Reserved"
	case StatusMaintenance:
		return "Maintenance"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined statuses.
func (s AvailabilityStatus) Valid() bool {
	return s >= StatusAvailable && s <= StatusMaintenance
}

// ItemType discriminates item kinds. Only books exist today; the tag keeps
// the wire formats and clone semantics ready for more kinds.
type ItemType string

const ItemTypeBook ItemType = "Book"

// Item is a library item. It is a tagged union over item kinds: the common
// fields apply to every kind, ISBN only to books.
type Item struct {
	// ID is the unique identifier for the item.
	ID string

	// Type discriminates the item kind.
	Type ItemType

	// Title is the item's title.
	Title string

	// Author references the item's author, nil when the author record has
	// gone missing (dangling foreign key tolerated on load).
	Author *Author

	// ISBN is set for books only.
	ISBN string

	// PublicationYear is the year of publication, always positive.
	PublicationYear int

	// Status is the item's current availability.
	Status AvailabilityStatus
}

// NewBook validates and builds a book item. New books start out available.
func NewBook(id, title string, author Author, isbn string, year int) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("%w: item id cannot be empty", ErrInvalidArgument)
	}
	if title == "" {
		return Item{}, fmt.Errorf("%w: item title cannot be empty", ErrInvalidArgument)
	}
	if isbn == "" {
		return Item{}, fmt.Errorf("%w: book isbn cannot be empty", ErrInvalidArgument)
	}
	if year <= 0 {
		return Item{}, fmt.Errorf("%w: publication year must be positive, got %d", ErrInvalidArgument, year)
	}
	a := author
	return Item{
		ID:              id,
		Type:            ItemTypeBook,
		Title:           title,
		Author:          &a,
		ISBN:            isbn,
		PublicationYear: year,
		Status:          StatusAvailable,
	}, nil
}

// Clone returns an independent deep copy of the item. The author, when
// present, is copied too, so mutating the clone never leaks into whoever
// produced it.
func (i Item) Clone() Item {
	c := i
	if i.Author != nil {
		a := *i.Author
		c.Author = &a
	}
	return c
}

// AuthorID returns the id of the item's author, or "" when absent.
func (i Item) AuthorID() string {
	if i.Author == nil {
		return ""
	}
	return i.Author.ID
}
