package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewAuthor(t *testing.T) {
	if _, err := NewAuthor("", "Frank Herbert"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewAuthor with empty id = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewAuthor("a1", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewAuthor with empty name = %v, want ErrInvalidArgument", err)
	}
	author, err := NewAuthor("a1", "Frank Herbert")
	if err != nil {
		t.Fatalf("NewAuthor failed: %v", err)
	}
	if author.ID != "a1" || author.Name != "Frank Herbert" {
		t.Errorf("unexpected author %+v", author)
	}
}

func TestNewUser(t *testing.T) {
	if _, err := NewUser("", "Alice"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewUser with empty id = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewUser("u1", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewUser with empty name = %v, want ErrInvalidArgument", err)
	}
}

func TestNewBook(t *testing.T) {
	author := Author{ID: "a1", Name: "Frank Herbert"}

	tests := []struct {
		name      string
		id, title string
		isbn      string
		year      int
		wantErr   bool
	}{
		{"valid", "b1", "Dune", "0441013597", 1965, false},
		{"empty id", "", "Dune", "0441013597", 1965, true},
		{"empty title", "b1", "", "0441013597", 1965, true},
		{"empty isbn", "b1", "Dune", "", 1965, true},
		{"zero year", "b1", "Dune", "0441013597", 0, true},
		{"negative year", "b1", "Dune", "0441013597", -5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := NewBook(tt.id, tt.title, author, tt.isbn, tt.year)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("NewBook = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBook failed: %v", err)
			}
			if book.Type != ItemTypeBook {
				t.Errorf("type %q, want %q", book.Type, ItemTypeBook)
			}
			if book.Status != StatusAvailable {
				t.Errorf("new book status %s, want Available", book.Status)
			}
			if book.AuthorID() != "a1" {
				t.Errorf("author id %q, want a1", book.AuthorID())
			}
		})
	}
}

func TestNewBookCopiesAuthor(t *testing.T) {
	author := Author{ID: "a1", Name: "Frank Herbert"}
	book, err := NewBook("b1", "Dune", author, "0441013597", 1965)
	if err != nil {
		t.Fatal(err)
	}
	author.Name = "mutated"
	if book.Author.Name != "Frank Herbert" {
		t.Errorf("book author changed through caller's copy: %q", book.Author.Name)
	}
}

func TestItemClone(t *testing.T) {
	author := Author{ID: "a1", Name: "Frank Herbert"}
	book, err := NewBook("b1", "Dune", author, "0441013597", 1965)
	if err != nil {
		t.Fatal(err)
	}

	clone := book.Clone()
	clone.Author.Name = "mutated"
	if book.Author.Name != "Frank Herbert" {
		t.Errorf("original author changed through clone: %q", book.Author.Name)
	}

	orphan := Item{ID: "b2", Type: ItemTypeBook, Title: "Anonymous"}
	if c := orphan.Clone(); c.Author != nil {
		t.Errorf("clone of authorless item grew an author: %+v", c.Author)
	}
	if orphan.AuthorID() != "" {
		t.Errorf("authorless item has author id %q", orphan.AuthorID())
	}
}

func TestAvailabilityStatus(t *testing.T) {
	for status, want := range map[AvailabilityStatus]string{
		StatusAvailable:   "Available",
		StatusBorrowed:    "Borrowed",
		StatusReserved:    "Reserved",
		StatusMaintenance: "Maintenance",
	} {
		if got := status.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", int(status), got, want)
		}
		if !status.Valid() {
			t.Errorf("Valid(%d) = false", int(status))
		}
	}
	if AvailabilityStatus(99).Valid() {
		t.Error("Valid(99) = true")
	}
	if AvailabilityStatus(-1).Valid() {
		t.Error("Valid(-1) = true")
	}
}

func TestNewLoanRecord(t *testing.T) {
	loanDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	dueDate := loanDate.AddDate(0, 0, 14)

	if _, err := NewLoanRecord("", "b1", "u1", loanDate, dueDate); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty record id = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewLoanRecord("loan_1", "", "u1", loanDate, dueDate); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty item id = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewLoanRecord("loan_1", "b1", "", loanDate, dueDate); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty user id = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewLoanRecord("loan_1", "b1", "u1", loanDate, loanDate.Add(-time.Hour)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("due before loan = %v, want ErrInvalidArgument", err)
	}

	// Same-instant due date is allowed.
	record, err := NewLoanRecord("loan_1", "b1", "u1", loanDate, loanDate)
	if err != nil {
		t.Fatalf("NewLoanRecord with due == loan failed: %v", err)
	}
	if !record.Active() {
		t.Error("fresh record is not active")
	}
}

func TestMarkReturned(t *testing.T) {
	loanDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	record, err := NewLoanRecord("loan_1", "b1", "u1", loanDate, loanDate.AddDate(0, 0, 14))
	if err != nil {
		t.Fatal(err)
	}

	if err := record.MarkReturned(loanDate.Add(-time.Hour)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("return before loan date = %v, want ErrInvalidArgument", err)
	}
	if !record.Active() {
		t.Error("failed MarkReturned deactivated the loan")
	}

	returnedAt := loanDate.AddDate(0, 0, 7)
	if err := record.MarkReturned(returnedAt); err != nil {
		t.Fatalf("MarkReturned failed: %v", err)
	}
	if record.Active() {
		t.Error("record still active after return")
	}
	if !record.ReturnDate.Equal(returnedAt) {
		t.Errorf("return date %v, want %v", record.ReturnDate, returnedAt)
	}

	if err := record.MarkReturned(returnedAt.Add(time.Hour)); !errors.Is(err, ErrOperationFailed) {
		t.Errorf("second MarkReturned = %v, want ErrOperationFailed", err)
	}
}

func TestLoanRecordClone(t *testing.T) {
	loanDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	record, _ := NewLoanRecord("loan_1", "b1", "u1", loanDate, loanDate.AddDate(0, 0, 14))
	if err := record.MarkReturned(loanDate.AddDate(0, 0, 7)); err != nil {
		t.Fatal(err)
	}

	clone := record.Clone()
	*clone.ReturnDate = clone.ReturnDate.AddDate(1, 0, 0)
	if !record.ReturnDate.Equal(loanDate.AddDate(0, 0, 7)) {
		t.Errorf("original return date changed through clone: %v", record.ReturnDate)
	}
}
