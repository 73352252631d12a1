package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"libris/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("author round-trip and upsert", func(t *testing.T) {
		s := newTestStore(t)
		author := models.Author{ID: "a1", Name: "Frank Herbert"}
		if err := s.SaveAuthor(ctx, author); err != nil {
			t.Fatalf("SaveAuthor failed: %v", err)
		}

		got, found, err := s.LoadAuthor(ctx, "a1")
		if err != nil || !found {
			t.Fatalf("LoadAuthor = (%v, %v), want found", found, err)
		}
		if got != author {
			t.Errorf("loaded author %+v, want %+v", got, author)
		}

		author.Name = "F. Herbert"
		if err := s.SaveAuthor(ctx, author); err != nil {
			t.Fatalf("SaveAuthor (update) failed: %v", err)
		}
		all, err := s.LoadAllAuthors(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 1 || all[0].Name != "F. Herbert" {
			t.Errorf("upsert went wrong: %+v", all)
		}
	})

	t.Run("load absent is not an error", func(t *testing.T) {
		s := newTestStore(t)
		_, found, err := s.LoadUser(ctx, "missing")
		if err != nil {
			t.Fatalf("LoadUser returned error for absent id: %v", err)
		}
		if found {
			t.Error("LoadUser found a record that was never saved")
		}
	})

	t.Run("book round-trip with author join", func(t *testing.T) {
		s := newTestStore(t)
		author := models.Author{ID: "a1", Name: "Frank Herbert"}
		if err := s.SaveAuthor(ctx, author); err != nil {
			t.Fatal(err)
		}
		book, err := models.NewBook("b1", "Dune", author, "0441013597", 1965)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.SaveItem(ctx, book); err != nil {
			t.Fatalf("SaveItem failed: %v", err)
		}

		loaded, found, err := s.LoadItem(ctx, "b1")
		if err != nil || !found {
			t.Fatalf("LoadItem = (%v, %v), want found", found, err)
		}
		if loaded.Title != "Dune" || loaded.ISBN != "0441013597" ||
			loaded.PublicationYear != 1965 || loaded.Status != models.StatusAvailable {
			t.Errorf("loaded book fields mismatch: %+v", loaded)
		}
		if loaded.Author == nil || loaded.Author.Name != "Frank Herbert" {
			t.Errorf("author not joined: %+v", loaded.Author)
		}
	})

	t.Run("deleted author degrades to nil reference", func(t *testing.T) {
		s := newTestStore(t)
		author := models.Author{ID: "a1", Name: "Frank Herbert"}
		if err := s.SaveAuthor(ctx, author); err != nil {
			t.Fatal(err)
		}
		book, _ := models.NewBook("b1", "Dune", author, "0441013597", 1965)
		if err := s.SaveItem(ctx, book); err != nil {
			t.Fatal(err)
		}

		if err := s.DeleteAuthor(ctx, "a1"); err != nil {
			t.Fatalf("DeleteAuthor of a referenced author failed: %v", err)
		}
		loaded, found, err := s.LoadItem(ctx, "b1")
		if err != nil || !found {
			t.Fatalf("LoadItem = (%v, %v), want found despite missing author", found, err)
		}
		if loaded.Author != nil {
			t.Errorf("expected nil author after delete, got %+v", loaded.Author)
		}
	})

	t.Run("nil author maps to NULL", func(t *testing.T) {
		s := newTestStore(t)
		item := models.Item{
			ID: "b1", Type: models.ItemTypeBook, Title: "Anonymous",
			ISBN: "1234567890", PublicationYear: 2000, Status: models.StatusAvailable,
		}
		if err := s.SaveItem(ctx, item); err != nil {
			t.Fatalf("SaveItem failed: %v", err)
		}
		loaded, _, err := s.LoadItem(ctx, "b1")
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Author != nil {
			t.Errorf("expected nil author, got %+v", loaded.Author)
		}
	})

	t.Run("loan dates survive with sub-second truncation", func(t *testing.T) {
		s := newTestStore(t)
		loanDate := time.Date(2026, 3, 1, 10, 30, 15, 123456789, time.Local)
		record := models.LoanRecord{
			RecordID: "loan_1", ItemID: "b1", UserID: "u1",
			LoanDate: loanDate, DueDate: loanDate.AddDate(0, 0, 14),
		}
		if err := s.SaveLoanRecord(ctx, record); err != nil {
			t.Fatal(err)
		}

		loaded, found, err := s.LoadLoanRecord(ctx, "loan_1")
		if err != nil || !found {
			t.Fatalf("LoadLoanRecord = (%v, %v), want found", found, err)
		}
		want := loanDate.Truncate(time.Second)
		if !loaded.LoanDate.Equal(want) {
			t.Errorf("loan date: got %v, want %v (seconds precision)", loaded.LoanDate, want)
		}
		if loaded.ReturnDate != nil {
			t.Errorf("expected NULL return date, got %v", loaded.ReturnDate)
		}
	})

	t.Run("loan queries by user and item", func(t *testing.T) {
		s := newTestStore(t)
		base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
		for _, r := range []models.LoanRecord{
			{RecordID: "loan_1", ItemID: "b1", UserID: "u1", LoanDate: base, DueDate: base},
			{RecordID: "loan_2", ItemID: "b2", UserID: "u1", LoanDate: base, DueDate: base},
			{RecordID: "loan_3", ItemID: "b1", UserID: "u2", LoanDate: base, DueDate: base},
		} {
			if err := s.SaveLoanRecord(ctx, r); err != nil {
				t.Fatal(err)
			}
		}
		byUser, err := s.LoadLoanRecordsByUserID(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if len(byUser) != 2 {
			t.Errorf("got %d loans for u1, want 2", len(byUser))
		}
		byItem, err := s.LoadLoanRecordsByItemID(ctx, "b1")
		if err != nil {
			t.Fatal(err)
		}
		if len(byItem) != 2 {
			t.Errorf("got %d loans for b1, want 2", len(byItem))
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.SaveUser(ctx, models.User{ID: "u1", Name: "Alice"}); err != nil {
			t.Fatal(err)
		}
		if err := s.DeleteUser(ctx, "u1"); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}
		if err := s.DeleteUser(ctx, "u1"); err != nil {
			t.Fatalf("second DeleteUser failed: %v", err)
		}
		_, found, _ := s.LoadUser(ctx, "u1")
		if found {
			t.Error("user still present after delete")
		}
	})
}

func TestSQLiteTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("rollback discards writes", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.BeginTransaction(ctx); err != nil {
			t.Fatalf("BeginTransaction failed: %v", err)
		}
		if err := s.SaveUser(ctx, models.User{ID: "u1", Name: "Alice"}); err != nil {
			t.Fatalf("SaveUser in transaction failed: %v", err)
		}
		if err := s.RollbackTransaction(ctx); err != nil {
			t.Fatalf("RollbackTransaction failed: %v", err)
		}
		_, found, err := s.LoadUser(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if found {
			t.Error("rolled-back write is visible")
		}
	})

	t.Run("commit makes writes visible", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.BeginTransaction(ctx); err != nil {
			t.Fatal(err)
		}
		if err := s.SaveUser(ctx, models.User{ID: "u1", Name: "Alice"}); err != nil {
			t.Fatal(err)
		}
		if err := s.CommitTransaction(ctx); err != nil {
			t.Fatalf("CommitTransaction failed: %v", err)
		}
		_, found, err := s.LoadUser(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if !found {
			t.Error("committed write is not visible")
		}
	})

	t.Run("nested begin fails", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.BeginTransaction(ctx); err != nil {
			t.Fatal(err)
		}
		err := s.BeginTransaction(ctx)
		if !errors.Is(err, models.ErrOperationFailed) {
			t.Errorf("nested BeginTransaction = %v, want ErrOperationFailed", err)
		}
		if err := s.RollbackTransaction(ctx); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("commit and rollback without transaction are no-ops", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.CommitTransaction(ctx); err != nil {
			t.Errorf("CommitTransaction without begin: %v", err)
		}
		if err := s.RollbackTransaction(ctx); err != nil {
			t.Errorf("RollbackTransaction without begin: %v", err)
		}
	})
}
