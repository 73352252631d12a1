package service

import (
	"context"
	"errors"
	"testing"

	"libris/internal/models"
	"libris/internal/storage/memory"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()

	t.Run("add and find", func(t *testing.T) {
		users := NewUserService(memory.New())
		if err := users.AddUser(ctx, "u1", "Alice"); err != nil {
			t.Fatalf("AddUser failed: %v", err)
		}

		user, found, err := users.FindUserByID(ctx, "u1")
		if err != nil || !found {
			t.Fatalf("FindUserByID = (%v, %v), want found", found, err)
		}
		if user.Name != "Alice" {
			t.Errorf("user name %q", user.Name)
		}
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		users := NewUserService(memory.New())
		if err := users.AddUser(ctx, "u1", "Alice"); err != nil {
			t.Fatal(err)
		}
		err := users.AddUser(ctx, "u1", "Bob")
		if !errors.Is(err, models.ErrOperationFailed) {
			t.Errorf("duplicate AddUser = %v, want ErrOperationFailed", err)
		}
	})

	t.Run("empty fields are rejected", func(t *testing.T) {
		users := NewUserService(memory.New())
		if err := users.AddUser(ctx, "", "Alice"); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("AddUser with empty id = %v, want ErrInvalidArgument", err)
		}
		if err := users.AddUser(ctx, "u1", ""); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("AddUser with empty name = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("find by name matches exactly", func(t *testing.T) {
		users := NewUserService(memory.New())
		for id, name := range map[string]string{"u1": "Alice", "u2": "Bob", "u3": "Alice"} {
			if err := users.AddUser(ctx, id, name); err != nil {
				t.Fatal(err)
			}
		}
		matches, err := users.FindUsersByName(ctx, "Alice")
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 2 {
			t.Errorf("got %d users named Alice, want 2", len(matches))
		}
	})

	t.Run("update renames an existing user", func(t *testing.T) {
		users := NewUserService(memory.New())
		if err := users.AddUser(ctx, "u1", "Alice"); err != nil {
			t.Fatal(err)
		}
		if err := users.UpdateUser(ctx, "u1", "Alicia"); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}
		user, _, err := users.FindUserByID(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if user.Name != "Alicia" {
			t.Errorf("name after update %q", user.Name)
		}
	})

	t.Run("update of missing user is ErrNotFound", func(t *testing.T) {
		users := NewUserService(memory.New())
		err := users.UpdateUser(ctx, "ghost", "Nobody")
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("UpdateUser = %v, want ErrNotFound", err)
		}
	})

	t.Run("remove reports whether anything was removed", func(t *testing.T) {
		users := NewUserService(memory.New())
		if err := users.AddUser(ctx, "u1", "Alice"); err != nil {
			t.Fatal(err)
		}
		removed, err := users.RemoveUser(ctx, "u1")
		if err != nil || !removed {
			t.Fatalf("RemoveUser = (%v, %v), want (true, nil)", removed, err)
		}
		removed, err = users.RemoveUser(ctx, "u1")
		if err != nil {
			t.Fatalf("second RemoveUser failed: %v", err)
		}
		if removed {
			t.Error("RemoveUser = true for a missing user")
		}
	})
}
