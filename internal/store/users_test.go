package store

import (
	"context"
	"errors"
	"testing"

	"github.com/tasktrack-dev/tasktrack/internal/apperr"
	"github.com/tasktrack-dev/tasktrack/internal/models"
)

func TestDuplicateEmailIsConflict(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserStore(gdb)

	seedUser(t, users, "alice@example.com", models.RoleUser)

	dup := &models.User{Email: "alice@example.com", PasswordHash: "x", Role: models.RoleUser}
	err := users.Create(context.Background(), dup)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateToTakenEmailIsConflict(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserStore(gdb)

	seedUser(t, users, "alice@example.com", models.RoleUser)
	bob := seedUser(t, users, "bob@example.com", models.RoleUser)

	bob.Email = "alice@example.com"
	err := users.Update(context.Background(), bob)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteCascadesOverTasks(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)

	alice := seedUser(t, users, "alice@example.com", models.RoleUser)
	bob := seedUser(t, users, "bob@example.com", models.RoleUser)

	owned := []*models.Task{
		seedTask(t, tasks, alice.ID, "one"),
		seedTask(t, tasks, alice.ID, "two"),
		seedTask(t, tasks, alice.ID, "three"),
	}
	kept := seedTask(t, tasks, bob.ID, "bob keeps this")

	if err := users.Delete(context.Background(), alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := users.ByID(context.Background(), alice.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("user should be gone, got %v", err)
	}
	for _, task := range owned {
		if _, err := tasks.ByID(context.Background(), task.ID); !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("task %d should be gone, got %v", task.ID, err)
		}
	}
	if _, err := tasks.ByID(context.Background(), kept.ID); err != nil {
		t.Fatalf("unrelated task must survive the cascade: %v", err)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserStore(gdb)

	if err := users.Delete(context.Background(), 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	gdb := newTestDB(t)
	users := NewUserStore(gdb)

	seedUser(t, users, "first@example.com", models.RoleUser)
	seedUser(t, users, "second@example.com", models.RoleUser)

	list, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Email != "second@example.com" {
		t.Fatalf("expected newest first, got %+v", list)
	}
}
