package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/tasktrack-dev/tasktrack/db"
	"github.com/tasktrack-dev/tasktrack/internal/authz"
	"github.com/tasktrack-dev/tasktrack/internal/models"
	"github.com/tasktrack-dev/tasktrack/internal/store"
)

func newTestServices(t *testing.T) (*UserService, *TaskService) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewUserService(store.NewUserStore(gdb)), NewTaskService(store.NewTaskStore(gdb))
}

// registerActor registers a fresh user and returns its policy actor.
func registerActor(t *testing.T, users *UserService, email string) authz.Actor {
	t.Helper()
	u, err := users.Register(context.Background(), email, "password123")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return authz.Actor{ID: u.ID, Role: u.Role}
}

// registerAdmin registers a user and elevates it directly through the store,
// the same way an operator would seed the first admin.
func registerAdmin(t *testing.T, users *UserService, email string) authz.Actor {
	t.Helper()
	u, err := users.Register(context.Background(), email, "password123")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	u.Role = models.RoleAdmin
	if err := users.users.Update(context.Background(), u); err != nil {
		t.Fatalf("elevate %s: %v", email, err)
	}
	return authz.Actor{ID: u.ID, Role: models.RoleAdmin}
}
