package store

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/tasktrack-dev/tasktrack/internal/models"
	"github.com/tasktrack-dev/tasktrack/internal/types"
)

func seedUser(t *testing.T, users *UserStore, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", Role: role}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func seedTask(t *testing.T, tasks *TaskStore, owner uint, title string, opts ...func(*models.Task)) *models.Task {
	t.Helper()
	task := &models.Task{OwnerID: owner, Title: title, Status: models.StatusPending}
	for _, opt := range opts {
		opt(task)
	}
	if err := tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}
	return task
}

func withDue(date string) func(*models.Task) {
	return func(task *models.Task) {
		d, err := types.ParseDate(date)
		if err != nil {
			panic(err)
		}
		due := datatypes.Date(d.Time)
		task.DueDate = &due
	}
}

func withStatus(status models.TaskStatus) func(*models.Task) {
	return func(task *models.Task) {
		task.Status = status
	}
}

func withDescription(desc string) func(*models.Task) {
	return func(task *models.Task) {
		task.Description = desc
	}
}

func TestListScopesToOwner(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)

	alice := seedUser(t, users, "alice@example.com", models.RoleUser)
	bob := seedUser(t, users, "bob@example.com", models.RoleUser)
	seedTask(t, tasks, alice.ID, "alice 1")
	seedTask(t, tasks, alice.ID, "alice 2")
	seedTask(t, tasks, bob.ID, "bob 1")

	total, page, err := tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(page) != 2 {
		t.Fatalf("expected 2 tasks for alice, got total=%d len=%d", total, len(page))
	}
	for _, task := range page {
		if task.OwnerID != alice.ID {
			t.Fatalf("task %d leaked from owner %d", task.ID, task.OwnerID)
		}
	}

	total, page, err = tasks.List(context.Background(), TaskFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if total != 3 || len(page) != 3 {
		t.Fatalf("expected 3 tasks unscoped, got total=%d len=%d", total, len(page))
	}
}

func TestListTextSearchIsCaseInsensitive(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)
	alice := seedUser(t, users, "alice@example.com", models.RoleUser)

	seedTask(t, tasks, alice.ID, "Buy MILK")
	seedTask(t, tasks, alice.ID, "walk the dog", withDescription("before the Milkman arrives"))
	seedTask(t, tasks, alice.ID, "unrelated")

	total, page, err := tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, Query: "milk", Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected title and description matches, got total=%d", total)
	}
	for _, task := range page {
		if task.Title == "unrelated" {
			t.Fatal("non-matching task returned")
		}
	}
}

func TestListStatusFilter(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)
	alice := seedUser(t, users, "alice@example.com", models.RoleUser)

	seedTask(t, tasks, alice.ID, "a", withStatus(models.StatusPending))
	seedTask(t, tasks, alice.ID, "b", withStatus(models.StatusDone))
	seedTask(t, tasks, alice.ID, "c", withStatus(models.StatusDone))

	done := models.StatusDone
	total, page, err := tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, Status: &done, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(page) != 2 {
		t.Fatalf("expected 2 done tasks, got total=%d len=%d", total, len(page))
	}
}

func TestListDueDateBounds(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)
	alice := seedUser(t, users, "alice@example.com", models.RoleUser)

	seedTask(t, tasks, alice.ID, "january", withDue("2024-01-01"))
	seedTask(t, tasks, alice.ID, "june", withDue("2024-06-01"))
	seedTask(t, tasks, alice.ID, "undated")

	after, _ := types.ParseDate("2024-03-01")
	total, page, err := tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, DueAfter: &after.Time, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(page) != 1 || page[0].Title != "june" {
		t.Fatalf("due_after filter should match only the june task, got total=%d page=%+v", total, page)
	}

	// Inclusive lower bound.
	onJune, _ := types.ParseDate("2024-06-01")
	total, _, err = tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, DueAfter: &onJune.Time, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 {
		t.Fatalf("bound should be inclusive, got total=%d", total)
	}

	before, _ := types.ParseDate("2024-03-01")
	total, page, err = tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, DueBefore: &before.Time, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || page[0].Title != "january" {
		t.Fatalf("due_before filter should match only the january task, got total=%d", total)
	}

	// No date filter: undated tasks are included.
	total, _, err = tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected all 3 tasks without date filters, got total=%d", total)
	}
}

func TestListOrderingNewestFirst(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)
	alice := seedUser(t, users, "alice@example.com", models.RoleUser)

	first := seedTask(t, tasks, alice.ID, "first")
	second := seedTask(t, tasks, alice.ID, "second")
	third := seedTask(t, tasks, alice.ID, "third")

	_, page, err := tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []uint{third.ID, second.ID, first.ID}
	if len(page) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(page))
	}
	for i, task := range page {
		if task.ID != want[i] {
			t.Fatalf("position %d: got id %d, want %d", i, task.ID, want[i])
		}
	}
}

func TestListPaginationCoversAllRowsExactlyOnce(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)
	alice := seedUser(t, users, "alice@example.com", models.RoleUser)

	const count = 7
	for i := 0; i < count; i++ {
		seedTask(t, tasks, alice.ID, "task")
	}

	const limit = 3
	seen := map[uint]bool{}
	collected := 0

	for offset := 0; ; offset += limit {
		total, page, err := tasks.List(context.Background(), TaskFilter{OwnerID: &alice.ID, Limit: limit, Offset: offset})
		if err != nil {
			t.Fatalf("list offset=%d: %v", offset, err)
		}
		if total != count {
			t.Fatalf("total should ignore pagination, got %d at offset %d", total, offset)
		}
		if len(page) == 0 {
			break
		}
		for _, task := range page {
			if seen[task.ID] {
				t.Fatalf("task %d returned on more than one page", task.ID)
			}
			seen[task.ID] = true
		}
		collected += len(page)
	}

	if collected != count {
		t.Fatalf("pages covered %d rows, want %d", collected, count)
	}
}

func TestPatchRefreshesUpdatedAt(t *testing.T) {
	gdb := newTestDB(t)
	users, tasks := NewUserStore(gdb), NewTaskStore(gdb)
	alice := seedUser(t, users, "alice@example.com", models.RoleUser)
	task := seedTask(t, tasks, alice.ID, "before")

	before := task.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	if err := tasks.Patch(context.Background(), task, map[string]any{"title": "after"}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	reloaded, err := tasks.ByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Title != "after" {
		t.Fatalf("title not updated, got %q", reloaded.Title)
	}
	if !reloaded.UpdatedAt.After(before) {
		t.Fatalf("updated_at not refreshed: %v <= %v", reloaded.UpdatedAt, before)
	}
}

func TestDeleteMissingTask(t *testing.T) {
	gdb := newTestDB(t)
	tasks := NewTaskStore(gdb)

	if err := tasks.Delete(context.Background(), 12345); err == nil {
		t.Fatal("expected not-found error")
	}
}
