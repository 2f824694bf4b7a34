// Package service implements the mutation workflows and query orchestration
// on top of the stores. Every operation takes the authenticated actor and
// consults the authorization policy before touching the store; existence is
// always resolved before authorization.
package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tasktrack-dev/tasktrack/internal/apperr"
	"github.com/tasktrack-dev/tasktrack/internal/authz"
	"github.com/tasktrack-dev/tasktrack/internal/models"
	"github.com/tasktrack-dev/tasktrack/internal/store"
	"github.com/tasktrack-dev/tasktrack/internal/types"
)

const DefaultPageSize = 20

type TaskService struct {
	tasks *store.TaskStore
}

func NewTaskService(tasks *store.TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

type TaskCreate struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	DueDate     *types.Date `json:"due_date"`
}

// TaskUpdate carries PATCH semantics: only fields present in the payload are
// applied. Description and due date accept an explicit null to clear them;
// title and status must carry a value when present.
type TaskUpdate struct {
	Title       types.Optional[string]     `json:"title"`
	Description types.Optional[string]     `json:"description"`
	DueDate     types.Optional[types.Date] `json:"due_date"`
	Status      types.Optional[string]     `json:"status"`
}

// TaskListParams describes one list request. All is a request to bypass
// ownership scoping and only takes effect for admins.
type TaskListParams struct {
	All       bool
	Query     string
	Status    string
	DueAfter  *types.Date
	DueBefore *types.Date
	Limit     int
	Offset    int
}

func (s *TaskService) Create(ctx context.Context, actor authz.Actor, in TaskCreate) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	now := time.Now()
	task := &models.Task{
		OwnerID:     actor.ID,
		Title:       title,
		Description: in.Description,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		d := datatypes.Date(in.DueDate.Time)
		task.DueDate = &d
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, actor authz.Actor, id uint) (*models.Task, error) {
	task, err := s.tasks.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccess(actor, task.OwnerID) {
		return nil, apperr.ErrForbidden
	}
	return task, nil
}

// List builds the scoped, filtered, paginated view. Non-admins asking for
// All are silently scoped back to their own tasks.
func (s *TaskService) List(ctx context.Context, actor authz.Actor, p TaskListParams) (int64, []models.Task, error) {
	filter := store.TaskFilter{
		Query:  p.Query,
		Limit:  normalizeLimit(p.Limit),
		Offset: max(p.Offset, 0),
	}

	if !(p.All && authz.CanAdminister(actor)) {
		owner := actor.ID
		filter.OwnerID = &owner
	}

	if p.Status != "" {
		status := models.TaskStatus(p.Status)
		if !status.Valid() {
			return 0, nil, apperr.Validation("invalid status %q", p.Status)
		}
		filter.Status = &status
	}
	if p.DueAfter != nil {
		filter.DueAfter = &p.DueAfter.Time
	}
	if p.DueBefore != nil {
		filter.DueBefore = &p.DueBefore.Time
	}

	return s.tasks.List(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, actor authz.Actor, id uint, in TaskUpdate) (*models.Task, error) {
	task, err := s.tasks.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccess(actor, task.OwnerID) {
		return nil, apperr.ErrForbidden
	}

	fields := map[string]any{}

	if in.Title.Set {
		title := strings.TrimSpace(in.Title.Value)
		if !in.Title.Valid || title == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		fields["title"] = title
	}
	if in.Description.Set {
		if in.Description.Valid {
			fields["description"] = in.Description.Value
		} else {
			fields["description"] = ""
		}
	}
	if in.DueDate.Set {
		if in.DueDate.Valid {
			fields["due_date"] = datatypes.Date(in.DueDate.Value.Time)
		} else {
			fields["due_date"] = nil
		}
	}
	if in.Status.Set {
		status := models.TaskStatus(in.Status.Value)
		if !in.Status.Valid || !status.Valid() {
			return nil, apperr.Validation("invalid status %q", in.Status.Value)
		}
		fields["status"] = status
	}

	// An empty partial input is a no-op: nothing is written and updated_at
	// keeps its previous value.
	if len(fields) == 0 {
		return task, nil
	}

	if err := s.tasks.Patch(ctx, task, fields); err != nil {
		return nil, err
	}
	return s.tasks.ByID(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	task, err := s.tasks.ByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanAccess(actor, task.OwnerID) {
		return apperr.ErrForbidden
	}
	return s.tasks.Delete(ctx, id)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return limit
}
