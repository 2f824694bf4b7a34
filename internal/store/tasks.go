package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tasktrack-dev/tasktrack/internal/apperr"
	"github.com/tasktrack-dev/tasktrack/internal/models"
)

type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// TaskFilter describes one list query. A nil OwnerID means no ownership
// scoping (admin listing across all owners); filters compose with AND.
type TaskFilter struct {
	OwnerID   *uint
	Query     string
	Status    *models.TaskStatus
	DueAfter  *time.Time
	DueBefore *time.Time
	Limit     int
	Offset    int
}

// List returns the total count over the full filtered set and one ordered
// page. Ordering is creation time descending with id descending as the
// tie-break, so pages are stable for a fixed snapshot. Due-date bounds are
// inclusive and only ever match tasks that have a due date.
func (s *TaskStore) List(ctx context.Context, f TaskFilter) (int64, []models.Task, error) {
	q := s.db.WithContext(ctx).Model(&models.Task{})

	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.DueAfter != nil {
		q = q.Where("due_date IS NOT NULL AND due_date >= ?", *f.DueAfter)
	}
	if f.DueBefore != nil {
		q = q.Where("due_date IS NOT NULL AND due_date <= ?", *f.DueBefore)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, translate(err)
	}

	var tasks []models.Task
	if err := q.Order("created_at DESC, id DESC").Limit(f.Limit).Offset(f.Offset).Find(&tasks).Error; err != nil {
		return 0, nil, translate(err)
	}
	return total, tasks, nil
}

func (s *TaskStore) Create(ctx context.Context, t *models.Task) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *TaskStore) ByID(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// Patch applies the given column values to the task row in one statement.
// gorm refreshes updated_at as part of the same write.
func (s *TaskStore) Patch(ctx context.Context, t *models.Task, fields map[string]any) error {
	if err := s.db.WithContext(ctx).Model(t).Updates(fields).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
