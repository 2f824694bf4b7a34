package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack-dev/tasktrack/internal/service"
	"github.com/tasktrack-dev/tasktrack/internal/types"
	"github.com/tasktrack-dev/tasktrack/internal/utils"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req service.TaskCreate

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Create(ctx.Request.Context(), actor, req)

	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(task))
}

// List handles GET /tasks. Query parameters: limit, offset, q, status,
// due_after, due_before (inclusive calendar-date bounds), and all=true to
// request the unscoped admin view.
func (h *TaskHandler) List(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	params := service.TaskListParams{
		All:    ctx.Query("all") == "true",
		Query:  ctx.Query("q"),
		Status: ctx.Query("status"),
		Limit:  service.DefaultPageSize,
	}

	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		params.Limit = limit
	}
	if raw := ctx.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		params.Offset = offset
	}
	if raw := ctx.Query("due_after"); raw != "" {
		date, err := types.ParseDate(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "due_after must be a YYYY-MM-DD date"})
			return
		}
		params.DueAfter = &date
	}
	if raw := ctx.Query("due_before"); raw != "" {
		date, err := types.ParseDate(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "due_before must be a YYYY-MM-DD date"})
			return
		}
		params.DueBefore = &date
	}

	total, tasks, err := h.tasks.List(ctx.Request.Context(), actor, params)

	if err != nil {
		writeError(ctx, err)
		return
	}

	items := make([]types.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, types.NewTaskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, types.TaskListResponse{
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
		Items:  items,
	})
}

func (h *TaskHandler) Get(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := taskID(ctx)
	if !ok {
		return
	}

	task, err := h.tasks.Get(ctx.Request.Context(), actor, id)

	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func (h *TaskHandler) Update(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := taskID(ctx)
	if !ok {
		return
	}

	var req service.TaskUpdate

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Update(ctx.Request.Context(), actor, id, req)

	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func (h *TaskHandler) Delete(ctx *gin.Context) {
	actor, err := utils.GetActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := taskID(ctx)
	if !ok {
		return
	}

	if err := h.tasks.Delete(ctx.Request.Context(), actor, id); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func taskID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("task_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return 0, false
	}
	return uint(id), true
}
