package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

// TaskView is a task plus its project name, resolved at render time from
// the project collection.
type TaskView struct {
	models.Task
	ProjectName string `json:"projectName"`
}

type taskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ProjectID   uint   `json:"projectId" binding:"required"`
	Status      string `json:"status" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"dueDate"`
}

func (r taskRequest) apply(t *models.Task) {
	t.Title = r.Title
	t.Description = r.Description
	t.ProjectID = r.ProjectID
	t.Status = models.TaskStatus(r.Status)
	t.Priority = models.TaskPriority(r.Priority)
	t.Assignee = r.Assignee
	t.DueDate = r.DueDate
}

func (r taskRequest) validate(c *gin.Context) bool {
	if !models.TaskStatus(r.Status).Valid() {
		badRequest(c, "invalid status")
		return false
	}
	if !models.TaskPriority(r.Priority).Valid() {
		badRequest(c, "invalid priority")
		return false
	}
	return true
}

func (h *Handler) taskViews(tasks []models.Task) ([]TaskView, error) {
	projects, err := h.store.Projects()
	if err != nil {
		return nil, err
	}
	out := make([]TaskView, len(tasks))
	for i, t := range tasks {
		out[i] = TaskView{Task: t, ProjectName: planner.ProjectName(projects, t.ProjectID)}
	}
	return out, nil
}

// ListTasks supports status, priority, projectId and free-text search
// filters.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.store.Tasks()
	if err != nil {
		h.fail(c, err)
		return
	}

	status := c.Query("status")
	priority := c.Query("priority")
	project := c.Query("projectId")
	search := strings.ToLower(c.Query("search"))
	filtered := tasks[:0]
	for _, t := range tasks {
		if status != "" && string(t.Status) != status {
			continue
		}
		if priority != "" && string(t.Priority) != priority {
			continue
		}
		if project != "" {
			id, ok := parseUintQuery(project)
			if !ok || t.ProjectID != id {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	views, err := h.taskViews(filtered)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func parseUintQuery(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err == nil
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	t, err := h.store.TaskByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	views, err := h.taskViews([]models.Task{t})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views[0])
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	t := models.Task{CreatedDate: planner.FormatDMY(h.now())}
	req.apply(&t)
	if err := h.store.CreateTask(&t); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("task created", zap.Uint("id", t.ID), zap.Uint("projectId", t.ProjectID))
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	t, err := h.store.TaskByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	req.apply(&t)
	if err := h.store.UpdateTask(&t); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	if err := h.store.DeleteTask(id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
