package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/export"
	"github.com/r4mxae/project-hub/internal/planner"
)

type stopWorkRequest struct {
	LogUpdate      string `json:"logUpdate"`
	UpcomingAction string `json:"upcomingAction"`
}

// ActiveWork reports the one running timer, if any. The response carries
// elapsed seconds so the client clock never matters.
func (h *Handler) ActiveWork(c *gin.Context) {
	active, err := h.store.Active(h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	if active == nil {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "session": active})
}

func (h *Handler) StartProjectWork(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.store.StartProjectWork(id, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("work started", zap.Uint("projectId", id))
	c.JSON(http.StatusOK, p)
}

// StopProjectWork closes the timer. A blank log update discards the
// session without writing a work log.
func (h *Handler) StopProjectWork(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req stopWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.store.StopProjectWork(id, req.LogUpdate, req.UpcomingAction, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) StartTaskWork(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	t, err := h.store.StartTaskWork(id, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("work started", zap.Uint("taskId", id))
	c.JSON(http.StatusOK, t)
}

func (h *Handler) StopTaskWork(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req stopWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := h.store.StopTaskWork(id, req.LogUpdate, req.UpcomingAction, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ExportProjectWorkLogs downloads one project's log history as a
// workbook.
func (h *Handler) ExportProjectWorkLogs(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.store.ProjectByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	buf, err := export.ProjectWorkbook(p)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendXLSX(c, fmt.Sprintf("worklogs-project-%d.xlsx", id), buf.Bytes())
}

// ExportTaskWorkLogs downloads one task's log history as a workbook.
func (h *Handler) ExportTaskWorkLogs(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	t, err := h.store.TaskByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}
	buf, err := export.TaskWorkbook(t, planner.ProjectName(projects, t.ProjectID))
	if err != nil {
		h.fail(c, err)
		return
	}
	sendXLSX(c, fmt.Sprintf("worklogs-task-%d.xlsx", id), buf.Bytes())
}

// ExportAllWorkLogs downloads every work log across projects and tasks.
func (h *Handler) ExportAllWorkLogs(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}
	tasks, err := h.store.Tasks()
	if err != nil {
		h.fail(c, err)
		return
	}
	buf, err := export.WorkLogsWorkbook(projects, tasks)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendXLSX(c, "worklogs.xlsx", buf.Bytes())
}
