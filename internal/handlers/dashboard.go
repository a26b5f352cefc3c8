package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r4mxae/project-hub/internal/planner"
)

// Dashboard returns the stats block and the current notification list.
func (h *Handler) Dashboard(c *gin.Context) {
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
	items, err := h.store.Items()
	if err != nil {
		h.fail(c, err)
		return
	}

	today := h.now()
	notifications := planner.BuildNotifications(projects, tasks, today)
	if notifications == nil {
		notifications = []planner.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":       planner.BuildDashboard(projects, tasks, items, today),
		"notifications": notifications,
	})
}
