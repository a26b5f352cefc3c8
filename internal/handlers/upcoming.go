package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

// Upcoming lists next month's unsubmitted procurement items sorted by
// recommended PR date. The view opens on the 24th of the current month;
// before that it reports itself unavailable.
func (h *Handler) Upcoming(c *gin.Context) {
	now := h.now()
	if now.Day() < 24 {
		c.JSON(http.StatusOK, gin.H{
			"available":     false,
			"availableFrom": 24,
			"items":         []models.ProcurementItem{},
		})
		return
	}

	month, year := planner.NextMonth(now)
	items, err := h.store.Items()
	if err != nil {
		h.fail(c, err)
		return
	}
	upcoming := planner.UpcomingItems(items, month, year)
	if upcoming == nil {
		upcoming = []models.ProcurementItem{}
	}
	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"month":     month.String(),
		"year":      year,
		"items":     upcoming,
	})
}

// reminderSelection narrows a reminder to specific records. An absent
// body or empty list means every eligible record.
type reminderSelection struct {
	IDs []uint `json:"ids"`
}

func bindSelection(c *gin.Context, sel *reminderSelection) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(sel); err != nil {
		badRequest(c, err.Error())
		return false
	}
	return true
}

func (s reminderSelection) keeps(id uint) bool {
	if len(s.IDs) == 0 {
		return true
	}
	for _, want := range s.IDs {
		if want == id {
			return true
		}
	}
	return false
}

// UpcomingReminders composes one reminder per (sector, department) group
// and matching focal point for next month's items, reporting which
// groups were skipped for lack of a contact. An ids list in the body
// restricts composition to those items.
func (h *Handler) UpcomingReminders(c *gin.Context) {
	now := h.now()
	if now.Day() < 24 {
		badRequest(c, "upcoming reminders open on the 24th of the month")
		return
	}
	var sel reminderSelection
	if !bindSelection(c, &sel) {
		return
	}

	month, year := planner.NextMonth(now)
	items, err := h.store.Items()
	if err != nil {
		h.fail(c, err)
		return
	}
	points, err := h.store.FocalPoints()
	if err != nil {
		h.fail(c, err)
		return
	}

	eligible := planner.UpcomingItems(items, month, year)
	selected := make([]models.ProcurementItem, 0, len(eligible))
	for _, it := range eligible {
		if sel.keeps(it.ID) {
			selected = append(selected, it)
		}
	}

	batch := planner.ComposeUpcomingReminders(selected, points, month, year)
	if batch.Messages == nil {
		batch.Messages = []planner.Message{}
	}
	if batch.Skipped == nil {
		batch.Skipped = []planner.SkippedGroup{}
	}
	c.JSON(http.StatusOK, batch)
}
