package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

// Risks lists projects past their expected submission date that have
// not been submitted, with optional sector/department filters.
func (h *Handler) Risks(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}

	atRisk := planner.AtRiskProjects(projects, h.now())
	sector := c.Query("sector")
	department := c.Query("department")
	out := make([]models.Project, 0, len(atRisk))
	for _, p := range atRisk {
		if sector != "" && p.Sector != sector {
			continue
		}
		if department != "" && p.Department != department {
			continue
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

// RiskReminder composes the combined overdue-submission email for the
// currently at-risk projects. An ids list in the body restricts it to
// those projects.
func (h *Handler) RiskReminder(c *gin.Context) {
	var sel reminderSelection
	if !bindSelection(c, &sel) {
		return
	}
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}
	points, err := h.store.FocalPoints()
	if err != nil {
		h.fail(c, err)
		return
	}

	now := h.now()
	eligible := planner.AtRiskProjects(projects, now)
	atRisk := make([]models.Project, 0, len(eligible))
	for _, p := range eligible {
		if sel.keeps(p.ID) {
			atRisk = append(atRisk, p)
		}
	}
	if len(atRisk) == 0 {
		badRequest(c, "no projects are at risk")
		return
	}
	msg, ok := planner.ComposeOverdueReminder(atRisk, points, now)
	if !ok {
		badRequest(c, "no focal point matches the at-risk projects")
		return
	}
	c.JSON(http.StatusOK, msg)
}
