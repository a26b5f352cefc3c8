package handlers

import (
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/models"
)

type projectRequest struct {
	Name                   string  `json:"name" binding:"required"`
	Description            string  `json:"description"`
	Status                 string  `json:"status" binding:"required"`
	Sector                 string  `json:"sector"`
	Department             string  `json:"department"`
	StartDate              string  `json:"startDate"`
	EndDate                string  `json:"endDate"`
	ExpectedSubmissionDate string  `json:"expectedSubmissionDate"`
	Budget                 float64 `json:"budget"`
	Spent                  float64 `json:"spent"`
	PRNumber               string  `json:"prNumber"`
	NegotiationNumber      string  `json:"negotiationNumber"`
}

func (r projectRequest) apply(p *models.Project) {
	p.Name = r.Name
	p.Description = r.Description
	p.Status = models.ProjectStatus(r.Status)
	p.Sector = r.Sector
	p.Department = r.Department
	p.StartDate = r.StartDate
	p.EndDate = r.EndDate
	p.ExpectedSubmissionDate = r.ExpectedSubmissionDate
	p.Budget = r.Budget
	p.Spent = r.Spent
	p.Progress = progress(r.Spent, r.Budget)
	p.PRNumber = r.PRNumber
	p.NegotiationNumber = r.NegotiationNumber
}

// progress derives completion from spend, capped at 100.
func progress(spent, budget float64) int {
	if budget <= 0 {
		return 0
	}
	return int(math.Min(100, math.Round(spent/budget*100)))
}

// ListProjects supports status and free-text search filters.
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}

	status := c.Query("status")
	search := strings.ToLower(c.Query("search"))
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if status != "" && string(p.Status) != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.store.ProjectByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !models.ProjectStatus(req.Status).Valid() {
		badRequest(c, "invalid status")
		return
	}

	var p models.Project
	req.apply(&p)
	if err := h.store.CreateProject(&p); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("project created", zap.Uint("id", p.ID), zap.String("name", p.Name))
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !models.ProjectStatus(req.Status).Valid() {
		badRequest(c, "invalid status")
		return
	}

	p, err := h.store.ProjectByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	req.apply(&p)
	if err := h.store.UpdateProject(&p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject removes the project and everything under it. Requires
// confirm=true.
func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	if err := h.store.DeleteProject(id); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("project deleted", zap.Uint("id", id))
	c.Status(http.StatusNoContent)
}

// SubmitProject stamps the submission flag with today's date.
func (h *Handler) SubmitProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.store.MarkProjectSubmitted(id, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
