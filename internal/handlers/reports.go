package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/r4mxae/project-hub/internal/export"
	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

// Savings reports budget outcome per completed project plus totals.
func (h *Handler) Savings(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}
	report := planner.BuildSavings(projects)
	if report.Rows == nil {
		report.Rows = []planner.SavingsRow{}
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) ExportSavings(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}
	buf, err := export.SavingsWorkbook(planner.BuildSavings(projects))
	if err != nil {
		h.fail(c, err)
		return
	}
	sendXLSX(c, "savings.xlsx", buf.Bytes())
}

// Completed lists the completed projects and the completed tasks, the
// latter with resolved project names.
func (h *Handler) Completed(c *gin.Context) {
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

	doneProjects := make([]models.Project, 0)
	for _, p := range projects {
		if p.Status == models.ProjectCompleted {
			doneProjects = append(doneProjects, p)
		}
	}
	doneTasks := make([]TaskView, 0)
	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			doneTasks = append(doneTasks, TaskView{
				Task:        t,
				ProjectName: planner.ProjectName(projects, t.ProjectID),
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"projects": doneProjects, "tasks": doneTasks})
}

func (h *Handler) ExportCompleted(c *gin.Context) {
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

	var doneProjects []models.Project
	for _, p := range projects {
		if p.Status == models.ProjectCompleted {
			doneProjects = append(doneProjects, p)
		}
	}
	var doneTasks []models.Task
	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			doneTasks = append(doneTasks, t)
		}
	}

	buf, err := export.CompletedWorkbook(doneProjects, doneTasks, projects)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendXLSX(c, "completed.xlsx", buf.Bytes())
}

// ExportProject downloads one project's full detail workbook.
func (h *Handler) ExportProject(c *gin.Context) {
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
	sendXLSX(c, "project-"+c.Param("id")+".xlsx", buf.Bytes())
}

// ExportTask downloads one task's full detail workbook.
func (h *Handler) ExportTask(c *gin.Context) {
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
	sendXLSX(c, "task-"+c.Param("id")+".xlsx", buf.Bytes())
}

// Analysis returns the cross-collection report.
func (h *Handler) Analysis(c *gin.Context) {
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
	c.JSON(http.StatusOK, planner.BuildAnalysis(projects, tasks, items, h.now()))
}

// ExportAnalysis renders the analysis report as a PDF.
func (h *Handler) ExportAnalysis(c *gin.Context) {
	if format := c.Query("format"); format != "" && format != "pdf" {
		badRequest(c, "unsupported format: "+format)
		return
	}

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

	now := h.now()
	buf, err := export.AnalysisPDF(planner.BuildAnalysis(projects, tasks, items, now), now)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="analysis.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
