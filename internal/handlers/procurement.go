package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/export"
	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

type itemRequest struct {
	Item                        string  `json:"item" binding:"required"`
	Sector                      string  `json:"sector"`
	Department                  string  `json:"department"`
	ItemDescription             string  `json:"itemDescription"`
	Category                    string  `json:"category" binding:"required"`
	AwardedBefore               string  `json:"awardedBefore"`
	RecommendedPRDate           string  `json:"recommendedPRDate"`
	AllocatedBudget             float64 `json:"allocatedBudget"`
	RequestedPreviously         string  `json:"requestedPreviously"`
	PrequalificationRecommended string  `json:"prequalificationRecommended"`
	RecommendedVendors          string  `json:"recommendedVendors"`
	AdditionalInformation       string  `json:"additionalInformation"`
	ItemReference               string  `json:"itemReference"`
	Status                      string  `json:"status"`
}

func (r itemRequest) apply(it *models.ProcurementItem) {
	it.Item = r.Item
	it.Sector = r.Sector
	it.Department = r.Department
	it.ItemDescription = r.ItemDescription
	it.Category = r.Category
	it.AwardedBefore = r.AwardedBefore
	it.RecommendedPRDate = r.RecommendedPRDate
	it.AllocatedBudget = r.AllocatedBudget
	it.RequestedPreviously = r.RequestedPreviously
	it.PrequalificationRecommended = r.PrequalificationRecommended
	it.RecommendedVendors = r.RecommendedVendors
	it.AdditionalInformation = r.AdditionalInformation
	it.ItemReference = r.ItemReference
	if r.Status != "" {
		it.Status = models.ItemStatus(r.Status)
	}
}

func (r itemRequest) validate(c *gin.Context) bool {
	if !slices.Contains(models.Categories, r.Category) {
		badRequest(c, "invalid category")
		return false
	}
	if r.Status != "" && !models.ItemStatus(r.Status).Valid() {
		badRequest(c, "invalid status")
		return false
	}
	return true
}

// ListItems supports submitted, category, sector and free-text search
// filters.
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.store.Items()
	if err != nil {
		h.fail(c, err)
		return
	}

	submitted := c.Query("submitted")
	category := c.Query("category")
	sector := c.Query("sector")
	search := strings.ToLower(c.Query("search"))
	out := make([]models.ProcurementItem, 0, len(items))
	for _, it := range items {
		if submitted == "true" && !it.IsSubmitted {
			continue
		}
		if submitted == "false" && it.IsSubmitted {
			continue
		}
		if category != "" && it.Category != category {
			continue
		}
		if sector != "" && it.Sector != sector {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Item), search) &&
			!strings.Contains(strings.ToLower(it.ItemDescription), search) {
			continue
		}
		out = append(out, it)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	it, err := h.store.ItemByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	it := models.ProcurementItem{Status: models.ItemPending}
	req.apply(&it)
	if err := h.store.CreateItem(&it); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("procurement item created", zap.Uint("id", it.ID))
	c.JSON(http.StatusCreated, it)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	it, err := h.store.ItemByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	req.apply(&it)
	if err := h.store.UpdateItem(&it); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	if err := h.store.DeleteItem(id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitItem marks the item submitted and creates its tracking project
// in the same transaction.
func (h *Handler) SubmitItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	it, err := h.store.MarkItemSubmitted(id, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("procurement item submitted",
		zap.Uint("id", id), zap.Uintp("projectId", it.ProjectID))
	c.JSON(http.StatusOK, it)
}

// RevertItem undoes a submission: the tracking project is deleted, along
// with any edits made to it since. Requires confirm=true.
func (h *Handler) RevertItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	it, err := h.store.RevertItemSubmission(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("procurement submission reverted", zap.Uint("id", id))
	c.JSON(http.StatusOK, it)
}

// UnplannedProjects lists projects no procurement item references.
func (h *Handler) UnplannedProjects(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.fail(c, err)
		return
	}
	items, err := h.store.Items()
	if err != nil {
		h.fail(c, err)
		return
	}
	out := planner.UnplannedProjects(projects, items)
	if out == nil {
		out = []models.Project{}
	}
	c.JSON(http.StatusOK, out)
}

// ItemUrgency returns the {overdue, urgent, soon} counts over
// unsubmitted items.
func (h *Handler) ItemUrgency(c *gin.Context) {
	items, err := h.store.Items()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, planner.BuildUrgencyStats(items, h.now()))
}

// ExportItems downloads the procurement plan as a workbook.
func (h *Handler) ExportItems(c *gin.Context) {
	items, err := h.store.Items()
	if err != nil {
		h.fail(c, err)
		return
	}
	buf, err := export.ProcurementWorkbook(items)
	if err != nil {
		h.fail(c, err)
		return
	}
	sendXLSX(c, "procurement-plan.xlsx", buf.Bytes())
}
