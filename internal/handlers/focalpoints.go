package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/r4mxae/project-hub/internal/models"
)

type focalPointRequest struct {
	Name        string `json:"name" binding:"required"`
	Sector      string `json:"sector" binding:"required"`
	Department  string `json:"department" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r focalPointRequest) apply(fp *models.FocalPoint) {
	fp.Name = r.Name
	fp.Sector = r.Sector
	fp.Department = r.Department
	fp.Email = r.Email
	fp.PhoneNumber = r.PhoneNumber
}

func (h *Handler) ListFocalPoints(c *gin.Context) {
	points, err := h.store.FocalPoints()
	if err != nil {
		h.fail(c, err)
		return
	}

	sector := c.Query("sector")
	search := strings.ToLower(c.Query("search"))
	out := make([]models.FocalPoint, 0, len(points))
	for _, fp := range points {
		if sector != "" && fp.Sector != sector {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(fp.Name), search) &&
			!strings.Contains(strings.ToLower(fp.Department), search) {
			continue
		}
		out = append(out, fp)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateFocalPoint(c *gin.Context) {
	var req focalPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var fp models.FocalPoint
	req.apply(&fp)
	if err := h.store.CreateFocalPoint(&fp); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, fp)
}

func (h *Handler) UpdateFocalPoint(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req focalPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fp, err := h.store.FocalPointByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	req.apply(&fp)
	if err := h.store.UpdateFocalPoint(&fp); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fp)
}

func (h *Handler) DeleteFocalPoint(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		return
	}
	if err := h.store.DeleteFocalPoint(id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
