package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/export"
)

// InspectImport reads the first sheet of an uploaded workbook and
// returns its headers and rows so the client can build a column mapping.
func (h *Handler) InspectImport(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "missing file upload")
		return
	}
	defer file.Close()

	sheet, err := export.Inspect(file)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"headers":  sheet.Headers,
		"rowCount": len(sheet.Rows),
		"rows":     sheet.Rows,
	})
}

type importRequest struct {
	Rows    [][]string     `json:"rows" binding:"required"`
	Mapping map[string]int `json:"mapping" binding:"required"`
}

// ImportItems converts mapped rows into procurement items and inserts
// them in one transaction. A bad row rejects the whole batch and leaves
// the store untouched.
func (h *Handler) ImportItems(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	items, err := export.MapItems(req.Rows, req.Mapping)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.store.CreateItems(items); err != nil {
		h.fail(c, err)
		return
	}

	batch := uuid.NewString()
	h.log.Info("procurement plan imported",
		zap.String("batch", batch), zap.Int("items", len(items)))
	c.JSON(http.StatusCreated, gin.H{"batch": batch, "imported": len(items)})
}
