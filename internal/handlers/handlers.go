package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/store"
)

// Handler carries the shared dependencies of every endpoint. The clock
// is injectable so date-sensitive views can be tested.
type Handler struct {
	store *store.Store
	log   *zap.Logger
	now   func() time.Time
}

func New(s *store.Store, log *zap.Logger) *Handler {
	return &Handler{store: s, log: log, now: time.Now}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, store.ErrWorkActive),
		errors.Is(err, store.ErrNoWorkSession),
		errors.Is(err, store.ErrNotSubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// confirmed gates destructive endpoints behind an explicit
// ?confirm=true query parameter.
func confirmed(c *gin.Context) bool {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required: pass confirm=true"})
		return false
	}
	return true
}

func sendXLSX(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
