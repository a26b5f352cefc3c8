package handlers

import (
	"io"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/export"
	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/store"
)

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.store.Profile()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type profileRequest struct {
	Name             string `json:"name" binding:"required"`
	Designation      string `json:"designation"`
	Mobile           string `json:"mobile"`
	Email            string `json:"email" binding:"omitempty,email"`
	DataSaveLocation string `json:"dataSaveLocation"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	profile := models.UserProfile{
		Name:             req.Name,
		Designation:      req.Designation,
		Mobile:           req.Mobile,
		Email:            req.Email,
		DataSaveLocation: req.DataSaveLocation,
	}
	if err := h.store.SaveProfile(&profile); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ExportBackup downloads the entire dataset as one JSON document.
func (h *Handler) ExportBackup(c *gin.Context) {
	snap, err := h.store.Snapshot()
	if err != nil {
		h.fail(c, err)
		return
	}
	backup := export.NewBackup(snap.Profile, snap.Projects, snap.Tasks, snap.Items, snap.FocalPoints, h.now())
	c.Header("Content-Disposition", `attachment; filename="project-hub-backup.json"`)
	c.JSON(http.StatusOK, backup)
}

// ImportBackup validates an uploaded backup and replaces the whole
// dataset with it. Nothing changes when validation fails.
func (h *Handler) ImportBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "cannot read request body")
		return
	}
	backup, err := export.ParseBackup(data)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	snap := store.Snapshot{
		Projects:    backup.Projects,
		Tasks:       backup.Tasks,
		Items:       backup.Items,
		FocalPoints: backup.FocalPoints,
	}
	if backup.UserSettings != nil {
		snap.Profile = *backup.UserSettings
	}
	if err := h.store.ReplaceAll(snap); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("backup restored",
		zap.Int("projects", len(backup.Projects)),
		zap.Int("tasks", len(backup.Tasks)),
		zap.Int("procurementItems", len(backup.Items)),
		zap.Int("focalPoints", len(backup.FocalPoints)))
	c.JSON(http.StatusOK, gin.H{
		"projects":         len(backup.Projects),
		"tasks":            len(backup.Tasks),
		"procurementItems": len(backup.Items),
		"focalPoints":      len(backup.FocalPoints),
	})
}

const wipeTokenKey = "wipeToken"

// RequestWipe is step one of deleting everything: it issues a one-time
// token bound to the caller's session.
func (h *Handler) RequestWipe(c *gin.Context) {
	token := uuid.NewString()
	session := sessions.Default(c)
	session.Set(wipeTokenKey, token)
	if err := session.Save(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"warning": "this permanently deletes all data; confirm with the token to proceed",
	})
}

type wipeRequest struct {
	Token string `json:"token" binding:"required"`
}

// ConfirmWipe is step two: the token from the same session must be
// echoed back. The token is single-use either way.
func (h *Handler) ConfirmWipe(c *gin.Context) {
	var req wipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	session := sessions.Default(c)
	issued, _ := session.Get(wipeTokenKey).(string)
	session.Delete(wipeTokenKey)
	if err := session.Save(); err != nil {
		h.fail(c, err)
		return
	}
	if issued == "" || issued != req.Token {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired wipe token"})
		return
	}

	if err := h.store.Wipe(); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Warn("all data wiped")
	c.JSON(http.StatusOK, gin.H{"wiped": true})
}
