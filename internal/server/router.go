package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/r4mxae/project-hub/internal/config"
	"github.com/r4mxae/project-hub/internal/handlers"
	"github.com/r4mxae/project-hub/internal/middleware"
	"github.com/r4mxae/project-hub/internal/store"
)

func NewRouter(cfg *config.Config, s *store.Store, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Default())

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("projecthub_session", sessionStore))

	h := handlers.New(s, log)

	r.GET("/dashboard", h.Dashboard)

	// PROJECTS
	r.GET("/projects", h.ListProjects)
	r.POST("/projects", h.CreateProject)
	r.GET("/projects/:id", h.GetProject)
	r.PUT("/projects/:id", h.UpdateProject)
	r.DELETE("/projects/:id", h.DeleteProject)
	r.POST("/projects/:id/submit", h.SubmitProject)
	r.POST("/projects/:id/work/start", h.StartProjectWork)
	r.POST("/projects/:id/work/stop", h.StopProjectWork)
	r.GET("/projects/:id/worklogs/export", h.ExportProjectWorkLogs)
	r.GET("/projects/:id/export", h.ExportProject)

	// TASKS
	r.GET("/tasks", h.ListTasks)
	r.POST("/tasks", h.CreateTask)
	r.GET("/tasks/:id", h.GetTask)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.DELETE("/tasks/:id", h.DeleteTask)
	r.POST("/tasks/:id/work/start", h.StartTaskWork)
	r.POST("/tasks/:id/work/stop", h.StopTaskWork)
	r.GET("/tasks/:id/worklogs/export", h.ExportTaskWorkLogs)
	r.GET("/tasks/:id/export", h.ExportTask)

	// WORK TIMER
	r.GET("/work/active", h.ActiveWork)
	r.GET("/worklogs/export", h.ExportAllWorkLogs)

	// PROCUREMENT
	r.GET("/procurement", h.ListItems)
	r.POST("/procurement", h.CreateItem)
	r.GET("/procurement/urgency", h.ItemUrgency)
	r.GET("/procurement/unplanned", h.UnplannedProjects)
	r.GET("/procurement/export", h.ExportItems)
	r.POST("/procurement/import/inspect", h.InspectImport)
	r.POST("/procurement/import", h.ImportItems)
	r.GET("/procurement/:id", h.GetItem)
	r.PUT("/procurement/:id", h.UpdateItem)
	r.DELETE("/procurement/:id", h.DeleteItem)
	r.POST("/procurement/:id/submit", h.SubmitItem)
	r.POST("/procurement/:id/revert", h.RevertItem)

	// FOCAL POINTS
	r.GET("/focalpoints", h.ListFocalPoints)
	r.POST("/focalpoints", h.CreateFocalPoint)
	r.PUT("/focalpoints/:id", h.UpdateFocalPoint)
	r.DELETE("/focalpoints/:id", h.DeleteFocalPoint)

	// VIEWS
	r.GET("/upcoming", h.Upcoming)
	r.POST("/upcoming/reminders", h.UpcomingReminders)
	r.GET("/risks", h.Risks)
	r.POST("/risks/reminder", h.RiskReminder)
	r.GET("/savings", h.Savings)
	r.GET("/savings/export", h.ExportSavings)
	r.GET("/completed", h.Completed)
	r.GET("/completed/export", h.ExportCompleted)
	r.GET("/analysis", h.Analysis)
	r.GET("/analysis/export", h.ExportAnalysis)

	// SETTINGS
	r.GET("/settings/profile", h.GetProfile)
	r.PUT("/settings/profile", h.UpdateProfile)
	r.GET("/settings/export", h.ExportBackup)
	r.POST("/settings/import", h.ImportBackup)
	r.POST("/settings/wipe", h.RequestWipe)
	r.POST("/settings/wipe/confirm", h.ConfirmWipe)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
