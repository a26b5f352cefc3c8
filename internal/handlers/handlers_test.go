package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	store   *store.Store
	handler *Handler
	router  *gin.Engine
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.Task{},
		&models.ProcurementItem{},
		&models.FocalPoint{},
		&models.WorkLog{},
		&models.UserProfile{},
	))

	s := store.New(db)
	h := New(s, zap.NewNop())
	h.now = func() time.Time { return now }

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.GET("/dashboard", h.Dashboard)
	r.GET("/projects", h.ListProjects)
	r.POST("/projects", h.CreateProject)
	r.DELETE("/projects/:id", h.DeleteProject)
	r.POST("/projects/:id/submit", h.SubmitProject)
	r.GET("/tasks", h.ListTasks)
	r.POST("/tasks", h.CreateTask)
	r.POST("/procurement/:id/submit", h.SubmitItem)
	r.POST("/procurement/:id/revert", h.RevertItem)
	r.POST("/procurement/import", h.ImportItems)
	r.GET("/upcoming", h.Upcoming)
	r.POST("/upcoming/reminders", h.UpcomingReminders)
	r.GET("/risks", h.Risks)
	r.POST("/risks/reminder", h.RiskReminder)
	r.POST("/settings/import", h.ImportBackup)
	r.POST("/settings/wipe", h.RequestWipe)
	r.POST("/settings/wipe/confirm", h.ConfirmWipe)

	return &fixture{store: s, handler: h, router: r}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestCreateProjectValidation(t *testing.T) {
	f := newFixture(t, time.Now())

	w := f.do(t, http.MethodPost, "/projects", gin.H{"name": "X", "status": "finished"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/projects", gin.H{"status": "planning"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/projects", gin.H{
		"name": "X", "status": "planning", "budget": 1000.0, "spent": 250.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var p models.Project
	decode(t, w, &p)
	assert.Equal(t, 25, p.Progress)
}

func TestDeleteProjectRequiresConfirm(t *testing.T) {
	f := newFixture(t, time.Now())
	p := models.Project{Name: "X", Status: models.ProjectPlanning}
	require.NoError(t, f.store.CreateProject(&p))

	w := f.do(t, http.MethodDelete, "/projects/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodDelete, "/projects/1?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/projects/1?confirm=true", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitProjectStampsDate(t *testing.T) {
	f := newFixture(t, time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC))
	p := models.Project{Name: "X", Status: models.ProjectCompleted}
	require.NoError(t, f.store.CreateProject(&p))

	w := f.do(t, http.MethodPost, "/projects/1/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Project
	decode(t, w, &got)
	assert.True(t, got.IsSubmitted)
	assert.Equal(t, "10-03-2026", got.SubmittedDate)
}

func TestItemSubmitRevertOverHTTP(t *testing.T) {
	f := newFixture(t, time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC))
	item := models.ProcurementItem{
		Item: "001", ItemDescription: "Servers", Category: "Hardware",
		Sector: "IT", Department: "Infrastructure",
		RecommendedPRDate: "01-04-2026", Status: models.ItemPending,
	}
	require.NoError(t, f.store.CreateItem(&item))

	w := f.do(t, http.MethodPost, "/procurement/1/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.ProcurementItem
	decode(t, w, &got)
	assert.True(t, got.IsSubmitted)
	require.NotNil(t, got.ProjectID)

	// revert needs confirm
	w = f.do(t, http.MethodPost, "/procurement/1/revert", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/procurement/1/revert?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = models.ProcurementItem{}
	decode(t, w, &got)
	assert.False(t, got.IsSubmitted)
	assert.Nil(t, got.ProjectID)

	_, err := f.store.ProjectByID(1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpcomingGate(t *testing.T) {
	closed := newFixture(t, time.Date(2026, time.March, 23, 12, 0, 0, 0, time.UTC))
	w := closed.do(t, http.MethodGet, "/upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Available bool                     `json:"available"`
		Items     []models.ProcurementItem `json:"items"`
	}
	decode(t, w, &resp)
	assert.False(t, resp.Available)

	w = closed.do(t, http.MethodPost, "/upcoming/reminders", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	open := newFixture(t, time.Date(2026, time.March, 24, 12, 0, 0, 0, time.UTC))
	require.NoError(t, open.store.CreateItem(&models.ProcurementItem{
		Item: "001", RecommendedPRDate: "10-04-2026", Status: models.ItemPending,
	}))
	require.NoError(t, open.store.CreateItem(&models.ProcurementItem{
		Item: "002", RecommendedPRDate: "10-05-2026", Status: models.ItemPending,
	}))

	w = open.do(t, http.MethodGet, "/upcoming", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.True(t, resp.Available)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "001", resp.Items[0].Item)
}

func TestUpcomingRemindersSelection(t *testing.T) {
	f := newFixture(t, time.Date(2026, time.March, 24, 12, 0, 0, 0, time.UTC))
	require.NoError(t, f.store.CreateItem(&models.ProcurementItem{
		Item: "001", ItemDescription: "Servers",
		Sector: "IT", Department: "Infrastructure",
		RecommendedPRDate: "10-04-2026", Status: models.ItemPending,
	}))
	require.NoError(t, f.store.CreateItem(&models.ProcurementItem{
		Item: "002", ItemDescription: "Switches",
		Sector: "IT", Department: "Infrastructure",
		RecommendedPRDate: "20-04-2026", Status: models.ItemPending,
	}))
	require.NoError(t, f.store.CreateFocalPoint(&models.FocalPoint{
		Name: "Sara", Sector: "IT", Department: "Infrastructure", Email: "sara@example.com",
	}))

	var batch struct {
		Messages []struct {
			Body string `json:"body"`
		} `json:"messages"`
	}

	// no body composes over every eligible item
	w := f.do(t, http.MethodPost, "/upcoming/reminders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &batch)
	require.Len(t, batch.Messages, 1)
	assert.Contains(t, batch.Messages[0].Body, "001")
	assert.Contains(t, batch.Messages[0].Body, "002")

	// an ids list narrows composition to those items
	w = f.do(t, http.MethodPost, "/upcoming/reminders", gin.H{"ids": []uint{1}})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &batch)
	require.Len(t, batch.Messages, 1)
	assert.Contains(t, batch.Messages[0].Body, "001")
	assert.NotContains(t, batch.Messages[0].Body, "002")
}

func TestRiskReminderSelection(t *testing.T) {
	f := newFixture(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.store.CreateProject(&models.Project{
		Name: "DC refresh", Status: models.ProjectInProgress,
		Sector: "IT", Department: "Infrastructure", ExpectedSubmissionDate: "01-03-2026",
	}))
	require.NoError(t, f.store.CreateProject(&models.Project{
		Name: "ERP rollout", Status: models.ProjectInProgress,
		Sector: "Finance", Department: "Accounts", ExpectedSubmissionDate: "05-03-2026",
	}))
	require.NoError(t, f.store.CreateFocalPoint(&models.FocalPoint{
		Name: "Sara", Sector: "IT", Department: "Infrastructure", Email: "sara@example.com",
	}))
	require.NoError(t, f.store.CreateFocalPoint(&models.FocalPoint{
		Name: "Nadia", Sector: "Finance", Department: "Accounts", Email: "nadia@example.com",
	}))

	var msg struct {
		Body string `json:"body"`
	}

	w := f.do(t, http.MethodPost, "/risks/reminder", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &msg)
	assert.Contains(t, msg.Body, "DC refresh")
	assert.Contains(t, msg.Body, "ERP rollout")

	w = f.do(t, http.MethodPost, "/risks/reminder", gin.H{"ids": []uint{2}})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &msg)
	assert.NotContains(t, msg.Body, "DC refresh")
	assert.Contains(t, msg.Body, "ERP rollout")

	// a selection outside the at-risk set leaves nothing to compose
	w = f.do(t, http.MethodPost, "/risks/reminder", gin.H{"ids": []uint{99}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRisksFilters(t *testing.T) {
	f := newFixture(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.store.CreateProject(&models.Project{
		Name: "late-it", Status: models.ProjectInProgress,
		Sector: "IT", Department: "Infra", ExpectedSubmissionDate: "01-03-2026",
	}))
	require.NoError(t, f.store.CreateProject(&models.Project{
		Name: "late-fin", Status: models.ProjectInProgress,
		Sector: "Finance", Department: "Accounts", ExpectedSubmissionDate: "01-03-2026",
	}))
	require.NoError(t, f.store.CreateProject(&models.Project{
		Name: "on-time", Status: models.ProjectInProgress,
		Sector: "IT", Department: "Infra", ExpectedSubmissionDate: "01-06-2026",
	}))

	w := f.do(t, http.MethodGet, "/risks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var projects []models.Project
	decode(t, w, &projects)
	assert.Len(t, projects, 2)

	w = f.do(t, http.MethodGet, "/risks?sector=IT", nil)
	decode(t, w, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, "late-it", projects[0].Name)
}

func TestImportBackupRejectsPartialDocument(t *testing.T) {
	f := newFixture(t, time.Now())
	require.NoError(t, f.store.CreateProject(&models.Project{Name: "keep", Status: models.ProjectPlanning}))

	w := f.do(t, http.MethodPost, "/settings/import", gin.H{
		"projects": []any{}, "tasks": []any{}, "focalPoints": []any{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// rejected import leaves the store untouched
	projects, err := f.store.Projects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "keep", projects[0].Name)
}

func TestImportItemsBadMappingLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, time.Now())

	w := f.do(t, http.MethodPost, "/procurement/import", gin.H{
		"rows":    [][]string{{"Switches"}},
		"mapping": gin.H{"item": 0},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	items, err := f.store.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWipeTwoStep(t *testing.T) {
	f := newFixture(t, time.Now())
	require.NoError(t, f.store.CreateProject(&models.Project{Name: "X", Status: models.ProjectPlanning}))

	// confirm without a token fails
	w := f.do(t, http.MethodPost, "/settings/wipe/confirm", gin.H{"token": "guess"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPost, "/settings/wipe", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var issued struct {
		Token string `json:"token"`
	}
	decode(t, w, &issued)
	require.NotEmpty(t, issued.Token)
	session := w.Result().Cookies()

	// wrong token in the right session fails and burns the token
	body, _ := json.Marshal(gin.H{"token": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/settings/wipe/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range session {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// fresh token, correct confirmation
	w = f.do(t, http.MethodPost, "/settings/wipe", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &issued)
	session = w.Result().Cookies()

	body, _ = json.Marshal(gin.H{"token": issued.Token})
	req = httptest.NewRequest(http.MethodPost, "/settings/wipe/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range session {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	projects, err := f.store.Projects()
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.store.CreateProject(&models.Project{
		Name: "Tight", Status: models.ProjectInProgress,
		Budget: 10000, Spent: 9500,
	}))

	w := f.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Summary struct {
			TotalProjects  int     `json:"totalProjects"`
			ActiveProjects int     `json:"activeProjects"`
			TotalBudget    float64 `json:"totalBudget"`
		} `json:"summary"`
		Notifications []struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"notifications"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 1, resp.Summary.TotalProjects)
	assert.Equal(t, 1, resp.Summary.ActiveProjects)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "Budget Alert", resp.Notifications[0].Title)
	assert.Equal(t, "Tight - 95% budget used", resp.Notifications[0].Message)
}

func TestListTasksResolvesProjectName(t *testing.T) {
	f := newFixture(t, time.Now())
	p := models.Project{Name: "Fiber rollout", Status: models.ProjectPlanning}
	require.NoError(t, f.store.CreateProject(&p))

	w := f.do(t, http.MethodPost, "/tasks", gin.H{
		"title": "Survey route", "projectId": p.ID,
		"status": "todo", "priority": "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var views []TaskView
	decode(t, w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "Fiber rollout", views[0].ProjectName)

	// renaming the project renames it everywhere tasks are rendered
	p.Name = "Fiber rollout phase 2"
	require.NoError(t, f.store.UpdateProject(&p))
	w = f.do(t, http.MethodGet, "/tasks", nil)
	decode(t, w, &views)
	assert.Equal(t, "Fiber rollout phase 2", views[0].ProjectName)
}
