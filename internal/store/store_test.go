package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/r4mxae/project-hub/internal/models"
)

func newTestStore(t *testing.T) *Store {
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
	return New(db)
}

func TestProjectCRUD(t *testing.T) {
	s := newTestStore(t)

	p := models.Project{Name: "P1", Status: models.ProjectPlanning}
	require.NoError(t, s.CreateProject(&p))
	require.NotZero(t, p.ID)

	got, err := s.ProjectByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "P1", got.Name)

	got.Status = models.ProjectInProgress
	require.NoError(t, s.UpdateProject(&got))

	_, err = s.ProjectByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)

	p := models.Project{Name: "P1", Status: models.ProjectPlanning}
	require.NoError(t, s.CreateProject(&p))
	task := models.Task{Title: "T1", ProjectID: p.ID, Status: models.TaskTodo, Priority: models.PriorityLow}
	require.NoError(t, s.CreateTask(&task))
	log := models.WorkLog{TaskID: &task.ID, Duration: 60}
	require.NoError(t, s.DB().Create(&log).Error)

	require.NoError(t, s.DeleteProject(p.ID))

	tasks, err := s.Tasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	var logs int64
	require.NoError(t, s.DB().Model(&models.WorkLog{}).Count(&logs).Error)
	assert.Zero(t, logs)
}

func TestCreateTaskRequiresProject(t *testing.T) {
	s := newTestStore(t)
	task := models.Task{Title: "orphan", ProjectID: 42, Status: models.TaskTodo, Priority: models.PriorityLow}
	assert.ErrorIs(t, s.CreateTask(&task), ErrNotFound)
}

func TestSubmitRevertRoundTrip(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	item := models.ProcurementItem{
		Item: "Switches", ItemDescription: "Access switches",
		Sector: "IT", Department: "Infrastructure",
		Category: "Hardware", AllocatedBudget: 17500,
		RecommendedPRDate: "10-04-2026", ItemReference: "PR-104",
		Status: models.ItemPending,
	}
	require.NoError(t, s.CreateItem(&item))
	before, err := s.ItemByID(item.ID)
	require.NoError(t, err)

	submitted, err := s.MarkItemSubmitted(item.ID, now)
	require.NoError(t, err)
	assert.True(t, submitted.IsSubmitted)
	assert.Equal(t, "10-03-2026", submitted.SubmittedDate)
	assert.Equal(t, models.ItemAssigned, submitted.Status)
	require.NotNil(t, submitted.ProjectID)

	project, err := s.ProjectByID(*submitted.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Switches - Access switches", project.Name)
	assert.True(t, project.IsSubmitted)

	reverted, err := s.RevertItemSubmission(item.ID)
	require.NoError(t, err)
	assert.False(t, reverted.IsSubmitted)
	assert.Empty(t, reverted.SubmittedDate)
	assert.Nil(t, reverted.ProjectID)
	assert.Equal(t, models.ItemPending, reverted.Status)

	_, err = s.ProjectByID(project.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// everything except timestamps is back to the pre-submission state
	reverted.UpdatedAt = before.UpdatedAt
	assert.Equal(t, before, reverted)
}

func TestRevertRequiresSubmission(t *testing.T) {
	s := newTestStore(t)
	item := models.ProcurementItem{Item: "X", Status: models.ItemPending}
	require.NoError(t, s.CreateItem(&item))
	_, err := s.RevertItemSubmission(item.ID)
	assert.ErrorIs(t, err, ErrNotSubmitted)
}

func TestWorkSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	stop := start.Add(90 * time.Minute)

	p := models.Project{Name: "P1", Status: models.ProjectInProgress}
	require.NoError(t, s.CreateProject(&p))
	other := models.Task{Title: "T1", ProjectID: p.ID, Status: models.TaskTodo, Priority: models.PriorityLow}
	require.NoError(t, s.CreateTask(&other))

	started, err := s.StartProjectWork(p.ID, start)
	require.NoError(t, err)
	assert.True(t, started.IsWorkInProgress)

	// only one timer may run, in either collection
	_, err = s.StartTaskWork(other.ID, start)
	assert.ErrorIs(t, err, ErrWorkActive)
	_, err = s.StartProjectWork(p.ID, start)
	assert.ErrorIs(t, err, ErrWorkActive)

	active, err := s.Active(stop)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, 5400, active.ElapsedSeconds)
	assert.Equal(t, "P1", active.Name)

	stopped, err := s.StopProjectWork(p.ID, "wired the racks", "order cabling", stop)
	require.NoError(t, err)
	assert.False(t, stopped.IsWorkInProgress)
	assert.Nil(t, stopped.WorkStartedAt)

	got, err := s.ProjectByID(p.ID)
	require.NoError(t, err)
	require.Len(t, got.WorkLogs, 1)
	assert.Equal(t, 5400, got.WorkLogs[0].Duration)
	assert.Equal(t, "wired the racks", got.WorkLogs[0].LogUpdate)
	assert.Equal(t, "10-03-2026", got.WorkLogs[0].Date)

	active, err = s.Active(stop)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestStopWithBlankLogDiscardsSession(t *testing.T) {
	s := newTestStore(t)
	start := time.Now()

	p := models.Project{Name: "P1", Status: models.ProjectInProgress}
	require.NoError(t, s.CreateProject(&p))
	_, err := s.StartProjectWork(p.ID, start)
	require.NoError(t, err)

	stopped, err := s.StopProjectWork(p.ID, "   ", "", start.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, stopped.IsWorkInProgress)

	got, err := s.ProjectByID(p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.WorkLogs)

	_, err = s.StopProjectWork(p.ID, "late note", "", start.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrNoWorkSession)
}

func TestProfileSingleRow(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Profile()
	require.NoError(t, err)
	assert.Empty(t, p.Name)

	require.NoError(t, s.SaveProfile(&models.UserProfile{Name: "Rami", Email: "rami@example.com"}))
	require.NoError(t, s.SaveProfile(&models.UserProfile{Name: "Rami A.", Email: "rami@example.com"}))

	var count int64
	require.NoError(t, s.DB().Model(&models.UserProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	p, err = s.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Rami A.", p.Name)
}

func TestReplaceAllAndWipe(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateProject(&models.Project{Name: "old", Status: models.ProjectPlanning}))
	require.NoError(t, s.CreateFocalPoint(&models.FocalPoint{Name: "old contact"}))

	snap := Snapshot{
		Profile:  models.UserProfile{Name: "Rami"},
		Projects: []models.Project{{Name: "restored", Status: models.ProjectInProgress}},
		Items:    []models.ProcurementItem{{Item: "Racks", Status: models.ItemPending}},
	}
	require.NoError(t, s.ReplaceAll(snap))

	projects, err := s.Projects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "restored", projects[0].Name)

	points, err := s.FocalPoints()
	require.NoError(t, err)
	assert.Empty(t, points)

	profile, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Rami", profile.Name)

	require.NoError(t, s.Wipe())
	projects, err = s.Projects()
	require.NoError(t, err)
	assert.Empty(t, projects)
	profile, err = s.Profile()
	require.NoError(t, err)
	assert.Empty(t, profile.Name)
}
