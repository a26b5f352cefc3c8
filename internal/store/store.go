package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/r4mxae/project-hub/internal/models"
	"github.com/r4mxae/project-hub/internal/planner"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrWorkActive    = errors.New("another work session is already running")
	ErrNoWorkSession = errors.New("no work session is running")
	ErrNotSubmitted  = errors.New("item is not submitted")
)

// Store wraps the database handle and owns every read and write the
// handlers perform. Multi-record operations run inside a transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB { return s.db }

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Projects

func (s *Store) Projects() ([]models.Project, error) {
	var out []models.Project
	err := s.db.Preload("WorkLogs").Order("id").Find(&out).Error
	return out, err
}

func (s *Store) ProjectByID(id uint) (models.Project, error) {
	var p models.Project
	err := s.db.Preload("WorkLogs").First(&p, id).Error
	return p, translate(err)
}

func (s *Store) CreateProject(p *models.Project) error {
	return s.db.Create(p).Error
}

func (s *Store) UpdateProject(p *models.Project) error {
	return s.db.Save(p).Error
}

// DeleteProject removes the project, its tasks and every work log that
// belonged to either.
func (s *Store) DeleteProject(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.First(&p, id).Error; err != nil {
			return translate(err)
		}
		var taskIDs []uint
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.WorkLog{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.WorkLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// MarkProjectSubmitted stamps the submission flag and date. The date is
// today in DD-MM-YYYY form.
func (s *Store) MarkProjectSubmitted(id uint, now time.Time) (models.Project, error) {
	var p models.Project
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return translate(err)
		}
		p.IsSubmitted = true
		p.SubmittedDate = planner.FormatDMY(now)
		return tx.Save(&p).Error
	})
	return p, err
}

// Tasks

func (s *Store) Tasks() ([]models.Task, error) {
	var out []models.Task
	err := s.db.Preload("WorkLogs").Order("id").Find(&out).Error
	return out, err
}

func (s *Store) TaskByID(id uint) (models.Task, error) {
	var t models.Task
	err := s.db.Preload("WorkLogs").First(&t, id).Error
	return t, translate(err)
}

func (s *Store) CreateTask(t *models.Task) error {
	var p models.Project
	if err := s.db.First(&p, t.ProjectID).Error; err != nil {
		return fmt.Errorf("project %d: %w", t.ProjectID, translate(err))
	}
	return s.db.Create(t).Error
}

func (s *Store) UpdateTask(t *models.Task) error {
	return s.db.Save(t).Error
}

func (s *Store) DeleteTask(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var t models.Task
		if err := tx.First(&t, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.WorkLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

// Procurement items

func (s *Store) Items() ([]models.ProcurementItem, error) {
	var out []models.ProcurementItem
	err := s.db.Order("id").Find(&out).Error
	return out, err
}

func (s *Store) ItemByID(id uint) (models.ProcurementItem, error) {
	var it models.ProcurementItem
	err := s.db.First(&it, id).Error
	return it, translate(err)
}

func (s *Store) CreateItem(it *models.ProcurementItem) error {
	return s.db.Create(it).Error
}

func (s *Store) CreateItems(items []models.ProcurementItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) UpdateItem(it *models.ProcurementItem) error {
	return s.db.Save(it).Error
}

func (s *Store) DeleteItem(id uint) error {
	err := s.db.First(&models.ProcurementItem{}, id).Error
	if err != nil {
		return translate(err)
	}
	return s.db.Delete(&models.ProcurementItem{}, id).Error
}

// MarkItemSubmitted creates the tracking project for the item and stamps
// the item with the submission date and the new project's id. The two
// writes commit together or not at all.
func (s *Store) MarkItemSubmitted(id uint, now time.Time) (models.ProcurementItem, error) {
	var it models.ProcurementItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&it, id).Error; err != nil {
			return translate(err)
		}
		date := planner.FormatDMY(now)
		project := planner.ProjectFromItem(it, date)
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		it.IsSubmitted = true
		it.SubmittedDate = date
		it.ProjectID = &project.ID
		it.Status = models.ItemAssigned
		return tx.Save(&it).Error
	})
	return it, err
}

// RevertItemSubmission deletes the project created at submission time and
// clears the item's submission fields. Edits made to that project since
// submission are lost with it.
func (s *Store) RevertItemSubmission(id uint) (models.ProcurementItem, error) {
	var it models.ProcurementItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&it, id).Error; err != nil {
			return translate(err)
		}
		if !it.IsSubmitted {
			return ErrNotSubmitted
		}
		if it.ProjectID != nil {
			if err := tx.Where("project_id = ?", *it.ProjectID).Delete(&models.WorkLog{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Project{}, *it.ProjectID).Error; err != nil {
				return err
			}
		}
		it.IsSubmitted = false
		it.SubmittedDate = ""
		it.ProjectID = nil
		it.Status = models.ItemPending
		return tx.Save(&it).Error
	})
	return it, err
}

// Focal points

func (s *Store) FocalPoints() ([]models.FocalPoint, error) {
	var out []models.FocalPoint
	err := s.db.Order("id").Find(&out).Error
	return out, err
}

func (s *Store) FocalPointByID(id uint) (models.FocalPoint, error) {
	var fp models.FocalPoint
	err := s.db.First(&fp, id).Error
	return fp, translate(err)
}

func (s *Store) CreateFocalPoint(fp *models.FocalPoint) error {
	return s.db.Create(fp).Error
}

func (s *Store) UpdateFocalPoint(fp *models.FocalPoint) error {
	return s.db.Save(fp).Error
}

func (s *Store) DeleteFocalPoint(id uint) error {
	err := s.db.First(&models.FocalPoint{}, id).Error
	if err != nil {
		return translate(err)
	}
	return s.db.Delete(&models.FocalPoint{}, id).Error
}

// Work sessions

// ActiveSession describes the one running timer, if any.
type ActiveSession struct {
	ProjectID      *uint     `json:"projectId,omitempty"`
	TaskID         *uint     `json:"taskId,omitempty"`
	Name           string    `json:"name"`
	StartedAt      time.Time `json:"startedAt"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
}

// Active returns the currently running session or nil. At most one
// session runs across projects and tasks combined.
func (s *Store) Active(now time.Time) (*ActiveSession, error) {
	var p models.Project
	err := s.db.Where("is_work_in_progress = ?", true).First(&p).Error
	if err == nil && p.WorkStartedAt != nil {
		return &ActiveSession{
			ProjectID:      &p.ID,
			Name:           p.Name,
			StartedAt:      *p.WorkStartedAt,
			ElapsedSeconds: int(now.Sub(*p.WorkStartedAt).Seconds()),
		}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var t models.Task
	err = s.db.Where("is_work_in_progress = ?", true).First(&t).Error
	if err == nil && t.WorkStartedAt != nil {
		return &ActiveSession{
			TaskID:         &t.ID,
			Name:           t.Title,
			StartedAt:      *t.WorkStartedAt,
			ElapsedSeconds: int(now.Sub(*t.WorkStartedAt).Seconds()),
		}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}

// StartProjectWork begins a timer on the project. Fails when any timer
// is already running anywhere.
func (s *Store) StartProjectWork(id uint, now time.Time) (models.Project, error) {
	var p models.Project
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureIdle(tx); err != nil {
			return err
		}
		if err := tx.First(&p, id).Error; err != nil {
			return translate(err)
		}
		p.IsWorkInProgress = true
		p.WorkStartedAt = &now
		return tx.Save(&p).Error
	})
	return p, err
}

func (s *Store) StartTaskWork(id uint, now time.Time) (models.Task, error) {
	var t models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureIdle(tx); err != nil {
			return err
		}
		if err := tx.First(&t, id).Error; err != nil {
			return translate(err)
		}
		t.IsWorkInProgress = true
		t.WorkStartedAt = &now
		return tx.Save(&t).Error
	})
	return t, err
}

func (s *Store) ensureIdle(tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&models.Project{}).Where("is_work_in_progress = ?", true).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrWorkActive
	}
	if err := tx.Model(&models.Task{}).Where("is_work_in_progress = ?", true).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrWorkActive
	}
	return nil
}

// StopProjectWork closes the running timer. A blank log update discards
// the session entirely; no work log row is written.
func (s *Store) StopProjectWork(id uint, logUpdate, upcomingAction string, now time.Time) (models.Project, error) {
	var p models.Project
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return translate(err)
		}
		if !p.IsWorkInProgress || p.WorkStartedAt == nil {
			return ErrNoWorkSession
		}
		started := *p.WorkStartedAt
		p.IsWorkInProgress = false
		p.WorkStartedAt = nil
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		if strings.TrimSpace(logUpdate) == "" {
			return nil
		}
		log := models.WorkLog{
			ProjectID:      &p.ID,
			StartTime:      started,
			EndTime:        now,
			Duration:       int(now.Sub(started).Seconds()),
			LogUpdate:      logUpdate,
			UpcomingAction: upcomingAction,
			Date:           planner.FormatDMY(now),
		}
		return tx.Create(&log).Error
	})
	return p, err
}

func (s *Store) StopTaskWork(id uint, logUpdate, upcomingAction string, now time.Time) (models.Task, error) {
	var t models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, id).Error; err != nil {
			return translate(err)
		}
		if !t.IsWorkInProgress || t.WorkStartedAt == nil {
			return ErrNoWorkSession
		}
		started := *t.WorkStartedAt
		t.IsWorkInProgress = false
		t.WorkStartedAt = nil
		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		if strings.TrimSpace(logUpdate) == "" {
			return nil
		}
		log := models.WorkLog{
			TaskID:         &t.ID,
			StartTime:      started,
			EndTime:        now,
			Duration:       int(now.Sub(started).Seconds()),
			LogUpdate:      logUpdate,
			UpcomingAction: upcomingAction,
			Date:           planner.FormatDMY(now),
		}
		return tx.Create(&log).Error
	})
	return t, err
}

// Profile

func (s *Store) Profile() (models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserProfile{}, nil
	}
	return p, err
}

func (s *Store) SaveProfile(p *models.UserProfile) error {
	var existing models.UserProfile
	err := s.db.First(&existing).Error
	if err == nil {
		p.ID = existing.ID
		return s.db.Save(p).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(p).Error
	}
	return err
}

// Backup and wipe

// Snapshot bundles every collection for a full export.
type Snapshot struct {
	Profile     models.UserProfile
	Projects    []models.Project
	Tasks       []models.Task
	Items       []models.ProcurementItem
	FocalPoints []models.FocalPoint
}

func (s *Store) Snapshot() (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Profile, err = s.Profile(); err != nil {
		return snap, err
	}
	if snap.Projects, err = s.Projects(); err != nil {
		return snap, err
	}
	if snap.Tasks, err = s.Tasks(); err != nil {
		return snap, err
	}
	if snap.Items, err = s.Items(); err != nil {
		return snap, err
	}
	snap.FocalPoints, err = s.FocalPoints()
	return snap, err
}

// ReplaceAll swaps the entire dataset for the given snapshot. Used by
// backup restore; nothing survives from the previous state.
func (s *Store) ReplaceAll(snap Snapshot) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := wipeTx(tx); err != nil {
			return err
		}
		for i := range snap.Projects {
			if err := tx.Create(&snap.Projects[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Tasks {
			if err := tx.Create(&snap.Tasks[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.Items {
			if err := tx.Create(&snap.Items[i]).Error; err != nil {
				return err
			}
		}
		for i := range snap.FocalPoints {
			if err := tx.Create(&snap.FocalPoints[i]).Error; err != nil {
				return err
			}
		}
		if snap.Profile != (models.UserProfile{}) {
			profile := snap.Profile
			profile.ID = 0
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Wipe deletes every record in every collection.
func (s *Store) Wipe() error {
	return s.db.Transaction(wipeTx)
}

func wipeTx(tx *gorm.DB) error {
	for _, model := range []any{
		&models.WorkLog{},
		&models.Task{},
		&models.Project{},
		&models.ProcurementItem{},
		&models.FocalPoint{},
		&models.UserProfile{},
	} {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
