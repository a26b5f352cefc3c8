package models

import "time"

// WorkLog is one recorded interval of work, owned by exactly one project
// or one task. Duration is stored in seconds alongside the timestamps and
// is not cross-checked against them.
type WorkLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`

	ProjectID *uint `json:"projectId,omitempty"`
	TaskID    *uint `json:"taskId,omitempty"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"` // seconds

	LogUpdate      string `json:"logUpdate" gorm:"type:text"`
	UpcomingAction string `json:"upcomingAction" gorm:"type:text"`
	Date           string `json:"date" gorm:"size:10"`
}
