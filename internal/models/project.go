package models

import "time"

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectOnHold     ProjectStatus = "on-hold"
	ProjectCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

type Project struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string        `json:"name" gorm:"size:255;not null"`
	Description string        `json:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(20);not null"`
	Sector      string        `json:"sector" gorm:"size:100"`
	Department  string        `json:"department" gorm:"size:100"`

	// Date strings arrive in either ISO or DD-MM-YYYY form; planner.ParseDate
	// is the single parser for both.
	StartDate              string `json:"startDate" gorm:"size:10"`
	EndDate                string `json:"endDate" gorm:"size:10"`
	ExpectedSubmissionDate string `json:"expectedSubmissionDate" gorm:"size:10"`
	SubmittedDate          string `json:"submittedDate" gorm:"size:10"`

	Budget   float64 `json:"budget"`
	Spent    float64 `json:"spent"`
	Progress int     `json:"progress"` // 0-100, derived from spent/budget

	PRNumber          string `json:"prNumber" gorm:"size:50"`
	NegotiationNumber string `json:"negotiationNumber" gorm:"size:50"`

	IsSubmitted bool `json:"isSubmitted"`

	IsWorkInProgress bool       `json:"isWorkInProgress"`
	WorkStartedAt    *time.Time `json:"workStartedAt,omitempty"`

	WorkLogs []WorkLog `json:"workLogs"`
}
