package models

import "time"

// UserProfile holds the single-user settings edited on the settings view.
// There is exactly one row.
type UserProfile struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UpdatedAt time.Time `json:"-"`

	Name             string `json:"name" gorm:"size:255"`
	Designation      string `json:"designation" gorm:"size:255"`
	Mobile           string `json:"mobile" gorm:"size:50"`
	Email            string `json:"email" gorm:"size:255"`
	DataSaveLocation string `json:"dataSaveLocation" gorm:"size:255"`
}
