package models

import "time"

// FocalPoint is the contact responsible for a (sector, department) pair.
// The pair is not unique; several contacts may share it.
type FocalPoint struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `json:"name" gorm:"size:255;not null"`
	Sector      string `json:"sector" gorm:"size:100;not null"`
	Department  string `json:"department" gorm:"size:100;not null"`
	Email       string `json:"email" gorm:"size:255;not null"`
	PhoneNumber string `json:"phoneNumber" gorm:"size:50"`
}
