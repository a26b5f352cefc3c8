package models

import "time"

type ItemStatus string

const (
	ItemPending    ItemStatus = "pending"
	ItemInProgress ItemStatus = "in-progress"
	ItemAwarded    ItemStatus = "awarded"
	ItemAssigned   ItemStatus = "assigned"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemInProgress, ItemAwarded, ItemAssigned:
		return true
	}
	return false
}

// Categories is the closed set a procurement item may belong to.
var Categories = []string{"Hardware", "Software", "Equipment", "Services", "Supplies", "Consulting", "Other"}

type ProcurementItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Item            string `json:"item" gorm:"size:50;not null"`
	Sector          string `json:"sector" gorm:"size:100"`
	Department      string `json:"department" gorm:"size:100"`
	ItemDescription string `json:"itemDescription" gorm:"type:text"`
	Category        string `json:"category" gorm:"size:50"`

	// Both kept in DD-MM-YYYY form, as they come from the procurement plan.
	AwardedBefore     string `json:"awardedBefore" gorm:"size:10"`
	RecommendedPRDate string `json:"recommendedPRDate" gorm:"size:10"`

	AllocatedBudget float64 `json:"allocatedBudget"`

	RequestedPreviously         string `json:"requestedPreviously" gorm:"size:255"`
	PrequalificationRecommended string `json:"prequalificationRecommended" gorm:"size:255"`
	RecommendedVendors          string `json:"recommendedVendors" gorm:"type:text"`
	AdditionalInformation       string `json:"additionalInformation" gorm:"type:text"`
	ItemReference               string `json:"itemReference" gorm:"size:100"`

	IsSubmitted   bool   `json:"isSubmitted"`
	SubmittedDate string `json:"submittedDate" gorm:"size:10"`

	// Set when marking the item submitted creates a project; cleared on revert.
	ProjectID *uint      `json:"projectId,omitempty"`
	Status    ItemStatus `json:"status" gorm:"type:varchar(20)"`
}
