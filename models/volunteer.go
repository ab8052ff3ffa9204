package models

import "time"

// Volunteer represents the volunteers table. ApplicantName is snapshotted
// from the owning user at registration time. Tasks are assigned by admins
// after approval.
type Volunteer struct {
	VolunteerID   int        `gorm:"primaryKey;column:volunteer_id" json:"volunteer_id"`
	UserID        int        `gorm:"column:user_id" json:"user_id"`
	ApplicantName string     `gorm:"column:applicant_name" json:"applicant_name"`
	Skills        string     `gorm:"column:skills" json:"skills"`
	Experience    string     `gorm:"column:experience" json:"experience"`
	Availability  string     `gorm:"column:availability" json:"availability"`
	Tasks         StringList `gorm:"column:tasks;type:json" json:"tasks"`
	StatusID      int        `gorm:"column:status_id" json:"status_id"`
	RejectReason  *string    `gorm:"column:reject_reason" json:"reject_reason,omitempty"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User   User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status SubmissionStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}

func (Volunteer) TableName() string {
	return "volunteers"
}
