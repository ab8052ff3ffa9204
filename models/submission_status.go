package models

import "time"

// SubmissionType discriminates the three workflow-tracked record kinds.
type SubmissionType string

const (
	SubmissionTypeMaterialDonation SubmissionType = "material_donation"
	SubmissionTypeMonetaryDonation SubmissionType = "monetary_donation"
	SubmissionTypeVolunteer        SubmissionType = "volunteer"
)

// SubmissionStatus represents the submission_statuses lookup table.
// Each submission type carries its own row set; status_code is the
// stable machine identifier, status_name the display label.
type SubmissionStatus struct {
	StatusID       int            `gorm:"primaryKey;column:status_id" json:"status_id"`
	SubmissionType SubmissionType `gorm:"column:submission_type" json:"submission_type"`
	StatusName     string         `gorm:"column:status_name" json:"status_name"`
	StatusCode     string         `gorm:"column:status_code" json:"status_code"`
	IsTerminal     bool           `gorm:"column:is_terminal" json:"is_terminal"`
	CreateAt       *time.Time     `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time     `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time     `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (SubmissionStatus) TableName() string {
	return "submission_statuses"
}
