package models

import "time"

// StatusHistory tracks historical status changes for submissions of any type.
type StatusHistory struct {
	HistoryID      int            `gorm:"primaryKey;column:history_id" json:"history_id"`
	SubmissionType SubmissionType `gorm:"column:submission_type" json:"submission_type"`
	SubmissionID   int            `gorm:"column:submission_id" json:"submission_id"`
	OldStatusID    *int           `gorm:"column:old_status_id" json:"old_status_id"`
	NewStatusID    int            `gorm:"column:new_status_id" json:"new_status_id"`
	ChangedBy      int            `gorm:"column:changed_by" json:"changed_by"`
	Reason         *string        `gorm:"column:reason" json:"reason"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for StatusHistory.
func (StatusHistory) TableName() string {
	return "status_histories"
}
