package models

import "time"

// MaterialDonation represents the material_donations table. DonorName is a
// snapshot of the owner's username at creation time; later renames do not
// update historical donations.
type MaterialDonation struct {
	DonationID   int        `gorm:"primaryKey;column:donation_id" json:"donation_id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	DonorName    string     `gorm:"column:donor_name" json:"donor_name"`
	ItemName     string     `gorm:"column:item_name" json:"item_name"`
	Quantity     int        `gorm:"column:quantity" json:"quantity"`
	Images       StringList `gorm:"column:images;type:json" json:"images"`
	StatusID     int        `gorm:"column:status_id" json:"status_id"`
	CancelReason *string    `gorm:"column:cancel_reason" json:"cancel_reason,omitempty"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User   User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status SubmissionStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}

func (MaterialDonation) TableName() string {
	return "material_donations"
}
