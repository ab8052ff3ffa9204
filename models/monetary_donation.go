package models

import "time"

// Payment methods accepted for monetary donations.
const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodUPI        = "upi"
)

// Donation cadence.
const (
	DonationTypeOneTime = "one-time"
	DonationTypeMonthly = "monthly"
)

// MonetaryDonation represents the monetary_donations table. The payment
// itself is collected by the gateway on the client side; this row records
// the pledge and its review state. ReferenceNumber is generated server side
// and handed back to the donor as a receipt identifier.
type MonetaryDonation struct {
	DonationID      int        `gorm:"primaryKey;column:donation_id" json:"donation_id"`
	UserID          int        `gorm:"column:user_id" json:"user_id"`
	DonorName       string     `gorm:"column:donor_name" json:"donor_name"`
	Amount          float64    `gorm:"column:amount" json:"amount"`
	PaymentMethod   string     `gorm:"column:payment_method" json:"payment_method"`
	CoverFees       bool       `gorm:"column:cover_fees" json:"cover_fees"`
	DonationType    string     `gorm:"column:donation_type" json:"donation_type"`
	ReferenceNumber string     `gorm:"column:reference_number;unique" json:"reference_number"`
	StatusID        int        `gorm:"column:status_id" json:"status_id"`
	CancelReason    *string    `gorm:"column:cancel_reason" json:"cancel_reason,omitempty"`
	CreateAt        time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User   User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status SubmissionStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}

func (MonetaryDonation) TableName() string {
	return "monetary_donations"
}
