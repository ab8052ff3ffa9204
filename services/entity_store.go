package services

import (
	"errors"
	"time"

	"donation-management-api/models"

	"gorm.io/gorm"
)

// Submission is the store-level view of a workflow-tracked record. It is
// deliberately narrow: the workflow core only needs identity, ownership and
// the current status.
type Submission struct {
	Type      models.SubmissionType
	ID        int
	OwnerID   int
	OwnerName string
	StatusID  int
}

// SubmissionStore loads and mutates one submission type. Implementations run
// against the transaction handle they are given so a transition and its side
// effects commit together.
type SubmissionStore interface {
	SubmissionType() models.SubmissionType
	Get(tx *gorm.DB, id int) (Submission, error)
	UpdateStatus(tx *gorm.DB, id int, statusID int, reason *string, now time.Time) error
}

type materialDonationStore struct{}

func (materialDonationStore) SubmissionType() models.SubmissionType {
	return models.SubmissionTypeMaterialDonation
}

func (materialDonationStore) Get(tx *gorm.DB, id int) (Submission, error) {
	var donation models.MaterialDonation
	err := tx.Where("donation_id = ? AND delete_at IS NULL", id).First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return Submission{
		Type:      models.SubmissionTypeMaterialDonation,
		ID:        donation.DonationID,
		OwnerID:   donation.UserID,
		OwnerName: donation.DonorName,
		StatusID:  donation.StatusID,
	}, nil
}

func (materialDonationStore) UpdateStatus(tx *gorm.DB, id int, statusID int, reason *string, now time.Time) error {
	return tx.Model(&models.MaterialDonation{}).
		Where("donation_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"status_id":     statusID,
			"cancel_reason": reason,
			"update_at":     now,
		}).Error
}

type monetaryDonationStore struct{}

func (monetaryDonationStore) SubmissionType() models.SubmissionType {
	return models.SubmissionTypeMonetaryDonation
}

func (monetaryDonationStore) Get(tx *gorm.DB, id int) (Submission, error) {
	var donation models.MonetaryDonation
	err := tx.Where("donation_id = ? AND delete_at IS NULL", id).First(&donation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return Submission{
		Type:      models.SubmissionTypeMonetaryDonation,
		ID:        donation.DonationID,
		OwnerID:   donation.UserID,
		OwnerName: donation.DonorName,
		StatusID:  donation.StatusID,
	}, nil
}

func (monetaryDonationStore) UpdateStatus(tx *gorm.DB, id int, statusID int, reason *string, now time.Time) error {
	return tx.Model(&models.MonetaryDonation{}).
		Where("donation_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"status_id":     statusID,
			"cancel_reason": reason,
			"update_at":     now,
		}).Error
}

type volunteerStore struct{}

func (volunteerStore) SubmissionType() models.SubmissionType {
	return models.SubmissionTypeVolunteer
}

func (volunteerStore) Get(tx *gorm.DB, id int) (Submission, error) {
	var volunteer models.Volunteer
	err := tx.Where("volunteer_id = ? AND delete_at IS NULL", id).First(&volunteer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return Submission{
		Type:      models.SubmissionTypeVolunteer,
		ID:        volunteer.VolunteerID,
		OwnerID:   volunteer.UserID,
		OwnerName: volunteer.ApplicantName,
		StatusID:  volunteer.StatusID,
	}, nil
}

func (volunteerStore) UpdateStatus(tx *gorm.DB, id int, statusID int, reason *string, now time.Time) error {
	return tx.Model(&models.Volunteer{}).
		Where("volunteer_id = ? AND delete_at IS NULL", id).
		Updates(map[string]interface{}{
			"status_id":     statusID,
			"reject_reason": reason,
			"update_at":     now,
		}).Error
}

var submissionStores = map[models.SubmissionType]SubmissionStore{
	models.SubmissionTypeMaterialDonation: materialDonationStore{},
	models.SubmissionTypeMonetaryDonation: monetaryDonationStore{},
	models.SubmissionTypeVolunteer:        volunteerStore{},
}

// StoreFor returns the store handling the given submission type.
func StoreFor(submissionType models.SubmissionType) (SubmissionStore, bool) {
	store, ok := submissionStores[submissionType]
	return store, ok
}
