package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/utils"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a submission or its owner does not exist.
	ErrNotFound = errors.New("submission not found")
	// ErrValidation is returned for illegal transitions and bad input.
	ErrValidation = errors.New("validation failed")
)

// TransitionRequest describes one requested status change.
type TransitionRequest struct {
	Type    models.SubmissionType
	ID      int
	Status  string // canonical code, display label or legacy alias
	Reason  string
	ActorID int
}

// TransitionResult reports the applied transition.
type TransitionResult struct {
	Submission Submission
	OldStatus  models.SubmissionStatus
	NewStatus  models.SubmissionStatus
}

// RequestTransition loads the submission, validates the requested status
// against the transition graph and persists the change. The status write,
// the history row and any side effect (linking an approved volunteer onto
// its user) commit in a single transaction, so a failed side effect rolls
// the status change back too.
func RequestTransition(req TransitionRequest) (TransitionResult, error) {
	store, ok := StoreFor(req.Type)
	if !ok {
		return TransitionResult{}, fmt.Errorf("%w: unknown submission type %q", ErrValidation, req.Type)
	}

	requested, err := utils.GetSubmissionStatusByCode(req.Type, req.Status)
	if err != nil {
		return TransitionResult{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	reason := utils.SanitizeInput(req.Reason)

	var result TransitionResult
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		submission, err := store.Get(tx, req.ID)
		if err != nil {
			return err
		}

		current, err := utils.GetSubmissionStatusByID(submission.StatusID)
		if err != nil {
			return err
		}

		if err := ValidateTransition(current, requested, reason); err != nil {
			return err
		}

		now := time.Now()
		var reasonPtr *string
		if reason != "" {
			reasonPtr = &reason
		}

		if err := store.UpdateStatus(tx, submission.ID, requested.StatusID, reasonPtr, now); err != nil {
			return err
		}

		history := models.StatusHistory{
			SubmissionType: req.Type,
			SubmissionID:   submission.ID,
			OldStatusID:    &current.StatusID,
			NewStatusID:    requested.StatusID,
			ChangedBy:      req.ActorID,
			Reason:         reasonPtr,
			CreatedAt:      now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		if err := runTransitionHooks(tx, submission, requested); err != nil {
			return err
		}

		submission.StatusID = requested.StatusID
		result = TransitionResult{Submission: submission, OldStatus: current, NewStatus: requested}
		return nil
	})
	if err != nil {
		return TransitionResult{}, err
	}

	// Cache and notification work is best effort and runs outside the
	// transaction.
	InvalidateListCache(context.Background(), req.Type)
	NotifyStatusChange(result.Submission, result.NewStatus, reason)

	return result, nil
}

// runTransitionHooks applies cross-entity side effects inside the
// transition transaction.
func runTransitionHooks(tx *gorm.DB, submission Submission, newStatus models.SubmissionStatus) error {
	if submission.Type != models.SubmissionTypeVolunteer {
		return nil
	}

	code := utils.CanonicalStatusCode(newStatus.StatusCode)
	switch code {
	case utils.StatusCodeApproved:
		// Approved volunteers get linked onto their user record so the rest
		// of the app can resolve user -> volunteer without a scan.
		return tx.Model(&models.User{}).
			Where("user_id = ? AND delete_at IS NULL", submission.OwnerID).
			Update("volunteer_id", submission.ID).Error
	case utils.StatusCodeCancelled:
		// A rejection clears any stale link from a previous approval.
		return tx.Model(&models.User{}).
			Where("user_id = ? AND volunteer_id = ?", submission.OwnerID, submission.ID).
			Update("volunteer_id", nil).Error
	}
	return nil
}

// IsApprovedVolunteer reports whether the volunteer record exists and is
// currently approved.
func IsApprovedVolunteer(volunteerID int) (bool, error) {
	store, _ := StoreFor(models.SubmissionTypeVolunteer)
	submission, err := store.Get(config.DB, volunteerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return utils.StatusMatchesCodes(submission.StatusID, utils.StatusCodeApproved)
}

// NotifyStatusChange records an in-app notification for the submission
// owner and, when SMTP is configured, emails them. Failures are logged and
// swallowed; a lost notification must never fail a committed transition.
func NotifyStatusChange(submission Submission, newStatus models.SubmissionStatus, reason string) {
	title := fmt.Sprintf("%s %s", submissionTypeLabel(submission.Type), strings.ToLower(newStatus.StatusName))
	message := fmt.Sprintf("Your %s is now %s.", strings.ToLower(submissionTypeLabel(submission.Type)), newStatus.StatusName)
	if reason != "" {
		message = fmt.Sprintf("%s Reason: %s", message, reason)
	}

	notifType := "info"
	switch utils.CanonicalStatusCode(newStatus.StatusCode) {
	case utils.StatusCodeApproved:
		notifType = "success"
	case utils.StatusCodeCancelled:
		notifType = "warning"
	}

	submissionType := submission.Type
	submissionID := uint(submission.ID)
	notification := models.Notification{
		UserID:                uint(submission.OwnerID),
		Title:                 title,
		Message:               message,
		Type:                  notifType,
		RelatedSubmissionType: &submissionType,
		RelatedSubmissionID:   &submissionID,
		CreateAt:              time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to record status notification (type=%s id=%d): %v", submission.Type, submission.ID, err)
	}

	if !config.MailConfigured() {
		return
	}

	var owner models.User
	if err := config.DB.Select("email", "username").
		Where("user_id = ? AND delete_at IS NULL", submission.OwnerID).
		First(&owner).Error; err != nil || owner.Email == "" {
		return
	}

	go func() {
		html := buildStatusEmailHTML(owner.Username, title, message)
		if err := config.SendMail([]string{owner.Email}, title, html); err != nil {
			log.Printf("status email send failed (to=%s subject=%q): %v", owner.Email, title, err)
		}
	}()
}

func submissionTypeLabel(submissionType models.SubmissionType) string {
	switch submissionType {
	case models.SubmissionTypeMaterialDonation:
		return "Material donation"
	case models.SubmissionTypeMonetaryDonation:
		return "Monetary donation"
	case models.SubmissionTypeVolunteer:
		return "Volunteer application"
	default:
		return "Submission"
	}
}
