package services

import (
	"errors"
	"testing"

	"donation-management-api/models"

	"github.com/stretchr/testify/assert"
)

func status(name, code string, terminal bool) models.SubmissionStatus {
	return models.SubmissionStatus{
		SubmissionType: models.SubmissionTypeMaterialDonation,
		StatusName:     name,
		StatusCode:     code,
		IsTerminal:     terminal,
	}
}

func TestValidateTransition(t *testing.T) {
	pending := status("Pending", "0", false)
	approved := status("Approved", "1", true)
	cancelled := status("Cancelled", "2", true)

	tests := []struct {
		name      string
		current   models.SubmissionStatus
		requested models.SubmissionStatus
		reason    string
		wantErr   bool
	}{
		{name: "pending to approved", current: pending, requested: approved},
		{name: "pending to cancelled with reason", current: pending, requested: cancelled, reason: "out of stock"},
		{name: "pending to cancelled without reason", current: pending, requested: cancelled, wantErr: true},
		{name: "pending to cancelled with blank reason", current: pending, requested: cancelled, reason: "  ", wantErr: true},
		{name: "approved is final", current: approved, requested: pending, wantErr: true},
		{name: "approved to cancelled", current: approved, requested: cancelled, reason: "mistake", wantErr: true},
		{name: "cancelled is final", current: cancelled, requested: approved, wantErr: true},
		{name: "same status", current: pending, requested: pending, wantErr: true},
		{name: "unknown current code", current: status("Weird", "9", false), requested: approved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.current, tt.requested, tt.reason)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransitionCanonicalizesAliases(t *testing.T) {
	// Volunteer rows label the same codes Requested/Rejected; the graph
	// works on codes, not labels.
	requested := models.SubmissionStatus{
		SubmissionType: models.SubmissionTypeVolunteer,
		StatusName:     "Requested",
		StatusCode:     "0",
	}
	rejected := models.SubmissionStatus{
		SubmissionType: models.SubmissionTypeVolunteer,
		StatusName:     "Rejected",
		StatusCode:     "2",
		IsTerminal:     true,
	}

	assert.NoError(t, ValidateTransition(requested, rejected, "no open tasks"))
	assert.Error(t, ValidateTransition(rejected, requested, ""))
}
