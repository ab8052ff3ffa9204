package services

import (
	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/utils"
)

type statusSeed struct {
	submissionType models.SubmissionType
	name           string
	code           string
	terminal       bool
}

var statusSeeds = []statusSeed{
	{models.SubmissionTypeMaterialDonation, "Pending", utils.StatusCodePending, false},
	{models.SubmissionTypeMaterialDonation, "Approved", utils.StatusCodeApproved, true},
	{models.SubmissionTypeMaterialDonation, "Cancelled", utils.StatusCodeCancelled, true},
	{models.SubmissionTypeMonetaryDonation, "Pending", utils.StatusCodePending, false},
	{models.SubmissionTypeMonetaryDonation, "Approved", utils.StatusCodeApproved, true},
	{models.SubmissionTypeMonetaryDonation, "Cancelled", utils.StatusCodeCancelled, true},
	{models.SubmissionTypeVolunteer, "Requested", utils.StatusCodePending, false},
	{models.SubmissionTypeVolunteer, "Approved", utils.StatusCodeApproved, true},
	{models.SubmissionTypeVolunteer, "Rejected", utils.StatusCodeCancelled, true},
}

// SeedSubmissionStatuses inserts any missing rows of the fixed status sets.
// Safe to run on every startup.
func SeedSubmissionStatuses() error {
	for _, seed := range statusSeeds {
		status := models.SubmissionStatus{
			SubmissionType: seed.submissionType,
			StatusName:     seed.name,
			StatusCode:     seed.code,
			IsTerminal:     seed.terminal,
		}
		err := config.DB.
			Where("submission_type = ? AND status_code = ?", seed.submissionType, seed.code).
			FirstOrCreate(&status).Error
		if err != nil {
			return err
		}
	}

	ClearStatusCache()
	utils.ResetStatusCache()
	return nil
}
