package services

import (
	"fmt"
	"strings"

	"donation-management-api/models"
	"donation-management-api/utils"
)

// allowedSuccessors is the directed transition graph shared by all
// submission types: a pending submission can be approved or
// cancelled/rejected, and both outcomes are terminal. The legacy system
// allowed any status to overwrite any other, including silently
// un-approving; that permissiveness is intentionally not preserved.
var allowedSuccessors = map[string]map[string]bool{
	utils.StatusCodePending: {
		utils.StatusCodeApproved:  true,
		utils.StatusCodeCancelled: true,
	},
	utils.StatusCodeApproved:  {},
	utils.StatusCodeCancelled: {},
}

// ValidateTransition decides whether current may move to requested.
// Cancelling or rejecting demands a non-empty reason.
func ValidateTransition(current, requested models.SubmissionStatus, reason string) error {
	currentCode := utils.CanonicalStatusCode(current.StatusCode)
	requestedCode := utils.CanonicalStatusCode(requested.StatusCode)

	if currentCode == requestedCode {
		return fmt.Errorf("%w: submission is already %s", ErrValidation, current.StatusName)
	}

	successors, ok := allowedSuccessors[currentCode]
	if !ok {
		return fmt.Errorf("%w: unknown current status %q", ErrValidation, current.StatusCode)
	}
	if !successors[requestedCode] {
		if current.IsTerminal {
			return fmt.Errorf("%w: %s is final and cannot change", ErrValidation, current.StatusName)
		}
		return fmt.Errorf("%w: cannot move from %s to %s", ErrValidation, current.StatusName, requested.StatusName)
	}

	if requestedCode == utils.StatusCodeCancelled && strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: a reason is required to %s a submission", ErrValidation,
			strings.ToLower(requested.StatusName))
	}

	return nil
}
