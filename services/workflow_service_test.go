package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	statusByCodePattern = regexp.MustCompile("SELECT .* FROM `submission_statuses` WHERE submission_type = \\? AND status_code = \\?")
	statusByIDPattern   = regexp.MustCompile("SELECT .* FROM `submission_statuses` WHERE status_id = \\?")
	donationGetPattern  = regexp.MustCompile("SELECT .* FROM `material_donations` WHERE donation_id = \\?")
	volunteerGetPattern = regexp.MustCompile("SELECT .* FROM `volunteers` WHERE volunteer_id = \\?")
	donationSetPattern  = regexp.MustCompile("UPDATE `material_donations` SET")
	volunteerSetPattern = regexp.MustCompile("UPDATE `volunteers` SET")
	userLinkPattern     = regexp.MustCompile("UPDATE `users` SET `volunteer_id`")
	historyPattern      = regexp.MustCompile("INSERT INTO `status_histories`")
	notificationPattern = regexp.MustCompile("INSERT INTO `notifications`")
)

var statusColumns = []string{"status_id", "submission_type", "status_name", "status_code", "is_terminal"}

func materialStatusRow(id int64, name, code string, terminal bool) []driver.Value {
	t := int64(0)
	if terminal {
		t = 1
	}
	return []driver.Value{id, "material_donation", name, code, t}
}

func volunteerStatusRow(id int64, name, code string, terminal bool) []driver.Value {
	t := int64(0)
	if terminal {
		t = 1
	}
	return []driver.Value{id, "volunteer", name, code, t}
}

func setupWorkflowTest(t *testing.T, steps []*queryStep) *scriptedDB {
	t.Helper()
	db, state, cleanup := newScriptedGormDB(t, steps)
	t.Cleanup(cleanup)

	config.DB = db
	utils.ResetStatusCache()
	ClearStatusCache()
	return state
}

func TestRequestTransitionApprovesPendingDonation(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: statusByCodePattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(2, "Approved", "1", true)},
		},
		{
			kind:    kindQuery,
			pattern: donationGetPattern,
			columns: []string{"donation_id", "user_id", "donor_name", "item_name", "quantity", "images", "status_id"},
			rows:    [][]driver.Value{{int64(7), int64(3), "alice", "Blankets", int64(10), "[]", int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: statusByIDPattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(1, "Pending", "0", false)},
		},
		{
			kind:    kindExec,
			pattern: donationSetPattern,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: historyPattern,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: notificationPattern,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}
	state := setupWorkflowTest(t, steps)

	result, err := RequestTransition(TransitionRequest{
		Type:    models.SubmissionTypeMaterialDonation,
		ID:      7,
		Status:  "Approved",
		ActorID: 99,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.Submission.ID)
	assert.Equal(t, 2, result.Submission.StatusID)
	assert.Equal(t, "Pending", result.OldStatus.StatusName)
	assert.Equal(t, "Approved", result.NewStatus.StatusName)
	require.NoError(t, state.verifyComplete())
}

func TestRequestTransitionNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: statusByCodePattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(2, "Approved", "1", true)},
		},
		{
			kind:    kindQuery,
			pattern: donationGetPattern,
			columns: []string{"donation_id"},
			rows:    [][]driver.Value{},
		},
	}
	state := setupWorkflowTest(t, steps)

	_, err := RequestTransition(TransitionRequest{
		Type:    models.SubmissionTypeMaterialDonation,
		ID:      12345,
		Status:  "Approved",
		ActorID: 99,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	// No update or history steps were scripted; the store must not have
	// mutated anything.
	require.NoError(t, state.verifyComplete())
}

func TestRequestTransitionTerminalStatusImmutable(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: statusByCodePattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(1, "Pending", "0", false)},
		},
		{
			kind:    kindQuery,
			pattern: donationGetPattern,
			columns: []string{"donation_id", "user_id", "donor_name", "status_id"},
			rows:    [][]driver.Value{{int64(7), int64(3), "alice", int64(2)}},
		},
		{
			kind:    kindQuery,
			pattern: statusByIDPattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(2, "Approved", "1", true)},
		},
	}
	state := setupWorkflowTest(t, steps)

	_, err := RequestTransition(TransitionRequest{
		Type:    models.SubmissionTypeMaterialDonation,
		ID:      7,
		Status:  "Pending",
		ActorID: 99,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	require.NoError(t, state.verifyComplete())
}

func TestRequestTransitionCancelRequiresReason(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: statusByCodePattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(3, "Cancelled", "2", true)},
		},
		{
			kind:    kindQuery,
			pattern: donationGetPattern,
			columns: []string{"donation_id", "user_id", "donor_name", "status_id"},
			rows:    [][]driver.Value{{int64(7), int64(3), "alice", int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: statusByIDPattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(1, "Pending", "0", false)},
		},
	}
	state := setupWorkflowTest(t, steps)

	_, err := RequestTransition(TransitionRequest{
		Type:    models.SubmissionTypeMaterialDonation,
		ID:      7,
		Status:  "Cancelled",
		Reason:  "   ",
		ActorID: 99,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	require.NoError(t, state.verifyComplete())
}

func TestRequestTransitionCancelWithReason(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: statusByCodePattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(3, "Cancelled", "2", true)},
		},
		{
			kind:    kindQuery,
			pattern: donationGetPattern,
			columns: []string{"donation_id", "user_id", "donor_name", "status_id"},
			rows:    [][]driver.Value{{int64(7), int64(3), "alice", int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: statusByIDPattern,
			columns: statusColumns,
			rows:    [][]driver.Value{materialStatusRow(1, "Pending", "0", false)},
		},
		{
			kind:    kindExec,
			pattern: donationSetPattern,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: historyPattern,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: notificationPattern,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}
	state := setupWorkflowTest(t, steps)

	result, err := RequestTransition(TransitionRequest{
		Type:    models.SubmissionTypeMaterialDonation,
		ID:      7,
		Status:  "Cancelled",
		Reason:  "duplicate entry",
		ActorID: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", result.NewStatus.StatusName)
	require.NoError(t, state.verifyComplete())
}

func TestVolunteerApprovalLinksUser(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: statusByCodePattern,
			columns: statusColumns,
			rows:    [][]driver.Value{volunteerStatusRow(8, "Approved", "1", true)},
		},
		{
			kind:    kindQuery,
			pattern: volunteerGetPattern,
			columns: []string{"volunteer_id", "user_id", "applicant_name", "skills", "tasks", "status_id"},
			rows:    [][]driver.Value{{int64(5), int64(3), "bob", "first aid", "[]", int64(7)}},
		},
		{
			kind:    kindQuery,
			pattern: statusByIDPattern,
			columns: statusColumns,
			rows:    [][]driver.Value{volunteerStatusRow(7, "Requested", "0", false)},
		},
		{
			kind:    kindExec,
			pattern: volunteerSetPattern,
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: historyPattern,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: userLinkPattern,
			args:    []driver.Value{int64(5), int64(3)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: notificationPattern,
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}
	state := setupWorkflowTest(t, steps)

	result, err := RequestTransition(TransitionRequest{
		Type:    models.SubmissionTypeVolunteer,
		ID:      5,
		Status:  "Approved",
		ActorID: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Submission.OwnerID)
	assert.Equal(t, "Approved", result.NewStatus.StatusName)
	require.NoError(t, state.verifyComplete())
}

func TestRequestTransitionUnknownType(t *testing.T) {
	state := setupWorkflowTest(t, nil)

	_, err := RequestTransition(TransitionRequest{
		Type:    models.SubmissionType("grant"),
		ID:      1,
		Status:  "Approved",
		ActorID: 99,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	require.NoError(t, state.verifyComplete())
}
