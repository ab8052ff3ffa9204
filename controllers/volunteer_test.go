package controllers

import (
	"database/sql/driver"
	"net/http"
	"regexp"
	"testing"

	"donation-management-api/config"
	"donation-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVolunteerTaskRequiresApprovedStatus(t *testing.T) {
	volunteerQuery := regexp.MustCompile("SELECT .* FROM `volunteers` WHERE volunteer_id = \\?")
	volunteerColumns := []string{"volunteer_id", "user_id", "applicant_name", "tasks", "status_id"}
	rejectedRow := []driver.Value{int64(5), int64(3), "bob", "[]", int64(9)}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: volunteerQuery,
			columns: volunteerColumns,
			rows:    [][]driver.Value{rejectedRow},
		},
		// The approval check loads the record through the workflow store.
		{
			kind:    kindQuery,
			pattern: volunteerQuery,
			columns: volunteerColumns,
			rows:    [][]driver.Value{rejectedRow},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `submission_statuses` WHERE status_id = \\?"),
			columns: []string{"status_id", "submission_type", "status_name", "status_code", "is_terminal"},
			rows:    [][]driver.Value{{int64(9), "volunteer", "Rejected", "2", int64(1)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	t.Cleanup(cleanup)
	config.DB = db
	utils.ResetStatusCache()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/volunteers/:id/tasks", AddVolunteerTask)

	w := doJSON(router, http.MethodPost, "/volunteers/5/tasks", `{"task": "sort inventory"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "approved volunteers")
	require.NoError(t, state.verifyComplete())
}
