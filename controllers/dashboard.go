package controllers

import (
	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDashboardStats returns dashboard statistics. Admins see platform-wide
// counts; everyone else sees their own submissions.
func GetDashboardStats(c *gin.Context) {
	userIDVal, userExists := c.Get("userID")
	roleIDVal, roleExists := c.Get("roleID")
	if !userExists || !roleExists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	userID, okUser := userIDVal.(int)
	roleID, okRole := roleIDVal.(int)
	if !okUser || !okRole {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user or role id"})
		return
	}

	var stats map[string]interface{}
	if roleID == models.RoleAdmin {
		stats = getAdminDashboard()
	} else {
		stats = getUserDashboard(userID)
	}

	if stats == nil {
		stats = make(map[string]interface{})
	}
	stats["current_date"] = time.Now().Format("2006-01-02")

	c.JSON(http.StatusOK, gin.H{
		"stats": stats,
	})
}

type submissionCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Closed   int64 `json:"closed"` // cancelled or rejected
}

// countByStatus tallies one submission table, optionally scoped to a user.
func countByStatus(model interface{}, submissionType models.SubmissionType, userID int) submissionCounts {
	var counts submissionCounts

	base := func() *gorm.DB {
		q := config.DB.Model(model).Where("delete_at IS NULL")
		if userID != 0 {
			q = q.Where("user_id = ?", userID)
		}
		return q
	}

	base().Count(&counts.Total)

	for code, dest := range map[string]*int64{
		utils.StatusCodePending:   &counts.Pending,
		utils.StatusCodeApproved:  &counts.Approved,
		utils.StatusCodeCancelled: &counts.Closed,
	} {
		statusID, err := utils.GetStatusIDByCode(submissionType, code)
		if err != nil {
			continue
		}
		base().Where("status_id = ?", statusID).Count(dest)
	}

	return counts
}

// getUserDashboard returns the dashboard for regular users.
func getUserDashboard(userID int) map[string]interface{} {
	stats := make(map[string]interface{})

	stats["material_donations"] = countByStatus(&models.MaterialDonation{}, models.SubmissionTypeMaterialDonation, userID)
	stats["monetary_donations"] = countByStatus(&models.MonetaryDonation{}, models.SubmissionTypeMonetaryDonation, userID)

	var donatedTotal float64
	config.DB.Model(&models.MonetaryDonation{}).
		Where("user_id = ? AND delete_at IS NULL", userID).
		Select("COALESCE(SUM(amount), 0)").Scan(&donatedTotal)
	stats["total_donated_amount"] = donatedTotal

	var volunteer models.Volunteer
	if err := config.DB.Preload("Status").
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&volunteer).Error; err == nil {
		stats["volunteer_application"] = volunteer
	}

	return stats
}

// getAdminDashboard returns platform-wide statistics.
func getAdminDashboard() map[string]interface{} {
	stats := make(map[string]interface{})

	stats["material_donations"] = countByStatus(&models.MaterialDonation{}, models.SubmissionTypeMaterialDonation, 0)
	stats["monetary_donations"] = countByStatus(&models.MonetaryDonation{}, models.SubmissionTypeMonetaryDonation, 0)
	stats["volunteers"] = countByStatus(&models.Volunteer{}, models.SubmissionTypeVolunteer, 0)

	var approvedAmount float64
	if approvedID, err := utils.GetStatusIDByCode(models.SubmissionTypeMonetaryDonation, utils.StatusCodeApproved); err == nil {
		config.DB.Model(&models.MonetaryDonation{}).
			Where("status_id = ? AND delete_at IS NULL", approvedID).
			Select("COALESCE(SUM(amount), 0)").Scan(&approvedAmount)
	}
	stats["approved_donation_amount"] = approvedAmount

	var recentTransitions []models.StatusHistory
	config.DB.Order("created_at DESC").Limit(10).Find(&recentTransitions)
	stats["recent_transitions"] = recentTransitions

	return stats
}
