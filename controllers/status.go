package controllers

import (
	"net/http"
	"strconv"

	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetStatuses returns the status sets, optionally filtered by submission
// type.
func GetStatuses(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		statuses, err := services.GetStatusesByType(models.SubmissionType(t))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statuses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"statuses": statuses})
		return
	}

	statuses, err := services.GetStatuses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statuses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// GetStatusHistory returns the transition log for one submission (admin
// only).
func GetStatusHistory(c *gin.Context) {
	submissionType := models.SubmissionType(c.Param("type"))
	if _, ok := services.StoreFor(submissionType); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown submission type"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	var history []models.StatusHistory
	if err := config.DB.
		Where("submission_type = ? AND submission_id = ?", submissionType, id).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history, "total": len(history)})
}
