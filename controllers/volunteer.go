package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/services"
	"donation-management-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ===================== VOLUNTEERS =====================

type registerVolunteerRequest struct {
	UserID       int    `json:"userId" binding:"required"`
	Skills       string `json:"skills" binding:"required"`
	Experience   string `json:"experience"`
	Availability string `json:"availability"`
}

// RegisterVolunteer creates a volunteer application with initial Requested
// status.
func RegisterVolunteer(c *gin.Context) {
	var req registerVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil || user.Username == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or missing username"})
		return
	}

	// One live application per user.
	var existing models.Volunteer
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already has a volunteer application"})
		return
	}

	requestedID, err := utils.GetStatusIDByCode(models.SubmissionTypeVolunteer, utils.StatusCodePending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error registering volunteer"})
		return
	}

	volunteer := models.Volunteer{
		UserID:        user.UserID,
		ApplicantName: user.Username,
		Skills:        utils.SanitizeInput(req.Skills),
		Experience:    utils.SanitizeInput(req.Experience),
		Availability:  utils.SanitizeInput(req.Availability),
		Tasks:         models.StringList{},
		StatusID:      requestedID,
		CreateAt:      time.Now(),
	}

	if err := config.DB.Create(&volunteer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error registering volunteer"})
		return
	}

	services.InvalidateListCache(c.Request.Context(), models.SubmissionTypeVolunteer)
	c.JSON(http.StatusCreated, volunteer)
}

// GetVolunteers returns all volunteers, optionally filtered by status.
func GetVolunteers(c *gin.Context) {
	query := config.DB.Preload("Status").Where("delete_at IS NULL")

	if status := c.Query("status"); status != "" {
		statusID, err := utils.GetStatusIDByCode(models.SubmissionTypeVolunteer, status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown volunteer status"})
			return
		}
		query = query.Where("status_id = ?", statusID)
	}

	var volunteers []models.Volunteer
	if err := query.Order("create_at DESC").Find(&volunteers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch volunteers"})
		return
	}

	c.JSON(http.StatusOK, volunteers)
}

// GetVolunteer returns a single volunteer record by ID.
func GetVolunteer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	var volunteer models.Volunteer
	if err := config.DB.Preload("Status").
		Where("volunteer_id = ? AND delete_at IS NULL", id).
		First(&volunteer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

// GetVolunteerByUser returns the volunteer application belonging to a user,
// with the owning user attached.
func GetVolunteerByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	var volunteer models.Volunteer
	if err := config.DB.Preload("Status").Preload("User").
		Where("user_id = ? AND delete_at IS NULL", userID).
		First(&volunteer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

type updateVolunteerStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	RejectReason string `json:"rejectReason"`
}

// UpdateVolunteerStatus applies a workflow transition to a volunteer
// application (admin only). Approval links the volunteer record onto the
// owning user inside the same transaction.
func UpdateVolunteerStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	var req updateVolunteerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err = services.RequestTransition(services.TransitionRequest{
		Type:    models.SubmissionTypeVolunteer,
		ID:      id,
		Status:  req.Status,
		Reason:  req.RejectReason,
		ActorID: actorFromContext(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update volunteer status"})
		}
		return
	}

	var volunteer models.Volunteer
	if err := config.DB.Preload("Status").
		Where("volunteer_id = ?", id).
		First(&volunteer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update volunteer status"})
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

type updateVolunteerProfileRequest struct {
	Skills       *string `json:"skills"`
	Experience   *string `json:"experience"`
	Availability *string `json:"availability"`
}

// UpdateVolunteerProfile updates the free-text profile fields of a
// volunteer application. Status is never touched here.
func UpdateVolunteerProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	var req updateVolunteerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var volunteer models.Volunteer
	if err := config.DB.Where("volunteer_id = ? AND delete_at IS NULL", id).
		First(&volunteer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	// Owners may edit their own profile; admins may edit any.
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")
	if roleID.(int) != models.RoleAdmin && userID.(int) != volunteer.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	updates := map[string]interface{}{"update_at": time.Now()}
	if req.Skills != nil {
		updates["skills"] = utils.SanitizeInput(*req.Skills)
	}
	if req.Experience != nil {
		updates["experience"] = utils.SanitizeInput(*req.Experience)
	}
	if req.Availability != nil {
		updates["availability"] = utils.SanitizeInput(*req.Availability)
	}

	if err := config.DB.Model(&volunteer).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update volunteer"})
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

type addTaskRequest struct {
	Task string `json:"task" binding:"required"`
}

// AddVolunteerTask appends a task to an approved volunteer (admin only).
func AddVolunteerTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var volunteer models.Volunteer
	if err := config.DB.Where("volunteer_id = ? AND delete_at IS NULL", id).
		First(&volunteer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	approved, err := services.IsApprovedVolunteer(volunteer.VolunteerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add task"})
		return
	}
	if !approved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tasks can only be assigned to approved volunteers"})
		return
	}

	now := time.Now()
	volunteer.Tasks = append(volunteer.Tasks, utils.SanitizeInput(req.Task))
	volunteer.UpdateAt = &now

	if err := config.DB.Save(&volunteer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add task"})
		return
	}

	c.JSON(http.StatusOK, volunteer)
}

// DeleteVolunteer removes a volunteer record (admin only). This is an
// explicit administrative action outside the status workflow; the row is
// soft deleted and any user link is cleared.
func DeleteVolunteer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	var volunteer models.Volunteer
	if err := config.DB.Where("volunteer_id = ? AND delete_at IS NULL", id).
		First(&volunteer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&volunteer).Update("delete_at", &now).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("user_id = ? AND volunteer_id = ?", volunteer.UserID, volunteer.VolunteerID).
			Update("volunteer_id", nil).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete volunteer"})
		return
	}

	services.InvalidateListCache(c.Request.Context(), models.SubmissionTypeVolunteer)
	c.JSON(http.StatusOK, gin.H{"message": "Volunteer deleted successfully"})
}
