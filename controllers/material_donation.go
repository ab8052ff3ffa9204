package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/services"
	"donation-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================== MATERIAL DONATIONS =====================

type createMaterialDonationRequest struct {
	ItemName string   `form:"itemName" json:"itemName" binding:"required"`
	Quantity int      `form:"quantity" json:"quantity" binding:"required,gt=0"`
	UserID   int      `form:"userId" json:"userId" binding:"required"`
	Images   []string `json:"images"`
}

// CreateMaterialDonation creates a new material donation with initial
// Pending status. Accepts JSON or multipart form data; uploaded image files
// are stored under UPLOAD_PATH.
func CreateMaterialDonation(c *gin.Context) {
	var req createMaterialDonationRequest
	isMultipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")

	if isMultipart {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// Resolve the owner; the username is snapshotted onto the donation.
	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil || user.Username == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or missing username"})
		return
	}

	images := models.StringList(req.Images)
	if isMultipart {
		stored, err := storeUploadedImages(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		images = stored
	}

	pendingID, err := utils.GetStatusIDByCode(models.SubmissionTypeMaterialDonation, utils.StatusCodePending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating material donation"})
		return
	}

	donation := models.MaterialDonation{
		UserID:    user.UserID,
		DonorName: user.Username,
		ItemName:  utils.SanitizeInput(req.ItemName),
		Quantity:  req.Quantity,
		Images:    images,
		StatusID:  pendingID,
		CreateAt:  time.Now(),
	}

	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating material donation"})
		return
	}

	services.InvalidateListCache(c.Request.Context(), models.SubmissionTypeMaterialDonation)
	c.JSON(http.StatusCreated, donation)
}

// storeUploadedImages saves multipart "images" files with uuid names and
// returns their stored paths.
func storeUploadedImages(c *gin.Context) (models.StringList, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form")
	}

	files := form.File["images"]
	if len(files) == 0 {
		return models.StringList{}, nil
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}

	stored := make(models.StringList, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".gif":
		default:
			return nil, fmt.Errorf("unsupported image type: %s", file.Filename)
		}

		dest := filepath.Join(uploadPath, uuid.New().String()+ext)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			return nil, fmt.Errorf("failed to store image %s", file.Filename)
		}
		stored = append(stored, dest)
	}
	return stored, nil
}

// GetApprovedDonations returns all approved material donations.
func GetApprovedDonations(c *gin.Context) {
	listMaterialDonationsByCode(c, utils.StatusCodeApproved, "Failed to fetch approved donations")
}

// GetPendingDonations returns all pending material donations.
func GetPendingDonations(c *gin.Context) {
	listMaterialDonationsByCode(c, utils.StatusCodePending, "Failed to fetch pending donations")
}

func listMaterialDonationsByCode(c *gin.Context, statusCode, failMessage string) {
	var donations []models.MaterialDonation
	if services.GetCachedList(c.Request.Context(), models.SubmissionTypeMaterialDonation, statusCode, &donations) {
		c.JSON(http.StatusOK, donations)
		return
	}

	statusID, err := utils.GetStatusIDByCode(models.SubmissionTypeMaterialDonation, statusCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMessage})
		return
	}

	if err := config.DB.Preload("Status").
		Where("status_id = ? AND delete_at IS NULL", statusID).
		Order("create_at DESC").
		Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMessage})
		return
	}

	services.StoreCachedList(c.Request.Context(), models.SubmissionTypeMaterialDonation, statusCode, donations)
	c.JSON(http.StatusOK, donations)
}

// GetMaterialDonation returns a single donation by ID.
func GetMaterialDonation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	var donation models.MaterialDonation
	if err := config.DB.Preload("Status").
		Where("donation_id = ? AND delete_at IS NULL", id).
		First(&donation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	c.JSON(http.StatusOK, donation)
}

type updateStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	CancelReason string `json:"cancelReason"`
}

// actorFromContext returns the authenticated user ID set by the auth
// middleware, or 0 when absent.
func actorFromContext(c *gin.Context) int {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}

// UpdateDonationStatus applies a workflow transition to a material donation
// (admin only).
func UpdateDonationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err = services.RequestTransition(services.TransitionRequest{
		Type:    models.SubmissionTypeMaterialDonation,
		ID:      id,
		Status:  req.Status,
		Reason:  req.CancelReason,
		ActorID: actorFromContext(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation status"})
		}
		return
	}

	var donation models.MaterialDonation
	if err := config.DB.Preload("Status").
		Where("donation_id = ?", id).
		First(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation status"})
		return
	}

	c.JSON(http.StatusOK, donation)
}
