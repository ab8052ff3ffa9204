package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"donation-management-api/config"
	"donation-management-api/models"
	"donation-management-api/services"
	"donation-management-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ===================== MONETARY DONATIONS =====================

type createMonetaryDonationRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	CoverFees     bool    `json:"coverFees"`
	DonationType  string  `json:"donationType"`
	UserID        int     `json:"userId" binding:"required"`
}

// CreateMonetaryDonation records a monetary pledge with initial Pending
// status. The gateway charge happens client side; the reference number ties
// the pledge to the receipt shown to the donor.
func CreateMonetaryDonation(c *gin.Context) {
	var req createMonetaryDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.PaymentMethod {
	case models.PaymentMethodCreditCard, models.PaymentMethodUPI:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported payment method %q", req.PaymentMethod)})
		return
	}

	donationType := req.DonationType
	if donationType == "" {
		donationType = models.DonationTypeOneTime
	}
	if donationType != models.DonationTypeOneTime && donationType != models.DonationTypeMonthly {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported donation type %q", donationType)})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil || user.Username == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or missing username"})
		return
	}

	pendingID, err := utils.GetStatusIDByCode(models.SubmissionTypeMonetaryDonation, utils.StatusCodePending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating monetary donation"})
		return
	}

	donation := models.MonetaryDonation{
		UserID:          user.UserID,
		DonorName:       user.Username,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		CoverFees:       req.CoverFees,
		DonationType:    donationType,
		ReferenceNumber: generateDonationReference(),
		StatusID:        pendingID,
		CreateAt:        time.Now(),
	}

	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating monetary donation"})
		return
	}

	services.InvalidateListCache(c.Request.Context(), models.SubmissionTypeMonetaryDonation)
	c.JSON(http.StatusCreated, donation)
}

// generateDonationReference builds a receipt identifier like
// DON-20250901-5f3a2b1c.
func generateDonationReference() string {
	return fmt.Sprintf("DON-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}

// GetApprovedMonetaryDonations returns all approved monetary donations.
func GetApprovedMonetaryDonations(c *gin.Context) {
	listMonetaryDonationsByCode(c, utils.StatusCodeApproved, "Failed to fetch approved donations")
}

// GetPendingMonetaryDonations returns all pending monetary donations.
func GetPendingMonetaryDonations(c *gin.Context) {
	listMonetaryDonationsByCode(c, utils.StatusCodePending, "Failed to fetch pending donations")
}

func listMonetaryDonationsByCode(c *gin.Context, statusCode, failMessage string) {
	var donations []models.MonetaryDonation
	if services.GetCachedList(c.Request.Context(), models.SubmissionTypeMonetaryDonation, statusCode, &donations) {
		c.JSON(http.StatusOK, donations)
		return
	}

	statusID, err := utils.GetStatusIDByCode(models.SubmissionTypeMonetaryDonation, statusCode)
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

	services.StoreCachedList(c.Request.Context(), models.SubmissionTypeMonetaryDonation, statusCode, donations)
	c.JSON(http.StatusOK, donations)
}

// GetMonetaryDonation returns a single monetary donation by ID.
func GetMonetaryDonation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	var donation models.MonetaryDonation
	if err := config.DB.Preload("Status").
		Where("donation_id = ? AND delete_at IS NULL", id).
		First(&donation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	c.JSON(http.StatusOK, donation)
}

// UpdateMonetaryDonationStatus applies a workflow transition to a monetary
// donation (admin only).
func UpdateMonetaryDonationStatus(c *gin.Context) {
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
		Type:    models.SubmissionTypeMonetaryDonation,
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

	var donation models.MonetaryDonation
	if err := config.DB.Preload("Status").
		Where("donation_id = ?", id).
		First(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation status"})
		return
	}

	c.JSON(http.StatusOK, donation)
}
