package controllers

import (
	"net/http"
	"time"

	"collab-platform-api/config"
	"collab-platform-api/models"
	"collab-platform-api/services"
	"collab-platform-api/utils"

	"github.com/gin-gonic/gin"
)

// CreateFundAllocation splits a settled payment 70/20/10 across team,
// mentor and lab. The unique index on payment_id is the real idempotency
// guard; the presence check below only gives a cleaner message than a
// constraint violation.
func CreateFundAllocation(c *gin.Context) {
	type CreateAllocationRequest struct {
		PaymentID int `json:"payment_id" binding:"required"`
	}

	var req CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var payment models.Payment
	if err := config.DB.Where("payment_id = ? AND delete_at IS NULL", req.PaymentID).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
		return
	}

	if payment.Status != models.PaymentCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Funds can only be allocated from a completed payment"})
		return
	}

	if ok, msg := utils.ValidateAmount(payment.Amount); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}

	var existing models.FundAllocation
	if err := config.DB.Where("payment_id = ?", payment.PaymentID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An allocation already exists for this payment"})
		return
	}

	split, err := services.SplitFunds(payment.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	now := time.Now()
	allocation := models.FundAllocation{
		PaymentID:    payment.PaymentID,
		ProjectID:    payment.ProjectID,
		TotalAmount:  payment.Amount,
		TeamAmount:   split.Team,
		MentorAmount: split.Mentor,
		LabAmount:    split.Lab,
		Status:       models.AllocationStatusActive,
		CreateAt:     &now,
		UpdateAt:     &now,
	}

	if err := config.DB.Create(&allocation).Error; err != nil {
		// Unique index on payment_id catches the race the lookup above missed
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An allocation already exists for this payment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Fund allocation created",
		"allocation": allocation,
	})
}

// GetAllocationByPayment returns the allocation of one payment, if any.
func GetAllocationByPayment(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var allocation models.FundAllocation
	if err := config.DB.Preload("Payment").
		Where("payment_id = ?", paymentID).
		First(&allocation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No allocation exists for this payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"allocation": allocation,
	})
}

// GetProjectAllocations lists the allocations of a project.
func GetProjectAllocations(c *gin.Context) {
	id := c.Param("id")

	var allocations []models.FundAllocation
	if err := config.DB.Where("project_id = ?", id).
		Order("create_at DESC").Find(&allocations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch allocations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"allocations": allocations,
		"total":       len(allocations),
	})
}
