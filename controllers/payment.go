package controllers

import (
	"net/http"
	"time"

	"collab-platform-api/config"
	"collab-platform-api/models"
	"collab-platform-api/services"

	"github.com/gin-gonic/gin"
)

// GetProjectPayments lists the payments recorded against a project and
// returns the derived project payment status alongside them.
func GetProjectPayments(c *gin.Context) {
	id := c.Param("id")

	var payments []models.Payment
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", id).
		Order("create_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"payments":       payments,
		"total":          len(payments),
		"payment_status": services.DerivePaymentStatus(payments),
	})
}

// GetPayments lists payments in the caller's scope: a company sees its own,
// a lab admin everything.
func GetPayments(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var payments []models.Payment
	query := config.DB.Preload("Project").Where("payments.delete_at IS NULL")

	if roleID.(int) == models.RoleCompany {
		query = query.Where("company_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("create_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"payments": payments,
		"total":    len(payments),
	})
}

// ConfirmPayment settles a pending payment and refreshes the owning
// project's derived payment status, which in turn unlocks completion.
func ConfirmPayment(c *gin.Context) {
	id := c.Param("id")

	var payment models.Payment
	if err := config.DB.Where("payment_id = ? AND delete_at IS NULL", id).
		First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found"})
		return
	}

	if payment.Status != models.PaymentPending {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only a pending payment can be confirmed"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&payment).Updates(map[string]interface{}{
		"status":       models.PaymentCompleted,
		"confirmed_at": now,
		"update_at":    now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to confirm payment"})
		return
	}
	payment.Status = models.PaymentCompleted
	payment.ConfirmedAt = &now

	paymentSvc := services.NewPaymentService(config.DB)
	if _, err := paymentSvc.RefreshProjectPaymentStatus(payment.ProjectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Payment confirmed but project status refresh failed"})
		return
	}

	var project models.Project
	if err := config.DB.Where("project_id = ?", payment.ProjectID).First(&project).Error; err == nil {
		services.NotifyPaymentConfirmed(&payment, &project)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment confirmed",
		"payment": payment,
	})
}
