package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"collab-platform-api/config"
	"collab-platform-api/models"
	"collab-platform-api/services"
	"collab-platform-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateChangeRequest opens a new change request against a project. The
// proposed changes payload is validated strictly against the request type so
// only well-formed proposals enter the queue.
func CreateChangeRequest(c *gin.Context) {
	type CreateRequest struct {
		ProjectID       int    `json:"project_id" binding:"required"`
		RequestType     string `json:"request_type" binding:"required"`
		Reason          string `json:"reason" binding:"required"`
		ProposedChanges string `json:"proposed_changes"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if !models.ValidRequestType(req.RequestType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown request type"})
		return
	}

	if strings.TrimSpace(req.Reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Reason is required"})
		return
	}

	if err := services.ValidateProposedChanges(req.RequestType, req.ProposedChanges); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	var project models.Project
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", req.ProjectID).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	if !services.CanCreateChangeRequest(&project) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A project must be selected"})
		return
	}

	now := time.Now()
	request := models.ChangeRequest{
		RequestNumber:   fmt.Sprintf("CR-%s", uuid.NewString()[:8]),
		ProjectID:       project.ProjectID,
		RequestedBy:     userID.(int),
		RequestType:     req.RequestType,
		Status:          models.RequestStatusPending,
		Reason:          utils.SanitizeInput(req.Reason),
		ProposedChanges: strings.TrimSpace(req.ProposedChanges),
		CreateAt:        &now,
		UpdateAt:        &now,
	}

	if err := config.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create change request"})
		return
	}

	services.NotifyChangeRequestCreated(&request, &project)

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Change request created",
		"change_request": request,
	})
}

// GetProjectChangeRequests lists the change requests of one project.
func GetProjectChangeRequests(c *gin.Context) {
	id := c.Param("id")

	var requests []models.ChangeRequest
	query := config.DB.Preload("Requester").
		Where("project_id = ? AND delete_at IS NULL", id)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}

	if err := query.Order("create_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch change requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"change_requests": requests,
		"total":           len(requests),
	})
}

// GetChangeRequest returns one change request together with the editable
// draft parsed from its proposed changes.
func GetChangeRequest(c *gin.Context) {
	id := c.Param("id")

	var request models.ChangeRequest
	if err := config.DB.Preload("Project").Preload("Requester").
		Where("request_id = ? AND change_requests.delete_at IS NULL", id).
		First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Change request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"change_request": request,
		"draft":          services.ParseProposedChanges(request.ProposedChanges),
		"can_apply":      services.CanApplyChangeRequest(&request),
		"can_cancel":     services.CanCancelOrDelete(&request),
	})
}

func decideChangeRequest(c *gin.Context, decision string) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var request models.ChangeRequest
	if err := config.DB.Where("request_id = ? AND delete_at IS NULL", id).
		First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Change request not found"})
		return
	}

	if err := services.TransitionRequest(&request, decision, userID.(int)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := config.DB.Model(&models.ChangeRequest{}).
		Where("request_id = ?", request.RequestID).
		Updates(map[string]interface{}{
			"status":     request.Status,
			"decided_by": request.DecidedBy,
			"decided_at": request.DecidedAt,
			"update_at":  request.UpdateAt,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update change request"})
		return
	}

	var project models.Project
	if err := config.DB.Where("project_id = ?", request.ProjectID).First(&project).Error; err == nil {
		services.NotifyChangeRequestDecided(&request, &project)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        fmt.Sprintf("Change request %s", strings.ToLower(decision)),
		"change_request": request,
	})
}

// ApproveChangeRequest records the lab admin's approval.
func ApproveChangeRequest(c *gin.Context) {
	decideChangeRequest(c, models.RequestStatusApproved)
}

// RejectChangeRequest records the lab admin's rejection.
func RejectChangeRequest(c *gin.Context) {
	decideChangeRequest(c, models.RequestStatusRejected)
}

// CancelChangeRequest withdraws a pending request. Only the requester may
// cancel, and only while the request is still PENDING.
func CancelChangeRequest(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var request models.ChangeRequest
	if err := config.DB.Where("request_id = ? AND requested_by = ? AND delete_at IS NULL", id, userID).
		First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Change request not found"})
		return
	}

	if !services.CanCancelOrDelete(&request) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only a pending change request can be cancelled"})
		return
	}

	if err := services.TransitionRequest(&request, models.RequestStatusCancelled, userID.(int)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := config.DB.Save(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel change request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Change request cancelled",
		"change_request": request,
	})
}

// DeleteChangeRequest soft-deletes a pending request of the caller.
func DeleteChangeRequest(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var request models.ChangeRequest
	if err := config.DB.Where("request_id = ? AND requested_by = ? AND delete_at IS NULL", id, userID).
		First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Change request not found"})
		return
	}

	if !services.CanCancelOrDelete(&request) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only a pending change request can be deleted"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&request).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete change request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Change request deleted"})
}

// ApplyChangeRequest writes an approved request onto its project. The body
// may carry an edited draft; edited values win over the proposed ones.
func ApplyChangeRequest(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var override services.ChangeDraft
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&override); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
	}

	var request models.ChangeRequest
	if err := config.DB.Where("request_id = ? AND delete_at IS NULL", id).
		First(&request).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Change request not found"})
		return
	}

	if !services.CanApplyChangeRequest(&request) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only an approved change request can be applied"})
		return
	}

	applicator := services.NewChangeApplicatorService(config.DB)
	project, err := applicator.Apply(&request, override, userID.(int))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Change request applied",
		"change_request": request,
		"project":        project,
	})
}
