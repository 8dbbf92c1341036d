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

// GetProjects returns the projects visible to the caller. Companies see
// their own submissions, mentors the projects assigned to them, lab admins
// everything.
func GetProjects(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var projects []models.Project
	query := config.DB.Preload("Company").Preload("Mentor").
		Where("projects.delete_at IS NULL")

	switch roleID.(int) {
	case models.RoleCompany:
		query = query.Where("company_id = ?", userID)
	case models.RoleMentor:
		query = query.Where("mentor_id = ?", userID)
	}

	// Apply filters from query params
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", utils.NormalizeProjectStatus(status))
	}

	if validation := c.Query("validation_status"); validation != "" {
		query = query.Where("validation_status = ?", validation)
	}

	if err := query.Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch projects"})
		return
	}

	// Legacy rows may still carry SUBMITTED
	for i := range projects {
		projects[i].Status = utils.NormalizeProjectStatus(projects[i].Status)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProject returns a single project. The read path also refreshes the
// derived payment_status so the completion gate always sees settled
// payments.
func GetProject(c *gin.Context) {
	id := c.Param("id")

	var project models.Project
	if err := config.DB.Preload("Company").Preload("Mentor").Preload("Tasks").
		Where("project_id = ? AND projects.delete_at IS NULL", id).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	paymentSvc := services.NewPaymentService(config.DB)
	if derived, err := paymentSvc.RefreshProjectPaymentStatus(project.ProjectID); err == nil {
		project.PaymentStatus = derived
	}

	project.Status = utils.NormalizeProjectStatus(project.Status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}

// CreateProject submits a new company project. It enters the lab-admin
// validation queue as PENDING/PENDING.
func CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Title          string   `json:"title" binding:"required"`
		Description    string   `json:"description" binding:"required"`
		Requirements   string   `json:"requirements"`
		RequiredSkills []string `json:"required_skills"`
		Budget         float64  `json:"budget" binding:"required,gt=0"`
		DurationMonths int      `json:"duration_months" binding:"required,gt=0"`
		StartDate      *string  `json:"start_date"`
		EndDate        *string  `json:"end_date"`
		MaxTeamSize    int      `json:"max_team_size"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	now := time.Now()
	project := models.Project{
		Title:            utils.SanitizeInput(req.Title),
		Description:      req.Description,
		Requirements:     req.Requirements,
		Budget:           req.Budget,
		DurationMonths:   req.DurationMonths,
		MaxTeamSize:      req.MaxTeamSize,
		Status:           models.ProjectStatusPending,
		ValidationStatus: models.ValidationPending,
		PaymentStatus:    models.PaymentStatusNotRequired,
		CompanyID:        userID.(int),
		CreateAt:         &now,
		UpdateAt:         &now,
	}
	project.EncodeSkills(req.RequiredSkills)

	if req.StartDate != nil {
		if t, err := time.Parse("2006-01-02", *req.StartDate); err == nil {
			project.StartDate = &t
		}
	}
	if req.EndDate != nil {
		if t, err := time.Parse("2006-01-02", *req.EndDate); err == nil {
			project.EndDate = &t
		}
	}

	if err := config.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Project created successfully",
		"project": project,
	})
}

// UpdateProject edits a company's own project while it is still PENDING.
func UpdateProject(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	type UpdateProjectRequest struct {
		Title          string   `json:"title"`
		Description    string   `json:"description"`
		Requirements   string   `json:"requirements"`
		RequiredSkills []string `json:"required_skills"`
		Budget         float64  `json:"budget"`
		DurationMonths int      `json:"duration_months"`
		MaxTeamSize    int      `json:"max_team_size"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var project models.Project
	if err := config.DB.Where("project_id = ? AND company_id = ? AND delete_at IS NULL", id, userID).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	if utils.NormalizeProjectStatus(project.Status) != models.ProjectStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only a pending project can be edited; submit a change request instead"})
		return
	}

	now := time.Now()
	if req.Title != "" {
		project.Title = utils.SanitizeInput(req.Title)
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Requirements != "" {
		project.Requirements = req.Requirements
	}
	if req.RequiredSkills != nil {
		project.EncodeSkills(req.RequiredSkills)
	}
	if req.Budget > 0 {
		if ok, msg := utils.ValidateAmount(req.Budget); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}
		project.Budget = req.Budget
	}
	if req.DurationMonths > 0 {
		project.DurationMonths = req.DurationMonths
	}
	if req.MaxTeamSize > 0 {
		project.MaxTeamSize = req.MaxTeamSize
	}
	project.UpdateAt = &now

	if err := config.DB.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project updated successfully",
		"project": project,
	})
}

// UpdateProjectStatus moves a project between operational statuses. A
// terminal project cannot be moved again.
func UpdateProjectStatus(c *gin.Context) {
	id := c.Param("id")

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	target := utils.NormalizeProjectStatus(req.Status)
	if !utils.ValidProjectStatus(target) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown project status"})
		return
	}

	// COMPLETED is only reachable through the completion flow, where the
	// payment and task gates apply
	if target == models.ProjectStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A project is completed through the completion flow, not a status update"})
		return
	}

	var project models.Project
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", id).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	if utils.IsTerminalProjectStatus(project.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Project is already completed or cancelled"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&project).
		Updates(map[string]interface{}{"status": target, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update project status"})
		return
	}

	project.Status = target
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project status updated",
		"project": project,
	})
}

// ValidateProject is the lab-admin approve/reject gate on a newly submitted
// project, independent of the operational status.
func ValidateProject(c *gin.Context) {
	id := c.Param("id")

	type ValidateRequest struct {
		Decision string `json:"decision" binding:"required"`
		Comment  string `json:"comment"`
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if req.Decision != models.ValidationApproved && req.Decision != models.ValidationRejected {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Decision must be APPROVED or REJECTED"})
		return
	}

	var project models.Project
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", id).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	if project.ValidationStatus != models.ValidationPending {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Project has already been validated"})
		return
	}

	status := models.ProjectStatusApproved
	if req.Decision == models.ValidationRejected {
		status = models.ProjectStatusRejected
	}

	now := time.Now()
	if err := config.DB.Model(&project).Updates(map[string]interface{}{
		"validation_status": req.Decision,
		"status":            status,
		"update_at":         now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to validate project"})
		return
	}

	services.NotifyProjectValidated(&project, req.Decision)

	project.ValidationStatus = req.Decision
	project.Status = status
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project validation recorded",
		"project": project,
	})
}

// RequestComplete lets the mentor submit the project for completion once
// every task is finished. The company still finalizes after payment.
func RequestComplete(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var project models.Project
	if err := config.DB.Where("project_id = ? AND mentor_id = ? AND delete_at IS NULL", id, userID).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	var tasks []models.Task
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", project.ProjectID).
		Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch tasks"})
		return
	}

	if !services.CanSubmitForCompletion(&project, tasks) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All tasks must be finished before requesting completion"})
		return
	}

	services.NotifyCompletionRequested(&project)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Completion requested; the company can finalize once payment settles",
	})
}

// CompleteProject finalizes a paid project.
func CompleteProject(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	var project models.Project
	if err := config.DB.Where("project_id = ? AND company_id = ? AND delete_at IS NULL", id, userID).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	// Pick up any payment that settled since the last read
	paymentSvc := services.NewPaymentService(config.DB)
	if derived, err := paymentSvc.RefreshProjectPaymentStatus(project.ProjectID); err == nil {
		project.PaymentStatus = derived
	}

	if !services.CanComplete(&project) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Project cannot be completed until payment is settled"})
		return
	}

	var tasks []models.Task
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", project.ProjectID).
		Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch tasks"})
		return
	}
	if !services.AllTasksFinished(tasks) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All tasks must be finished before the project can be completed"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&project).Updates(map[string]interface{}{
		"status":    models.ProjectStatusCompleted,
		"update_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to complete project"})
		return
	}

	project.Status = models.ProjectStatusCompleted
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project completed",
		"project": project,
	})
}
