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

// GetProjectTasks lists the tasks of a project. The mentor workspace polls
// this endpoint while it is open, so the response also reports whether the
// project is currently eligible for a completion request.
func GetProjectTasks(c *gin.Context) {
	id := c.Param("id")

	var project models.Project
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", id).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	var tasks []models.Task
	if err := config.DB.Preload("Assignee").
		Where("project_id = ? AND delete_at IS NULL", id).
		Order("task_id ASC").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":                   true,
		"tasks":                     tasks,
		"total":                     len(tasks),
		"can_submit_for_completion": services.CanSubmitForCompletion(&project, tasks),
	})
}

// CreateTask adds a task to a mentor's project.
func CreateTask(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		AssignedTo  *int   `json:"assigned_to"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var project models.Project
	if err := config.DB.Where("project_id = ? AND mentor_id = ? AND delete_at IS NULL", id, userID).
		First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Project not found"})
		return
	}

	if utils.IsTerminalProjectStatus(project.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot add tasks to a completed or cancelled project"})
		return
	}

	now := time.Now()
	task := models.Task{
		ProjectID:   project.ProjectID,
		Title:       utils.SanitizeInput(req.Title),
		Description: req.Description,
		Status:      models.TaskStatusTodo,
		AssignedTo:  req.AssignedTo,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task created",
		"task":    task,
	})
}

// UpdateTaskStatus moves a task between statuses.
func UpdateTaskStatus(c *gin.Context) {
	id := c.Param("id")

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	switch req.Status {
	case models.TaskStatusTodo, models.TaskStatusInProgress,
		models.TaskStatusDone, models.TaskStatusCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown task status"})
		return
	}

	var task models.Task
	if err := config.DB.Where("task_id = ? AND delete_at IS NULL", id).
		First(&task).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&task).
		Updates(map[string]interface{}{"status": req.Status, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update task"})
		return
	}

	task.Status = req.Status
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task status updated",
		"task":    task,
	})
}
