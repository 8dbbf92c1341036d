// controllers/dashboard.go
package controllers

import (
	"net/http"

	"collab-platform-api/config"
	"collab-platform-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the headline numbers for the role dashboards:
// project counts by status, pending validations and change requests.
func GetDashboardStats(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	projectsQuery := `
        SELECT status, COUNT(*) AS total
        FROM projects
        WHERE delete_at IS NULL`

	var args []interface{}
	switch roleID.(int) {
	case models.RoleCompany:
		projectsQuery += " AND company_id = ?"
		args = append(args, userID)
	case models.RoleMentor:
		projectsQuery += " AND mentor_id = ?"
		args = append(args, userID)
	}
	projectsQuery += " GROUP BY status"

	rows, err := config.DB.Raw(projectsQuery, args...).Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch dashboard stats"})
		return
	}
	defer rows.Close()

	byStatus := map[string]int64{}
	for rows.Next() {
		var (
			status string
			total  int64
		)
		if err := rows.Scan(&status, &total); err != nil {
			continue
		}
		byStatus[status] = total
	}

	var pendingValidations int64
	config.DB.Model(&models.Project{}).
		Where("validation_status = ? AND delete_at IS NULL", models.ValidationPending).
		Count(&pendingValidations)

	var pendingRequests int64
	config.DB.Model(&models.ChangeRequest{}).
		Where("status = ? AND delete_at IS NULL", models.RequestStatusPending).
		Count(&pendingRequests)

	c.JSON(http.StatusOK, gin.H{
		"success":                 true,
		"projects_by_status":      byStatus,
		"pending_validations":     pendingValidations,
		"pending_change_requests": pendingRequests,
	})
}

// GetAllocationSummary aggregates fund allocations per project.
func GetAllocationSummary(c *gin.Context) {
	query := `
        SELECT
            fa.project_id,
            p.title,
            COUNT(fa.allocation_id) AS allocation_count,
            COALESCE(SUM(fa.total_amount), 0) AS total_allocated,
            COALESCE(SUM(fa.team_amount), 0) AS team_total,
            COALESCE(SUM(fa.mentor_amount), 0) AS mentor_total,
            COALESCE(SUM(fa.lab_amount), 0) AS lab_total
        FROM fund_allocations fa
        JOIN projects p ON p.project_id = fa.project_id
        WHERE p.delete_at IS NULL
        GROUP BY fa.project_id, p.title
        ORDER BY fa.project_id`

	rows, err := config.DB.Raw(query).Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch allocation summary"})
		return
	}
	defer rows.Close()

	var summary []map[string]interface{}
	for rows.Next() {
		var (
			projectID       int
			title           string
			allocationCount int64
			totalAllocated  float64
			teamTotal       float64
			mentorTotal     float64
			labTotal        float64
		)
		if err := rows.Scan(&projectID, &title, &allocationCount,
			&totalAllocated, &teamTotal, &mentorTotal, &labTotal); err != nil {
			continue
		}
		summary = append(summary, map[string]interface{}{
			"project_id":       projectID,
			"title":            title,
			"allocation_count": allocationCount,
			"total_allocated":  totalAllocated,
			"team_total":       teamTotal,
			"mentor_total":     mentorTotal,
			"lab_total":        labTotal,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
		"total":   len(summary),
	})
}
