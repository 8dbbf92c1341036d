package services

import (
	"fmt"
	"log"
	"time"

	"collab-platform-api/config"
	"collab-platform-api/models"
)

// Workflow notifications: a notification row per recipient, plus a
// best-effort email. Mail failures are logged and never fail the workflow
// action that triggered them.

func createNotification(userID uint, title, message, ntype string, projectID *uint) {
	notification := models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		Type:             ntype,
		RelatedProjectID: projectID,
		CreateAt:         time.Now(),
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", userID, err)
	}
}

func sendMailQuietly(to []string, subject, body string) {
	if len(to) == 0 {
		return
	}
	if err := config.SendMail(to, subject, body); err != nil {
		log.Printf("Warning: failed to send notification mail: %v", err)
	}
}

// NotifyChangeRequestCreated tells every lab admin that a new change request
// is waiting for a decision.
func NotifyChangeRequestCreated(request *models.ChangeRequest, project *models.Project) {
	admins, err := GetLabAdminRecipients()
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}

	projectID := uint(project.ProjectID)
	title := "New change request"
	message := fmt.Sprintf("Change request %s (%s) was submitted for project \"%s\"",
		request.RequestNumber, request.RequestType, project.Title)

	emails := make([]string, 0, len(admins))
	for _, admin := range admins {
		createNotification(uint(admin.UserID), title, message, "info", &projectID)
		if admin.Email != "" {
			emails = append(emails, admin.Email)
		}
	}
	sendMailQuietly(emails, title, fmt.Sprintf("<p>%s</p>", message))
}

// NotifyChangeRequestDecided tells the requester the outcome of the review.
func NotifyChangeRequestDecided(request *models.ChangeRequest, project *models.Project) {
	projectID := uint(project.ProjectID)

	ntype := "success"
	outcome := "approved"
	if request.Status == models.RequestStatusRejected {
		ntype = "warning"
		outcome = "rejected"
	}
	title := fmt.Sprintf("Change request %s", outcome)
	message := fmt.Sprintf("Your change request %s for project \"%s\" was %s",
		request.RequestNumber, project.Title, outcome)

	createNotification(uint(request.RequestedBy), title, message, ntype, &projectID)

	var requester models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", request.RequestedBy).
		First(&requester).Error; err == nil && requester.Email != "" {
		sendMailQuietly([]string{requester.Email}, title, fmt.Sprintf("<p>%s</p>", message))
	}
}

// NotifyProjectValidated tells the submitting company the lab admin's
// validation decision.
func NotifyProjectValidated(project *models.Project, decision string) {
	projectID := uint(project.ProjectID)

	ntype := "success"
	if decision == models.ValidationRejected {
		ntype = "warning"
	}
	title := "Project validation decided"
	message := fmt.Sprintf("Project \"%s\" validation: %s", project.Title, decision)

	createNotification(uint(project.CompanyID), title, message, ntype, &projectID)
}

// NotifyCompletionRequested tells the company the mentor finished all tasks
// and submitted the project for completion.
func NotifyCompletionRequested(project *models.Project) {
	projectID := uint(project.ProjectID)
	title := "Completion requested"
	message := fmt.Sprintf("All tasks on project \"%s\" are finished; complete it once payment settles",
		project.Title)

	createNotification(uint(project.CompanyID), title, message, "info", &projectID)
}

// NotifyPaymentConfirmed tells the paying company the payment settled.
func NotifyPaymentConfirmed(payment *models.Payment, project *models.Project) {
	projectID := uint(project.ProjectID)
	title := "Payment confirmed"
	message := fmt.Sprintf("Payment of %.2f for project \"%s\" was confirmed",
		payment.Amount, project.Title)

	createNotification(uint(payment.CompanyID), title, message, "success", &projectID)
}
