package services

import (
	"time"

	"gorm.io/gorm"

	"collab-platform-api/models"
)

// PaymentService keeps a project's derived payment_status in line with the
// payments recorded against it. Completion gating reads the derived value,
// so the refresh runs on every payment read and confirmation path.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// DerivePaymentStatus folds a project's payments into the project-level
// payment_status. One settled payment is enough to mark the project PAID;
// failures only surface when nothing is settled or still pending.
func DerivePaymentStatus(payments []models.Payment) string {
	var pending, failed bool
	for i := range payments {
		switch payments[i].Status {
		case models.PaymentCompleted:
			return models.PaymentStatusPaid
		case models.PaymentPending:
			pending = true
		case models.PaymentFailed:
			failed = true
		}
	}
	if pending {
		return models.PaymentStatusPending
	}
	if failed {
		return models.PaymentStatusFailed
	}
	return models.PaymentStatusNotRequired
}

// RefreshProjectPaymentStatus recomputes and, when it changed, persists the
// project's payment_status. Returns the derived status.
func (s *PaymentService) RefreshProjectPaymentStatus(projectID int) (string, error) {
	var payments []models.Payment
	if err := s.db.Where("project_id = ? AND delete_at IS NULL", projectID).
		Find(&payments).Error; err != nil {
		return "", err
	}

	derived := DerivePaymentStatus(payments)

	var project models.Project
	if err := s.db.Where("project_id = ? AND delete_at IS NULL", projectID).
		First(&project).Error; err != nil {
		return "", err
	}

	if project.PaymentStatus == derived {
		return derived, nil
	}

	now := time.Now()
	if err := s.db.Model(&models.Project{}).
		Where("project_id = ?", projectID).
		Updates(map[string]interface{}{
			"payment_status": derived,
			"update_at":      now,
		}).Error; err != nil {
		return "", err
	}

	return derived, nil
}
