package models

import (
	"encoding/json"
	"time"
)

// Project status values (UI-facing; the legacy backend may still emit
// SUBMITTED, which normalizes to PENDING on the read path).
const (
	ProjectStatusPending    = "PENDING"
	ProjectStatusApproved   = "APPROVED"
	ProjectStatusRejected   = "REJECTED"
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusCompleted  = "COMPLETED"
	ProjectStatusCancelled  = "CANCELLED"
)

// Lab-admin validation gate, independent of the operational status.
const (
	ValidationPending  = "PENDING"
	ValidationApproved = "APPROVED"
	ValidationRejected = "REJECTED"
)

const (
	PaymentStatusNotRequired = "NOT_REQUIRED"
	PaymentStatusPending     = "PENDING"
	PaymentStatusPaid        = "PAID"
	PaymentStatusFailed      = "FAILED"
)

// Project represents the projects table
type Project struct {
	ProjectID        int        `gorm:"primaryKey;column:project_id" json:"project_id"`
	Title            string     `gorm:"column:title" json:"title"`
	Description      string     `gorm:"column:description" json:"description"`
	Requirements     string     `gorm:"column:requirements" json:"requirements"`
	RequiredSkills   string     `gorm:"column:required_skills" json:"required_skills"`
	Budget           float64    `gorm:"column:budget" json:"budget"`
	DurationMonths   int        `gorm:"column:duration_months" json:"duration_months"`
	StartDate        *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate          *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	MaxTeamSize      int        `gorm:"column:max_team_size" json:"max_team_size"`
	Status           string     `gorm:"column:status" json:"status"`
	ValidationStatus string     `gorm:"column:validation_status" json:"validation_status"`
	PaymentStatus    string     `gorm:"column:payment_status" json:"payment_status"`
	CompanyID        int        `gorm:"column:company_id" json:"company_id"`
	MentorID         *int       `gorm:"column:mentor_id" json:"mentor_id,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Company User   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Mentor  *User  `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
	Tasks   []Task `gorm:"foreignKey:ProjectID;references:ProjectID" json:"tasks,omitempty"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

// SkillList decodes the required_skills JSON column. A malformed or empty
// column yields an empty list, never an error.
func (p *Project) SkillList() []string {
	if p == nil || p.RequiredSkills == "" {
		return nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(p.RequiredSkills), &skills); err != nil {
		return nil
	}
	return skills
}

// EncodeSkills stores the given skill set into the required_skills column.
func (p *Project) EncodeSkills(skills []string) {
	if len(skills) == 0 {
		p.RequiredSkills = "[]"
		return
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		p.RequiredSkills = "[]"
		return
	}
	p.RequiredSkills = string(raw)
}
