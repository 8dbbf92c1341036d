package models

import "time"

// Payment statuses as recorded on the payments table. These describe the
// payment itself; the project carries a derived payment_status of its own.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

const (
	AllocationStatusActive   = "ACTIVE"
	AllocationStatusReleased = "RELEASED"
)

// Payment represents the payments table
type Payment struct {
	PaymentID   int        `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	ProjectID   int        `gorm:"column:project_id" json:"project_id"`
	CompanyID   int        `gorm:"column:company_id" json:"company_id"`
	Amount      float64    `gorm:"column:amount" json:"amount"`
	Status      string     `gorm:"column:status" json:"status"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Company User    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// FundAllocation represents the fund_allocations table. The unique index on
// payment_id is the authoritative guard against double allocation; the
// client-side presence check is only a UX hint.
type FundAllocation struct {
	AllocationID int        `gorm:"primaryKey;column:allocation_id" json:"allocation_id"`
	PaymentID    int        `gorm:"column:payment_id;uniqueIndex" json:"payment_id"`
	ProjectID    int        `gorm:"column:project_id" json:"project_id"`
	TotalAmount  float64    `gorm:"column:total_amount" json:"total_amount"`
	TeamAmount   float64    `gorm:"column:team_amount" json:"team_amount"`
	MentorAmount float64    `gorm:"column:mentor_amount" json:"mentor_amount"`
	LabAmount    float64    `gorm:"column:lab_amount" json:"lab_amount"`
	Status       string     `gorm:"column:status" json:"status"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`

	Payment Payment `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

// TableName overrides
func (Payment) TableName() string {
	return "payments"
}

func (FundAllocation) TableName() string {
	return "fund_allocations"
}
