package models

import "time"

// Change request types.
const (
	RequestTypeScopeChange       = "SCOPE_CHANGE"
	RequestTypeTimelineExtension = "TIMELINE_EXTENSION"
	RequestTypeBudgetChange      = "BUDGET_CHANGE"
	RequestTypeTeamChange        = "TEAM_CHANGE"
	RequestTypeCancellation      = "CANCELLATION"
)

// Change request statuses. PENDING is the only non-terminal state; an
// APPROVED request moves to APPLIED once its changes are written onto the
// project, so a request is never applied twice.
const (
	RequestStatusPending   = "PENDING"
	RequestStatusApproved  = "APPROVED"
	RequestStatusRejected  = "REJECTED"
	RequestStatusCancelled = "CANCELLED"
	RequestStatusApplied   = "APPLIED"
)

// ChangeRequest represents the change_requests table
type ChangeRequest struct {
	RequestID       int        `gorm:"primaryKey;column:request_id" json:"request_id"`
	RequestNumber   string     `gorm:"column:request_number;unique" json:"request_number"`
	ProjectID       int        `gorm:"column:project_id" json:"project_id"`
	RequestedBy     int        `gorm:"column:requested_by" json:"requested_by"`
	RequestType     string     `gorm:"column:request_type" json:"request_type"`
	Status          string     `gorm:"column:status" json:"status"`
	Reason          string     `gorm:"column:reason" json:"reason"`
	ProposedChanges string     `gorm:"column:proposed_changes" json:"proposed_changes"`
	DecidedBy       *int       `gorm:"column:decided_by" json:"decided_by,omitempty"`
	DecidedAt       *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	AppliedBy       *int       `gorm:"column:applied_by" json:"applied_by,omitempty"`
	AppliedAt       *time.Time `gorm:"column:applied_at" json:"applied_at,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Project   Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Requester User    `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
}

// TableName overrides the table name for ChangeRequest
func (ChangeRequest) TableName() string {
	return "change_requests"
}

// ValidRequestType reports whether t is one of the known request types.
func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeScopeChange, RequestTypeTimelineExtension,
		RequestTypeBudgetChange, RequestTypeTeamChange, RequestTypeCancellation:
		return true
	}
	return false
}
