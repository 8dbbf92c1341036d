package services

import (
	"testing"

	"collab-platform-api/models"
)

func TestCanTransitionRequest(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{models.RequestStatusPending, models.RequestStatusApproved, true},
		{models.RequestStatusPending, models.RequestStatusRejected, true},
		{models.RequestStatusPending, models.RequestStatusCancelled, true},
		{models.RequestStatusPending, models.RequestStatusApplied, false},
		{models.RequestStatusApproved, models.RequestStatusApplied, true},
		{models.RequestStatusApproved, models.RequestStatusRejected, false},
		{models.RequestStatusApproved, models.RequestStatusCancelled, false},
		{models.RequestStatusRejected, models.RequestStatusApproved, false},
		{models.RequestStatusCancelled, models.RequestStatusPending, false},
		{models.RequestStatusApplied, models.RequestStatusApproved, false},
		{models.RequestStatusApplied, models.RequestStatusApplied, false},
		{"", models.RequestStatusApproved, false},
	}

	for _, tt := range tests {
		if got := CanTransitionRequest(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransitionRequest(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTransitionRequestStampsDecision(t *testing.T) {
	request := &models.ChangeRequest{Status: models.RequestStatusPending}

	if err := TransitionRequest(request, models.RequestStatusApproved, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if request.Status != models.RequestStatusApproved {
		t.Fatalf("status = %q, want APPROVED", request.Status)
	}
	if request.DecidedBy == nil || *request.DecidedBy != 7 {
		t.Fatalf("DecidedBy = %v, want 7", request.DecidedBy)
	}
	if request.DecidedAt == nil {
		t.Fatalf("DecidedAt not stamped")
	}
	if request.AppliedBy != nil || request.AppliedAt != nil {
		t.Fatalf("application fields must stay empty on a decision")
	}
}

func TestTransitionRequestStampsApplication(t *testing.T) {
	request := &models.ChangeRequest{Status: models.RequestStatusApproved}

	if err := TransitionRequest(request, models.RequestStatusApplied, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if request.Status != models.RequestStatusApplied {
		t.Fatalf("status = %q, want APPLIED", request.Status)
	}
	if request.AppliedBy == nil || *request.AppliedBy != 3 {
		t.Fatalf("AppliedBy = %v, want 3", request.AppliedBy)
	}
	if request.AppliedAt == nil {
		t.Fatalf("AppliedAt not stamped")
	}
}

func TestTransitionRequestRefusesIllegalMove(t *testing.T) {
	request := &models.ChangeRequest{Status: models.RequestStatusRejected}

	if err := TransitionRequest(request, models.RequestStatusApplied, 1); err == nil {
		t.Fatalf("expected error applying a rejected request")
	}
	if request.Status != models.RequestStatusRejected {
		t.Fatalf("illegal transition must leave the request untouched, got %q", request.Status)
	}
	if request.AppliedBy != nil {
		t.Fatalf("illegal transition must not stamp AppliedBy")
	}

	if err := TransitionRequest(nil, models.RequestStatusApproved, 1); err == nil {
		t.Fatalf("expected error for nil request")
	}
}

// An applied request can never be applied again.
func TestApplyIsTerminal(t *testing.T) {
	request := &models.ChangeRequest{Status: models.RequestStatusApproved}

	if err := TransitionRequest(request, models.RequestStatusApplied, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if CanApplyChangeRequest(request) {
		t.Fatalf("applied request must not be applicable again")
	}
	if err := TransitionRequest(request, models.RequestStatusApplied, 3); err == nil {
		t.Fatalf("expected error re-applying an applied request")
	}
}
