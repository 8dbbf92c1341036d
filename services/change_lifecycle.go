package services

import (
	"fmt"
	"time"

	"collab-platform-api/models"
)

// Legal change request transitions. PENDING is the only state with a choice;
// APPROVED can only be consumed by application. Everything else is terminal.
var requestTransitions = map[string][]string{
	models.RequestStatusPending: {
		models.RequestStatusApproved,
		models.RequestStatusRejected,
		models.RequestStatusCancelled,
	},
	models.RequestStatusApproved: {
		models.RequestStatusApplied,
	},
}

// CanTransitionRequest reports whether a change request may move from one
// status to another.
func CanTransitionRequest(from, to string) bool {
	for _, allowed := range requestTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionRequest moves the request to the given status, stamping the
// decision or application fields. The caller persists the mutated struct;
// an illegal transition leaves the request untouched.
func TransitionRequest(request *models.ChangeRequest, to string, actorID int) error {
	if request == nil {
		return fmt.Errorf("change request is required")
	}
	if !CanTransitionRequest(request.Status, to) {
		return fmt.Errorf("cannot move change request from %s to %s", request.Status, to)
	}

	now := time.Now()
	switch to {
	case models.RequestStatusApproved, models.RequestStatusRejected:
		request.DecidedBy = &actorID
		request.DecidedAt = &now
	case models.RequestStatusApplied:
		request.AppliedBy = &actorID
		request.AppliedAt = &now
	}
	request.Status = to
	request.UpdateAt = &now
	return nil
}
