package services

import (
	"collab-platform-api/models"
	"collab-platform-api/utils"
)

// Project action guards. These are total predicates: nil or malformed input
// answers false, never panics. Route middleware enforces roles; these
// functions gate the workflow state itself and are also consulted by the
// handlers before touching the database, so every surface agrees on what is
// currently legal.

// CanSubmitForCompletion reports whether a mentor may request completion of
// the project: at least one task exists, every task is finished, and the
// project is still active.
func CanSubmitForCompletion(project *models.Project, tasks []models.Task) bool {
	if project == nil || len(tasks) == 0 {
		return false
	}
	if utils.IsTerminalProjectStatus(project.Status) {
		return false
	}
	return AllTasksFinished(tasks)
}

// AllTasksFinished reports whether no unfinished task remains. A project
// without tasks passes; the mentor submission gate separately requires at
// least one task.
func AllTasksFinished(tasks []models.Task) bool {
	for i := range tasks {
		if !tasks[i].IsFinished() {
			return false
		}
	}
	return true
}

// CanComplete reports whether the company may finalize the project: payment
// settled and the project not already terminal.
func CanComplete(project *models.Project) bool {
	if project == nil {
		return false
	}
	if project.PaymentStatus != models.PaymentStatusPaid {
		return false
	}
	return !utils.IsTerminalProjectStatus(project.Status)
}

// CanCreateChangeRequest reports whether a change request may be opened
// against the project. The only local requirement is a selected project;
// the decision itself is the lab admin's.
func CanCreateChangeRequest(project *models.Project) bool {
	return project != nil
}

// CanApplyChangeRequest reports whether the request's changes may be written
// onto the project. Only an APPROVED request qualifies; an APPLIED one has
// already been consumed.
func CanApplyChangeRequest(request *models.ChangeRequest) bool {
	return request != nil && request.Status == models.RequestStatusApproved
}

// CanCancelOrDelete reports whether the requester may withdraw the request.
func CanCancelOrDelete(request *models.ChangeRequest) bool {
	return request != nil && request.Status == models.RequestStatusPending
}
