package services

import (
	"testing"

	"collab-platform-api/models"
)

func TestCanSubmitForCompletion(t *testing.T) {
	active := &models.Project{ProjectID: 1, Status: models.ProjectStatusInProgress}

	tests := []struct {
		name    string
		project *models.Project
		tasks   []models.Task
		want    bool
	}{
		{
			name:    "nil project",
			project: nil,
			tasks:   []models.Task{{Status: models.TaskStatusDone}},
			want:    false,
		},
		{
			name:    "no tasks is never eligible",
			project: active,
			tasks:   []models.Task{},
			want:    false,
		},
		{
			name:    "unfinished task blocks",
			project: active,
			tasks: []models.Task{
				{Status: models.TaskStatusDone},
				{Status: models.TaskStatusInProgress},
			},
			want: false,
		},
		{
			name:    "all done",
			project: active,
			tasks: []models.Task{
				{Status: models.TaskStatusDone},
				{Status: models.TaskStatusCompleted},
			},
			want: true,
		},
		{
			name:    "completed project is terminal",
			project: &models.Project{Status: models.ProjectStatusCompleted},
			tasks:   []models.Task{{Status: models.TaskStatusDone}},
			want:    false,
		},
		{
			name:    "cancelled project is terminal",
			project: &models.Project{Status: models.ProjectStatusCancelled},
			tasks:   []models.Task{{Status: models.TaskStatusDone}},
			want:    false,
		},
	}

	for _, tt := range tests {
		if got := CanSubmitForCompletion(tt.project, tt.tasks); got != tt.want {
			t.Fatalf("%s: CanSubmitForCompletion = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAllTasksFinished(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  bool
	}{
		{"no tasks", nil, true},
		{"all done", []models.Task{{Status: models.TaskStatusDone}, {Status: models.TaskStatusCompleted}}, true},
		{"one open", []models.Task{{Status: models.TaskStatusDone}, {Status: models.TaskStatusTodo}}, false},
		{"in progress", []models.Task{{Status: models.TaskStatusInProgress}}, false},
	}

	for _, tt := range tests {
		if got := AllTasksFinished(tt.tasks); got != tt.want {
			t.Fatalf("%s: AllTasksFinished = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanComplete(t *testing.T) {
	tests := []struct {
		name    string
		project *models.Project
		want    bool
	}{
		{"nil project", nil, false},
		{
			"unpaid pending payment",
			&models.Project{Status: models.ProjectStatusInProgress, PaymentStatus: models.PaymentStatusPending},
			false,
		},
		{
			"failed payment",
			&models.Project{Status: models.ProjectStatusInProgress, PaymentStatus: models.PaymentStatusFailed},
			false,
		},
		{
			"not required",
			&models.Project{Status: models.ProjectStatusInProgress, PaymentStatus: models.PaymentStatusNotRequired},
			false,
		},
		{
			"missing payment status",
			&models.Project{Status: models.ProjectStatusInProgress},
			false,
		},
		{
			"paid and active",
			&models.Project{Status: models.ProjectStatusInProgress, PaymentStatus: models.PaymentStatusPaid},
			true,
		},
		{
			"paid but already completed",
			&models.Project{Status: models.ProjectStatusCompleted, PaymentStatus: models.PaymentStatusPaid},
			false,
		},
		{
			"paid but cancelled",
			&models.Project{Status: models.ProjectStatusCancelled, PaymentStatus: models.PaymentStatusPaid},
			false,
		},
	}

	for _, tt := range tests {
		if got := CanComplete(tt.project); got != tt.want {
			t.Fatalf("%s: CanComplete = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanCreateChangeRequest(t *testing.T) {
	if CanCreateChangeRequest(nil) {
		t.Fatalf("expected false without a selected project")
	}
	if !CanCreateChangeRequest(&models.Project{ProjectID: 1, Status: models.ProjectStatusCompleted}) {
		t.Fatalf("expected true for any selected project")
	}
}

func TestCanApplyChangeRequest(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.RequestStatusApproved, true},
		{models.RequestStatusPending, false},
		{models.RequestStatusRejected, false},
		{models.RequestStatusCancelled, false},
		{models.RequestStatusApplied, false},
		{"", false},
	}

	for _, tt := range tests {
		req := &models.ChangeRequest{Status: tt.status}
		if got := CanApplyChangeRequest(req); got != tt.want {
			t.Fatalf("status %q: CanApplyChangeRequest = %v, want %v", tt.status, got, tt.want)
		}
	}

	if CanApplyChangeRequest(nil) {
		t.Fatalf("expected false for nil request")
	}
}

func TestCanCancelOrDelete(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.RequestStatusPending, true},
		{models.RequestStatusApproved, false},
		{models.RequestStatusRejected, false},
		{models.RequestStatusCancelled, false},
		{models.RequestStatusApplied, false},
		{"", false},
	}

	for _, tt := range tests {
		req := &models.ChangeRequest{Status: tt.status}
		if got := CanCancelOrDelete(req); got != tt.want {
			t.Fatalf("status %q: CanCancelOrDelete = %v, want %v", tt.status, got, tt.want)
		}
	}

	if CanCancelOrDelete(nil) {
		t.Fatalf("expected false for nil request")
	}
}
