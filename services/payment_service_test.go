package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"collab-platform-api/models"
)

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		payments []models.Payment
		want     string
	}{
		{"no payments", nil, models.PaymentStatusNotRequired},
		{
			"pending only",
			[]models.Payment{{Status: models.PaymentPending}},
			models.PaymentStatusPending,
		},
		{
			"one completed wins",
			[]models.Payment{
				{Status: models.PaymentFailed},
				{Status: models.PaymentCompleted},
				{Status: models.PaymentPending},
			},
			models.PaymentStatusPaid,
		},
		{
			"failed only",
			[]models.Payment{{Status: models.PaymentFailed}},
			models.PaymentStatusFailed,
		},
		{
			"failed and pending keeps pending",
			[]models.Payment{
				{Status: models.PaymentFailed},
				{Status: models.PaymentPending},
			},
			models.PaymentStatusPending,
		},
	}

	for _, tt := range tests {
		if got := DerivePaymentStatus(tt.payments); got != tt.want {
			t.Fatalf("%s: DerivePaymentStatus = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// Full read-path scenario: a pending payment keeps the completion gate shut;
// once the payment settles, the refresh marks the project PAID and the gate
// opens.
func TestRefreshProjectPaymentStatusUnlocksCompletion(t *testing.T) {
	paymentsPattern := regexp.MustCompile("SELECT .* FROM .payments. WHERE project_id = \\?")
	projectPattern := regexp.MustCompile("SELECT .* FROM .projects. WHERE project_id = \\?")
	updatePattern := regexp.MustCompile("UPDATE .projects. SET .payment_status.=.*WHERE project_id = \\?")

	paymentColumns := []string{"payment_id", "project_id", "company_id", "amount", "status"}
	projectColumns := []string{"project_id", "status", "payment_status", "company_id"}

	steps := []*queryStep{
		// First refresh: payment still pending, no write happens
		{
			kind:    kindQuery,
			pattern: paymentsPattern,
			args:    []driver.Value{int64(42)},
			columns: paymentColumns,
			rows:    [][]driver.Value{{int64(7), int64(42), int64(9), 10000.0, "PENDING"}},
		},
		{
			kind:    kindQuery,
			pattern: projectPattern,
			args:    []driver.Value{int64(42)},
			columns: projectColumns,
			rows:    [][]driver.Value{{int64(42), "IN_PROGRESS", "PENDING", int64(9)}},
		},
		// Second refresh: payment settled, project row gets updated
		{
			kind:    kindQuery,
			pattern: paymentsPattern,
			args:    []driver.Value{int64(42)},
			columns: paymentColumns,
			rows:    [][]driver.Value{{int64(7), int64(42), int64(9), 10000.0, "COMPLETED"}},
		},
		{
			kind:    kindQuery,
			pattern: projectPattern,
			args:    []driver.Value{int64(42)},
			columns: projectColumns,
			rows:    [][]driver.Value{{int64(42), "IN_PROGRESS", "PENDING", int64(9)}},
		},
		{
			kind:    kindExec,
			pattern: updatePattern,
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewPaymentService(db)

	derived, err := svc.RefreshProjectPaymentStatus(42)
	if err != nil {
		t.Fatalf("first refresh returned error: %v", err)
	}
	if derived != models.PaymentStatusPending {
		t.Fatalf("first refresh derived %q, want PENDING", derived)
	}

	project := &models.Project{
		ProjectID:     42,
		Status:        models.ProjectStatusInProgress,
		PaymentStatus: derived,
	}
	if CanComplete(project) {
		t.Fatalf("completion must stay locked while payment is pending")
	}

	derived, err = svc.RefreshProjectPaymentStatus(42)
	if err != nil {
		t.Fatalf("second refresh returned error: %v", err)
	}
	if derived != models.PaymentStatusPaid {
		t.Fatalf("second refresh derived %q, want PAID", derived)
	}

	project.PaymentStatus = derived
	if !CanComplete(project) {
		t.Fatalf("completion must unlock once the payment settled")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
