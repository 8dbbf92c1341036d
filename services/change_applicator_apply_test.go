package services

import (
	"database/sql/driver"
	"regexp"
	"strings"
	"testing"

	"collab-platform-api/models"
)

// The request row is the arbiter against double application: the claim
// update is conditional on status APPROVED, so a second apply of the same
// request rolls back before the project is patched again.
func TestApplyClaimsRequestBeforePatching(t *testing.T) {
	projectPattern := regexp.MustCompile("SELECT .* FROM .projects. WHERE project_id = \\?")
	claimPattern := regexp.MustCompile("UPDATE .change_requests. SET .*WHERE request_id = \\? AND status = \\?")
	patchPattern := regexp.MustCompile("UPDATE .projects. SET .*budget.*WHERE project_id = \\?")

	projectColumns := []string{"project_id", "title", "budget", "status", "payment_status", "company_id"}
	projectRow := []driver.Value{int64(42), "Edge gateway", 5000.0, "IN_PROGRESS", "PAID", int64(9)}
	patchedRow := []driver.Value{int64(42), "Edge gateway", 9000.0, "IN_PROGRESS", "PAID", int64(9)}

	steps := []*queryStep{
		// First apply: claim succeeds, project gets patched and re-read
		{kind: kindQuery, pattern: projectPattern, columns: projectColumns, rows: [][]driver.Value{projectRow}},
		{kind: kindExec, pattern: claimPattern},
		{kind: kindExec, pattern: patchPattern},
		{kind: kindQuery, pattern: projectPattern, columns: projectColumns, rows: [][]driver.Value{patchedRow}},
		// Racing apply: another writer consumed the request first, the
		// conditional claim touches no row and the project stays untouched
		{kind: kindQuery, pattern: projectPattern, columns: projectColumns, rows: [][]driver.Value{patchedRow}},
		{kind: kindExec, pattern: claimPattern, result: scriptedResult{rowsAffected: 0}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewChangeApplicatorService(db)

	request := models.ChangeRequest{
		RequestID:       7,
		ProjectID:       42,
		RequestType:     models.RequestTypeBudgetChange,
		Status:          models.RequestStatusApproved,
		ProposedChanges: `{"budget": 9000}`,
	}

	winner := request
	project, err := svc.Apply(&winner, ChangeDraft{}, 3)
	if err != nil {
		t.Fatalf("first apply returned error: %v", err)
	}
	if project.Budget != 9000 {
		t.Fatalf("first apply: budget = %v, want 9000", project.Budget)
	}
	if winner.Status != models.RequestStatusApplied {
		t.Fatalf("first apply: request status = %q, want APPLIED", winner.Status)
	}
	if winner.AppliedBy == nil || *winner.AppliedBy != 3 {
		t.Fatalf("first apply: applied_by not stamped")
	}

	// Simulates a second handler that read the row before the winner committed
	racer := request
	if _, err := svc.Apply(&racer, ChangeDraft{}, 5); err == nil {
		t.Fatalf("racing apply must fail once the request is consumed")
	} else if !strings.Contains(err.Error(), "already been applied") {
		t.Fatalf("racing apply: unexpected error %v", err)
	}
	if racer.Status != models.RequestStatusApproved {
		t.Fatalf("failed apply must leave the request untouched, got %q", racer.Status)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
