package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"collab-platform-api/models"
	"collab-platform-api/utils"
)

// ChangeDraft is the editable set of values derived from a change request's
// proposed_changes payload. Every field is optional; the operator may adjust
// any of them before confirming, so the values written to the project are
// whatever the draft holds at apply time, not necessarily the original
// proposal.
type ChangeDraft struct {
	Budget         *float64 `json:"budget,omitempty"`
	DurationMonths *int     `json:"duration_months,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"`
	EndDate        *string  `json:"end_date,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Requirements   *string  `json:"requirements,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	MaxTeamSize    *int     `json:"max_team_size,omitempty"`
}

// proposedChangesPayload mirrors the conventional JSON shape stored in
// proposed_changes. Keys are camelCase, written by the dashboard.
type proposedChangesPayload struct {
	Budget         *float64        `json:"budget"`
	DurationMonths *int            `json:"durationMonths"`
	StartDate      *string         `json:"startDate"`
	EndDate        *string         `json:"endDate"`
	Description    *string         `json:"description"`
	Requirements   *string         `json:"requirements"`
	RequiredSkills json.RawMessage `json:"requiredSkills"`
	MaxTeamSize    *int            `json:"maxTeamSize"`
}

// ParseProposedChanges builds a draft from the raw payload, best effort.
// Only a trimmed string that looks like a JSON object is decoded; anything
// else (including decode failures) yields an empty draft. Legacy rows hold
// free text here, so this path must never fail.
func ParseProposedChanges(raw string) ChangeDraft {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return ChangeDraft{}
	}

	var payload proposedChangesPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return ChangeDraft{}
	}

	return ChangeDraft{
		Budget:         payload.Budget,
		DurationMonths: payload.DurationMonths,
		StartDate:      payload.StartDate,
		EndDate:        payload.EndDate,
		Description:    payload.Description,
		Requirements:   payload.Requirements,
		RequiredSkills: decodeSkills(payload.RequiredSkills),
		MaxTeamSize:    payload.MaxTeamSize,
	}
}

// decodeSkills accepts either a JSON array of strings or a single
// comma-separated string, the two spellings found in stored payloads.
func decodeSkills(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var csv string
	if err := json.Unmarshal(raw, &csv); err == nil {
		return utils.ParseSkillList(csv)
	}
	return nil
}

// MergeDraft overlays the operator's edits on the parsed proposal. Fields
// left nil in the override keep the proposed value.
func MergeDraft(base, override ChangeDraft) ChangeDraft {
	merged := base
	if override.Budget != nil {
		merged.Budget = override.Budget
	}
	if override.DurationMonths != nil {
		merged.DurationMonths = override.DurationMonths
	}
	if override.StartDate != nil {
		merged.StartDate = override.StartDate
	}
	if override.EndDate != nil {
		merged.EndDate = override.EndDate
	}
	if override.Description != nil {
		merged.Description = override.Description
	}
	if override.Requirements != nil {
		merged.Requirements = override.Requirements
	}
	if override.RequiredSkills != nil {
		merged.RequiredSkills = override.RequiredSkills
	}
	if override.MaxTeamSize != nil {
		merged.MaxTeamSize = override.MaxTeamSize
	}
	return merged
}

// BuildProjectPatch turns a draft into the column updates for the request
// type. Fields outside the type's scope are ignored even when the draft
// carries them; a CANCELLATION never reads the draft at all.
func BuildProjectPatch(requestType string, draft ChangeDraft) map[string]interface{} {
	patch := map[string]interface{}{}

	switch requestType {
	case models.RequestTypeCancellation:
		patch["status"] = models.ProjectStatusCancelled

	case models.RequestTypeBudgetChange:
		if draft.Budget != nil {
			patch["budget"] = *draft.Budget
		}

	case models.RequestTypeTimelineExtension:
		if draft.DurationMonths != nil {
			patch["duration_months"] = *draft.DurationMonths
		}
		if draft.StartDate != nil {
			if t, ok := parseDraftDate(*draft.StartDate); ok {
				patch["start_date"] = t
			}
		}
		if draft.EndDate != nil {
			if t, ok := parseDraftDate(*draft.EndDate); ok {
				patch["end_date"] = t
			}
		}

	case models.RequestTypeScopeChange:
		if draft.Description != nil {
			patch["description"] = *draft.Description
		}
		if draft.Requirements != nil {
			patch["requirements"] = *draft.Requirements
		}
		if draft.RequiredSkills != nil {
			patch["required_skills"] = encodeSkills(draft.RequiredSkills)
		}

	case models.RequestTypeTeamChange:
		if draft.MaxTeamSize != nil {
			patch["max_team_size"] = *draft.MaxTeamSize
		}
		if draft.RequiredSkills != nil {
			patch["required_skills"] = encodeSkills(draft.RequiredSkills)
		}
	}

	return patch
}

func parseDraftDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func encodeSkills(skills []string) string {
	raw, err := json.Marshal(skills)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// Strict per-type payload shapes used when a change request is created.
// Unknown keys are rejected so new rows cannot reintroduce the loose
// convention the lenient parser tolerates.
type budgetChangePayload struct {
	Budget *float64 `json:"budget"`
}

type timelineExtensionPayload struct {
	DurationMonths *int    `json:"durationMonths"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
}

type scopeChangePayload struct {
	Description    *string         `json:"description"`
	Requirements   *string         `json:"requirements"`
	RequiredSkills json.RawMessage `json:"requiredSkills"`
}

type teamChangePayload struct {
	MaxTeamSize    *int            `json:"maxTeamSize"`
	RequiredSkills json.RawMessage `json:"requiredSkills"`
}

// ValidateProposedChanges strictly checks a new payload against the request
// type. CANCELLATION takes no payload; every other type requires a JSON
// object carrying at least one of its recognized fields and nothing else.
func ValidateProposedChanges(requestType, raw string) error {
	trimmed := strings.TrimSpace(raw)

	if requestType == models.RequestTypeCancellation {
		if trimmed != "" {
			return fmt.Errorf("a cancellation request takes no proposed changes")
		}
		return nil
	}

	if trimmed == "" {
		return fmt.Errorf("proposed changes are required for %s", requestType)
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.DisallowUnknownFields()

	switch requestType {
	case models.RequestTypeBudgetChange:
		var p budgetChangePayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("invalid budget change payload: %v", err)
		}
		if p.Budget == nil {
			return fmt.Errorf("budget is required for a budget change")
		}
		if ok, msg := utils.ValidateAmount(*p.Budget); !ok {
			return fmt.Errorf("invalid budget: %s", msg)
		}

	case models.RequestTypeTimelineExtension:
		var p timelineExtensionPayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("invalid timeline extension payload: %v", err)
		}
		if p.DurationMonths == nil && p.StartDate == nil && p.EndDate == nil {
			return fmt.Errorf("a timeline extension must change at least one field")
		}
		if p.DurationMonths != nil && *p.DurationMonths <= 0 {
			return fmt.Errorf("durationMonths must be positive")
		}
		for _, d := range []*string{p.StartDate, p.EndDate} {
			if d == nil {
				continue
			}
			if _, ok := parseDraftDate(*d); !ok {
				return fmt.Errorf("invalid date %q", *d)
			}
		}

	case models.RequestTypeScopeChange:
		var p scopeChangePayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("invalid scope change payload: %v", err)
		}
		if p.Description == nil && p.Requirements == nil && len(p.RequiredSkills) == 0 {
			return fmt.Errorf("a scope change must change at least one field")
		}

	case models.RequestTypeTeamChange:
		var p teamChangePayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("invalid team change payload: %v", err)
		}
		if p.MaxTeamSize == nil && len(p.RequiredSkills) == 0 {
			return fmt.Errorf("a team change must change at least one field")
		}
		if p.MaxTeamSize != nil && *p.MaxTeamSize <= 0 {
			return fmt.Errorf("maxTeamSize must be positive")
		}

	default:
		return fmt.Errorf("unknown request type %q", requestType)
	}

	return nil
}

// ChangeApplicatorService writes an approved change request onto its project.
type ChangeApplicatorService struct {
	db *gorm.DB
}

func NewChangeApplicatorService(db *gorm.DB) *ChangeApplicatorService {
	return &ChangeApplicatorService{db: db}
}

// Apply merges the operator's edits over the proposed changes, patches the
// project in one update, and moves the request to APPLIED, all in a single
// transaction. A request that is not APPROVED is refused before any write.
func (s *ChangeApplicatorService) Apply(request *models.ChangeRequest, override ChangeDraft, actorID int) (*models.Project, error) {
	if !CanApplyChangeRequest(request) {
		return nil, fmt.Errorf("only an approved change request can be applied")
	}

	draft := MergeDraft(ParseProposedChanges(request.ProposedChanges), override)
	patch := BuildProjectPatch(request.RequestType, draft)
	if len(patch) == 0 {
		return nil, fmt.Errorf("change request carries no applicable changes")
	}

	var project models.Project
	if err := s.db.Where("project_id = ? AND delete_at IS NULL", request.ProjectID).
		First(&project).Error; err != nil {
		return nil, fmt.Errorf("project not found for change request %d", request.RequestID)
	}

	now := time.Now()
	patch["update_at"] = now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Claim the request first. The status condition makes the row the
		// arbiter under concurrent applies: whoever moves it off APPROVED
		// wins, everyone else rolls back before touching the project.
		claim := tx.Model(&models.ChangeRequest{}).
			Where("request_id = ? AND status = ?", request.RequestID, models.RequestStatusApproved).
			Updates(map[string]interface{}{
				"status":     models.RequestStatusApplied,
				"applied_by": actorID,
				"applied_at": now,
				"update_at":  now,
			})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return fmt.Errorf("change request has already been applied")
		}

		return tx.Model(&models.Project{}).
			Where("project_id = ?", project.ProjectID).
			Updates(patch).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = models.RequestStatusApplied
	request.AppliedBy = &actorID
	request.AppliedAt = &now
	request.UpdateAt = &now

	if err := s.db.Where("project_id = ?", project.ProjectID).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}
