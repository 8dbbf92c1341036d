// utils/status.go - Status normalization helpers
package utils

import (
	"strings"

	"collab-platform-api/models"
)

// NormalizeProjectStatus maps legacy backend status spellings onto the
// canonical set. SUBMITTED rows predate the PENDING rename and still exist
// in older databases.
func NormalizeProjectStatus(status string) string {
	s := strings.ToUpper(strings.TrimSpace(status))
	switch s {
	case "SUBMITTED":
		return models.ProjectStatusPending
	case models.ProjectStatusPending, models.ProjectStatusApproved,
		models.ProjectStatusRejected, models.ProjectStatusInProgress,
		models.ProjectStatusCompleted, models.ProjectStatusCancelled:
		return s
	}
	return s
}

// ValidProjectStatus reports whether status is one of the canonical
// project statuses after normalization.
func ValidProjectStatus(status string) bool {
	switch NormalizeProjectStatus(status) {
	case models.ProjectStatusPending, models.ProjectStatusApproved,
		models.ProjectStatusRejected, models.ProjectStatusInProgress,
		models.ProjectStatusCompleted, models.ProjectStatusCancelled:
		return true
	}
	return false
}

// IsTerminalProjectStatus reports whether a project can no longer move.
func IsTerminalProjectStatus(status string) bool {
	s := NormalizeProjectStatus(status)
	return s == models.ProjectStatusCompleted || s == models.ProjectStatusCancelled
}

// ParseSkillList splits a comma-separated skill string into a cleaned list.
// Empty entries are dropped; surrounding whitespace is trimmed.
func ParseSkillList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skill := strings.TrimSpace(part)
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}
	if len(skills) == 0 {
		return nil
	}
	return skills
}
