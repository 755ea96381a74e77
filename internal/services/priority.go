package services

import "strings"

// Alert priorities, most severe first.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

var (
	criticalKeywords    = []string{"suicide", "self-harm", "emergency"}
	highPriorityAreas   = []string{"emergency", "medical", "safety", "security", "suicide", "self-harm"}
	mediumPriorityAreas = []string{"dormitory", "residence", "bathroom", "parking"}
)

// DeterminePriority derives a display priority from an alert's text fields.
// It is a pure function recomputed on every read, never persisted. First
// match wins, most severe first; an empty description is fine.
func DeterminePriority(areaOfConcern, description string) string {
	content := strings.ToLower(areaOfConcern + " " + description)

	for _, kw := range criticalKeywords {
		if strings.Contains(content, kw) {
			return PriorityCritical
		}
	}
	for _, area := range highPriorityAreas {
		if strings.Contains(content, area) {
			return PriorityHigh
		}
	}
	for _, area := range mediumPriorityAreas {
		if strings.Contains(content, area) {
			return PriorityMedium
		}
	}
	return PriorityLow
}
