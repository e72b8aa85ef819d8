package triage

import (
	"strings"

	"careconnect/internal/domain/model"
)

// highPriorityKeywords are matched as plain substrings, so "emergencyroom"
// still counts as an emergency.
var highPriorityKeywords = []string{"urgent", "critical", "bleeding", "accident", "emergency", "severe", "dying"}

// Classify returns HIGH when the description mentions any high priority
// keyword, ignoring case, and NORMAL otherwise.
func Classify(description string) model.Priority {
	lower := strings.ToLower(description)
	for _, kw := range highPriorityKeywords {
		if strings.Contains(lower, kw) {
			return model.PriorityHigh
		}
	}
	return model.PriorityNormal
}

// Summarize composes the one-line case summary shown on the dashboard.
// Inputs are used verbatim.
func Summarize(name, location, problemType string, priority model.Priority) string {
	return `Patient "` + name + `" from ` + location + ` requires ` + problemType + ` support. Priority: ` + string(priority) + `.`
}
