package report

import "strings"

// ComputePriority derives the triage priority from the category and the
// already-filtered description. It is a pure function: identical inputs
// always produce the same priority.
//
// Urgent is reserved for categories where a person may be in danger; high is
// triggered by configured escalation keywords in the description.
func ComputePriority(category Category, filteredDescription string, highPriorityKeywords []string) Priority {
	switch category {
	case CategoryViolence, CategoryHateSpeech, CategoryHarassment:
		return PriorityUrgent
	}

	desc := strings.ToLower(filteredDescription)
	for _, kw := range highPriorityKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(desc, kw) {
			return PriorityHigh
		}
	}

	switch category {
	case CategoryInappropriateContent, CategoryPrivacyViolation:
		return PriorityMedium
	}
	return PriorityLow
}
