package report

import "testing"

var escalationKeywords = []string{"자살", "자해", "협박", "suicide", "threat"}

func TestComputePriority_UrgentCategories(t *testing.T) {
	for _, c := range []Category{CategoryViolence, CategoryHateSpeech, CategoryHarassment} {
		if got := ComputePriority(c, "", nil); got != PriorityUrgent {
			t.Errorf("ComputePriority(%s) = %s, want urgent", c, got)
		}
	}
}

func TestComputePriority_EscalationKeywords(t *testing.T) {
	tests := []struct {
		name        string
		category    Category
		description string
		want        Priority
	}{
		{"korean keyword", CategoryOther, "그 사람이 자살 이야기를 계속 해요", PriorityHigh},
		{"english keyword", CategorySpam, "he made a threat against me", PriorityHigh},
		{"keyword case insensitive", CategoryOther, "SUICIDE mention", PriorityHigh},
		{"no keyword", CategoryOther, "그냥 이상한 글이에요", PriorityLow},
		{"keyword beats medium category", CategoryPrivacyViolation, "협박 메시지를 받았어요", PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePriority(tt.category, tt.description, escalationKeywords)
			if got != tt.want {
				t.Errorf("ComputePriority = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputePriority_CategoryFallback(t *testing.T) {
	tests := []struct {
		category Category
		want     Priority
	}{
		{CategoryInappropriateContent, PriorityMedium},
		{CategoryPrivacyViolation, PriorityMedium},
		{CategorySpam, PriorityLow},
		{CategoryOther, PriorityLow},
	}

	for _, tt := range tests {
		if got := ComputePriority(tt.category, "평범한 설명", escalationKeywords); got != tt.want {
			t.Errorf("ComputePriority(%s) = %s, want %s", tt.category, got, tt.want)
		}
	}
}

// Priority is computed once at intake and must be reproducible: the same
// inputs always yield the same result.
func TestComputePriority_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		got := ComputePriority(CategoryOther, "자해 흔적을 봤어요", escalationKeywords)
		if got != PriorityHigh {
			t.Fatalf("iteration %d: got %s, want high", i, got)
		}
	}
}
