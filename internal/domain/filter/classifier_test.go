package filter

import "testing"

func TestParseTier(t *testing.T) {
	tests := []struct {
		input string
		want  Tier
	}{
		{"strict", TierStrict},
		{"moderate", TierModerate},
		{"relaxed", TierRelaxed},
		{"", TierModerate},
		{"aggressive", TierModerate},
	}

	for _, tt := range tests {
		if got := ParseTier(tt.input); got != tt.want {
			t.Errorf("ParseTier(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClassify_BlocksHighSeverity(t *testing.T) {
	c := NewClassifier(nil, TierModerate)

	d := c.Classify("병신 같은 글")
	if d.Outcome != OutcomeBlock {
		t.Fatalf("Outcome = %v, want block", d.Outcome)
	}
	if d.Allowed {
		t.Fatal("high severity text must not be allowed")
	}
	if d.Severity != SeverityHigh {
		t.Fatalf("Severity = %v, want high", d.Severity)
	}
	if d.FilteredText != "** 같은 글" {
		t.Fatalf("FilteredText = %q, want %q", d.FilteredText, "** 같은 글")
	}
}

func TestClassify_TierThresholds(t *testing.T) {
	// Medium severity blocks under strict, redacts under moderate and relaxed.
	input := "you are an idiot"

	tests := []struct {
		tier Tier
		want Outcome
	}{
		{TierStrict, OutcomeBlock},
		{TierModerate, OutcomeRedact},
		{TierRelaxed, OutcomeRedact},
	}

	for _, tt := range tests {
		d := NewClassifier(nil, tt.tier).Classify(input)
		if d.Outcome != tt.want {
			t.Errorf("tier %v: Outcome = %v, want %v", tt.tier, d.Outcome, tt.want)
		}
		if d.FilteredText != "you are an *****" {
			t.Errorf("tier %v: FilteredText = %q", tt.tier, d.FilteredText)
		}
	}
}

func TestClassify_PIIAlwaysBlocks(t *testing.T) {
	// Email is only medium severity, but PII forces a block on every tier.
	input := "contact me at test@example.com"

	for _, tier := range []Tier{TierStrict, TierModerate, TierRelaxed} {
		d := NewClassifier(nil, tier).Classify(input)
		if d.Outcome != OutcomeBlock {
			t.Errorf("tier %v: Outcome = %v, want block", tier, d.Outcome)
		}
		if d.FilteredText != "contact me at [removed]" {
			t.Errorf("tier %v: FilteredText = %q", tier, d.FilteredText)
		}
	}
}

func TestClassify_SpamByTier(t *testing.T) {
	// Pure repetition spam blocks only under strict.
	input := "구매 구매 구매 구매"

	tests := []struct {
		tier Tier
		want Outcome
	}{
		{TierStrict, OutcomeBlock},
		{TierModerate, OutcomeRedact},
		{TierRelaxed, OutcomeRedact},
	}

	for _, tt := range tests {
		d := NewClassifier(nil, tt.tier).Classify(input)
		if d.Outcome != tt.want {
			t.Errorf("tier %v: Outcome = %v, want %v", tt.tier, d.Outcome, tt.want)
		}
		if len(d.SpamReasons) == 0 {
			t.Errorf("tier %v: expected spam reasons", tt.tier)
		}
	}
}

func TestClassify_CleanText(t *testing.T) {
	c := NewClassifier(nil, TierModerate)

	d := c.Classify("내일 체육대회 기대된다")
	if d.Outcome != OutcomeAllow {
		t.Fatalf("Outcome = %v, want allow", d.Outcome)
	}
	if !d.Allowed {
		t.Fatal("clean text must be allowed")
	}
	if d.FilteredText != "내일 체육대회 기대된다" {
		t.Fatalf("FilteredText = %q", d.FilteredText)
	}
	if len(d.Violations) != 0 {
		t.Fatalf("got %d violations, want 0", len(d.Violations))
	}
}

func TestClassify_LowSeverityRedacts(t *testing.T) {
	c := NewClassifier(nil, TierModerate)

	d := c.Classify("check https://example.com ok")
	if d.Outcome != OutcomeRedact {
		t.Fatalf("Outcome = %v, want redact", d.Outcome)
	}
	if !d.Allowed {
		t.Fatal("low severity redaction must stay allowed")
	}
}

func TestHighPriorityKeywords(t *testing.T) {
	c := NewClassifier(nil, TierModerate)

	kws := c.HighPriorityKeywords()
	if len(kws) == 0 {
		t.Fatal("default policy should carry escalation keywords")
	}

	found := false
	for _, kw := range kws {
		if kw == "자살" {
			found = true
		}
	}
	if !found {
		t.Error("expected 자살 in escalation keywords")
	}
}
