package filter

// Tier selects how aggressively the classifier blocks. It moves only the
// severity threshold; the detectors themselves are tier-independent.
type Tier string

const (
	TierStrict   Tier = "strict"
	TierModerate Tier = "moderate"
	TierRelaxed  Tier = "relaxed"
)

// ParseTier maps a config string to a tier, defaulting to moderate.
func ParseTier(s string) Tier {
	switch Tier(s) {
	case TierStrict, TierModerate, TierRelaxed:
		return Tier(s)
	default:
		return TierModerate
	}
}

// Outcome is the admission decision for a text payload.
type Outcome string

const (
	OutcomeAllow  Outcome = "allow"
	OutcomeRedact Outcome = "allow_with_redaction"
	OutcomeBlock  Outcome = "block"
)

// Decision combines filter and spam results into an admission decision.
type Decision struct {
	Outcome      Outcome     `json:"outcome"`
	Allowed      bool        `json:"allowed"`
	Severity     Severity    `json:"severity"`
	FilteredText string      `json:"filtered_text"`
	Violations   []Violation `json:"violations,omitempty"`
	SpamReasons  []string    `json:"spam_reasons,omitempty"`
}

// Classifier is the single place admission policy lives. Detectors report;
// the classifier decides.
type Classifier struct {
	filter *Filter
	spam   *SpamDetector
	tier   Tier
	policy *Policy
}

// NewClassifier builds a classifier over one policy version.
func NewClassifier(p *Policy, tier Tier) *Classifier {
	if p == nil {
		p = DefaultPolicy()
	}
	return &Classifier{
		filter: NewFilter(p),
		spam:   NewSpamDetector(p),
		tier:   tier,
		policy: p,
	}
}

// HighPriorityKeywords exposes the policy's escalation keyword list for
// priority computation by callers.
func (c *Classifier) HighPriorityKeywords() []string {
	return c.policy.HighPriorityKeywords
}

// Classify scans text and applies the admission policy: any PII pattern
// match or any violation at or above the tier's blocking severity forces
// block; any other violation downgrades to allow-with-redaction.
func (c *Classifier) Classify(text string) Decision {
	res := c.filter.Scan(text)
	sp := c.spam.Detect(text)

	blockAt := SeverityHigh
	if c.tier == TierStrict {
		blockAt = SeverityMedium
	}

	blocked := false
	for _, v := range res.Violations {
		if v.Kind == KindPattern && IsPIIPattern(v.Pattern) {
			blocked = true
			break
		}
		if v.Severity >= blockAt {
			blocked = true
			break
		}
	}
	if c.tier == TierStrict && sp.IsSpam {
		blocked = true
	}

	outcome := OutcomeAllow
	switch {
	case blocked:
		outcome = OutcomeBlock
	case len(res.Violations) > 0 || sp.IsSpam:
		outcome = OutcomeRedact
	}

	return Decision{
		Outcome:      outcome,
		Allowed:      res.Allowed && !blocked,
		Severity:     res.Severity,
		FilteredText: res.FilteredText,
		Violations:   res.Violations,
		SpamReasons:  sp.Reasons,
	}
}
