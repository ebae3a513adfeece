package filter

import (
	"regexp"
	"strings"
)

// Spam reasons reported by Detect.
const (
	ReasonCharFlood = "character_flood"
	ReasonWordFlood = "word_flood"
	ReasonLinkFlood = "link_flood"
	ReasonPIILeak   = "pii_leak"
)

// addressPattern matches Korean street-address fragments such as
// "서울시 강남구 역삼동" or "테헤란로 123". Heuristic, used only as a
// contact-info leak signal, never for redaction.
var addressPattern = regexp.MustCompile(`[가-힣]+(시|도)\s*[가-힣]+(구|군)\s*[가-힣]+(동|읍|면|로|길)|[가-힣]+(로|길)\s*\d+`)

// SpamResult is the outcome of a spam check.
type SpamResult struct {
	IsSpam  bool     `json:"is_spam"`
	Reasons []string `json:"reasons,omitempty"`
}

// SpamDetector runs repetition and PII-leak heuristics independently of the
// keyword policy. The split exists because spam heuristics evolve on a
// different cadence than the denylist.
type SpamDetector struct {
	policy *Policy
}

// NewSpamDetector creates a detector using the policy's flood thresholds.
func NewSpamDetector(p *Policy) *SpamDetector {
	if p == nil {
		p = DefaultPolicy()
	}
	return &SpamDetector{policy: p}
}

// Detect reports whether text looks like spam and why. It never mutates the
// text; redaction is the Filter's job.
func (d *SpamDetector) Detect(text string) SpamResult {
	var reasons []string

	if hasCharFlood(text, d.policy.CharRunThreshold) {
		reasons = append(reasons, ReasonCharFlood)
	}
	if hasWordFlood(text, d.policy.WordRunThreshold) {
		reasons = append(reasons, ReasonWordFlood)
	}
	if len(urlPattern.FindAllStringIndex(text, 2)) >= 2 {
		reasons = append(reasons, ReasonLinkFlood)
	}
	if phonePattern.MatchString(text) || residentIDPattern.MatchString(text) ||
		emailPattern.MatchString(text) || addressPattern.MatchString(text) {
		reasons = append(reasons, ReasonPIILeak)
	}

	return SpamResult{IsSpam: len(reasons) > 0, Reasons: reasons}
}

// hasCharFlood returns true if text contains threshold or more consecutive
// identical characters. RE2 has no backreferences, so this is a linear scan.
func hasCharFlood(text string, threshold int) bool {
	count := 1
	prev := rune(-1)
	for _, r := range text {
		if r == prev {
			count++
			if count >= threshold {
				return true
			}
		} else {
			count = 1
			prev = r
		}
	}
	return false
}

// hasWordFlood returns true if the same whitespace-delimited token repeats
// threshold or more times in a row (case-insensitive).
func hasWordFlood(text string, threshold int) bool {
	words := strings.Fields(text)
	if len(words) < threshold {
		return false
	}

	count := 1
	prev := ""
	for _, w := range words {
		lower := strings.ToLower(w)
		if lower == prev {
			count++
			if count >= threshold {
				return true
			}
		} else {
			count = 1
			prev = lower
		}
	}
	return false
}
