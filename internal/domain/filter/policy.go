package filter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Severity is an ordered violation severity. Higher values are worse.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "low"
	}
}

// MarshalJSON encodes severity as its string label
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes severity from its string label
func (s *Severity) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	switch strings.ToLower(label) {
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	default:
		return fmt.Errorf("unknown severity %q", label)
	}
	return nil
}

func maxSeverity(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

// KeywordRule is a single denylist entry with its static severity.
type KeywordRule struct {
	Term     string   `json:"term"`
	Severity Severity `json:"severity"`
}

// Policy is the injected, versioned filter configuration. A Policy is
// immutable once constructed; policy changes are deployed by loading a new
// version and rebuilding the Filter, never by mutating lists in place.
type Policy struct {
	Version              string        `json:"version"`
	Keywords             []KeywordRule `json:"keywords"`
	HighPriorityKeywords []string      `json:"high_priority_keywords"`
	CharRunThreshold     int           `json:"char_run_threshold"` // run length that counts as flooding
	CharRunKeep          int           `json:"char_run_keep"`      // canonical repeat kept after truncation
	WordRunThreshold     int           `json:"word_run_threshold"`
	WordRunKeep          int           `json:"word_run_keep"`
	RedactionMarker      string        `json:"redaction_marker"`
}

// DefaultPolicy returns the built-in policy for the school community.
// The denylist mixes Korean and English terms because the platform's user
// base writes in both.
func DefaultPolicy() *Policy {
	return &Policy{
		Version: "builtin-1",
		Keywords: []KeywordRule{
			// Slurs and direct abuse
			{Term: "병신", Severity: SeverityHigh},
			{Term: "씨발", Severity: SeverityHigh},
			{Term: "개새끼", Severity: SeverityHigh},
			{Term: "죽어버려", Severity: SeverityHigh},
			{Term: "자살해", Severity: SeverityHigh},
			{Term: "kill yourself", Severity: SeverityHigh},

			// Profanity and insults
			{Term: "지랄", Severity: SeverityMedium},
			{Term: "꺼져", Severity: SeverityMedium},
			{Term: "멍청이", Severity: SeverityMedium},
			{Term: "바보같", Severity: SeverityMedium},
			{Term: "idiot", Severity: SeverityMedium},
			{Term: "stupid", Severity: SeverityMedium},

			// Mild, tracked but tolerated
			{Term: "재수없", Severity: SeverityLow},
			{Term: "노잼", Severity: SeverityLow},
		},
		HighPriorityKeywords: []string{
			"자살", "자해", "죽고싶", "폭행", "협박", "스토킹",
			"suicide", "self-harm", "threat", "stalking",
		},
		CharRunThreshold: 5,
		CharRunKeep:      3,
		WordRunThreshold: 3,
		WordRunKeep:      2,
		RedactionMarker:  "[removed]",
	}
}

// LoadPolicy reads a policy version from a JSON file. Zero-valued knobs fall
// back to the built-in defaults so partial policy files stay valid.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}

	var p Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}

	def := DefaultPolicy()
	if p.CharRunThreshold <= 0 {
		p.CharRunThreshold = def.CharRunThreshold
	}
	if p.CharRunKeep <= 0 {
		p.CharRunKeep = def.CharRunKeep
	}
	if p.WordRunThreshold <= 0 {
		p.WordRunThreshold = def.WordRunThreshold
	}
	if p.WordRunKeep <= 0 {
		p.WordRunKeep = def.WordRunKeep
	}
	if p.RedactionMarker == "" {
		p.RedactionMarker = def.RedactionMarker
	}

	// A marker that itself matches a redaction pattern would be re-redacted
	// on every pass and the scan would never terminate.
	for _, pc := range patternChecks {
		if pc.re.MatchString(p.RedactionMarker) {
			return nil, fmt.Errorf("redaction marker %q matches the %s pattern", p.RedactionMarker, pc.name)
		}
	}
	return &p, nil
}
