package filter

import (
	"regexp"
	"strings"
	"unicode"
)

// Violation kinds
const (
	KindKeyword = "keyword"
	KindPattern = "pattern"
	KindSpam    = "spam"
)

// Violation records a single policy hit found while scanning text.
type Violation struct {
	Kind     string   `json:"kind"`
	Term     string   `json:"term,omitempty"`    // keyword violations
	Pattern  string   `json:"pattern,omitempty"` // pattern and spam violations
	Match    string   `json:"match,omitempty"`
	Position int      `json:"position,omitempty"` // rune offset of a keyword match
	Severity Severity `json:"severity"`
}

// Result is the outcome of scanning one text payload. Scan never fails; a
// clean text yields Allowed=true with no violations.
type Result struct {
	Allowed      bool        `json:"allowed"`
	FilteredText string      `json:"filtered_text"`
	Violations   []Violation `json:"violations,omitempty"`
	Severity     Severity    `json:"severity"`
}

// Compiled patterns, shared by the filter and the spam detector. Ordered so
// that the resident-ID check runs before the phone check, which would
// otherwise claim the leading digits of a resident number.
var (
	// residentIDPattern matches Korean resident registration numbers
	// (six birthdate digits, a separator, seven more starting 1-4).
	residentIDPattern = regexp.MustCompile(`\d{6}[-\s]?[1-4]\d{6}`)

	// phonePattern matches Korean phone formats such as 010-1234-5678,
	// 02 123 4567 and the undelimited 01012345678.
	phonePattern = regexp.MustCompile(`0\d{1,2}[-.\s]?\d{3,4}[-.\s]?\d{4}`)

	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// urlPattern matches http/https URLs, www. URLs, and bare domains with a
	// trailing slash (the slash avoids false positives on "v2.0" etc).
	urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+|\S+\.(com|net|org|io|co|kr|xyz|info)/\S*)`)

	// violencePattern is a crude adjacency check for violent intent aimed at
	// a person, in either language.
	violencePattern = regexp.MustCompile(`(?i)(kill|stab|beat up|hurt|죽여|죽인다|때려|패버)[\s]*(you|him|her|them|everyone|버려|버린다|줄게|준다|놓는다)`)
)

type patternCheck struct {
	name     string
	re       *regexp.Regexp
	severity Severity
	pii      bool
}

// patternChecks maps each pattern class to its static severity.
var patternChecks = []patternCheck{
	{name: "resident_id", re: residentIDPattern, severity: SeverityHigh, pii: true},
	{name: "phone", re: phonePattern, severity: SeverityHigh, pii: true},
	{name: "email", re: emailPattern, severity: SeverityMedium, pii: true},
	{name: "violence", re: violencePattern, severity: SeverityHigh, pii: false},
	{name: "url", re: urlPattern, severity: SeverityLow, pii: false},
}

// IsPIIPattern reports whether the named pattern class redacts personal data.
func IsPIIPattern(name string) bool {
	for _, pc := range patternChecks {
		if pc.name == name {
			return pc.pii
		}
	}
	return false
}

type keywordEntry struct {
	term     string
	lower    []rune
	severity Severity
}

// Filter scans text against an injected Policy. A Filter is immutable and
// safe for concurrent use.
type Filter struct {
	policy   *Policy
	keywords []keywordEntry
}

// NewFilter creates a filter for the given policy. A nil policy uses the
// built-in default.
func NewFilter(p *Policy) *Filter {
	if p == nil {
		p = DefaultPolicy()
	}
	f := &Filter{policy: p}
	for _, k := range p.Keywords {
		term := strings.TrimSpace(k.Term)
		if term == "" {
			continue
		}
		f.keywords = append(f.keywords, keywordEntry{
			term:     term,
			lower:    lowerRunes(term),
			severity: k.Severity,
		})
	}
	return f
}

// Scan checks text against the denylist, the pattern set and the flooding
// heuristics. Keyword matches are masked with '*' per rune, pattern matches
// are replaced with the policy's redaction marker, and floods are truncated
// to a short canonical repeat. Severity is the maximum over all violations.
func (f *Filter) Scan(text string) Result {
	res := Result{Severity: SeverityLow, FilteredText: text}
	if text == "" {
		res.Allowed = true
		return res
	}

	// Keyword masking: case-insensitive substring match over rune indices so
	// multibyte terms mask to the same visual length.
	runes := []rune(text)
	lower := lowerRunes(text)
	for _, kw := range f.keywords {
		from := 0
		for {
			idx := indexRunes(lower[from:], kw.lower)
			if idx < 0 {
				break
			}
			pos := from + idx
			for i := pos; i < pos+len(kw.lower); i++ {
				runes[i] = '*'
				lower[i] = '*'
			}
			res.Violations = append(res.Violations, Violation{
				Kind:     KindKeyword,
				Term:     kw.term,
				Position: pos,
				Severity: kw.severity,
			})
			res.Severity = maxSeverity(res.Severity, kw.severity)
			from = pos + len(kw.lower)
		}
	}
	out := string(runes)

	// Pattern redaction. One replacement per iteration keeps the indices
	// valid; the marker itself never re-matches any pattern.
	for _, pc := range patternChecks {
		for {
			loc := pc.re.FindStringIndex(out)
			if loc == nil {
				break
			}
			match := out[loc[0]:loc[1]]
			out = out[:loc[0]] + f.policy.RedactionMarker + out[loc[1]:]
			res.Violations = append(res.Violations, Violation{
				Kind:     KindPattern,
				Pattern:  pc.name,
				Match:    match,
				Severity: pc.severity,
			})
			res.Severity = maxSeverity(res.Severity, pc.severity)
		}
	}

	// Flood truncation runs last so masked keywords and redaction markers do
	// not re-trigger it on a second scan.
	out, charViolations := truncateCharRuns(out, f.policy.CharRunThreshold, f.policy.CharRunKeep)
	res.Violations = append(res.Violations, charViolations...)
	out, wordViolations := truncateWordRuns(out, f.policy.WordRunThreshold, f.policy.WordRunKeep, f.policy.RedactionMarker)
	res.Violations = append(res.Violations, wordViolations...)

	res.FilteredText = out
	res.Allowed = true
	for _, v := range res.Violations {
		if v.Severity > SeverityLow {
			res.Allowed = false
			break
		}
	}
	return res
}

// truncateCharRuns caps runs of an identical character at keep repeats once
// they reach threshold. Mask characters are exempt so redacted output stays
// clean on a re-scan.
func truncateCharRuns(s string, threshold, keep int) (string, []Violation) {
	runes := []rune(s)
	var out []rune
	var violations []Violation

	i := 0
	for i < len(runes) {
		ch := runes[i]
		j := i
		for j < len(runes) && runes[j] == ch {
			j++
		}
		if ch != '*' && j-i >= threshold {
			for k := 0; k < keep; k++ {
				out = append(out, ch)
			}
			violations = append(violations, Violation{
				Kind:     KindSpam,
				Pattern:  "char_run",
				Match:    string(ch),
				Severity: SeverityLow,
			})
		} else {
			out = append(out, runes[i:j]...)
		}
		i = j
	}

	if len(violations) == 0 {
		return s, nil
	}
	return string(out), violations
}

// truncateWordRuns caps consecutive repeats of the same token (case
// insensitive, whitespace separated) at keep occurrences. Redaction markers
// and mask runs are exempt for the same re-scan reason as above.
func truncateWordRuns(s string, threshold, keep int, marker string) (string, []Violation) {
	words := strings.Fields(s)
	if len(words) < threshold {
		return s, nil
	}

	var out []string
	var violations []Violation

	i := 0
	for i < len(words) {
		w := words[i]
		lw := strings.ToLower(w)
		j := i
		for j < len(words) && strings.ToLower(words[j]) == lw {
			j++
		}
		if j-i >= threshold && w != marker && !isMaskRun(w) {
			out = append(out, words[i:i+keep]...)
			violations = append(violations, Violation{
				Kind:     KindSpam,
				Pattern:  "word_run",
				Match:    w,
				Severity: SeverityLow,
			})
		} else {
			out = append(out, words[i:j]...)
		}
		i = j
	}

	if len(violations) == 0 {
		return s, nil
	}
	return strings.Join(out, " "), violations
}

func isMaskRun(w string) bool {
	for _, r := range w {
		if r != '*' {
			return false
		}
	}
	return len(w) > 0
}

func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
