package filter

import (
	"strings"
	"testing"
)

func TestScan_KeywordMasking(t *testing.T) {
	f := NewFilter(nil)

	tests := []struct {
		name     string
		input    string
		want     string
		severity Severity
		allowed  bool
	}{
		{"high severity slur", "병신 같은 글", "** 같은 글", SeverityHigh, false},
		{"keyword inside word", "병신아 반성해", "**아 반성해", SeverityHigh, false},
		{"medium insult", "넌 진짜 멍청이", "넌 진짜 ***", SeverityMedium, false},
		{"english medium", "you are an idiot", "you are an *****", SeverityMedium, false},
		{"case insensitive", "you are an IDIOT", "you are an *****", SeverityMedium, false},
		{"mixed case", "StUpId comment", "****** comment", SeverityMedium, false},
		{"low severity tolerated", "노잼 게시판이네", "** 게시판이네", SeverityLow, true},
		{"clean text", "오늘 급식 최고였다", "오늘 급식 최고였다", SeverityLow, true},
		{"empty text", "", "", SeverityLow, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.Scan(tt.input)
			if res.FilteredText != tt.want {
				t.Errorf("Scan(%q).FilteredText = %q, want %q", tt.input, res.FilteredText, tt.want)
			}
			if res.Severity != tt.severity {
				t.Errorf("Scan(%q).Severity = %v, want %v", tt.input, res.Severity, tt.severity)
			}
			if res.Allowed != tt.allowed {
				t.Errorf("Scan(%q).Allowed = %v, want %v", tt.input, res.Allowed, tt.allowed)
			}
		})
	}
}

func TestScan_MaskLengthMatchesTerm(t *testing.T) {
	f := NewFilter(nil)

	// Multibyte terms must mask to one '*' per rune, not per byte.
	res := f.Scan("병신")
	if res.FilteredText != "**" {
		t.Fatalf("FilteredText = %q, want %q", res.FilteredText, "**")
	}
}

func TestScan_MultipleOccurrences(t *testing.T) {
	f := NewFilter(nil)

	res := f.Scan("idiot meets idiot")
	if res.FilteredText != "***** meets *****" {
		t.Fatalf("FilteredText = %q", res.FilteredText)
	}
	if len(res.Violations) != 2 {
		t.Fatalf("got %d violations, want 2", len(res.Violations))
	}
}

func TestScan_PatternRedaction(t *testing.T) {
	f := NewFilter(nil)

	tests := []struct {
		name     string
		input    string
		want     string
		pattern  string
		severity Severity
	}{
		{"phone dashed", "연락처는 010-1234-5678 입니다", "연락처는 [removed] 입니다", "phone", SeverityHigh},
		{"phone plain", "call 01012345678 now", "call [removed] now", "phone", SeverityHigh},
		{"resident id", "주민번호 900101-2345678 유출", "주민번호 [removed] 유출", "resident_id", SeverityHigh},
		{"email", "contact me at test@example.com please", "contact me at [removed] please", "email", SeverityMedium},
		{"violence english", "i will kill you", "i will [removed]", "violence", SeverityHigh},
		{"violence korean", "너 죽여버린다", "너 [removed]", "violence", SeverityHigh},
		{"url", "check https://example.com ok", "check [removed] ok", "url", SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.Scan(tt.input)
			if res.FilteredText != tt.want {
				t.Errorf("FilteredText = %q, want %q", res.FilteredText, tt.want)
			}
			found := false
			for _, v := range res.Violations {
				if v.Kind == KindPattern && v.Pattern == tt.pattern {
					found = true
					if v.Severity != tt.severity {
						t.Errorf("pattern %q severity = %v, want %v", tt.pattern, v.Severity, tt.severity)
					}
				}
			}
			if !found {
				t.Errorf("no %q pattern violation in %v", tt.pattern, res.Violations)
			}
		})
	}
}

func TestScan_URLIsLowSeverityOnly(t *testing.T) {
	f := NewFilter(nil)

	// A bare link is redacted but does not make the text disallowed.
	res := f.Scan("check https://example.com ok")
	if !res.Allowed {
		t.Fatal("url-only text should stay allowed")
	}
}

func TestScan_CharRunTruncation(t *testing.T) {
	f := NewFilter(nil)

	tests := []struct {
		input string
		want  string
	}{
		{"미쳤어ㅋㅋㅋㅋㅋㅋㅋ", "미쳤어ㅋㅋㅋ"},
		{"wooooooow", "wooow"},
		{"aaaa", "aaaa"}, // below threshold
	}

	for _, tt := range tests {
		res := f.Scan(tt.input)
		if res.FilteredText != tt.want {
			t.Errorf("Scan(%q).FilteredText = %q, want %q", tt.input, res.FilteredText, tt.want)
		}
	}
}

func TestScan_WordRunTruncation(t *testing.T) {
	f := NewFilter(nil)

	res := f.Scan("대박 대박 대박 대박 진짜")
	if res.FilteredText != "대박 대박 진짜" {
		t.Fatalf("FilteredText = %q", res.FilteredText)
	}
	if res.Severity != SeverityLow {
		t.Fatalf("Severity = %v, want low", res.Severity)
	}
	if !res.Allowed {
		t.Fatal("flood-only text should stay allowed")
	}
}

// Filtered output must be a fixed point: scanning it again changes nothing.
// Mask runs and redaction markers are exempt from the flood checks for
// exactly this reason.
func TestScan_Idempotent(t *testing.T) {
	f := NewFilter(nil)

	inputs := []string{
		"병신 같은 글",
		"연락처는 010-1234-5678 입니다",
		"미쳤어ㅋㅋㅋㅋㅋㅋㅋ",
		"대박 대박 대박 대박 진짜",
		"you are an idiot and stupid",
		"i will kill you 010-1234-5678",
	}

	for _, in := range inputs {
		first := f.Scan(in)
		second := f.Scan(first.FilteredText)
		if second.FilteredText != first.FilteredText {
			t.Errorf("rescan of %q changed %q to %q", in, first.FilteredText, second.FilteredText)
		}
		if len(second.Violations) != 0 {
			t.Errorf("rescan of %q found violations: %v", in, second.Violations)
		}
	}
}

// Adding a worse term to a text never lowers its combined severity.
func TestScan_SeverityMonotonic(t *testing.T) {
	f := NewFilter(nil)

	base := "노잼 게시판이네"
	if got := f.Scan(base).Severity; got != SeverityLow {
		t.Fatalf("base severity = %v, want low", got)
	}
	if got := f.Scan(base + " idiot").Severity; got != SeverityMedium {
		t.Fatalf("with medium term = %v, want medium", got)
	}
	if got := f.Scan(base + " idiot 병신").Severity; got != SeverityHigh {
		t.Fatalf("with high term = %v, want high", got)
	}
}

func TestScan_SeverityIsMaximum(t *testing.T) {
	f := NewFilter(nil)

	// Low keyword plus medium keyword plus high keyword: max wins.
	res := f.Scan("노잼 idiot 병신")
	if res.Severity != SeverityHigh {
		t.Fatalf("Severity = %v, want high", res.Severity)
	}
}

func TestScan_CustomPolicy(t *testing.T) {
	p := &Policy{
		Version:          "test-1",
		Keywords:         []KeywordRule{{Term: "banned", Severity: SeverityHigh}},
		CharRunThreshold: 5,
		CharRunKeep:      3,
		WordRunThreshold: 3,
		WordRunKeep:      2,
		RedactionMarker:  "[removed]",
	}
	f := NewFilter(p)

	res := f.Scan("this is banned content")
	if res.FilteredText != "this is ****** content" {
		t.Fatalf("FilteredText = %q", res.FilteredText)
	}

	// Default denylist must not leak into a custom policy.
	res = f.Scan("병신")
	if res.FilteredText != "병신" {
		t.Fatalf("custom policy matched default term: %q", res.FilteredText)
	}
}

func TestSeverityJSON(t *testing.T) {
	for _, s := range []Severity{SeverityLow, SeverityMedium, SeverityHigh} {
		data, err := s.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %v: %v", s, err)
		}
		var back Severity
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != s {
			t.Errorf("round trip %v became %v", s, back)
		}
	}

	var s Severity
	if err := s.UnmarshalJSON([]byte(`"catastrophic"`)); err == nil {
		t.Error("expected error for unknown severity label")
	}
}

func BenchmarkScan(b *testing.B) {
	f := NewFilter(nil)
	text := strings.Repeat("오늘 급식은 정말 맛있었다 친구들과 재미있게 놀았다 ", 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Scan(text)
	}
}
