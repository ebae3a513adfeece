package filter

import (
	"reflect"
	"testing"
)

func TestDetect(t *testing.T) {
	d := NewSpamDetector(nil)

	tests := []struct {
		name    string
		input   string
		isSpam  bool
		reasons []string
	}{
		{"char flood", "ㅋㅋㅋㅋㅋㅋㅋ", true, []string{ReasonCharFlood}},
		{"char flood latin", "loooooool", true, []string{ReasonCharFlood}},
		{"word flood", "구매 구매 구매", true, []string{ReasonWordFlood}},
		{"word flood case insensitive", "BUY buy Buy", true, []string{ReasonWordFlood}},
		{"link flood", "visit https://a.com and https://b.com", true, []string{ReasonLinkFlood}},
		{"single link ok", "visit https://a.com today", false, nil},
		{"phone leak", "전화 010-1234-5678", true, []string{ReasonPIILeak}},
		{"resident id leak", "900101-2345678", true, []string{ReasonPIILeak}},
		{"email leak", "mail me foo@bar.com", true, []string{ReasonPIILeak}},
		{"address leak", "서울시 강남구 역삼동에 살아요", true, []string{ReasonPIILeak}},
		{"clean", "오늘 동아리 모임 있나요", false, nil},
		{"empty", "", false, nil},
		{"below char threshold", "ㅋㅋㅋㅋ", false, nil},
		{"below word threshold", "구매 구매", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.input)
			if got.IsSpam != tt.isSpam {
				t.Errorf("Detect(%q).IsSpam = %v, want %v", tt.input, got.IsSpam, tt.isSpam)
			}
			if !reflect.DeepEqual(got.Reasons, tt.reasons) {
				t.Errorf("Detect(%q).Reasons = %v, want %v", tt.input, got.Reasons, tt.reasons)
			}
		})
	}
}

func TestDetect_MultipleReasons(t *testing.T) {
	d := NewSpamDetector(nil)

	got := d.Detect("구매 구매 구매 010-1234-5678 ㅋㅋㅋㅋㅋ")
	if !got.IsSpam {
		t.Fatal("expected spam")
	}
	want := map[string]bool{ReasonCharFlood: true, ReasonWordFlood: true, ReasonPIILeak: true}
	for _, r := range got.Reasons {
		if !want[r] {
			t.Errorf("unexpected reason %q", r)
		}
		delete(want, r)
	}
	for r := range want {
		t.Errorf("missing reason %q", r)
	}
}

func TestDetect_DoesNotMutate(t *testing.T) {
	d := NewSpamDetector(nil)

	in := "구매 구매 구매"
	_ = d.Detect(in)
	if in != "구매 구매 구매" {
		t.Fatal("Detect mutated its input")
	}
}

func TestHasCharFlood(t *testing.T) {
	tests := []struct {
		input     string
		threshold int
		want      bool
	}{
		{"aaaaa", 5, true},
		{"aaaa", 5, false},
		{"abababab", 5, false},
		{"", 5, false},
		{"한한한한한", 5, true},
	}

	for _, tt := range tests {
		if got := hasCharFlood(tt.input, tt.threshold); got != tt.want {
			t.Errorf("hasCharFlood(%q, %d) = %v, want %v", tt.input, tt.threshold, got, tt.want)
		}
	}
}

func TestHasWordFlood(t *testing.T) {
	tests := []struct {
		input     string
		threshold int
		want      bool
	}{
		{"spam spam spam", 3, true},
		{"spam spam", 3, false},
		{"spam other spam other spam", 3, false},
		{"", 3, false},
	}

	for _, tt := range tests {
		if got := hasWordFlood(tt.input, tt.threshold); got != tt.want {
			t.Errorf("hasWordFlood(%q, %d) = %v, want %v", tt.input, tt.threshold, got, tt.want)
		}
	}
}
