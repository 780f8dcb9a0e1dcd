package emergency

import (
	"testing"
	"time"
)

var verifyNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestVerifySenior(t *testing.T) {
	tests := []struct {
		name             string
		dateOfBirth      string
		claimedAge       *int
		wantSenior       bool
		wantAge          int
		wantConfidence   float64
		wantNeedDocument bool
	}{
		{
			name:             "senior without claimed age",
			dateOfBirth:      "1961-03-15",
			wantSenior:       true,
			wantAge:          65,
			wantConfidence:   1.0,
			wantNeedDocument: false,
		},
		{
			name:             "senior with matching claim",
			dateOfBirth:      "1961-03-15",
			claimedAge:       intPtr(65),
			wantSenior:       true,
			wantAge:          65,
			wantConfidence:   1.0,
			wantNeedDocument: false,
		},
		{
			name:             "one year off is tolerated",
			dateOfBirth:      "1961-03-15",
			claimedAge:       intPtr(66),
			wantSenior:       true,
			wantAge:          65,
			wantConfidence:   1.0,
			wantNeedDocument: false,
		},
		{
			name:             "large claim mismatch drops confidence",
			dateOfBirth:      "1961-03-15",
			claimedAge:       intPtr(70),
			wantSenior:       true,
			wantAge:          65,
			wantConfidence:   0.7,
			wantNeedDocument: true,
		},
		{
			name:             "not a senior",
			dateOfBirth:      "1990-06-01",
			wantSenior:       false,
			wantAge:          36,
			wantConfidence:   1.0,
			wantNeedDocument: true,
		},
		{
			name:             "exactly at the threshold",
			dateOfBirth:      "1966-01-01",
			wantSenior:       true,
			wantAge:          60,
			wantConfidence:   1.0,
			wantNeedDocument: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySenior(tt.dateOfBirth, tt.claimedAge, verifyNow)
			if got.IsSenior != tt.wantSenior {
				t.Errorf("expected senior=%v, got %v", tt.wantSenior, got.IsSenior)
			}
			if got.ActualAge == nil {
				t.Fatal("expected actual age to be set")
			}
			if *got.ActualAge != tt.wantAge {
				t.Errorf("expected age %d, got %d", tt.wantAge, *got.ActualAge)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("expected confidence %v, got %v", tt.wantConfidence, got.Confidence)
			}
			if got.RequiresDocument != tt.wantNeedDocument {
				t.Errorf("expected requires document %v, got %v", tt.wantNeedDocument, got.RequiresDocument)
			}
		})
	}
}

func TestVerifySeniorUnparsableDate(t *testing.T) {
	got := VerifySenior("not-a-date", nil, verifyNow)

	if got.IsSenior {
		t.Error("unparsable date must not verify")
	}
	if got.ActualAge != nil {
		t.Errorf("expected nil age, got %d", *got.ActualAge)
	}
	if got.Confidence != 0.0 {
		t.Errorf("expected zero confidence, got %v", got.Confidence)
	}
	if !got.RequiresDocument {
		t.Error("unverifiable claims require a document")
	}
}

func TestValidateIDFormat(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"123456789012", true},
		{"000000000000", true},
		{"12345", false},
		{"1234567890123", false},
		{"12345678901a", false},
		{"12345 789012", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateIDFormat(tt.input); got != tt.want {
			t.Errorf("ValidateIDFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExtractAgeFromText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{"years old", "I am 65 years old and need assistance", intPtr(65)},
		{"year old singular", "my father is 71 year old", intPtr(71)},
		{"age prefix", "applicant age: 72", intPtr(72)},
		{"yrs suffix", "customer is 80 yrs", intPtr(80)},
		{"uppercase", "I AM 68 YEARS OLD", intPtr(68)},
		{"no age", "no number of relevance here", nil},
		{"implausible age", "this tree is 999 years old", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAgeFromText(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %d", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected an age, got nil")
			}
			if *got != *tt.want {
				t.Errorf("expected %d, got %d", *tt.want, *got)
			}
		})
	}
}
