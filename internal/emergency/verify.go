package emergency

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/queuewise/mlservice/internal/types"
)

// seniorAgeYears is the qualifying age for senior citizen priority
const seniorAgeYears = 60

var idFormat = regexp.MustCompile(`^\d{12}$`)

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*years?\s*old`),
	regexp.MustCompile(`age\s*[:\-]?\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*yrs?`),
}

// VerifySenior verifies senior citizen status from a date of birth.
// Age is whole elapsed days divided by 365; the leap-year undercount is a
// known simplification that downstream consumers depend on.
// claimedAge may be nil when the caller did not state an age.
// An unparsable date returns a zero-confidence result, not an error.
func VerifySenior(dateOfBirth string, claimedAge *int, now time.Time) types.AgeVerification {
	dob, err := types.ParseTimestamp(strings.TrimSpace(dateOfBirth))
	if err != nil {
		return types.AgeVerification{
			IsSenior:         false,
			ActualAge:        nil,
			Confidence:       0.0,
			RequiresDocument: true,
			Reasoning:        fmt.Sprintf("Unable to verify age: %v", err),
		}
	}

	age := int(now.Sub(dob).Hours() / 24 / 365)
	isSenior := age >= seniorAgeYears

	confidence := 1.0
	if claimedAge != nil {
		diff := age - *claimedAge
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			confidence = 0.7
		}
	}

	status := "Not qualified"
	if isSenior {
		status = "Verified"
	}

	return types.AgeVerification{
		IsSenior:         isSenior,
		ActualAge:        &age,
		Confidence:       confidence,
		RequiresDocument: !isSenior || confidence < 0.9,
		Reasoning:        fmt.Sprintf("Calculated age: %d years. Senior citizen status: %s", age, status),
	}
}

// ValidateIDFormat reports whether s is exactly 12 ASCII digits
func ValidateIDFormat(s string) bool {
	return idFormat.MatchString(s)
}

// ExtractAgeFromText pulls an age mention out of free text ("65 years old",
// "age: 65", "65 yrs"). Returns nil when no plausible age is found.
func ExtractAgeFromText(text string) *int {
	lower := strings.ToLower(text)
	for _, pattern := range agePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		age, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if age > 0 && age < 120 {
			return &age
		}
	}
	return nil
}
