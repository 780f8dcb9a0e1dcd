package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/queuewise/mlservice/internal/demand"
	"github.com/queuewise/mlservice/internal/noshow"
	"github.com/rs/zerolog"
)

// Wednesday 07:00, so the overview window covers the morning peak
var wednesdayEarly = time.Date(2025, 1, 8, 7, 0, 0, 0, time.UTC)

func newTestAggregator() *Aggregator {
	return NewAggregator(demand.NewRuleForecaster(), noshow.NewRuleScorer(), 5, 24, zerolog.Nop())
}

func TestOverview(t *testing.T) {
	a := newTestAggregator()

	got := a.Overview("general", wednesdayEarly)

	if got.ServiceID != "general" {
		t.Errorf("expected service general, got %s", got.ServiceID)
	}
	if len(got.Forecast) != 5 {
		t.Fatalf("expected 5 forecast points, got %d", len(got.Forecast))
	}
	if got.PeakHour != 10 {
		t.Errorf("expected peak hour 10, got %d", got.PeakHour)
	}
	if got.Summary.TotalPredictedTokens != 160 {
		t.Errorf("expected total 160, got %d", got.Summary.TotalPredictedTokens)
	}
	if len(got.RiskNotes) != 4 {
		t.Errorf("expected 4 risk notes, got %d", len(got.RiskNotes))
	}
	if len(got.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got.Recommendations))
	}
	if !strings.Contains(got.Recommendations[0], "Staff 3 counters by 10:00") {
		t.Errorf("unexpected staffing recommendation: %q", got.Recommendations[0])
	}
	if !strings.Contains(got.Recommendations[1], "160 arrivals") {
		t.Errorf("unexpected volume recommendation: %q", got.Recommendations[1])
	}
}

func TestOverviewScoredRiskNote(t *testing.T) {
	a := newTestAggregator()

	got := a.Overview("general", wednesdayEarly)

	// A normal-priority ticket at position 16 on a Wednesday morning
	// scores 0.17, so the peak-hour note reads medium
	if len(got.RiskNotes) == 0 {
		t.Fatal("expected risk notes")
	}
	want := "Deep-queue tokens at the 10:00 peak carry medium no-show risk"
	if got.RiskNotes[0] != want {
		t.Errorf("expected %q, got %q", want, got.RiskNotes[0])
	}
}

func TestStaffPlan(t *testing.T) {
	a := newTestAggregator()

	got := a.StaffPlan("general", wednesdayEarly)

	if len(got.Hours) != 24 {
		t.Fatalf("expected 24 hours, got %d", len(got.Hours))
	}
	if got.PeakCounters != 3 {
		t.Errorf("expected peak of 3 counters, got %d", got.PeakCounters)
	}

	total := 0
	for _, h := range got.Hours {
		total += h.PredictedTokens
		if h.RecommendedCounters < 1 {
			t.Errorf("hour %d: %d counters below minimum", h.Hour, h.RecommendedCounters)
		}
	}
	if got.TotalTokens != total {
		t.Errorf("total %d does not match hour sum %d", got.TotalTokens, total)
	}

	if len(got.ShiftSuggestions) != 3 {
		t.Fatalf("expected 3 shift suggestions, got %d", len(got.ShiftSuggestions))
	}
	wantShifts := []string{
		"Morning shift (08:00-12:00): staff 3 counters",
		"Afternoon shift (12:00-17:00): staff 3 counters",
		"Evening shift (17:00-20:00): staff 2 counters",
	}
	for i, want := range wantShifts {
		if got.ShiftSuggestions[i] != want {
			t.Errorf("shift %d: expected %q, got %q", i, want, got.ShiftSuggestions[i])
		}
	}
}

func TestStaffPlanQuietSunday(t *testing.T) {
	a := newTestAggregator()

	sunday := time.Date(2025, 1, 12, 7, 0, 0, 0, time.UTC)
	got := a.StaffPlan("general", sunday)

	weekday := a.StaffPlan("general", wednesdayEarly)
	if got.TotalTokens >= weekday.TotalTokens {
		t.Errorf("sunday (%d) should be quieter than wednesday (%d)",
			got.TotalTokens, weekday.TotalTokens)
	}
}
