package types

import (
	"testing"
	"time"
)

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"monday", time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC), 0},
		{"wednesday", time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC), 2},
		{"friday", time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), 4},
		{"saturday", time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC), 5},
		{"sunday", time.Date(2025, 1, 12, 12, 0, 0, 0, time.UTC), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekdayIndex(tt.date); got != tt.want {
				t.Errorf("WeekdayIndex(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(*testing.T, time.Time)
	}{
		{
			name:  "RFC3339",
			input: "2025-01-08T10:30:00Z",
			check: func(t *testing.T, got time.Time) {
				if got.Hour() != 10 || got.Minute() != 30 {
					t.Errorf("expected 10:30, got %v", got)
				}
			},
		},
		{
			name:  "no timezone offset",
			input: "2025-01-08T10:30:00",
			check: func(t *testing.T, got time.Time) {
				if got.Hour() != 10 {
					t.Errorf("expected hour 10, got %d", got.Hour())
				}
			},
		},
		{
			name:  "date only",
			input: "2025-01-08",
			check: func(t *testing.T, got time.Time) {
				if got.Year() != 2025 || got.Month() != time.January || got.Day() != 8 {
					t.Errorf("expected 2025-01-08, got %v", got)
				}
			},
		},
		{name: "garbage", input: "not-a-time", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		input string
		want  PriorityClass
	}{
		{"emergency", PriorityEmergency},
		{"EMERGENCY", PriorityEmergency},
		{" senior ", PrioritySenior},
		{"disabled", PriorityDisabled},
		{"normal", PriorityNormal},
		{"", PriorityNormal},
		{"vip", PriorityNormal},
	}

	for _, tt := range tests {
		if got := NormalizePriority(tt.input); got != tt.want {
			t.Errorf("NormalizePriority(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
