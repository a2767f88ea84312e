package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2024, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestStartOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "mid month",
			input:    time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "already first",
			input:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "last day of year",
			input:    time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfMonth(tt.input)

			if !result.Equal(tt.expected) {
				t.Errorf("StartOfMonth(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   time.Time
		wantDay int
	}{
		{"31-day month", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 31},
		{"30-day month", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 30},
		{"February non-leap", time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC), 28},
		{"February leap year", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EndOfMonth(tt.input)

			if result.Day() != tt.wantDay {
				t.Errorf("EndOfMonth(%v) = %v, want day %d", tt.input, result, tt.wantDay)
			}
			if result.Month() != tt.input.Month() || result.Year() != tt.input.Year() {
				t.Errorf("EndOfMonth(%v) changed month/year: %v", tt.input, result)
			}
		})
	}
}

func TestIsEndOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Jan 31", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), true},
		{"Jan 30", time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), false},
		{"Feb 29 leap", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		{"Feb 28 leap", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), false},
		{"Feb 28 non-leap", time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), true},
		{"Apr 30", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEndOfMonth(tt.input); got != tt.want {
				t.Errorf("IsEndOfMonth(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsWeekday(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Monday is weekday", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"Tuesday is weekday", time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), true},
		{"Wednesday is weekday", time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), true},
		{"Thursday is weekday", time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), true},
		{"Friday is weekday", time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC), true},
		{"Saturday is not weekday", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), false},
		{"Sunday is not weekday", time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWeekday(tt.input); got != tt.want {
				t.Errorf("IsWeekday(%v) = %v, want %v", tt.input, got, tt.want)
			}

			if got := IsWeekend(tt.input); got == tt.want {
				t.Errorf("IsWeekend(%v) = %v, expected opposite of IsWeekday", tt.input, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"valid date", "2024-01-31", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), false},
		{"valid leap day", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"invalid leap day", "2023-02-29", time.Time{}, true},
		{"wrong separator", "2024/01/31", time.Time{}, true},
		{"missing day", "2024-01", time.Time{}, true},
		{"not a date", "yesterday", time.Time{}, true},
		{"empty string", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	original := "2024-07-31"

	parsed, err := ParseDate(original)
	if err != nil {
		t.Fatalf("ParseDate(%q) unexpected error: %v", original, err)
	}

	if got := FormatDate(parsed); got != original {
		t.Errorf("FormatDate(ParseDate(%q)) = %q, want %q", original, got, original)
	}
}
