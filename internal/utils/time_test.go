package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") {
		t.Error("ValidateTimezone(\"\") = false, want true")
	}
	if !ValidateTimezone("UTC") {
		t.Error("ValidateTimezone(\"UTC\") = false, want true")
	}
	if ValidateTimezone("Not/AZone") {
		t.Error("ValidateTimezone(\"Not/AZone\") = true, want false")
	}
}

func TestNewSystemClock(t *testing.T) {
	clock, err := NewSystemClock("UTC")
	if err != nil {
		t.Fatalf("NewSystemClock() error = %v", err)
	}
	now := clock.Now()
	if now.Location() != time.UTC {
		t.Errorf("Now().Location() = %v, want UTC", now.Location())
	}
	if now != now.Round(0) {
		t.Error("Now() should not carry a monotonic clock reading")
	}

	if _, err := NewSystemClock("Invalid/Timezone"); err == nil {
		t.Error("NewSystemClock() with invalid timezone should fail")
	}
}

func TestIsSameDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	ref := time.Date(2026, 10, 14, 0, 1, 0, 0, est)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{
			name: "one minute before midnight the previous day",
			t:    time.Date(2026, 10, 13, 23, 59, 0, 0, est),
			want: false,
		},
		{
			name: "yesterday at 23:59:59",
			t:    time.Date(2026, 10, 13, 23, 59, 59, 0, est),
			want: false,
		},
		{
			name: "exactly midnight",
			t:    time.Date(2026, 10, 14, 0, 0, 0, 0, est),
			want: true,
		},
		{
			name: "later the same day",
			t:    time.Date(2026, 10, 14, 22, 0, 0, 0, est),
			want: true,
		},
		{
			name: "same instant expressed in UTC",
			t:    time.Date(2026, 10, 14, 5, 30, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "UTC date matches but local day differs",
			t:    time.Date(2026, 10, 14, 4, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "less than 24 hours later but next day",
			t:    time.Date(2026, 10, 15, 0, 0, 0, 0, est),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSameDay(tt.t, ref); got != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v", tt.t, ref, got, tt.want)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("X", 2*60*60)
	got := StartOfDay(time.Date(2026, 10, 14, 17, 45, 12, 99, loc))
	want := time.Date(2026, 10, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestFormatting(t *testing.T) {
	day := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	if got := FormatDay(day); got != "2026-10-14" {
		t.Errorf("FormatDay() = %q, want %q", got, "2026-10-14")
	}
	if got := FormatHeaderDate(day); got != "October 14, 2026" {
		t.Errorf("FormatHeaderDate() = %q, want %q", got, "October 14, 2026")
	}
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var c Clock = ClockFunc(func() time.Time { return fixed })
	if !c.Now().Equal(fixed) {
		t.Errorf("ClockFunc.Now() = %v, want %v", c.Now(), fixed)
	}
}
