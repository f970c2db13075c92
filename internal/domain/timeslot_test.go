package domain

import (
	"testing"
)

func TestSlotForHour(t *testing.T) {
	tests := []struct {
		hour int
		want SlotName
	}{
		{22, SlotUSPrimeTime},
		{23, SlotUSPrimeTime},
		{0, SlotUSPrimeTime}, // wraps midnight
		{2, SlotUSPrimeTime},
		{3, SlotLowTraffic},
		{9, SlotLowTraffic},
		{10, SlotPHEvening},
		{15, SlotPHEvening},
		{16, SlotLowTraffic}, // gap between PH_Evening and UK_Evening
		{17, SlotLowTraffic},
		{18, SlotUKEvening},
		{21, SlotUKEvening},
	}

	for _, tt := range tests {
		if got := SlotForHour(tt.hour); got != tt.want {
			t.Errorf("SlotForHour(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestSlotForHour_TotalAndDeterministic(t *testing.T) {
	valid := map[SlotName]bool{
		SlotUSPrimeTime: true,
		SlotUKEvening:   true,
		SlotPHEvening:   true,
		SlotLowTraffic:  true,
	}

	for hour := 0; hour < 24; hour++ {
		first := SlotForHour(hour)
		if !valid[first] {
			t.Errorf("SlotForHour(%d) = %q, not a known slot", hour, first)
		}
		if second := SlotForHour(hour); second != first {
			t.Errorf("SlotForHour(%d) not deterministic: %q then %q", hour, first, second)
		}
	}
}

func TestDefaultTimeSlots(t *testing.T) {
	slots := DefaultTimeSlots()
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	if slots[SlotUSPrimeTime].PerformanceFactor != 1.3 {
		t.Errorf("US_PrimeTime factor = %v, want 1.3", slots[SlotUSPrimeTime].PerformanceFactor)
	}
	if slots[SlotLowTraffic].PerformanceFactor != 0.7 {
		t.Errorf("Low_Traffic factor = %v, want 0.7", slots[SlotLowTraffic].PerformanceFactor)
	}
}
