package domain

// SlotName identifies one of the four broadcast time slots.
type SlotName string

const (
	SlotUSPrimeTime SlotName = "US_PrimeTime"
	SlotUKEvening   SlotName = "UK_Evening"
	SlotPHEvening   SlotName = "PH_Evening"
	SlotLowTraffic  SlotName = "Low_Traffic"
)

// SlotNames lists every slot name in ranking priority order.
func SlotNames() []SlotName {
	return []SlotName{SlotUSPrimeTime, SlotUKEvening, SlotPHEvening, SlotLowTraffic}
}

// TimeSlot describes a named UTC hour range and its audience multiplier.
// The factor typically sits between 0.7 and 1.3.
type TimeSlot struct {
	StartTime         string  `json:"start_time"` // "HH:MM", inclusive
	EndTime           string  `json:"end_time"`   // "HH:MM", exclusive
	PerformanceFactor float64 `json:"performance_factor"`
}

// DefaultTimeSlots returns the four seeded slot definitions.
//
// | Slot         | Hours (UTC)  | Factor |
// |--------------|--------------|--------|
// | US_PrimeTime | 22:00-03:00  | 1.3    |
// | UK_Evening   | 18:00-22:00  | 1.1    |
// | PH_Evening   | 10:00-16:00  | 0.9    |
// | Low_Traffic  | 03:00-10:00  | 0.7    |
func DefaultTimeSlots() map[SlotName]TimeSlot {
	return map[SlotName]TimeSlot{
		SlotUSPrimeTime: {StartTime: "22:00", EndTime: "03:00", PerformanceFactor: 1.3},
		SlotUKEvening:   {StartTime: "18:00", EndTime: "22:00", PerformanceFactor: 1.1},
		SlotPHEvening:   {StartTime: "10:00", EndTime: "16:00", PerformanceFactor: 0.9},
		SlotLowTraffic:  {StartTime: "03:00", EndTime: "10:00", PerformanceFactor: 0.7},
	}
}

// DefaultTimeEffects returns the per-video slot multipliers seeded on new
// records. Each video can later be tuned independently of the global slots.
func DefaultTimeEffects() map[SlotName]float64 {
	effects := make(map[SlotName]float64, 4)
	for name, slot := range DefaultTimeSlots() {
		effects[name] = slot.PerformanceFactor
	}
	return effects
}

// SlotForHour maps a UTC hour (0-23) to its time slot.
//
// US_PrimeTime is checked first because it is the only range that wraps
// midnight. The four ranges cover all 24 hours, but Low_Traffic is returned
// as a fallback so the function is total for any input.
func SlotForHour(hour int) SlotName {
	switch {
	case hour >= 22 || hour < 3:
		return SlotUSPrimeTime
	case hour >= 18 && hour < 22:
		return SlotUKEvening
	case hour >= 10 && hour < 16:
		return SlotPHEvening
	case hour >= 3 && hour < 10:
		return SlotLowTraffic
	default:
		return SlotLowTraffic
	}
}
