package scheduler

import (
	"fmt"
	"math"
)

// Grid granularity is 15 minutes; display labels only every 30 minutes.
// The two must never be conflated: scheduling resolution stays at 15.
const (
	GranularityMinutes   = 15
	LabelIntervalMinutes = 30
)

// ToMinutes converts (hour, minute) to minutes since midnight. No clamping:
// hour may exceed 23 for windows that arithmetic pushed past midnight.
func ToMinutes(hour, minute int) int {
	return hour*60 + minute
}

// FromMinutes converts minutes since midnight back to (hour, minute).
func FromMinutes(totalMinutes int) (hour, minute int) {
	return totalMinutes / 60, totalMinutes % 60
}

// RoundToGrid snaps a time to the nearest 15-minute boundary, ties rounding up.
func RoundToGrid(hour, minute int) (int, int) {
	total := ToMinutes(hour, minute)
	rounded := int(math.Round(float64(total)/GranularityMinutes)) * GranularityMinutes
	return FromMinutes(rounded)
}

// ToTimeKey formats (hour, minute) as a zero-padded "HH:MM" key.
func ToTimeKey(hour, minute int) TimeKey {
	return TimeKey(fmt.Sprintf("%02d:%02d", hour, minute))
}

// ParseTimeKey parses a "HH:MM" key back to (hour, minute).
func ParseTimeKey(key TimeKey) (hour, minute int, err error) {
	if _, err := fmt.Sscanf(string(key), "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("scheduler: invalid time key %q: %w", key, err)
	}
	return hour, minute, nil
}

// RangeToKeys enumerates every 15-minute boundary in [start, end).
// The end instant is excluded; end <= start yields an empty sequence.
func RangeToKeys(startHour, startMinute, endHour, endMinute int) []TimeKey {
	startMinutes := ToMinutes(startHour, startMinute)
	endMinutes := ToMinutes(endHour, endMinute)

	keys := make([]TimeKey, 0)
	for min := startMinutes; min < endMinutes; min += GranularityMinutes {
		h, m := FromMinutes(min)
		keys = append(keys, ToTimeKey(h, m))
	}
	return keys
}

// ShouldShowLabel reports whether a grid instant gets a display label.
func ShouldShowLabel(hour, minute int) bool {
	return minute == 0 || minute == LabelIntervalMinutes
}

// FormatTimeLabel renders a key for display. Keys are already "HH:MM".
func FormatTimeLabel(key TimeKey) string {
	return string(key)
}

// DurationToSlots returns how many 15-minute grid cells a duration spans.
func DurationToSlots(durationMinutes int) int {
	return (durationMinutes + GranularityMinutes - 1) / GranularityMinutes
}

// CenteredGameTime is the play window embedded in a room booking.
type CenteredGameTime struct {
	StartHour       int
	StartMinute     int
	DurationMinutes int
}

// CalculateCenteredGameTime positions the play session inside an event window.
// Up to 60 minutes the game occupies the entire window. Beyond that the game
// is fixed at 60 minutes and centered: offset = (eventDuration-60)/2 from the
// event start, floored to the whole minute when the difference is odd.
func CalculateCenteredGameTime(eventStartHour, eventStartMinute, eventDurationMinutes int) CenteredGameTime {
	if eventDurationMinutes <= 60 {
		return CenteredGameTime{
			StartHour:       eventStartHour,
			StartMinute:     eventStartMinute,
			DurationMinutes: eventDurationMinutes,
		}
	}

	const gameDuration = 60
	offset := (eventDurationMinutes - gameDuration) / 2
	h, m := FromMinutes(ToMinutes(eventStartHour, eventStartMinute) + offset)

	return CenteredGameTime{
		StartHour:       h,
		StartMinute:     m,
		DurationMinutes: gameDuration,
	}
}

// Keys returns the grid cells covered by the centered window.
func (t CenteredGameTime) Keys() []TimeKey {
	endH, endM := FromMinutes(ToMinutes(t.StartHour, t.StartMinute) + t.DurationMinutes)
	return RangeToKeys(t.StartHour, t.StartMinute, endH, endM)
}
