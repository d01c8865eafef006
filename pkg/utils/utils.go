package utils

import (
	"fmt"
	"strings"
	"time"
)

// Day truncates a timestamp to midnight UTC. All "past date" checks in the
// engagement rules compare at day granularity.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastDay reports whether date falls on an earlier day than now.
func IsPastDay(date, now time.Time) bool {
	return Day(date).Before(Day(now))
}

// DaysBetween returns the whole days from a to b at day granularity.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// WeekdayName returns the English weekday name for a date ("Monday", ...).
func WeekdayName(t time.Time) string {
	return t.UTC().Weekday().String()
}

var defaultSlotHours = map[string]int{
	"morning":   9,
	"afternoon": 13,
	"evening":   18,
}

// SlotStartHour resolves the start hour of a named slot. Slots are either bare
// names ("Morning") or carry the hour range in parentheses ("Morning (9-12)");
// the first number after the opening parenthesis wins.
func SlotStartHour(slot string) (int, error) {
	trimmed := strings.TrimSpace(slot)
	if open := strings.IndexByte(trimmed, '('); open >= 0 {
		rest := trimmed[open+1:]
		hour := 0
		seen := false
		for _, r := range rest {
			if r >= '0' && r <= '9' {
				hour = hour*10 + int(r-'0')
				seen = true
				continue
			}
			if seen {
				break
			}
		}
		if seen && hour < 24 {
			return hour, nil
		}
		return 0, fmt.Errorf("unrecognized slot %q", slot)
	}

	if hour, ok := defaultSlotHours[strings.ToLower(trimmed)]; ok {
		return hour, nil
	}
	return 0, fmt.Errorf("unrecognized slot %q", slot)
}

// SlotStartTime combines a day-granularity date with the slot's start hour.
func SlotStartTime(date time.Time, slot string) (time.Time, error) {
	hour, err := SlotStartHour(slot)
	if err != nil {
		return time.Time{}, err
	}
	return Day(date).Add(time.Duration(hour) * time.Hour), nil
}
