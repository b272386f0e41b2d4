package domain

import "time"

// DefaultTimezone is the wall-clock zone used for departure scheduling when
// the caller does not supply one.
const DefaultTimezone = "America/Los_Angeles"

// ProviderTime mirrors the time object the mapping provider embeds in
// directions responses: epoch seconds plus optional display fields.
type ProviderTime struct {
	Value    int64  `json:"value"`
	Text     string `json:"text,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
}

// Normalize converts the provider time representations into an absolute time.
// Accepted inputs: ProviderTime (or a pointer to one) carrying epoch seconds,
// an already-absolute time.Time, or an RFC 3339 string. Anything else,
// including a failed parse, yields the zero time as the invalid sentinel.
func Normalize(input any) time.Time {
	switch v := input.(type) {
	case ProviderTime:
		return fromEpochSeconds(v.Value)
	case *ProviderTime:
		if v == nil {
			return time.Time{}
		}
		return fromEpochSeconds(v.Value)
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

func fromEpochSeconds(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.UnixMilli(sec * 1000).UTC()
}

// NextOccurrence returns the next wall-clock occurrence of hour:minute in the
// given IANA zone (DefaultTimezone when tz is empty, UTC when tz is invalid).
// The candidate advances a day when its hour is earlier than the current hour,
// or the hours match and its minute is at or before the current minute: the
// tie goes to tomorrow, so the result is always in the future.
func NextOccurrence(hour, minute int, tz string) time.Time {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	now := clock.Now().In(loc)
	day := now.Day()
	if hour < now.Hour() || (hour == now.Hour() && minute <= now.Minute()) {
		day++
	}
	return time.Date(now.Year(), now.Month(), day, hour, minute, 0, 0, loc)
}

// ToMinutes converts a wall-clock hour and minute to minutes after midnight.
// The caller supplies values in the 0-23 / 0-59 range; no validation is done.
func ToMinutes(hour, minute int) int {
	return hour*60 + minute
}
