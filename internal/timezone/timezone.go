package timezone

import "time"

const DefaultTimezone = "Asia/Manila"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then to a fixed UTC+8 zone when
// the host has no tzdata.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.FixedZone("PHT", 8*60*60)
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Clock returns a now-function pinned to the clinic timezone.
func Clock(tz string) func() time.Time {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}
