package timezone

import "time"

const DefaultTimezone = "Asia/Seoul"

// kst is used when the tz database is unavailable in the runtime image.
var kst = time.FixedZone("KST", 9*60*60)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return kst
}

// ParseDate parses YYYY-MM-DD as a calendar date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayRange converts the inclusive local date range [start, end] into the UTC half-open
// interval [start 00:00, end+1 00:00). Swapped inputs are normalized.
func DayRange(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	from := StartOfDay(start, loc)
	to := StartOfDay(end, loc)
	if to.Before(from) {
		from, to = to, from
	}
	return from.UTC(), to.AddDate(0, 0, 1).UTC()
}

// MonthBounds returns the first and last calendar day of t's month in loc.
func MonthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	lt := t.In(loc)
	first := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}
