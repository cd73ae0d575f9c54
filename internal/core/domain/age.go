package domain

import "time"

// AgeInMonths returns the calendar-month difference between dateOfBirth and
// asOf: (year delta)*12 + (month delta), ignoring the day of month. A child
// born on the last day of a month counts the same as one born on the first
// of that month.
func AgeInMonths(dateOfBirth, asOf time.Time) int {
	return (asOf.Year()-dateOfBirth.Year())*12 + int(asOf.Month()) - int(dateOfBirth.Month())
}

// ParseDate parses the YYYY-MM-DD wire format used for all date fields.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ValidTimeOfDay reports whether s is a valid HH:MM clock time.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
