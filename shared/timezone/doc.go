// Package timezone provides timezone utilities for the application.
//
// All slot arithmetic happens in the business's local timezone: work-hour
// rules are wall-clock values ("09:00"), so the window and slot boundaries
// they produce only make sense once anchored to a concrete location. Every
// clock read in the scheduling path goes through timezone.Now() so that
// "today" and "in the past" agree with the business's wall clock rather
// than the server's.
//
// Usage:
//
//	now := timezone.Now()                      // current time in app timezone
//	local := timezone.ToAppTime(someTime)      // convert any time to app timezone
//	day, err := timezone.Parse("2006-01-02", "2024-01-15")
//	loc := timezone.GetLocation()
//
// The timezone is configured via the APP_TIMEZONE environment variable and
// is initialized when the package is imported. Use standard IANA timezone
// database names ("UTC", "America/New_York", "Asia/Jakarta").
package timezone
