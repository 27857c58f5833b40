// Package timezone provides clock and calendar-date helpers for the application.
//
// Usage Examples:
//
//  1. Current time and date in the app timezone:
//     now := timezone.Now()
//     today := timezone.Today()               // calendar date at 00:00 UTC
//
//  2. Booking dates:
//     checkIn, err := timezone.ParseDate("2026-10-16")
//     nights := timezone.DaysBetween(checkIn, checkOut)
//
//  3. Tests can pin the clock:
//     restore := timezone.SetClock(func() time.Time { return fixed })
//     defer restore()
//
// Calendar dates are always represented at midnight UTC regardless of the configured zone;
// the zone only decides which date "today" is.
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
package timezone
