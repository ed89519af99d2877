package domain

import "time"

// DateLayout is how expiration dates are stored and compared.
const DateLayout = time.DateOnly

// CalculatePostExpires returns the calendar date expireDays after now,
// at midnight in now's location.
func CalculatePostExpires(now time.Time, expireDays int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+expireDays, 0, 0, 0, 0, now.Location())
}

// Today truncates now to its calendar date.
func Today(now time.Time) time.Time {
	return CalculatePostExpires(now, 0)
}

// Visible reports whether an approved posting expiring on expires is still
// listed on today. Only calendar dates are compared.
func Visible(approved bool, expires, today time.Time) bool {
	return approved && expires.Format(DateLayout) >= today.Format(DateLayout)
}
