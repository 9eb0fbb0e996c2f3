package member

import "time"

// AddMonthsClamped adds calendar months and clamps to the last day of the
// target month instead of letting the date roll over (Jan 31 + 1 month is
// Feb 28, or Feb 29 in a leap year).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}

// EndDate derives the membership expiry date from the start date and plan.
func EndDate(start time.Time, plan PlanType) time.Time {
	switch plan {
	case PlanQuarterly:
		return AddMonthsClamped(start, 3)
	case PlanYearly:
		return AddMonthsClamped(start, 12)
	default:
		return AddMonthsClamped(start, 1)
	}
}

// RenewalStartDate is always the day after the previous expiry.
func RenewalStartDate(oldEnd time.Time) time.Time {
	return truncateToDate(oldEnd).AddDate(0, 0, 1)
}

// DaysUntil counts whole days from today to the given date, both truncated to
// midnight. Negative when the date is in the past.
func DaysUntil(date, today time.Time) int {
	d := truncateToDate(date)
	t := truncateToDate(today)
	return int(d.Sub(t).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
