package models

import "time"

const (
	DefaultBirthdayWindow = 7

	CongratulationLayout = "Monday, 02 January 2006"
)

type UpcomingBirthday struct {
	Name               string
	CongratulationDate time.Time
	DaysUntil          int
}

func (u UpcomingBirthday) Format() string {
	return u.CongratulationDate.Format(CongratulationLayout)
}

// GetUpcomingBirthdays lists contacts whose next birthday is at most
// withinDays away from today. The distance is measured to the real
// anniversary; the reported date is moved off weekends to the next Monday.
// Feb 29 birthdays fall on Mar 1 in non-leap years.
func GetUpcomingBirthdays(contacts []*Contact, today time.Time, withinDays int) []UpcomingBirthday {
	today = calendarDate(today)

	var upcoming []UpcomingBirthday
	for _, c := range contacts {
		b, ok := c.Birthday()
		if !ok {
			continue
		}

		anniversary := nextAnniversary(b, today)
		days := int(anniversary.Sub(today).Hours() / 24)
		if days > withinDays {
			continue
		}

		upcoming = append(upcoming, UpcomingBirthday{
			Name:               c.Name(),
			CongratulationDate: skipWeekend(anniversary),
			DaysUntil:          days,
		})
	}
	return upcoming
}

func nextAnniversary(b Birthday, today time.Time) time.Time {
	date := b.Date()
	anniversary := time.Date(today.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.Before(today) {
		anniversary = time.Date(today.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return anniversary
}

func skipWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
