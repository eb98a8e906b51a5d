// Package month содержит вспомогательные функции для работы с календарными днями и месяцами
// абонементов: границы суток, короткие названия месяцев и продление на N месяцев.
package month

import (
	"time"
)

var shortNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// StartOfDay возвращает полночь дня t в часовом поясе loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayRange возвращает полуинтервал [начало дня, начало следующего дня).
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// ShortName возвращает трёхбуквенное английское название месяца.
func ShortName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return shortNames[m-1]
}

// AddMonths прибавляет к дате n месяцев. Если в целевом месяце нет такого дня,
// берётся последний день месяца: 31 января + 1 месяц = 29 февраля в високосный год.
func AddMonths(t time.Time, n int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, n, 0)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// ParseDate разбирает дату из запроса: сначала 2006-01-02, затем RFC3339.
// Дата без времени считается полночью в часовом поясе loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Date отбрасывает время и часовой пояс, оставляя календарную дату в UTC.
// Так хранятся даты абонемента.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
