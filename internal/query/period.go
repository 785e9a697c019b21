package query

import (
	"time"

	"github.com/splitbooks-dev/splitbooks/internal/model"
)

// Period tags a dashboard time window.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

// Window is an inclusive ISO date range.
type Window struct {
	Start string
	End   string
}

// RollingWindow derives the spending-dashboard window for a period:
// week is the trailing 7 days, month starts on the 1st of the current month,
// quarter starts on the first day of the current Jan–Mar/Apr–Jun/... block.
// The end is always today. Unknown periods collapse to today only.
func RollingWindow(p Period, now time.Time) Window {
	end := now.Format(model.DateFormat)
	var start time.Time
	switch p {
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodQuarter:
		qm := time.Month((int(now.Month())-1)/3*3 + 1)
		start = time.Date(now.Year(), qm, 1, 0, 0, 0, 0, now.Location())
	default:
		start = now
	}
	return Window{Start: start.Format(model.DateFormat), End: end}
}

// CalendarWindow is the variant used by the transaction list view:
// week is Monday–Sunday of the current week, month runs first-to-last day,
// and quarter is a rolling 90-day window ending today. The two derivations
// intentionally disagree; callers pick the one their view documents.
func CalendarWindow(p Period, now time.Time) Window {
	switch p {
	case PeriodWeek:
		monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		return Window{
			Start: monday.Format(model.DateFormat),
			End:   monday.AddDate(0, 0, 6).Format(model.DateFormat),
		}
	case PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return Window{
			Start: first.Format(model.DateFormat),
			End:   last.Format(model.DateFormat),
		}
	case PeriodQuarter:
		return Window{
			Start: now.AddDate(0, 0, -90).Format(model.DateFormat),
			End:   now.Format(model.DateFormat),
		}
	default:
		today := now.Format(model.DateFormat)
		return Window{Start: today, End: today}
	}
}
