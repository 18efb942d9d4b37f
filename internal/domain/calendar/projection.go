package calendar

import (
	"sort"
	"time"

	"github.com/pruefungsplaner/core/internal/domain/entities"
)

// ExamsOn returns the exams falling on the given calendar day, in the order
// they appear in the input. The result is an empty slice when nothing matches.
func ExamsOn(exams []entities.Exam, day entities.ExamDate) []entities.Exam {
	matches := []entities.Exam{}
	for _, e := range exams {
		if e.Date.Equal(day) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Upcoming returns the exams whose date lies in the inclusive window
// [today, today+windowDays], sorted ascending by date. Same-day ties keep the
// input order. A negative windowDays means no upper bound. The result is
// recomputed fully on each call; "today" moves with the wall clock and there
// is no notification when it crosses midnight.
func Upcoming(exams []entities.Exam, today entities.ExamDate, windowDays int) []entities.Exam {
	var end entities.ExamDate
	if windowDays >= 0 {
		end = today.AddDays(windowDays)
	}

	selected := []entities.Exam{}
	for _, e := range exams {
		if e.Date.Before(today) {
			continue
		}
		if windowDays >= 0 && e.Date.After(end) {
			continue
		}
		selected = append(selected, e)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Date.Before(selected[j].Date)
	})
	return selected
}

// DayView is a grid cell together with the exams scheduled on it.
type DayView struct {
	Empty bool              `json:"empty"`
	Date  entities.ExamDate `json:"date,omitempty"`
	Exams []entities.Exam   `json:"exams,omitempty"`
}

// MonthView combines the month grid with the exam collection: every non-empty
// cell carries the exams of its day. Cells with no exams are fine and carry an
// empty list.
func MonthView(year int, month time.Month, firstWeekday time.Weekday, exams []entities.Exam) []DayView {
	cells := BuildMonthGrid(year, month, firstWeekday)
	view := make([]DayView, len(cells))
	for i, c := range cells {
		if c.Empty {
			view[i] = DayView{Empty: true}
			continue
		}
		view[i] = DayView{Date: c.Date, Exams: ExamsOn(exams, c.Date)}
	}
	return view
}
