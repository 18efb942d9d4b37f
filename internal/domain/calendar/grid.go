// Package calendar holds the pure month-grid and projection logic. Nothing in
// here touches persistence; callers pass in the exam snapshot they want
// projected.
package calendar

import (
	"time"

	"github.com/pruefungsplaner/core/internal/domain/entities"
)

// Cell is one slot in a month grid: either leading padding before the first
// day of the month, or a concrete calendar date.
type Cell struct {
	Empty bool              `json:"empty"`
	Date  entities.ExamDate `json:"date,omitempty"`
}

// BuildMonthGrid returns the cell sequence for the given month: leading empty
// cells so that day 1 falls on its weekday relative to firstWeekday, then one
// cell per day 1..daysInMonth. The trailing row is not padded.
func BuildMonthGrid(year int, month time.Month, firstWeekday time.Weekday) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := (int(first.Weekday()) - int(firstWeekday) + 7) % 7

	// Day 0 of the next month is the last day of this one.
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]Cell, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{Date: entities.NewExamDate(year, month, day)})
	}
	return cells
}

// DaysInMonth reports the number of days in the given month of the host
// calendar, leap years included.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
