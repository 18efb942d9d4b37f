package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pruefungsplaner/core/internal/domain/entities"
)

func mustDate(t *testing.T, s string) entities.ExamDate {
	t.Helper()
	d, err := entities.ParseExamDate(s)
	require.NoError(t, err)
	return d
}

func TestExamsOnMatchesByCalendarDay(t *testing.T) {
	exams := []entities.Exam{
		{ID: "a", Title: "Analysis", Subject: "Mathematik", Date: mustDate(t, "2024-03-05")},
		{ID: "b", Title: "Essay", Subject: "Deutsch", Date: mustDate(t, "2024-03-05T23:00:00Z")},
		{ID: "c", Title: "Vocab", Subject: "Englisch", Date: mustDate(t, "2024-03-06")},
	}

	day := mustDate(t, "2024-03-05")
	got := ExamsOn(exams, day)

	// A timestamp suffix on stored input must not hide the record.
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	assert.Empty(t, ExamsOn(exams, mustDate(t, "2024-03-07")))
}

func TestUpcomingWindow(t *testing.T) {
	today := mustDate(t, "2024-05-01")
	exams := []entities.Exam{
		{ID: "past", Date: mustDate(t, "2024-04-30")},
		{ID: "today", Date: mustDate(t, "2024-05-01")},
		{ID: "edge", Date: mustDate(t, "2024-05-31")},
		{ID: "beyond", Date: mustDate(t, "2024-06-01")},
		{ID: "mid", Date: mustDate(t, "2024-05-10")},
	}

	got := Upcoming(exams, today, 30)

	require.Len(t, got, 3)
	// Sorted ascending; both window ends inclusive.
	assert.Equal(t, "today", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.Equal(t, "edge", got[2].ID)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date), "result must be non-decreasing")
	}
}

func TestUpcomingStableOnTies(t *testing.T) {
	today := mustDate(t, "2024-05-01")
	exams := []entities.Exam{
		{ID: "z", Date: mustDate(t, "2024-05-10")},
		{ID: "a", Date: mustDate(t, "2024-05-02")},
		{ID: "m", Date: mustDate(t, "2024-05-10")},
		{ID: "k", Date: mustDate(t, "2024-05-10")},
	}

	got := Upcoming(exams, today, 30)

	require.Len(t, got, 4)
	// Same-date records keep their input order.
	assert.Equal(t, []string{"a", "z", "m", "k"}, []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})
}

func TestUpcomingUnbounded(t *testing.T) {
	today := mustDate(t, "2024-05-01")
	exams := []entities.Exam{
		{ID: "far", Date: mustDate(t, "2030-01-01")},
		{ID: "near", Date: mustDate(t, "2024-05-02")},
		{ID: "past", Date: mustDate(t, "2024-04-01")},
	}

	got := Upcoming(exams, today, -1)

	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
	assert.Equal(t, "far", got[1].ID)
}

func TestUpcomingZeroWindowIsTodayOnly(t *testing.T) {
	today := mustDate(t, "2024-05-01")
	exams := []entities.Exam{
		{ID: "today", Date: today},
		{ID: "tomorrow", Date: mustDate(t, "2024-05-02")},
	}

	got := Upcoming(exams, today, 0)

	require.Len(t, got, 1)
	assert.Equal(t, "today", got[0].ID)
}

func TestMonthView(t *testing.T) {
	exams := []entities.Exam{
		{ID: "m", Title: "Matrix", Subject: "Mathematik", Date: mustDate(t, "2024-05-10")},
	}

	view := MonthView(2024, time.May, time.Sunday, exams)

	// May 2024: three leading blanks, then 31 days.
	require.Len(t, view, 34)
	for i := 0; i < 3; i++ {
		assert.True(t, view[i].Empty)
	}

	day10 := view[3+9]
	require.False(t, day10.Empty)
	assert.Equal(t, 10, day10.Date.Day())
	require.Len(t, day10.Exams, 1)
	assert.Equal(t, "m", day10.Exams[0].ID)

	day11 := view[3+10]
	assert.Empty(t, day11.Exams, "days without exams carry an empty list, not an error")
}
