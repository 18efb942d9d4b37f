package entities

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors
var (
	ErrExamNotFound   = errors.New("exam not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUserUnresolved = errors.New("user id not resolved")
)

// ValidationError reports a draft that must not reach the persistence layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid exam: %s %s", e.Field, e.Reason)
}

// PersistenceError wraps a failed persistence adapter call.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Priority of an exam. Optional; the empty value carries no priority semantics.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Color returns the display color for the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#22c55e"
	case PriorityMedium:
		return "#f59e0b"
	case PriorityHigh:
		return "#ef4444"
	default:
		return ""
	}
}

const examDateLayout = "2006-01-02"

// ExamDate is a calendar date with day granularity. Any time-of-day or
// timezone component present on input is normalized away before comparison.
type ExamDate struct {
	t time.Time
}

// NewExamDate builds a date from its calendar components.
func NewExamDate(year int, month time.Month, day int) ExamDate {
	return ExamDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) ExamDate {
	return NewExamDate(t.Year(), t.Month(), t.Day())
}

// ParseExamDate accepts a plain ISO date or a full RFC 3339 timestamp and
// keeps only the date portion.
func ParseExamDate(s string) (ExamDate, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(examDateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return ExamDate{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
}

func (d ExamDate) IsZero() bool           { return d.t.IsZero() }
func (d ExamDate) Year() int              { return d.t.Year() }
func (d ExamDate) Month() time.Month      { return d.t.Month() }
func (d ExamDate) Day() int               { return d.t.Day() }
func (d ExamDate) Weekday() time.Weekday  { return d.t.Weekday() }
func (d ExamDate) Equal(o ExamDate) bool  { return d.t.Equal(o.t) }
func (d ExamDate) Before(o ExamDate) bool { return d.t.Before(o.t) }
func (d ExamDate) After(o ExamDate) bool  { return d.t.After(o.t) }

// AddDays returns the date n days later (negative n is allowed).
func (d ExamDate) AddDays(n int) ExamDate {
	return DateOf(d.t.AddDate(0, 0, n))
}

func (d ExamDate) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(examDateLayout)
}

func (d ExamDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *ExamDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = ExamDate{}
		return nil
	}
	parsed, err := ParseExamDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so the date can be bound in SQL statements.
func (d ExamDate) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implements sql.Scanner. Timestamps coming back from the row store are
// truncated to their date component on read.
func (d *ExamDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseExamDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ExamDate", src)
	}
}

// DefaultSubjects is the closed subject enumeration used when the
// configuration does not override it.
var DefaultSubjects = []string{
	"Mathematik",
	"Deutsch",
	"Englisch",
	"Französisch",
	"Wirtschaft und Recht",
	"Finanz und Rechnungswesen",
	"Geschichte",
	"Informatik",
}

// SubjectSet is the closed enumeration of allowed subject names.
type SubjectSet map[string]struct{}

// NewSubjectSet builds a subject set from a list of names. An empty list
// falls back to DefaultSubjects.
func NewSubjectSet(names []string) SubjectSet {
	if len(names) == 0 {
		names = DefaultSubjects
	}
	set := make(SubjectSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (s SubjectSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Exam is a single exam record. Records are immutable value objects; editing
// replaces the record under the same id.
type Exam struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Subject     string   `json:"subject" db:"subject"`
	Date        ExamDate `json:"date" db:"exam_date"`
	Description string   `json:"description,omitempty" db:"description"`
	Priority    Priority `json:"priority,omitempty" db:"priority"`
}

// Validate checks the mandatory fields before a record may reach the
// persistence adapter.
func (e *Exam) Validate(subjects SubjectSet) error {
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Reason: "is required"}
	}
	if e.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "is required"}
	}
	if !subjects.Contains(e.Subject) {
		return &ValidationError{Field: "subject", Reason: fmt.Sprintf("%q is not an allowed subject", e.Subject)}
	}
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if !e.Priority.IsValid() {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("%q is not one of low, medium, high", e.Priority)}
	}
	return nil
}
