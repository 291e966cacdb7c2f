package entities

import (
	"sort"
	"strings"
	"time"
)

type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterPending   TaskFilter = "pending"
	FilterCompleted TaskFilter = "completed"
	FilterOverdue   TaskFilter = "overdue"
	FilterToday     TaskFilter = "today"
)

// ParseTaskFilter defaults to FilterAll for anything unrecognized.
func ParseTaskFilter(s string) TaskFilter {
	switch f := TaskFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterPending, FilterCompleted, FilterOverdue, FilterToday:
		return f
	default:
		return FilterAll
	}
}

var dueDateLayouts = []struct {
	layout   string
	dateOnly bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
}

// DueTime parses DueDate. Zone-less values are read in loc. dateOnly is true
// when the due date carries no time of day.
func (t *Task) DueTime(loc *time.Location) (due time.Time, dateOnly bool, ok bool) {
	if t.DueDate == nil {
		return time.Time{}, false, false
	}
	raw := strings.TrimSpace(*t.DueDate)
	if raw == "" {
		return time.Time{}, false, false
	}
	for _, l := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(l.layout, raw, loc); err == nil {
			return parsed, l.dateOnly, true
		}
	}
	return time.Time{}, false, false
}

// IsOverdue reports whether an open task is past its due date. A date-only due
// date becomes overdue once that calendar day has ended.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, dateOnly, ok := t.DueTime(now.Location())
	if !ok {
		return false
	}
	if dateOnly {
		return due.Before(startOfDay(now))
	}
	return due.Before(now)
}

// IsDueOn reports whether the due date falls on the calendar day of day.
func (t *Task) IsDueOn(day time.Time) bool {
	due, _, ok := t.DueTime(day.Location())
	if !ok {
		return false
	}
	due = due.In(day.Location())
	y1, m1, d1 := due.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MatchesFilter applies one of the list filters at instant now.
func (t *Task) MatchesFilter(f TaskFilter, now time.Time) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterOverdue:
		return t.IsOverdue(now)
	case FilterToday:
		return t.IsDueOn(now)
	default:
		return true
	}
}

// MatchesSearch is a case-insensitive substring match on title and description.
func (t *Task) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q)
}

// SortTasks orders open tasks first, then by priority, then newest first.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra > rb
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
