package model

import (
	"fmt"
	"strings"
)

// SortOrder selects how task views are ordered by id.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// SortOrders returns the selectable sort orders in display order.
func SortOrders() []SortOrder {
	return []SortOrder{SortAscending, SortDescending}
}

func (o SortOrder) String() string {
	if o == SortDescending {
		return "Descending"
	}
	return "Ascending"
}

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// ParseSortOrder resolves a case-insensitive sort name ("asc", "ascending", ...).
func ParseSortOrder(name string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	default:
		return SortAscending, fmt.Errorf("unknown sort order %q", name)
	}
}

// Filter narrows a task view to a single status, or shows everything.
type Filter int

const (
	FilterAll Filter = iota
	FilterNotStarted
	FilterInProgress
	FilterDone
)

// Filters returns the selectable filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterNotStarted, FilterInProgress, FilterDone}
}

func (f Filter) String() string {
	if f == FilterAll {
		return "All"
	}
	if s, ok := f.Status(); ok {
		return s.String()
	}
	return "Unknown"
}

// Status returns the status the filter selects. ok is false for FilterAll.
func (f Filter) Status() (Status, bool) {
	switch f {
	case FilterNotStarted:
		return StatusNotStarted, true
	case FilterInProgress:
		return StatusInProgress, true
	case FilterDone:
		return StatusDone, true
	default:
		return 0, false
	}
}

// Matches reports whether a task with status s passes the filter.
func (f Filter) Matches(s Status) bool {
	want, ok := f.Status()
	return !ok || want == s
}

// Next returns the following filter, wrapping around.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(Filters()))
}

// ParseFilter resolves a case-insensitive filter name ("all", "not_started", ...).
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return FilterAll, nil
	case "not_started", "not-started", "notstarted":
		return FilterNotStarted, nil
	case "in_progress", "in-progress", "inprogress":
		return FilterInProgress, nil
	case "done":
		return FilterDone, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q", name)
	}
}

// Modal identifies one of the task dialogs.
type Modal int

const (
	ModalCreate Modal = iota
	ModalEdit
)

func (m Modal) String() string {
	if m == ModalEdit {
		return "edit"
	}
	return "create"
}
