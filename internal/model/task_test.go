package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_Reset(t *testing.T) {
	d := Draft{ID: 7, Title: "t", Detail: "d", Deadline: "2024-01-01", Status: StatusDone, IsDone: true}
	d.Reset()

	assert.Equal(t, Draft{Status: StatusNotStarted}, d)
}

func TestDraft_Validate(t *testing.T) {
	var d Draft
	err := d.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTitleRequired))

	d.Title = "write report"
	assert.NoError(t, d.Validate())
}

func TestDraft_TaskCopiesFields(t *testing.T) {
	d := Draft{ID: 99, Title: "t", Detail: "d", Deadline: "tomorrow", Status: StatusInProgress, IsDone: true}

	task := d.Task(3)
	assert.Equal(t, Task{ID: 3, Title: "t", Detail: "d", Deadline: "tomorrow", Status: StatusInProgress, IsDone: true}, task)
}

func TestStatus_Cycle(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusNotStarted.Next())
	assert.Equal(t, StatusNotStarted, StatusDone.Next())
	assert.Equal(t, StatusDone, StatusNotStarted.Prev())
	assert.Equal(t, "Unknown", Status(5).String())
}

func TestFilter_Matches(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, FilterAll.Matches(s), s.String())
	}
	assert.True(t, FilterDone.Matches(StatusDone))
	assert.False(t, FilterDone.Matches(StatusNotStarted))
	assert.Equal(t, FilterAll, FilterDone.Next())
}

func TestParse(t *testing.T) {
	o, err := ParseSortOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, SortDescending, o)

	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)

	f, err := ParseFilter("in-progress")
	require.NoError(t, err)
	assert.Equal(t, FilterInProgress, f)

	f, err = ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseFilter("archived")
	assert.Error(t, err)
}
