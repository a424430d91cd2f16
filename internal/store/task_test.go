package store

import (
	"context"
	"testing"

	"github.com/hiroki-koketsu/go-todo-sample/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Alert(_ context.Context, message string) {
	n.messages = append(n.messages, message)
}

func newTestStore(t *testing.T) (*TaskStore, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	s := NewTaskStore()
	s.SetNotifier(n)
	return s, n
}

func create(t *testing.T, s *TaskStore, title string, status model.Status) model.Task {
	t.Helper()
	s.NewDraft().Title = title
	s.NewDraft().Status = status
	task, err := s.CreateTask(context.Background())
	require.NoError(t, err)
	return task
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestTaskStore_InitialState(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.SortedView(ctx))
	assert.Empty(t, s.FilteredView(ctx))
	assert.Equal(t, int64(0), s.Count())
	assert.Equal(t, model.SortAscending, s.Sort())
	assert.Equal(t, model.FilterAll, s.Filter())
	assert.False(t, s.ModalVisible(model.ModalCreate))
	assert.False(t, s.ModalVisible(model.ModalEdit))
	assert.Equal(t, model.Draft{Status: model.StatusNotStarted}, *s.NewDraft())
	assert.Equal(t, model.Draft{Status: model.StatusNotStarted}, *s.EditDraft())
}

func TestTaskStore_CreateTask(t *testing.T) {
	s, n := newTestStore(t)

	s.NewDraft().Title = "Test Todo"
	s.NewDraft().Detail = "details"
	s.NewDraft().Deadline = "not a date"
	task, err := s.CreateTask(context.Background())
	require.NoError(t, err)

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Test Todo", tasks[0].Title)
	assert.Equal(t, "not a date", tasks[0].Deadline)
	assert.Equal(t, task, tasks[0])
	assert.Equal(t, int64(1), s.Count())
	assert.Empty(t, n.messages)
}

func TestTaskStore_CreateTaskEmptyTitle(t *testing.T) {
	s, n := newTestStore(t)
	s.SetModalVisibility(model.ModalCreate, true)
	s.NewDraft().Detail = "kept"

	_, err := s.CreateTask(context.Background())
	require.ErrorIs(t, err, model.ErrTitleRequired)

	assert.Empty(t, s.Tasks())
	assert.Equal(t, []string{"please enter a task title"}, n.messages)
	assert.Equal(t, "kept", s.NewDraft().Detail)
	assert.True(t, s.ModalVisible(model.ModalCreate))
}

func TestTaskStore_CreateTaskResetsDraft(t *testing.T) {
	s, _ := newTestStore(t)
	s.SetModalVisibility(model.ModalCreate, true)
	s.SetModalVisibility(model.ModalEdit, true)

	s.NewDraft().Title = "Another Test Todo"
	s.NewDraft().Status = model.StatusDone
	s.NewDraft().IsDone = true
	_, err := s.CreateTask(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "", s.NewDraft().Title)
	assert.Equal(t, model.StatusNotStarted, s.NewDraft().Status)
	assert.False(t, s.NewDraft().IsDone)
	assert.False(t, s.ModalVisible(model.ModalCreate))
	assert.True(t, s.ModalVisible(model.ModalEdit))
}

func TestTaskStore_IDAssignment(t *testing.T) {
	s, _ := newTestStore(t)

	first := create(t, s, "a", model.StatusNotStarted)
	assert.Equal(t, 1, first.ID)

	s.SetSort(model.SortDescending)
	s.SetFilter(model.FilterDone)
	second := create(t, s, "b", model.StatusInProgress)
	assert.Equal(t, 2, second.ID)

	// a draft id is ignored
	s.NewDraft().ID = 40
	third := create(t, s, "c", model.StatusDone)
	assert.Equal(t, 3, third.ID)
}

func TestTaskStore_SortedView(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	create(t, s, "Todo 1", model.StatusNotStarted)
	create(t, s, "Todo 2", model.StatusNotStarted)

	assert.Equal(t, []string{"Todo 1", "Todo 2"}, titles(s.SortedView(ctx)))

	s.SetSort(model.SortDescending)
	assert.Equal(t, []string{"Todo 2", "Todo 1"}, titles(s.SortedView(ctx)))

	// the source list keeps insertion order
	assert.Equal(t, []string{"Todo 1", "Todo 2"}, titles(s.Tasks()))
}

func TestTaskStore_SortedViewIsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	create(t, s, "Todo 1", model.StatusNotStarted)

	view := s.SortedView(context.Background())
	view[0].Title = "changed"

	assert.Equal(t, "Todo 1", s.Tasks()[0].Title)
}

func TestTaskStore_FilteredView(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	create(t, s, "Todo 1", model.StatusNotStarted)
	create(t, s, "Todo 2", model.StatusNotStarted)
	create(t, s, "Todo 3", model.StatusDone)

	assert.Len(t, s.FilteredView(ctx), 3)

	s.SetFilter(model.FilterNotStarted)
	view := s.FilteredView(ctx)
	require.Len(t, view, 2)
	assert.Equal(t, []string{"Todo 1", "Todo 2"}, titles(view))
	for _, task := range view {
		assert.Equal(t, model.StatusNotStarted, task.Status)
	}

	s.SetSort(model.SortDescending)
	assert.Equal(t, []string{"Todo 2", "Todo 1"}, titles(s.FilteredView(ctx)))

	s.SetFilter(model.FilterDone)
	view = s.FilteredView(ctx)
	require.Len(t, view, 1)
	assert.Equal(t, model.StatusDone, view[0].Status)

	s.SetFilter(model.FilterInProgress)
	assert.Empty(t, s.FilteredView(ctx))
}

func TestTaskStore_SetModalVisibility(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetModalVisibility(model.ModalCreate, true)
	assert.True(t, s.ModalVisible(model.ModalCreate))
	assert.False(t, s.ModalVisible(model.ModalEdit))

	s.SetModalVisibility(model.ModalCreate, false)
	assert.False(t, s.ModalVisible(model.ModalCreate))
	assert.False(t, s.ModalVisible(model.ModalEdit))

	s.SetModalVisibility(model.ModalEdit, true)
	assert.True(t, s.ModalVisible(model.ModalEdit))
	assert.False(t, s.ModalVisible(model.ModalCreate))
}

func TestTaskStore_Options(t *testing.T) {
	s := NewTaskStore(WithSort(model.SortDescending), WithFilter(model.FilterDone))

	assert.Equal(t, model.SortDescending, s.Sort())
	assert.Equal(t, model.FilterDone, s.Filter())
}
