package store

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hiroki-koketsu/go-todo-sample/internal/model"
	"github.com/hiroki-koketsu/go-todo-sample/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/hiroki-koketsu/go-todo-sample/internal/store")

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(ctx context.Context, message string)
}

// LogNotifier reports alerts as warnings when no UI is attached.
type LogNotifier struct {
	Logger *slog.Logger
}

// Alert logs message at warn level.
func (n LogNotifier) Alert(ctx context.Context, message string) {
	n.Logger.WarnContext(ctx, "alert", slog.String("message", message))
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithLogger sets the logger used for store events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *TaskStore) {
		s.logger = logger
	}
}

// WithSort sets the initial sort selection.
func WithSort(order model.SortOrder) Option {
	return func(s *TaskStore) {
		s.sort = order
	}
}

// WithFilter sets the initial filter selection.
func WithFilter(filter model.Filter) Option {
	return func(s *TaskStore) {
		s.filter = filter
	}
}

// TaskStore holds the task list, the view selections, the form drafts and
// the dialog visibility flags for a single UI. Only Count may be called
// concurrently with the other methods.
type TaskStore struct {
	tasks  []model.Task
	count  atomic.Int64 // read by the metrics callback goroutine
	sort   model.SortOrder
	filter model.Filter

	newDraft  model.Draft
	editDraft model.Draft

	showCreate bool
	showEdit   bool

	notifier Notifier
	logger   *slog.Logger
	metrics  *telemetry.Metrics
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore(opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks:  []model.Task{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.newDraft.Reset()
	s.editDraft.Reset()
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Logger: s.logger}
	}
	return s
}

// SetNotifier replaces the target of validation alerts.
func (s *TaskStore) SetNotifier(n Notifier) {
	s.notifier = n
}

// SetMetrics attaches metric instruments. A nil value disables recording.
func (s *TaskStore) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// CreateTask commits the create draft as a new task. An empty title raises a
// single alert and returns model.ErrTitleRequired without touching any state.
func (s *TaskStore) CreateTask(ctx context.Context) (model.Task, error) {
	ctx, span := tracer.Start(ctx, "TaskStore.CreateTask",
		trace.WithAttributes(attribute.String("task.title", s.newDraft.Title)),
	)
	defer span.End()

	if err := s.newDraft.Validate(); err != nil {
		span.SetAttributes(attribute.Bool("task.valid", false))
		s.logger.WarnContext(ctx, "validation failed", slog.Any("error", err))
		if s.metrics != nil {
			s.metrics.ValidationFailures.Add(ctx, 1)
		}
		s.notifier.Alert(ctx, err.Error())
		return model.Task{}, err
	}

	task := s.newDraft.Task(s.nextID())
	s.tasks = append(s.tasks, task)
	s.count.Store(int64(len(s.tasks)))

	s.newDraft.Reset()
	s.SetModalVisibility(model.ModalCreate, false)

	span.SetAttributes(
		attribute.Bool("task.valid", true),
		attribute.Int("task.id", task.ID),
	)
	s.logger.InfoContext(ctx, "task created",
		slog.Int("id", task.ID),
		slog.String("title", task.Title),
		slog.String("status", task.Status.String()),
	)
	if s.metrics != nil {
		s.metrics.TasksCreated.Add(ctx, 1,
			metric.WithAttributes(attribute.String("task.status", task.Status.String())),
		)
	}
	return task, nil
}

func (s *TaskStore) nextID() int {
	maxID := 0
	for _, t := range s.tasks {
		maxID = max(maxID, t.ID)
	}
	return maxID + 1
}

// SortedView returns a copy of the task list ordered by id per the current
// sort selection.
func (s *TaskStore) SortedView(ctx context.Context) []model.Task {
	ctx, span := tracer.Start(ctx, "TaskStore.SortedView",
		trace.WithAttributes(attribute.String("task.sort", s.sort.String())),
	)
	defer span.End()
	defer s.recordView(ctx, "sorted", time.Now())

	view := s.sorted()
	span.SetAttributes(attribute.Int("task.count", len(view)))
	return view
}

// FilteredView returns the sorted view narrowed to the current filter.
func (s *TaskStore) FilteredView(ctx context.Context) []model.Task {
	ctx, span := tracer.Start(ctx, "TaskStore.FilteredView",
		trace.WithAttributes(
			attribute.String("task.sort", s.sort.String()),
			attribute.String("task.filter", s.filter.String()),
		),
	)
	defer span.End()
	defer s.recordView(ctx, "filtered", time.Now())

	view := s.sorted()
	if s.filter != model.FilterAll {
		view = slices.DeleteFunc(view, func(t model.Task) bool {
			return !s.filter.Matches(t.Status)
		})
	}

	span.SetAttributes(attribute.Int("task.count", len(view)))
	return view
}

func (s *TaskStore) sorted() []model.Task {
	view := slices.Clone(s.tasks)
	if view == nil {
		view = []model.Task{}
	}
	slices.SortStableFunc(view, func(a, b model.Task) int {
		if s.sort == model.SortDescending {
			return b.ID - a.ID
		}
		return a.ID - b.ID
	})
	return view
}

func (s *TaskStore) recordView(ctx context.Context, view string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ViewDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("view", view)),
	)
}

// SetModalVisibility shows or hides one dialog.
func (s *TaskStore) SetModalVisibility(which model.Modal, visible bool) {
	switch which {
	case model.ModalCreate:
		s.showCreate = visible
	case model.ModalEdit:
		s.showEdit = visible
	}
}

// ModalVisible reports whether a dialog is shown.
func (s *TaskStore) ModalVisible(which model.Modal) bool {
	switch which {
	case model.ModalCreate:
		return s.showCreate
	case model.ModalEdit:
		return s.showEdit
	}
	return false
}

// Tasks returns the tasks in insertion order.
func (s *TaskStore) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}

// Count returns the current number of tasks.
func (s *TaskStore) Count() int64 {
	return s.count.Load()
}

// Sort returns the current sort selection.
func (s *TaskStore) Sort() model.SortOrder { return s.sort }

// SetSort changes the order of the derived views.
func (s *TaskStore) SetSort(order model.SortOrder) { s.sort = order }

// Filter returns the current filter selection.
func (s *TaskStore) Filter() model.Filter { return s.filter }

// SetFilter changes which statuses FilteredView keeps.
func (s *TaskStore) SetFilter(filter model.Filter) { s.filter = filter }

// NewDraft returns the draft bound to the create form.
func (s *TaskStore) NewDraft() *model.Draft { return &s.newDraft }

// EditDraft returns the draft bound to the edit form. Nothing commits it
// back to the list yet.
func (s *TaskStore) EditDraft() *model.Draft { return &s.editDraft }
