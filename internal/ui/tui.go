// Package ui provides the terminal front end for the task store.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hiroki-koketsu/go-todo-sample/internal/model"
	"github.com/hiroki-koketsu/go-todo-sample/internal/store"
)

type field int

const (
	fieldTitle field = iota
	fieldDetail
	fieldDeadline
	fieldStatus
	fieldCount
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	alertStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
	focusMarker = "> "
)

// Model is the bubbletea model over a TaskStore. It is also the store's
// Notifier so validation alerts block the screen until dismissed.
type Model struct {
	ctx    context.Context
	store  *store.TaskStore
	inputs []textinput.Model
	focus  field
	alert  string
	status string
}

// New builds the UI model and registers it as the store's notifier.
func New(ctx context.Context, s *store.TaskStore) *Model {
	m := &Model{
		ctx:    ctx,
		store:  s,
		inputs: make([]textinput.Model, fieldStatus),
		status: "Press n to add a task.",
	}

	placeholders := []string{"Task title", "Detail", "Deadline (e.g. 2025-01-31)"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		m.inputs[i] = ti
	}

	s.SetNotifier(m)
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, s *store.TaskStore) error {
	program := tea.NewProgram(New(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Alert implements store.Notifier.
func (m *Model) Alert(_ context.Context, message string) {
	m.alert = message
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.alert != "":
			return m.updateAlert(msg)
		case m.store.ModalVisible(model.ModalCreate):
			return m.updateCreate(msg)
		case m.store.ModalVisible(model.ModalEdit):
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-20, 10)
		}
	}
	return m, nil
}

func (m *Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.alert = ""
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "n":
		return m, m.openCreate()
	case "e":
		m.store.SetModalVisibility(model.ModalEdit, true)
	case "s":
		m.store.SetSort(m.store.Sort().Toggle())
	case "f":
		m.store.SetFilter(m.store.Filter().Next())
	case "0", "1", "2", "3":
		m.store.SetFilter(model.Filters()[msg.String()[0]-'0'])
	}
	return m, nil
}

func (m *Model) openCreate() tea.Cmd {
	m.store.SetModalVisibility(model.ModalCreate, true)
	m.loadDraft()
	return m.setFocus(fieldTitle)
}

func (m *Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	draft := m.store.NewDraft()

	switch msg.String() {
	case "esc":
		m.store.SetModalVisibility(model.ModalCreate, false)
		m.blurAll()
		m.status = "Cancelled."
		return m, nil
	case "tab", "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		m.saveDraft()
		task, err := m.store.CreateTask(m.ctx)
		if err != nil {
			return m, nil
		}
		m.blurAll()
		m.loadDraft()
		m.status = fmt.Sprintf("Created task #%d.", task.ID)
		return m, nil
	}

	if m.focus == fieldStatus {
		switch msg.String() {
		case "left":
			draft.Status = draft.Status.Prev()
		case "right":
			draft.Status = draft.Status.Next()
		case " ":
			draft.IsDone = !draft.IsDone
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.saveDraft()
	return m, cmd
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.store.SetModalVisibility(model.ModalEdit, false)
	}
	return m, nil
}

// saveDraft copies the form inputs into the create draft.
func (m *Model) saveDraft() {
	draft := m.store.NewDraft()
	draft.Title = m.inputs[fieldTitle].Value()
	draft.Detail = m.inputs[fieldDetail].Value()
	draft.Deadline = m.inputs[fieldDeadline].Value()
}

// loadDraft copies the create draft into the form inputs.
func (m *Model) loadDraft() {
	draft := m.store.NewDraft()
	m.inputs[fieldTitle].SetValue(draft.Title)
	m.inputs[fieldDetail].SetValue(draft.Detail)
	m.inputs[fieldDeadline].SetValue(draft.Deadline)
}

func (m *Model) setFocus(f field) tea.Cmd {
	m.blurAll()
	m.focus = f
	if f == fieldStatus {
		return nil
	}
	return m.inputs[f].Focus()
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) View() string {
	var b strings.Builder

	switch {
	case m.alert != "":
		b.WriteString(alertStyle.Render(m.alert + "\n\n" + dimStyle.Render("enter: OK")))
		b.WriteString("\n")
	case m.store.ModalVisible(model.ModalCreate):
		b.WriteString(modalStyle.Render(m.createForm()))
		b.WriteString("\n")
	case m.store.ModalVisible(model.ModalEdit):
		b.WriteString(modalStyle.Render(m.editForm()))
		b.WriteString("\n")
	default:
		m.writeList(&b)
	}
	return b.String()
}

func (m *Model) writeList(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("  sort: " + selector(model.SortOrders(), m.store.Sort()))
	b.WriteString("  filter: " + selector(model.Filters(), m.store.Filter()) + "\n\n")

	tasks := m.store.FilteredView(m.ctx)
	if len(tasks) == 0 {
		b.WriteString("  No tasks.\n")
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t))
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.status + "\n")
	b.WriteString(dimStyle.Render("n new | e edit | s sort | f/0-3 filter | q quit"))
	b.WriteString("\n")
}

func (m *Model) createForm() string {
	draft := m.store.NewDraft()
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task") + "\n\n")
	labels := []string{"Title", "Detail", "Deadline"}
	for i, in := range m.inputs {
		b.WriteString(m.marker(field(i)) + fmt.Sprintf("%-9s", labels[i]) + in.View() + "\n")
	}
	done := "[ ]"
	if draft.IsDone {
		done = "[x]"
	}
	b.WriteString(m.marker(fieldStatus) + fmt.Sprintf("%-9s< %s >  %s done\n", "Status", draft.Status, done))
	b.WriteString("\n" + dimStyle.Render("tab move | ←/→ status | space done | enter save | esc cancel"))
	return b.String()
}

func (m *Model) editForm() string {
	draft := m.store.EditDraft()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit task") + "\n\n")
	b.WriteString(fmt.Sprintf("Title     %s\n", draft.Title))
	b.WriteString(fmt.Sprintf("Detail    %s\n", draft.Detail))
	b.WriteString(fmt.Sprintf("Deadline  %s\n", draft.Deadline))
	b.WriteString(fmt.Sprintf("Status    %s\n", draft.Status))
	b.WriteString("\n" + dimStyle.Render("saving edits is not available | esc close"))
	return b.String()
}

func (m *Model) marker(f field) string {
	if m.focus == f {
		return focusMarker
	}
	return "  "
}

// selector renders every option and brackets the active one.
func selector[T comparable](options []T, active T) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		label := fmt.Sprint(o)
		if o == active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func formatTask(t model.Task) string {
	check := " "
	if t.IsDone {
		check = "x"
	}
	line := fmt.Sprintf("  [%s] #%d %-12s %s", check, t.ID, t.Status, t.Title)
	if t.Deadline != "" {
		line += "  (due " + t.Deadline + ")"
	}
	if t.Detail != "" {
		line += "\n      " + dimStyle.Render(ansi.Truncate(t.Detail, 60, "..."))
	}
	return line
}
