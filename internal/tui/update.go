package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
	"github.com/julianstephens/harmony/internal/tui/components/chat"
	"github.com/julianstephens/harmony/internal/tui/components/tasklist"
)

type routineDoneMsg struct {
	err error
}

type breakdownDoneMsg struct {
	projectID string
	added     int
	err       error
}

type breakdownAllDoneMsg struct {
	added int
}

type chatDoneMsg struct{}

var errNoPlanner = errors.New("the assistant is not configured")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.refresh()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		listHeight := max(msg.Height-v-8, 3)
		m.taskList.SetSize(msg.Width-h, listHeight)
		m.focusList.SetSize(msg.Width-h, max(listHeight-3, 3))
		m.chat.SetSize(msg.Width-h-4, max(msg.Height/3, 6))
		m.help.Width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width - h)
		}
		return m, nil

	case clockMsg:
		return m, clockTick()

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.busy > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	// model call failures are logged by the planner and stay off the screen;
	// chat already shows its fixed fallback line in the transcript
	case routineDoneMsg:
		m.routinePend = false
		m.busy--
		if msg.err == nil {
			m.status = "Routine generated"
		}
		return m, nil

	case breakdownDoneMsg:
		m.breakdownPend[msg.projectID]--
		if m.breakdownPend[msg.projectID] <= 0 {
			delete(m.breakdownPend, msg.projectID)
		}
		m.busy--
		if msg.err == nil {
			m.status = fmt.Sprintf("Added %d subtask(s)", msg.added)
		}
		return m, nil

	case breakdownAllDoneMsg:
		m.busy--
		m.status = fmt.Sprintf("Broke down %d project(s)", msg.added)
		return m, nil

	case chatDoneMsg:
		m.chatPend = false
		m.busy--
		m.chat.SetTyping(false)
		return m, nil

	case chat.SendMsg:
		cmd := m.startChat(msg.Text)
		return m, cmd
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateChat:
		return m.updateChat(msg)
	case StateConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		submit := m.submitForm()
		m.closeForm()
		return m, tea.Batch(cmd, submit)
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) openForm(kind formKind, form *huh.Form) tea.Cmd {
	m.formKind = kind
	m.form = form
	if m.width > 0 {
		h, _ := docStyle.GetFrameSize()
		m.form = m.form.WithWidth(m.width - h)
	}
	m.state = StateForm
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.state = StateBrowse
	m.form = nil
	m.editingID = ""
}

func (m Model) updateChat(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			m.chat.Blur()
			m.state = StateBrowse
			return m, nil
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y":
		target := m.deleteTarget
		n := len(m.store.Snapshot().ProjectTasks(target.id))
		m.dispatch(state.DeleteProject{ID: target.id},
			fmt.Sprintf("Deleted project: %s and %d task(s)", target.label, n))
		m.state = StateBrowse
	case "n", "N", "esc", "q":
		m.state = StateBrowse
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		date := m.today()
		if m.view() == models.ViewFocus {
			date = m.focusedDate()
		}
		m.taskForm = &taskForm{Date: date, Duration: constants.DefaultTaskDuration, Category: models.CategoryPersonal}
		cmd := m.openForm(formAddTask, newTaskForm(m.taskForm, "New task"))
		return m, cmd

	case tasklist.EditTaskMsg:
		t := msg.Task
		m.editingID = t.ID
		m.taskForm = &taskForm{
			Title:    t.Title,
			Date:     t.Date,
			Duration: models.ClampDuration(t.DurationMinutes),
			Start:    t.StartTime,
			Category: t.Category,
		}
		cmd := m.openForm(formEditTask, newTaskForm(m.taskForm, "Edit task"))
		return m, cmd

	case tasklist.DeleteTaskMsg:
		m.dispatch(state.DeleteTask{ID: msg.ID}, "Task deleted")
		return m, nil

	case tasklist.ToggleTaskMsg:
		if t, ok := m.store.Snapshot().Task(msg.ID); ok {
			m.dispatch(state.UpdateTask{ID: t.ID, Patch: state.TaskPatch{Completed: state.Ptr(!t.Completed)}}, "")
		}
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.switchView(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchView(-1)
			return m, nil
		case key.Matches(msg, m.keys.Chat):
			m.state = StateChat
			cmd := m.chat.Focus()
			return m, cmd
		}

		var cmd tea.Cmd
		switch m.view() {
		case models.ViewDashboard:
			m.taskList, cmd = m.taskList.Update(msg)
		case models.ViewFocus:
			switch {
			case key.Matches(msg, m.keys.Left):
				m.focusDay = max(m.focusDay-1, 0)
			case key.Matches(msg, m.keys.Right):
				m.focusDay = min(m.focusDay+1, constants.FocusStripDays-1)
			default:
				m.focusList, cmd = m.focusList.Update(msg)
			}
		case models.ViewProjects:
			return m.updateProjects(msg)
		case models.ViewRoutine:
			return m.updateRoutine(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) switchView(delta int) {
	i := slices.Index(models.Views, m.view())
	n := len(models.Views)
	next := models.Views[((i+delta)%n+n)%n]
	m.cursor = 0
	m.dispatch(state.SetView{View: next}, "")
}

func (m *Model) moveCursor(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
		return true
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, max(len(m.rows(m.store.Snapshot()))-1, 0))
		return true
	}
	return false
}

func (m Model) updateProjects(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.moveCursor(msg) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Add):
		m.projectForm = &projectForm{Start: m.today()}
		cmd := m.openForm(formAddProject, newProjectForm(m.projectForm))
		return m, cmd
	case key.Matches(msg, m.keys.Breakdown):
		if r, ok := m.selectedRow(); ok {
			cmd := m.startBreakdown(r.id)
			return m, cmd
		}
	case key.Matches(msg, m.keys.BreakdownAll):
		if len(m.store.Snapshot().PendingBreakdown()) == 0 {
			m.status = "No projects are waiting for breakdown."
			return m, nil
		}
		cmd := m.startBreakdownAll()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.selectedRow(); ok {
			m.deleteTarget = r
			m.state = StateConfirmDelete
		}
	}
	return m, nil
}

func (m Model) updateRoutine(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.moveCursor(msg) {
		return m, nil
	}
	st := m.store.Snapshot()
	switch {
	case key.Matches(msg, m.keys.Generate):
		if m.routineLoading() {
			return m, nil
		}
		m.routineForm = &routineForm{}
		cmd := m.openForm(formGenerateRoutine, newRoutineForm(m.routineForm))
		return m, cmd
	case key.Matches(msg, m.keys.Add):
		m.itemForm = &routineItemForm{Start: "09:00", End: "10:00", Days: []int{1, 2, 3, 4, 5}}
		cmd := m.openForm(formAddRoutineItem, newRoutineItemForm(m.itemForm, true))
		return m, cmd
	case key.Matches(msg, m.keys.AddOffTime):
		today := m.today()
		m.offTimeForm = &offTimeForm{Kind: models.OffTimeSingle, Start: today, End: today}
		cmd := m.openForm(formAddOffTime, newOffTimeForm(m.offTimeForm, true))
		return m, cmd
	}

	r, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.editingID = r.id
		if r.kind == rowRoutine {
			item := findRoutine(st.Routine, r.id)
			m.itemForm = &routineItemForm{Label: item.Label, Start: item.StartTime, End: item.EndTime}
			cmd := m.openForm(formEditRoutineItem, newRoutineItemForm(m.itemForm, false))
			return m, cmd
		}
		o := findOffTime(st.OffTimes, r.id)
		m.offTimeForm = &offTimeForm{Kind: o.Kind, Label: o.Label, Start: o.StartDate, End: o.EndDate}
		cmd := m.openForm(formEditOffTime, newOffTimeForm(m.offTimeForm, false))
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if r.kind == rowRoutine {
			m.dispatch(state.DeleteRoutineItem{ID: r.id}, "Deleted: "+r.label)
		} else {
			m.dispatch(state.DeleteOffTime{ID: r.id}, "Deleted: "+r.label)
		}
	case key.Matches(msg, m.keys.Day):
		if r.kind == rowRoutine {
			day, _ := strconv.Atoi(msg.String())
			m.dispatch(state.ToggleRoutineDay{ID: r.id, Day: day}, "")
		}
	}
	return m, nil
}

func findRoutine(items []models.RoutineItem, id string) models.RoutineItem {
	for _, r := range items {
		if r.ID == id {
			return r
		}
	}
	return models.RoutineItem{}
}

func findOffTime(items []models.OffTime, id string) models.OffTime {
	for _, o := range items {
		if o.ID == id {
			return o
		}
	}
	return models.OffTime{}
}

func (m *Model) dispatch(a state.Action, status string) {
	if err := m.store.Dispatch(a); err != nil {
		m.err = err
		return
	}
	if status != "" {
		m.status = status
	}
}

// submitForm applies the completed form. Routine generation is the only
// form that starts an async command.
func (m *Model) submitForm() tea.Cmd {
	switch m.formKind {
	case formAddTask:
		f := m.taskForm
		t := models.NewTask(models.TaskDraft{
			Title:           f.Title,
			Date:            strings.TrimSpace(f.Date),
			DurationMinutes: f.Duration,
			StartTime:       strings.TrimSpace(f.Start),
			Category:        f.Category,
		}, m.today())
		m.dispatch(state.AddTask{Task: t}, "Added: "+t.Title)

	case formEditTask:
		f := m.taskForm
		title := strings.TrimSpace(f.Title)
		if title == "" {
			title = constants.DefaultTaskTitle
		}
		m.dispatch(state.UpdateTask{ID: m.editingID, Patch: state.TaskPatch{
			Title:           &title,
			Date:            state.Ptr(strings.TrimSpace(f.Date)),
			DurationMinutes: state.Ptr(models.ClampDuration(f.Duration)),
			StartTime:       state.Ptr(strings.TrimSpace(f.Start)),
			Category:        state.Ptr(f.Category),
		}}, "Updated: "+title)

	case formAddProject:
		f := m.projectForm
		p, err := models.NewProject(f.Title, strings.TrimSpace(f.Start), strings.TrimSpace(f.Deadline), strings.TrimSpace(f.Description))
		if err != nil {
			m.err = err
			return nil
		}
		m.dispatch(state.AddProject{Project: p}, "Added project: "+p.Title)

	case formGenerateRoutine:
		return m.startRoutine(m.routineForm.Description)

	case formAddRoutineItem:
		f := m.itemForm
		item := models.NewRoutineItem(f.Label, strings.TrimSpace(f.Start), strings.TrimSpace(f.End), f.Days)
		m.dispatch(state.AddRoutineItem{Item: item}, "Added: "+item.Label)

	case formEditRoutineItem:
		f := m.itemForm
		m.dispatch(state.UpdateRoutineItem{ID: m.editingID, Patch: state.RoutinePatch{
			Label:     state.Ptr(strings.TrimSpace(f.Label)),
			StartTime: state.Ptr(strings.TrimSpace(f.Start)),
			EndTime:   state.Ptr(strings.TrimSpace(f.End)),
		}}, "Updated: "+f.Label)

	case formAddOffTime:
		f := m.offTimeForm
		o := models.NewOffTime(f.Kind, m.today())
		if label := strings.TrimSpace(f.Label); label != "" {
			o.Label = label
		}
		switch f.Kind {
		case models.OffTimeSingle:
			o.StartDate = strings.TrimSpace(f.Start)
			o.EndDate = o.StartDate
		case models.OffTimeRange:
			o.StartDate = strings.TrimSpace(f.Start)
			o.EndDate = strings.TrimSpace(f.End)
		}
		m.dispatch(state.AddOffTime{OffTime: o}, "Added: "+o.Label)

	case formEditOffTime:
		f := m.offTimeForm
		var patch state.OffTimePatch
		if label := strings.TrimSpace(f.Label); label != "" {
			patch.Label = &label
		}
		if f.Kind != models.OffTimeWeekend {
			patch.StartDate = state.Ptr(strings.TrimSpace(f.Start))
		}
		if f.Kind == models.OffTimeRange {
			patch.EndDate = state.Ptr(strings.TrimSpace(f.End))
		}
		m.dispatch(state.UpdateOffTime{ID: m.editingID, Patch: patch}, "Updated off-time")
	}
	return nil
}

func (m *Model) ensurePlanner() bool {
	if m.planner != nil {
		return true
	}
	if m.plannerFn == nil {
		m.err = errNoPlanner
		return false
	}
	p, err := m.plannerFn()
	if err != nil {
		m.err = err
		return false
	}
	m.planner = p
	return true
}

// startBusy starts the spinner on the first in-flight call.
func (m *Model) startBusy() tea.Cmd {
	m.busy++
	if m.busy == 1 {
		return m.spinner.Tick
	}
	return nil
}

func (m *Model) startRoutine(description string) tea.Cmd {
	if !m.ensurePlanner() {
		return nil
	}
	m.routinePend = true
	p, ctx := m.planner, m.ctx
	return tea.Batch(m.startBusy(), func() tea.Msg {
		return routineDoneMsg{err: p.GenerateRoutine(ctx, description)}
	})
}

func (m *Model) startBreakdown(projectID string) tea.Cmd {
	if !m.ensurePlanner() {
		return nil
	}
	m.breakdownPend[projectID]++
	p, ctx := m.planner, m.ctx
	return tea.Batch(m.startBusy(), func() tea.Msg {
		n, err := p.BreakdownProject(ctx, projectID)
		return breakdownDoneMsg{projectID: projectID, added: n, err: err}
	})
}

func (m *Model) startBreakdownAll() tea.Cmd {
	if !m.ensurePlanner() {
		return nil
	}
	p, ctx := m.planner, m.ctx
	return tea.Batch(m.startBusy(), func() tea.Msg {
		// failed projects are logged and stay pending
		n, _ := p.BreakdownAll(ctx)
		return breakdownAllDoneMsg{added: n}
	})
}

func (m *Model) startChat(text string) tea.Cmd {
	if !m.ensurePlanner() {
		return nil
	}
	m.chatPend = true
	p, ctx := m.planner, m.ctx
	return tea.Batch(m.startBusy(), m.chat.SetTyping(true), func() tea.Msg {
		// a failure is logged and answered in the transcript
		_ = p.Chat(ctx, text)
		return chatDoneMsg{}
	})
}
