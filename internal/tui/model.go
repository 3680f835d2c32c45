// Package tui is the interactive dashboard: four tabs following the state's
// view, huh forms for editing and a chat panel for the assistant.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/harmony/internal/constants"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/planner"
	"github.com/julianstephens/harmony/internal/state"
	"github.com/julianstephens/harmony/internal/tui/components/chat"
	"github.com/julianstephens/harmony/internal/tui/components/tasklist"
	"github.com/julianstephens/harmony/internal/views"
)

type SessionState int

const (
	StateBrowse SessionState = iota
	StateForm
	StateChat
	StateConfirmDelete
)

type formKind int

const (
	formAddTask formKind = iota
	formEditTask
	formAddProject
	formGenerateRoutine
	formAddRoutineItem
	formEditRoutineItem
	formAddOffTime
	formEditOffTime
)

// Options wires the model to the application. Planner is called on the
// first model-backed action so the dashboard opens without an API key.
type Options struct {
	Ctx     context.Context
	Store   *state.Store
	Planner func() (*planner.Planner, error)
	Now     func() time.Time
}

type Model struct {
	ctx       context.Context
	store     *state.Store
	plannerFn func() (*planner.Planner, error)
	planner   *planner.Planner
	now       func() time.Time

	state     SessionState
	keys      KeyMap
	help      help.Model
	spinner   spinner.Model
	taskList  tasklist.Model
	focusList tasklist.Model
	chat      chat.Model

	form        *huh.Form
	formKind    formKind
	taskForm    *taskForm
	projectForm *projectForm
	routineForm *routineForm
	itemForm    *routineItemForm
	offTimeForm *offTimeForm
	editingID   string

	focusDay      int
	cursor        int
	deleteTarget  row
	routinePend   bool
	chatPend      bool
	breakdownPend map[string]int
	busy          int

	status   string
	err      error
	width    int
	height   int
	quitting bool
}

func NewModel(opts Options) Model {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	focus := tasklist.New(nil, 0, 0)
	focus.SetEmptyText("Nothing planned for this day.\n  Press 'a' to add a task.")

	m := Model{
		ctx:           opts.Ctx,
		store:         opts.Store,
		plannerFn:     opts.Planner,
		now:           opts.Now,
		state:         StateBrowse,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		taskList:      tasklist.New(nil, 0, 0),
		focusList:     focus,
		chat:          chat.New(0, 0),
		focusDay:      1, // the strip starts yesterday
		breakdownPend: make(map[string]int),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Chat, m.keys.Quit, m.keys.Help}
	switch m.view() {
	case models.ViewDashboard:
		keys = append(keys, m.keys.Add, m.keys.Toggle)
	case models.ViewFocus:
		keys = append(keys, m.keys.Left, m.keys.Right, m.keys.Add)
	case models.ViewProjects:
		keys = append(keys, m.keys.Add, m.keys.Breakdown, m.keys.BreakdownAll)
	case models.ViewRoutine:
		keys = append(keys, m.keys.Generate, m.keys.Add, m.keys.AddOffTime)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Chat, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Escape}

	var actions []key.Binding
	switch m.view() {
	case models.ViewDashboard, models.ViewFocus:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Toggle}
	case models.ViewProjects:
		actions = []key.Binding{m.keys.Add, m.keys.Breakdown, m.keys.BreakdownAll, m.keys.Delete}
	case models.ViewRoutine:
		actions = []key.Binding{m.keys.Generate, m.keys.Add, m.keys.AddOffTime, m.keys.Edit, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

type clockMsg time.Time

func clockTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return clockTick()
}

func (m Model) view() models.View {
	return m.store.Snapshot().View
}

func (m Model) today() string {
	return m.now().Format(constants.DateFormat)
}

func (m Model) strip() []string {
	return views.FocusStrip(m.now(), constants.FocusStripDays)
}

func (m Model) focusedDate() string {
	days := m.strip()
	return days[min(max(m.focusDay, 0), len(days)-1)]
}

// refresh copies the store into the components after every update.
func (m *Model) refresh() {
	st := m.store.Snapshot()
	m.taskList.SetTasks(views.DashboardTasks(st.Tasks, m.now()))

	plan := views.Workloads(st.Tasks, st.Projects, m.focusedDate())
	var focused []models.Task
	for _, w := range plan.Workloads {
		focused = append(focused, w.Tasks...)
	}
	m.focusList.SetTasks(focused)

	m.chat.SetHistory(st.Chat)
	if n := len(m.rows(st)); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) chatTyping() bool {
	return m.chatPend || (m.planner != nil && m.planner.ChatTyping())
}

func (m Model) routineLoading() bool {
	return m.routinePend || (m.planner != nil && m.planner.RoutineLoading())
}

func (m Model) breakingDown(projectID string) bool {
	return m.breakdownPend[projectID] > 0 || (m.planner != nil && m.planner.IsBreakingDown(projectID))
}
