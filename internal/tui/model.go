// Package tui hosts the Bubble Tea program for the interactive editor.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rcliao/curate/internal/api"
	"github.com/rcliao/curate/internal/editor"
	"github.com/rcliao/curate/internal/model"
)

const refreshInterval = 250 * time.Millisecond

var perPageOptions = []int{5, 10, 20, 50}

var roleCycle = map[model.Role]model.Role{
	model.RoleSystem:    model.RoleUser,
	model.RoleUser:      model.RoleAssistant,
	model.RoleAssistant: model.RoleSystem,
}

var instructionFields = []editor.Field{editor.FieldInstruction, editor.FieldInput, editor.FieldOutput}

type mode int

const (
	modeBrowse mode = iota
	modeEdit
)

// messages
type tickMsg time.Time
type doneMsg struct {
	kind editor.ActionKind
	err  error
}

// Model is the editor screen. It never holds editor state of its own beyond
// cursor positions; every change goes through the controller.
type Model struct {
	ctrl   *editor.Controller
	ctx    context.Context
	logger *zap.Logger

	keys     keyMap
	help     help.Model
	input    textarea.Model
	mode     mode
	target   editor.Action
	focus    int
	cursor   int
	inflight int
	status   string

	vm     editor.ViewModel
	width  int
	height int
}

// New builds the screen around ctrl.
func New(ctx context.Context, ctrl *editor.Controller, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ta := textarea.New()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Placeholder = "Type here"

	m := Model{
		ctrl:   ctrl,
		ctx:    ctx,
		logger: logger,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  ta,
	}
	m.refresh()
	return m
}

// Init loads the dataset and starts the refresh clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(editor.Reload()), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tick()

	case doneMsg:
		if m.inflight > 0 {
			m.inflight--
		}
		m.report(msg.kind, msg.err)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == modeEdit {
			return m.updateEdit(msg)
		}
		return m.updateKey(msg)
	}

	if m.mode == modeEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Commit) {
		m.commitEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	// modal layers, innermost first
	switch {
	case m.vm.Confirm != nil:
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m, m.run(editor.Confirm())
		case key.Matches(msg, m.keys.No):
			m.apply(editor.Decline())
		}
		return m, nil
	case m.vm.Alert != "":
		if key.Matches(msg, m.keys.Dismiss) {
			m.apply(editor.DismissAlert())
		}
		return m, nil
	case m.vm.Detail != nil:
		if key.Matches(msg, m.keys.Dismiss) {
			m.apply(editor.CloseDetail())
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEdit()
	case key.Matches(msg, m.keys.Commit):
		if m.vm.Banner != "" {
			m.apply(editor.DismissBanner())
		}
		return m, nil
	}

	a, ok := m.actionFor(msg)
	if !ok {
		return m, nil
	}
	if remote(a.Kind) {
		return m, m.run(a)
	}
	m.apply(a)
	switch a.Kind {
	case editor.ActAddMessage:
		m.focus = len(m.vm.Form.Messages) - 1
		return m, m.startEdit()
	case editor.ActSwitchFormat:
		m.focus = 0
	case editor.ActSetPage, editor.ActNextPage, editor.ActPrevPage, editor.ActSetPerPage:
		m.cursor = 0
	}
	return m, nil
}

// actionFor maps a browse-mode key to the editor action it triggers.
func (m Model) actionFor(msg tea.KeyMsg) (editor.Action, bool) {
	vm := m.vm
	chat := vm.Format == model.FormatChat

	switch {
	case key.Matches(msg, m.keys.Format):
		if chat {
			return editor.SwitchFormat(model.FormatInstruction), true
		}
		return editor.SwitchFormat(model.FormatChat), true
	case key.Matches(msg, m.keys.AddUser) && chat:
		return editor.AddMessage(model.RoleUser), true
	case key.Matches(msg, m.keys.AddAssistant) && chat:
		return editor.AddMessage(model.RoleAssistant), true
	case key.Matches(msg, m.keys.AddSystem) && chat:
		return editor.AddMessage(model.RoleSystem), true
	case key.Matches(msg, m.keys.CycleRole) && chat:
		if m.focus >= len(vm.Form.Messages) {
			return editor.Action{}, false
		}
		return editor.SetRole(m.focus, roleCycle[vm.Form.Messages[m.focus].Role]), true
	case key.Matches(msg, m.keys.RemoveRow) && chat:
		if m.focus >= len(vm.Form.Messages) {
			return editor.Action{}, false
		}
		return editor.RemoveMessage(m.focus), true
	case key.Matches(msg, m.keys.ClearForm):
		return editor.ClearForm(), true
	case key.Matches(msg, m.keys.Validate):
		return editor.Validate(), true
	case key.Matches(msg, m.keys.Submit):
		return editor.Submit(), true
	case key.Matches(msg, m.keys.Reload):
		return editor.Reload(), true
	case key.Matches(msg, m.keys.NextPage):
		return editor.NextPage(), true
	case key.Matches(msg, m.keys.PrevPage):
		return editor.PrevPage(), true
	case key.Matches(msg, m.keys.MorePerPage):
		return editor.SetPerPage(stepPerPage(vm.Pagination.PerPage, 1)), true
	case key.Matches(msg, m.keys.LessPerPage):
		return editor.SetPerPage(stepPerPage(vm.Pagination.PerPage, -1)), true
	case key.Matches(msg, m.keys.Inspect):
		if id, ok := m.selectedID(); ok {
			return editor.Inspect(id), true
		}
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			return editor.Delete(id), true
		}
	case key.Matches(msg, m.keys.ClearAll):
		return editor.ClearAll(), true
	case key.Matches(msg, m.keys.Template):
		i := int(msg.Runes[0] - '1')
		if i >= 0 && i < len(editor.Templates) {
			return editor.LoadTemplate(editor.Templates[i].ID), true
		}
	case key.Matches(msg, m.keys.DownloadJSON):
		return editor.Download(api.ExportJSON), true
	case key.Matches(msg, m.keys.DownloadL):
		return editor.Download(api.ExportJSONL), true
	}
	return editor.Action{}, false
}

// remote reports whether kind may block on the backend and so must run off
// the UI goroutine.
func remote(kind editor.ActionKind) bool {
	switch kind {
	case editor.ActValidate, editor.ActSubmit, editor.ActConfirm, editor.ActReload,
		editor.ActLoadTemplate, editor.ActDownload:
		return true
	}
	return false
}

func (m *Model) run(a editor.Action) tea.Cmd {
	m.inflight++
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return doneMsg{kind: a.Kind, err: ctrl.Dispatch(ctx, a)}
	}
}

func (m *Model) apply(a editor.Action) {
	m.report(a.Kind, m.ctrl.Dispatch(m.ctx, a))
	m.refresh()
}

// report surfaces errors the controller does not already show on screen.
func (m *Model) report(kind editor.ActionKind, err error) {
	if err == nil {
		return
	}
	var apiErr *api.Error
	switch {
	case errors.Is(err, editor.ErrIncomplete), errors.As(err, &apiErr):
		// already visible as an alert, banner or validation panel
	default:
		m.status = err.Error()
	}
	m.logger.Debug("action failed", zap.Stringer("action", kind), zap.Error(err))
}

func (m *Model) refresh() {
	m.vm = m.ctrl.View()
	if n := m.slots(); m.focus >= n {
		m.focus = max(n-1, 0)
	}
	if m.cursor >= len(m.vm.Cards) {
		m.cursor = max(len(m.vm.Cards)-1, 0)
	}
}

// slots is the number of editable inputs in the active form.
func (m *Model) slots() int {
	if m.vm.Format == model.FormatChat {
		return len(m.vm.Form.Messages)
	}
	return len(instructionFields)
}

func (m *Model) moveFocus(delta int) {
	n := m.slots()
	if n == 0 {
		return
	}
	m.focus = (m.focus + delta + n) % n
}

func (m *Model) moveCursor(delta int) {
	if len(m.vm.Cards) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.vm.Cards)-1)
}

func (m *Model) selectedID() (string, bool) {
	if m.cursor >= len(m.vm.Cards) {
		return "", false
	}
	return m.vm.Cards[m.cursor].ID, true
}

func (m *Model) focusedText() (string, bool) {
	f := m.vm.Form
	if m.vm.Format == model.FormatChat {
		if m.focus >= len(f.Messages) {
			return "", false
		}
		return f.Messages[m.focus].Content, true
	}
	switch instructionFields[m.focus] {
	case editor.FieldInstruction:
		return f.Instruction, true
	case editor.FieldInput:
		return f.Input, true
	default:
		return f.Output, true
	}
}

func (m *Model) startEdit() tea.Cmd {
	text, ok := m.focusedText()
	if !ok {
		return nil
	}
	if m.vm.Format == model.FormatChat {
		m.target = editor.SetMessage(m.focus, "")
	} else {
		m.target = editor.SetField(instructionFields[m.focus], "")
	}
	m.mode = modeEdit
	m.input.SetValue(text)
	return m.input.Focus()
}

// commitEdit writes the textarea back to the row or field the edit started
// on, even if the form changed underneath it meanwhile.
func (m *Model) commitEdit() {
	a := m.target
	a.Text = m.input.Value()
	m.input.Blur()
	m.mode = modeBrowse
	m.apply(a)
}

func stepPerPage(current, dir int) int {
	for i, n := range perPageOptions {
		if n == current {
			j := min(max(i+dir, 0), len(perPageOptions)-1)
			return perPageOptions[j]
		}
	}
	if dir > 0 {
		for _, n := range perPageOptions {
			if n > current {
				return n
			}
		}
		return perPageOptions[len(perPageOptions)-1]
	}
	for i := len(perPageOptions) - 1; i >= 0; i-- {
		if perPageOptions[i] < current {
			return perPageOptions[i]
		}
	}
	return perPageOptions[0]
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, ctrl *editor.Controller, logger *zap.Logger) error {
	p := tea.NewProgram(New(ctx, ctrl, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
