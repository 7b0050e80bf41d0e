// Package tui renders an exercise screen in the terminal: the list, the
// add-exercise form and the detail overlay, driven by a screen.Screen.
package tui

import (
	"alcyxob/exercise-screen/internal/picker"
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"context"
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// exercisesChangedMsg tells the model the store grew. It carries nothing;
// View always reads the current list.
type exercisesChangedMsg struct{}

// ExercisesChanged is sent by the store subscription set up in main. Send it
// from its own goroutine: subscribers run while the screen is mid-submit.
func ExercisesChanged() tea.Msg { return exercisesChangedMsg{} }

type imagePickedMsg struct {
	ticketID string
	result   picker.Result
	err      error
}

// Model is the bubbletea model for one exercise screen.
type Model struct {
	screen *screen.Screen
	keys   KeyMap
	ctx    context.Context

	cursor int
	width  int
	height int

	name   textinput.Model
	desc   textarea.Model
	focus  screen.DraftField
	status string
}

// NewModel creates a Model over scr. ctx bounds image picks.
func NewModel(ctx context.Context, scr *screen.Screen) Model {
	name := textinput.New()
	name.Placeholder = "Exercise Name"
	name.Prompt = ""
	name.CharLimit = 120

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.ShowLineNumbers = false
	desc.SetHeight(4)

	return Model{
		screen: scr,
		keys:   DefaultKeyMap,
		ctx:    ctx,
		name:   name,
		desc:   desc,
		focus:  screen.FieldName,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.desc.SetWidth(formWidth(msg.Width))
		m.name.Width = formWidth(msg.Width)
		return m, nil

	case exercisesChangedMsg:
		m.clampCursor()
		return m, nil

	case imagePickedMsg:
		if ref, ok := m.screen.ResolveImageSelection(msg.ticketID, msg.result, msg.err); ok {
			m.status = "Image: " + ref.String()
		} else if msg.err != nil {
			m.status = "Could not pick an image."
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.screen.State().Overlay {
		case screen.OverlayAdd:
			return m.updateAdd(msg)
		case screen.OverlayDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Forward blink and other internal messages to the form inputs.
	if m.screen.State().Overlay == screen.OverlayAdd {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	exercises := m.screen.Exercises()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(exercises)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(exercises) {
			if err := m.screen.OpenDetail(exercises[m.cursor].ID); err != nil {
				m.status = err.Error()
			}
		}
	case key.Matches(msg, m.keys.Add):
		if err := m.screen.OpenAdd(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.name.Reset()
		m.desc.Reset()
		return m, m.focusField(screen.FieldName)
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Close, m.keys.Quit, m.keys.Open) {
		m.screen.CloseOverlay()
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.screen.Cancel()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		if m.focus == screen.FieldName {
			return m, m.focusField(screen.FieldDesc)
		}
		return m, m.focusField(screen.FieldName)

	case key.Matches(msg, m.keys.PickImage):
		ticket, err := m.screen.BeginImageSelection()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "Picking image..."
		return m, m.pickImage(ticket)

	case key.Matches(msg, m.keys.Submit),
		m.focus == screen.FieldName && key.Matches(msg, m.keys.Open):
		return m.submit()
	}
	return m.updateInputs(msg)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	ex, err := m.screen.Submit()
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		m.status = "Name is required."
		return m, nil
	case err != nil:
		m.status = "Could not add exercise."
		return m, nil
	}
	m.status = "Added " + ex.Name
	m.cursor = len(m.screen.Exercises()) - 1
	return m, nil
}

// updateInputs feeds msg to the focused input and copies its value into the draft.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var value string
	if m.focus == screen.FieldDesc {
		m.desc, cmd = m.desc.Update(msg)
		value = m.desc.Value()
	} else {
		m.name, cmd = m.name.Update(msg)
		value = m.name.Value()
	}
	if err := m.screen.UpdateDraftField(m.focus, value); err != nil {
		log.Printf("WARN: Draft update dropped: %v", err)
	}
	return m, cmd
}

func (m *Model) focusField(field screen.DraftField) tea.Cmd {
	m.focus = field
	if field == screen.FieldDesc {
		m.name.Blur()
		return m.desc.Focus()
	}
	m.desc.Blur()
	return m.name.Focus()
}

// pickImage runs the picker off the update loop; the form stays usable meanwhile.
func (m Model) pickImage(ticket screen.PickTicket) tea.Cmd {
	imagePicker := m.screen.Picker()
	ctx := m.ctx
	return func() tea.Msg {
		res, err := imagePicker.Pick(ctx, ticket.Options)
		return imagePickedMsg{ticketID: ticket.ID, result: res, err: err}
	}
}

func (m *Model) clampCursor() {
	n := len(m.screen.Exercises())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func formWidth(width int) int {
	w := width/2 - 6
	if w < 20 {
		return 20
	}
	return w
}
