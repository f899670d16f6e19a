package input

import (
	"combogrip/internal/ui/input/modes"
	"combogrip/internal/ui/input/types"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler is the keyboard router in front of the text input. Keys a mode
// does not consume fall through to the text input; the caller forwards
// unconsumed keys to the host as well.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        modes.KeyMap
	textInput   *textinput.Model
}

func New(placeholder string) *Handler {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "" // rendered by the view

	h := &Handler{
		currentMode: types.ModeClosed,
		keys:        modes.DefaultKeyMap(),
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeClosed] = modes.NewClosedMode(&h.keys)
	h.modes[types.ModeOpen] = modes.NewOpenMode(&h.keys)
	return h
}

// HandleKey routes a key and reports whether its default handling was
// prevented. Text edits show up as an UpdateTextAction.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool, tea.Cmd) {
	h.currentMode = types.ModeClosed
	if ctx.Opened() {
		h.currentMode = types.ModeOpen
	}

	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, false, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if consumed {
		return actions, true, nil
	}

	before := h.textInput.Value()
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	if text := h.textInput.Value(); text != before {
		actions = append(actions, types.UpdateTextAction{Text: text})
	}
	for i, action := range actions {
		if _, ok := action.(types.SubmitAction); ok {
			actions[i] = types.SubmitAction{Text: h.textInput.Value()}
		}
	}
	return actions, false, cmd
}

// Update handles non-keyboard messages for the text input (cursor blink)
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// SetText replaces the displayed text without emitting an update
func (h *Handler) SetText(text string) {
	if h.textInput.Value() == text {
		return
	}
	h.textInput.SetValue(text)
	h.textInput.CursorEnd()
}

func (h *Handler) Text() string {
	return h.textInput.Value()
}

func (h *Handler) Focus() tea.Cmd {
	return h.textInput.Focus()
}

func (h *Handler) Blur() {
	h.textInput.Blur()
}

func (h *Handler) Focused() bool {
	return h.textInput.Focused()
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// KeyMap returns the bindings, for help rendering
func (h *Handler) KeyMap() modes.KeyMap {
	return h.keys
}

// View renders the text input
func (h *Handler) View() string {
	return h.textInput.View()
}

// SetWidth limits the text input width
func (h *Handler) SetWidth(width int) {
	h.textInput.Width = width
}
