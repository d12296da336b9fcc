package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpmisha/TindeResturant/internal/menu"
)

type modeChoice int

const (
	choiceSolo modeChoice = iota
	choiceNew
	choiceJoin
)

// modePageModel is the welcome page: swipe solo, start a new shared
// order, or join one with a code.
type modePageModel struct {
	styles    Styles
	choice    modeChoice
	form      bool
	nameInput textinput.Model
	codeInput textinput.Model
	focusCode bool
	busy      bool
}

func newModePageModel(styles Styles) modePageModel {
	name := textinput.New()
	name.Placeholder = "Your name (optional)"
	name.CharLimit = 24

	code := textinput.New()
	code.Placeholder = "Order ID, e.g. K3XQ9A"
	code.CharLimit = 6

	return modePageModel{styles: styles, nameInput: name, codeInput: code}
}

func (m modePageModel) Init() tea.Cmd { return nil }

// editing reports whether a text input is capturing keystrokes, so the
// root model knows not to treat "q" as quit.
func (m modePageModel) editing() bool {
	return m.form
}

func (a *App) updateModePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	m := &a.mode
	if m.busy {
		return a, nil
	}

	if !m.form {
		switch keyMsg.String() {
		case "up", "k":
			if m.choice > choiceSolo {
				m.choice--
			}
		case "down", "j":
			if m.choice < choiceJoin {
				m.choice++
			}
		case "enter":
			if m.choice == choiceSolo {
				a.page = pageSwipe
				return a, nil
			}
			m.form = true
			m.focusCode = false
			a.errText = ""
			return a, m.nameInput.Focus()
		}
		return a, nil
	}

	switch keyMsg.String() {
	case "esc":
		m.form = false
		m.nameInput.Blur()
		m.codeInput.Blur()
		m.nameInput.SetValue("")
		m.codeInput.SetValue("")
		a.errText = ""
		return a, nil
	case "tab", "shift+tab":
		if m.choice == choiceJoin {
			m.focusCode = !m.focusCode
			if m.focusCode {
				m.nameInput.Blur()
				return a, m.codeInput.Focus()
			}
			m.codeInput.Blur()
			return a, m.nameInput.Focus()
		}
		return a, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if m.choice == choiceNew {
			m.busy = true
			return a, a.createSessionCmd(name)
		}
		code := strings.ToUpper(strings.TrimSpace(m.codeInput.Value()))
		if len(code) != 6 {
			a.errText = "Please enter a valid 6-character Order ID."
			return a, nil
		}
		m.busy = true
		return a, a.joinSessionCmd(code, name)
	}

	var cmd tea.Cmd
	if m.focusCode {
		m.codeInput, cmd = m.codeInput.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return a, cmd
}

func (a *App) viewModePage() string {
	m := a.mode
	var b strings.Builder

	r := a.state.Restaurant()
	b.WriteString(a.styles.Title.Render("Welcome to TindeRestaurant!"))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render(r.Name + " · " + r.PhoneNumber))
	b.WriteString("\n\n")

	if !m.form {
		options := []struct {
			label string
			desc  string
		}{
			{"Browse Solo", "Swipe through the menu on your own"},
			{"New Order", "Start a new shared order for your table"},
			{"Join Existing Order", "Join an order using an Order ID"},
		}
		for i, opt := range options {
			line := "  " + opt.label
			if modeChoice(i) == m.choice {
				line = a.styles.Selected.Render("> " + opt.label)
			}
			b.WriteString(line + "\n")
			b.WriteString(a.styles.Help.Render("    "+opt.desc) + "\n")
		}
		b.WriteString("\n")
		b.WriteString(a.styles.Help.Render("↑/↓ choose · enter select · q quit"))
	} else {
		if m.choice == choiceNew {
			b.WriteString(a.styles.Title.Render("Start New Order") + "\n\n")
		} else {
			b.WriteString(a.styles.Title.Render("Join Existing Order") + "\n\n")
		}
		b.WriteString(m.nameInput.View() + "\n")
		if m.choice == choiceJoin {
			b.WriteString(m.codeInput.View() + "\n")
		}
		b.WriteString("\n")
		if m.busy {
			b.WriteString(a.styles.Subtitle.Render("Connecting...") + "\n")
		}
		b.WriteString(a.styles.Help.Render("enter confirm · tab switch field · esc back"))
	}

	if a.errText != "" {
		b.WriteString("\n\n" + a.styles.Error.Render(a.errText))
	}

	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render(countLine(len(menu.Ordered(r, menu.NoScope)))))
	return b.String()
}

func countLine(n int) string {
	if n == 1 {
		return "1 dish on the menu"
	}
	return strconv.Itoa(n) + " dishes on the menu"
}
