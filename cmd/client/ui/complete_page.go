package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) updateCompletePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch keyMsg.String() {
	case "v", "enter":
		a.summary.reset(a.currentSummary())
		a.state.SetShowSummary(true)
		a.page = pageSummary
	case "l":
		if a.sess.Connected() {
			a.sess.Clear()
		}
	}
	return a, nil
}

func (a *App) viewCompletePage() string {
	var b strings.Builder
	r := a.state.Restaurant()
	n := len(a.state.Selection())

	b.WriteString(a.styles.Title.Render("Menu Complete!"))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render("You've gone through all the dishes at " + r.Name))
	b.WriteString("\n")
	b.WriteString(a.tableLine())
	b.WriteString("\n\n")

	if n > 0 {
		b.WriteString(fmt.Sprintf("You selected %d dish(es).\n\n", n))
		b.WriteString(a.styles.Help.Render("v view selections · q quit"))
	} else {
		b.WriteString("You didn't select any dishes this time. That's perfectly fine!\n\n")
		b.WriteString(a.styles.Help.Render("q quit"))
	}

	if a.errText != "" {
		b.WriteString("\n" + a.styles.Error.Render(a.errText))
	}
	return b.String()
}
