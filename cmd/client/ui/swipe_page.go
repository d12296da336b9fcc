package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpmisha/TindeResturant/internal/catalog"
	"github.com/mpmisha/TindeResturant/internal/client/session"
	"github.com/mpmisha/TindeResturant/internal/menu"
)

// Terminal cells are much coarser than the pointer units the swipe
// threshold is defined in, so drags are scaled up before resolution. A
// cell is roughly twice as tall as wide, hence the vertical factor.
const (
	cellUnitsX = 24
	cellUnitsY = 48
)

// swipePageModel tracks an in-flight mouse drag over the card deck.
type swipePageModel struct {
	styles   Styles
	dragging bool
	startX   int
	startY   int
	showFull bool
}

func newSwipePageModel(styles Styles) swipePageModel {
	return swipePageModel{styles: styles}
}

func (a *App) updateSwipePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	m := &a.swipe

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "right", "y":
			a.state.Accept()
			m.showFull = false
			return a, a.afterSwipe()
		case "left", "n":
			a.state.Reject()
			m.showFull = false
			return a, a.afterSwipe()
		case " ", "d":
			m.showFull = !m.showFull
		case "s":
			a.summary.reset(a.currentSummary())
			a.state.SetShowSummary(true)
			a.page = pageSummary
		case "l":
			if a.sess.Connected() {
				a.sess.Clear()
			}
		}

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.dragging = true
				m.startX, m.startY = msg.X, msg.Y
			}
		case tea.MouseActionRelease:
			if !m.dragging {
				break
			}
			m.dragging = false
			dx := float64((msg.X - m.startX) * cellUnitsX)
			dy := float64((msg.Y - m.startY) * cellUnitsY)
			switch menu.ResolveSwipe(dx, dy) {
			case menu.Accepted:
				a.state.Accept()
				m.showFull = false
				return a, a.afterSwipe()
			case menu.Rejected:
				a.state.Reject()
				m.showFull = false
				return a, a.afterSwipe()
			case menu.Inconclusive:
				// Snap back: nothing moves.
			}
		}
	}

	return a, nil
}

func (a *App) viewSwipePage() string {
	d := a.state.Current()
	if d == nil {
		return a.viewCompletePage()
	}

	var b strings.Builder
	r := a.state.Restaurant()

	b.WriteString(a.styles.Title.Render(r.Name))
	if scope := a.state.Scope(); scope.Active() {
		b.WriteString("  " + a.styles.Category.Render("editing: "+string(scope.Category)))
	}
	b.WriteString("\n")
	b.WriteString(a.tableLine())
	b.WriteString("\n")

	desc := d.ShortDescription
	if a.swipe.showFull {
		desc = d.FullDescription
	}
	card := strings.Join([]string{
		a.styles.Category.Render(string(d.Category)),
		a.styles.CardName.Render(d.Name),
		"",
		desc,
		"",
		a.styles.CardPrice.Render(catalog.FormatPrice(d.Price)),
		a.styles.Help.Render(catalog.ImageURL(d.Image, r.ID)),
	}, "\n")
	b.WriteString(a.styles.Card.Render(card))
	b.WriteString("\n\n")

	total := len(a.state.Ordered())
	b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("%d of %d · %d remaining · %d selected",
		a.state.Cursor()+1, total, a.state.Remaining(), len(a.state.Selection()))))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Reject.Render("← skip") + "   " + a.styles.Accept.Render("want →"))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("drag the card, or ←/→ · space details · s summary · q quit"))

	if a.errText != "" {
		b.WriteString("\n" + a.styles.Error.Render(a.errText))
	}
	return b.String()
}

// tableLine shows the shared-order status under the header.
func (a *App) tableLine() string {
	if !a.sess.Connected() {
		return a.styles.Help.Render("browsing solo")
	}

	snap := a.sess.Snapshot()
	var members []string
	if snap != nil {
		for _, u := range snap.Users {
			members = append(members, UserDot(u.Color))
		}
	}
	label := "Joined Order"
	if a.sess.Mode() == session.ModeNew {
		label = "Your Order"
	}
	return a.styles.Subtitle.Render(fmt.Sprintf("%s · ID %s · %d at the table ", label, a.sess.Code(), snap.MemberCount())) + strings.Join(members, " ")
}
