package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpmisha/TindeResturant/internal/catalog"
	"github.com/mpmisha/TindeResturant/internal/menu"
	"github.com/mpmisha/TindeResturant/internal/models"
)

// summaryRow is one navigable line of the summary: a local pick (removable,
// indexed within its category) or a dish only others at the table selected.
type summaryRow struct {
	dish         models.Dish
	contributors []models.User
	removable    bool
	// occurrence is the row's position among same-category local entries;
	// it is what Remove needs to drop exactly this row.
	occurrence int
}

type summaryPageModel struct {
	styles Styles
	cursor int
}

func newSummaryPageModel(styles Styles) summaryPageModel {
	return summaryPageModel{styles: styles}
}

func (m *summaryPageModel) reset(menu.Summary) {
	m.cursor = 0
}

// buildSummaryRows flattens the summary into per-category rows. Local
// picks keep their duplicates (a re-edited category can add a dish twice);
// table-only dishes trail their category without a remove affordance.
func (a *App) buildSummaryRows() ([]models.Category, map[models.Category][]summaryRow, menu.Summary) {
	sum := a.currentSummary()
	selection := a.state.Selection()

	contributors := map[int][]models.User{}
	remote := map[models.Category][]summaryRow{}
	for _, g := range sum.Groups {
		for _, entry := range g.Dishes {
			contributors[entry.Dish.ID] = entry.Contributors
			if !entry.Removable {
				remote[g.Category] = append(remote[g.Category], summaryRow{
					dish:         entry.Dish,
					contributors: entry.Contributors,
				})
			}
		}
	}

	local := map[models.Category][]summaryRow{}
	occ := map[models.Category]int{}
	for _, d := range selection {
		local[d.Category] = append(local[d.Category], summaryRow{
			dish:         d,
			contributors: contributors[d.ID],
			removable:    true,
			occurrence:   occ[d.Category],
		})
		occ[d.Category]++
	}

	rows := map[models.Category][]summaryRow{}
	var flat []models.Dish
	for c, rs := range local {
		rows[c] = append(rows[c], rs...)
		flat = append(flat, rs[0].dish)
	}
	for c, rs := range remote {
		rows[c] = append(rows[c], rs...)
		flat = append(flat, rs[0].dish)
	}
	return menu.Categories(flat), rows, sum
}

func flattenRows(order []models.Category, rows map[models.Category][]summaryRow) []summaryRow {
	var out []summaryRow
	for _, c := range order {
		out = append(out, rows[c]...)
	}
	return out
}

func (a *App) updateSummaryPage(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	m := &a.summary
	order, rows, _ := a.buildSummaryRows()
	flat := flattenRows(order, rows)
	if m.cursor >= len(flat) {
		m.cursor = len(flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(flat)-1 {
			m.cursor++
		}
	case "x", "backspace":
		if len(flat) == 0 {
			break
		}
		row := flat[m.cursor]
		if !row.removable {
			break
		}
		// Local removal only; the table record is corrected on the next
		// push, not here.
		a.state.Remove(row.dish.ID, row.dish.Category, row.occurrence)
	case "e":
		if len(flat) == 0 {
			break
		}
		a.state.EditCategory(flat[m.cursor].dish.Category)
		a.page = pageSwipe
		return a, nil
	case "b":
		a.state.SetShowSummary(false)
		if a.state.Complete() {
			a.page = pageComplete
		} else {
			a.page = pageSwipe
		}
	case "p":
		return a, a.pushSelectionsCmd()
	case "l":
		if a.sess.Connected() {
			a.sess.Clear()
		}
	}
	return a, nil
}

func (a *App) viewSummaryPage() string {
	order, rows, sum := a.buildSummaryRows()
	flat := flattenRows(order, rows)

	var b strings.Builder
	r := a.state.Restaurant()
	b.WriteString(a.styles.Title.Render("Your Selection"))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("%d dish(es) selected from %s", len(a.state.Selection()), r.Name)))
	b.WriteString("\n")
	b.WriteString(a.tableLine())
	b.WriteString("\n\n")

	if len(flat) == 0 {
		b.WriteString("No dishes selected\n")
		b.WriteString(a.styles.Help.Render("You didn't select any dishes from the menu. That's okay!"))
		b.WriteString("\n\n")
		b.WriteString(a.styles.Help.Render("b back · q quit"))
		return b.String()
	}

	i := 0
	for _, c := range order {
		b.WriteString(a.styles.Category.Render(string(c)))
		b.WriteString(a.styles.Help.Render(fmt.Sprintf("  %d item(s)", len(rows[c]))))
		b.WriteString("\n")
		for _, row := range rows[c] {
			var dots []string
			for _, u := range row.contributors {
				dots = append(dots, UserDot(u.Color))
			}
			marker := "  "
			if i == a.summary.cursor {
				marker = "> "
			}
			text := fmt.Sprintf("%s%-30s %8s  %s", marker, row.dish.Name, catalog.FormatPrice(row.dish.Price), strings.Join(dots, " "))
			if !row.removable {
				text += a.styles.Help.Render("  (table)")
			}
			if i == a.summary.cursor {
				text = a.styles.Selected.Render(text)
			}
			b.WriteString(text + "\n")
			i++
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.CardPrice.Render("Your total: " + catalog.FormatPrice(sum.PersonalTotal)))
	if sum.SessionMode {
		b.WriteString("   " + a.styles.GroupTotal.Render("Table total: "+catalog.FormatPrice(sum.GroupTotal)))
	}
	b.WriteString("\n\n")
	help := "↑/↓ move · x remove · e re-swipe category · b back"
	if a.sess.Connected() {
		help += " · p sync · l leave"
	}
	b.WriteString(a.styles.Help.Render(help + " · q quit"))

	if a.errText != "" {
		b.WriteString("\n" + a.styles.Error.Render(a.errText))
	}
	return b.String()
}
