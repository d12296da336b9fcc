// Package ui implements the terminal pages of the menu selector: mode
// selection, the swipe deck, the completion screen, and the shared
// summary.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpmisha/TindeResturant/internal/client/session"
	tableclient "github.com/mpmisha/TindeResturant/internal/client/table"
	"github.com/mpmisha/TindeResturant/internal/menu"
	"github.com/mpmisha/TindeResturant/internal/models"
)

type page int

const (
	pageMode page = iota
	pageSwipe
	pageComplete
	pageSummary
)

const requestTimeout = 10 * time.Second

// snapshotMsg carries a pushed table snapshot, tagged with the table code
// it belongs to so stale deliveries can be dropped.
type snapshotMsg struct {
	code  string
	table *models.TableData
}

// sessionStartedMsg reports a successful create or join.
type sessionStartedMsg struct {
	mode   session.Mode
	code   string
	userID string
	name   string
	table  *models.TableData
}

// sessionErrMsg reports a failed remote operation; the user may retry.
type sessionErrMsg struct{ err error }

// pushDoneMsg reports a completed selections push.
type pushDoneMsg struct {
	table *models.TableData
	err   error
}

// App is the root bubbletea model.
type App struct {
	styles Styles
	state  *menu.State
	sess   *session.Session
	client *tableclient.Client

	page    page
	mode    modePageModel
	swipe   swipePageModel
	summary summaryPageModel

	updates chan snapshotMsg
	errText string
	width   int
	height  int
}

// NewApp builds the root model for one restaurant.
func NewApp(r *models.Restaurant, client *tableclient.Client) *App {
	styles := DefaultStyles()
	state := menu.NewState()
	state.SetRestaurant(r)

	return &App{
		styles:  styles,
		state:   state,
		sess:    session.New(),
		client:  client,
		page:    pageMode,
		mode:    newModePageModel(styles),
		swipe:   newSwipePageModel(styles),
		summary: newSummaryPageModel(styles),
		updates: make(chan snapshotMsg, 8),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.mode.Init()
}

func (a *App) listenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-a.updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (a *App) createSessionCmd(name string) tea.Cmd {
	restaurantID := a.state.Restaurant().ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		code, userID, snap, err := a.client.CreateSession(ctx, restaurantID, name)
		if err != nil {
			return sessionErrMsg{err}
		}
		return sessionStartedMsg{mode: session.ModeNew, code: code, userID: userID, name: name, table: snap}
	}
}

func (a *App) joinSessionCmd(code, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		userID, snap, err := a.client.JoinSession(ctx, code, name)
		if err != nil {
			return sessionErrMsg{err}
		}
		return sessionStartedMsg{mode: session.ModeJoin, code: code, userID: userID, name: name, table: snap}
	}
}

func (a *App) subscribeCmd(code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sub, err := a.client.Subscribe(ctx, code, func(code string, snap *models.TableData) {
			select {
			case a.updates <- snapshotMsg{code: code, table: snap}:
			default:
				// Drop when the UI lags; the next push resyncs.
			}
		})
		if err != nil {
			return sessionErrMsg{err}
		}
		a.sess.Attach(sub)
		return nil
	}
}

func (a *App) pushSelectionsCmd() tea.Cmd {
	if !a.sess.Connected() {
		return nil
	}
	code, userID := a.sess.Code(), a.sess.UserID()
	ids := a.state.SelectedIDs()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		snap, err := a.client.PushSelections(ctx, code, userID, ids)
		return pushDoneMsg{table: snap, err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if a.page != pageMode || !a.mode.editing() {
				a.sess.Clear()
				return a, tea.Quit
			}
		}

	case snapshotMsg:
		// The session container drops deliveries for cleared sessions.
		a.sess.Apply(msg.code, msg.table)
		return a, a.listenCmd()

	case sessionStartedMsg:
		a.errText = ""
		a.sess.Set(msg.mode, msg.code, msg.userID, msg.name, msg.table)
		a.page = pageSwipe
		return a, tea.Batch(a.subscribeCmd(msg.code), a.listenCmd())

	case sessionErrMsg:
		a.errText = friendlyError(msg.err)
		a.mode.busy = false
		return a, nil

	case pushDoneMsg:
		if msg.err != nil {
			a.errText = friendlyError(msg.err)
		} else if msg.table != nil {
			a.sess.Apply(a.sess.Code(), msg.table)
		}
		return a, nil
	}

	switch a.page {
	case pageMode:
		return a.updateModePage(msg)
	case pageSwipe:
		return a.updateSwipePage(msg)
	case pageComplete:
		return a.updateCompletePage(msg)
	case pageSummary:
		return a.updateSummaryPage(msg)
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.page {
	case pageMode:
		return a.viewModePage()
	case pageSwipe:
		return a.viewSwipePage()
	case pageComplete:
		return a.viewCompletePage()
	case pageSummary:
		return a.viewSummaryPage()
	}
	return ""
}

// afterSwipe routes to the completion page when the deck is exhausted and
// re-syncs selections to the table.
func (a *App) afterSwipe() tea.Cmd {
	if !a.state.Complete() {
		return nil
	}
	if a.state.ShowSummary() {
		// A scoped re-edit pass dropped us straight back to the summary.
		a.summary.reset(a.currentSummary())
		a.page = pageSummary
	} else {
		a.page = pageComplete
	}
	return a.pushSelectionsCmd()
}

func (a *App) currentSummary() menu.Summary {
	return menu.Summarize(a.state.Selection(), a.state.Restaurant(), a.sess.Snapshot(), a.sess.UserID())
}

func friendlyError(err error) string {
	if err == models.ErrSessionNotFound {
		return "Order ID not found. Please check and try again."
	}
	return "Something went wrong. Please try again."
}
