// Package tui is the interactive menu browser. Every change goes through
// app.App inside a tea.Cmd; the view is rebuilt from the cache and the
// suggestion selector when an operation finishes.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/menu/internal/app"
	"github.com/idilsaglam/menu/internal/model"
	"github.com/idilsaglam/menu/internal/remote"
	"github.com/idilsaglam/menu/internal/store"
	"github.com/idilsaglam/menu/internal/suggest"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

// opDoneMsg reports the end of one app operation.
type opDoneMsg struct {
	op  string
	err error
}

// listItem adapts a record to bubbles/list.Item
type listItem struct{ rec model.Record }

func (i listItem) Title() string       { return i.rec.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.rec.Name }

// single-line rows: "> Curry    ♥ 3"
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	likes := likeStyle.Render(fmt.Sprintf("%s %d", symLike, it.rec.Likes))
	name := it.rec.Name
	if max := m.Width() - ansi.StringWidth(likes) - 4; max > 0 {
		name = ansi.Truncate(name, max, "…")
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	fmt.Fprintln(w, prefix+name+"  "+likes)
}

var (
	addKey     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	likeKey    = key.NewBinding(key.WithKeys("l", "+"), key.WithHelp("l/+", "like"))
	deleteKey  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	rerollKey  = key.NewBinding(key.WithKeys("s", " ", "space"), key.WithHelp("s/space", "suggest again"))
	refreshKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	quitKey    = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the bubbletea model of the menu browser.
type Model struct {
	ctx  context.Context
	app  *app.App
	sel  *suggest.Selector
	list list.Model

	mode     mode
	ti       textinput.Model // shared by add and edit
	inputErr string
	pending  model.Record // record awaiting delete confirmation
	busy     int
	status   string // last operation error

	width, height int
}

// New builds the browser over a. sel should already observe a's cache.
func New(ctx context.Context, a *app.App, sel *suggest.Selector) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Menus"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("menu", "menus")
	// l and d are ours
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "pgdown", "f"), key.WithHelp("→/f", "next page"))
	extra := func() []key.Binding {
		return []key.Binding{addKey, editKey, likeKey, deleteKey, rerollKey, refreshKey, quitKey}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{ctx: ctx, app: a, sel: sel, list: l, ti: ti, busy: 1, width: 80, height: 24}
	m.resize()
	return m
}

// Init loads the list; New already counts this refresh as in flight.
func (m Model) Init() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg { return opDoneMsg{op: app.OpRefresh, err: a.Refresh(ctx)} }
}

// run executes fn off the event loop and reports back with opDoneMsg.
func (m *Model) run(op string, fn func(context.Context) error) tea.Cmd {
	m.busy++
	ctx := m.ctx
	return func() tea.Msg { return opDoneMsg{op: op, err: fn(ctx)} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case opDoneMsg:
		return m.finish(msg)
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		if m.list.FilterState() != list.Filtering {
			if mm, cmd, handled := m.updateBrowse(msg); handled {
				return mm, cmd
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	sel, hasSel := m.selected()
	switch {
	case key.Matches(msg, quitKey):
		return m, tea.Quit, true
	case key.Matches(msg, addKey):
		m.openInput(modeAdd, "", "New menu name...")
		return m, nil, true
	case key.Matches(msg, editKey):
		if hasSel {
			m.app.Edit().Begin(sel)
			m.openInput(modeEdit, sel.Name, "New name...")
		}
		return m, nil, true
	case key.Matches(msg, likeKey):
		if !hasSel {
			return m, nil, true
		}
		id := sel.ID
		cmd := m.run(app.OpLike, func(ctx context.Context) error { return m.app.Like(ctx, id) })
		return m, cmd, true
	case key.Matches(msg, deleteKey):
		if hasSel {
			m.pending = sel
			m.mode = modeConfirmDelete
		}
		return m, nil, true
	case key.Matches(msg, rerollKey):
		m.sel.Reroll()
		return m, nil, true
	case key.Matches(msg, refreshKey):
		cmd := m.run(app.OpRefresh, m.app.Refresh)
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.ti.Value()
		if _, err := app.ValidateName(name); err != nil {
			m.inputErr = "Name cannot be empty"
			return m, nil
		}
		if m.mode == modeAdd {
			m.closeInput()
			cmd := m.run(app.OpCreate, func(ctx context.Context) error { return m.app.Create(ctx, name) })
			return m, cmd
		}
		// edit stays open until the update lands
		m.inputErr = ""
		cmd := m.run(app.OpUpdate, func(ctx context.Context) error { return m.app.SubmitEdit(ctx, name) })
		return m, cmd
	case "esc":
		if m.mode == modeEdit {
			m.app.Edit().Cancel()
		}
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.pending
	m.pending = model.Record{}
	m.mode = modeBrowse
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	cmd := m.run(app.OpDelete, func(ctx context.Context) error { return m.app.Delete(ctx, target.ID) })
	return m, cmd
}

// finish applies a completed operation: the list is rebuilt from the cache
// whatever the outcome, since a failed refresh leaves the cache unchanged.
func (m Model) finish(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if m.busy > 0 {
		m.busy--
	}
	m.status = ""
	if msg.err != nil {
		m.status = describe(msg.err)
	}
	if m.mode == modeEdit && msg.op == app.OpUpdate {
		if m.app.Edit().Editing() {
			m.inputErr = m.status
		} else {
			m.closeInput()
		}
	}
	recs := m.app.Cache().Records()
	items := make([]list.Item, len(recs))
	for i, r := range recs {
		items[i] = listItem{r}
	}
	cmd := m.list.SetItems(items)
	return m, cmd
}

func (m *Model) openInput(md mode, value, placeholder string) {
	m.mode = md
	m.inputErr = ""
	m.ti.Placeholder = placeholder
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Focus()
	m.resize()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m Model) selected() (model.Record, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Record{}, false
	}
	return it.rec, true
}

// resize fits the list between the suggestion box and the footer.
func (m *Model) resize() {
	h := m.height - 9
	if m.mode == modeAdd || m.mode == modeEdit {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

// describe turns an operation error into one status line.
func describe(err error) string {
	var prefix string
	var op *app.OpError
	if errors.As(err, &op) {
		prefix = op.Op + ": "
		if op.Refresh {
			prefix = op.Op + " done, but refresh failed: "
		}
	}
	switch {
	case remote.IsStatus(err, http.StatusNotFound):
		return prefix + "that menu no longer exists"
	case errors.Is(err, store.ErrMalformed):
		return prefix + "the server sent an unreadable list"
	case errors.Is(err, store.ErrUnavailable):
		return prefix + "server unavailable"
	case errors.Is(err, app.ErrEmptyName):
		return "Name cannot be empty"
	}
	return err.Error()
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(boxStyle().Width(m.width - 4).Render(m.suggestionView()))
	b.WriteString("\n")
	b.WriteString(m.list.View())

	switch m.mode {
	case modeAdd, modeEdit:
		title := "Add menu"
		if m.mode == modeEdit {
			title = "Rename menu"
		}
		if m.inputErr != "" {
			title += "  " + errorStyle.Render(m.inputErr)
		}
		b.WriteString("\n" + boxStyle().Render(title+"\n"+m.ti.View()))
	case modeConfirmDelete:
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Delete %q? y/n", m.pending.Name)))
	}

	b.WriteString("\n")
	switch {
	case m.status != "":
		b.WriteString(errorStyle.Render(m.status))
	case m.busy > 0:
		b.WriteString(mutedStyle.Render("working…"))
	}
	return b.String()
}

func (m Model) suggestionView() string {
	head := accentStyle.Render(symPick + " Today's pick")
	r, ok := m.sel.Current()
	switch {
	case ok:
		return head + "  " + titleStyle.Render(r.Name) + "  " + likeStyle.Render(fmt.Sprintf("%s %d", symLike, r.Likes))
	case !m.app.Cache().Loaded():
		return head + "  " + mutedStyle.Render("loading…")
	}
	return head + "  " + mutedStyle.Render("nothing to suggest yet, press a to add a menu")
}
