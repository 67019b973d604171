// Package studio implements the terminal content manager for the site.
// It edits the project and post collections held in a kvstore database
// and is meant to be run next to the published site's own database.
package studio

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"atelier/internal/kvstore"
)

type mode int

const (
	modeList mode = iota
	modeEdit
	modePreview
	modeConfirm
)

type section int

const (
	sectionProjects section = iota
	sectionPosts
)

func (s section) title() string {
	if s == sectionProjects {
		return "Projects"
	}
	return "Posts"
}

func (s section) singular() string {
	if s == sectionProjects {
		return "project"
	}
	return "post"
}

// Editor field indexes. The link input only applies to projects.
const (
	inputTitle = iota
	inputSummary
	inputLink
	inputCount
)

// focusBody marks the textarea in the focus cycle.
const focusBody = -1

// Model is the top-level bubbletea model for the studio.
type Model struct {
	store  *kvstore.Store
	cfg    Config
	styles Styles

	mode    mode
	section section

	list   list.Model
	inputs []textinput.Model
	body   textarea.Model
	focus  int
	editID string

	viewport viewport.Model
	renderer *glamour.TermRenderer

	items         []kvstore.Item
	pendingDelete string

	status    string
	statusErr bool

	width  int
	height int
	ready  bool
}

// New builds the studio model against an open store. The persisted
// theme decides the initial color scheme.
func New(store *kvstore.Store, cfg Config) (Model, error) {
	themeName, err := store.Theme()
	if err != nil {
		return Model{}, err
	}
	styles := NewStyles(ThemeByName(themeName))

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)

	inputs := make([]textinput.Model, inputCount)

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Width = 60
	inputs[inputTitle] = title

	summary := textinput.New()
	summary.Placeholder = "One line shown in lists"
	summary.CharLimit = 200
	summary.Width = 60
	inputs[inputSummary] = summary

	link := textinput.New()
	link.Placeholder = "https://"
	link.CharLimit = 300
	link.Width = 60
	inputs[inputLink] = link

	body := textarea.New()
	body.Placeholder = "Write markdown here."
	body.CharLimit = 0
	body.SetWidth(78)
	body.SetHeight(12)

	m := Model{
		store:    store,
		cfg:      cfg,
		styles:   styles,
		list:     l,
		inputs:   inputs,
		body:     body,
		viewport: viewport.New(0, 0),
		renderer: newRenderer(styles.Theme, cfg.WordWrap),
	}
	if err := m.loadSection(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func newRenderer(theme Theme, wrap int) *glamour.TermRenderer {
	if theme.IsDark {
		r, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		return r
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("light"),
		glamour.WithWordWrap(wrap),
	)
	return r
}

func (m Model) wrapWidth() int {
	if m.width > 8 && m.width-8 < m.cfg.WordWrap {
		return m.width - 8
	}
	return m.cfg.WordWrap
}

func (m *Model) loadSection() error {
	var (
		items []kvstore.Item
		err   error
	)
	if m.section == sectionProjects {
		items, err = m.store.Projects()
	} else {
		items, err = m.store.Posts()
	}
	if err != nil {
		return err
	}

	m.items = items
	m.list.Title = m.section.title()
	m.list.SetItems(listItems(items))
	return nil
}

func (m *Model) switchSection() {
	if m.section == sectionProjects {
		m.section = sectionPosts
	} else {
		m.section = sectionProjects
	}
	if err := m.loadSection(); err != nil {
		m.setError("Could not load " + strings.ToLower(m.section.title()))
		return
	}
	m.clearStatus()
}

func (m *Model) persist() error {
	if m.section == sectionProjects {
		return m.store.SaveProjects(m.items)
	}
	return m.store.SavePosts(m.items)
}

func (m Model) selected() (kvstore.Item, bool) {
	it, ok := m.list.SelectedItem().(collectionItem)
	if !ok {
		return kvstore.Item{}, false
	}
	return it.item, true
}

func (m Model) itemByID(id string) (kvstore.Item, bool) {
	for _, it := range m.items {
		if it.ID == id {
			return it, true
		}
	}
	return kvstore.Item{}, false
}

// focusTargets returns the editor focus cycle for the active section.
func (m Model) focusTargets() []int {
	if m.section == sectionProjects {
		return []int{inputTitle, inputSummary, inputLink, focusBody}
	}
	return []int{inputTitle, inputSummary, focusBody}
}

func (m *Model) applyFocus() tea.Cmd {
	targets := m.focusTargets()
	if m.focus < 0 || m.focus >= len(targets) {
		m.focus = 0
	}
	current := targets[m.focus]

	var cmd tea.Cmd
	for i := range m.inputs {
		if i == current {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	if current == focusBody {
		cmd = m.body.Focus()
	} else {
		m.body.Blur()
	}
	return cmd
}

// openEditor switches to the edit screen, prefilled from item when
// editing and blank when item is nil.
func (m *Model) openEditor(item *kvstore.Item) tea.Cmd {
	if item != nil {
		m.editID = item.ID
		m.inputs[inputTitle].SetValue(item.Title)
		m.inputs[inputSummary].SetValue(item.Summary)
		m.inputs[inputLink].SetValue(item.Link)
		m.body.SetValue(item.Body)
	} else {
		m.editID = ""
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.body.SetValue("")
	}

	m.mode = modeEdit
	m.focus = 0
	m.clearStatus()
	return m.applyFocus()
}

func (m *Model) saveItem() {
	title := strings.TrimSpace(m.inputs[inputTitle].Value())
	if title == "" {
		m.setError("Title is required")
		return
	}

	now := time.Now()
	item := kvstore.Item{
		ID:        m.editID,
		Title:     title,
		Summary:   strings.TrimSpace(m.inputs[inputSummary].Value()),
		Body:      m.body.Value(),
		UpdatedAt: now,
	}
	if m.section == sectionProjects {
		item.Link = strings.TrimSpace(m.inputs[inputLink].Value())
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
		item.CreatedAt = now
		m.items = append(m.items, item)
	} else {
		found := false
		for i := range m.items {
			if m.items[i].ID == item.ID {
				item.CreatedAt = m.items[i].CreatedAt
				m.items[i] = item
				found = true
				break
			}
		}
		if !found {
			item.CreatedAt = now
			m.items = append(m.items, item)
		}
	}

	if err := m.persist(); err != nil {
		m.setError("Could not save " + strings.ToLower(m.section.singular()))
		return
	}

	m.list.SetItems(listItems(m.items))
	m.mode = modeList
	m.setStatus(fmt.Sprintf("Saved %q", title))
}

func (m *Model) deleteConfirmed() {
	id := m.pendingDelete
	m.pendingDelete = ""
	m.mode = modeList

	idx := -1
	for i := range m.items {
		if m.items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	title := m.items[idx].Title
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	if err := m.persist(); err != nil {
		m.setError("Could not delete " + strings.ToLower(m.section.singular()))
		return
	}

	m.list.SetItems(listItems(m.items))
	m.setStatus(fmt.Sprintf("Deleted %q", title))
}

func (m *Model) openPreview(item kvstore.Item) {
	source := "# " + item.Title + "\n\n" + item.Body
	content := source
	if m.renderer != nil {
		if out, err := m.renderer.Render(source); err == nil {
			content = out
		}
	}

	m.viewport.SetContent(content)
	m.viewport.GotoTop()
	m.mode = modePreview
}

func (m *Model) toggleTheme() {
	name := "dark"
	if m.styles.Theme.IsDark {
		name = "light"
	}
	if err := m.store.SaveTheme(name); err != nil {
		m.setError("Could not save theme")
		return
	}

	m.styles = NewStyles(ThemeByName(name))
	m.renderer = newRenderer(m.styles.Theme, m.wrapWidth())
	m.setStatus("Theme: " + name)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
