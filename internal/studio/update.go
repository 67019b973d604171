package studio

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEdit(msg)
		case modePreview:
			return m.updatePreview(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Non-key messages (blinks, ticks) go to the active components.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.mode {
	case modeEdit:
		for i := range m.inputs {
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		m.body, cmd = m.body.Update(msg)
		cmds = append(cmds, cmd)
	case modePreview:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	default:
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	headerHeight := 2
	footerHeight := 2
	contentHeight := max(msg.Height-headerHeight-footerHeight, 0)
	contentWidth := max(msg.Width-2, 0)

	m.list.SetSize(contentWidth, contentHeight)

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight

	inputWidth := max(min(msg.Width-16, 72), 20)
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
	m.body.SetWidth(max(msg.Width-8, 20))
	m.body.SetHeight(max(contentHeight-12, 3))

	m.renderer = newRenderer(m.styles.Theme, m.wrapWidth())
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list is filtering, every key belongs to it.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.switchSection()
		return m, nil

	case "n":
		return m, m.openEditor(nil)

	case "enter":
		if item, ok := m.selected(); ok {
			return m, m.openEditor(&item)
		}
		return m, nil

	case "p":
		if item, ok := m.selected(); ok {
			m.openPreview(item)
		}
		return m, nil

	case "d":
		if item, ok := m.selected(); ok {
			m.pendingDelete = item.ID
			m.mode = modeConfirm
		}
		return m, nil

	case "t":
		m.toggleTheme()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.clearStatus()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % len(m.focusTargets())
		return m, m.applyFocus()

	case "shift+tab":
		targets := m.focusTargets()
		m.focus = (m.focus - 1 + len(targets)) % len(targets)
		return m, m.applyFocus()

	case "ctrl+s":
		m.saveItem()
		return m, nil
	}

	// Typed keys reach only the focused field; blurred components
	// ignore them.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range m.inputs {
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	m.body, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.deleteConfirmed()
		return m, nil
	case "n", "esc":
		m.pendingDelete = ""
		m.mode = modeList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}
