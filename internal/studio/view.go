package studio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting studio..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Atelier Studio"))
	b.WriteString(m.tabsView())
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
	}
	b.WriteString("\n")

	switch m.mode {
	case modeEdit:
		b.WriteString(m.editView())
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("tab next field • ctrl+s save • esc cancel"))
	case modePreview:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("esc back"))
	case modeConfirm:
		b.WriteString(m.confirmView())
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("tab sections • n new • enter edit • p preview • d delete • t theme • q quit"))
	}

	return b.String()
}

func (m Model) tabsView() string {
	projects := m.styles.Tab.Render("Projects")
	posts := m.styles.Tab.Render("Posts")
	if m.section == sectionProjects {
		projects = m.styles.TabOn.Render("Projects")
	} else {
		posts = m.styles.TabOn.Render("Posts")
	}
	return m.styles.Divider.Render("│") + projects + posts
}

func (m Model) editView() string {
	heading := "New " + m.section.singular()
	if m.editID != "" {
		heading = "Edit " + m.section.singular()
	}

	parts := []string{
		m.styles.Title.Render(heading),
		"",
		m.styles.Label.Render("Title"),
		m.inputs[inputTitle].View(),
		"",
		m.styles.Label.Render("Summary"),
		m.inputs[inputSummary].View(),
		"",
	}
	if m.section == sectionProjects {
		parts = append(parts,
			m.styles.Label.Render("Link"),
			m.inputs[inputLink].View(),
			"",
		)
	}
	parts = append(parts,
		m.styles.Label.Render("Body"),
		m.body.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) confirmView() string {
	title := "this item"
	if item, ok := m.itemByID(m.pendingDelete); ok {
		title = fmt.Sprintf("%q", item.Title)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Delete "+title+"?"),
		"",
		m.styles.Muted.Render("y delete • n cancel"),
	)
}
