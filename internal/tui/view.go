package tui

import (
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/screen"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func (m Model) View() string {
	state := m.screen.State()
	switch state.Overlay {
	case screen.OverlayAdd:
		return m.overlay(m.renderAddForm(state))
	case screen.OverlayDetail:
		return m.overlay(m.renderDetail())
	default:
		return m.renderList()
	}
}

func (m Model) renderList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Exercises"))
	b.WriteString("\n\n")

	for i, ex := range m.screen.Exercises() {
		line := fmt.Sprintf("%s  %s", imageBadge(ex.Image), ex.Name)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(mutedStyle.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Add, m.keys.Quit)))
	return b.String()
}

func (m Model) renderAddForm(state screen.UIState) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add Exercise"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Name") + "\n")
	b.WriteString(m.name.View() + "\n\n")
	b.WriteString(labelStyle.Render("Description") + "\n")
	b.WriteString(m.desc.View() + "\n\n")

	if state.Draft != nil {
		b.WriteString(buttonStyle.Render(state.Draft.ImageButtonLabel()))
		if !state.Draft.Image.IsNone() {
			b.WriteString("  " + mutedStyle.Render(state.Draft.Image.String()))
		}
		b.WriteString("\n")
	}
	if state.PickPending {
		b.WriteString(mutedStyle.Render("Waiting for image picker...") + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(helpLine(m.keys.NextField, m.keys.PickImage, m.keys.Submit, m.keys.Close)))
	return b.String()
}

func (m Model) renderDetail() string {
	ex, ok := m.screen.Detail()
	if !ok {
		return mutedStyle.Render(helpLine(m.keys.Close))
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(ex.Name))
	b.WriteString("\n\n")
	if ex.HasImage() {
		b.WriteString(mutedStyle.Render("Image: "+ex.Image.String()) + "\n\n")
	}
	if ex.Desc != "" {
		b.WriteString(lipgloss.NewStyle().Width(formWidth(m.width)).Render(ex.Desc))
		b.WriteString("\n\n")
	}
	b.WriteString(mutedStyle.Render(helpLine(m.keys.Close)))
	return b.String()
}

// overlay centers content in a rounded card over the whole window.
func (m Model) overlay(content string) string {
	card := cardStyle.Render(content)
	if m.width <= 0 || m.height <= 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func imageBadge(ref domain.ImageRef) string {
	switch ref.Kind {
	case domain.ImageBundled:
		return "[img]"
	case domain.ImageRemote:
		return "[pic]"
	default:
		return "[   ]"
	}
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
