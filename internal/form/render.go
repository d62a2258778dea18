package form

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/editor"
)

// SavePrompt is shown above the Save and Cancel controls.
const SavePrompt = "Would you like to save your changes?"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(1)
	buttonStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)
)

// Render draws the session's current text fields: one row per field group,
// a single cell for scalars, cells side by side for vectors and a grid for
// matrices, followed by the save prompt and the Save and Cancel controls.
func Render(s *editor.Session) string {
	groups := s.Groups()

	labelWidth := 0
	for _, g := range groups {
		labelWidth = max(labelWidth, lipgloss.Width(g.Name()))
	}

	rows := make([]string, 0, len(groups)+3)
	rows = append(rows, titleStyle.Render("Properties: "+component.Ref(s.Component())))
	for _, g := range groups {
		label := labelStyle.Width(labelWidth + 2).Render(g.Name())
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, renderCells(g)))
	}
	rows = append(rows,
		"",
		SavePrompt,
		lipgloss.JoinHorizontal(lipgloss.Top, buttonStyle.Render("[ Save ]"), buttonStyle.Render("[ Cancel ]")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCells(g *editor.FieldGroup) string {
	lines := make([]string, g.Rows())
	for r := range lines {
		cells := make([]string, g.Cols())
		for c := range cells {
			cells[c] = cellStyle.Render("[" + g.Text(r, c) + "]")
		}
		lines[r] = strings.Join(cells, "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
