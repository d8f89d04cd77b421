package viz

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rbfviz/internal/visualizer"
)

// Terminal renders a scene as an interactive full-screen terminal view and
// returns when the user quits.
type Terminal struct {
	Theme   string
	Options []tea.ProgramOption
}

func NewTerminal(theme string, opts ...tea.ProgramOption) *Terminal {
	return &Terminal{Theme: theme, Options: opts}
}

func (t *Terminal) Render(scene *visualizer.Scene) error {
	if err := scene.Validate(); err != nil {
		return err
	}
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, t.Options...)
	_, err := tea.NewProgram(NewModel(scene, t.Theme), opts...).Run()
	return err
}

var _ visualizer.Renderer = (*Terminal)(nil)
