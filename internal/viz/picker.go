package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/isocontour/internal/config"
)

type presetItem struct {
	source, name string
}

// Picker lists the built-in presets and hands the chosen one to a live
// Model.
type Picker struct {
	items  []presetItem
	cursor int
	logger *slog.Logger
	err    error
}

func NewPicker(logger *slog.Logger) Picker {
	var items []presetItem
	for _, source := range config.Sources() {
		for _, name := range config.ListPresets(source) {
			items = append(items, presetItem{source: source, name: name})
		}
	}
	return Picker{items: items, logger: logger}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.items)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.items) == 0 {
			return p, nil
		}
		it := p.items[p.cursor]
		m, err := NewModel(config.GetPreset(it.source, it.name), p.logger)
		if err != nil {
			p.err = err
			return p, nil
		}
		return m, m.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	theme := CurrentTheme

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render("ISOCONTOUR") + "\n")
	for i, it := range p.items {
		name := fmt.Sprintf("%-16s", it.name)
		if i == p.cursor {
			name = fg(theme.Contour).Bold(true).Render("> " + name)
		} else {
			name = "  " + name
		}
		s.WriteString(name + " " + fg(theme.Muted).Render(it.source) + "\n")
	}
	if p.err != nil {
		s.WriteString("\n" + p.err.Error() + "\n")
	}
	s.WriteString(helpStyle.Render("↑↓:Select Enter:Run Q:Quit"))
	return canvasStyle.Render(s.String())
}
