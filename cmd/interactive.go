package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Beastly713/hashira/pkg/format"
	"github.com/Beastly713/hashira/pkg/pipeline"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle  = focusedStyle
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // Green
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

const helpLine = "Navigate: ↑/↓ | Enter: Open Dir | Space: Select | '/': Filter | 's': Solve Selected | 'q': Quit"

type fileItem struct {
	path     string
	name     string
	isDir    bool
	selected bool
}

type model struct {
	path     string
	files    []fileItem
	cursor   int
	status   string
	filter   textinput.Model
	results  []*format.Report
	config   pipeline.PipelineConfig
	quitting bool
}

func initialModel(cfg pipeline.PipelineConfig) model {
	cwd, _ := os.Getwd()

	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.Placeholder = "part of a file name"

	m := model{
		path:   cwd,
		status: helpLine,
		filter: filter,
		config: cfg,
	}
	m.loadFiles()
	return m
}

// isShareDocument reports whether name looks like a file solve can read.
func isShareDocument(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".gz")
	switch filepath.Ext(name) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		return
	}

	needle := strings.ToLower(m.filter.Value())

	m.files = []fileItem{}
	// Parent directory
	m.files = append(m.files, fileItem{name: "..", isDir: true, path: filepath.Dir(m.path)})

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && !isShareDocument(name) {
			continue
		}
		if needle != "" && !e.IsDir() && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		m.files = append(m.files, fileItem{
			name:  name,
			isDir: e.IsDir(),
			path:  filepath.Join(m.path, name),
		})
	}
	m.cursor = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}

		case "enter":
			selected := m.files[m.cursor]
			if selected.isDir {
				m.path = selected.path
				m.loadFiles()
			}

		case " ":
			if !m.files[m.cursor].isDir {
				m.files[m.cursor].selected = !m.files[m.cursor].selected
			}

		case "/":
			return m, m.filter.Focus()

		case "s":
			m.status = "Solving..."
			return m, m.solveSelected()
		}

	case solvedMsg:
		m.results = msg.reports
		m.status = msg.status
		for i := range m.files {
			m.files[i].selected = false
		}
	}

	return m, nil
}

// updateFilter routes keys to the filter input until enter or esc.
func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filter.Blur()
		m.loadFiles()
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.loadFiles()
	return m, cmd
}

type solvedMsg struct {
	reports []*format.Report
	status  string
}

func (m model) solveSelected() tea.Cmd {
	var selectedPaths []string
	for _, f := range m.files {
		if f.selected {
			selectedPaths = append(selectedPaths, f.path)
		}
	}
	cfg := m.config

	return func() tea.Msg {
		if len(selectedPaths) == 0 {
			return solvedMsg{status: "No files selected!"}
		}

		reports := pipeline.SolveFiles(context.Background(), selectedPaths, cfg)

		failed := 0
		for _, r := range reports {
			if r.Failed() {
				failed++
			}
		}
		status := fmt.Sprintf("Solved %d of %d documents.", len(reports)-failed, len(reports))
		return solvedMsg{reports: reports, status: status}
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := fmt.Sprintf("Directory: %s\n\n", m.path)

	for i, file := range m.files {
		cursor := " " // no cursor
		if m.cursor == i {
			cursor = ">"
			s += cursorStyle.Render(cursor)
		} else {
			s += cursor
		}

		checked := " "
		if file.selected {
			checked = "x"
		}

		line := ""
		if file.isDir {
			line = fmt.Sprintf("[DIR] %s", file.name)
		} else {
			line = fmt.Sprintf("[%s] %s", checked, file.name)
		}

		if file.selected {
			line = checkedStyle.Render(line)
		}

		s += " " + line + "\n"
	}

	if m.filter.Focused() || m.filter.Value() != "" {
		s += "\n" + m.filter.View() + "\n"
	}

	if len(m.results) > 0 {
		s += "\n"
		for _, r := range m.results {
			if r.Failed() {
				s += failedStyle.Render(fmt.Sprintf("%s: %s", filepath.Base(r.File), r.Error)) + "\n"
				continue
			}
			s += checkedStyle.Render(fmt.Sprintf("%s: C = %s", filepath.Base(r.File), r.Secret)) + "\n"
		}
	}

	s += fmt.Sprintf("\n%s\n", m.status)
	return docStyle.Render(s)
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive terminal UI for picking and solving share documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Log lines would tear the alternate screen.
		zerolog.SetGlobalLevel(zerolog.Disabled)

		cfg := pipeline.PipelineConfig{
			Verify:     appConfig.Verify.Enabled,
			MaxSubsets: appConfig.Verify.MaxSubsets,
			Workers:    appConfig.Workers,
		}

		p := tea.NewProgram(initialModel(cfg))
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
