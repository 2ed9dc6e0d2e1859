package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	configpkg "github.com/YA-androidapp/baserow/internal/config"
	plugindomain "github.com/YA-androidapp/baserow/internal/core/domain/plugin"
	"github.com/YA-androidapp/baserow/internal/plugins"
)

// newWatchCommand creates an interactive live view of the plugins root.
// Useful while developing a plugin mounted into a running container: the
// listing refreshes as descriptors change on disk.
func newWatchCommand() *cobra.Command {
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactively watch the plugins root",
		Long: `Launch a terminal view of the installed plugins that refreshes on a
timer. Read-only; press q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configpkg.Load()
			if err != nil {
				return err
			}

			model := newWatchModel(plugins.NewDiscovery(cfg.PluginDir), cfg.PluginDir, refresh)
			program := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := program.Run(); err != nil {
				return fmt.Errorf("watch failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&refresh, "refresh", 2*time.Second, "Refresh rate for the plugin listing")

	return cmd
}

// watchModel holds the state for the Bubble Tea plugin view
type watchModel struct {
	discovery  *plugins.Discovery
	root       string
	refresh    time.Duration
	plugins    []plugindomain.Plugin
	lastUpdate time.Time
	err        error
}

func newWatchModel(discovery *plugins.Discovery, root string, refresh time.Duration) watchModel {
	return watchModel{
		discovery: discovery,
		root:      root,
		refresh:   refresh,
	}
}

// watchTickMsg is sent every refresh interval
type watchTickMsg time.Time

// pluginsLoadedMsg is sent when a scan of the plugins root completes
type pluginsLoadedMsg struct {
	plugins []plugindomain.Plugin
	err     error
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.loadPluginsCmd())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.loadPluginsCmd()
		}

	case watchTickMsg:
		return m, tea.Batch(m.tickCmd(), m.loadPluginsCmd())

	case pluginsLoadedMsg:
		m.plugins = msg.plugins
		m.err = msg.err
		m.lastUpdate = time.Now()
		return m, nil
	}

	return m, nil
}

func (m watchModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render(fmt.Sprintf("Plugins in %s", m.root))

	var body string
	switch {
	case m.err != nil:
		body = fmt.Sprintf("Error: %v", m.err)
	case len(m.plugins) == 0:
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Render("No plugins installed.")
	default:
		var lines []string
		for _, p := range m.plugins {
			lines = append(lines, fmt.Sprintf(" - %s", p.Name))
			if p.Description != "" {
				lines = append(lines, listDescriptionStyle.Render("     "+p.Description))
			}
		}
		body = strings.Join(lines, "\n")
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render(fmt.Sprintf("Last update: %s | [r] Refresh | [q] Quit",
			m.lastUpdate.Format("15:04:05")))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer)
}

func (m watchModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) loadPluginsCmd() tea.Cmd {
	return func() tea.Msg {
		found, err := m.discovery.List()
		return pluginsLoadedMsg{plugins: found, err: err}
	}
}
