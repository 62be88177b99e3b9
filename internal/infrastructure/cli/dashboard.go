package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/domain/behavior"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("PACER_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel(cmd))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var signalHealthy = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var signalWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var signalDanger = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type model struct {
	table   table.Model
	goal    string
	status  string
	signals []behavior.Signal
	rate    int
	streak  int
	usage   int
	limit   int
	err     error
}

func initialModel(cmd *cobra.Command) model {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return model{err: err}
	}
	repo := services.Workspace.Repo

	goal, err := repo.LoadGoal()
	if err != nil {
		return model{err: err}
	}
	if goal == nil {
		return model{err: fmt.Errorf("no goal defined, run 'pacer goal set' first")}
	}

	stored, err := repo.LoadPlan()
	if err != nil {
		return model{err: err}
	}

	tasks, err := repo.LoadTasks()
	if err != nil {
		return model{err: err}
	}

	stats, _ := repo.LoadUsage()
	usageCount := 0
	if stats != nil {
		usageCount = stats.TotalTokens()
	}

	cfg, _ := repo.LoadPolicy()
	tokenLimit := 0
	if cfg != nil {
		tokenLimit = cfg.TokenLimit
	}

	columns := []table.Column{
		{Title: "Status", Width: 10},
		{Title: "Difficulty", Width: 10},
		{Title: "Task", Width: 40},
		{Title: "ID", Width: 36},
	}

	rows := []table.Row{}
	for _, t := range tasks {
		rows = append(rows, table.Row{string(t.Status), string(t.Difficulty), t.Title, t.ID})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	m := model{
		table: t,
		goal:  goal.Description,
		usage: usageCount,
		limit: tokenLimit,
	}
	if stored != nil {
		m.status = string(stored.Status)
		eval, evalErr := services.Evaluation.Evaluate(cmd.Context())
		if evalErr == nil {
			m.signals = eval.Signals
			m.rate = eval.Metrics.CompletionRate
			m.streak = eval.Metrics.ConsecutiveFailures
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(m.goal)

	planLine := "Plan: none yet"
	if m.status != "" {
		planLine = fmt.Sprintf("Plan: %s | Completion: %d%% | Failure streak: %d", m.status, m.rate, m.streak)
	}

	budgetText := fmt.Sprintf("AI Budget: %d tokens", m.usage)
	if m.limit > 0 {
		budgetText = fmt.Sprintf("AI Budget: %d / %d tokens", m.usage, m.limit)
	}

	signalView := ""
	for _, s := range m.signals {
		line := fmt.Sprintf("- [%s] %s", s.Type, s.Message)
		switch s.Type {
		case behavior.SignalHealthy:
			signalView += signalHealthy.Render(line) + "\n"
		case behavior.SignalStruggling:
			signalView += signalWarning.Render(line) + "\n"
		default:
			signalView += signalDanger.Render(line) + "\n"
		}
	}
	if signalView == "" {
		signalView = "(no evaluation yet)\n"
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			planLine,
			budgetText,
			"\nTasks:",
			m.table.View(),
			"\nSignals:",
			signalView,
			"[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
