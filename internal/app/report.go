package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"runlog/internal/service"
	"runlog/internal/store"
)

var flagRange string

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4B5563")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print weekly mileage charts in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer st.Close()

		charts := service.NewCharts(st)
		now := time.Now()

		chart, err := charts.Weekly(flagRange, now)
		if err != nil {
			return err
		}
		week, err := charts.Week(now)
		if err != nil {
			return err
		}

		fmt.Println(renderWeeklyCard(chart))
		fmt.Println(renderWeekCard(week))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&flagRange, "range", "12w", "Chart range: 12w, 6m, or 1y")
	rootCmd.AddCommand(reportCmd)
}

func renderWeeklyCard(chart *service.WeeklyChart) string {
	title := titleStyle.Render(fmt.Sprintf("Weekly Mileage (%s)", chart.Range))

	graph := asciigraph.Plot(chart.Totals,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(1),
	)

	span := mutedStyle.Render(fmt.Sprintf("%s - %s",
		chart.Labels[0], chart.Labels[len(chart.Labels)-1]))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, span))
}

func renderWeekCard(week *service.WeekSummary) string {
	title := titleStyle.Render(fmt.Sprintf("Week of %s", week.WeekStart.Format("Jan 02")))

	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	var b strings.Builder
	for i, day := range days {
		fmt.Fprintf(&b, "%s %5.1f  ", day, week.Daily[i])
	}
	daily := strings.TrimRight(b.String(), " ")
	total := fmt.Sprintf("Total: %.1f mi", week.Total)

	lines := []string{daily, total}
	if len(week.Runs) > 0 {
		lines = append(lines, "")
		for _, r := range week.Runs {
			lines = append(lines, r.Run.Title)
			lines = append(lines, mutedStyle.Render("  "+r.Summary))
		}
	} else {
		lines = append(lines, mutedStyle.Render("No runs this week"))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title}, lines...)...))
}
