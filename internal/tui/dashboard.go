package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/japa/internal/challenge"
	"github.com/sadopc/japa/internal/practice"
	"github.com/sadopc/japa/internal/store"
)

type dashboardModel struct {
	svc    *Services
	width  int
	height int

	stats   *store.Stats
	records []store.DailyRecord
	next    *store.Milestone
	content challenge.Content
	today   time.Time

	chart barchart.Model
}

func newDashboardModel(svc *Services) dashboardModel {
	return dashboardModel{
		svc:   svc,
		chart: barchart.New(60, 10),
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

type dashboardDataMsg struct {
	stats   *store.Stats
	records []store.DailyRecord
	next    *store.Milestone
	now     time.Time
}

func (d dashboardModel) loadData() tea.Cmd {
	svc := d.svc
	return func() tea.Msg {
		st, err := svc.Practice.Stats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		records, err := svc.Practice.DailyRecords()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		next, err := svc.Practice.Next()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load error: %v", err), isError: true}
		}
		return dashboardDataMsg{stats: st, records: records, next: next, now: svc.now()}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(dashboardDataMsg); ok {
		d.stats = msg.stats
		d.records = msg.records
		d.next = msg.next
		d.today = msg.now
		d.content = challenge.DailyContent(msg.now)
		d.buildChart()
	}
	return d, nil
}

// chartDays is how many trailing days fit the chart, up to the log size.
func chartDays(width int) int {
	return min(max(width/3, 7), practice.MaxDailyRecords)
}

// dailySeries returns the counts for the n days ending on today, oldest
// first, with zero for days missing from the log.
func dailySeries(records []store.DailyRecord, today time.Time, n int) ([]string, []int) {
	byDate := make(map[string]int, len(records))
	for _, r := range records {
		byDate[r.Date] = r.Count
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	dates := make([]string, n)
	counts := make([]int, n)
	for i := range n {
		dt := day.AddDate(0, 0, i-n+1)
		dates[i] = dt.Format(practice.DateLayout)
		counts[i] = byDate[dates[i]]
	}
	return dates, counts
}

func (d *dashboardModel) buildChart() {
	if d.today.IsZero() {
		return
	}
	chartWidth := max(d.width-8, 20)
	chartHeight := 10
	if d.height > 36 {
		chartHeight = 14
	}

	d.chart = barchart.New(chartWidth, chartHeight)

	dates, counts := dailySeries(d.records, d.today, chartDays(chartWidth))
	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	todayStyle := lipgloss.NewStyle().Foreground(colorHighlight)

	var bars []barchart.BarData
	for i, date := range dates {
		style := barStyle
		if i == len(dates)-1 {
			style = todayStyle
		}
		bars = append(bars, barchart.BarData{
			Label:  date[8:],
			Values: []barchart.BarValue{{Name: date, Value: float64(counts[i]), Style: style}},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderStatsPanel(w),
		d.renderContentPanel(w),
		d.renderChartPanel(w),
	)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	if d.stats == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Loading..."))
	}
	st := d.stats
	line := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		titleStyle.Render("Today"), highlightStyle.Render(formatCount(st.TodayCount)),
		titleStyle.Render("Total"), highlightStyle.Render(formatCount(st.TotalCount)),
		titleStyle.Render("Streak"), highlightStyle.Render(plural(st.Streak, "day")),
		titleStyle.Render("Practice"), highlightStyle.Render(plural(st.Days(), "day")),
	)

	next := mutedStyle.Render("Every milestone reached")
	if d.next != nil {
		next = fmt.Sprintf("%s %s %s",
			mutedStyle.Render("Next milestone:"),
			accentStyle.Render(d.next.Title),
			mutedStyle.Render(fmt.Sprintf("(%d%%)", d.next.Progress)),
		)
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, line, next))
}

func (d dashboardModel) renderContentPanel(w int) string {
	m := d.content.Mantra
	if m.Text == "" {
		return ""
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Mantra of the day"),
		mantraStyle.Render(m.Text),
		highlightStyle.Render(m.Translation),
		mutedStyle.Width(w-6).Render(m.Meaning),
		"",
		subtitleStyle.Width(w-6).Render("“"+d.content.Quote+"”"),
	))
}

func (d dashboardModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Daily practice")
	if len(d.records) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("No practice recorded yet"),
		))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", d.chart.View(),
	))
}
