package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spmon/internal/model"
)

// Model renders live cycles produced by the loop.
type Model struct {
	cycles    <-chan model.Cycle
	latest    model.Cycle
	logTarget string
	topN      int
	ctxCancel context.CancelFunc
	width     int
	height    int
}

func New(cycles <-chan model.Cycle, logTarget string, topN int, cancel context.CancelFunc) *Model {
	return &Model{
		cycles:    cycles,
		logTarget: logTarget,
		topN:      topN,
		ctxCancel: cancel,
		width:     120,
		height:    40,
	}
}

// Messages
type tickMsg struct{}

func tickCmd() tea.Cmd { return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return tickMsg{} }) }

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctxCancel()
			return m, tea.Quit
		}
	case tickMsg:
		select {
		case c, ok := <-m.cycles:
			if !ok {
				// Loop finished, either cancelled or failed.
				return m, tea.Quit
			}
			m.latest = c
		default:
		}
		return m, tickCmd()
	}
	return m, nil
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	c := m.latest
	s := c.Sample

	header := titleStyle.Render("System Performance Monitor") + "  " +
		subtleStyle.Render(fmt.Sprintf("logging to %s", m.logTarget)) + "  " +
		subtleStyle.Render(s.Timestamp.Format("Mon Jan 2 15:04:05 2006")) + "  " +
		subtleStyle.Render("boot "+s.BootTime.Format("2006-01-02 15:04"))

	cpuCard := card("CPU",
		fmt.Sprintf("%s  temp %s°C\ncores %s",
			gaugeBar(s.CPU.Total, 28),
			tempString(s.CPU.TempC),
			perCoreString(s.CPU.PerCore)))

	memCard := card("Memory",
		fmt.Sprintf("%s  %s / %s",
			gaugeBar(s.Memory.UsedPercent, 28),
			humanBytes(float64(s.Memory.UsedBytes)),
			humanBytes(float64(s.Memory.TotalBytes))))

	diskCard := card("Disk /",
		fmt.Sprintf("%s  R %s/s  W %s/s",
			gaugeBar(s.Disk.UsedPercent, 28),
			humanBytes(s.Disk.ReadBytesS),
			humanBytes(s.Disk.WriteBytesS)))

	netCard := card("Network",
		fmt.Sprintf("Up %.2f Mbps   Down %.2f Mbps", s.Net.SentMbps, s.Net.RecvMbps))

	cpuTable := card("Top CPU",
		renderTable(c.Top.CPU, m.topN, "cpu", func(p model.ProcessSnapshot) string {
			return fmt.Sprintf("%.2f%%", p.CPUPercent)
		}))
	memTable := card("Top Memory (RSS)",
		renderTable(c.Top.Memory, m.topN, "rss", func(p model.ProcessSnapshot) string {
			return humanBytes(float64(p.MemRSS))
		}))
	ioTable := card("Top Disk I/O",
		renderTable(c.Top.DiskIO, m.topN, "i/o", func(p model.ProcessSnapshot) string {
			return humanBytes(float64(p.DiskIOTotal()))
		}))

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, memCard, diskCard, netCard)
	line2 := lipgloss.JoinHorizontal(lipgloss.Top, cpuTable, memTable, ioTable)

	return lipgloss.JoinVertical(lipgloss.Left, header, line1, line2)
}

// Helpers
func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func card(title, body string) string {
	titleStr := labelStyle.Render(title)
	content := titleStr + "\n" + body
	return cardStyle.Render(content)
}

// renderTable pads to n rows with the sentinel so the display always shows
// the same slot count as the log.
func renderTable(rows []model.ProcessSnapshot, n int, valueHeader string, value func(model.ProcessSnapshot) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-7s %-10s\n", "name", "pid", valueHeader)
	for i := 0; i < n; i++ {
		if i < len(rows) {
			p := rows[i]
			fmt.Fprintf(&b, "%-20s %-7d %-10s\n", truncate(p.Name, 20), p.PID, value(p))
		} else {
			fmt.Fprintf(&b, "%-20s %-7s %-10s\n", model.Sentinel, model.Sentinel, model.Sentinel)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// RunTUI starts the Bubble Tea program over the loop's cycle stream.
func RunTUI(cycles <-chan model.Cycle, logTarget string, topN int, cancel context.CancelFunc) error {
	prog := tea.NewProgram(New(cycles, logTarget, topN, cancel), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
