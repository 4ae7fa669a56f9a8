package ui

import (
	"fmt"
	"io"
	"strings"

	"spmon/internal/model"
)

const clearScreen = "\x1b[2J\x1b[H"

// Refresh clears the terminal and prints the full summary for one cycle.
// It is a pure output side effect and never fails the caller.
func Refresh(w io.Writer, c model.Cycle, logTarget string, n int) {
	fmt.Fprint(w, clearScreen)
	Render(w, c, logTarget, n)
}

// Render writes the sectioned text view: header, CPU, memory, disk,
// network, each with its ranked process table.
func Render(w io.Writer, c model.Cycle, logTarget string, n int) {
	s := c.Sample

	fmt.Fprintf(w, "--- System Performance Monitor --- (Logging to %s)\n", logTarget)
	fmt.Fprintf(w, "--- Timestamp: %s | Boot: %s ---\n",
		s.Timestamp.Format("2006-01-02 15:04:05"),
		s.BootTime.Format("2006-01-02 15:04"))

	fmt.Fprintf(w, "\nCPU Usage: %.1f%% | Per Core: %s | Temp: %s°C\n",
		s.CPU.Total, perCoreString(s.CPU.PerCore), tempString(s.CPU.TempC))
	fmt.Fprintln(w, "Top CPU Consuming Tasks:")
	processTable(w, c.Top.CPU, n, "Usage", func(p model.ProcessSnapshot) string {
		return fmt.Sprintf("%.2f%%", p.CPUPercent)
	})

	fmt.Fprintf(w, "\nMemory Usage: %.1f%% (Used: %s / Total: %s)\n",
		s.Memory.UsedPercent,
		humanBytes(float64(s.Memory.UsedBytes)),
		humanBytes(float64(s.Memory.TotalBytes)))
	fmt.Fprintln(w, "Top Memory Consuming Tasks (RSS):")
	processTable(w, c.Top.Memory, n, "Usage", func(p model.ProcessSnapshot) string {
		return humanBytes(float64(p.MemRSS))
	})

	fmt.Fprintf(w, "\nDisk Usage (/): %.1f%% (Read: %s/s | Write: %s/s)\n",
		s.Disk.UsedPercent,
		humanBytes(s.Disk.ReadBytesS),
		humanBytes(s.Disk.WriteBytesS))
	fmt.Fprintln(w, "Top Disk I/O Tasks:")
	processTable(w, c.Top.DiskIO, n, "I/O", func(p model.ProcessSnapshot) string {
		return humanBytes(float64(p.DiskIOTotal()))
	})

	fmt.Fprintf(w, "\nNetwork Speed (Upload: %.2f Mbps | Download: %.2f Mbps)\n",
		s.Net.SentMbps, s.Net.RecvMbps)
}

// processTable always prints n rows; slots past the ranked list hold the
// sentinel so the display mirrors the log schema.
func processTable(w io.Writer, rows []model.ProcessSnapshot, n int, label string, value func(model.ProcessSnapshot) string) {
	for i := 0; i < n; i++ {
		if i < len(rows) {
			p := rows[i]
			fmt.Fprintf(w, "  PID: %-6d | Name: %-20s | %s: %s\n", p.PID, p.Name, label, value(p))
		} else {
			fmt.Fprintf(w, "  PID: %-6s | Name: %-20s | %s: %s\n",
				model.Sentinel, model.Sentinel, label, model.Sentinel)
		}
	}
}

func perCoreString(cores []float64) string {
	parts := make([]string, len(cores))
	for i, v := range cores {
		parts[i] = fmt.Sprintf("%.1f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
