// Package record persists one flattened row per collection cycle. The
// column set is fixed when the log is created and every appended row must
// line up with it.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"spmon/internal/model"
)

// Sentinel marks an unfilled rank slot or a reading with no value.
const Sentinel = model.Sentinel

// Categories, in schema order.
var Categories = []string{"cpu", "memory", "disk_io"}

var processFields = []string{
	"pid", "name", "cpu_percent", "mem_rss", "mem_vms",
	"disk_read_bytes", "disk_write_bytes", "execution_time_s",
}

var systemColumns = []string{
	"timestamp", "cpu_usage_total", "cpu_usage_per_core", "memory_usage_percent",
	"memory_used", "memory_available", "memory_cached", "disk_usage_percent",
	"disk_io_read_bytes_s", "disk_io_write_bytes_s", "network_io_sent_mbps",
	"network_io_recv_mbps", "system_uptime_seconds", "system_temp_celsius",
}

// Header returns the full column list for a log holding n ranked
// processes per category.
func Header(n int) []string {
	cols := make([]string, 0, len(systemColumns)+len(Categories)*n*len(processFields))
	cols = append(cols, systemColumns...)
	for _, cat := range Categories {
		for i := 1; i <= n; i++ {
			for _, f := range processFields {
				cols = append(cols, fmt.Sprintf("top_%s_%d_%s", cat, i, f))
			}
		}
	}
	return cols
}

// Row flattens one cycle into Header(n) order. Rank slots beyond the
// number of live processes hold the sentinel.
func Row(c model.Cycle, n int) []string {
	s := c.Sample
	row := make([]string, 0, len(systemColumns)+len(Categories)*n*len(processFields))
	row = append(row,
		s.Timestamp.Format("2006-01-02 15:04:05"),
		formatFloat(s.CPU.Total),
		joinFloats(s.CPU.PerCore),
		formatFloat(s.Memory.UsedPercent),
		strconv.FormatUint(s.Memory.UsedBytes, 10),
		strconv.FormatUint(s.Memory.AvailableBytes, 10),
		strconv.FormatUint(s.Memory.CachedBytes, 10),
		formatFloat(s.Disk.UsedPercent),
		formatFloat(s.Disk.ReadBytesS),
		formatFloat(s.Disk.WriteBytesS),
		formatFloat(s.Net.SentMbps),
		formatFloat(s.Net.RecvMbps),
		formatFloat(s.UptimeSeconds),
		formatCelsius(s.CPU.TempC),
	)
	for _, list := range [][]model.ProcessSnapshot{c.Top.CPU, c.Top.Memory, c.Top.DiskIO} {
		for i := 0; i < n; i++ {
			if i < len(list) {
				row = append(row, processCells(list[i])...)
			} else {
				row = append(row, emptySlot()...)
			}
		}
	}
	return row
}

func processCells(p model.ProcessSnapshot) []string {
	return []string{
		strconv.FormatInt(int64(p.PID), 10),
		p.Name,
		formatFloat(p.CPUPercent),
		strconv.FormatUint(p.MemRSS, 10),
		strconv.FormatUint(p.MemVMS, 10),
		strconv.FormatUint(p.DiskReadBytes, 10),
		strconv.FormatUint(p.DiskWriteBytes, 10),
		formatFloat(p.ExecutionSecs),
	}
}

func emptySlot() []string {
	cells := make([]string, len(processFields))
	for i := range cells {
		cells[i] = Sentinel
	}
	return cells
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCelsius(c model.Celsius) string {
	if !c.Valid {
		return Sentinel
	}
	return formatFloat(c.Value)
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ",")
}
