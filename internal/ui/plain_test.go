package ui

import (
	"strings"
	"testing"
	"time"

	"spmon/internal/model"
)

func TestRenderSections(t *testing.T) {
	c := model.Cycle{
		Sample: model.Sample{
			Timestamp: time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC),
			BootTime:  time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC),
			CPU: model.CPU{
				Total:   12.5,
				PerCore: []float64{10, 15},
				TempC:   model.Celsius{Value: 48, Valid: true},
			},
			Memory: model.Memory{UsedPercent: 41.2, UsedBytes: 1536, TotalBytes: 1 << 30},
			Disk:   model.Disk{UsedPercent: 63.1, ReadBytesS: 80, WriteBytesS: 45},
			Net:    model.Network{SentMbps: 1.0, RecvMbps: 2.0},
		},
		Top: model.TopN{
			CPU: []model.ProcessSnapshot{{PID: 42, Name: "ffmpeg", CPUPercent: 55}},
		},
	}

	var b strings.Builder
	Render(&b, c, "system_performance_log.csv", 3)
	out := b.String()

	for _, want := range []string{
		"(Logging to system_performance_log.csv)",
		"Timestamp: 2026-08-23 10:30:00 | Boot: 2026-08-20 07:00",
		"CPU Usage: 12.5% | Per Core: [10.0 15.0] | Temp: 48.0°C",
		"Top CPU Consuming Tasks:",
		"PID: 42     | Name: ffmpeg",
		"Memory Usage: 41.2% (Used: 1.50KB / Total: 1.00GB)",
		"Top Memory Consuming Tasks (RSS):",
		"Disk Usage (/): 63.1% (Read: 80.00B/s | Write: 45.00B/s)",
		"Top Disk I/O Tasks:",
		"Network Speed (Upload: 1.00 Mbps | Download: 2.00 Mbps)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	// One ranked CPU process plus two sentinel slots, and three sentinel
	// slots in each empty category: every table still shows N rows.
	if got := strings.Count(out, "PID: N/A"); got != 2+3+3 {
		t.Errorf("sentinel slots: got %d, want 8", got)
	}
}

func TestRefreshClearsFirst(t *testing.T) {
	var b strings.Builder
	Refresh(&b, model.Cycle{}, "x.csv", 1)
	if !strings.HasPrefix(b.String(), clearScreen) {
		t.Error("Refresh should start with the clear sequence")
	}
}
