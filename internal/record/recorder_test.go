package record

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"spmon/internal/model"
)

func testCycle() model.Cycle {
	ts := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	return model.Cycle{
		Sample: model.Sample{
			Timestamp: ts,
			CPU: model.CPU{
				Total:   12.5,
				PerCore: []float64{10, 15},
				TempC:   model.Celsius{Value: 48.5, Valid: true},
			},
			Memory: model.Memory{
				UsedPercent:    41.2,
				UsedBytes:      6442450944,
				TotalBytes:     16777216000,
				AvailableBytes: 9663676416,
				CachedBytes:    2147483648,
			},
			Disk: model.Disk{UsedPercent: 63.1, ReadBytesS: 80, WriteBytesS: 45},
			Net:  model.Network{SentMbps: 1.0, RecvMbps: 2.0},

			UptimeSeconds: 3600,
		},
		Top: model.TopN{
			CPU:    []model.ProcessSnapshot{{PID: 42, Name: "ffmpeg", CPUPercent: 55}},
			Memory: []model.ProcessSnapshot{{PID: 7, Name: "postgres", MemRSS: 1 << 30}},
			DiskIO: nil,
		},
	}
}

func TestHeaderShape(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 14 + 3*1*8},
		{5, 14 + 3*5*8},
		{8, 14 + 3*8*8},
	}
	for _, tt := range tests {
		h := Header(tt.n)
		if len(h) != tt.want {
			t.Errorf("Header(%d): got %d columns, want %d", tt.n, len(h), tt.want)
		}
	}

	h := Header(2)
	if h[0] != "timestamp" || h[13] != "system_temp_celsius" {
		t.Errorf("system columns misplaced: %v", h[:14])
	}
	if h[14] != "top_cpu_1_pid" {
		t.Errorf("first process column: got %s, want top_cpu_1_pid", h[14])
	}
	if h[len(h)-1] != "top_disk_io_2_execution_time_s" {
		t.Errorf("last column: got %s", h[len(h)-1])
	}
}

func TestRowMatchesHeader(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		row := Row(testCycle(), n)
		if len(row) != len(Header(n)) {
			t.Errorf("n=%d: row has %d cells, header has %d", n, len(row), len(Header(n)))
		}
	}
}

func TestRowValues(t *testing.T) {
	row := Row(testCycle(), 2)
	checks := []struct {
		idx  int
		want string
	}{
		{0, "2026-08-23 10:30:00"},
		{1, "12.5"},
		{2, "10,15"},
		{8, "80"},
		{9, "45"},
		{10, "1"},
		{11, "2"},
		{13, "48.5"},
		{14, "42"},     // top_cpu_1_pid
		{15, "ffmpeg"}, // top_cpu_1_name
		{22, Sentinel}, // top_cpu_2_pid, only one process ranked
	}
	for _, c := range checks {
		if row[c.idx] != c.want {
			t.Errorf("cell %d: got %q, want %q", c.idx, row[c.idx], c.want)
		}
	}

	// Disk category is empty: every slot is the sentinel.
	diskStart := 14 + 2*2*8
	for i := diskStart; i < diskStart+2*8; i++ {
		if row[i] != Sentinel {
			t.Errorf("cell %d: got %q, want sentinel", i, row[i])
		}
	}
}

func TestRowNoValueTemperature(t *testing.T) {
	c := testCycle()
	c.Sample.CPU.TempC = model.Celsius{}
	row := Row(c, 1)
	if row[13] != Sentinel {
		t.Errorf("temp cell: got %q, want sentinel", row[13])
	}
}

func TestCSVEnsureSchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perf.csv")
	r := NewCSV(path, 3)

	if err := r.EnsureSchema(); err != nil {
		t.Fatalf("first EnsureSchema: %v", err)
	}
	if err := r.Append(testCycle()); err != nil {
		t.Fatalf("Append: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.EnsureSchema(); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("EnsureSchema modified an existing log")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perf.csv")
	r := NewCSV(path, 5)
	if err := r.EnsureSchema(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := r.Append(testCycle()); err != nil {
			t.Fatal(err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading log back: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header plus 3", len(rows))
	}
	for i, row := range rows[1:] {
		if len(row) != len(rows[0]) {
			t.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(rows[0]))
		}
	}
}

func TestSQLiteRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perf.db")
	r, err := NewSQLite(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := r.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema twice: %v", err)
	}
	if err := r.Append(testCycle()); err != nil {
		t.Fatalf("Append: %v", err)
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM samples").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %d rows, want 1", count)
	}
}
