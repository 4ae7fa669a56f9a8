package model

import "time"

// Sentinel is the textual no-value marker. The log and the display both
// use it for unfilled rank slots and failed lookups; a legitimate zero is
// always written as a number.
const Sentinel = "N/A"

// CPU aggregates instantaneous CPU usage.
type CPU struct {
	Total   float64   // percent 0-100
	PerCore []float64 // per-core percent
	TempC   Celsius
}

// Memory captures RAM usage in bytes for precision.
type Memory struct {
	UsedPercent    float64
	UsedBytes      uint64
	TotalBytes     uint64
	AvailableBytes uint64
	CachedBytes    uint64
}

// Disk holds root filesystem usage plus throughput measured over the
// sampling window.
type Disk struct {
	UsedPercent float64
	ReadBytesS  float64
	WriteBytesS float64
}

// Network holds throughput in decimal megabits per second.
type Network struct {
	SentMbps float64
	RecvMbps float64
}

// Celsius is a temperature reading that may be absent. A zero Value with
// Valid set is a legitimate reading; Valid unset means no sensor data.
type Celsius struct {
	Value float64
	Valid bool
}

// Sample is one full system reading for a single collection cycle.
// Immutable once built.
type Sample struct {
	Timestamp     time.Time
	CPU           CPU
	Memory        Memory
	Disk          Disk
	Net           Network
	UptimeSeconds float64
	BootTime      time.Time
}

// ProcessSnapshot is one process's counters at a point in time. Recomputed
// every cycle; processes that vanish mid-enumeration are simply absent.
type ProcessSnapshot struct {
	PID            int32
	Name           string
	CPUPercent     float64
	MemRSS         uint64
	MemVMS         uint64
	DiskReadBytes  uint64
	DiskWriteBytes uint64
	ExecutionSecs  float64
}

// DiskIOTotal is the combined read+write byte count, the disk ranking key.
func (p ProcessSnapshot) DiskIOTotal() uint64 {
	return p.DiskReadBytes + p.DiskWriteBytes
}

// TopN holds the three ranked process lists for one cycle, each at most N
// entries long.
type TopN struct {
	CPU    []ProcessSnapshot
	Memory []ProcessSnapshot
	DiskIO []ProcessSnapshot
}

// Cycle bundles everything one loop iteration produced.
type Cycle struct {
	Sample Sample
	Top    TopN
}
