package sampler

import (
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"spmon/internal/model"
)

// Sampler runs one collection cycle at a time: system-wide counters, rate
// deltas over a fixed measurement window, and a snapshot of every live
// process. All "since last call" baselines live here, not in package state.
type Sampler struct {
	window time.Duration

	prevTotal float64
	prevIdle  float64
	prevCore  []cpu.TimesStat

	prevProcCPU map[int32]float64
	lastProcAt  time.Time

	rootPath string
}

func New() *Sampler {
	return &Sampler{
		window:      time.Second,
		prevProcCPU: make(map[int32]float64),
		rootPath:    "/",
	}
}

// Window is the blocking measurement interval inside each Collect call.
func (s *Sampler) Window() time.Duration { return s.window }

// Prime takes the first CPU baseline. The reading it produces is
// meaningless and discarded; every later Collect measures against it.
func (s *Sampler) Prime() {
	s.cpuPercents()
	s.lastProcAt = time.Now()
}

// Collect performs one full cycle. It blocks for the measurement window
// while disk and network counters accumulate.
func (s *Sampler) Collect() (model.Sample, []model.ProcessSnapshot, error) {
	before := s.readCounters()
	time.Sleep(s.window)
	after := s.readCounters()
	rates := deltaRates(before, after, s.window)

	total, perCore := s.cpuPercents()

	sample := model.Sample{
		Timestamp: time.Now(),
		CPU: model.CPU{
			Total:   total,
			PerCore: perCore,
			TempC:   s.temperature(),
		},
		Disk: model.Disk{
			ReadBytesS:  rates.DiskReadBytesS,
			WriteBytesS: rates.DiskWriteBytesS,
		},
		Net: model.Network{
			SentMbps: rates.NetSentMbps,
			RecvMbps: rates.NetRecvMbps,
		},
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		sample.Memory = model.Memory{
			UsedPercent:    vm.UsedPercent,
			UsedBytes:      vm.Used,
			TotalBytes:     vm.Total,
			AvailableBytes: vm.Available,
			CachedBytes:    vm.Cached,
		}
	}
	if du, err := disk.Usage(s.rootPath); err == nil {
		sample.Disk.UsedPercent = du.UsedPercent
	}
	if boot, err := host.BootTime(); err == nil {
		sample.BootTime = time.Unix(int64(boot), 0)
		sample.UptimeSeconds = time.Since(sample.BootTime).Seconds()
	}

	procs, err := s.processSnapshots()
	if err != nil {
		return model.Sample{}, nil, fmt.Errorf("enumerating processes: %w", err)
	}
	return sample, procs, nil
}

// counterSnapshot is one point-in-time read of the cumulative disk and
// network byte counters.
type counterSnapshot struct {
	DiskRead  uint64
	DiskWrite uint64
	NetSent   uint64
	NetRecv   uint64
}

// rateSet holds the per-window throughput derived from two snapshots.
type rateSet struct {
	DiskReadBytesS  float64
	DiskWriteBytesS float64
	NetSentMbps     float64
	NetRecvMbps     float64
}

func (s *Sampler) readCounters() counterSnapshot {
	var snap counterSnapshot
	if counters, err := disk.IOCounters(); err == nil {
		for name, st := range counters {
			if strings.HasPrefix(name, "loop") {
				continue
			}
			snap.DiskRead += st.ReadBytes
			snap.DiskWrite += st.WriteBytes
		}
	}
	if counters, err := net.IOCounters(false); err == nil && len(counters) > 0 {
		snap.NetSent = counters[0].BytesSent
		snap.NetRecv = counters[0].BytesRecv
	}
	return snap
}

// deltaRates turns two counter snapshots taken window apart into byte and
// megabit rates. Network rates are decimal megabits: bytes*8 / 1e6.
func deltaRates(before, after counterSnapshot, window time.Duration) rateSet {
	secs := window.Seconds()
	if secs <= 0 {
		secs = 1
	}
	var r rateSet
	if after.DiskRead >= before.DiskRead {
		r.DiskReadBytesS = float64(after.DiskRead-before.DiskRead) / secs
	}
	if after.DiskWrite >= before.DiskWrite {
		r.DiskWriteBytesS = float64(after.DiskWrite-before.DiskWrite) / secs
	}
	if after.NetSent >= before.NetSent {
		r.NetSentMbps = float64(after.NetSent-before.NetSent) * 8 / 1e6 / secs
	}
	if after.NetRecv >= before.NetRecv {
		r.NetRecvMbps = float64(after.NetRecv-before.NetRecv) * 8 / 1e6 / secs
	}
	return r
}

// CPU percentages from times deltas. The first call after construction has
// no baseline and reports zero; callers prime once and discard.
func (s *Sampler) cpuPercents() (total float64, perCore []float64) {
	times, _ := cpu.Times(false)
	if len(times) == 0 {
		return 0, nil
	}
	cur := times[0]
	curTotal := cur.Total()
	curIdle := cur.Idle + cur.Iowait
	if s.prevTotal > 0 {
		dt := curTotal - s.prevTotal
		di := curIdle - s.prevIdle
		if dt > 0 {
			total = 100 * (1 - di/dt)
		}
	}
	s.prevTotal, s.prevIdle = curTotal, curIdle

	coreTimes, _ := cpu.Times(true)
	perCore = make([]float64, len(coreTimes))
	for i, c := range coreTimes {
		if i >= len(s.prevCore) {
			perCore[i] = 0
			continue
		}
		prev := s.prevCore[i]
		dt := c.Total() - prev.Total()
		di := (c.Idle + c.Iowait) - (prev.Idle + prev.Iowait)
		if dt > 0 {
			perCore[i] = 100 * (1 - di/dt)
		}
	}
	s.prevCore = coreTimes
	return
}

func (s *Sampler) temperature() model.Celsius {
	stats, err := host.SensorsTemperatures()
	if err != nil && len(stats) == 0 {
		return model.Celsius{}
	}
	return pickTemperature(stats)
}

// pickTemperature prefers a coretemp-style sensor and otherwise falls back
// to the first reading the host exposes. The fallback may well be a
// chipset or battery sensor; that mirrors the tools this log is consumed
// with and is not a promise of CPU-ness.
func pickTemperature(stats []host.TemperatureStat) model.Celsius {
	for _, st := range stats {
		if strings.Contains(st.SensorKey, "coretemp") {
			return model.Celsius{Value: st.Temperature, Valid: true}
		}
	}
	for _, st := range stats {
		if strings.Contains(strings.ToLower(st.SensorKey), "core") {
			return model.Celsius{Value: st.Temperature, Valid: true}
		}
	}
	if len(stats) > 0 {
		return model.Celsius{Value: stats[0].Temperature, Valid: true}
	}
	return model.Celsius{}
}

// processSnapshots reads counters for every live process. A process that
// exits, denies access, or is a zombie while we read it is skipped.
func (s *Sampler) processSnapshots() ([]model.ProcessSnapshot, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	elapsed := now.Sub(s.lastProcAt).Seconds()
	s.lastProcAt = now

	nextCPU := make(map[int32]float64, len(procs))
	snaps := make([]model.ProcessSnapshot, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}

		snap := model.ProcessSnapshot{PID: p.Pid, Name: name}

		if t, err := p.Times(); err == nil {
			busy := t.Total() - t.Idle
			if prev, ok := s.prevProcCPU[p.Pid]; ok && elapsed > 0 && busy >= prev {
				snap.CPUPercent = (busy - prev) / elapsed * 100
			}
			nextCPU[p.Pid] = busy
		}
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			snap.MemRSS = mi.RSS
			snap.MemVMS = mi.VMS
		}
		if io, err := p.IOCounters(); err == nil && io != nil {
			snap.DiskReadBytes = io.ReadBytes
			snap.DiskWriteBytes = io.WriteBytes
		}
		created, err := p.CreateTime()
		if err != nil {
			continue
		}
		// Clock re-read per process; a few ms of skew across one cycle
		// is acceptable.
		snap.ExecutionSecs = float64(time.Now().UnixMilli()-created) / 1000

		snaps = append(snaps, snap)
	}
	s.prevProcCPU = nextCPU
	return snaps, nil
}
