// Package counters снимает показания счётчиков производительности хоста через gopsutil.
package counters

import (
	"context"
	"math"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/models"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Имена статистик, которые агент отправляет коллектору.
const (
	CPUUsagePercentage    = "cpu_usage_percentage"
	AvailableMemoryMBytes = "available_memory_mbytes"
	DiskReadBPS           = "disk_read_bps"
	DiskWriteBPS          = "disk_write_bps"
	ProcessCount          = "process_count"
	ThreadCount           = "thread_count"
)

const bytesInMB = 1024 * 1024

// Source — системные вызовы, из которых складываются показания.
type Source interface {
	CPUPercent(ctx context.Context) (float64, error)
	AvailableMemory(ctx context.Context) (uint64, error)
	DiskIO(ctx context.Context) (readBytes, writeBytes uint64, err error)
	Processes(ctx context.Context) (procs, threads int64, err error)
}

// HostSource читает счётчики текущего хоста.
type HostSource struct{}

func (HostSource) CPUPercent(ctx context.Context) (float64, error) {
	values, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return math.NaN(), nil
	}
	return values[0], nil
}

func (HostSource) AvailableMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

func (HostSource) DiskIO(ctx context.Context) (readBytes, writeBytes uint64, err error) {
	stats, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, s := range stats {
		readBytes += s.ReadBytes
		writeBytes += s.WriteBytes
	}
	return readBytes, writeBytes, nil
}

func (HostSource) Processes(ctx context.Context) (procs, threads int64, err error) {
	list, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, p := range list {
		// процесс мог завершиться между перечислением и запросом
		n, err := p.NumThreadsWithContext(ctx)
		if err != nil {
			continue
		}
		threads += int64(n)
	}
	return int64(len(list)), threads, nil
}

type diskSnapshot struct {
	read, write uint64
	at          time.Time
}

// Reader собирает показания в пакет для отправки.
// Скорости диска считаются по разности с предыдущим замером, поэтому Reader хранит состояние
// и не предназначен для одновременного использования из нескольких горутин.
type Reader struct {
	source  Source
	now     func() time.Time
	prev    diskSnapshot
	hasPrev bool
}

// NewReader создаёт Reader. Если source равен nil, используется HostSource.
func NewReader(source Source) *Reader {
	if source == nil {
		source = HostSource{}
	}
	return &Reader{source: source, now: time.Now}
}

// Read снимает показания всех счётчиков. Ошибка отдельного счётчика не прерывает замер:
// значение помечается качеством QualityError.
func (r *Reader) Read(ctx context.Context, machine string) models.StatsSample {
	now := r.now()
	sample := models.StatsSample{
		Time:         now.UnixMilli(),
		Machine:      machine,
		StatsFloat32: make([]models.StatEntryFloat32, 0, 4),
		StatsInt32:   make([]models.StatEntryInt32, 0, 2),
	}

	cpuPct, err := r.source.CPUPercent(ctx)
	sample.StatsFloat32 = append(sample.StatsFloat32, floatEntry(CPUUsagePercentage, cpuPct, err))

	avail, err := r.source.AvailableMemory(ctx)
	sample.StatsFloat32 = append(sample.StatsFloat32, floatEntry(AvailableMemoryMBytes, float64(avail)/bytesInMB, err))

	readBPS, writeBPS := r.diskRates(ctx, now)
	sample.StatsFloat32 = append(sample.StatsFloat32, readBPS, writeBPS)

	procs, threads, err := r.source.Processes(ctx)
	sample.StatsInt32 = append(sample.StatsInt32,
		intEntry(ProcessCount, procs, err),
		intEntry(ThreadCount, threads, err),
	)

	return sample
}

func (r *Reader) diskRates(ctx context.Context, now time.Time) (models.StatEntryFloat32, models.StatEntryFloat32) {
	read, write, err := r.source.DiskIO(ctx)
	if err != nil {
		r.hasPrev = false
		return floatEntry(DiskReadBPS, 0, err), floatEntry(DiskWriteBPS, 0, err)
	}

	prev, hadPrev := r.prev, r.hasPrev
	r.prev = diskSnapshot{read: read, write: write, at: now}
	r.hasPrev = true

	elapsed := now.Sub(prev.at).Seconds()
	if !hadPrev || elapsed <= 0 {
		return invalidFloat(DiskReadBPS), invalidFloat(DiskWriteBPS)
	}
	return rateEntry(DiskReadBPS, prev.read, read, elapsed), rateEntry(DiskWriteBPS, prev.write, write, elapsed)
}

func rateEntry(name string, prev, cur uint64, elapsed float64) models.StatEntryFloat32 {
	// счётчик сбросился, например после переподключения диска
	if cur < prev {
		return invalidFloat(name)
	}
	return floatEntry(name, float64(cur-prev)/elapsed, nil)
}

func floatEntry(name string, v float64, err error) models.StatEntryFloat32 {
	switch {
	case err != nil:
		return models.StatEntryFloat32{StatName: name, Quality: models.QualityError}
	case math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxFloat32:
		return invalidFloat(name)
	}
	return models.StatEntryFloat32{StatName: name, StatValue: float32(v), Quality: models.QualityGood}
}

func invalidFloat(name string) models.StatEntryFloat32 {
	return models.StatEntryFloat32{StatName: name, Quality: models.QualityInvalid}
}

func intEntry(name string, v int64, err error) models.StatEntryInt32 {
	switch {
	case err != nil:
		return models.StatEntryInt32{StatName: name, Quality: models.QualityError}
	case v < 0 || v > math.MaxInt32:
		return models.StatEntryInt32{StatName: name, Quality: models.QualityInvalid}
	}
	return models.StatEntryInt32{StatName: name, StatValue: int32(v), Quality: models.QualityGood}
}
