package collector

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rpimon-api/models"
)

// Collector turns raw kernel and command output into typed records. Every
// Read method runs its sub-reads sequentially and never fails: missing
// data is reported with models.Unknown or empty collections.
type Collector struct {
	proc     *ProcReader
	commands *Commands
	mounts   MountTable
	host     HostInspector
	logger   *zap.Logger
}

func NewCollector(proc *ProcReader, commands *Commands, mounts MountTable, host HostInspector, logger *zap.Logger) *Collector {
	return &Collector{
		proc:     proc,
		commands: commands,
		mounts:   mounts,
		host:     host,
		logger:   logger.Named("collector"),
	}
}

// ReadHostInfo gathers OS details. The core count from cpuinfo is
// preferred over the one reported by the host inspector.
func (c *Collector) ReadHostInfo(ctx context.Context) models.HostInfo {
	info, err := c.host.HostInfo(ctx)
	if err != nil {
		c.logger.Warn("reading host info", zap.Error(err))
		info = models.HostInfo{Cores: -1}
	}

	if cores := c.proc.CPUCoreCount(); cores > 0 {
		info.Cores = cores
	}

	return info
}

// CollectMetrics gathers every metric in one pass
func (c *Collector) CollectMetrics(ctx context.Context) *models.Snapshot {
	return &models.Snapshot{
		Timestamp:  time.Now(),
		Host:       c.ReadHostInfo(ctx),
		CPU:        c.ReadCPUInfo(),
		Memory:     c.ReadRAMInfo(),
		Disks:      c.ReadDisksInfo(ctx),
		Interfaces: c.ReadNetInfo(ctx),
	}
}
