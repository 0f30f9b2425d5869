package collector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"

	"rpimon-api/models"
)

// MountTable resolves filesystem types by mount point.
type MountTable interface {
	FSTypes(ctx context.Context) (map[string]string, error)
}

// HostInspector reports OS details of the host.
type HostInspector interface {
	HostInfo(ctx context.Context) (models.HostInfo, error)
}

type gopsutilMountTable struct{}

// NewMountTable returns a MountTable backed by the kernel mount list.
func NewMountTable() MountTable {
	return gopsutilMountTable{}
}

// FSTypes gathers the filesystem type of every mount, pseudo filesystems included
func (gopsutilMountTable) FSTypes(ctx context.Context) (map[string]string, error) {
	partitions, err := disk.PartitionsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	types := make(map[string]string, len(partitions))
	for _, p := range partitions {
		types[p.Mountpoint] = p.Fstype
	}
	return types, nil
}

type gopsutilHostInspector struct{}

// NewHostInspector returns a HostInspector backed by gopsutil.
func NewHostInspector() HostInspector {
	return gopsutilHostInspector{}
}

// HostInfo gathers OS, kernel, uptime and logical core count
func (gopsutilHostInspector) HostInfo(ctx context.Context) (models.HostInfo, error) {
	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return models.HostInfo{}, fmt.Errorf("reading host info: %w", err)
	}

	info := models.HostInfo{
		Hostname:        hostInfo.Hostname,
		OS:              hostInfo.OS,
		Platform:        hostInfo.Platform,
		PlatformVersion: hostInfo.PlatformVersion,
		Kernel:          hostInfo.KernelVersion,
		Arch:            hostInfo.KernelArch,
		Uptime:          hostInfo.Uptime,
		Cores:           -1,
	}

	if count, err := cpu.CountsWithContext(ctx, true); err == nil && count > 0 {
		info.Cores = count
	}

	return info, nil
}
