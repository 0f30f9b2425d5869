package collector

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"rpimon-api/models"
)

var baseDeviceRe = regexp.MustCompile(`^(/dev/\D+)`)

// BaseDeviceName strips the partition suffix from a /dev path, so
// /dev/sda1 becomes /dev/sda. Other names are returned unchanged.
func BaseDeviceName(device string) string {
	if match := baseDeviceRe.FindStringSubmatch(device); match != nil {
		return match[1]
	}
	return device
}

// ReadDisksInfo returns df usage grouped by base device, each device
// holding its partitions keyed by mount point.
func (c *Collector) ReadDisksInfo(ctx context.Context) map[string]*models.DeviceInfo {
	devices := map[string]*models.DeviceInfo{}

	rows := c.commands.DiskUsage(ctx)
	if len(rows) == 0 {
		return devices
	}

	fsTypes, err := c.mounts.FSTypes(ctx)
	if err != nil {
		c.logger.Warn("filesystem types unavailable", zap.Error(err))
	}

	for device, row := range rows {
		base := BaseDeviceName(device)

		d, ok := devices[base]
		if !ok {
			d = models.NewDeviceInfo(base)
			devices[base] = d
		}

		d.AddPartition(&models.PartitionInfo{
			MountPoint: row.Mount,
			FSType:     fsTypes[row.Mount],
			Total:      row.Total,
			Used:       row.Used,
			Free:       row.Free,
		})
	}

	return devices
}
