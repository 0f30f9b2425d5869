package models

// PartitionInfo holds usage of one mounted filesystem, in bytes.
type PartitionInfo struct {
	MountPoint string `json:"mount_point"`
	FSType     string `json:"fs_type"`
	Total      int64  `json:"total"`
	Used       int64  `json:"used"`
	Free       int64  `json:"free"`
}

// NewPartitionInfo returns a partition with unknown usage.
func NewPartitionInfo(mountPoint string) *PartitionInfo {
	return &PartitionInfo{
		MountPoint: mountPoint,
		Total:      Unknown,
		Used:       Unknown,
		Free:       Unknown,
	}
}

func (p *PartitionInfo) AsMap(unit string) map[string]any {
	return map[string]any{
		"mount_point": p.MountPoint,
		"fs_type":     p.FSType,
		"total":       AsUnit(p.Total, unit),
		"used":        AsUnit(p.Used, unit),
		"free":        AsUnit(p.Free, unit),
	}
}

// DeviceInfo groups the partitions of one base device by mount point.
type DeviceInfo struct {
	Device     string                    `json:"device"`
	Partitions map[string]*PartitionInfo `json:"partitions"`
}

func NewDeviceInfo(device string) *DeviceInfo {
	return &DeviceInfo{
		Device:     device,
		Partitions: map[string]*PartitionInfo{},
	}
}

// AddPartition stores p under its mount point, replacing any previous entry.
func (d *DeviceInfo) AddPartition(p *PartitionInfo) {
	d.Partitions[p.MountPoint] = p
}

func (d *DeviceInfo) AsMap(unit string) map[string]any {
	partitions := make(map[string]any, len(d.Partitions))
	for mount, p := range d.Partitions {
		partitions[mount] = p.AsMap(unit)
	}

	return map[string]any{
		"device":     d.Device,
		"partitions": partitions,
	}
}
