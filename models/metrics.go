package models

import "time"

// Snapshot is every metric collected in one pass.
type Snapshot struct {
	Timestamp  time.Time
	Host       HostInfo
	CPU        CPULoadAverages
	Memory     MemoryInfo
	Disks      map[string]*DeviceInfo
	Interfaces map[string]*InterfaceInfo
}

// AsMap converts the snapshot to the API payload, byte values in unit.
func (s *Snapshot) AsMap(unit string) map[string]any {
	disks := make(map[string]any, len(s.Disks))
	for name, d := range s.Disks {
		disks[name] = d.AsMap(unit)
	}

	ifaces := make(map[string]any, len(s.Interfaces))
	for name, i := range s.Interfaces {
		ifaces[name] = i.AsMap(unit)
	}

	return map[string]any{
		"timestamp": s.Timestamp.UTC().Format(time.RFC3339),
		"unit":      unit,
		"host":      s.Host,
		"cpu":       s.CPU.AsMap(),
		"mem":       s.Memory.AsMap(unit),
		"disk":      disks,
		"net":       ifaces,
	}
}
