package models_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "rpimon-api/models"
)

var _ = Describe("DeviceInfo", func() {
	var device *DeviceInfo

	BeforeEach(func() {
		device = NewDeviceInfo("/dev/sda")
		device.AddPartition(&PartitionInfo{MountPoint: "/", FSType: "ext4", Total: 4096, Used: 1024, Free: 3072})
		device.AddPartition(&PartitionInfo{MountPoint: "/boot", Total: 2048, Used: 1024, Free: 1024})
	})

	It("keys partitions by mount point", func() {
		Expect(device.Partitions).To(HaveLen(2))
		Expect(device.Partitions).To(HaveKey("/boot"))
	})

	It("replaces a partition mounted at the same point", func() {
		device.AddPartition(&PartitionInfo{MountPoint: "/boot", Total: 1})
		Expect(device.Partitions).To(HaveLen(2))
		Expect(device.Partitions["/boot"].Total).To(Equal(int64(1)))
	})

	It("converts partitions to the requested unit", func() {
		Expect(device.AsMap("kB")).To(Equal(map[string]any{
			"device": "/dev/sda",
			"partitions": map[string]any{
				"/": map[string]any{
					"mount_point": "/",
					"fs_type":     "ext4",
					"total":       float64(4),
					"used":        float64(1),
					"free":        float64(3),
				},
				"/boot": map[string]any{
					"mount_point": "/boot",
					"fs_type":     "",
					"total":       float64(2),
					"used":        float64(1),
					"free":        float64(1),
				},
			},
		}))
	})

	It("starts new partitions with unknown usage", func() {
		p := NewPartitionInfo("/data")
		Expect(p.Total).To(Equal(Unknown))
		Expect(p.AsMap("B")["used"]).To(Equal(float64(-1)))
	})
})

var _ = Describe("Snapshot", func() {
	It("nests every payload under its endpoint name", func() {
		s := &Snapshot{
			Timestamp:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			Host:       HostInfo{Hostname: "pi"},
			CPU:        NewCPULoadAverages(),
			Memory:     NewMemoryInfo(2048, 1024, 1024),
			Disks:      map[string]*DeviceInfo{"tmpfs": NewDeviceInfo("tmpfs")},
			Interfaces: map[string]*InterfaceInfo{"lo": NewInterfaceInfo(nil, nil)},
		}

		payload := s.AsMap("kB")
		Expect(payload).To(HaveKeyWithValue("timestamp", "2024-01-02T03:04:05Z"))
		Expect(payload).To(HaveKeyWithValue("unit", "kB"))
		Expect(payload["mem"]).To(HaveKeyWithValue("used", float64(1)))
		Expect(payload["disk"]).To(HaveKey("tmpfs"))
		Expect(payload["net"]).To(HaveKey("lo"))
	})
})
