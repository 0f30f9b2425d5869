package collector_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	. "rpimon-api/collector"
	"rpimon-api/models"
)

const netDevFixture = `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo:    8192      40    0    0    0     0          0         0     8192      40    0    0    0     0       0          0
  eth0: 1024 100 1 2 0 0 0 0 2048 200 3 4 0 0 0 0
 wlan0:123456789 5000 0 7 0 0 0 0 987654 4000 0 0 0 0 0 0
`

var _ = Describe("ProcReader", func() {
	var (
		root   string
		reader *ProcReader
	)

	BeforeEach(func() {
		root = newProcRoot()
		reader = NewProcReader(root, zap.NewNop())
	})

	Describe("CPUCoreCount", func() {
		It("counts processor entries", func() {
			writeProcFile(root, CPUInfoFile, `processor	: 0
model name	: ARMv7 Processor rev 4 (v7l)
BogoMIPS	: 38.40

processor	: 1
model name	: ARMv7 Processor rev 4 (v7l)

processor	: 2

processor	: 3
`)
			// "ARMv7 Processor" is capitalised and doesn't count
			Expect(reader.CPUCoreCount()).To(Equal(4))
		})

		It("returns -1 when the file is missing", func() {
			Expect(reader.CPUCoreCount()).To(Equal(-1))
		})

		It("returns -1 when no processor is listed", func() {
			writeProcFile(root, CPUInfoFile, "Hardware\t: BCM2835\n")
			Expect(reader.CPUCoreCount()).To(Equal(-1))
		})
	})

	Describe("CPULoadAverages", func() {
		It("returns the first three fields", func() {
			writeProcFile(root, LoadAvgFile, "0.52 0.58 0.59 1/389 12345\n")
			Expect(reader.CPULoadAverages()).To(Equal(map[string]string{
				"1m":  "0.52",
				"5m":  "0.58",
				"15m": "0.59",
			}))
		})

		It("tolerates repeated whitespace", func() {
			writeProcFile(root, LoadAvgFile, "1.00  2.00\t3.00 1/1 1")
			Expect(reader.CPULoadAverages()).To(HaveKeyWithValue("15m", "3.00"))
		})

		It("returns an empty map when the file is missing", func() {
			Expect(reader.CPULoadAverages()).To(BeEmpty())
		})

		It("returns an empty map when fields are missing", func() {
			writeProcFile(root, LoadAvgFile, "0.52 0.58\n")
			Expect(reader.CPULoadAverages()).To(BeEmpty())
		})
	})

	Describe("MemoryInfo", func() {
		It("reads the first three lines in bytes", func() {
			writeProcFile(root, MemInfoFile, `MemTotal:         945364 kB
MemFree:          163000 kB
MemAvailable:     717680 kB
Buffers:           42424 kB
`)
			Expect(reader.MemoryInfo()).To(Equal(map[string]int64{
				models.KeyMemTotal:     945364 * 1024,
				models.KeyMemFree:      163000 * 1024,
				models.KeyMemAvailable: 717680 * 1024,
			}))
		})

		It("marks lines that don't match as unknown", func() {
			writeProcFile(root, MemInfoFile, `MemTotal:         945364 kB
Buffers:           42424 kB
MemAvailable:     717680 MB
`)
			info := reader.MemoryInfo()
			Expect(info[models.KeyMemTotal]).To(Equal(int64(945364 * 1024)))
			Expect(info[models.KeyMemFree]).To(Equal(models.Unknown))
			Expect(info[models.KeyMemAvailable]).To(Equal(models.Unknown))
		})

		It("marks missing lines as unknown", func() {
			writeProcFile(root, MemInfoFile, "MemTotal:         945364 kB\n")
			Expect(reader.MemoryInfo()).To(HaveKeyWithValue(models.KeyMemAvailable, models.Unknown))
		})

		It("returns an empty map when the file is missing", func() {
			Expect(reader.MemoryInfo()).To(BeEmpty())
		})
	})

	Describe("NetworkInfo", func() {
		It("reads counters at fixed columns", func() {
			writeProcFile(root, NetDevFile, netDevFixture)

			info := reader.NetworkInfo()
			Expect(info).To(HaveLen(3))
			Expect(info["eth0"]).To(Equal(map[string]int64{
				models.KeyRxBytes: 1024, models.KeyRxPackets: 100, models.KeyRxErrors: 1, models.KeyRxDrops: 2,
				models.KeyTxBytes: 2048, models.KeyTxPackets: 200, models.KeyTxErrors: 3, models.KeyTxDrops: 4,
			}))
		})

		It("splits a name glued to its first counter", func() {
			writeProcFile(root, NetDevFile, netDevFixture)
			Expect(reader.NetworkInfo()["wlan0"]).To(HaveKeyWithValue(models.KeyRxBytes, int64(123456789)))
		})

		It("skips lines that can't be parsed", func() {
			writeProcFile(root, NetDevFile, `header one
header two
  eth0: 1024 100 1 2 0 0 0 0 2048 200 3 4 0 0 0 0
  bad line without separator
 short: 1 2 3
 nan0: x 100 1 2 0 0 0 0 2048 200 3 4 0 0 0 0
`)
			info := reader.NetworkInfo()
			Expect(info).To(HaveLen(1))
			Expect(info).To(HaveKey("eth0"))
			Expect(info).ToNot(HaveKey(""))
		})

		It("returns an empty map when the file is missing", func() {
			Expect(reader.NetworkInfo()).To(BeEmpty())
		})
	})
})
