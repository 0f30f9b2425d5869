package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	. "rpimon-api/models"
)

var _ = Describe("MemoryInfo", func() {
	It("derives used from total and available", func() {
		m := NewMemoryInfo(945364*1024, 163000*1024, 717680*1024)
		Expect(m.Used).To(Equal(int64((945364 - 717680) * 1024)))
		Expect(m.Free).To(Equal(int64(163000 * 1024)))
	})

	It("keeps used unknown when both inputs are unknown", func() {
		m := NewMemoryInfo(Unknown, Unknown, Unknown)
		Expect(m.Used).To(Equal(Unknown))
	})

	It("keeps used unknown when one input is unknown", func() {
		Expect(NewMemoryInfo(1024, 0, Unknown).Used).To(Equal(Unknown))
		Expect(NewMemoryInfo(Unknown, 0, 1024).Used).To(Equal(Unknown))
	})

	It("recomputes used on update", func() {
		m := NewMemoryInfo(Unknown, Unknown, Unknown)
		m.SetTotalAvailable(4096, 1024)
		Expect(m.Used).To(Equal(int64(3072)))
	})

	It("converts every field to the requested unit", func() {
		m := NewMemoryInfo(4096, 2048, 1024)
		Expect(m.AsMap("kB")).To(Equal(map[string]any{
			"total": float64(4),
			"free":  float64(2),
			"ava":   float64(1),
			"used":  float64(3),
		}))
	})

	It("reports sentinels as -1 in any unit", func() {
		Expect(NewMemoryInfo(Unknown, Unknown, Unknown).AsMap("MB")).To(Equal(map[string]any{
			"total": float64(-1),
			"free":  float64(-1),
			"ava":   float64(-1),
			"used":  float64(-1),
		}))
	})
})

var _ = Describe("CPULoadAverages", func() {
	It("starts with every window unknown", func() {
		Expect(NewCPULoadAverages().AsMap()).To(Equal(map[string]any{
			"m1":  float64(-1),
			"m5":  float64(-1),
			"m15": float64(-1),
		}))
	})
})
