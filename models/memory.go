package models

// Keys produced by the meminfo reader.
const (
	KeyMemTotal     = "mem_total"
	KeyMemFree      = "mem_free"
	KeyMemAvailable = "mem_ava"
)

// MemoryInfo holds RAM stats in bytes.
type MemoryInfo struct {
	Total     int64 `json:"total"`
	Free      int64 `json:"free"`
	Available int64 `json:"ava"`
	Used      int64 `json:"used"`
}

// NewMemoryInfo builds a MemoryInfo with Used derived from total and available.
func NewMemoryInfo(total, free, available int64) MemoryInfo {
	m := MemoryInfo{Free: free}
	m.SetTotalAvailable(total, available)
	return m
}

// SetTotalAvailable updates total and available together and recomputes
// Used. Used is Unknown unless both inputs are known.
func (m *MemoryInfo) SetTotalAvailable(total, available int64) {
	m.Total = total
	m.Available = available
	m.Used = Unknown
	if Known(total) && Known(available) {
		m.Used = total - available
	}
}

// AsMap converts the memory stats to the API payload in the given unit
func (m MemoryInfo) AsMap(unit string) map[string]any {
	return map[string]any{
		"total": AsUnit(m.Total, unit),
		"free":  AsUnit(m.Free, unit),
		"ava":   AsUnit(m.Available, unit),
		"used":  AsUnit(m.Used, unit),
	}
}
