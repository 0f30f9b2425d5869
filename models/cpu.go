package models

// CPULoadAverages holds load averages as a percentage of all cores.
type CPULoadAverages struct {
	M1  float64 `json:"m1"`
	M5  float64 `json:"m5"`
	M15 float64 `json:"m15"`
}

// NewCPULoadAverages returns averages with every window unknown.
func NewCPULoadAverages() CPULoadAverages {
	return CPULoadAverages{
		M1:  float64(Unknown),
		M5:  float64(Unknown),
		M15: float64(Unknown),
	}
}

// AsMap converts the averages to the API payload
func (c CPULoadAverages) AsMap() map[string]any {
	return map[string]any{
		"m1":  c.M1,
		"m5":  c.M5,
		"m15": c.M15,
	}
}
