package collector

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rpimon-api/models"
)

// LoadPercentage converts a raw load figure into a percentage of all cores.
func LoadPercentage(load string, cores int) (float64, error) {
	if cores <= 0 {
		return float64(models.Unknown), fmt.Errorf("core count unavailable (%d)", cores)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(load), 64)
	if err != nil {
		return float64(models.Unknown), fmt.Errorf("parsing load %q: %w", load, err)
	}

	return v * 100 / float64(cores), nil
}

// ReadCPUInfo returns the 1, 5 and 15 minute load averages as percentages.
// A window that can't be computed stays at models.Unknown.
func (c *Collector) ReadCPUInfo() models.CPULoadAverages {
	avgs := models.NewCPULoadAverages()

	cores := c.proc.CPUCoreCount()
	loads := c.proc.CPULoadAverages()

	windows := []struct {
		key string
		dst *float64
	}{
		{"1m", &avgs.M1},
		{"5m", &avgs.M5},
		{"15m", &avgs.M15},
	}

	for _, w := range windows {
		raw, ok := loads[w.key]
		if !ok {
			c.logger.Warn("load average missing", zap.String("window", w.key))
			continue
		}

		pct, err := LoadPercentage(raw, cores)
		if err != nil {
			c.logger.Warn("couldn't format load average", zap.String("window", w.key), zap.Error(err))
			continue
		}
		*w.dst = pct
	}

	return avgs
}
