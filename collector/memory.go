package collector

import (
	"go.uber.org/zap"

	"rpimon-api/models"
)

// ReadRAMInfo returns memory usage in bytes. Used is only known when both
// total and available are.
func (c *Collector) ReadRAMInfo() models.MemoryInfo {
	raw := c.proc.MemoryInfo()

	get := func(key string) int64 {
		v, ok := raw[key]
		if !ok {
			c.logger.Debug("memory field missing", zap.String("field", key))
			return models.Unknown
		}
		return v
	}

	return models.NewMemoryInfo(
		get(models.KeyMemTotal),
		get(models.KeyMemFree),
		get(models.KeyMemAvailable),
	)
}
