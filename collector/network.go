package collector

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"rpimon-api/models"
)

// ReadNetInfo returns the counters of every interface, enriched with the
// wireless bit rate. Interfaces are queried one after another; when ctx is
// done the interfaces read so far are returned.
func (c *Collector) ReadNetInfo(ctx context.Context) map[string]*models.InterfaceInfo {
	ifaces := map[string]*models.InterfaceInfo{}

	raw := c.proc.NetworkInfo()

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("network collection interrupted",
				zap.Int("collected", len(ifaces)),
				zap.Int("total", len(names)),
				zap.Error(err),
			)
			break
		}

		extra := c.commands.WirelessLinkInfo(ctx, name)
		ifaces[name] = models.NewInterfaceInfo(raw[name], extra)
	}

	return ifaces
}
