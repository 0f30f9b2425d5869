package collector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rpimon-api/models"
)

// ErrCommandNotAllowed is returned for commands rejected by the policy.
var ErrCommandNotAllowed = errors.New("command not allowed")

// CommandPolicy limits how an allowed command may be invoked.
type CommandPolicy struct {
	// MaxArgs is the maximum number of arguments, -1 for no limit.
	MaxArgs int
}

// AllowedCommands is the fixed table of read-only utilities that may run.
var AllowedCommands = map[string]CommandPolicy{
	"ls":       {MaxArgs: -1},
	"df":       {MaxArgs: -1},
	"iwconfig": {MaxArgs: 1},
}

// ForbiddenSyntax lists shell metacharacters that are never accepted.
var ForbiddenSyntax = []string{";", "&&", "||", "`", "$", "(", ")", "{", "}", "<", ">"}

var bitRateRe = regexp.MustCompile(`Bit Rate[=:]([\d.]+ [MG]b/s)`)

// ValidateCommand checks command against AllowedCommands and
// ForbiddenSyntax. It never runs anything.
func ValidateCommand(command string) error {
	for _, s := range ForbiddenSyntax {
		if strings.Contains(command, s) {
			return fmt.Errorf("%w: %q contains %q", ErrCommandNotAllowed, command, s)
		}
	}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty command", ErrCommandNotAllowed)
	}

	policy, ok := AllowedCommands[fields[0]]
	if !ok {
		return fmt.Errorf("%w: %q is not in the allow-list", ErrCommandNotAllowed, fields[0])
	}
	if policy.MaxArgs >= 0 && len(fields)-1 > policy.MaxArgs {
		return fmt.Errorf("%w: %q takes at most %d argument(s)", ErrCommandNotAllowed, fields[0], policy.MaxArgs)
	}

	return nil
}

// DiskUsageRow is one filesystem line of df output, sizes in bytes.
type DiskUsageRow struct {
	Total int64
	Used  int64
	Free  int64
	Mount string
}

// Commands runs the allow-listed utilities and parses their output.
type Commands struct {
	runner CmdRunner
	logger *zap.Logger
}

func NewCommands(runner CmdRunner, logger *zap.Logger) *Commands {
	return &Commands{
		runner: runner,
		logger: logger.Named("commands"),
	}
}

// Exec validates and runs command, returning its stdout. Rejected or
// failed commands are logged and reported as not ok.
func (c *Commands) Exec(ctx context.Context, command string) (string, bool) {
	if err := ValidateCommand(command); err != nil {
		c.logger.Error("command rejected", zap.String("command", command), zap.Error(err))
		return "", false
	}

	fields := strings.Fields(command)
	stdout, _, _, err := c.runner.RunCommand(ctx, fields[0], fields[1:]...)
	if err != nil {
		// df exits non-zero when a single mount can't be read but still
		// reports the others
		var execErr *ExecError
		if errors.As(err, &execErr) && execErr.ExitStatus > 0 && stdout != "" && ctx.Err() == nil {
			c.logger.Warn("command exited with errors", zap.String("command", command), zap.Error(err))
			return stdout, true
		}

		c.logger.Error("executing command", zap.String("command", command), zap.Error(err))
		return "", false
	}

	return stdout, true
}

// DiskUsage runs df and returns its rows keyed by device.
func (c *Commands) DiskUsage(ctx context.Context) map[string]DiskUsageRow {
	rows := map[string]DiskUsageRow{}

	output, ok := c.Exec(ctx, "df")
	if !ok {
		return rows
	}

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		// header
		if i == 0 {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		device, row, err := parseDfLine(line)
		if err != nil {
			c.logger.Warn("skipping df line", zap.String("line", line), zap.Error(err))
			continue
		}
		rows[device] = row
	}

	return rows
}

// parseDfLine reads "device 1K-blocks used available use% mount".
func parseDfLine(line string) (string, DiskUsageRow, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return "", DiskUsageRow{}, fmt.Errorf("expected 6 fields, got %d", len(fields))
	}

	var sizes [3]int64
	for i := range sizes {
		kb, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil {
			return "", DiskUsageRow{}, fmt.Errorf("parsing column %d: %w", i+1, err)
		}
		sizes[i] = kb * 1024
	}

	return fields[0], DiskUsageRow{
		Total: sizes[0],
		Used:  sizes[1],
		Free:  sizes[2],
		Mount: strings.Join(fields[5:], " "),
	}, nil
}

// WirelessLinkInfo runs iwconfig for iface and returns its bit rate under
// models.KeyBitRate, or an empty map when none is reported.
func (c *Commands) WirelessLinkInfo(ctx context.Context, iface string) map[string]string {
	info := map[string]string{}
	if strings.TrimSpace(iface) == "" {
		return info
	}

	output, ok := c.Exec(ctx, "iwconfig "+iface)
	if !ok {
		return info
	}

	for _, line := range strings.Split(output, "\n") {
		if match := bitRateRe.FindStringSubmatch(line); match != nil {
			info[models.KeyBitRate] = match[1]
		}
	}

	return info
}
