package collector

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rpimon-api/models"
)

// Kernel pseudo-files, relative to the reader root.
const (
	CPUInfoFile = "proc/cpuinfo"
	LoadAvgFile = "proc/loadavg"
	MemInfoFile = "proc/meminfo"
	NetDevFile  = "proc/net/dev"
)

// netDevHeaderLines is the number of column header lines in /proc/net/dev
const netDevHeaderLines = 2

var memLineRe = regexp.MustCompile(`^Mem[A-Za-z]+:\s*(\d+) kB$`)

// netDevColumns maps counter keys to their column in a /proc/net/dev row,
// with the interface name at index 0.
var netDevColumns = []struct {
	key    string
	column int
}{
	{models.KeyRxBytes, 1},
	{models.KeyRxPackets, 2},
	{models.KeyRxErrors, 3},
	{models.KeyRxDrops, 4},
	{models.KeyTxBytes, 9},
	{models.KeyTxPackets, 10},
	{models.KeyTxErrors, 11},
	{models.KeyTxDrops, 12},
}

// ProcReader parses kernel pseudo-files. It never returns errors: failures
// are logged and reported as sentinels or empty results.
type ProcReader struct {
	root   string
	logger *zap.Logger
}

// NewProcReader reads pseudo-files below root, "/" when empty.
func NewProcReader(root string, logger *zap.Logger) *ProcReader {
	if root == "" {
		root = "/"
	}
	return &ProcReader{
		root:   root,
		logger: logger.Named("procfs"),
	}
}

func (r *ProcReader) path(file string) string {
	return filepath.Join(r.root, file)
}

// CPUCoreCount counts processor entries in cpuinfo, -1 when none are found.
func (r *ProcReader) CPUCoreCount() int {
	path := r.path(CPUInfoFile)

	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("can't open cpu info file", zap.String("path", path), zap.Error(err))
		return -1
	}
	defer f.Close()

	cores := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "processor") {
			cores++
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn("reading cpu info file", zap.String("path", path), zap.Error(err))
	}

	if cores == 0 {
		return -1
	}

	r.logger.Debug("detected cpu cores", zap.Int("cores", cores))
	return cores
}

// CPULoadAverages returns the raw 1m, 5m and 15m load figures.
func (r *ProcReader) CPULoadAverages() map[string]string {
	path := r.path(LoadAvgFile)
	loads := map[string]string{}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("can't read load average file", zap.String("path", path), zap.Error(err))
		return loads
	}

	line, _, _ := strings.Cut(string(data), "\n")
	fields := strings.Fields(line)
	if len(fields) < 3 {
		r.logger.Warn("unexpected load average format", zap.String("line", line))
		return loads
	}

	loads["1m"] = fields[0]
	loads["5m"] = fields[1]
	loads["15m"] = fields[2]
	return loads
}

// MemoryInfo returns total, free and available memory in bytes. The first
// three meminfo lines are read in that order; a line that doesn't match
// yields models.Unknown for its field.
func (r *ProcReader) MemoryInfo() map[string]int64 {
	path := r.path(MemInfoFile)

	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("can't open memory info file", zap.String("path", path), zap.Error(err))
		return map[string]int64{}
	}
	defer f.Close()

	info := map[string]int64{}
	scanner := bufio.NewScanner(f)
	for _, key := range []string{models.KeyMemTotal, models.KeyMemFree, models.KeyMemAvailable} {
		line := ""
		if scanner.Scan() {
			line = scanner.Text()
		}
		info[key] = r.parseMemLine(line)
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn("reading memory info file", zap.String("path", path), zap.Error(err))
	}

	return info
}

func (r *ProcReader) parseMemLine(line string) int64 {
	match := memLineRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if match == nil {
		r.logger.Warn("unexpected memory info line", zap.String("line", line))
		return models.Unknown
	}

	kb, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		r.logger.Error("converting memory info", zap.String("value", match[1]), zap.Error(err))
		return models.Unknown
	}
	return kb * 1024
}

// NetworkInfo returns the counters of every interface in /proc/net/dev.
// Lines that can't be parsed are logged and skipped.
func (r *ProcReader) NetworkInfo() map[string]map[string]int64 {
	path := r.path(NetDevFile)
	ifaces := map[string]map[string]int64{}

	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("can't open network device file", zap.String("path", path), zap.Error(err))
		return ifaces
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for lineNo := 0; scanner.Scan(); lineNo++ {
		if lineNo < netDevHeaderLines {
			continue
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, counters, err := parseNetDevLine(line)
		if err != nil {
			r.logger.Warn("skipping network device line", zap.String("line", line), zap.Error(err))
			continue
		}
		ifaces[name] = counters
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn("reading network device file", zap.String("path", path), zap.Error(err))
	}

	return ifaces
}

// parseNetDevLine splits "  eth0: 1024 100 ..." into the interface name
// and its counters. The name may be glued to the first counter ("eth0:1024").
func parseNetDevLine(line string) (string, map[string]int64, error) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", nil, fmt.Errorf("missing interface separator")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("empty interface name")
	}

	fields := append([]string{name}, strings.Fields(rest)...)
	last := netDevColumns[len(netDevColumns)-1].column
	if len(fields) <= last {
		return "", nil, fmt.Errorf("expected at least %d fields, got %d", last+1, len(fields))
	}

	counters := make(map[string]int64, len(netDevColumns))
	for _, col := range netDevColumns {
		v, err := strconv.ParseInt(fields[col.column], 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("parsing %s: %w", col.key, err)
		}
		counters[col.key] = v
	}

	return name, counters, nil
}
