package collector

import (
	"os"
	"sort"

	"go.uber.org/zap"
)

// Capabilities records which data sources are present on the host.
type Capabilities struct {
	Files    map[string]bool
	Commands map[string]bool
}

// DetectCapabilities checks the pseudo-files below the reader root and the
// allow-listed commands, logging a summary line per source.
func DetectCapabilities(proc *ProcReader, runner CmdRunner, logger *zap.Logger) Capabilities {
	caps := Capabilities{
		Files:    map[string]bool{},
		Commands: map[string]bool{},
	}

	files := []string{CPUInfoFile, LoadAvgFile, MemInfoFile, NetDevFile}
	for _, file := range files {
		caps.Files[file] = fileExists(proc.path(file))
	}

	names := make([]string, 0, len(AllowedCommands))
	for name := range AllowedCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		caps.Commands[name] = runner.CommandExists(name)
	}

	logger = logger.Named("detect")
	for _, file := range files {
		logCap(logger, "file", file, caps.Files[file])
	}
	for _, name := range names {
		logCap(logger, "command", name, caps.Commands[name])
	}

	return caps
}

func logCap(logger *zap.Logger, kind, name string, available bool) {
	if available {
		logger.Info("source available", zap.String("kind", kind), zap.String("name", name))
		return
	}
	logger.Warn("source unavailable", zap.String("kind", kind), zap.String("name", name))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
