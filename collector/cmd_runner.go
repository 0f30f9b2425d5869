package collector

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// CmdRunner runs external commands without a shell.
type CmdRunner interface {
	// RunCommand returns a nil error only when the command exits with status 0.
	RunCommand(ctx context.Context, cmdName string, args ...string) (stdout, stderr string, exitStatus int, err error)

	CommandExists(cmdName string) bool
}

// ExecError is returned when a command ran but did not succeed.
type ExecError struct {
	Command    string
	Stdout     string
	Stderr     string
	ExitStatus int
	Err        error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("running command '%s' (exit %d): %v, stderr: '%s'",
		e.Command, e.ExitStatus, e.Err, strings.TrimSpace(e.Stderr))
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

type execCmdRunner struct {
	logger *zap.Logger
}

// NewExecCmdRunner returns a CmdRunner backed by os/exec. Commands are
// killed when ctx is done.
func NewExecCmdRunner(logger *zap.Logger) CmdRunner {
	return execCmdRunner{logger: logger.Named("cmd-runner")}
}

func (r execCmdRunner) RunCommand(ctx context.Context, cmdName string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, cmdName, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	cmdString := strings.Join(cmd.Args, " ")
	r.logger.Debug("running command", zap.String("command", cmdString))

	err := cmd.Run()

	exitStatus := -1
	if cmd.ProcessState != nil {
		exitStatus = cmd.ProcessState.ExitCode()
	}
	r.logger.Debug("command finished",
		zap.String("command", cmdString),
		zap.Int("exit_status", exitStatus),
		zap.Bool("successful", err == nil),
	)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return stdout.String(), stderr.String(), exitStatus, &ExecError{
			Command:    cmdString,
			Stdout:     stdout.String(),
			Stderr:     stderr.String(),
			ExitStatus: exitStatus,
			Err:        err,
		}
	}

	return stdout.String(), stderr.String(), exitStatus, nil
}

func (r execCmdRunner) CommandExists(cmdName string) bool {
	_, err := exec.LookPath(cmdName)
	return err == nil
}
