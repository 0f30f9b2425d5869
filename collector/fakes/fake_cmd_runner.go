package fakes

import (
	"context"
	"strings"
)

type FakeCmdRunner struct {
	CommandResults map[string][]FakeCmdResult

	RunCommands [][]string

	CommandExistsValue bool
	AvailableCommands  map[string]bool
}

type FakeCmdResult struct {
	Stdout     string
	Stderr     string
	ExitStatus int
	Error      error
	Sticky     bool // Set to true if this result should ALWAYS be returned for the given command

	// Block makes the command wait until its context is done
	Block bool
}

func NewFakeCmdRunner() *FakeCmdRunner {
	return &FakeCmdRunner{
		AvailableCommands: map[string]bool{},
	}
}

func (runner *FakeCmdRunner) RunCommand(ctx context.Context, cmdName string, args ...string) (string, string, int, error) {
	runCmd := append([]string{cmdName}, args...)
	runner.RunCommands = append(runner.RunCommands, runCmd)
	return runner.getOutputsForCmd(ctx, runCmd)
}

func (runner *FakeCmdRunner) CommandExists(cmdName string) bool {
	if runner.CommandExistsValue {
		return true
	}

	return runner.AvailableCommands[cmdName]
}

func (runner *FakeCmdRunner) AddCmdResult(fullCmd string, result FakeCmdResult) {
	if runner.CommandResults == nil {
		runner.CommandResults = make(map[string][]FakeCmdResult)
	}
	results := runner.CommandResults[fullCmd]
	runner.CommandResults[fullCmd] = append(results, result)
}

func (runner *FakeCmdRunner) getOutputsForCmd(ctx context.Context, runCmd []string) (string, string, int, error) {
	fullCmd := strings.Join(runCmd, " ")

	results, found := runner.CommandResults[fullCmd]
	if !found || len(results) == 0 {
		return "", "", -1, nil
	}

	result := results[0]
	if !result.Sticky {
		runner.CommandResults[fullCmd] = results[1:]
	}

	if result.Block {
		<-ctx.Done()
		return "", "", -1, ctx.Err()
	}

	return result.Stdout, result.Stderr, result.ExitStatus, result.Error
}
