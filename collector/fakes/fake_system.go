package fakes

import (
	"context"

	"rpimon-api/models"
)

type FakeMountTable struct {
	Types map[string]string
	Err   error
}

func (t *FakeMountTable) FSTypes(ctx context.Context) (map[string]string, error) {
	return t.Types, t.Err
}

type FakeHostInspector struct {
	Info models.HostInfo
	Err  error
}

func (h *FakeHostInspector) HostInfo(ctx context.Context) (models.HostInfo, error) {
	return h.Info, h.Err
}
