package commands

import (
	"context"
	"log/slog"

	application "giggles/contexts/contest/device-registry/application"
	"giggles/contexts/contest/device-registry/ports"
)

type FlushUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc FlushUseCase) Execute(ctx context.Context) error {
	if err := uc.Repository.DeleteAll(ctx); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Warn("devices flushed",
		"event", "device_flush_completed",
		"module", "contest/device-registry",
		"layer", "application",
	)
	return nil
}
