package commands

import (
	"context"
	"log/slog"

	application "giggles/contexts/contest/submission-queue/application"
	"giggles/contexts/contest/submission-queue/ports"
)

// FlushUseCase removes every submission. Only reachable outside production.
type FlushUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc FlushUseCase) Execute(ctx context.Context) error {
	if err := uc.Repository.DeleteAll(ctx); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Warn("submissions flushed",
		"event", "submission_flush_completed",
		"module", "contest/submission-queue",
		"layer", "application",
	)
	return nil
}
