package commands

import (
	"context"
	"log/slog"

	application "giggles/contexts/contest/caption-ranking/application"
	"giggles/contexts/contest/caption-ranking/ports"
)

type FlushUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc FlushUseCase) Execute(ctx context.Context) error {
	if err := uc.Repository.DeleteAll(ctx); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Warn("captions flushed",
		"event", "caption_flush_completed",
		"module", "contest/caption-ranking",
		"layer", "application",
	)
	return nil
}
