package commands

import (
	"context"
	"log/slog"
	"strings"

	application "giggles/contexts/contest/submission-queue/application"
)

type ReportSubmissionCommand struct {
	SubmissionID string
	DeviceID     string
}

// ReportSubmissionUseCase records a report in the logs only. Moderation is
// done by hand from those logs, so the call never fails.
type ReportSubmissionUseCase struct {
	Logger *slog.Logger
}

func (uc ReportSubmissionUseCase) Execute(_ context.Context, cmd ReportSubmissionCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	logger.Warn("submission reported",
		"event", "submission_reported",
		"module", "contest/submission-queue",
		"layer", "application",
		"submission_id", strings.TrimSpace(cmd.SubmissionID),
		"device_id", strings.TrimSpace(cmd.DeviceID),
	)
	return nil
}
