package httpadapter

import (
	"context"
	"log/slog"

	"giggles/contexts/contest/submission-queue/application/commands"
	"giggles/contexts/contest/submission-queue/application/queries"
	"giggles/contexts/contest/submission-queue/domain/entities"
	httptransport "giggles/contexts/contest/submission-queue/transport/http"
)

type Handler struct {
	Create    commands.CreateSubmissionUseCase
	Promote   commands.PromoteUseCase
	JumpQueue commands.JumpQueueUseCase
	Report    commands.ReportSubmissionUseCase
	Flush     commands.FlushUseCase
	Queries   queries.SubmissionQueryUseCase
	Logger    *slog.Logger
}

// CreateSubmissionHandler godoc
// @Summary Submit a photo
// @Description Stores a multipart photo and adds it to the queue. queueSize is a hint.
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "JPEG, PNG, GIF or WebP photo"
// @Success 201 {object} httptransport.CreateSubmissionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 413 {object} httptransport.ErrorResponse
// @Failure 415 {object} httptransport.ErrorResponse
// @Router /submissions [post]
func (h Handler) CreateSubmissionHandler(ctx context.Context, photo []byte) (httptransport.CreateSubmissionResponse, error) {
	result, err := h.Create.Execute(ctx, commands.CreateSubmissionCommand{Photo: photo})
	if err != nil {
		return httptransport.CreateSubmissionResponse{}, err
	}
	return httptransport.CreateSubmissionResponse{
		ID:        result.Submission.SubmissionID,
		QueueSize: result.QueueSize,
	}, nil
}

// ListSubmissionsHandler godoc
// @Summary List published submissions
// @Description Most recently published first.
// @Tags submissions
// @Produce json
// @Success 200 {object} httptransport.ListSubmissionsResponse
// @Router /submissions [get]
func (h Handler) ListSubmissionsHandler(ctx context.Context) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Queries.ListPublished(ctx)
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	resp := httptransport.ListSubmissionsResponse{
		Submissions: make([]httptransport.SubmissionResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Submissions = append(resp.Submissions, mapSubmission(item))
	}
	return resp, nil
}

// NextHandler godoc
// @Summary Promote the next submission
// @Description Promotes the given queued submission, or a random one when id is omitted.
// @Tags submissions
// @Accept json
// @Param request body httptransport.NextRequest false "Optional submission id"
// @Success 204
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /next [post]
func (h Handler) NextHandler(ctx context.Context, req httptransport.NextRequest) error {
	_, err := h.Promote.Next(ctx, commands.PromoteCommand{SubmissionID: req.ID})
	return err
}

// JumpQueueHandler godoc
// @Summary Skip the queue with a purchase
// @Description Verifies an App Store receipt (jumpQueue) or Play purchase token (jumpQueueAndroid) and promotes the submission.
// @Tags submissions
// @Accept json
// @Param id path string true "Submission id"
// @Param request body httptransport.JumpQueueRequest true "Apple receipt"
// @Success 204
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 410 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /submissions/{id}/jumpQueue [post]
func (h Handler) JumpQueueHandler(ctx context.Context, submissionID string, platform entities.ReceiptPlatform, receipt string) error {
	_, err := h.JumpQueue.Execute(ctx, commands.JumpQueueCommand{
		SubmissionID: submissionID,
		Platform:     platform,
		Receipt:      receipt,
	})
	return err
}

// ReportHandler godoc
// @Summary Report a submission
// @Tags submissions
// @Param id path string true "Submission id"
// @Success 204
// @Router /submissions/{id}/report [post]
func (h Handler) ReportHandler(ctx context.Context, submissionID string, deviceID string) error {
	return h.Report.Execute(ctx, commands.ReportSubmissionCommand{
		SubmissionID: submissionID,
		DeviceID:     deviceID,
	})
}

func (h Handler) FlushHandler(ctx context.Context) error {
	return h.Flush.Execute(ctx)
}

func mapSubmission(item entities.Submission) httptransport.SubmissionResponse {
	resp := httptransport.SubmissionResponse{
		ID:          item.SubmissionID,
		ImageURL:    item.ImageURL,
		Width:       item.Width,
		Height:      item.Height,
		IsPublished: item.IsPublished(),
	}
	if item.IsPublished() {
		resp.PublishedAt = item.PublishedAt.UnixMilli()
	}
	return resp
}
