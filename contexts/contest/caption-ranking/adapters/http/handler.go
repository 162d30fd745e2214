package httpadapter

import (
	"context"
	"log/slog"

	"giggles/contexts/contest/caption-ranking/application/commands"
	"giggles/contexts/contest/caption-ranking/application/queries"
	"giggles/contexts/contest/caption-ranking/domain/entities"
	httptransport "giggles/contexts/contest/caption-ranking/transport/http"
)

type Handler struct {
	Create  commands.CreateCaptionUseCase
	Rate    commands.RateCaptionUseCase
	Flush   commands.FlushUseCase
	Queries queries.CaptionQueryUseCase
	Logger  *slog.Logger
}

// CreateCaptionHandler godoc
// @Summary Add an audio caption
// @Tags captions
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Submission id"
// @Param X-Device-Id header string false "Author device id"
// @Param audio formData file true "AAC or M4A recording"
// @Success 201 {object} httptransport.CreateCaptionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 413 {object} httptransport.ErrorResponse
// @Failure 415 {object} httptransport.ErrorResponse
// @Router /submissions/{id}/captions [post]
func (h Handler) CreateCaptionHandler(
	ctx context.Context,
	submissionID string,
	deviceID string,
	audio []byte,
) (httptransport.CreateCaptionResponse, error) {
	caption, err := h.Create.Execute(ctx, commands.CreateCaptionCommand{
		SubmissionID: submissionID,
		DeviceID:     deviceID,
		Audio:        audio,
	})
	if err != nil {
		return httptransport.CreateCaptionResponse{}, err
	}
	return httptransport.CreateCaptionResponse{ID: caption.CaptionID}, nil
}

// ListForSubmissionHandler godoc
// @Summary List captions for a submission
// @Description Ranked by score, highest first.
// @Tags captions
// @Produce json
// @Param id path string true "Submission id"
// @Success 200 {object} httptransport.ListCaptionsResponse
// @Router /submissions/{id}/captions [get]
func (h Handler) ListForSubmissionHandler(ctx context.Context, submissionID string) (httptransport.ListCaptionsResponse, error) {
	items, err := h.Queries.ListForSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.ListCaptionsResponse{}, err
	}
	return httptransport.ListCaptionsResponse{Captions: mapCaptions(items)}, nil
}

// ListCurrentHandler godoc
// @Summary List captions for the current submission
// @Tags captions
// @Produce json
// @Success 200 {object} httptransport.ListCaptionsResponse
// @Router /captions [get]
func (h Handler) ListCurrentHandler(ctx context.Context) (httptransport.ListCaptionsResponse, error) {
	items, err := h.Queries.ListCurrent(ctx)
	if err != nil {
		return httptransport.ListCaptionsResponse{}, err
	}
	return httptransport.ListCaptionsResponse{Captions: mapCaptions(items)}, nil
}

// LikeHandler godoc
// @Summary Like a caption
// @Tags captions
// @Param id path string true "Caption id"
// @Success 204
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /captions/{id}/like [post]
func (h Handler) LikeHandler(ctx context.Context, captionID string) error {
	_, err := h.Rate.Like(ctx, captionID)
	return err
}

// HateHandler godoc
// @Summary Hate a caption
// @Tags captions
// @Param id path string true "Caption id"
// @Success 204
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /captions/{id}/hate [post]
func (h Handler) HateHandler(ctx context.Context, captionID string) error {
	_, err := h.Rate.Hate(ctx, captionID)
	return err
}

func (h Handler) FlushHandler(ctx context.Context) error {
	return h.Flush.Execute(ctx)
}

func mapCaptions(items []entities.Caption) []httptransport.CaptionResponse {
	out := make([]httptransport.CaptionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, httptransport.CaptionResponse{
			ID:           item.CaptionID,
			SubmissionID: item.SubmissionID,
			AudioURL:     item.AudioURL,
			Duration:     item.Duration,
			Likes:        item.Likes,
			Hates:        item.Hates,
			Score:        item.Score,
		})
	}
	return out
}
