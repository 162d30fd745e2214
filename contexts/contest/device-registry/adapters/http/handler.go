package httpadapter

import (
	"context"
	"log/slog"

	"giggles/contexts/contest/device-registry/application/commands"
	"giggles/contexts/contest/device-registry/application/queries"
	"giggles/contexts/contest/device-registry/domain/entities"
	httptransport "giggles/contexts/contest/device-registry/transport/http"
)

type Handler struct {
	Register commands.RegisterTokenUseCase
	Flush    commands.FlushUseCase
	Queries  queries.DeviceQueryUseCase
	Logger   *slog.Logger
}

// RegisterTokenHandler godoc
// @Summary Register a push token
// @Description Served at /ios/pushTokens and /android/pushTokens. A known X-Device-Id keeps its record id.
// @Tags devices
// @Accept json
// @Produce json
// @Param X-Device-Id header string false "Device id"
// @Param request body httptransport.RegisterTokenRequest true "Firebase token"
// @Success 201 {object} httptransport.RegisterTokenResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /ios/pushTokens [post]
func (h Handler) RegisterTokenHandler(
	ctx context.Context,
	platform entities.Platform,
	deviceID string,
	req httptransport.RegisterTokenRequest,
) (httptransport.RegisterTokenResponse, error) {
	device, err := h.Register.Execute(ctx, commands.RegisterTokenCommand{
		DeviceID: deviceID,
		Token:    req.Token,
		Platform: platform,
	})
	if err != nil {
		return httptransport.RegisterTokenResponse{}, err
	}
	return httptransport.RegisterTokenResponse{ID: device.DeviceRecordID}, nil
}

func (h Handler) FlushHandler(ctx context.Context) error {
	return h.Flush.Execute(ctx)
}
