package commands

import (
	"context"
	"log/slog"
	"strings"

	application "giggles/contexts/contest/device-registry/application"
	"giggles/contexts/contest/device-registry/domain/entities"
	domainerrors "giggles/contexts/contest/device-registry/domain/errors"
	"giggles/contexts/contest/device-registry/ports"
)

type RegisterTokenCommand struct {
	DeviceID string
	Token    string
	Platform entities.Platform
}

type RegisterTokenUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc RegisterTokenUseCase) Execute(ctx context.Context, cmd RegisterTokenCommand) (entities.Device, error) {
	logger := application.ResolveLogger(uc.Logger)
	token := strings.TrimSpace(cmd.Token)
	if token == "" {
		return entities.Device{}, domainerrors.ErrTokenRequired
	}
	if !cmd.Platform.Valid() {
		return entities.Device{}, domainerrors.ErrInvalidDeviceInput
	}
	deviceID := strings.TrimSpace(cmd.DeviceID)
	if deviceID == "" {
		logger.Warn("push token registered without device id",
			"event", "device_token_missing_device_id",
			"module", "contest/device-registry",
			"layer", "application",
			"platform", string(cmd.Platform),
		)
	}

	recordID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Device{}, err
	}
	now := uc.Clock.Now().UTC()
	device, err := uc.Repository.Upsert(ctx, entities.Device{
		DeviceRecordID: recordID,
		DeviceID:       deviceID,
		Token:          token,
		Platform:       cmd.Platform,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return entities.Device{}, err
	}

	logger.Info("push token registered",
		"event", "device_token_registered",
		"module", "contest/device-registry",
		"layer", "application",
		"device_record_id", device.DeviceRecordID,
		"device_id", device.DeviceID,
		"platform", string(device.Platform),
	)
	return device, nil
}
