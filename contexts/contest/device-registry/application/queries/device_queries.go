package queries

import (
	"context"
	"errors"
	"strings"

	domainerrors "giggles/contexts/contest/device-registry/domain/errors"
	"giggles/contexts/contest/device-registry/ports"
)

type DeviceQueryUseCase struct {
	Repository ports.Repository
}

// TokenForDevice returns the latest push token for deviceID. found is false
// for unknown or empty device ids.
func (uc DeviceQueryUseCase) TokenForDevice(ctx context.Context, deviceID string) (string, bool, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return "", false, nil
	}
	device, err := uc.Repository.FindByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrDeviceNotRegistered) {
			return "", false, nil
		}
		return "", false, err
	}
	return device.Token, true, nil
}
