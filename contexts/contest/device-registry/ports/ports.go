package ports

import (
	"context"
	"time"

	"giggles/contexts/contest/device-registry/domain/entities"
)

// Repository stores push tokens. Upsert keeps the existing record id when a
// device registers again with the same DeviceID.
type Repository interface {
	Upsert(ctx context.Context, device entities.Device) (entities.Device, error)
	FindByDeviceID(ctx context.Context, deviceID string) (entities.Device, error)
	DeleteAll(ctx context.Context) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
