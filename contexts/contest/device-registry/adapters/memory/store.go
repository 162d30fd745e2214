package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"giggles/contexts/contest/device-registry/domain/entities"
	domainerrors "giggles/contexts/contest/device-registry/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	devices map[string]entities.Device
	// byDeviceID maps X-Device-Id to the record id.
	byDeviceID map[string]string
}

func NewStore(seed []entities.Device) *Store {
	store := &Store{
		devices:    make(map[string]entities.Device, len(seed)),
		byDeviceID: make(map[string]string, len(seed)),
	}
	for _, item := range seed {
		store.devices[item.DeviceRecordID] = item
		if item.DeviceID != "" {
			store.byDeviceID[item.DeviceID] = item.DeviceRecordID
		}
	}
	return store
}

func (s *Store) Upsert(_ context.Context, device entities.Device) (entities.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if device.DeviceID != "" {
		if recordID, ok := s.byDeviceID[device.DeviceID]; ok {
			existing := s.devices[recordID]
			existing.Token = device.Token
			existing.Platform = device.Platform
			existing.UpdatedAt = device.UpdatedAt
			s.devices[recordID] = existing
			return existing, nil
		}
		s.byDeviceID[device.DeviceID] = device.DeviceRecordID
	}
	s.devices[device.DeviceRecordID] = device
	return device, nil
}

func (s *Store) FindByDeviceID(_ context.Context, deviceID string) (entities.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recordID, ok := s.byDeviceID[strings.TrimSpace(deviceID)]
	if !ok {
		return entities.Device{}, domainerrors.ErrDeviceNotRegistered
	}
	return s.devices[recordID], nil
}

func (s *Store) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices = make(map[string]entities.Device)
	s.byDeviceID = make(map[string]string)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
