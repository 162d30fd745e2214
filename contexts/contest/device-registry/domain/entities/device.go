package entities

import "time"

type Platform string

const (
	PlatformIOS     Platform = "iOS"
	PlatformAndroid Platform = "Android"
)

// Device is a registered push token. DeviceID is the client-provided
// X-Device-Id and may be empty; when present it identifies the record.
type Device struct {
	DeviceRecordID string
	DeviceID       string
	Token          string
	Platform       Platform
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Platform) Valid() bool {
	return p == PlatformIOS || p == PlatformAndroid
}
