// Package deviceregistry stores Firebase push tokens per device.
package deviceregistry
