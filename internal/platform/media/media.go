package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

var (
	ErrEmptyUpload      = errors.New("upload is empty")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrUnreadableImage  = errors.New("image could not be decoded")
)

var allowedImageMIMEs = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var allowedAudioMIMEs = map[string]string{
	"audio/aac":   "aac",
	"audio/x-m4a": "m4a",
	"audio/mp4":   "m4a",
}

// Image is the metadata extracted from an uploaded photo.
type Image struct {
	ContentType string
	Extension   string
	Width       int
	Height      int
}

// Audio is the metadata extracted from an uploaded caption recording.
type Audio struct {
	ContentType string
	Extension   string
	Duration    float64
}

// InspectImage sniffs the content type of data and reads its dimensions.
func InspectImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmptyUpload
	}
	mimeType := mimetype.Detect(data).String()
	ext, ok := allowedImageMIMEs[mimeType]
	if !ok {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return Image{
		ContentType: mimeType,
		Extension:   ext,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// InspectAudio sniffs the content type of data and estimates its duration.
// Streams whose length cannot be measured report FallbackDuration.
func InspectAudio(data []byte) (Audio, error) {
	if len(data) == 0 {
		return Audio{}, ErrEmptyUpload
	}
	detected := mimetype.Detect(data)
	mimeType := detected.String()
	ext, ok := allowedAudioMIMEs[mimeType]
	if !ok {
		for parent := detected.Parent(); parent != nil && !ok; parent = parent.Parent() {
			ext, ok = allowedAudioMIMEs[parent.String()]
		}
	}
	if !ok {
		return Audio{}, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
	}
	duration, err := ADTSDuration(data)
	if err != nil || duration <= 0 {
		duration = FallbackDuration
	}
	return Audio{
		ContentType: mimeType,
		Extension:   ext,
		Duration:    duration,
	}, nil
}
