package bridges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	captionports "giggles/contexts/contest/caption-ranking/ports"
	captionerrors "giggles/contexts/contest/caption-ranking/domain/errors"
	submissionerrors "giggles/contexts/contest/submission-queue/domain/errors"
	submissionports "giggles/contexts/contest/submission-queue/ports"
	"giggles/internal/platform/media"
	"giggles/internal/platform/metrics"
	"giggles/internal/platform/storage"
)

// ImageIntake validates photos with the media package and writes them to the
// submissions bucket.
type ImageIntake struct {
	Store  storage.ObjectStore
	Logger *slog.Logger
}

var _ submissionports.ImageIntake = ImageIntake{}

func (i ImageIntake) StoreImage(ctx context.Context, name string, data []byte) (submissionports.StoredImage, error) {
	info, err := media.InspectImage(data)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("image", "rejected").Inc()
		return submissionports.StoredImage{}, mapMediaError(err, submissionerrors.ErrInvalidMedia)
	}
	filename := objectName(name, info.Extension)
	url, err := i.Store.Put(ctx, filename, data, info.ContentType)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("image", "error").Inc()
		resolveLogger(i.Logger).Error("photo upload failed",
			"event", "media_image_store_failed",
			"module", "internal/app/bridges",
			"layer", "adapter",
			"filename", filename,
			"error", err.Error(),
		)
		return submissionports.StoredImage{}, fmt.Errorf("store photo %s: %w", filename, err)
	}
	metrics.UploadsTotal.WithLabelValues("image", "stored").Inc()
	metrics.UploadBytesTotal.WithLabelValues("image").Add(float64(len(data)))
	return submissionports.StoredImage{
		Filename: filename,
		URL:      url,
		Width:    info.Width,
		Height:   info.Height,
	}, nil
}

// AudioIntake validates caption recordings and writes them to the captions
// bucket. Unmeasurable durations fall back to media.FallbackDuration.
type AudioIntake struct {
	Store  storage.ObjectStore
	Logger *slog.Logger
}

var _ captionports.AudioIntake = AudioIntake{}

func (a AudioIntake) StoreAudio(ctx context.Context, name string, data []byte) (captionports.StoredAudio, error) {
	info, err := media.InspectAudio(data)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("audio", "rejected").Inc()
		return captionports.StoredAudio{}, mapMediaError(err, captionerrors.ErrInvalidMedia)
	}
	filename := objectName(name, info.Extension)
	url, err := a.Store.Put(ctx, filename, data, info.ContentType)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("audio", "error").Inc()
		resolveLogger(a.Logger).Error("caption upload failed",
			"event", "media_audio_store_failed",
			"module", "internal/app/bridges",
			"layer", "adapter",
			"filename", filename,
			"error", err.Error(),
		)
		return captionports.StoredAudio{}, fmt.Errorf("store caption %s: %w", filename, err)
	}
	metrics.UploadsTotal.WithLabelValues("audio", "stored").Inc()
	metrics.UploadBytesTotal.WithLabelValues("audio").Add(float64(len(data)))
	return captionports.StoredAudio{
		Filename: filename,
		URL:      url,
		Duration: info.Duration,
	}, nil
}

func mapMediaError(err error, invalid error) error {
	if errors.Is(err, media.ErrEmptyUpload) ||
		errors.Is(err, media.ErrUnsupportedMedia) ||
		errors.Is(err, media.ErrUnreadableImage) {
		return fmt.Errorf("%w: %v", invalid, err)
	}
	return err
}

func objectName(name string, extension string) string {
	name = strings.TrimSpace(name)
	if extension == "" {
		return name
	}
	return name + "." + extension
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
