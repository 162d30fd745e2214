package entities

import "time"

// Caption is an audio reply to a submission. Score always equals
// Likes - Hates; all three change together.
type Caption struct {
	CaptionID    string
	SubmissionID string
	DeviceID     string
	Filename     string
	AudioURL     string
	Duration     float64
	Likes        int
	Hates        int
	Score        int
	CreatedAt    time.Time
}

type RatingKind string

const (
	RatingLike RatingKind = "like"
	RatingHate RatingKind = "hate"
)

// Apply returns c with one rating of kind counted.
func (c Caption) Apply(kind RatingKind) Caption {
	switch kind {
	case RatingLike:
		c.Likes++
		c.Score++
	case RatingHate:
		c.Hates++
		c.Score--
	}
	return c
}

func (k RatingKind) Valid() bool {
	return k == RatingLike || k == RatingHate
}
