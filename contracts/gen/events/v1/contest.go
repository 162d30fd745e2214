package v1

import "time"

const (
	TopicSubmissionCreated  = "submission.created"
	TopicSubmissionPromoted = "submission.promoted"
	TopicCaptionCreated     = "caption.created"
	TopicCaptionLiked       = "caption.liked"
)

type SubmissionCreated struct {
	SubmissionID string `json:"submission_id"`
	ImageURL     string `json:"image_url"`
}

type SubmissionPromoted struct {
	SubmissionID string    `json:"submission_id"`
	Trigger      string    `json:"trigger"`
	PublishedAt  time.Time `json:"published_at"`
}

type CaptionCreated struct {
	CaptionID    string `json:"caption_id"`
	SubmissionID string `json:"submission_id"`
	DeviceID     string `json:"device_id,omitempty"`
}

type CaptionLiked struct {
	CaptionID    string `json:"caption_id"`
	SubmissionID string `json:"submission_id"`
	DeviceID     string `json:"device_id,omitempty"`
	Likes        int    `json:"likes"`
	Score        int    `json:"score"`
}
