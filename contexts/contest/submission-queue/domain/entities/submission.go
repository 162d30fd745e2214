package entities

import "time"

type PublishState string

const (
	PublishStateQueued    PublishState = "queued"
	PublishStatePublished PublishState = "published"
)

// Submission is a contest photo. It enters the queue and is published at most
// once; the most recently published submission is the current one.
type Submission struct {
	SubmissionID string
	Filename     string
	ImageURL     string
	Width        int
	Height       int
	PublishState PublishState
	PublishedAt  time.Time
	CreatedAt    time.Time
}

func (s Submission) IsQueued() bool {
	return s.PublishState == PublishStateQueued
}

func (s Submission) IsPublished() bool {
	return s.PublishState == PublishStatePublished
}

// Promote returns the published copy of s stamped at publishedAt.
func (s Submission) Promote(publishedAt time.Time) Submission {
	s.PublishState = PublishStatePublished
	s.PublishedAt = publishedAt.UTC()
	return s
}

type PromotionTrigger string

const (
	PromotionTriggerRandom   PromotionTrigger = "random"
	PromotionTriggerByID     PromotionTrigger = "by_id"
	PromotionTriggerPaidSkip PromotionTrigger = "paid_skip"
)

type ReceiptPlatform string

const (
	ReceiptPlatformIOS     ReceiptPlatform = "ios"
	ReceiptPlatformAndroid ReceiptPlatform = "android"
)
