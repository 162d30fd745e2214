// Package captionranking owns audio captions and their like/hate ranking.
//
// Ratings are single atomic counter updates in the store; the score is kept
// equal to likes minus hates. Likes emit caption.liked, which the like
// notifier turns into a push to the caption author's device.
package captionranking
