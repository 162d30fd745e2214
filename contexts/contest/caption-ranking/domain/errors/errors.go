package errors

import "errors"

var (
	ErrInvalidCaptionInput = errors.New("invalid caption input")
	ErrInvalidMedia        = errors.New("upload is not a supported audio file")
	ErrSubmissionNotFound  = errors.New("submission does not exist")
	ErrCaptionNotFound     = errors.New("caption does not exist")
	ErrInvalidRating       = errors.New("invalid rating")
)
