package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateSubmissionResponse struct {
	ID        string `json:"id"`
	QueueSize int    `json:"queueSize"`
}

type SubmissionResponse struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	IsPublished bool   `json:"isPublished"`
	// PublishedAt is epoch milliseconds, zero while queued.
	PublishedAt int64 `json:"publishedAt"`
}

type ListSubmissionsResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
}

type NextRequest struct {
	ID string `json:"id,omitempty" validate:"omitempty,max=64"`
}

type JumpQueueRequest struct {
	Receipt string `json:"receipt" validate:"required"`
}

type JumpQueueAndroidRequest struct {
	PurchaseToken string `json:"purchaseToken" validate:"required"`
}
