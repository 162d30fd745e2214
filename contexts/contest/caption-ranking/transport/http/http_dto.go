package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCaptionResponse struct {
	ID string `json:"id"`
}

type CaptionResponse struct {
	ID           string  `json:"id"`
	SubmissionID string  `json:"submissionId"`
	AudioURL     string  `json:"audioUrl"`
	Duration     float64 `json:"duration"`
	Likes        int     `json:"likes"`
	Hates        int     `json:"hates"`
	Score        int     `json:"score"`
}

type ListCaptionsResponse struct {
	Captions []CaptionResponse `json:"captions"`
}
