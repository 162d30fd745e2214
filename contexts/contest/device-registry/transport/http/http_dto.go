package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type RegisterTokenResponse struct {
	ID string `json:"id"`
}
