package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type LinkResponse struct {
	URL string `json:"url" example:"https://wa.me/919876543210?text=Hello"`
}
