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

// ConfirmationResponse is returned when a mutation needs an explicit
// confirmation flag before it can proceed.
type ConfirmationResponse struct {
	ConfirmationRequired bool   `json:"confirmation_required" example:"true"`
	Message              string `json:"message" example:"plan or join date changed; confirm expiry recomputation"`
}
