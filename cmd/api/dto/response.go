package dto

// ErrorResponseDTO is the shared error payload shape.
type ErrorResponseDTO struct {
	Error string `json:"error"`
}

// MessageResponseDTO is the shared plain-message payload shape.
type MessageResponseDTO struct {
	Message string `json:"message"`
}
