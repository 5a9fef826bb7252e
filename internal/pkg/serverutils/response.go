package serverutils

type APIError struct {
	Error string `json:"error"`
}

type APIMessage struct {
	Message string `json:"message"`
}

func ErrorResponse(message string) APIError {
	return APIError{Error: message}
}

func MessageResponse(message string) APIMessage {
	return APIMessage{Message: message}
}
