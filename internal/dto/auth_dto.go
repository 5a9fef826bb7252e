package dto

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse reports the identity bound to the cookie session. It is
// returned by login, register and the whoami endpoint.
type SessionResponse struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}
