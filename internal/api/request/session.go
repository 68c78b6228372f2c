package request

// LoginRequest is the request body for POST /api/session/login.
type LoginRequest struct {
	Password string `json:"password"`
}
