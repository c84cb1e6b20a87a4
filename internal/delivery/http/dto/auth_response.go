package dto

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	Dashboard string       `json:"dashboard"`
}
