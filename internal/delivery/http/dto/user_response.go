package dto

import "campus-prep/internal/domain/user"

// UserResponse is a user as seen over the API: never the password, always
// the profile completion.
type UserResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Role            user.Role `json:"role"`
	Department      string    `json:"department,omitempty"`
	Year            string    `json:"year,omitempty"`
	RollNumber      string    `json:"rollNumber,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Skills          string    `json:"skills,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	CGPA            string    `json:"cgpa,omitempty"`
	ProfileComplete bool      `json:"profileComplete"`
	Completion      int       `json:"completion"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Role:            u.Role,
		Department:      u.Department,
		Year:            u.Year,
		RollNumber:      u.RollNumber,
		Phone:           u.Phone,
		Skills:          u.Skills,
		Bio:             u.Bio,
		CGPA:            u.CGPA,
		ProfileComplete: u.ProfileComplete,
		Completion:      u.Completion(),
	}
}

func NewUserListResponse(users []user.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type CompletionResponse struct {
	Filled          int  `json:"filled"`
	Total           int  `json:"total"`
	Percent         int  `json:"percent"`
	ProfileComplete bool `json:"profileComplete"`
}
